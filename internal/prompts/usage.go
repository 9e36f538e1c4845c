// Package prompts implements the MCP prompt handlers for Memex.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// UsagePrompt handles the memex-usage MCP prompt.
// It walks the AI through the remember/ask/ingest loop.
type UsagePrompt struct{}

// NewUsagePrompt creates a UsagePrompt.
func NewUsagePrompt() *UsagePrompt {
	return &UsagePrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *UsagePrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("memex-usage",
		mcp.WithPromptDescription(
			"Get oriented in your Memex memory: see what is stored, "+
				"then learn how to remember facts, ask questions, and ingest PDFs.",
		),
		mcp.WithArgument("topic",
			mcp.ArgumentDescription("Optional topic to focus the walkthrough on"),
		),
	)
}

// Handle processes the memex-usage prompt request.
func (p *UsagePrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic := ""
	if args := req.Params.Arguments; args != nil {
		topic = args["topic"]
	}

	focus := ""
	if topic != "" {
		focus = fmt.Sprintf("\n5. I care most about %q right now — once you've shown me around, ask me a question about it with `memex_ask`", topic)
	}

	return &mcp.GetPromptResult{
		Description: "Memex usage guide",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please get me oriented in my Memex memory assistant.\n\n" +
						"1. Run `memex_list_memory` and `memex_list_pdfs` to see what is already stored\n" +
						"2. Summarize what you find in a couple of sentences\n" +
						"3. Remind me of the basic loop: `memex_remember` stores a fact, `memex_ask` answers from memory " +
						"before falling back to a web search (and remembers what it finds), `memex_ingest_pdf` imports a document line by line\n" +
						"4. Mention that `memex_forget` and `memex_forget_pdf` clean up, and `memex_toggle_tts` speaks answers aloud" +
						focus,
				),
			},
		},
	}, nil
}
