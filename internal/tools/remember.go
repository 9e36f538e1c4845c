package tools

import (
	"context"
	"fmt"

	"github.com/HendryAvila/memex/internal/engine"
	"github.com/mark3labs/mcp-go/mcp"
)

// RememberTool handles the memex_remember MCP tool.
type RememberTool struct {
	engine *engine.Engine
}

// NewRememberTool creates a RememberTool with the given engine.
func NewRememberTool(eng *engine.Engine) *RememberTool {
	return &RememberTool{engine: eng}
}

// Definition returns the MCP tool definition for memex_remember.
func (t *RememberTool) Definition() mcp.Tool {
	return mcp.NewTool("memex_remember",
		mcp.WithDescription(
			"Store a piece of text in persistent memory so later questions can be answered from it.",
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The text to remember"),
		),
	)
}

// Handle processes the memex_remember tool call.
func (t *RememberTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	if text == "" {
		return mcp.NewToolResultError("'text' is required"), nil
	}

	id, err := t.engine.Remember(text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to remember: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Noted and stored in memory. (ID: %d)", id)), nil
}
