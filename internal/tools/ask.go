package tools

import (
	"context"
	"fmt"

	"github.com/HendryAvila/memex/internal/engine"
	"github.com/mark3labs/mcp-go/mcp"
)

// AskTool handles the memex_ask MCP tool.
type AskTool struct {
	engine *engine.Engine
}

// NewAskTool creates an AskTool with the given engine.
func NewAskTool(eng *engine.Engine) *AskTool {
	return &AskTool{engine: eng}
}

// Definition returns the MCP tool definition for memex_ask.
func (t *AskTool) Definition() mcp.Tool {
	return mcp.NewTool("memex_ask",
		mcp.WithDescription(
			"Ask a question. Stored memory is searched first; when nothing relevant is stored the web is consulted, "+
				"and the web answer is remembered so the next ask is answered locally.",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The question to answer"),
		),
	)
}

// Handle processes the memex_ask tool call.
func (t *AskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("'query' is required"), nil
	}

	answer, err := t.engine.Ask(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to answer: %v", err)), nil
	}
	return mcp.NewToolResultText(answer), nil
}
