package tools

import (
	"context"

	"github.com/HendryAvila/memex/internal/engine"
	"github.com/mark3labs/mcp-go/mcp"
)

// ToggleTTSTool handles the memex_toggle_tts MCP tool.
type ToggleTTSTool struct {
	engine *engine.Engine
}

// NewToggleTTSTool creates a ToggleTTSTool with the given engine.
func NewToggleTTSTool(eng *engine.Engine) *ToggleTTSTool {
	return &ToggleTTSTool{engine: eng}
}

// Definition returns the MCP tool definition for memex_toggle_tts.
func (t *ToggleTTSTool) Definition() mcp.Tool {
	return mcp.NewTool("memex_toggle_tts",
		mcp.WithDescription(
			"Turn spoken answers on or off. Speech is off until enabled.",
		),
		mcp.WithBoolean("enable",
			mcp.Description("true to speak answers aloud, false to mute (default: true)"),
		),
	)
}

// Handle processes the memex_toggle_tts tool call.
func (t *ToggleTTSTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	enable := boolArg(req, "enable", true)
	t.engine.SetSpeech(enable)

	if enable {
		return mcp.NewToolResultText("TTS enabled."), nil
	}
	return mcp.NewToolResultText("TTS disabled."), nil
}
