package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/memex/internal/engine"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── ListMemoryTool ──────────────────────────────────────────────────────────

// ListMemoryTool handles the memex_list_memory MCP tool.
type ListMemoryTool struct {
	engine *engine.Engine
}

// NewListMemoryTool creates a ListMemoryTool with the given engine.
func NewListMemoryTool(eng *engine.Engine) *ListMemoryTool {
	return &ListMemoryTool{engine: eng}
}

// Definition returns the MCP tool definition for memex_list_memory.
func (t *ListMemoryTool) Definition() mcp.Tool {
	return mcp.NewTool("memex_list_memory",
		mcp.WithDescription(
			"List every stored memory in insertion order, with its id and source "+
				"(user, online, or pdf:<filename>).",
		),
	)
}

// Handle processes the memex_list_memory tool call.
func (t *ListMemoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	memories, err := t.engine.Memories()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list memory: %v", err)), nil
	}

	if len(memories) == 0 {
		return mcp.NewToolResultText("Memory is empty."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Memory (%d entries)\n\n", len(memories))
	for _, m := range memories {
		fmt.Fprintf(&sb, "#%d [%s] %s\n", m.ID, m.Source, m.Content)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// ─── ListPDFsTool ────────────────────────────────────────────────────────────

// ListPDFsTool handles the memex_list_pdfs MCP tool.
type ListPDFsTool struct {
	engine *engine.Engine
}

// NewListPDFsTool creates a ListPDFsTool with the given engine.
func NewListPDFsTool(eng *engine.Engine) *ListPDFsTool {
	return &ListPDFsTool{engine: eng}
}

// Definition returns the MCP tool definition for memex_list_pdfs.
func (t *ListPDFsTool) Definition() mcp.Tool {
	return mcp.NewTool("memex_list_pdfs",
		mcp.WithDescription(
			"List every ingested PDF with the id used by memex_forget_pdf.",
		),
	)
}

// Handle processes the memex_list_pdfs tool call.
func (t *ListPDFsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docs, err := t.engine.Documents()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list PDFs: %v", err)), nil
	}

	if len(docs) == 0 {
		return mcp.NewToolResultText("No PDFs ingested yet."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Ingested PDFs (%d)\n\n", len(docs))
	for _, d := range docs {
		fmt.Fprintf(&sb, "#%d %s\n", d.ID, d.Filename)
	}
	return mcp.NewToolResultText(sb.String()), nil
}
