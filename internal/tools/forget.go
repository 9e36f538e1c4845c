package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/HendryAvila/memex/internal/engine"
	"github.com/HendryAvila/memex/internal/memory"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── ForgetTool ──────────────────────────────────────────────────────────────

// ForgetTool handles the memex_forget MCP tool.
type ForgetTool struct {
	engine *engine.Engine
}

// NewForgetTool creates a ForgetTool with the given engine.
func NewForgetTool(eng *engine.Engine) *ForgetTool {
	return &ForgetTool{engine: eng}
}

// Definition returns the MCP tool definition for memex_forget.
func (t *ForgetTool) Definition() mcp.Tool {
	return mcp.NewTool("memex_forget",
		mcp.WithDescription(
			"Delete one memory by id. Deleting an id that does not exist is a no-op.",
		),
		mcp.WithNumber("memory_id",
			mcp.Required(),
			mcp.Description("Id of the memory to delete (see memex_list_memory)"),
		),
	)
}

// Handle processes the memex_forget tool call.
func (t *ForgetTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := intArg(req, "memory_id", 0)
	if id == 0 {
		return mcp.NewToolResultError("'memory_id' is required"), nil
	}

	if err := t.engine.ForgetMemory(int64(id)); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to forget memory: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted memory with ID %d", id)), nil
}

// ─── ForgetPDFTool ───────────────────────────────────────────────────────────

// ForgetPDFTool handles the memex_forget_pdf MCP tool.
type ForgetPDFTool struct {
	engine *engine.Engine
}

// NewForgetPDFTool creates a ForgetPDFTool with the given engine.
func NewForgetPDFTool(eng *engine.Engine) *ForgetPDFTool {
	return &ForgetPDFTool{engine: eng}
}

// Definition returns the MCP tool definition for memex_forget_pdf.
func (t *ForgetPDFTool) Definition() mcp.Tool {
	return mcp.NewTool("memex_forget_pdf",
		mcp.WithDescription(
			"Delete an ingested PDF and every memory that came from it.",
		),
		mcp.WithNumber("pdf_id",
			mcp.Required(),
			mcp.Description("Id of the PDF to forget (see memex_list_pdfs)"),
		),
	)
}

// Handle processes the memex_forget_pdf tool call.
func (t *ForgetPDFTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := intArg(req, "pdf_id", 0)
	if id == 0 {
		return mcp.NewToolResultError("'pdf_id' is required"), nil
	}

	filename, err := t.engine.ForgetDocument(int64(id))
	if err != nil {
		if errors.Is(err, memory.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("No PDF found with ID %d", id)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to forget PDF: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Forgot PDF '%s' and all related memory.", filename)), nil
}
