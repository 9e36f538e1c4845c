package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/HendryAvila/memex/internal/engine"
	"github.com/mark3labs/mcp-go/mcp"
)

// IngestTool handles the memex_ingest_pdf MCP tool.
type IngestTool struct {
	engine *engine.Engine
}

// NewIngestTool creates an IngestTool with the given engine.
func NewIngestTool(eng *engine.Engine) *IngestTool {
	return &IngestTool{engine: eng}
}

// Definition returns the MCP tool definition for memex_ingest_pdf.
func (t *IngestTool) Definition() mcp.Tool {
	return mcp.NewTool("memex_ingest_pdf",
		mcp.WithDescription(
			"Ingest a PDF from disk: every non-empty line of its text becomes one memory, "+
				"tagged with the PDF's filename so it can be forgotten as a unit later.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Filesystem path of the PDF to ingest"),
		),
	)
}

// Handle processes the memex_ingest_pdf tool call.
func (t *IngestTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("'path' is required"), nil
	}

	_, stored, err := t.engine.IngestDocument(path)
	if err != nil {
		var exErr *engine.ExtractionError
		switch {
		case errors.Is(err, engine.ErrDocumentMissing):
			return mcp.NewToolResultError("PDF file not found."), nil
		case errors.As(err, &exErr):
			return mcp.NewToolResultError(fmt.Sprintf("Error reading PDF: %v", exErr.Err)), nil
		default:
			return mcp.NewToolResultError(fmt.Sprintf("failed to ingest PDF: %v", err)), nil
		}
	}

	return mcp.NewToolResultText(fmt.Sprintf("Ingested %d text chunks from %s", stored, path)), nil
}
