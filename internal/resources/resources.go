// Package resources implements the MCP resource handlers for Memex.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (memex://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HendryAvila/memex/internal/memory"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handler manages Memex resource endpoints.
type Handler struct {
	store *memory.Store
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(store *memory.Store) *Handler {
	return &Handler{store: store}
}

// StatsResource returns the MCP resource definition for store statistics.
func (h *Handler) StatsResource() mcp.Resource {
	return mcp.NewResource(
		"memex://stats",
		"Memex Memory Statistics",
		mcp.WithResourceDescription("Counts of stored memories by provenance, ingested documents, and the database location"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleStats returns the current store statistics as JSON.
func (h *Handler) HandleStats(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	stats, err := h.store.Stats()
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}

	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling stats: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
