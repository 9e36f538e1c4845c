// Package server wires all Memex components and creates the MCP server
// instance.
//
// This is the composition root: it resolves configuration, creates the
// concrete store, search adapter, and speech sink, and injects them into
// the engine and the tools/prompts/resources that depend on it. No
// business logic lives here, only wiring.
package server

import (
	"fmt"
	"log"

	"github.com/HendryAvila/memex/internal/config"
	"github.com/HendryAvila/memex/internal/engine"
	"github.com/HendryAvila/memex/internal/ingest"
	"github.com/HendryAvila/memex/internal/memory"
	"github.com/HendryAvila/memex/internal/prompts"
	"github.com/HendryAvila/memex/internal/resources"
	"github.com/HendryAvila/memex/internal/speech"
	"github.com/HendryAvila/memex/internal/tools"
	"github.com/HendryAvila/memex/internal/websearch"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// App bundles the wired subsystems shared by the MCP and HTTP entry
// points.
type App struct {
	Config *config.Config
	Store  *memory.Store
	Engine *engine.Engine
}

// NewApp resolves configuration and builds the retrieval engine with its
// concrete dependencies: the SQLite memory store, the DuckDuckGo search
// adapter, the TTS sink, and the PDF extractor.
//
// The returned cleanup function closes the memory store's database
// connection and must be called on shutdown (typically via defer). It is
// always non-nil and safe to call even if initialization failed.
func NewApp() (*App, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, noop, fmt.Errorf("loading config: %w", err)
	}

	store, err := memory.New(memory.Config{DataDir: cfg.DataDir})
	if err != nil {
		return nil, noop, fmt.Errorf("opening memory store: %w", err)
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			log.Printf("WARNING: memory store close: %v", err)
		}
	}

	search := websearch.New(cfg.SearchTimeout, cfg.SearchMaxResults)
	speaker := speech.New(cfg.SpeechCommand)
	eng := engine.New(store, search, speaker, ingest.ExtractPDF)

	return &App{Config: cfg, Store: store, Engine: eng}, cleanup, nil
}

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function closes the memory store's database
// connection and must be called on shutdown (typically via defer). It is
// always non-nil and safe to call even if initialization failed.
func New() (*server.MCPServer, func(), error) {
	app, cleanup, err := NewApp()
	if err != nil {
		return nil, cleanup, err
	}

	s := server.NewMCPServer(
		"memex",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register tools ---

	askTool := tools.NewAskTool(app.Engine)
	s.AddTool(askTool.Definition(), askTool.Handle)

	rememberTool := tools.NewRememberTool(app.Engine)
	s.AddTool(rememberTool.Definition(), rememberTool.Handle)

	ingestTool := tools.NewIngestTool(app.Engine)
	s.AddTool(ingestTool.Definition(), ingestTool.Handle)

	listMemoryTool := tools.NewListMemoryTool(app.Engine)
	s.AddTool(listMemoryTool.Definition(), listMemoryTool.Handle)

	listPDFsTool := tools.NewListPDFsTool(app.Engine)
	s.AddTool(listPDFsTool.Definition(), listPDFsTool.Handle)

	forgetTool := tools.NewForgetTool(app.Engine)
	s.AddTool(forgetTool.Definition(), forgetTool.Handle)

	forgetPDFTool := tools.NewForgetPDFTool(app.Engine)
	s.AddTool(forgetPDFTool.Definition(), forgetPDFTool.Handle)

	ttsTool := tools.NewToggleTTSTool(app.Engine)
	s.AddTool(ttsTool.Definition(), ttsTool.Handle)

	// --- Register prompts ---

	usagePrompt := prompts.NewUsagePrompt()
	s.AddPrompt(usagePrompt.Definition(), usagePrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(app.Store)
	s.AddResource(resourceHandler.StatsResource(), resourceHandler.HandleStats)

	return s, cleanup, nil
}

// noop is a no-op cleanup function used as the default before the store
// has been initialized.
func noop() {}

// serverInstructions returns the instructions that tell the client model
// how to use Memex effectively.
func serverInstructions() string {
	return `You have access to Memex, a personal knowledge assistant with
persistent memory and hybrid retrieval.

## How Memex answers

memex_ask searches stored memories first, using TF-IDF similarity over
every stored entry. When no memory is similar enough, it falls back to a
web search and stores the online answer, so the next identical question
is answered locally without another search.

## Tools

- memex_ask: ask a question. Always returns an answer string; when
  neither memory nor the web produces one, it returns a fixed
  "couldn't find an answer" sentence.
- memex_remember: store a fact the user tells you. Use this whenever the
  user shares something worth keeping (preferences, facts, decisions).
- memex_ingest_pdf: index a PDF from a local path. Every text line
  becomes a searchable memory tagged with the file's name.
- memex_list_memory / memex_list_pdfs: inspect what is stored.
- memex_forget: delete one memory by id.
- memex_forget_pdf: delete a PDF record and every memory that came
  from it.
- memex_toggle_tts: turn spoken answers on or off.

## Guidelines

- Save proactively: when the user states a fact about themselves or
  their work, call memex_remember without being asked.
- Before answering questions about prior sessions, call memex_ask or
  memex_list_memory to recover context.
- Quote stored content as the memory holds it; do not embellish.
- The memex://stats resource reports how much is stored and where the
  database lives.`
}
