// Memex: personal knowledge assistant with hybrid retrieval.
//
// Answers come from the local memory store when a stored entry is
// similar enough to the question, and from a web search otherwise;
// online answers are written back to memory so the next identical
// question is answered locally.
//
// Usage:
//
//	memex serve    # Start the MCP server (stdio transport)
//	memex http     # Start the HTTP JSON API
//	memex update   # Update to the latest version
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HendryAvila/memex/internal/httpapi"
	memexserver "github.com/HendryAvila/memex/internal/server"
	"github.com/HendryAvila/memex/internal/updater"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "http":
		if err := runHTTP(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "update":
		runUpdate()
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("memex v%s\n", memexserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// runServe starts the MCP server on stdio.
func runServe() error {
	s, cleanup, err := memexserver.New()
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Background version check prints to stderr so it doesn't interfere
	// with the MCP stdio transport on stdout.
	go checkForUpdates()

	return server.ServeStdio(s)
}

// runHTTP starts the HTTP JSON API and blocks until interrupted.
func runHTTP() error {
	app, cleanup, err := memexserver.NewApp()
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	go checkForUpdates()

	srv := &http.Server{
		Addr:              app.Config.HTTPAddr,
		Handler:           httpapi.New(app.Engine).Handler(),
		ReadHeaderTimeout: 30 * time.Second,
	}

	// Graceful shutdown on interrupt.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		log.Printf("memex http: shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	log.Printf("memex http: listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// checkForUpdates runs a best-effort version check and prints a notice
// to stderr when a newer release exists. Network failures stay silent.
func checkForUpdates() {
	result := updater.CheckVersion(memexserver.Version)
	if result.UpdateAvailable {
		fmt.Fprintf(os.Stderr,
			"\n  📦 Update available: v%s → v%s\n"+
				"     Run: memex update\n"+
				"     Release: %s\n\n",
			result.CurrentVersion, result.LatestVersion, result.ReleaseURL,
		)
	}
}

// runUpdate performs a self-update to the latest version.
func runUpdate() {
	fmt.Fprintf(os.Stderr, "🔍 Checking for updates...\n")

	result := updater.CheckVersion(memexserver.Version)
	if !result.UpdateAvailable {
		fmt.Fprintf(os.Stderr, "✅ Already at the latest version (v%s)\n", result.CurrentVersion)
		return
	}

	fmt.Fprintf(os.Stderr, "📦 New version available: v%s → v%s\n", result.CurrentVersion, result.LatestVersion)
	fmt.Fprintf(os.Stderr, "⬇️  Downloading...\n")

	if err := updater.SelfUpdate(memexserver.Version); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Update failed: %v\n", err)
		fmt.Fprintf(os.Stderr, "\n   You can download manually from:\n   %s\n", result.ReleaseURL)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "✅ Updated to v%s!\n", result.LatestVersion)
	fmt.Fprintf(os.Stderr, "   Restart memex to use the new version.\n")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Memex v%s — personal knowledge assistant

Usage:
  memex serve    Start the MCP server (stdio transport)
  memex http     Start the HTTP JSON API (default :5000)
  memex update   Update to the latest version
  memex version  Print the version

Configuration:
  Settings load from config.yaml in ~/.config/memex (or the working
  directory) and from MEMEX_* environment variables.

  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "memex": {
        "command": "memex",
        "args": ["serve"]
      }
    }
  }

Learn more: https://github.com/HendryAvila/memex
`, memexserver.Version)
}
