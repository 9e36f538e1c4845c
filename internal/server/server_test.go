package server

import (
	"os"
	"path/filepath"
	"testing"
)

// isolate points the config at temp directories so tests never touch the
// real home directory or a stray config.yaml in the working directory.
func isolate(t *testing.T) string {
	t.Helper()
	dataDir := t.TempDir()
	t.Setenv("MEMEX_DATA_DIR", dataDir)
	t.Chdir(t.TempDir())
	return dataDir
}

func TestNew_BuildsServerAndCleanup(t *testing.T) {
	dataDir := isolate(t)

	s, cleanup, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer cleanup()

	if s == nil {
		t.Fatal("New returned a nil server")
	}
	if _, err := os.Stat(filepath.Join(dataDir, "memex.db")); err != nil {
		t.Errorf("database not created: %v", err)
	}
}

func TestNewApp_WiresEngineEndToEnd(t *testing.T) {
	isolate(t)

	app, cleanup, err := NewApp()
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	defer cleanup()

	id, err := app.Engine.Remember("wired end to end")
	if err != nil {
		t.Fatalf("Remember: %v", err)
	}
	if id != 1 {
		t.Errorf("first memory id = %d, want 1", id)
	}

	all, err := app.Store.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 1 || all[0].Content != "wired end to end" {
		t.Errorf("stored = %v", all)
	}
	if app.Config.HTTPAddr == "" {
		t.Error("config missing http_addr default")
	}
}

func TestNewApp_CleanupIsSafeAfterFailure(t *testing.T) {
	// Point the data dir at a path that cannot be a directory.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	t.Setenv("MEMEX_DATA_DIR", filepath.Join(blocker, "nested"))
	t.Chdir(t.TempDir())

	_, cleanup, err := NewApp()
	if err == nil {
		t.Fatal("expected error for unusable data dir")
	}
	cleanup() // must not panic
}
