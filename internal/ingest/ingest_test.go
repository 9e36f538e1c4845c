package ingest

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// ─── Chunks ─────────────────────────────────────────────────────────────────

func TestChunks_DropsEmptyLines(t *testing.T) {
	// Two pages: "A\n\nB" and an empty page yield exactly A and B.
	pages := []string{"A\n\nB", ""}

	got := Chunks(pages)
	if want := []string{"A", "B"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Chunks(%q) = %v, want %v", pages, got, want)
	}
}

func TestChunks_TrimsLines(t *testing.T) {
	pages := []string{"  leading and trailing  \n\t\n\tindented\t"}

	got := Chunks(pages)
	if want := []string{"leading and trailing", "indented"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Chunks() = %v, want %v", got, want)
	}
}

func TestChunks_PreservesPageOrder(t *testing.T) {
	pages := []string{"one\ntwo", "three", "", "four"}

	got := Chunks(pages)
	if want := []string{"one", "two", "three", "four"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Chunks() = %v, want %v", got, want)
	}
}

func TestChunks_NoPages(t *testing.T) {
	if got := Chunks(nil); len(got) != 0 {
		t.Errorf("Chunks(nil) = %v, want empty", got)
	}
	if got := Chunks([]string{"", "  ", "\n\n"}); len(got) != 0 {
		t.Errorf("Chunks(blank pages) = %v, want empty", got)
	}
}

// ─── cleanText ──────────────────────────────────────────────────────────────

func TestCleanText(t *testing.T) {
	got := cleanText("line one\r\nline\x00 two")
	if want := "line one\nline two"; got != want {
		t.Errorf("cleanText() = %q, want %q", got, want)
	}
}

// ─── ExtractPDF ─────────────────────────────────────────────────────────────

func TestExtractPDF_MissingFile(t *testing.T) {
	if _, err := ExtractPDF(filepath.Join(t.TempDir(), "absent.pdf")); err == nil {
		t.Error("ExtractPDF(missing) err = nil, want error")
	}
}

func TestExtractPDF_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.pdf")
	if err := os.WriteFile(path, []byte("just text, no pdf header"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ExtractPDF(path); err == nil {
		t.Error("ExtractPDF(non-pdf) err = nil, want error")
	}
}
