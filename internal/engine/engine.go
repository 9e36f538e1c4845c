// Package engine decides how a question gets answered: stored memory
// first, the web as fallback, and every web answer written back to
// memory so the next ask stays local.
//
// Design decisions:
//   - A memory wins only above the fixed relevance threshold (rank.Threshold)
//   - Web answers are stored before they are returned, never after
//   - Search failures collapse to "no result" instead of propagating
//   - Speech is a best-effort side effect and cannot fail a query
//   - The not-found sentinel is a value, not an error
package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/HendryAvila/memex/internal/ingest"
	"github.com/HendryAvila/memex/internal/memory"
	"github.com/HendryAvila/memex/internal/rank"
)

// NoAnswer is what Ask returns when neither memory nor the web had
// anything relevant.
const NoAnswer = "Sorry, I couldn’t find an answer."

// ErrDocumentMissing reports an ingest path that does not exist.
var ErrDocumentMissing = errors.New("engine: document file not found")

// ExtractionError wraps a failure to pull text out of a document that
// does exist on disk.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("engine: extract %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Searcher finds an answer on the web. ok=false covers every kind of
// miss: no results, network failure, timeout.
type Searcher interface {
	Search(ctx context.Context, query string) (answer string, ok bool)
}

// Speaker voices answers out loud, best-effort.
type Speaker interface {
	Speak(text string)
	SetEnabled(on bool)
}

// Extractor pulls per-page text out of a document on disk.
type Extractor func(path string) ([]string, error)

// Engine owns the answer policy and the learning write-back. It holds
// no per-query state; every Ask runs to completion on a fresh snapshot
// of the store.
type Engine struct {
	store   *memory.Store
	search  Searcher
	speaker Speaker
	extract Extractor
}

// New wires an Engine from its four collaborators.
func New(store *memory.Store, search Searcher, speaker Speaker, extract Extractor) *Engine {
	return &Engine{store: store, search: search, speaker: speaker, extract: extract}
}

// Ask answers a query. Memory is consulted first; when no stored entry
// scores above the threshold the web is searched, and a web answer is
// stored under the "online" source before it is returned. A query with
// no answer anywhere yields NoAnswer, not an error.
func (e *Engine) Ask(ctx context.Context, query string) (string, error) {
	contents, err := e.store.Contents()
	if err != nil {
		return "", fmt.Errorf("engine: load memories: %w", err)
	}

	if match, ok := rank.Best(query, contents); ok {
		e.speaker.Speak(match.Content)
		return match.Content, nil
	}

	answer, ok := e.search.Search(ctx, query)
	if !ok || answer == "" {
		return NoAnswer, nil
	}

	// Store before returning: the next identical ask must be able to
	// answer from memory without a second search.
	if _, err := e.store.Insert(memory.SourceOnline, answer); err != nil {
		return "", fmt.Errorf("engine: store web answer: %w", err)
	}
	e.speaker.Speak(answer)
	return answer, nil
}

// Remember stores text as a user memory and returns its id.
func (e *Engine) Remember(text string) (int64, error) {
	id, err := e.store.Insert(memory.SourceUser, text)
	if err != nil {
		return 0, fmt.Errorf("engine: remember: %w", err)
	}
	return id, nil
}

// IngestDocument extracts a document's text, stores one memory per
// non-empty line, and registers the document under its base filename.
// The returned count is the number of chunks stored; 0 is valid for a
// document with no extractable text.
func (e *Engine) IngestDocument(path string) (memory.Document, int, error) {
	if _, err := os.Stat(path); err != nil {
		return memory.Document{}, 0, ErrDocumentMissing
	}

	pages, err := e.extract(path)
	if err != nil {
		return memory.Document{}, 0, &ExtractionError{Path: path, Err: err}
	}

	name := filepath.Base(path)
	id, stored, err := e.store.AddDocument(name, ingest.Chunks(pages))
	if err != nil {
		return memory.Document{}, 0, fmt.Errorf("engine: ingest %s: %w", name, err)
	}
	return memory.Document{ID: id, Filename: name}, stored, nil
}

// Memories lists every stored memory in insertion order.
func (e *Engine) Memories() ([]memory.Memory, error) {
	return e.store.All()
}

// Documents lists every ingested document in insertion order.
func (e *Engine) Documents() ([]memory.Document, error) {
	return e.store.Documents()
}

// ForgetMemory deletes one memory. Unknown ids are a no-op.
func (e *Engine) ForgetMemory(id int64) error {
	return e.store.Delete(id)
}

// ForgetDocument deletes a document and every memory it produced,
// returning the forgotten filename. Unknown ids yield memory.ErrNotFound.
func (e *Engine) ForgetDocument(id int64) (string, error) {
	return e.store.RemoveDocument(id)
}

// SetSpeech turns spoken answers on or off.
func (e *Engine) SetSpeech(on bool) {
	e.speaker.SetEnabled(on)
}
