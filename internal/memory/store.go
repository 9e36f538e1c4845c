// Package memory implements the durable memory store for Memex.
//
// It persists memory fragments and the documents they were ingested from
// in SQLite. Every mutation is committed before the call returns, so a
// crash after a successful call never loses the write.
package memory

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("memory: not found")

// ErrEmptyContent is returned when a memory would be stored with no
// content left after trimming whitespace.
var ErrEmptyContent = errors.New("memory: empty content")

// ─── Types ───────────────────────────────────────────────────────────────────

// Memory is one stored text fragment with its provenance tag.
type Memory struct {
	ID      int64  `json:"id"`
	Source  string `json:"source"`
	Content string `json:"content"`
}

// Document records one ingested document by filename.
type Document struct {
	ID       int64  `json:"id"`
	Filename string `json:"filename"`
}

// Stats holds aggregate store statistics.
type Stats struct {
	TotalMemories    int    `json:"total_memories"`
	UserMemories     int    `json:"user_memories"`
	OnlineMemories   int    `json:"online_memories"`
	DocumentMemories int    `json:"document_memories"`
	TotalDocuments   int    `json:"total_documents"`
	DatabasePath     string `json:"database_path"`
}

// Provenance tags. Memories ingested from a document carry the tag
// produced by SourceForDocument instead.
const (
	SourceUser   = "user"
	SourceOnline = "online"

	sourceDocumentPrefix = "pdf:"
)

// SourceForDocument returns the provenance tag shared by every memory
// that belongs to the named document.
func SourceForDocument(filename string) string {
	return sourceDocumentPrefix + filename
}

// IsDocumentSource reports whether a provenance tag marks a memory as
// ingested from a document.
func IsDocumentSource(source string) bool {
	return strings.HasPrefix(source, sourceDocumentPrefix)
}

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds memory store configuration.
type Config struct {
	DataDir string
}

// DefaultConfig returns the default configuration for the memory store.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir: filepath.Join(home, ".memex"),
	}
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the persistent memory engine backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// New creates a new Store with the given configuration.
// It creates the data directory if needed, opens SQLite with WAL mode,
// and runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("memory: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "memex.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("memory: open database: %w", err)
	}

	// SQLite pragmas. foreign_keys must be ON for the document cascade.
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("memory: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("memory: migration: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the location of the database file.
func (s *Store) Path() string {
	return s.path
}

// ─── Migrations ──────────────────────────────────────────────────────────────

func (s *Store) migrate() error {
	// AUTOINCREMENT keeps ids monotonic: a deleted id is never handed
	// out again, even after the highest row is removed.
	schema := `
		CREATE TABLE IF NOT EXISTS documents (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			filename TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS memories (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			document_id INTEGER REFERENCES documents(id) ON DELETE CASCADE,
			source      TEXT NOT NULL,
			content     TEXT NOT NULL CHECK (length(trim(content)) > 0)
		);

		CREATE INDEX IF NOT EXISTS idx_memories_source   ON memories(source);
		CREATE INDEX IF NOT EXISTS idx_memories_document ON memories(document_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ─── Memories ────────────────────────────────────────────────────────────────

// Insert stores one memory fragment and returns its assigned id.
// The content is stored as given; a fragment that is empty after
// trimming is rejected with ErrEmptyContent.
func (s *Store) Insert(source, content string) (int64, error) {
	if strings.TrimSpace(content) == "" {
		return 0, ErrEmptyContent
	}

	res, err := s.db.Exec(
		`INSERT INTO memories (source, content) VALUES (?, ?)`,
		source, content,
	)
	if err != nil {
		return 0, fmt.Errorf("memory: insert: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("memory: insert id: %w", err)
	}
	return id, nil
}

// All returns every memory in insertion order (ascending id).
func (s *Store) All() ([]Memory, error) {
	rows, err := s.db.Query(`SELECT id, source, content FROM memories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("memory: list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var memories []Memory
	for rows.Next() {
		var m Memory
		if err := rows.Scan(&m.ID, &m.Source, &m.Content); err != nil {
			return nil, fmt.Errorf("memory: list scan: %w", err)
		}
		memories = append(memories, m)
	}
	return memories, rows.Err()
}

// Contents returns every memory's content in insertion order. This is
// the corpus snapshot the ranker operates on.
func (s *Store) Contents() ([]string, error) {
	rows, err := s.db.Query(`SELECT content FROM memories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("memory: load contents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var contents []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("memory: load contents scan: %w", err)
		}
		contents = append(contents, c)
	}
	return contents, rows.Err()
}

// Delete removes the memory with the given id. Deleting an id that does
// not exist is a no-op.
func (s *Store) Delete(id int64) error {
	if _, err := s.db.Exec(`DELETE FROM memories WHERE id = ?`, id); err != nil {
		return fmt.Errorf("memory: delete %d: %w", id, err)
	}
	return nil
}

// DeleteBySource removes every memory whose source tag equals the given
// string exactly and returns how many were removed.
func (s *Store) DeleteBySource(source string) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM memories WHERE source = ?`, source)
	if err != nil {
		return 0, fmt.Errorf("memory: delete by source %q: %w", source, err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// ─── Documents ───────────────────────────────────────────────────────────────

// RegisterDocument records an ingested document and returns its id.
func (s *Store) RegisterDocument(filename string) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO documents (filename) VALUES (?)`, filename)
	if err != nil {
		return 0, fmt.Errorf("memory: register document: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("memory: register document id: %w", err)
	}
	return id, nil
}

// Documents returns every registered document in insertion order.
func (s *Store) Documents() ([]Document, error) {
	rows, err := s.db.Query(`SELECT id, filename FROM documents ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("memory: list documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var docs []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.Filename); err != nil {
			return nil, fmt.Errorf("memory: list documents scan: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// AddDocument registers a document and stores its chunks in a single
// transaction, so a crash mid-ingest cannot leave orphaned chunks.
// Chunks keep their given order; each one carries the document's source
// tag and owning id. Returns the document id and the number stored.
func (s *Store) AddDocument(filename string, chunks []string) (int64, int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("memory: add document: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`INSERT INTO documents (filename) VALUES (?)`, filename)
	if err != nil {
		return 0, 0, fmt.Errorf("memory: add document: %w", err)
	}
	docID, err := res.LastInsertId()
	if err != nil {
		return 0, 0, fmt.Errorf("memory: add document id: %w", err)
	}

	source := SourceForDocument(filename)
	stored := 0
	for _, chunk := range chunks {
		if strings.TrimSpace(chunk) == "" {
			return 0, 0, ErrEmptyContent
		}
		if _, err := tx.Exec(
			`INSERT INTO memories (document_id, source, content) VALUES (?, ?, ?)`,
			docID, source, chunk,
		); err != nil {
			return 0, 0, fmt.Errorf("memory: add document chunk: %w", err)
		}
		stored++
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("memory: add document: commit: %w", err)
	}
	return docID, stored, nil
}

// RemoveDocument deletes a document record and every memory that
// belongs to it, returning the document's filename. Returns ErrNotFound
// when no document has the given id.
func (s *Store) RemoveDocument(id int64) (string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("memory: remove document: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var filename string
	err = tx.QueryRow(`SELECT filename FROM documents WHERE id = ?`, id).Scan(&filename)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("memory: remove document: %w", err)
	}

	// Delete by source tag, not just by owning id: memories written
	// through plain Insert carry the tag but no document_id, and they
	// must cascade too.
	if _, err := tx.Exec(
		`DELETE FROM memories WHERE source = ?`, SourceForDocument(filename),
	); err != nil {
		return "", fmt.Errorf("memory: remove document memories: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM documents WHERE id = ?`, id); err != nil {
		return "", fmt.Errorf("memory: remove document record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("memory: remove document: commit: %w", err)
	}
	return filename, nil
}

// ─── Stats ───────────────────────────────────────────────────────────────────

// Stats returns aggregate counts for the stats resource. Counts are
// best-effort reads; a failed scan leaves the count at zero.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{DatabasePath: s.path}

	_ = s.db.QueryRow(`SELECT COUNT(*) FROM memories`).Scan(&stats.TotalMemories)
	_ = s.db.QueryRow(`SELECT COUNT(*) FROM memories WHERE source = ?`, SourceUser).Scan(&stats.UserMemories)
	_ = s.db.QueryRow(`SELECT COUNT(*) FROM memories WHERE source = ?`, SourceOnline).Scan(&stats.OnlineMemories)
	_ = s.db.QueryRow(`SELECT COUNT(*) FROM memories WHERE source LIKE ?`, sourceDocumentPrefix+"%").Scan(&stats.DocumentMemories)
	_ = s.db.QueryRow(`SELECT COUNT(*) FROM documents`).Scan(&stats.TotalDocuments)

	return stats, nil
}
