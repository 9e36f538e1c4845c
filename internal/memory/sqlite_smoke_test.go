package memory_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func TestSQLiteSmokeTest(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "smoke.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	defer db.Close()

	// Enable WAL mode
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		t.Fatalf("failed to enable WAL mode: %v", err)
	}

	// Verify WAL mode is active
	var mode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("failed to query journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Fatalf("expected WAL mode, got %q", mode)
	}
}

func TestForeignKeyCascadeSmokeTest(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fk.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	defer db.Close()

	// The store relies on ON DELETE CASCADE, which is inert unless the
	// pragma is on. Verify the driver honors both.
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		t.Fatalf("failed to enable foreign_keys: %v", err)
	}

	_, err = db.Exec(`
		CREATE TABLE parents (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL);
		CREATE TABLE children (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			parent_id INTEGER REFERENCES parents(id) ON DELETE CASCADE,
			name      TEXT NOT NULL
		);
	`)
	if err != nil {
		t.Fatalf("failed to create tables: %v", err)
	}

	if _, err := db.Exec(`INSERT INTO parents (name) VALUES ('p')`); err != nil {
		t.Fatalf("failed to insert parent: %v", err)
	}
	for _, name := range []string{"c1", "c2"} {
		if _, err := db.Exec(`INSERT INTO children (parent_id, name) VALUES (1, ?)`, name); err != nil {
			t.Fatalf("failed to insert child %q: %v", name, err)
		}
	}

	if _, err := db.Exec(`DELETE FROM parents WHERE id = 1`); err != nil {
		t.Fatalf("failed to delete parent: %v", err)
	}

	var remaining int
	if err := db.QueryRow(`SELECT COUNT(*) FROM children`).Scan(&remaining); err != nil {
		t.Fatalf("failed to count children: %v", err)
	}
	if remaining != 0 {
		t.Errorf("children remaining after cascade = %d, want 0", remaining)
	}
}

func TestAutoincrementNeverReusesIDs(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "autoinc.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE items (id INTEGER PRIMARY KEY AUTOINCREMENT, v TEXT)`)
	if err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	res, err := db.Exec(`INSERT INTO items (v) VALUES ('a')`)
	if err != nil {
		t.Fatal(err)
	}
	first, _ := res.LastInsertId()

	// Without AUTOINCREMENT, deleting the max rowid would free it.
	if _, err := db.Exec(`DELETE FROM items WHERE id = ?`, first); err != nil {
		t.Fatal(err)
	}
	res, err = db.Exec(`INSERT INTO items (v) VALUES ('b')`)
	if err != nil {
		t.Fatal(err)
	}
	second, _ := res.LastInsertId()

	if second <= first {
		t.Errorf("second id = %d, want > %d", second, first)
	}
}

func TestSQLiteBusyTimeout(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "busy.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	defer db.Close()

	// Set busy timeout to 5 seconds (5000ms)
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		t.Fatalf("failed to set busy_timeout: %v", err)
	}

	// Verify it was set
	var timeout int
	if err := db.QueryRow("PRAGMA busy_timeout").Scan(&timeout); err != nil {
		t.Fatalf("failed to query busy_timeout: %v", err)
	}
	if timeout != 5000 {
		t.Fatalf("expected busy_timeout=5000, got %d", timeout)
	}
}
