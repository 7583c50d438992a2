package corpus

import (
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// writeFile creates a file under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// setupTestDB creates a SQLite database holding the given receipts and
// returns its DSN.
func setupTestDB(t *testing.T, receipts ...any) string {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "receipts.db")
	db, err := openDB(dsn)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer func(db *sql.DB) {
		_ = db.Close()
	}(db)

	if _, err := db.Exec(`CREATE TABLE receipts (id INTEGER PRIMARY KEY, body TEXT)`); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	for _, body := range receipts {
		if _, err := db.Exec(`INSERT INTO receipts (body) VALUES (?)`, body); err != nil {
			t.Fatalf("failed to insert receipt: %v", err)
		}
	}
	return dsn
}

// collect reads every corpus of src into memory.
func collect(t *testing.T, src Source) (names, texts []string, err error) {
	t.Helper()
	err = src.Each(t.Context(), func(name string, r io.Reader) error {
		data, readErr := io.ReadAll(r)
		if readErr != nil {
			return readErr
		}
		names = append(names, name)
		texts = append(texts, string(data))
		return nil
	})
	return names, texts, err
}
