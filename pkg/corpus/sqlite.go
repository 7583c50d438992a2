package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
)

// SQLiteSource reads corpora from a SQLite database. Query must select a
// single text column; every non-empty row is one corpus.
type SQLiteSource struct {
	DSN   string
	Query string
}

// Name identifies the source in logs and errors.
func (s SQLiteSource) Name() string { return "sqlite:" + s.DSN }

// Each runs Query and passes every non-empty row to fn, named by DSN and
// row number.
func (s SQLiteSource) Each(ctx context.Context, fn func(string, io.Reader) error) error {
	db, err := openDB(s.DSN)
	if err != nil {
		return fmt.Errorf("could not open corpus database: %w", err)
	}
	defer func(db *sql.DB) {
		_ = db.Close()
	}(db)

	rows, err := db.QueryContext(ctx, s.Query)
	if err != nil {
		return fmt.Errorf("could not query corpus database: %w", err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	row := 0
	for rows.Next() {
		row++
		var text sql.NullString
		if err := rows.Scan(&text); err != nil {
			return fmt.Errorf("could not scan corpus row %d: %w", row, err)
		}
		if !text.Valid || text.String == "" {
			continue
		}
		if err := fn(fmt.Sprintf("%s#%d", s.DSN, row), strings.NewReader(text.String)); err != nil {
			return err
		}
	}
	return rows.Err()
}
