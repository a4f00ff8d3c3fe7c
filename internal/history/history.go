// Package history stores successful resolutions in SQLite so operators can
// review what was shown during a session. The pure Go driver is the
// default; build with -tags cgo_sqlite for the CGO driver.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/Lectern/core/books"
	"github.com/FocuswithJustin/Lectern/core/passage"
)

// bookName restores the display name for a stored canonical book ID.
func bookName(id string) (string, bool) {
	b, ok := books.ByID(id)
	return b.Name, ok
}

const schema = `
CREATE TABLE IF NOT EXISTS resolutions (
	id          TEXT PRIMARY KEY,
	session_id  TEXT NOT NULL,
	input       TEXT NOT NULL,
	book        TEXT NOT NULL,
	chapter     INTEGER NOT NULL,
	start_verse INTEGER NOT NULL,
	end_verse   INTEGER NOT NULL,
	translation TEXT NOT NULL,
	reference   TEXT NOT NULL,
	created_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_resolutions_session ON resolutions(session_id, created_at);
`

// Entry is one recorded resolution.
type Entry struct {
	ID        string          `json:"id"`
	SessionID string          `json:"session_id"`
	Input     string          `json:"input"`
	Passage   passage.Passage `json:"passage"`
	Reference string          `json:"reference"`
	CreatedAt time.Time       `json:"created_at"`
}

// Store is a SQLite-backed resolution log.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path. Use
// ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	// SQLite handles one writer at a time; a single connection avoids
	// SQLITE_BUSY churn under the pure Go driver.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record logs one resolved passage for a session.
func (s *Store) Record(ctx context.Context, sessionID, input string, p passage.Passage) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO resolutions
		 (id, session_id, input, book, chapter, start_verse, end_verse, translation, reference, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), sessionID, input,
		p.Book, p.Chapter, p.StartVerse, p.EndVerse, p.Translation,
		p.Reference(), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("record resolution: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. A sessionID of ""
// returns entries from every session.
func (s *Store) Recent(ctx context.Context, sessionID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, session_id, input, book, chapter, start_verse, end_verse, translation, reference, created_at
	          FROM resolutions`
	args := []any{}
	if sessionID != "" {
		query += ` WHERE session_id = ?`
		args = append(args, sessionID)
	}
	query += ` ORDER BY rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Input,
			&e.Passage.Book, &e.Passage.Chapter, &e.Passage.StartVerse,
			&e.Passage.EndVerse, &e.Passage.Translation, &e.Reference, &created); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			e.CreatedAt = t
		}
		if b, ok := bookName(e.Passage.Book); ok {
			e.Passage.FullBookName = b
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}
	return entries, nil
}
