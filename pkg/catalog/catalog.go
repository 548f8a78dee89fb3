// Package catalog keeps an embedded SQLite index of every note Quill has
// written: which message produced it, from which chat, its content kind,
// and where in the vault it landed. The vault stays the source of truth —
// the catalog only answers "how many, how recent" for /status and the
// startup banner without walking the vault.
package catalog

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const timeLayout = "2006-01-02 15:04:05"

// Catalog is the note index. Safe for concurrent use.
type Catalog struct {
	db   *sql.DB
	path string
}

// Entry is one indexed note.
type Entry struct {
	ID        int64
	MessageID int64
	ChatID    int64
	Kind      string
	Path      string
	CreatedAt time.Time
}

// Stats holds catalog counters.
type Stats struct {
	Notes  int
	LastAt *time.Time
}

// Open opens (creating if needed) the catalog under dir. The sqlite
// driver must be registered by the importing program.
func Open(dir string) (*Catalog, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create catalog dir %s: %w", dir, err)
	}
	dbPath := filepath.Join(dir, "catalog.db")

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping catalog db: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS notes (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			message_id INTEGER NOT NULL,
			chat_id    INTEGER NOT NULL,
			kind       TEXT NOT NULL,
			path       TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_created_at ON notes(created_at)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init catalog schema: %w", err)
		}
	}

	c := &Catalog{db: db, path: dbPath}
	slog.Info("catalog opened", "path", dbPath, "notes", c.mustCount())
	return c, nil
}

// Close closes the catalog database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Record indexes one written note.
func (c *Catalog) Record(messageID, chatID int64, kind, path string) (int64, error) {
	now := time.Now().UTC().Format(timeLayout)
	res, err := c.db.Exec(
		`INSERT INTO notes (message_id, chat_id, kind, path, created_at) VALUES (?, ?, ?, ?, ?)`,
		messageID, chatID, kind, path, now,
	)
	if err != nil {
		return 0, fmt.Errorf("record note: %w", err)
	}
	id, _ := res.LastInsertId()
	slog.Debug("note recorded", "id", id, "path", path, "kind", kind)
	return id, nil
}

// Stats returns the note count and the newest capture time.
func (c *Catalog) Stats() (Stats, error) {
	var s Stats
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM notes`).Scan(&s.Notes); err != nil {
		return Stats{}, fmt.Errorf("catalog stats: %w", err)
	}
	var last sql.NullString
	if err := c.db.QueryRow(`SELECT MAX(created_at) FROM notes`).Scan(&last); err != nil {
		return Stats{}, fmt.Errorf("catalog stats: %w", err)
	}
	if last.Valid {
		t, err := time.Parse(timeLayout, last.String)
		if err == nil {
			s.LastAt = &t
		}
	}
	return s, nil
}

// Recent returns the newest n entries, newest first.
func (c *Catalog) Recent(n int) ([]Entry, error) {
	rows, err := c.db.Query(
		`SELECT id, message_id, chat_id, kind, path, created_at
		 FROM notes ORDER BY id DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("list recent notes: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.MessageID, &e.ChatID, &e.Kind, &e.Path, &created); err != nil {
			return nil, fmt.Errorf("scan note entry: %w", err)
		}
		e.CreatedAt, _ = time.Parse(timeLayout, created)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (c *Catalog) mustCount() int {
	var n int
	c.db.QueryRow(`SELECT COUNT(*) FROM notes`).Scan(&n)
	return n
}
