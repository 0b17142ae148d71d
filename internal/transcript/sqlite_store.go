package transcript

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nfrund/parley/internal/domain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS messages (
	seq     INTEGER PRIMARY KEY AUTOINCREMENT,
	id      TEXT NOT NULL UNIQUE,
	role    TEXT NOT NULL,
	author  TEXT NOT NULL,
	content TEXT NOT NULL,
	sent_at INTEGER NOT NULL
);`

// SQLiteStore is a Store backed by a local SQLite file. Messages keep their
// append order through the autoincrement seq column.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and applies
// the schema.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create database directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	slog.Info("Opened SQLite transcript store", "path", path)
	return &SQLiteStore{db: db}, nil
}

// Append implements Store.
func (s *SQLiteStore) Append(ctx context.Context, msg domain.Message) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, role, author, content, sent_at) VALUES (?, ?, ?, ?, ?)`,
		msg.ID, string(msg.Role), msg.Author, msg.Content, msg.SentAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert message %q: %w", msg.ID, err)
	}
	return nil
}

// Recent implements Store.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		limit = -1 // no limit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, role, author, content, sent_at FROM (
			SELECT * FROM messages ORDER BY seq DESC LIMIT ?
		) ORDER BY seq ASC`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	defer rows.Close()

	var out []domain.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, id string) (domain.Message, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, role, author, content, sent_at FROM messages WHERE id = ?`, id)
	m, err := scanMessage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Message{}, domain.ErrNotFound
	}
	return m, err
}

// Close implements Store.
func (s *SQLiteStore) Close(context.Context) error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMessage(sc scanner) (domain.Message, error) {
	var (
		m      domain.Message
		role   string
		sentAt int64
	)
	if err := sc.Scan(&m.ID, &role, &m.Author, &m.Content, &sentAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Message{}, err
		}
		return domain.Message{}, fmt.Errorf("failed to scan message: %w", err)
	}
	m.Role = domain.Role(role)
	m.SentAt = time.Unix(0, sentAt).UTC()
	return m, nil
}
