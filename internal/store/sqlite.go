// ABOUTME: SQLite implementation of the conversation log using modernc.org/sqlite
// ABOUTME: AUTOINCREMENT ids give the monotonic ordering guarantee

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements MessageLog backed by a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) the log database at the given path.
// The schema is automatically created if it doesn't exist. Parent
// directories are created if needed.
func NewSQLiteStore(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "store")

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the messages table if it doesn't exist.
// AUTOINCREMENT guarantees ids strictly increase and are never reused, which
// is the whole ordering contract of the log.
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			text TEXT NOT NULL,
			sender TEXT NOT NULL,

			CHECK (sender IN ('user', 'bot', 'robot'))
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// AppendMessage inserts a new log entry. SQLite serializes writers, so id
// assignment stays unique and monotonic under concurrent requests.
func (s *SQLiteStore) AppendMessage(ctx context.Context, text string, sender Sender) (*Message, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (text, sender) VALUES (?, ?)`,
		text, string(sender),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading inserted id: %w", err)
	}

	s.logger.Debug("appended message", "id", id, "sender", sender)
	return &Message{ID: id, Text: text, Sender: sender}, nil
}

// ListMessages returns every log entry ordered by id ascending, oldest first.
func (s *SQLiteStore) ListMessages(ctx context.Context) ([]*Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, sender FROM messages ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		var msg Message
		var sender string
		if err := rows.Scan(&msg.ID, &msg.Text, &sender); err != nil {
			return nil, fmt.Errorf("scanning message row: %w", err)
		}
		msg.Sender = Sender(sender)
		messages = append(messages, &msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating message rows: %w", err)
	}

	return messages, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.logger.Info("closing SQLite store")
	return s.db.Close()
}

var _ MessageLog = (*SQLiteStore)(nil)
