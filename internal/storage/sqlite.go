// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SchemaVersion is stored in the metadata table for future migrations.
const SchemaVersion = 1

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

-- Append order is rowid order.
CREATE TABLE IF NOT EXISTS messages (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    sender TEXT NOT NULL,
    sent_at INTEGER NOT NULL,   -- Unix timestamp
    ciphertext TEXT NOT NULL
);

INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', '1');
`

// =============================================================================
// SQLITE LOG
// =============================================================================

// SQLiteLog stores entries in a SQLite database.
type SQLiteLog struct {
	db   *sql.DB
	path string
	now  func() time.Time

	mu     sync.RWMutex
	closed bool
}

// NewSQLiteLog opens (or creates) the database at path.
func NewSQLiteLog(path string) (*SQLiteLog, error) {
	if path == "" {
		return nil, errors.New("sqlite log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite has a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteLog{db: db, path: path, now: time.Now}, nil
}

// Path returns the database file location.
func (l *SQLiteLog) Path() string { return l.path }

// Append inserts e as the newest row.
func (l *SQLiteLog) Append(ctx context.Context, e Entry) (Entry, error) {
	e, err := prepare(e, l.now())
	if err != nil {
		return Entry{}, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return Entry{}, ErrClosed
	}

	_, err = l.db.ExecContext(ctx,
		"INSERT INTO messages (id, sender, sent_at, ciphertext) VALUES (?, ?, ?, ?)",
		e.ID, e.Sender, e.Timestamp.Unix(), e.Ciphertext)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to insert message: %w", err)
	}
	return e, nil
}

// List returns all rows in insertion order.
func (l *SQLiteLog) List(ctx context.Context) ([]Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return nil, ErrClosed
	}

	rows, err := l.db.QueryContext(ctx,
		"SELECT id, sender, sent_at, ciphertext FROM messages ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e      Entry
			sentAt int64
		)
		if err := rows.Scan(&e.ID, &e.Sender, &sentAt, &e.Ciphertext); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		e.Timestamp = time.Unix(sentAt, 0)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}
	return entries, nil
}

// Count returns the number of stored messages.
func (l *SQLiteLog) Count(ctx context.Context) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return 0, ErrClosed
	}
	var n int
	if err := l.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM messages").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Close releases the database handle.
func (l *SQLiteLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	return l.db.Close()
}
