// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrUnknownBackend is returned by Open for an unrecognised backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")

	// ErrInvalidEntry is returned by Append when sender or ciphertext is empty.
	ErrInvalidEntry = errors.New("invalid log entry")

	// ErrCorruptLog is returned when a log file cannot be parsed.
	ErrCorruptLog = errors.New("corrupt message log")

	// ErrClosed is returned by operations on a closed log.
	ErrClosed = errors.New("message log is closed")
)

// =============================================================================
// TYPES
// =============================================================================

// Backend names accepted by Open.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// TimestampLayout is the on-disk timestamp format of the CSV log.
const TimestampLayout = "2006-01-02 15:04:05"

// Entry is one message in the log. Ciphertext is stored exactly as produced
// by the cipher engine.
type Entry struct {
	ID         string    `json:"id"`
	Sender     string    `json:"sender"`
	Timestamp  time.Time `json:"timestamp"`
	Ciphertext string    `json:"message"`
}

// FormatTimestamp renders the entry time in TimestampLayout.
func (e Entry) FormatTimestamp() string {
	return e.Timestamp.Local().Format(TimestampLayout)
}

// Log is an append-only message log shared between participants.
type Log interface {
	// Append stores e, filling ID and Timestamp when they are zero, and
	// returns the entry as stored.
	Append(ctx context.Context, e Entry) (Entry, error)

	// List returns every entry in append order.
	List(ctx context.Context) ([]Entry, error)

	// Path is the file backing the log.
	Path() string

	Close() error
}

// Open returns the log backend named by backend at path.
func Open(backend, path string) (Log, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendCSV, "":
		return NewCSVLog(path)
	case BackendSQLite:
		return NewSQLiteLog(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// prepare validates e and fills in defaults. Timestamps are kept at second
// precision so every backend round-trips them identically.
func prepare(e Entry, now time.Time) (Entry, error) {
	if strings.TrimSpace(e.Sender) == "" {
		return Entry{}, fmt.Errorf("%w: sender is required", ErrInvalidEntry)
	}
	if e.Ciphertext == "" {
		return Entry{}, fmt.Errorf("%w: ciphertext is required", ErrInvalidEntry)
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = now
	}
	e.Timestamp = e.Timestamp.Truncate(time.Second)
	return e, nil
}
