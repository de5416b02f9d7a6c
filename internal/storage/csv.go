// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/enigma-tui/internal/util"
)

// =============================================================================
// CSV LOG
// =============================================================================

// csvHeader is the column order written by CSVLog. Files with only the first
// three columns are still readable.
var csvHeader = []string{"Sender", "Timestamp", "Message", "ID"}

// legacyNamespace seeds stable IDs for rows written without an ID column.
var legacyNamespace = uuid.MustParse("6f1c4b5e-2d0a-4f57-9a43-6b0e1d9c7a21")

// CSVLog stores entries in a CSV file. Every append rewrites the file
// atomically, so concurrent readers never see a half-written row, and holds
// an advisory lock on <path>.lock, so concurrent writers in other processes
// never drop one another's rows.
type CSVLog struct {
	path   string
	mu     sync.Mutex
	closed bool
	now    func() time.Time
}

// NewCSVLog opens the CSV log at path, creating it with a header row if it
// does not exist.
func NewCSVLog(path string) (*CSVLog, error) {
	if path == "" {
		return nil, errors.New("csv log path is empty")
	}
	l := &CSVLog{path: path, now: time.Now}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		data, err := encodeCSV(nil)
		if err != nil {
			return nil, err
		}
		if err := util.AtomicWriteFile(path, data, 0600); err != nil {
			return nil, fmt.Errorf("failed to create message log: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat message log: %w", err)
	}
	return l, nil
}

// Path returns the CSV file location.
func (l *CSVLog) Path() string { return l.path }

// Append adds e to the end of the file.
func (l *CSVLog) Append(ctx context.Context, e Entry) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	e, err := prepare(e, l.now())
	if err != nil {
		return Entry{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return Entry{}, ErrClosed
	}

	// Other participants rewrite the same file; hold the sidecar lock across
	// the read-modify-rename so no row is lost.
	lock, err := acquireLock(l.path)
	if err != nil {
		return Entry{}, err
	}
	defer lock.Release()

	entries, err := l.read()
	if err != nil {
		return Entry{}, err
	}
	entries = append(entries, e)

	data, err := encodeCSV(entries)
	if err != nil {
		return Entry{}, err
	}
	if err := util.AtomicWriteFile(l.path, data, 0600); err != nil {
		return Entry{}, fmt.Errorf("failed to write message log: %w", err)
	}
	return e, nil
}

// List reads every row of the file. A missing file is an empty log.
func (l *CSVLog) List(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil, ErrClosed
	}
	return l.read()
}

// Close marks the log closed. There is no open handle to release.
func (l *CSVLog) Close() error {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	return nil
}

func (l *CSVLog) read() ([]Entry, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("failed to read message log: %w", err)
	}
	return decodeCSV(data)
}

// =============================================================================
// ENCODING
// =============================================================================

func encodeCSV(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err := w.Write([]string{e.Sender, e.FormatTimestamp(), e.Ciphertext, e.ID}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type csvColumns struct {
	sender, timestamp, message, id int
}

func decodeCSV(data []byte) ([]Entry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []Entry{}, nil
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptLog, err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	entries := []Entry{}
	for row := 1; ; row++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptLog, err)
		}
		e, err := decodeRow(rec, cols, row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func mapColumns(header []string) (csvColumns, error) {
	cols := csvColumns{-1, -1, -1, -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case "sender":
			cols.sender = i
		case "timestamp":
			cols.timestamp = i
		case "message":
			cols.message = i
		case "id":
			cols.id = i
		}
	}
	if cols.sender < 0 || cols.timestamp < 0 || cols.message < 0 {
		return cols, fmt.Errorf("%w: header %q lacks Sender, Timestamp or Message", ErrCorruptLog, strings.Join(header, ","))
	}
	return cols, nil
}

func decodeRow(rec []string, cols csvColumns, row int) (Entry, error) {
	field := func(i int) string {
		if i < 0 || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	e := Entry{
		ID:         field(cols.id),
		Sender:     field(cols.sender),
		Ciphertext: field(cols.message),
	}

	ts := field(cols.timestamp)
	t, err := time.ParseInLocation(TimestampLayout, strings.TrimSpace(ts), time.Local)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: row %d: bad timestamp %q", ErrCorruptLog, row, ts)
	}
	e.Timestamp = t

	if e.ID == "" {
		name := fmt.Sprintf("%d\x00%s\x00%s\x00%s", row, e.Sender, ts, e.Ciphertext)
		e.ID = uuid.NewSHA1(legacyNamespace, []byte(name)).String()
	}
	return e, nil
}
