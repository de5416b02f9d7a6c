// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openBackends returns a fresh log of every backend.
func openBackends(t *testing.T) map[string]Log {
	t.Helper()
	dir := t.TempDir()

	csvLog, err := Open(BackendCSV, filepath.Join(dir, "messages.csv"))
	require.NoError(t, err)
	sqlLog, err := Open(BackendSQLite, filepath.Join(dir, "messages.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		csvLog.Close()
		sqlLog.Close()
	})
	return map[string]Log{BackendCSV: csvLog, BackendSQLite: sqlLog}
}

// =============================================================================
// SHARED BEHAVIOUR
// =============================================================================

func TestLog_AppendAndListInOrder(t *testing.T) {
	for name, log := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			empty, err := log.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, empty)

			first, err := log.Append(ctx, Entry{Sender: "alice", Ciphertext: "RNHDB"})
			require.NoError(t, err)
			second, err := log.Append(ctx, Entry{Sender: "bob", Ciphertext: "RNHDB, TFUOL!"})
			require.NoError(t, err)

			assert.NotEmpty(t, first.ID)
			assert.NotEqual(t, first.ID, second.ID)
			assert.False(t, first.Timestamp.IsZero())

			entries, err := log.List(ctx)
			require.NoError(t, err)
			require.Len(t, entries, 2)

			assert.Equal(t, first.ID, entries[0].ID)
			assert.Equal(t, "alice", entries[0].Sender)
			assert.Equal(t, "RNHDB", entries[0].Ciphertext)
			assert.True(t, first.Timestamp.Equal(entries[0].Timestamp))

			assert.Equal(t, "bob", entries[1].Sender)
			assert.Equal(t, "RNHDB, TFUOL!", entries[1].Ciphertext)
		})
	}
}

func TestLog_KeepsGivenIDAndTimestamp(t *testing.T) {
	when := time.Date(2024, 3, 1, 12, 30, 45, 999, time.Local)

	for name, log := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			e, err := log.Append(ctx, Entry{ID: "fixed-id", Sender: "carol", Timestamp: when, Ciphertext: "X"})
			require.NoError(t, err)
			assert.Equal(t, "fixed-id", e.ID)

			entries, err := log.List(ctx)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, "fixed-id", entries[0].ID)
			assert.True(t, when.Truncate(time.Second).Equal(entries[0].Timestamp))
		})
	}
}

func TestLog_RejectsIncompleteEntries(t *testing.T) {
	for name, log := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := log.Append(ctx, Entry{Sender: "  ", Ciphertext: "ABC"})
			assert.ErrorIs(t, err, ErrInvalidEntry)

			_, err = log.Append(ctx, Entry{Sender: "alice"})
			assert.ErrorIs(t, err, ErrInvalidEntry)

			entries, err := log.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestLog_ClosedLogFails(t *testing.T) {
	for name, log := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, log.Close())

			_, err := log.List(context.Background())
			assert.ErrorIs(t, err, ErrClosed)
			_, err = log.Append(context.Background(), Entry{Sender: "a", Ciphertext: "B"})
			assert.ErrorIs(t, err, ErrClosed)
		})
	}
}

func TestLog_ReopenSeesExistingEntries(t *testing.T) {
	for _, backend := range []string{BackendCSV, BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "log")
			ctx := context.Background()

			log, err := Open(backend, path)
			require.NoError(t, err)
			_, err = log.Append(ctx, Entry{Sender: "alice", Ciphertext: "ABC"})
			require.NoError(t, err)
			require.NoError(t, log.Close())

			reopened, err := Open(backend, path)
			require.NoError(t, err)
			defer reopened.Close()

			entries, err := reopened.List(ctx)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, "ABC", entries[0].Ciphertext)
			assert.Equal(t, path, reopened.Path())
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open("postgres", filepath.Join(t.TempDir(), "x"))
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestOpen_EmptyBackendIsCSV(t *testing.T) {
	log, err := Open("", filepath.Join(t.TempDir(), "messages.csv"))
	require.NoError(t, err)
	defer log.Close()

	_, ok := log.(*CSVLog)
	assert.True(t, ok)
}

// =============================================================================
// CSV FORMAT
// =============================================================================

func TestCSVLog_CreatesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "messages.csv")

	_, err := NewCSVLog(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Sender,Timestamp,Message,ID\n", string(data))
}

func TestCSVLog_FileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.csv")
	log, err := NewCSVLog(path)
	require.NoError(t, err)

	when := time.Date(2024, 5, 17, 9, 4, 5, 0, time.Local)
	_, err = log.Append(context.Background(), Entry{
		ID: "id-1", Sender: "alice", Timestamp: when, Ciphertext: "RNHDB, TFUOL!",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `alice,2024-05-17 09:04:05,"RNHDB, TFUOL!",id-1`, lines[1])
}

func TestCSVLog_ReadsLegacyFileWithStableIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.csv")
	legacy := "Sender,Timestamp,Message\n" +
		"alice,2024-01-02 03:04:05,RNHDB\n" +
		"bob,2024-01-02 03:05:00,\"RNHDB, TFUOL!\"\n"
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0600))

	log, err := NewCSVLog(path)
	require.NoError(t, err)
	ctx := context.Background()

	entries, err := log.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "alice", entries[0].Sender)
	assert.Equal(t, "RNHDB, TFUOL!", entries[1].Ciphertext)
	assert.NotEmpty(t, entries[0].ID)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
	assert.True(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local).Equal(entries[0].Timestamp))

	again, err := log.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, entries[0].ID, again[0].ID)

	// Appending upgrades the file to the four-column layout and keeps the IDs.
	_, err = log.Append(ctx, Entry{Sender: "carol", Ciphertext: "Q"})
	require.NoError(t, err)

	upgraded, err := log.List(ctx)
	require.NoError(t, err)
	require.Len(t, upgraded, 3)
	assert.Equal(t, entries[0].ID, upgraded[0].ID)
	assert.Equal(t, entries[1].ID, upgraded[1].ID)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Sender,Timestamp,Message,ID\n"))
}

func TestCSVLog_CorruptFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing columns", "Name,When\nalice,now\n"},
		{"bad timestamp", "Sender,Timestamp,Message\nalice,yesterday,ABC\n"},
		{"bad quoting", "Sender,Timestamp,Message\nalice,2024-01-02 03:04:05,\"ABC\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "messages.csv")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			log, err := NewCSVLog(path)
			require.NoError(t, err)

			_, err = log.List(context.Background())
			assert.ErrorIs(t, err, ErrCorruptLog)
		})
	}
}

func TestCSVLog_EmptyFileIsEmptyLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.csv")
	require.NoError(t, os.WriteFile(path, nil, 0600))

	log, err := NewCSVLog(path)
	require.NoError(t, err)

	entries, err := log.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCSVLog_CancelledContext(t *testing.T) {
	log, err := NewCSVLog(filepath.Join(t.TempDir(), "messages.csv"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = log.Append(ctx, Entry{Sender: "a", Ciphertext: "B"})
	assert.True(t, errors.Is(err, context.Canceled))
}

// =============================================================================
// SQLITE
// =============================================================================

func TestCSVLog_SeparateWritersKeepEveryRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.csv")
	const writers, perWriter = 4, 15

	var wg sync.WaitGroup
	errs := make(chan error, writers*perWriter)
	for w := 0; w < writers; w++ {
		// Each writer has its own CSVLog, as separate participants do.
		l, err := NewCSVLog(path)
		require.NoError(t, err)
		t.Cleanup(func() { l.Close() })

		wg.Add(1)
		go func(w int, l *CSVLog) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_, err := l.Append(context.Background(), Entry{
					Sender:     fmt.Sprintf("writer-%d", w),
					Ciphertext: fmt.Sprintf("MSG%d", i),
				})
				errs <- err
			}
		}(w, l)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	reader, err := NewCSVLog(path)
	require.NoError(t, err)
	entries, err := reader.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, writers*perWriter)
	assert.FileExists(t, path+lockSuffix)
}

func TestSQLiteLog_Count(t *testing.T) {
	log, err := NewSQLiteLog(filepath.Join(t.TempDir(), "messages.db"))
	require.NoError(t, err)
	defer log.Close()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := log.Append(ctx, Entry{Sender: "alice", Ciphertext: "ABC"})
		require.NoError(t, err)
	}

	n, err := log.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestSQLiteLog_DuplicateIDRejected(t *testing.T) {
	log, err := NewSQLiteLog(filepath.Join(t.TempDir(), "messages.db"))
	require.NoError(t, err)
	defer log.Close()
	ctx := context.Background()

	_, err = log.Append(ctx, Entry{ID: "same", Sender: "alice", Ciphertext: "A"})
	require.NoError(t, err)
	_, err = log.Append(ctx, Entry{ID: "same", Sender: "bob", Ciphertext: "B"})
	assert.Error(t, err)
}

// =============================================================================
// WATCH
// =============================================================================

func TestWatch_NotifiesOnAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.csv")
	log, err := NewCSVLog(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- WatchWithDebounce(ctx, path, 20*time.Millisecond, func() {
			changed <- struct{}{}
		})
	}()

	// Keep appending until the watcher (which starts asynchronously) reports.
	require.Eventually(t, func() bool {
		if _, err := log.Append(context.Background(), Entry{Sender: "alice", Ciphertext: "ABC"}); err != nil {
			return false
		}
		select {
		case <-changed:
			return true
		case <-time.After(100 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "messages.csv")
	err := Watch(context.Background(), path, func() {})
	assert.Error(t, err)
}

func TestIsLogEvent(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: "/d/messages.db", Op: fsnotify.Write}, true},
		{"create by rename", fsnotify.Event{Name: "/d/messages.db", Op: fsnotify.Create}, true},
		{"wal sidecar", fsnotify.Event{Name: "/d/messages.db-wal", Op: fsnotify.Write}, true},
		{"chmod only", fsnotify.Event{Name: "/d/messages.db", Op: fsnotify.Chmod}, false},
		{"temp file", fsnotify.Event{Name: "/d/.messages.db.tmp-123", Op: fsnotify.Create}, false},
		{"lock sidecar", fsnotify.Event{Name: "/d/messages.db.lock", Op: fsnotify.Create}, false},
		{"other file", fsnotify.Event{Name: "/d/config.toml", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isLogEvent(tt.event, "messages.db"))
		})
	}
}
