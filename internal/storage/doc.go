// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage is the shared message log: an append-only list of
// ciphertext entries that every participant reads and writes.
//
// # Key Types
//
//   - Entry: one logged message (ID, sender, timestamp, ciphertext)
//   - Log: the backend interface
//   - CSVLog: the messages.csv format (Sender,Timestamp,Message,ID)
//   - SQLiteLog: a single-table SQLite database in WAL mode
//
// # Usage
//
//	log, err := storage.Open(storage.BackendCSV, path)
//	entry, err := log.Append(ctx, storage.Entry{Sender: "alice", Ciphertext: "RNHDB"})
//	entries, err := log.List(ctx)
//
// Watch reports changes made by other processes so readers can refresh.
//
// The log never holds plaintext. Entries are returned in append order.
package storage
