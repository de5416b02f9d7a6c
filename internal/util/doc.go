// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds small helpers shared by the storage, export, CLI and UI layers.
//
//   - AtomicWriteFile: crash-safe file replacement (temp file, fsync, rename)
//   - TruncateWidth / PadWidth: display-width aware column fitting for
//     terminal output, so wide runes never split a table cell
package util
