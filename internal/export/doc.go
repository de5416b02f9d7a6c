// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export renders a deciphered inbox as a standalone document.
//
// # Supported Formats
//
//   - JSON: the inbox entries with their plaintext, machine-readable
//   - Markdown: one section per message
//   - HTML: a single page with embedded CSS, no scripts
//
// # Usage
//
//	exporter, err := export.New(export.FormatMarkdown, nil)
//	path, err := export.ToFile(transcript, exporter, "")
//
// Exports hold plaintext, so files are written owner-only (0600).
package export
