// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/enigma-tui/internal/messaging"
	"github.com/jeranaias/enigma-tui/internal/util"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter renders a transcript in one document format.
type Exporter interface {
	// Export converts a transcript to the target format and returns the content.
	Export(t *Transcript) ([]byte, error)

	// FileExtension returns the file extension including the dot.
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// Transcript is a deciphered inbox plus where it came from.
type Transcript struct {
	// Log is the path (or DSN) of the message log.
	Log string `json:"log"`

	// Key is the machine key the messages were deciphered with. Empty when
	// the key is not to be disclosed.
	Key string `json:"key,omitempty"`

	ExportedAt time.Time           `json:"exported_at"`
	Messages   []messaging.Decoded `json:"messages"`
}

// =============================================================================
// FORMATS AND OPTIONS
// =============================================================================

// Format names an export format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Formats lists the supported formats in display order.
func Formats() []Format {
	return []Format{FormatMarkdown, FormatJSON, FormatHTML}
}

// ParseFormat accepts a format name or its usual file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want markdown, json or html)", s)
	}
}

// Options configures export behavior.
type Options struct {
	// IncludeCiphertext adds each stored ciphertext next to its plaintext.
	IncludeCiphertext bool

	// IncludeMetadata includes the header (log, key, export time, count).
	IncludeMetadata bool

	// Theme for HTML export ("light" or "dark").
	// Default: "dark"
	Theme string
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		IncludeMetadata: true,
		Theme:           "dark",
	}
}

// New returns the exporter for format.
func New(format Format, opts *Options) (Exporter, error) {
	switch format {
	case FormatJSON:
		return NewJSONExporter(opts), nil
	case FormatMarkdown:
		return NewMarkdownExporter(opts), nil
	case FormatHTML:
		return NewHTMLExporter(opts), nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// DefaultFilename is the name used when no output path is given,
// e.g. "messages_20250102_150405.md".
func DefaultFilename(exporter Exporter, at time.Time) string {
	return "messages_" + at.Format("20060102_150405") + exporter.FileExtension()
}

// ToFile renders t and writes it to path. An empty path means DefaultFilename
// in the current directory; a path that names an existing directory gets the
// default name inside it. Returns the path written.
func ToFile(t *Transcript, exporter Exporter, path string) (string, error) {
	content, err := exporter.Export(t)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	at := t.ExportedAt
	if at.IsZero() {
		at = time.Now()
	}
	if path == "" {
		path = DefaultFilename(exporter, at)
	} else if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, DefaultFilename(exporter, at))
	}

	if err := util.AtomicWriteFile(path, content, 0600); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func validate(t *Transcript) error {
	if t == nil {
		return fmt.Errorf("transcript is nil")
	}
	return nil
}

func exportedAt(t *Transcript) time.Time {
	if t.ExportedAt.IsZero() {
		return time.Now()
	}
	return t.ExportedAt
}

// formatTimestamp formats a timestamp for display.
func formatTimestamp(ts time.Time) string {
	return ts.Local().Format("January 2, 2006 at 3:04 PM")
}
