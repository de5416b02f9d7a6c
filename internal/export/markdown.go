// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"

	"github.com/jeranaias/enigma-tui/internal/messaging"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports transcripts to Markdown.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts a transcript to Markdown.
func (e *MarkdownExporter) Export(t *Transcript) ([]byte, error) {
	if err := validate(t); err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString("# Enigma Messages\n\n")

	if e.options.IncludeMetadata {
		if t.Log != "" {
			fmt.Fprintf(&sb, "**Log**: `%s`  \n", t.Log)
		}
		if t.Key != "" {
			fmt.Fprintf(&sb, "**Key**: `%s`  \n", t.Key)
		}
		fmt.Fprintf(&sb, "**Exported**: %s  \n", formatTimestamp(exportedAt(t)))
		fmt.Fprintf(&sb, "**Messages**: %d\n\n", len(t.Messages))
		sb.WriteString("---\n\n")
	}

	if len(t.Messages) == 0 {
		sb.WriteString("_No messages._\n")
		return []byte(sb.String()), nil
	}

	for i, m := range t.Messages {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(e.renderMessage(m))
	}

	return []byte(sb.String()), nil
}

func (e *MarkdownExporter) renderMessage(m messaging.Decoded) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "## %s\n\n", escapeMarkdown(senderLabel(m.Sender)))
	fmt.Fprintf(&sb, "*%s*\n\n", formatTimestamp(m.Timestamp))
	sb.WriteString(quoteBlock(m.Plaintext))
	sb.WriteString("\n")

	if e.options.IncludeCiphertext {
		sb.WriteString("\n```\n")
		sb.WriteString(strings.ReplaceAll(m.Ciphertext, "```", "'''"))
		sb.WriteString("\n```\n")
	}
	return sb.String()
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

func senderLabel(sender string) string {
	if strings.TrimSpace(sender) == "" {
		return "Unknown"
	}
	return sender
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "#", `\#`, "[", `\[`, "]", `\]`, "<", `\<`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// quoteBlock renders text as a blockquote, one "> " per line.
func quoteBlock(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, l := range lines {
		if l == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + escapeMarkdown(l)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
