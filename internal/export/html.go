// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/jeranaias/enigma-tui/internal/messaging"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports transcripts to a single HTML page with embedded CSS.
type HTMLExporter struct {
	options *Options
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	o := *opts
	if o.Theme != "light" {
		o.Theme = "dark"
	}
	return &HTMLExporter{options: &o}
}

// Export converts a transcript to HTML. All log content is escaped.
func (e *HTMLExporter) Export(t *Transcript) ([]byte, error) {
	if err := validate(t); err != nil {
		return nil, err
	}

	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	sb.WriteString("    <title>Enigma Messages</title>\n")
	sb.WriteString("    <meta name=\"generator\" content=\"enigma\">\n")
	fmt.Fprintf(&sb, "    <meta name=\"date\" content=\"%s\">\n", exportedAt(t).Format(time.RFC3339))
	sb.WriteString(e.getCSS())
	sb.WriteString("</head>\n")
	fmt.Fprintf(&sb, "<body class=\"%s-theme\">\n", e.options.Theme)
	sb.WriteString("    <div class=\"container\">\n")

	if e.options.IncludeMetadata {
		sb.WriteString(e.renderHeader(t))
	}

	sb.WriteString("        <main class=\"messages\">\n")
	if len(t.Messages) == 0 {
		sb.WriteString("            <p class=\"empty\">No messages.</p>\n")
	}
	for _, m := range t.Messages {
		sb.WriteString(e.renderMessage(m))
	}
	sb.WriteString("        </main>\n")

	sb.WriteString("    </div>\n")
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html"
}

// =============================================================================
// RENDERING FUNCTIONS
// =============================================================================

func (e *HTMLExporter) renderHeader(t *Transcript) string {
	var sb strings.Builder

	sb.WriteString("        <header class=\"header\">\n")
	sb.WriteString("            <h1>Enigma Messages</h1>\n")
	sb.WriteString("            <div class=\"metadata\">\n")
	if t.Log != "" {
		fmt.Fprintf(&sb, "                <span class=\"meta-item\"><strong>Log:</strong> <code>%s</code></span>\n", html.EscapeString(t.Log))
	}
	if t.Key != "" {
		fmt.Fprintf(&sb, "                <span class=\"meta-item\"><strong>Key:</strong> <code>%s</code></span>\n", html.EscapeString(t.Key))
	}
	fmt.Fprintf(&sb, "                <span class=\"meta-item\"><strong>Exported:</strong> %s</span>\n", formatTimestamp(exportedAt(t)))
	fmt.Fprintf(&sb, "                <span class=\"meta-item\"><strong>Messages:</strong> %d</span>\n", len(t.Messages))
	sb.WriteString("            </div>\n")
	sb.WriteString("        </header>\n")

	return sb.String()
}

func (e *HTMLExporter) renderMessage(m messaging.Decoded) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "            <div class=\"message\" id=\"m-%s\">\n", html.EscapeString(m.ID))
	sb.WriteString("                <div class=\"message-header\">\n")
	fmt.Fprintf(&sb, "                    <span class=\"sender\">%s</span>\n", html.EscapeString(senderLabel(m.Sender)))
	fmt.Fprintf(&sb, "                    <time datetime=\"%s\">%s</time>\n",
		m.Timestamp.Format(time.RFC3339), formatTimestamp(m.Timestamp))
	sb.WriteString("                </div>\n")
	fmt.Fprintf(&sb, "                <div class=\"plaintext\">%s</div>\n", renderText(m.Plaintext))
	if e.options.IncludeCiphertext {
		fmt.Fprintf(&sb, "                <pre class=\"ciphertext\">%s</pre>\n", html.EscapeString(m.Ciphertext))
	}
	sb.WriteString("            </div>\n")

	return sb.String()
}

// renderText escapes text and keeps its line breaks.
func renderText(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br>\n")
}

func (e *HTMLExporter) getCSS() string {
	return `    <style>
        :root { --radius: 6px; }
        .dark-theme { --bg: #1e1b2e; --surface: #2a2540; --text: #e8e6f0; --muted: #8b85a0; --accent: #a78bfa; --cipher: #22d3ee; }
        .light-theme { --bg: #f7f7fb; --surface: #ffffff; --text: #1f1d2b; --muted: #6b6880; --accent: #7c3aed; --cipher: #0e7490; }
        body { margin: 0; background: var(--bg); color: var(--text); font-family: -apple-system, "Segoe UI", Roboto, sans-serif; line-height: 1.5; }
        .container { max-width: 860px; margin: 0 auto; padding: 24px; }
        .header h1 { margin: 0 0 8px; color: var(--accent); }
        .metadata { display: flex; flex-wrap: wrap; gap: 16px; color: var(--muted); font-size: 0.9em; }
        .message { background: var(--surface); border-radius: var(--radius); padding: 12px 16px; margin: 12px 0; }
        .message-header { display: flex; justify-content: space-between; margin-bottom: 6px; }
        .sender { font-weight: 600; color: var(--accent); }
        time { color: var(--muted); font-size: 0.85em; }
        .plaintext { white-space: normal; word-wrap: break-word; }
        .ciphertext { margin: 8px 0 0; color: var(--cipher); font-family: "JetBrains Mono", Consolas, monospace; white-space: pre-wrap; word-break: break-all; }
        .empty { color: var(--muted); font-style: italic; }
    </style>
`
}
