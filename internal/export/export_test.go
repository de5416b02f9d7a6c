// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/enigma-tui/internal/messaging"
	"github.com/jeranaias/enigma-tui/internal/storage"
)

func testTranscript() *Transcript {
	at := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	return &Transcript{
		Log:        "/tmp/messages.csv",
		Key:        "0:A 1:B 2:C / AB CD",
		ExportedAt: at.Add(time.Hour),
		Messages: []messaging.Decoded{
			{
				Entry:     storage.Entry{ID: "id-1", Sender: "Alice", Timestamp: at, Ciphertext: "RNHDB"},
				Plaintext: "HELLO",
			},
			{
				Entry:     storage.Entry{ID: "id-2", Sender: "<Bob>", Timestamp: at.Add(time.Minute), Ciphertext: "XYZ"},
				Plaintext: "A & B <script>",
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"md", FormatMarkdown},
		{".md", FormatMarkdown},
		{"markdown", FormatMarkdown},
		{"html", FormatHTML},
		{"htm", FormatHTML},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}

func TestNew_EveryFormat(t *testing.T) {
	exts := map[Format]string{FormatJSON: ".json", FormatMarkdown: ".md", FormatHTML: ".html"}
	for _, f := range Formats() {
		e, err := New(f, nil)
		require.NoError(t, err)
		assert.Equal(t, exts[f], e.FileExtension())
		assert.NotEmpty(t, e.MimeType())
	}

	_, err := New(Format("pdf"), nil)
	assert.Error(t, err)
}

func TestExport_NilTranscript(t *testing.T) {
	for _, f := range Formats() {
		e, err := New(f, nil)
		require.NoError(t, err)
		_, err = e.Export(nil)
		assert.Error(t, err, f)
	}
}

func TestJSONExporter(t *testing.T) {
	data, err := NewJSONExporter(&Options{IncludeMetadata: true, IncludeCiphertext: true}).Export(testTranscript())
	require.NoError(t, err)

	var got jsonTranscript
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "/tmp/messages.csv", got.Log)
	assert.Equal(t, "0:A 1:B 2:C / AB CD", got.Key)
	assert.Equal(t, 2, got.Count)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "Alice", got.Messages[0].Sender)
	assert.Equal(t, "HELLO", got.Messages[0].Plaintext)
	assert.Equal(t, "RNHDB", got.Messages[0].Ciphertext)
	assert.Equal(t, "2025-03-04T05:06:07Z", got.Messages[0].Timestamp)
}

func TestJSONExporter_WithoutMetadataOrCiphertext(t *testing.T) {
	data, err := NewJSONExporter(&Options{}).Export(testTranscript())
	require.NoError(t, err)

	s := string(data)
	assert.NotContains(t, s, "RNHDB")
	assert.NotContains(t, s, `"key"`)
	assert.NotContains(t, s, `"log"`)
	assert.Contains(t, s, `"plaintext": "HELLO"`)
}

func TestJSONExporter_EmptyHasMessagesArray(t *testing.T) {
	data, err := NewJSONExporter(nil).Export(&Transcript{})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"messages": []`)
	assert.Contains(t, string(data), `"count": 0`)
}

func TestMarkdownExporter(t *testing.T) {
	data, err := NewMarkdownExporter(&Options{IncludeMetadata: true, IncludeCiphertext: true}).Export(testTranscript())
	require.NoError(t, err)

	s := string(data)
	assert.True(t, strings.HasPrefix(s, "# Enigma Messages\n"))
	assert.Contains(t, s, "**Key**: `0:A 1:B 2:C / AB CD`")
	assert.Contains(t, s, "**Messages**: 2")
	assert.Contains(t, s, "## Alice\n")
	assert.Contains(t, s, "> HELLO\n")
	assert.Contains(t, s, "```\nRNHDB\n```")
	assert.Contains(t, s, `## \<Bob>`)
	assert.Less(t, strings.Index(s, "## Alice"), strings.Index(s, "Bob"))
}

func TestMarkdownExporter_Empty(t *testing.T) {
	data, err := NewMarkdownExporter(&Options{}).Export(&Transcript{})
	require.NoError(t, err)
	assert.Equal(t, "# Enigma Messages\n\n_No messages._\n", string(data))
}

func TestQuoteBlock_MultiLine(t *testing.T) {
	assert.Equal(t, "> one\n>\n> two\n", quoteBlock("one\n\ntwo\n"))
}

func TestHTMLExporter_EscapesContent(t *testing.T) {
	data, err := NewHTMLExporter(&Options{IncludeMetadata: true, IncludeCiphertext: true}).Export(testTranscript())
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, "<!DOCTYPE html>")
	assert.Contains(t, s, `class="dark-theme"`)
	assert.Contains(t, s, "&lt;Bob&gt;")
	assert.Contains(t, s, "A &amp; B &lt;script&gt;")
	assert.NotContains(t, s, "<script>")
	assert.Contains(t, s, `<pre class="ciphertext">RNHDB</pre>`)
}

func TestHTMLExporter_Theme(t *testing.T) {
	opts := &Options{Theme: "light"}
	data, err := NewHTMLExporter(opts).Export(&Transcript{})
	require.NoError(t, err)
	assert.Contains(t, string(data), `class="light-theme"`)
	assert.Contains(t, string(data), "No messages.")

	opts = &Options{Theme: "neon"}
	data, err = NewHTMLExporter(opts).Export(&Transcript{})
	require.NoError(t, err)
	assert.Contains(t, string(data), `class="dark-theme"`)
	assert.Equal(t, "neon", opts.Theme, "caller options untouched")
}

func TestToFile(t *testing.T) {
	dir := t.TempDir()
	tr := testTranscript()
	exporter := NewMarkdownExporter(nil)

	path, err := ToFile(tr, exporter, filepath.Join(dir, "out.md"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out.md"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	if os.PathSeparator == '/' {
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "> HELLO")
}

func TestToFile_Directory(t *testing.T) {
	dir := t.TempDir()
	tr := testTranscript()

	path, err := ToFile(tr, NewJSONExporter(nil), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "messages_20250304_060607.json"), path)
	assert.FileExists(t, path)
}

func TestDefaultFilename(t *testing.T) {
	at := time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "messages_20250102_150405.html", DefaultFilename(NewHTMLExporter(nil), at))
}
