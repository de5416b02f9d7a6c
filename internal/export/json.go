// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"time"

	"github.com/jeranaias/enigma-tui/internal/messaging"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports transcripts to JSON.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

type jsonMessage struct {
	ID         string `json:"id"`
	Sender     string `json:"sender"`
	Timestamp  string `json:"timestamp"`
	Plaintext  string `json:"plaintext"`
	Ciphertext string `json:"ciphertext,omitempty"`
}

type jsonTranscript struct {
	Log        string        `json:"log,omitempty"`
	Key        string        `json:"key,omitempty"`
	ExportedAt string        `json:"exported_at,omitempty"`
	Count      int           `json:"count"`
	Messages   []jsonMessage `json:"messages"`
}

// Export converts a transcript to indented JSON. Timestamps are RFC 3339.
func (e *JSONExporter) Export(t *Transcript) ([]byte, error) {
	if err := validate(t); err != nil {
		return nil, err
	}

	out := jsonTranscript{
		Count:    len(t.Messages),
		Messages: make([]jsonMessage, 0, len(t.Messages)),
	}
	if e.options.IncludeMetadata {
		out.Log = t.Log
		out.Key = t.Key
		out.ExportedAt = exportedAt(t).Format(time.RFC3339)
	}
	for _, m := range t.Messages {
		out.Messages = append(out.Messages, e.message(m))
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (e *JSONExporter) message(m messaging.Decoded) jsonMessage {
	jm := jsonMessage{
		ID:        m.ID,
		Sender:    m.Sender,
		Timestamp: m.Timestamp.Format(time.RFC3339),
		Plaintext: m.Plaintext,
	}
	if e.options.IncludeCiphertext {
		jm.Ciphertext = m.Ciphertext
	}
	return jm
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
