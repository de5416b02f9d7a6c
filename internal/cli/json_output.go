// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - JSON output support.
//
// Every command that prints data wraps it in the same envelope so scripts
// can check "success" before reading "data".
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jeranaias/enigma-tui/internal/enigma"
	"github.com/jeranaias/enigma-tui/internal/messaging"
)

// JSONResponse is the standardized response format for all CLI commands.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is the ISO8601 timestamp when the response was generated
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a new error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Print outputs the JSON response to stdout.
func (r *JSONResponse) Print() error {
	return r.Fprint(os.Stdout)
}

// Fprint writes the indented response to w.
func (r *JSONResponse) Fprint(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// String returns the JSON response as a string.
func (r *JSONResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":"failed to marshal response: %s","timestamp":"%s"}`,
			err.Error(), time.Now().UTC().Format(time.RFC3339))
	}
	return string(data)
}

// =============================================================================
// RESPONSE DATA TYPES
// =============================================================================

// EncodeData is the payload of encode and decode.
type EncodeData struct {
	Input          string `json:"input"`
	Output         string `json:"output"`
	Key            string `json:"key"`
	StartPositions string `json:"start_positions"`
	EndPositions   string `json:"end_positions"`
}

// SendData is the payload of send. The plaintext is deliberately absent.
type SendData struct {
	ID         string `json:"id"`
	Sender     string `json:"sender"`
	Timestamp  string `json:"timestamp"`
	Ciphertext string `json:"ciphertext"`
	Log        string `json:"log"`
}

// InboxData is the payload of inbox.
type InboxData struct {
	Log      string              `json:"log"`
	Count    int                 `json:"count"`
	Messages []messaging.Decoded `json:"messages"`
}

// ExportData is the payload of export.
type ExportData struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Count  int    `json:"count"`
}

// RotorsData is the payload of rotors.
type RotorsData struct {
	Reflector string             `json:"reflector"`
	Rotors    []enigma.RotorInfo `json:"rotors"`
}

// ConfigData is the payload of config show.
type ConfigData struct {
	Path   string      `json:"path"`
	Exists bool        `json:"exists"`
	Config interface{} `json:"config"`
}

// VersionData is the payload of version.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}
