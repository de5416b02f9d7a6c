// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/jeranaias/enigma-tui/internal/ui/styles"
	"github.com/jeranaias/enigma-tui/internal/util"
)

// =============================================================================
// STATUS LINE COMPONENT
// =============================================================================

// Status is the kind of message on the status line.
type Status int

const (
	StatusNone Status = iota
	StatusInfo
	StatusSuccess
	StatusWarning
	StatusError
	StatusBusy
)

// String returns the display name for the status.
func (s Status) String() string {
	switch s {
	case StatusNone:
		return "None"
	case StatusInfo:
		return "Info"
	case StatusSuccess:
		return "Success"
	case StatusWarning:
		return "Warning"
	case StatusError:
		return "Error"
	case StatusBusy:
		return "Busy"
	default:
		return "Unknown"
	}
}

// StatusLine shows the outcome of the last action.
type StatusLine struct {
	status Status
	text   string
	width  int
	theme  *styles.Theme
}

// NewStatusLine creates an empty status line.
func NewStatusLine(theme *styles.Theme) *StatusLine {
	return &StatusLine{theme: theme, width: 80}
}

// Set replaces the status and text.
func (s *StatusLine) Set(status Status, text string) {
	s.status = status
	s.text = text
}

// Clear empties the line.
func (s *StatusLine) Clear() {
	s.Set(StatusNone, "")
}

// Status returns the current kind.
func (s *StatusLine) Status() Status {
	return s.status
}

// Text returns the current text without styling.
func (s *StatusLine) Text() string {
	return s.text
}

// SetWidth sets the available width.
func (s *StatusLine) SetWidth(width int) {
	s.width = width
}

// View renders the line, truncated to the width.
func (s *StatusLine) View() string {
	if s.status == StatusNone || s.text == "" {
		return ""
	}
	text := util.SingleLine(s.text)
	// Indicator, space and padding.
	if s.width > 8 {
		text = util.TruncateWidth(text, s.width-8)
	}

	var rendered string
	switch s.status {
	case StatusSuccess:
		rendered = styles.RenderSuccess(text)
	case StatusWarning:
		rendered = styles.RenderWarning(text)
	case StatusError:
		rendered = styles.RenderError(text)
	case StatusBusy:
		rendered = s.theme.ShortcutDesc.Render("... " + text)
	default:
		rendered = styles.RenderInfo(text)
	}
	return s.theme.StatusLine.Render(rendered)
}
