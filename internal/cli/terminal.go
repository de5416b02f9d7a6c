// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Terminal detection.
//
// Colors and the TUI need a real terminal; piped input and output get
// neither.

package cli

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// isTerminalReader reports whether r is a terminal file. Readers that are
// not files (tests, pipes wrapped in bufio) never are.
func isTerminalReader(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// isTerminalWriter reports whether w is a terminal file.
func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// DefaultTerminalWidth is used when the width cannot be read.
const DefaultTerminalWidth = 80

// terminalWidth returns the column count of w, or DefaultTerminalWidth.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return DefaultTerminalWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	return width
}

// =============================================================================
// COLOR OUTPUT CONTROL
// =============================================================================

var (
	colorMu      sync.Mutex
	colorChecked bool
	colorOn      bool
)

// ColorsEnabled reports whether output should be colored: never with
// NO_COLOR (https://no-color.org/), always with FORCE_COLOR, otherwise only
// when stdout is a terminal. The answer is computed once.
func ColorsEnabled() bool {
	colorMu.Lock()
	defer colorMu.Unlock()
	if !colorChecked {
		colorOn = detectColors()
		colorChecked = true
	}
	return colorOn
}

func detectColors() bool {
	switch {
	case os.Getenv("NO_COLOR") != "":
		return false
	case os.Getenv("FORCE_COLOR") != "":
		return true
	default:
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}

// ForceColorsEnabled overrides detection and resets the lipgloss profile to
// match. Tests only.
func ForceColorsEnabled(enabled bool) {
	colorMu.Lock()
	colorOn, colorChecked = enabled, true
	colorMu.Unlock()
	lipgloss.SetColorProfile(GetColorProfile())
}

// GetColorProfile returns Ascii when colors are disabled, otherwise the
// profile termenv detects for this terminal.
func GetColorProfile() termenv.Profile {
	if !ColorsEnabled() {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}
