// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components of the TUI.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// HEADER AND TABS
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderKey   lipgloss.Style
	Tab         lipgloss.Style
	TabActive   lipgloss.Style
	TabGap      lipgloss.Style

	// ==========================================================================
	// FORM FIELDS
	// ==========================================================================

	FieldLabel        lipgloss.Style
	FieldLabelFocused lipgloss.Style
	FieldPrompt       lipgloss.Style
	FieldText         lipgloss.Style
	FieldPlaceholder  lipgloss.Style
	FieldBox          lipgloss.Style
	FieldBoxFocused   lipgloss.Style

	// ==========================================================================
	// MESSAGE LIST
	// ==========================================================================

	Sender     lipgloss.Style
	Timestamp  lipgloss.Style
	Plaintext  lipgloss.Style
	Ciphertext lipgloss.Style
	Separator  lipgloss.Style
	Empty      lipgloss.Style

	// ==========================================================================
	// STATUS LINE AND HELP
	// ==========================================================================

	StatusLine   lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
}

// NewTheme creates a theme for the current terminal.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Header and tabs
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderKey = lipgloss.NewStyle().
		Foreground(TextMuted)

	tabBorder := lipgloss.RoundedBorder()
	t.Tab = lipgloss.NewStyle().
		Border(tabBorder, true, true, false, true).
		BorderForeground(Overlay).
		Foreground(TextSecondary).
		Padding(0, 2)

	t.TabActive = t.Tab.Copy().
		BorderForeground(Purple).
		Foreground(Purple).
		Bold(true)

	t.TabGap = lipgloss.NewStyle().
		Foreground(Overlay)

	// Form fields
	t.FieldLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.FieldLabelFocused = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.FieldPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.FieldText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.FieldPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.FieldBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.FieldBoxFocused = t.FieldBox.Copy().
		BorderForeground(Cyan)

	// Message list
	t.Sender = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Plaintext = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.Ciphertext = lipgloss.NewStyle().
		Foreground(Amber)

	t.Separator = lipgloss.NewStyle().
		Foreground(Overlay)

	t.Empty = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Status line and help
	t.StatusLine = lipgloss.NewStyle().
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)
}
