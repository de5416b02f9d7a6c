// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/enigma-tui/internal/ui/styles"
)

// DefaultFieldChars caps a field's length.
const DefaultFieldChars = 4096

// =============================================================================
// FIELD COMPONENT - Labelled text input
// =============================================================================

// Field is a labelled text input.
type Field struct {
	label    string
	input    textinput.Model
	maxChars int
	width    int
	counter  bool
	theme    *styles.Theme
}

// NewField creates a blurred field.
func NewField(theme *styles.Theme, label, placeholder string) *Field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = DefaultFieldChars
	ti.Width = 60
	ti.Prompt = "> "

	ti.PromptStyle = theme.FieldPrompt
	ti.TextStyle = theme.FieldText
	ti.PlaceholderStyle = theme.FieldPlaceholder
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(styles.Cyan)

	return &Field{
		label:    label,
		input:    ti,
		maxChars: DefaultFieldChars,
		width:    64,
		theme:    theme,
	}
}

// Label returns the field label.
func (f *Field) Label() string {
	return f.label
}

// Focus focuses the field
func (f *Field) Focus() tea.Cmd {
	return f.input.Focus()
}

// Blur removes focus from the field
func (f *Field) Blur() {
	f.input.Blur()
}

// Focused reports whether the field has focus.
func (f *Field) Focused() bool {
	return f.input.Focused()
}

// SetWidth sets the outer width of the field, border included.
func (f *Field) SetWidth(width int) {
	f.width = width
	// Border, padding and prompt.
	inputWidth := width - 4 - lipgloss.Width(f.input.Prompt)
	if inputWidth < 10 {
		inputWidth = 10
	}
	f.input.Width = inputWidth
}

// SetMaxChars sets the character limit and turns on the counter.
func (f *Field) SetMaxChars(max int) {
	f.maxChars = max
	f.input.CharLimit = max
	f.counter = true
}

// Value returns the current text.
func (f *Field) Value() string {
	return f.input.Value()
}

// SetValue replaces the text.
func (f *Field) SetValue(value string) {
	f.input.SetValue(value)
}

// Reset clears the field.
func (f *Field) Reset() {
	f.input.Reset()
}

// Update forwards msg to the text input.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

// View renders the label line and the boxed input.
func (f *Field) View() string {
	labelStyle := f.theme.FieldLabel
	box := f.theme.FieldBox
	if f.Focused() {
		labelStyle = f.theme.FieldLabelFocused
		box = f.theme.FieldBoxFocused
	}

	label := labelStyle.Render(f.label)
	if f.counter {
		label += " " + f.renderCounter()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		label,
		box.Width(f.width-2).Render(f.input.View()),
	)
}

// renderCounter shows used/max, amber past 80% and rose at the limit.
func (f *Field) renderCounter() string {
	count := len([]rune(f.input.Value()))
	style := f.theme.ShortcutDesc
	switch {
	case f.maxChars > 0 && count >= f.maxChars:
		style = lipgloss.NewStyle().Foreground(styles.Rose)
	case f.maxChars > 0 && count*5 >= f.maxChars*4:
		style = lipgloss.NewStyle().Foreground(styles.Amber)
	}
	return style.Render(fmt.Sprintf("(%d/%d)", count, f.maxChars))
}

// =============================================================================
// FIELD GROUP
// =============================================================================

// FieldGroup is an ordered set of fields with exactly one focused.
type FieldGroup struct {
	fields []*Field
	focus  int
}

// NewFieldGroup focuses the first field.
func NewFieldGroup(fields ...*Field) *FieldGroup {
	g := &FieldGroup{fields: fields}
	if len(fields) > 0 {
		fields[0].Focus()
	}
	return g
}

// Fields returns the fields in order.
func (g *FieldGroup) Fields() []*Field {
	return g.fields
}

// Field returns the i-th field.
func (g *FieldGroup) Field(i int) *Field {
	return g.fields[i]
}

// Focused returns the focused field's index.
func (g *FieldGroup) Focused() int {
	return g.focus
}

// Current returns the focused field.
func (g *FieldGroup) Current() *Field {
	return g.fields[g.focus]
}

// IsLast reports whether the last field has focus.
func (g *FieldGroup) IsLast() bool {
	return g.focus == len(g.fields)-1
}

// Next moves focus forward, wrapping around.
func (g *FieldGroup) Next() tea.Cmd {
	return g.FocusIndex((g.focus + 1) % len(g.fields))
}

// Prev moves focus back, wrapping around.
func (g *FieldGroup) Prev() tea.Cmd {
	return g.FocusIndex((g.focus - 1 + len(g.fields)) % len(g.fields))
}

// FocusIndex focuses field i and blurs the rest.
func (g *FieldGroup) FocusIndex(i int) tea.Cmd {
	if i < 0 || i >= len(g.fields) {
		return nil
	}
	g.fields[g.focus].Blur()
	g.focus = i
	return g.fields[i].Focus()
}

// Blur removes focus from every field, remembering which one had it.
func (g *FieldGroup) Blur() {
	for _, f := range g.fields {
		f.Blur()
	}
}

// Refocus gives focus back to the remembered field.
func (g *FieldGroup) Refocus() tea.Cmd {
	return g.fields[g.focus].Focus()
}

// Update forwards msg to the focused field.
func (g *FieldGroup) Update(msg tea.Msg) tea.Cmd {
	_, cmd := g.fields[g.focus].Update(msg)
	return cmd
}

// SetWidth sets every field's width.
func (g *FieldGroup) SetWidth(width int) {
	for _, f := range g.fields {
		f.SetWidth(width)
	}
}

// View stacks the fields.
func (g *FieldGroup) View() string {
	views := make([]string, len(g.fields))
	for i, f := range g.fields {
		views[i] = f.View()
	}
	return strings.Join(views, "\n")
}
