// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/jeranaias/enigma-tui/internal/config"
	"github.com/jeranaias/enigma-tui/internal/enigma"
	"github.com/jeranaias/enigma-tui/internal/logging"
	"github.com/jeranaias/enigma-tui/internal/messaging"
	"github.com/jeranaias/enigma-tui/internal/ui/components"
	"github.com/jeranaias/enigma-tui/internal/ui/styles"
)

// Tab identifies one of the two screens.
type Tab int

const (
	TabSend Tab = iota
	TabView
)

var tabNames = [...]string{"Send Message", "View Messages"}

func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return "Unknown"
	}
	return tabNames[t]
}

// Send tab fields.
const (
	fieldSender = iota
	fieldRotors
	fieldPlugboard
	fieldMessage
)

// View tab fields.
const (
	fieldViewRotors = iota
	fieldViewPlugboard
)

// Status line texts.
const (
	msgSent        = "Message encrypted and sent successfully!"
	msgFillFields  = "Please fill out all fields."
	msgEnterKeys   = "Enter decryption keys to view decrypted messages."
	msgRateLimited = "Sending too fast, wait a moment and try again."
	msgNoMessages  = "No messages found yet!"
)

// Options tune a Model.
type Options struct {
	Theme  *styles.Theme
	Logger logrus.FieldLogger

	// Watch reloads the View tab whenever the log file changes.
	Watch bool
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx    context.Context
	svc    *messaging.Service
	cfg    *config.Config
	logger logrus.FieldLogger
	theme  *styles.Theme
	keys   KeyMap
	help   help.Model

	tab    Tab
	width  int
	height int
	ready  bool

	send   *components.FieldGroup
	view   *components.FieldGroup
	status *components.StatusLine

	sending bool

	// View tab state
	viewKey    *enigma.Key
	loadSeq    int
	messages   []messaging.Decoded
	showCipher bool
	list       viewport.Model

	watch   bool
	changes chan struct{}
}

// New builds the model. Fields are prefilled from cfg. ctx bounds every
// send, decode and the log watcher.
func New(ctx context.Context, svc *messaging.Service, cfg *config.Config, opts Options) *Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	send := components.NewFieldGroup(
		components.NewField(theme, "Your Name", "Enter your name"),
		components.NewField(theme, "Rotor Config", "e.g. 0:A 1:B 2:C or {0: 'A', 1: 'B', 2: 'C'}"),
		components.NewField(theme, "Plugboard Wiring", "e.g. AB CD EF"),
		components.NewField(theme, "Message", "Enter the message to encrypt"),
	)
	send.Field(fieldSender).SetValue(cfg.Sender)
	send.Field(fieldRotors).SetValue(cfg.Cipher.Rotors)
	send.Field(fieldPlugboard).SetValue(cfg.Cipher.Plugboard)
	send.Field(fieldMessage).SetMaxChars(components.DefaultFieldChars)

	view := components.NewFieldGroup(
		components.NewField(theme, "Rotor Config for Decryption", "Enter rotor config for decryption"),
		components.NewField(theme, "Plugboard Wiring for Decryption", "Enter plugboard wiring for decryption"),
	)
	view.Field(fieldViewRotors).SetValue(cfg.Cipher.Rotors)
	view.Field(fieldViewPlugboard).SetValue(cfg.Cipher.Plugboard)
	view.Blur()

	return &Model{
		ctx:    ctx,
		svc:    svc,
		cfg:    cfg,
		logger: logger,
		theme:  theme,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		tab:    TabSend,
		send:   send,
		view:   view,
		status: components.NewStatusLine(theme),
		list:   viewport.New(80, 10),
		watch:  opts.Watch,
	}
}

// Init starts the cursor blink, the log watcher and, when the config holds a
// full key, the first decode pass.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}

	if m.watch {
		m.changes = make(chan struct{}, 1)
		cmds = append(cmds,
			watchLogCmd(m.ctx, m.svc.Log().Path(), m.changes),
			waitForChangeCmd(m.ctx, m.changes),
		)
	}

	rotors := m.view.Field(fieldViewRotors).Value()
	plugboard := m.view.Field(fieldViewPlugboard).Value()
	if rotors != "" && plugboard != "" {
		if key, err := enigma.ParseKey(rotors, plugboard); err == nil {
			m.viewKey = &key
			cmds = append(cmds, m.reload(false))
		}
	}
	return tea.Batch(cmds...)
}

// Tab returns the active tab.
func (m *Model) Tab() Tab {
	return m.tab
}

// Messages returns the last decoded messages.
func (m *Model) Messages() []messaging.Decoded {
	return m.messages
}

// Status returns the status line.
func (m *Model) Status() *components.StatusLine {
	return m.status
}

// fields returns the active tab's field group.
func (m *Model) fields() *components.FieldGroup {
	if m.tab == TabView {
		return m.view
	}
	return m.send
}
