// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/jeranaias/enigma-tui/internal/enigma"
	"github.com/jeranaias/enigma-tui/internal/messaging"
	"github.com/jeranaias/enigma-tui/internal/ui/components"
)

// Rows taken by everything on the View tab except the message list.
const viewChromeHeight = 17

// Update handles messages and returns the updated model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case sentMsg:
		m.sending = false
		m.send.Field(fieldMessage).Reset()
		m.status.Set(components.StatusSuccess, msgSent)
		m.logger.WithFields(logrus.Fields{
			"entry_id": msg.entry.ID,
			"length":   len(msg.entry.Ciphertext),
		}).Debug("message sent from tui")
		if !m.watch {
			return m, m.reload(false)
		}
		return m, nil

	case sendFailedMsg:
		m.sending = false
		m.status.Set(components.StatusError, describeSendError(msg.err))
		return m, nil

	case inboxMsg:
		if msg.seq != m.loadSeq {
			return m, nil
		}
		if msg.err != nil {
			m.logger.WithError(msg.err).Warn("decoding inbox failed")
			m.status.Set(components.StatusError, "Error: "+msg.err.Error())
			return m, nil
		}
		m.messages = msg.messages
		m.refreshList()
		if msg.manual {
			m.status.Set(components.StatusInfo, fmt.Sprintf("Decrypted %d message(s)", len(msg.messages)))
		}
		return m, nil

	case logChangedMsg:
		return m, tea.Batch(waitForChangeCmd(m.ctx, m.changes), m.reload(false))

	case watchStoppedMsg:
		if msg.err != nil {
			m.logger.WithError(msg.err).Warn("log watcher stopped")
			m.status.Set(components.StatusWarning, "Stopped watching the log: "+msg.err.Error())
		}
		return m, nil
	}

	return m, m.fields().Update(msg)
}

// handleKey routes one key press.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab((m.tab + 1) % Tab(len(tabNames)))
	case key.Matches(msg, m.keys.SendTab):
		return m.switchTab(TabSend)
	case key.Matches(msg, m.keys.ViewTab):
		return m.switchTab(TabView)
	case key.Matches(msg, m.keys.NextField):
		return m.fields().Next()
	case key.Matches(msg, m.keys.PrevField):
		return m.fields().Prev()
	case key.Matches(msg, m.keys.Send):
		if m.tab == TabSend {
			return m.submitSend()
		}
		return nil
	case key.Matches(msg, m.keys.Submit):
		if m.tab == TabView {
			return m.submitView()
		}
		if m.send.IsLast() {
			return m.submitSend()
		}
		return m.send.Next()
	}

	if m.tab == TabView {
		switch {
		case key.Matches(msg, m.keys.Refresh):
			return m.reload(true)
		case key.Matches(msg, m.keys.ToggleCipher):
			m.showCipher = !m.showCipher
			m.refreshList()
			return nil
		case key.Matches(msg, m.keys.ScrollUp):
			m.list.ViewUp()
			return nil
		case key.Matches(msg, m.keys.ScrollDown):
			m.list.ViewDown()
			return nil
		}
	}

	return m.fields().Update(msg)
}

// switchTab moves focus to the remembered field of tab t.
func (m *Model) switchTab(t Tab) tea.Cmd {
	if t == m.tab {
		return nil
	}
	m.fields().Blur()
	m.tab = t
	m.status.Clear()
	return m.fields().Refocus()
}

// submitSend starts an asynchronous send of the form contents.
func (m *Model) submitSend() tea.Cmd {
	if m.sending {
		return nil
	}
	m.sending = true
	m.status.Set(components.StatusBusy, "Sending...")

	return sendCmd(m.ctx, m.svc, messaging.SendRequest{
		Sender:    strings.TrimSpace(m.send.Field(fieldSender).Value()),
		Rotors:    m.send.Field(fieldRotors).Value(),
		Plugboard: m.send.Field(fieldPlugboard).Value(),
		Text:      m.send.Field(fieldMessage).Value(),
	})
}

// submitView applies the decryption key and decodes the log.
func (m *Model) submitView() tea.Cmd {
	rotors := m.view.Field(fieldViewRotors).Value()
	plugboard := m.view.Field(fieldViewPlugboard).Value()
	if strings.TrimSpace(rotors) == "" || strings.TrimSpace(plugboard) == "" {
		m.status.Set(components.StatusWarning, msgEnterKeys)
		return nil
	}

	key, err := enigma.ParseKey(rotors, plugboard)
	if err != nil {
		m.status.Set(components.StatusError, "Error: "+err.Error())
		return nil
	}
	m.viewKey = &key
	return m.reload(true)
}

// reload decodes the log with the applied key. Without a key it does nothing.
func (m *Model) reload(manual bool) tea.Cmd {
	if m.viewKey == nil {
		return nil
	}
	m.loadSeq++
	if manual {
		m.status.Set(components.StatusBusy, "Decrypting messages...")
	}
	return loadInboxCmd(m.ctx, m.svc, *m.viewKey, m.loadSeq, manual)
}

// resize lays the form out for a new terminal size.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.ready = true

	fieldWidth := width - 4
	if fieldWidth > 100 {
		fieldWidth = 100
	}
	m.send.SetWidth(fieldWidth)
	m.view.SetWidth(fieldWidth)
	m.status.SetWidth(width)
	m.help.Width = width

	m.list.Width = width - 2
	m.list.Height = height - viewChromeHeight
	if m.list.Height < 3 {
		m.list.Height = 3
	}
	m.refreshList()
}

func describeSendError(err error) string {
	var verr *messaging.ValidationError
	switch {
	case errors.As(err, &verr):
		return msgFillFields
	case errors.Is(err, messaging.ErrRateLimited):
		return msgRateLimited
	default:
		return "Error: " + err.Error()
	}
}
