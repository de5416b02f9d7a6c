// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/enigma-tui/internal/util"
)

const appTitle = "Enigma Messaging System"

// View renders the whole screen.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var body string
	if m.tab == TabSend {
		body = m.send.View()
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.view.View(),
			m.theme.Separator.Render(strings.Repeat("-", max(m.width-2, 1))),
			m.list.View(),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderTabs(),
		body,
		m.status.View(),
		m.help.View(m.keys),
	)
}

func (m *Model) renderHeader() string {
	header := m.theme.HeaderTitle.Render(appTitle)
	if m.cfg.UI.ShowKey && m.viewKey != nil {
		header += "  " + m.theme.HeaderKey.Render("key "+m.viewKey.String())
	}
	return m.theme.Header.Width(m.width).Render(header)
}

func (m *Model) renderTabs() string {
	tabs := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		style := m.theme.Tab
		if Tab(i) == m.tab {
			style = m.theme.TabActive
		}
		tabs = append(tabs, style.Render(name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

// refreshList re-renders the message list into the viewport.
func (m *Model) refreshList() {
	m.list.SetContent(m.renderMessages())
}

// renderMessages lays out one "Sender (timestamp): plaintext" line per
// message, with the ciphertext beneath it when toggled on.
func (m *Model) renderMessages() string {
	if m.viewKey == nil {
		return m.theme.Empty.Render(msgEnterKeys)
	}
	if len(m.messages) == 0 {
		return m.theme.Empty.Render(msgNoMessages)
	}

	var b strings.Builder
	for i, msg := range m.messages {
		if i > 0 {
			b.WriteByte('\n')
		}
		prefix := msg.Sender + " (" + msg.FormatTimestamp() + "): "
		text := util.TruncateWidth(util.SingleLine(msg.Plaintext), m.previewWidth(lipgloss.Width(prefix)))

		b.WriteString(m.theme.Sender.Render(msg.Sender))
		b.WriteString(m.theme.Timestamp.Render(" (" + msg.FormatTimestamp() + "): "))
		b.WriteString(m.theme.Plaintext.Render(text))

		if m.showCipher {
			cipher := util.TruncateWidth(util.SingleLine(msg.Ciphertext), m.previewWidth(4))
			b.WriteString("\n    ")
			b.WriteString(m.theme.Ciphertext.Render(cipher))
		}
	}
	return b.String()
}

// previewWidth is the room left for text after indent columns, capped by
// ui.preview_width.
func (m *Model) previewWidth(indent int) int {
	avail := m.list.Width - indent
	if limit := m.cfg.UI.PreviewWidth; limit > 0 && limit < avail {
		avail = limit
	}
	if avail < 8 {
		avail = 8
	}
	return avail
}
