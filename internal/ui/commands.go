// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/enigma-tui/internal/enigma"
	"github.com/jeranaias/enigma-tui/internal/messaging"
	"github.com/jeranaias/enigma-tui/internal/storage"
)

// =============================================================================
// ASYNC MESSAGES
// =============================================================================

// sentMsg reports a successful send.
type sentMsg struct {
	entry storage.Entry
}

// sendFailedMsg reports a rejected or failed send.
type sendFailedMsg struct {
	err error
}

// inboxMsg carries one decode pass over the log. seq identifies the request
// so results of an older key are dropped.
type inboxMsg struct {
	seq      int
	manual   bool
	messages []messaging.Decoded
	err      error
}

// logChangedMsg is sent when the watched log file changes.
type logChangedMsg struct{}

// watchStoppedMsg is sent when the watcher exits.
type watchStoppedMsg struct {
	err error
}

// =============================================================================
// COMMANDS
// =============================================================================

func sendCmd(ctx context.Context, svc *messaging.Service, req messaging.SendRequest) tea.Cmd {
	return func() tea.Msg {
		entry, err := svc.Send(ctx, req)
		if err != nil {
			return sendFailedMsg{err: err}
		}
		return sentMsg{entry: entry}
	}
}

func loadInboxCmd(ctx context.Context, svc *messaging.Service, key enigma.Key, seq int, manual bool) tea.Cmd {
	return func() tea.Msg {
		messages, err := svc.Inbox(ctx, key)
		return inboxMsg{seq: seq, manual: manual, messages: messages, err: err}
	}
}

// watchLogCmd blocks for the life of ctx, signalling changes without ever
// blocking the watcher.
func watchLogCmd(ctx context.Context, path string, changes chan<- struct{}) tea.Cmd {
	return func() tea.Msg {
		err := storage.Watch(ctx, path, func() {
			select {
			case changes <- struct{}{}:
			default:
			}
		})
		return watchStoppedMsg{err: err}
	}
}

// waitForChangeCmd turns the next change signal into a logChangedMsg. It is
// re-issued after every change.
func waitForChangeCmd(ctx context.Context, changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-changes:
			return logChangedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}
