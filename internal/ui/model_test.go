// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/enigma-tui/internal/config"
	"github.com/jeranaias/enigma-tui/internal/messaging"
	"github.com/jeranaias/enigma-tui/internal/storage"
	"github.com/jeranaias/enigma-tui/internal/ui/components"
	"github.com/jeranaias/enigma-tui/internal/ui/styles"
)

const (
	testRotors    = "0:A 1:B 2:C"
	testPlugboard = "AB CD"
)

func newTestModel(t *testing.T, cfg *config.Config, opts messaging.Options) (*Model, *messaging.Service) {
	t.Helper()
	log, err := storage.NewCSVLog(filepath.Join(t.TempDir(), "messages.csv"))
	require.NoError(t, err)
	svc := messaging.NewService(log, opts)
	t.Cleanup(func() { svc.Close() })

	if cfg == nil {
		cfg = config.Default()
	}
	m := New(context.Background(), svc, cfg, Options{Theme: styles.NewTheme()})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, svc
}

func press(m *Model, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

func typeText(m *Model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// run executes cmd and feeds its message back, returning the follow-up.
func run(t *testing.T, m *Model, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	require.NotNil(t, cmd)
	_, next := m.Update(cmd())
	return next
}

func sendOne(t *testing.T, svc *messaging.Service, sender, text string) {
	t.Helper()
	_, err := svc.Send(context.Background(), messaging.SendRequest{
		Sender: sender, Rotors: testRotors, Plugboard: testPlugboard, Text: text,
	})
	require.NoError(t, err)
}

// =============================================================================
// SEND TAB
// =============================================================================

func TestSend_RequiresAllFields(t *testing.T) {
	m, svc := newTestModel(t, nil, messaging.Options{})
	m.send.Field(fieldMessage).SetValue("HELLO")

	run(t, m, press(m, tea.KeyCtrlS))

	assert.Equal(t, components.StatusError, m.Status().Status())
	assert.Equal(t, msgFillFields, m.Status().Text())

	entries, err := svc.Log().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSend_PrefilledFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Sender = "alice"
	cfg.Cipher.Rotors = testRotors
	cfg.Cipher.Plugboard = testPlugboard
	m, svc := newTestModel(t, cfg, messaging.Options{})

	m.send.Field(fieldMessage).SetValue("HELLO, WORLD!")
	run(t, m, press(m, tea.KeyCtrlS))

	assert.Equal(t, components.StatusSuccess, m.Status().Status())
	assert.Equal(t, msgSent, m.Status().Text())
	assert.Empty(t, m.send.Field(fieldMessage).Value())
	assert.Equal(t, "alice", m.send.Field(fieldSender).Value())

	entries, err := svc.Log().List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].Sender)
	assert.Equal(t, "RNHDB, TFUOL!", entries[0].Ciphertext)
}

func TestSend_EnterWalksFieldsThenSends(t *testing.T) {
	m, svc := newTestModel(t, nil, messaging.Options{})

	typeText(m, "bob")
	press(m, tea.KeyEnter)
	assert.Equal(t, fieldRotors, m.send.Focused())

	typeText(m, testRotors)
	press(m, tea.KeyEnter)
	typeText(m, testPlugboard)
	press(m, tea.KeyEnter)
	require.Equal(t, fieldMessage, m.send.Focused())
	typeText(m, "HELLO")

	run(t, m, press(m, tea.KeyEnter))
	assert.Equal(t, msgSent, m.Status().Text())

	entries, err := svc.Log().List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "bob", entries[0].Sender)
	assert.Equal(t, "RNHDB", entries[0].Ciphertext)
}

func TestSend_RateLimited(t *testing.T) {
	cfg := config.Default()
	cfg.Sender = "alice"
	cfg.Cipher.Rotors = testRotors
	cfg.Cipher.Plugboard = testPlugboard
	m, _ := newTestModel(t, cfg, messaging.Options{SendsPerSecond: 0.001, SendBurst: 1})

	m.send.Field(fieldMessage).SetValue("ONE")
	run(t, m, press(m, tea.KeyCtrlS))
	require.Equal(t, msgSent, m.Status().Text())

	m.send.Field(fieldMessage).SetValue("TWO")
	run(t, m, press(m, tea.KeyCtrlS))
	assert.Equal(t, msgRateLimited, m.Status().Text())
	assert.Equal(t, "TWO", m.send.Field(fieldMessage).Value())
}

func TestSend_IgnoredWhileInFlight(t *testing.T) {
	m, _ := newTestModel(t, nil, messaging.Options{})

	require.NotNil(t, press(m, tea.KeyCtrlS))
	assert.Nil(t, press(m, tea.KeyCtrlS))
}

// =============================================================================
// VIEW TAB
// =============================================================================

func TestView_DecodesLoggedMessages(t *testing.T) {
	m, svc := newTestModel(t, nil, messaging.Options{})
	sendOne(t, svc, "alice", "HELLO")
	sendOne(t, svc, "bob", "ATTACK AT DAWN")

	press(m, tea.KeyF3)
	require.Equal(t, TabView, m.Tab())
	m.view.Field(fieldViewRotors).SetValue(testRotors)
	m.view.Field(fieldViewPlugboard).SetValue(testPlugboard)

	run(t, m, press(m, tea.KeyEnter))

	require.Len(t, m.Messages(), 2)
	assert.Equal(t, "HELLO", m.Messages()[0].Plaintext)
	assert.Equal(t, "ATTACK AT DAWN", m.Messages()[1].Plaintext)
	assert.Equal(t, "Decrypted 2 message(s)", m.Status().Text())

	view := m.View()
	assert.Contains(t, view, "alice")
	assert.Contains(t, view, "ATTACK AT DAWN")
	assert.Contains(t, view, "View Messages")
}

func TestView_RequiresBothKeyFields(t *testing.T) {
	m, _ := newTestModel(t, nil, messaging.Options{})
	press(m, tea.KeyCtrlT)
	m.view.Field(fieldViewRotors).SetValue(testRotors)

	assert.Nil(t, press(m, tea.KeyEnter))
	assert.Equal(t, components.StatusWarning, m.Status().Status())
	assert.Equal(t, msgEnterKeys, m.Status().Text())
	assert.Contains(t, m.renderMessages(), msgEnterKeys)
}

func TestView_BadKeyIsReported(t *testing.T) {
	m, _ := newTestModel(t, nil, messaging.Options{})
	press(m, tea.KeyF3)
	m.view.Field(fieldViewRotors).SetValue("9:A")
	m.view.Field(fieldViewPlugboard).SetValue(testPlugboard)

	assert.Nil(t, press(m, tea.KeyEnter))
	assert.Equal(t, components.StatusError, m.Status().Status())
	assert.Contains(t, m.Status().Text(), "Error:")
}

func TestView_EmptyLog(t *testing.T) {
	m, _ := newTestModel(t, nil, messaging.Options{})
	press(m, tea.KeyF3)
	m.view.Field(fieldViewRotors).SetValue(testRotors)
	m.view.Field(fieldViewPlugboard).SetValue(testPlugboard)

	run(t, m, press(m, tea.KeyEnter))
	assert.Contains(t, m.renderMessages(), msgNoMessages)
}

func TestView_StaleResultsAreDropped(t *testing.T) {
	m, svc := newTestModel(t, nil, messaging.Options{})
	sendOne(t, svc, "alice", "HELLO")
	press(m, tea.KeyF3)
	m.view.Field(fieldViewRotors).SetValue(testRotors)
	m.view.Field(fieldViewPlugboard).SetValue(testPlugboard)

	first := press(m, tea.KeyEnter)
	second := press(m, tea.KeyCtrlR)
	run(t, m, second)
	require.Len(t, m.Messages(), 1)

	sendOne(t, svc, "bob", "LATE")
	run(t, m, first)
	assert.Len(t, m.Messages(), 1, "an older request must not replace newer results")
}

func TestView_CiphertextToggleAndPreviewWidth(t *testing.T) {
	cfg := config.Default()
	cfg.UI.PreviewWidth = 10
	m, svc := newTestModel(t, cfg, messaging.Options{})
	sendOne(t, svc, "alice", "ATTACKATDAWN")

	press(m, tea.KeyF3)
	m.view.Field(fieldViewRotors).SetValue(testRotors)
	m.view.Field(fieldViewPlugboard).SetValue(testPlugboard)
	run(t, m, press(m, tea.KeyEnter))

	rendered := m.renderMessages()
	assert.Contains(t, rendered, "ATTACKA...")
	assert.NotContains(t, rendered, "ATTACKATDAWN")

	ciphertext := m.Messages()[0].Ciphertext
	press(m, tea.KeyCtrlE)
	assert.Contains(t, m.renderMessages(), ciphertext[:7])
}

func TestView_LogChangeReloads(t *testing.T) {
	m, svc := newTestModel(t, nil, messaging.Options{})
	m.watch = true
	m.changes = make(chan struct{}, 1)

	assert.Nil(t, m.reload(false), "nothing to reload before a key is applied")

	press(m, tea.KeyF3)
	m.view.Field(fieldViewRotors).SetValue(testRotors)
	m.view.Field(fieldViewPlugboard).SetValue(testPlugboard)
	run(t, m, press(m, tea.KeyEnter))
	seq := m.loadSeq

	sendOne(t, svc, "carol", "NEW")
	m.Update(logChangedMsg{})
	assert.Equal(t, seq+1, m.loadSeq)

	cmd := loadInboxCmd(context.Background(), svc, *m.viewKey, m.loadSeq, false)
	run(t, m, cmd)
	require.Len(t, m.Messages(), 1)
	assert.Equal(t, "carol", m.Messages()[0].Sender)
	assert.Equal(t, "Decrypted 0 message(s)", m.Status().Text(), "background reloads leave the status alone")
}

func TestInit_AppliesConfiguredKey(t *testing.T) {
	cfg := config.Default()
	cfg.Cipher.Rotors = testRotors
	cfg.Cipher.Plugboard = testPlugboard
	m, _ := newTestModel(t, cfg, messaging.Options{})

	require.NotNil(t, m.Init())
	require.NotNil(t, m.viewKey)
	assert.Equal(t, 1, m.loadSeq)
	assert.Equal(t, "0:A 1:B 2:C / AB CD", m.viewKey.String())
}

// =============================================================================
// NAVIGATION
// =============================================================================

func TestTabSwitchingKeepsFieldFocus(t *testing.T) {
	m, _ := newTestModel(t, nil, messaging.Options{})
	press(m, tea.KeyTab)
	press(m, tea.KeyTab)
	require.Equal(t, fieldPlugboard, m.send.Focused())

	press(m, tea.KeyCtrlT)
	assert.Equal(t, TabView, m.Tab())
	assert.False(t, m.send.Current().Focused())
	assert.True(t, m.view.Current().Focused())

	press(m, tea.KeyF2)
	assert.Equal(t, TabSend, m.Tab())
	assert.Equal(t, fieldPlugboard, m.send.Focused())
	assert.True(t, m.send.Current().Focused())

	press(m, tea.KeyShiftTab)
	assert.Equal(t, fieldRotors, m.send.Focused())
}

func TestQuitAndHelp(t *testing.T) {
	m, _ := newTestModel(t, nil, messaging.Options{})

	press(m, tea.KeyF1)
	assert.True(t, m.help.ShowAll)

	cmd := press(m, tea.KeyEsc)
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestViewBeforeResize(t *testing.T) {
	log, err := storage.NewCSVLog(filepath.Join(t.TempDir(), "messages.csv"))
	require.NoError(t, err)
	m := New(context.Background(), messaging.NewService(log, messaging.Options{}), config.Default(), Options{})

	assert.Equal(t, "Loading...", m.View())
	assert.Equal(t, "Send Message", TabSend.String())
	assert.Equal(t, "Unknown", Tab(7).String())
}
