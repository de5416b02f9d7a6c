// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package ui is the Bubble Tea front end: a two-tab form over the message log.

# Tabs

Send Message - sender, rotor config, plugboard and message fields. Enter on
the last field (or Ctrl+S anywhere) enciphers the message and appends it to
the log. All four fields are required.

View Messages - rotor config and plugboard for decryption. Enter deciphers
every logged message with that key and lists them as

	Sender (2024-05-01 12:00:00): DECIPHERED TEXT

Messages sent under another key come out as noise, as with the machine.

# Keys

	Tab/Shift+Tab  next/previous field
	Ctrl+T         switch tab (F2 Send, F3 View)
	Ctrl+S         send
	Ctrl+R         reload messages
	Ctrl+E         show ciphertext under each message
	PgUp/PgDn      scroll messages
	F1             full help
	Esc/Ctrl+C     quit

When watching is enabled the View tab reloads on its own whenever the log
file changes, so messages from other processes show up without Ctrl+R.
*/
package ui
