// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package messaging joins the cipher engine to the shared message log.
//
// Send enciphers a message with the sender's key and appends only the
// ciphertext to the log. Inbox reads every entry back and deciphers each one
// with the reader's key; a reader holding a different key gets noise, exactly
// as it would on paper.
//
// Every message is processed by its own freshly built machine, so the result
// for an entry never depends on what was sent or read before it.
package messaging
