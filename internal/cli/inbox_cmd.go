// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// inbox_cmd.go - inbox command.
//
// Command: inbox
// Short:   Decipher and list every message in the log
// Aliases: view, messages
//
// Each entry is deciphered with the reader's key. Entries sent under a
// different key come out as noise.
//
// Examples:
//   enigma inbox --rotors "0:A 1:B 2:C" --plugboard "AB CD"
//   enigma inbox --watch
//   enigma inbox --json --raw

package cli

import (
	"context"
	"fmt"

	"github.com/jeranaias/enigma-tui/internal/messaging"
	"github.com/jeranaias/enigma-tui/internal/storage"
	"github.com/jeranaias/enigma-tui/internal/util"
)

// HandleInbox runs the inbox command. With --watch it keeps running until ctx
// is cancelled, reprinting whenever the log changes.
func HandleInbox(ctx context.Context, env *Env, args Args) error {
	p := args.Parser()

	key, err := env.resolveKey(p)
	if err != nil {
		return err
	}

	svc, err := env.openService(p)
	if err != nil {
		return err
	}
	defer svc.Close()

	width := p.FlagIntOrDefault("width", 0)
	raw := p.BoolFlag("raw")

	render := func() error {
		messages, err := svc.Inbox(ctx, key)
		if err != nil {
			return err
		}
		if args.JSON {
			return NewJSONResponse("inbox", InboxData{
				Log:      svc.Log().Path(),
				Count:    len(messages),
				Messages: messages,
			}).Fprint(env.Stdout)
		}
		printInbox(env, messages, raw, width)
		return nil
	}

	if err := render(); err != nil {
		return err
	}
	if !p.BoolFlag("watch") {
		return nil
	}

	if !args.Quiet && !args.JSON {
		fmt.Fprintln(env.Stderr, DimStyle.Render("Watching "+svc.Log().Path()+" (Ctrl+C to stop)"))
	}
	return storage.Watch(ctx, svc.Log().Path(), func() {
		if err := render(); err != nil {
			env.Logger.WithError(err).Warn("inbox refresh failed")
		}
	})
}

// printInbox writes one "Sender (timestamp): plaintext" line per message.
func printInbox(env *Env, messages []messaging.Decoded, raw bool, width int) {
	if len(messages) == 0 {
		fmt.Fprintln(env.Stdout, DimStyle.Render("No messages yet."))
		return
	}
	for _, m := range messages {
		text := util.SingleLine(m.Plaintext)
		if width > 0 {
			text = util.TruncateWidth(text, width)
		}
		fmt.Fprintf(env.Stdout, "%s %s: %s\n",
			SenderStyle.Render(m.Sender),
			DimStyle.Render("("+m.FormatTimestamp()+")"),
			text)
		if raw {
			fmt.Fprintf(env.Stdout, "  %s %s\n", DimStyle.Render("cipher:"), CipherStyle.Render(util.SingleLine(m.Ciphertext)))
		}
	}
}
