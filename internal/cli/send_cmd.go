// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// send_cmd.go - send command.
//
// Command: send
// Short:   Encipher a message and append it to the shared log
//
// Only the ciphertext is stored. Sender, rotors, plugboard and text are all
// required; sender, rotors and plugboard fall back to the config file.
//
// Examples:
//   enigma send --sender alice --rotors "0:A 1:B 2:C" --plugboard "AB CD" HELLO
//   enigma send --sender alice --text "ATTACK AT DAWN"

package cli

import (
	"context"
	"fmt"

	"github.com/jeranaias/enigma-tui/internal/messaging"
)

// HandleSend runs the send command.
func HandleSend(ctx context.Context, env *Env, args Args) error {
	p := args.Parser()

	sender, ok := p.FirstFlag("sender", "s", "from")
	if !ok {
		sender = env.Config.Sender
	}
	rotors, plugboard := env.keyInputs(p)

	text, err := env.readText(p, 0)
	if err != nil {
		return err
	}

	svc, err := env.openService(p)
	if err != nil {
		return err
	}
	defer svc.Close()

	entry, err := svc.Send(ctx, messaging.SendRequest{
		Sender:    sender,
		Rotors:    rotors,
		Plugboard: plugboard,
		Text:      text,
	})
	if err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("send", SendData{
			ID:         entry.ID,
			Sender:     entry.Sender,
			Timestamp:  entry.FormatTimestamp(),
			Ciphertext: entry.Ciphertext,
			Log:        svc.Log().Path(),
		}).Fprint(env.Stdout)
	}

	if !args.Quiet {
		fmt.Fprintf(env.Stdout, "%s %s\n", SuccessStyle.Render("Message sent successfully!"), DimStyle.Render(entry.ID))
		fmt.Fprintf(env.Stdout, "%s%s\n", RenderLabel("Ciphertext:"), CipherStyle.Render(entry.Ciphertext))
		fmt.Fprintf(env.Stdout, "%s%s\n", RenderLabel("Log:"), svc.Log().Path())
	}
	return nil
}
