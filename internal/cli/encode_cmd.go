// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// encode_cmd.go - encode and decode commands.
//
// Command: encode | decode
// Short:   Run text through the machine
// Aliases: enc, encrypt, dec, decrypt
//
// The machine is its own inverse, so decode is encode under another name.
// Text comes from --text, the remaining arguments, or stdin.
//
// Examples:
//   enigma encode --rotors "0:A 1:B 2:C" --plugboard "AB CD" HELLO
//   echo RNHDB | enigma decode --rotors "0:A 1:B 2:C" --plugboard "AB CD"
//   enigma encode --json --text "Hello, World!" --preserve-case

package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jeranaias/enigma-tui/internal/enigma"
	"github.com/jeranaias/enigma-tui/internal/messaging"
)

// HandleEncode runs the encode or decode command.
func HandleEncode(env *Env, args Args, cmd Command) error {
	p := args.Parser()

	key, err := env.resolveKey(p)
	if err != nil {
		return err
	}

	text, err := env.readText(p, 0)
	if err != nil {
		return err
	}
	if text == "" {
		return ErrMissingArgument("text", fmt.Sprintf(`enigma %s --text "HELLO"`, cmd))
	}
	if cmd == CmdEncode {
		text = messaging.Normalize(text)
	}

	m, err := enigma.NewMachine(key, enigma.WithPreserveCase(env.preserveCase(p)))
	if err != nil {
		return err
	}
	start := m.Positions()
	out := m.EncodeMessage(text)

	env.Logger.WithFields(logrus.Fields{
		"command": cmd.String(),
		"length":  len(text),
		"rotors":  len(key.Rotors),
	}).Debug("text processed")

	if args.JSON {
		return NewJSONResponse(cmd.String(), EncodeData{
			Input:          text,
			Output:         out,
			Key:            key.String(),
			StartPositions: start,
			EndPositions:   m.Positions(),
		}).Fprint(env.Stdout)
	}

	fmt.Fprintln(env.Stdout, out)
	if args.Verbose {
		fmt.Fprintf(env.Stderr, "%s %s -> %s\n", DimStyle.Render("positions:"), start, m.Positions())
	}
	return nil
}
