// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-interactive commands
// of the enigma tool.
//
// # Key Types
//
//   - Command: enumeration of the available commands
//   - Args: parsed global flags plus the raw command arguments
//   - ArgParser: flag and positional parsing shared by every command
//   - Env: the streams, configuration and logger a command runs with
//
// # Usage
//
//	cmd, args := cli.Parse()
//	switch cmd {
//	case cli.CmdEncode, cli.CmdDecode:
//	    err = cli.HandleEncode(env, args, cmd)
//	case cli.CmdSend:
//	    err = cli.HandleSend(ctx, env, args)
//	// ...
//	}
//
// # Commands Overview
//
//   - encode / decode: run text through the machine
//   - send: encipher and append to the message log
//   - inbox: read and decipher the message log, optionally following it
//   - export: write the deciphered inbox as Markdown, JSON or HTML
//   - shell: interactive line-by-line machine with persistent rotor state
//   - rotors: list the rotor catalogue
//   - config: show, init, path, get or set configuration values
//   - tui: start the interactive form (the default)
//
// Commands that print data accept --json.
package cli
