// enigma - rotor cipher messaging in the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jeranaias/enigma-tui/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run())
}

// run dispatches the command line and returns the process exit code.
func run() int {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdHelp:
		cli.PrintUsage(os.Stdout)
		return cli.ExitSuccess
	case cli.CmdUnknown:
		err := cli.NewNotFoundError("command", args.Name)
		report(err, args.JSON)
		if !args.JSON {
			fmt.Fprintln(os.Stderr, "Run 'enigma help' for usage.")
		}
		return cli.GetExitCode(err)
	}

	env, err := cli.LoadEnv(args)
	if err != nil {
		// config, rotors and version still work with a broken config file,
		// so the file can be inspected and repaired.
		switch cmd {
		case cli.CmdConfig, cli.CmdRotors, cli.CmdVersion:
			env.Logger.WithError(err).Warn("using default configuration")
		default:
			report(err, args.JSON)
			return cli.GetExitCode(err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Route to appropriate handler
	switch cmd {
	case cli.CmdTUI:
		err = cli.HandleTUI(ctx, env, args)
	case cli.CmdEncode, cli.CmdDecode:
		err = cli.HandleEncode(env, args, cmd)
	case cli.CmdSend:
		err = cli.HandleSend(ctx, env, args)
	case cli.CmdInbox:
		err = cli.HandleInbox(ctx, env, args)
	case cli.CmdExport:
		err = cli.HandleExport(ctx, env, args)
	case cli.CmdShell:
		err = cli.HandleShell(env, args)
	case cli.CmdRotors:
		err = cli.HandleRotors(env, args)
	case cli.CmdConfig:
		err = cli.HandleConfig(env, args)
	case cli.CmdVersion:
		err = cli.HandleVersion(env, args)
	}

	if err != nil {
		report(err, args.JSON)
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}

// report prints err: JSON goes to stdout for scripts, text to stderr.
func report(err error, jsonMode bool) {
	if jsonMode {
		cli.DisplayError(os.Stdout, err, true)
		return
	}
	cli.DisplayError(os.Stderr, err, false)
}
