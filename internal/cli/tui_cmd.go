// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tui_cmd.go - tui command (the default).
//
// Command: tui
// Short:   Two-tab form for sending and reading messages
// Aliases: ui
//
// The screen belongs to the TUI while it runs, so log output goes to
// <config dir>/enigma.log instead of stderr.
//
// Flags:
//   --no-watch    Do not reload the View tab when the log changes

package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/jeranaias/enigma-tui/internal/config"
	"github.com/jeranaias/enigma-tui/internal/ui"
)

// tuiLogName is the log file used while the TUI owns the terminal.
const tuiLogName = "enigma.log"

// HandleTUI runs the interactive form until the user quits.
func HandleTUI(ctx context.Context, env *Env, args Args) error {
	if args.JSON {
		return NewValidationError("flag", "--json", "the TUI has no JSON output")
	}
	if !isTerminalReader(env.Stdin) {
		return NewCommandError("tui", "start", "stdin is not a terminal (use encode, send or inbox in scripts)", nil)
	}
	p := args.Parser()

	logOut, closeLog := openTUILog()
	defer closeLog()
	env.Logger.SetOutput(logOut)

	svc, err := env.openService(p)
	if err != nil {
		return err
	}
	defer svc.Close()

	env.Logger.WithField("log", svc.Log().Path()).Info("tui started")
	return ui.Run(ctx, svc, env.Config, ui.Options{
		Logger: env.Logger,
		Watch:  !p.BoolFlag("no-watch"),
	})
}

// openTUILog opens the TUI log file for appending, falling back to
// discarding output when the config directory is unusable.
func openTUILog() (io.Writer, func()) {
	dir, err := config.ConfigDir()
	if err != nil {
		return io.Discard, func() {}
	}
	if err := config.EnsureConfigDir(); err != nil {
		return io.Discard, func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, tuiLogName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { f.Close() }
}
