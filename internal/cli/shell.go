// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// shell.go - Interactive machine.
//
// Command: shell
// Short:   Type lines, get them enciphered; rotor state carries over
// Aliases: repl
//
// Unlike encode, one machine serves the whole session, so the same line
// typed twice gives different output. Line history is kept in memory only:
// the lines are plaintext and are never written to disk.
//
// Interactive Commands:
//   :pos          Show current rotor positions
//   :reset        Return rotors to their starting letters
//   :key          Show the machine key
//   :help         List commands
//   :quit, :q     Exit
//   Ctrl+C/Ctrl+D Exit

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/enigma-tui/internal/enigma"
	"github.com/jeranaias/enigma-tui/internal/ui/styles"
)

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	welcomeStyle = lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)
)

const shellHelp = `:pos     show rotor positions
:reset   return rotors to their starting letters
:key     show the machine key
:quit    exit`

// =============================================================================
// SHELL STATE
// =============================================================================

// Shell holds one machine for an interactive session.
type Shell struct {
	machine *enigma.Machine
}

// NewShell builds a shell around a fresh machine.
func NewShell(key enigma.Key, preserveCase bool) (*Shell, error) {
	m, err := enigma.NewMachine(key, enigma.WithPreserveCase(preserveCase))
	if err != nil {
		return nil, err
	}
	return &Shell{machine: m}, nil
}

// Execute handles one input line and returns what to print. quit is true
// when the session should end.
func (s *Shell) Execute(line string) (out string, quit bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", false
	}

	if strings.HasPrefix(trimmed, ":") {
		switch strings.ToLower(trimmed) {
		case ":quit", ":q", ":exit":
			return "", true
		case ":pos", ":positions":
			return s.machine.Positions(), false
		case ":reset":
			s.machine.Reset()
			return "rotors reset to " + s.machine.Positions(), false
		case ":key":
			return s.machine.Key().String(), false
		case ":help", ":h", ":?":
			return shellHelp, false
		default:
			return fmt.Sprintf("unknown command %s (try :help)", trimmed), false
		}
	}

	// Lines may be ciphertext, so they are not normalized.
	return s.machine.EncodeMessage(line), false
}

// Positions returns the current rotor letters.
func (s *Shell) Positions() string {
	return s.machine.Positions()
}

// =============================================================================
// REPL
// =============================================================================

// HandleShell runs the interactive shell on the terminal.
func HandleShell(env *Env, args Args) error {
	if args.JSON {
		return NewValidationError("flag", "--json", "shell is interactive and has no JSON output")
	}
	p := args.Parser()

	key, err := env.resolveKey(p)
	if err != nil {
		return err
	}
	sh, err := NewShell(key, env.preserveCase(p))
	if err != nil {
		return err
	}

	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	defer line.Close()

	if !args.Quiet {
		fmt.Fprintln(env.Stdout, welcomeStyle.Render("enigma shell")+" "+DimStyle.Render(key.String()))
		fmt.Fprintln(env.Stdout, DimStyle.Render("Type text to encipher it, :help for commands, Ctrl+D to exit."))
	}

	return runShell(env.Stdout, sh, func() (string, error) {
		input, err := line.Prompt(promptStyle.Render("["+sh.Positions()+"]> "))
		if err == nil && strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
		return input, err
	})
}

// runShell is the read-execute-print loop. read returns io.EOF or
// liner.ErrPromptAborted to end the session.
func runShell(w io.Writer, sh *Shell, read func() (string, error)) error {
	for {
		input, err := read()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(w)
				return nil
			}
			return WrapError(err, "failed to read input")
		}

		out, quit := sh.Execute(input)
		if quit {
			return nil
		}
		if out != "" {
			fmt.Fprintln(w, out)
		}
	}
}
