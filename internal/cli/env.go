// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// env.go - Shared command environment: streams, configuration, logger and
// the machine-key and message-text inputs most commands take.

package cli

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jeranaias/enigma-tui/internal/config"
	"github.com/jeranaias/enigma-tui/internal/enigma"
	"github.com/jeranaias/enigma-tui/internal/logging"
	"github.com/jeranaias/enigma-tui/internal/messaging"
)

// Env is what a command runs with. Tests build one around buffers.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Config     *config.Config
	ConfigPath string
	Logger     *logrus.Logger
}

// LoadEnv loads the configuration named by args (or the default file) and
// builds the logger. The returned Env is always usable: when loading fails it
// carries the default configuration alongside the error, so "config init" can
// still repair a broken file.
func LoadEnv(args Args) (*Env, error) {
	env := &Env{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Config: config.Default(),
		Logger: logging.Discard(),
	}

	var loadErr error
	if args.Config != "" {
		env.ConfigPath = args.Config
		cfg, err := config.LoadFromPath(args.Config)
		if err != nil {
			loadErr = &ConfigLoadError{Path: args.Config, Err: err}
		} else {
			env.Config = cfg
		}
	} else {
		if path, err := config.ConfigPathTOML(); err == nil {
			env.ConfigPath = path
		}
		cfg, err := config.Load()
		if err != nil {
			loadErr = &ConfigLoadError{Path: env.ConfigPath, Err: err}
		} else {
			env.Config = cfg
		}
	}

	level := env.Config.Log.Level
	if args.LogLevel != "" {
		level = args.LogLevel
	}
	logger, err := logging.New(level, env.Stderr)
	if err != nil {
		if loadErr == nil {
			loadErr = NewValidationError("log-level", args.LogLevel, err.Error())
		}
	} else {
		env.Logger = logger
	}
	config.SetGlobal(env.Config)

	return env, loadErr
}

// =============================================================================
// SHARED INPUT HELPERS
// =============================================================================

// keyInputs returns the rotor and plugboard strings from flags, falling back
// to the configured defaults.
func (e *Env) keyInputs(p *ArgParser) (rotors, plugboard string) {
	rotors, ok := p.FirstFlag("rotors", "r")
	if !ok {
		rotors = e.Config.Cipher.Rotors
	}
	plugboard, ok = p.FirstFlag("plugboard", "p")
	if !ok {
		plugboard = e.Config.Cipher.Plugboard
	}
	return rotors, plugboard
}

// resolveKey builds the machine key from flags and config.
func (e *Env) resolveKey(p *ArgParser) (enigma.Key, error) {
	rotors, plugboard := e.keyInputs(p)
	if strings.TrimSpace(rotors) == "" {
		return enigma.Key{}, ErrMissingArgument("rotors", `--rotors "0:A 1:B 2:C" (or set cipher.rotors)`)
	}
	return enigma.ParseKey(rotors, plugboard)
}

// preserveCase reports whether --preserve-case or the config asks for it.
func (e *Env) preserveCase(p *ArgParser) bool {
	if p.HasFlag("preserve-case") {
		return p.BoolFlag("preserve-case")
	}
	return e.Config.Cipher.PreserveCase
}

// readText returns the message from --text, then positional args starting at
// from, then stdin when it is not a terminal. One trailing newline from stdin
// is dropped. The text is returned as given; callers normalize plaintext.
func (e *Env) readText(p *ArgParser, from int) (string, error) {
	if text, ok := p.FirstFlag("text", "t"); ok {
		return text, nil
	}
	if p.PositionalCount() > from && p.Positional(from) != "-" {
		return JoinPositionalArgs(p, from), nil
	}
	if e.Stdin == nil || isTerminalReader(e.Stdin) {
		return "", nil
	}

	data, err := io.ReadAll(bufio.NewReader(e.Stdin))
	if err != nil {
		return "", WrapError(err, "failed to read stdin")
	}
	text := strings.TrimSuffix(string(data), "\n")
	text = strings.TrimSuffix(text, "\r")
	return text, nil
}

// openService opens the configured message log with the case mode chosen
// by p.
func (e *Env) openService(p *ArgParser) (*messaging.Service, error) {
	cfg := *e.Config
	cfg.Cipher.PreserveCase = e.preserveCase(p)
	return messaging.Open(&cfg, e.Logger)
}
