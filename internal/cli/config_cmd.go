// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - config command.
//
// Command: config
// Short:   Inspect and edit ~/.enigma/config.toml
//
// Subcommands:
//   show (default)     Print the effective configuration
//   init [--force]     Write a config file (accepts --sender, --rotors, --plugboard)
//   path               Print the config file location
//   get KEY            Print one value, e.g. cipher.rotors
//   set KEY VALUE      Change one value in the file
//   keys               List settable keys
//
// set edits the file itself, so environment overrides are never persisted.

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/enigma-tui/internal/config"
)

// HandleConfig runs the config command.
func HandleConfig(env *Env, args Args) error {
	p := args.Parser()

	switch strings.ToLower(p.Subcommand()) {
	case "", "show":
		return handleConfigShow(env, args)
	case "init":
		return handleConfigInit(env, args, p)
	case "path":
		if args.JSON {
			return NewJSONResponse("config path", map[string]string{"path": env.ConfigPath}).Fprint(env.Stdout)
		}
		fmt.Fprintln(env.Stdout, env.ConfigPath)
		return nil
	case "get":
		return handleConfigGet(env, args, p.Positional(1))
	case "set":
		return handleConfigSet(env, args, p.Positional(1), strings.Join(p.PositionalFrom(2), " "))
	case "keys":
		for _, k := range config.Keys() {
			fmt.Fprintln(env.Stdout, k)
		}
		return nil
	default:
		return NewValidationErrorWithExample("subcommand", p.Subcommand(), "unknown config subcommand",
			"enigma config [show|init|path|get|set|keys]")
	}
}

func handleConfigShow(env *Env, args Args) error {
	_, statErr := os.Stat(env.ConfigPath)
	exists := statErr == nil

	if args.JSON {
		return NewJSONResponse("config show", ConfigData{
			Path:   env.ConfigPath,
			Exists: exists,
			Config: env.Config,
		}).Fprint(env.Stdout)
	}

	state := SuccessStyle.Render("found")
	if !exists {
		state = WarningStyle.Render("not found, showing defaults")
	}
	fmt.Fprintf(env.Stdout, "%s %s (%s)\n", TitleStyle.Render("enigma configuration"), env.ConfigPath, state)
	fmt.Fprintln(env.Stdout, RenderSeparator(41))
	return toml.NewEncoder(env.Stdout).Encode(env.Config)
}

func handleConfigInit(env *Env, args Args, p *ArgParser) error {
	if env.ConfigPath == "" {
		return NewCommandError("config", "init", "no config path", nil)
	}
	if _, err := os.Stat(env.ConfigPath); err == nil && !p.BoolFlag("force") {
		return NewCommandError("config", "init", "config file already exists (use --force to overwrite)", nil)
	}

	cfg := config.Default()
	if v, ok := p.FirstFlag("sender", "s"); ok {
		cfg.Sender = v
	}
	if v, ok := p.FirstFlag("rotors", "r"); ok {
		cfg.Cipher.Rotors = v
	}
	if v, ok := p.FirstFlag("plugboard", "p"); ok {
		cfg.Cipher.Plugboard = v
	}
	if v, ok := p.FirstFlag("store"); ok {
		cfg.Store.Backend = v
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.SaveTOML(cfg, env.ConfigPath); err != nil {
		return NewCommandError("config", "init", "could not write config file", err)
	}

	if args.JSON {
		return NewJSONResponse("config init", ConfigData{Path: env.ConfigPath, Exists: true, Config: cfg}).Fprint(env.Stdout)
	}
	if !args.Quiet {
		fmt.Fprintf(env.Stdout, "%s %s\n", SuccessStyle.Render("Wrote"), env.ConfigPath)
	}
	return nil
}

func handleConfigGet(env *Env, args Args, key string) error {
	if key == "" {
		return ErrMissingArgument("key", "enigma config get cipher.rotors")
	}
	val, err := env.Config.Get(key)
	if err != nil {
		return NewValidationError("key", key, err.Error())
	}
	if args.JSON {
		return NewJSONResponse("config get", map[string]interface{}{"key": key, "value": val}).Fprint(env.Stdout)
	}
	fmt.Fprintln(env.Stdout, val)
	return nil
}

func handleConfigSet(env *Env, args Args, key, value string) error {
	if key == "" {
		return ErrMissingArgument("key", `enigma config set cipher.rotors "0:A 1:B 2:C"`)
	}

	// Start from the file alone so env overrides are not written back.
	cfg := config.Default()
	if _, err := os.Stat(env.ConfigPath); err == nil {
		if err := config.LoadTOML(cfg, env.ConfigPath); err != nil {
			return &ConfigLoadError{Path: env.ConfigPath, Err: err}
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return &ConfigLoadError{Path: env.ConfigPath, Err: err}
	}

	if err := cfg.Set(key, value); err != nil {
		return NewValidationError("key", key, err.Error())
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.SaveTOML(cfg, env.ConfigPath); err != nil {
		return NewCommandError("config", "set", "could not write config file", err)
	}

	if args.JSON {
		return NewJSONResponse("config set", map[string]string{"key": key, "value": value}).Fprint(env.Stdout)
	}
	if !args.Quiet {
		fmt.Fprintf(env.Stdout, "%s %s = %s\n", SuccessStyle.Render("Set"), key, value)
	}
	return nil
}
