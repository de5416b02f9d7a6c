// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// rotors_cmd.go - rotors and version commands.

package cli

import (
	"fmt"
	"runtime"

	"github.com/jeranaias/enigma-tui/internal/enigma"
)

// HandleRotors lists the rotor catalogue: the indices accepted by --rotors.
func HandleRotors(env *Env, args Args) error {
	rotors := enigma.Catalogue()

	if args.JSON {
		return NewJSONResponse("rotors", RotorsData{
			Reflector: enigma.ReflectorWiring(),
			Rotors:    rotors,
		}).Fprint(env.Stdout)
	}

	fmt.Fprintln(env.Stdout, TitleStyle.Render("Rotor catalogue"))
	fmt.Fprintln(env.Stdout, RenderSeparator(46))
	fmt.Fprintf(env.Stdout, "%-6s %-5s %-28s %s\n", "INDEX", "NAME", "WIRING", "NOTCH")
	for _, r := range rotors {
		fmt.Fprintf(env.Stdout, "%-6d %-5s %s %s\n", r.Index, r.Name, CipherStyle.Render(fmt.Sprintf("%-28s", r.Wiring)), r.Notch)
	}
	fmt.Fprintf(env.Stdout, "\n%s %s\n", DimStyle.Render("reflector:"), enigma.ReflectorWiring())
	return nil
}

// HandleVersion prints version information.
func HandleVersion(env *Env, args Args) error {
	if args.JSON {
		return NewJSONResponse("version", VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}).Fprint(env.Stdout)
	}
	PrintVersion(env.Stdout)
	return nil
}
