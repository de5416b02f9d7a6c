// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package enigma

import (
	"regexp"
	"strconv"
	"strings"
)

// RotorSetting places catalogue rotor Rotor in a slot, turned to Start.
type RotorSetting struct {
	Rotor int  `json:"rotor" toml:"rotor"`
	Start byte `json:"start" toml:"start"`
}

func (s RotorSetting) String() string {
	return strconv.Itoa(s.Rotor) + ":" + string(rune(s.Start))
}

// Key is everything both parties must share to exchange messages.
// Slot order in Rotors is the order the signal passes on its way in.
type Key struct {
	Rotors    []RotorSetting `json:"rotors"`
	Plugboard string         `json:"plugboard"`
}

// RotorString renders the rotor settings in the form ParseRotorConfig reads.
func (k Key) RotorString() string {
	parts := make([]string, len(k.Rotors))
	for i, s := range k.Rotors {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}

func (k Key) String() string {
	if strings.TrimSpace(k.Plugboard) == "" {
		return k.RotorString()
	}
	return k.RotorString() + " / " + strings.Join(strings.Fields(k.Plugboard), " ")
}

// Validate builds every component once and reports the first ConfigError.
func (k Key) Validate() error {
	_, err := NewMachine(k)
	return err
}

// rotorEntry matches "0:A", "1 = 'B'" or "\"2\": \"C\"".
var rotorEntry = regexp.MustCompile(`['"]?(-?\d+)['"]?\s*[:=]\s*['"]?([^\s,'"{}]*)['"]?`)

// ParseRotorConfig reads an ordered rotor configuration. Accepted forms:
//
//	0:A 1:B 2:C
//	0=A,1=B,2=C
//	{0: 'A', 1: 'B', 2: 'C'}
//
// Positions are checked by NewRotor, not here, so "0:a" parses and then fails
// with ErrBadPosition when the machine is built.
func ParseRotorConfig(s string) ([]RotorSetting, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, configError("rotors", "", ErrNoRotors)
	}

	matches := rotorEntry.FindAllStringSubmatchIndex(trimmed, -1)
	if len(matches) == 0 {
		return nil, configError("rotors", trimmed, ErrBadRotorConfig)
	}

	settings := make([]RotorSetting, 0, len(matches))
	prev := 0
	for _, m := range matches {
		if !onlySeparators(trimmed[prev:m[0]]) {
			return nil, configError("rotors", trimmed, ErrBadRotorConfig)
		}
		prev = m[1]

		index, err := strconv.Atoi(trimmed[m[2]:m[3]])
		if err != nil {
			return nil, configError("rotor", trimmed[m[2]:m[3]], ErrBadRotorIndex)
		}
		pos := trimmed[m[4]:m[5]]
		if len(pos) != 1 {
			return nil, configError("position", pos, ErrBadPosition)
		}
		settings = append(settings, RotorSetting{Rotor: index, Start: pos[0]})
	}
	if !onlySeparators(trimmed[prev:]) {
		return nil, configError("rotors", trimmed, ErrBadRotorConfig)
	}
	return settings, nil
}

func onlySeparators(s string) bool {
	return strings.Trim(s, " \t\r\n,{}") == ""
}

// ParseKey parses the user-facing rotor and plugboard strings and validates them.
func ParseKey(rotors, plugboard string) (Key, error) {
	settings, err := ParseRotorConfig(rotors)
	if err != nil {
		return Key{}, err
	}
	key := Key{Rotors: settings, Plugboard: plugboard}
	if err := key.Validate(); err != nil {
		return Key{}, err
	}
	return key, nil
}
