// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package enigma

import (
	"strings"
	"unicode"
)

// Machine wires a plugboard, a rotor bank and a reflector together.
// It is not safe for concurrent use.
type Machine struct {
	key          Key
	plugboard    *Plugboard
	rotors       []*Rotor
	reflector    *Reflector
	preserveCase bool
}

// Option configures a Machine.
type Option func(*Machine)

// WithPreserveCase makes lowercase input letters come out lowercase.
// By default every output letter is uppercase.
func WithPreserveCase(preserve bool) Option {
	return func(m *Machine) {
		m.preserveCase = preserve
	}
}

// NewMachine builds a machine for key with every rotor at its starting letter.
// Nothing is returned unless every component is valid.
func NewMachine(key Key, opts ...Option) (*Machine, error) {
	if len(key.Rotors) == 0 {
		return nil, configError("rotors", "", ErrNoRotors)
	}

	plugboard, err := NewPlugboard(key.Plugboard)
	if err != nil {
		return nil, err
	}

	rotors := make([]*Rotor, 0, len(key.Rotors))
	for _, s := range key.Rotors {
		r, err := NewRotor(s.Rotor, s.Start)
		if err != nil {
			return nil, err
		}
		rotors = append(rotors, r)
	}

	m := &Machine{
		key: Key{
			Rotors:    append([]RotorSetting(nil), key.Rotors...),
			Plugboard: key.Plugboard,
		},
		plugboard: plugboard,
		rotors:    rotors,
		reflector: NewReflector(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// EncodeRune enciphers one character. Non-letters come back unchanged and
// leave the rotors where they are.
func (m *Machine) EncodeRune(r rune) rune {
	l, upper, ok := LetterOf(r)
	if !ok {
		return r
	}

	l = m.plugboard.Encode(l)
	for _, rotor := range m.rotors {
		l = rotor.EncodeForward(l)
	}
	l = m.reflector.Reflect(l)
	for i := len(m.rotors) - 1; i >= 0; i-- {
		l = m.rotors[i].EncodeBackward(l)
	}
	l = m.plugboard.Encode(l)

	m.step()

	out := l.Rune()
	if m.preserveCase && !upper {
		out = unicode.ToLower(out)
	}
	return out
}

// step advances rotor 0 and carries into the next rotor for as long as the
// rotor that just moved left its notch.
func (m *Machine) step() {
	for _, rotor := range m.rotors {
		if !rotor.Step() {
			return
		}
	}
}

// EncodeMessage enciphers every character of text in order, continuing from
// the machine's current rotor positions.
func (m *Machine) EncodeMessage(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		b.WriteRune(m.EncodeRune(r))
	}
	return b.String()
}

// Positions returns the current rotor letters in slot order, e.g. "ABC".
func (m *Machine) Positions() string {
	buf := make([]byte, len(m.rotors))
	for i, r := range m.rotors {
		buf[i] = r.Position()
	}
	return string(buf)
}

// Reset turns every rotor back to its starting letter.
func (m *Machine) Reset() {
	for _, r := range m.rotors {
		r.Reset()
	}
}

// Key returns a copy of the key the machine was built from.
func (m *Machine) Key() Key {
	return Key{
		Rotors:    append([]RotorSetting(nil), m.key.Rotors...),
		Plugboard: m.key.Plugboard,
	}
}

// Plugboard returns the machine's plugboard.
func (m *Machine) Plugboard() *Plugboard { return m.plugboard }

// Rotors returns the rotor bank in slot order. The rotors are live: stepping
// them changes the machine.
func (m *Machine) Rotors() []*Rotor { return m.rotors }

// EncodeMessage runs text through a fresh machine built from key.
// Encoding the result again with the same key returns the original text.
func EncodeMessage(key Key, text string, opts ...Option) (string, error) {
	m, err := NewMachine(key, opts...)
	if err != nil {
		return "", err
	}
	return m.EncodeMessage(text), nil
}
