// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package enigma

import "strconv"

// Rotor is one stepping substitution wheel. The wiring and notch come from the
// fixed catalogue; only the position changes.
type Rotor struct {
	index    int
	forward  *table
	inverse  *table
	notch    Letter
	start    Letter
	position Letter
}

// NewRotor builds rotor index (0-4) set to the start letter ('A'-'Z').
func NewRotor(index int, start byte) (*Rotor, error) {
	if index < 0 || index >= RotorCount {
		return nil, configError("rotor", strconv.Itoa(index), ErrBadRotorIndex)
	}
	pos, ok := parseUpper(start)
	if !ok {
		return nil, configError("position", string(rune(start)), ErrBadPosition)
	}
	def := &rotorDefs[index]
	notch, _ := parseUpper(def.notch)
	return &Rotor{
		index:    index,
		forward:  &def.forward,
		inverse:  &def.inverse,
		notch:    notch,
		start:    pos,
		position: pos,
	}, nil
}

// EncodeForward passes l through the wiring on the way to the reflector.
func (r *Rotor) EncodeForward(l Letter) Letter {
	return r.forward[l.Add(int(r.position))]
}

// EncodeBackward is the inverse of EncodeForward at the same position.
func (r *Rotor) EncodeBackward(l Letter) Letter {
	return r.inverse[l].Add(-int(r.position))
}

// Step advances the rotor by one position. It returns true when the position
// it left was the notch, meaning the next rotor in the bank must step too.
func (r *Rotor) Step() bool {
	vacated := r.position
	r.position = r.position.Add(1)
	return vacated == r.notch
}

// Index is the catalogue index the rotor was built from.
func (r *Rotor) Index() int { return r.index }

// Position returns the current position letter.
func (r *Rotor) Position() byte { return r.position.Byte() }

// Start returns the configured starting letter.
func (r *Rotor) Start() byte { return r.start.Byte() }

// Notch returns the notch letter.
func (r *Rotor) Notch() byte { return r.notch.Byte() }

// SetPosition moves the rotor to pos without stepping neighbours.
func (r *Rotor) SetPosition(pos byte) error {
	l, ok := parseUpper(pos)
	if !ok {
		return configError("position", string(rune(pos)), ErrBadPosition)
	}
	r.position = l
	return nil
}

// Reset returns the rotor to its starting letter.
func (r *Rotor) Reset() {
	r.position = r.start
}
