// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package enigma

// Reflector sends the signal back through the rotor bank.
// It holds no state; all reflectors share one table.
type Reflector struct {
	wiring *table
}

// NewReflector returns the machine's fixed reflector.
func NewReflector() *Reflector {
	return &Reflector{wiring: &reflectorTable}
}

// Reflect maps l to its partner. Reflect(Reflect(l)) == l and Reflect(l) != l.
func (r *Reflector) Reflect(l Letter) Letter {
	return r.wiring[l]
}
