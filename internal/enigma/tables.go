// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package enigma

// RotorCount is the number of rotor wirings available to NewRotor.
const RotorCount = 5

// rotorDef is one entry of the fixed rotor catalogue.
type rotorDef struct {
	name    string
	wiring  string
	notch   byte
	forward table
	inverse table
}

// rotorDefs is indexed by rotor index 0-4. Tables are filled in init and never
// written again, so every Rotor may share them.
var rotorDefs = [RotorCount]rotorDef{
	{name: "I", wiring: "EKMFLGDQVZNTOWYHXUSPAIBRCJ", notch: 'Q'},
	{name: "II", wiring: "AJDKSIRUXBLHWTMCQGZNPYFVOE", notch: 'E'},
	{name: "III", wiring: "BDFHJLCPRTXVZNYEIWGAKMUSQO", notch: 'V'},
	{name: "IV", wiring: "GELUYASHMJDKWFIVNCZPQROXTB", notch: 'W'},
	{name: "V", wiring: "NMYXOQHAKREDVSITUPLJWBGZCF", notch: 'F'},
}

// reflectorWiring is the wide-B reflector. It is self-inverse with no fixed points.
const reflectorWiring = "YRUHQSLDPXNGOKMIEBFZCWVJAT"

var reflectorTable table

func init() {
	for i := range rotorDefs {
		def := &rotorDefs[i]
		def.forward = mustTable(def.wiring)
		def.inverse = def.forward.invert()
	}
	reflectorTable = mustTable(reflectorWiring)
	for i, l := range reflectorTable {
		if reflectorTable[l] != Letter(i) || l == Letter(i) {
			panic("enigma: reflector wiring is not a fixed-point-free involution")
		}
	}
}

// RotorInfo describes one entry of the rotor catalogue.
type RotorInfo struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Wiring string `json:"wiring"`
	Notch  string `json:"notch"`
}

// Catalogue lists the rotors NewRotor can build, in index order.
func Catalogue() []RotorInfo {
	out := make([]RotorInfo, 0, RotorCount)
	for i, def := range rotorDefs {
		out = append(out, RotorInfo{
			Index:  i,
			Name:   def.name,
			Wiring: def.wiring,
			Notch:  string(def.notch),
		})
	}
	return out
}

// ReflectorWiring returns the reflector table as a 26-letter string.
func ReflectorWiring() string {
	return reflectorWiring
}
