// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package enigma

// AlphabetSize is the number of symbols the machine substitutes.
const AlphabetSize = 26

// Letter is an offset into the alphabet: 0 is 'A', 25 is 'Z'.
type Letter uint8

// LetterOf maps an ASCII letter of either case to its offset.
// upper reports whether r was uppercase; ok is false for every other rune.
func LetterOf(r rune) (l Letter, upper bool, ok bool) {
	switch {
	case r >= 'A' && r <= 'Z':
		return Letter(r - 'A'), true, true
	case r >= 'a' && r <= 'z':
		return Letter(r - 'a'), false, true
	}
	return 0, false, false
}

// Byte returns the uppercase ASCII letter for l.
func (l Letter) Byte() byte {
	return 'A' + byte(l)
}

// Rune returns the uppercase letter for l.
func (l Letter) Rune() rune {
	return rune(l.Byte())
}

func (l Letter) String() string {
	return string(l.Rune())
}

// Add shifts l by n positions, wrapping modulo AlphabetSize. n may be negative.
func (l Letter) Add(n int) Letter {
	v := (int(l) + n) % AlphabetSize
	if v < 0 {
		v += AlphabetSize
	}
	return Letter(v)
}

// parseUpper accepts a single uppercase ASCII letter.
func parseUpper(b byte) (Letter, bool) {
	if b < 'A' || b > 'Z' {
		return 0, false
	}
	return Letter(b - 'A'), true
}

// table is a permutation of the alphabet indexed by letter offset.
type table [AlphabetSize]Letter

// mustTable converts a 26-letter wiring string into a table.
// It panics on malformed input; it is only called on package constants.
func mustTable(wiring string) table {
	if len(wiring) != AlphabetSize {
		panic("enigma: wiring must have 26 letters: " + wiring)
	}
	var t table
	var seen [AlphabetSize]bool
	for i := 0; i < AlphabetSize; i++ {
		l, ok := parseUpper(wiring[i])
		if !ok || seen[l] {
			panic("enigma: wiring is not a permutation: " + wiring)
		}
		seen[l] = true
		t[i] = l
	}
	return t
}

// invert returns the inverse permutation of t.
func (t *table) invert() table {
	var inv table
	for i, l := range t {
		inv[l] = Letter(i)
	}
	return inv
}
