// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package enigma

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) Key {
	t.Helper()
	key, err := ParseKey("{0: 'A', 1: 'B', 2: 'C'}", "AB CD")
	require.NoError(t, err)
	return key
}

// =============================================================================
// KNOWN VECTORS
// =============================================================================

func TestMachine_HelloVector(t *testing.T) {
	key := testKey(t)

	m, err := NewMachine(key)
	require.NoError(t, err)
	ct := m.EncodeMessage("HELLO")
	assert.Equal(t, "RNHDB", ct)
	assert.Equal(t, "FBC", m.Positions())

	fresh, err := NewMachine(key)
	require.NoError(t, err)
	assert.Equal(t, "HELLO", fresh.EncodeMessage(ct))
}

func TestMachine_NonLettersPassThroughWithoutStepping(t *testing.T) {
	key := testKey(t)

	withPunct, err := NewMachine(key)
	require.NoError(t, err)
	plain, err := NewMachine(key)
	require.NoError(t, err)

	out := withPunct.EncodeMessage("HELLO, WORLD!")
	assert.Equal(t, "RNHDB, TFUOL!", out)
	assert.Equal(t, "RNHDBTFUOL", plain.EncodeMessage("HELLOWORLD"))
	assert.Equal(t, plain.Positions(), withPunct.Positions())
	assert.Equal(t, "KBC", withPunct.Positions())

	for _, r := range "0123 .,;!?\n\té漢🙂" {
		before := withPunct.Positions()
		assert.Equal(t, r, withPunct.EncodeRune(r))
		assert.Equal(t, before, withPunct.Positions(), "rune %q must not step the rotors", r)
	}
}

func TestMachine_OdometerAfterFullRevolution(t *testing.T) {
	key, err := ParseKey("0:A 1:A 2:A", "")
	require.NoError(t, err)
	m, err := NewMachine(key)
	require.NoError(t, err)

	out := m.EncodeMessage(strings.Repeat("A", 26))
	assert.Equal(t, "NEVRDWDXJXEEKNWWCUNIQBZQQE", out)
	assert.Equal(t, "ABA", m.Positions(), "rotor 0 back at A, rotor 1 advanced once")
}

func TestMachine_CarryPropagatesThroughBank(t *testing.T) {
	// Each rotor sits one before (rotor 0) or on (rotors 1, 2) its notch.
	key, err := ParseKey("0:P 1:E 2:V", "")
	require.NoError(t, err)
	m, err := NewMachine(key)
	require.NoError(t, err)

	assert.Equal(t, 'P', m.EncodeRune('A'))
	assert.Equal(t, "QEV", m.Positions())
	assert.Equal(t, 'R', m.EncodeRune('A'))
	assert.Equal(t, "RFW", m.Positions(), "leaving Q carries through every notched rotor")
	assert.Equal(t, 'I', m.EncodeRune('A'))
	assert.Equal(t, "SFW", m.Positions())
}

func TestMachine_CaseHandling(t *testing.T) {
	key := testKey(t)

	upper, err := EncodeMessage(key, "Hello, World!")
	require.NoError(t, err)
	assert.Equal(t, "RNHDB, TFUOL!", upper, "output is uppercase by default")

	preserved, err := EncodeMessage(key, "Hello, World!", WithPreserveCase(true))
	require.NoError(t, err)
	assert.Equal(t, "Rnhdb, Tfuol!", preserved)

	back, err := EncodeMessage(key, preserved, WithPreserveCase(true))
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", back)
}

// =============================================================================
// PROPERTIES
// =============================================================================

func randomKey(rng *rand.Rand) Key {
	n := 1 + rng.Intn(5)
	rotors := make([]RotorSetting, n)
	for i := range rotors {
		rotors[i] = RotorSetting{Rotor: rng.Intn(RotorCount), Start: byte('A' + rng.Intn(26))}
	}

	letters := rng.Perm(AlphabetSize)
	pairs := make([]string, rng.Intn(14))
	for i := range pairs {
		pairs[i] = Letter(letters[2*i]).String() + Letter(letters[2*i+1]).String()
	}
	return Key{Rotors: rotors, Plugboard: strings.Join(pairs, " ")}
}

func randomMessage(rng *rand.Rand) string {
	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789 ,.!?-\n"
	b := make([]byte, rng.Intn(400))
	for i := range b {
		b[i] = chars[rng.Intn(len(chars))]
	}
	return string(b)
}

func TestMachine_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1942))
	for i := 0; i < 200; i++ {
		key := randomKey(rng)
		msg := randomMessage(rng)

		ct, err := EncodeMessage(key, msg)
		require.NoError(t, err, "key %s", key)
		require.Len(t, ct, len(msg))

		pt, err := EncodeMessage(key, ct)
		require.NoError(t, err)
		require.Equal(t, strings.ToUpper(msg), pt, "key %s", key)
	}
}

func TestMachine_NoLetterEncodesToItself(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		m, err := NewMachine(randomKey(rng))
		require.NoError(t, err)
		for j := 0; j < 100; j++ {
			in := rune('A' + rng.Intn(26))
			require.NotEqual(t, in, m.EncodeRune(in))
		}
	}
}

func TestMachine_Deterministic(t *testing.T) {
	key := testKey(t)
	a, err := NewMachine(key)
	require.NoError(t, err)
	b, err := NewMachine(key)
	require.NoError(t, err)

	msg := "The quick brown fox jumps over the lazy dog"
	assert.Equal(t, a.EncodeMessage(msg), b.EncodeMessage(msg))
	assert.Equal(t, a.Positions(), b.Positions())
}

func TestMachine_ResetRestoresStart(t *testing.T) {
	key := testKey(t)
	m, err := NewMachine(key)
	require.NoError(t, err)

	first := m.EncodeMessage("ATTACK AT DAWN")
	assert.NotEqual(t, "ABC", m.Positions())
	m.Reset()
	assert.Equal(t, "ABC", m.Positions())
	assert.Equal(t, first, m.EncodeMessage("ATTACK AT DAWN"))
}

func TestMachine_StreamMatchesWholeMessage(t *testing.T) {
	key := testKey(t)
	whole, err := EncodeMessage(key, "ONETWOTHREE")
	require.NoError(t, err)

	m, err := NewMachine(key)
	require.NoError(t, err)
	streamed := m.EncodeMessage("ONE") + m.EncodeMessage("TWO") + m.EncodeMessage("THREE")
	assert.Equal(t, whole, streamed)
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

func TestNewMachine_Errors(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want error
	}{
		{"no rotors", Key{}, ErrNoRotors},
		{"bad rotor", Key{Rotors: []RotorSetting{{Rotor: 7, Start: 'A'}}}, ErrBadRotorIndex},
		{"bad position", Key{Rotors: []RotorSetting{{Rotor: 0, Start: 'a'}}}, ErrBadPosition},
		{"bad plugboard", Key{Rotors: []RotorSetting{{Rotor: 0, Start: 'A'}}, Plugboard: "AB BC"}, ErrDuplicatePlug},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMachine(tt.key)
			assert.Nil(t, m, "no partially built machine")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)

			var ce *ConfigError
			require.True(t, errors.As(err, &ce))
			assert.NotEmpty(t, ce.Field)
		})
	}
}

func TestMachine_KeyIsCopied(t *testing.T) {
	key := testKey(t)
	m, err := NewMachine(key)
	require.NoError(t, err)

	key.Rotors[0].Start = 'Z'
	assert.Equal(t, byte('A'), m.Key().Rotors[0].Start)

	got := m.Key()
	got.Rotors[0].Start = 'Y'
	assert.Equal(t, byte('A'), m.Key().Rotors[0].Start)
}
