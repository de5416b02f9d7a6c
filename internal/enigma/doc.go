// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package enigma implements a three-stage rotor cipher machine: a plugboard,
// an ordered bank of stepping rotors, and a fixed reflector.
//
// Each alphabetic character travels
//
//	plugboard -> rotor[0..n-1] forward -> reflector -> rotor[n-1..0] backward -> plugboard
//
// after which the rotor bank steps like an odometer. Because the reflector is
// an involution, a Machine built from the same Key decodes what another one
// encoded:
//
//	key, _ := enigma.ParseKey("0:A 1:B 2:C", "AB CD")
//	ct, _ := enigma.EncodeMessage(key, "HELLO")   // "RNHDB"
//	pt, _ := enigma.EncodeMessage(key, ct)        // "HELLO"
//
// A rotor carries into the next one when it steps off its notch letter. The
// earlier Python tool carried when a rotor stepped onto its notch, so messages
// it produced whose fast rotor passed a notch do not decode here.
//
// A Machine is stateful and not safe for concurrent use. Callers that need
// parallel sessions build one Machine per session; the wiring tables are
// immutable and shared.
package enigma
