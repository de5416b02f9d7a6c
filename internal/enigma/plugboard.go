// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package enigma

import (
	"sort"
	"strings"
)

// Plugboard swaps configured letter pairs and leaves every other letter alone.
// Its table is always an involution: wiring[wiring[x]] == x.
type Plugboard struct {
	wiring table
	pairs  []string
}

// NewPlugboard builds a plugboard from whitespace-separated pairs such as "AB CD".
// Pairs are case-insensitive. An empty string yields the identity plugboard.
func NewPlugboard(pairs string) (*Plugboard, error) {
	p := &Plugboard{}
	for i := range p.wiring {
		p.wiring[i] = Letter(i)
	}

	var used [AlphabetSize]bool
	for _, token := range strings.Fields(pairs) {
		if len(token) != 2 {
			return nil, configError("plugboard", token, ErrBadPlugToken)
		}
		a, _, okA := LetterOf(rune(token[0]))
		b, _, okB := LetterOf(rune(token[1]))
		if !okA || !okB {
			return nil, configError("plugboard", token, ErrBadPlugToken)
		}
		if a == b {
			return nil, configError("plugboard", token, ErrSelfPlug)
		}
		if used[a] || used[b] {
			return nil, configError("plugboard", token, ErrDuplicatePlug)
		}
		used[a], used[b] = true, true
		p.wiring[a], p.wiring[b] = b, a
		p.pairs = append(p.pairs, a.String()+b.String())
	}
	return p, nil
}

// Encode returns the partner of l, or l itself when it is not plugged.
func (p *Plugboard) Encode(l Letter) Letter {
	return p.wiring[l]
}

// Pairs returns the normalized pairs in configuration order.
func (p *Plugboard) Pairs() []string {
	out := make([]string, len(p.pairs))
	copy(out, p.pairs)
	return out
}

// String renders the pairs sorted, e.g. "AB CD".
func (p *Plugboard) String() string {
	pairs := p.Pairs()
	sort.Strings(pairs)
	return strings.Join(pairs, " ")
}
