// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package pattern implements a small regex-like matching language
// over byte strings: literal bytes and UTF-8 sequences, character
// classes, bracket sets, alternation, numbered capture groups, and
// greedy quantifiers. A pattern compiles once to a bytecode program
// and a backtracking matcher walks it against arbitrary []byte input.
package pattern

import (
	"log"

	"github.com/google/uuid"

	"github.com/SnellerInc/pstring"
)

// Logger is where Compile reports diagnostic events (falling back to
// ErrNotSupported for a non-greedy quantifier, hitting the parser's
// nesting-depth limit). Assign a different *log.Logger to redirect or
// silence it; the zero value would panic on first use, same caveat as
// dict.Logger.
var Logger = log.Default()

// Program is a compiled pattern: a flat bytecode stream plus the
// number of capture groups the parser numbered (not counting the
// implicit whole-match capture 0).
type Program struct {
	code        []byte
	numCaptures int
	id          uuid.UUID
}

// Pattern is a compiled, reusable matcher. The zero value is not
// usable; construct one with Compile.
type Pattern struct {
	prog *Program
}

// Compile parses src and returns a reusable Pattern. It returns
// pstring.ErrInvalidArg for malformed syntax (unbalanced brackets,
// a quantifier with nothing to quantify, an unknown escape) and
// pstring.ErrNotSupported for syntax this engine intentionally does
// not implement (non-greedy quantifiers, excessive nesting depth).
func Compile(src string) (*Pattern, error) {
	prog, err := compile([]byte(src))
	if err != nil {
		return nil, err
	}
	prog.id = uuid.New()
	return &Pattern{prog: prog}, nil
}

// NumCaptures returns the number of numbered capture groups in the
// pattern (excluding the implicit whole-match group 0).
func (p *Pattern) NumCaptures() int { return p.prog.numCaptures }

// ID returns the UUID tagging this compiled program, for correlating
// compile-time diagnostics or cache entries with a specific Pattern
// across logs (mirrors dict.WithID's tagging role for dictionaries).
func (p *Pattern) ID() uuid.UUID { return p.prog.id }

// Match reports whether the pattern matches anywhere within input.
// Matching is unanchored: the engine retries at every starting byte
// offset until it finds a match or exhausts the input.
func (p *Pattern) Match(input []byte) bool {
	_, ok := p.find(input, 0)
	return ok
}

// MatchString is the string-argument form of Match.
func (p *Pattern) MatchString(input string) bool {
	return p.Match([]byte(input))
}

// FindIndex returns the [start,end) byte offsets of the first match
// in input, or nil if there is no match.
func (p *Pattern) FindIndex(input []byte) []int {
	caps, ok := p.find(input, 0)
	if !ok {
		return nil
	}
	return []int{caps[0].start, caps[0].end}
}

// FindSubmatchIndex is FindIndex extended with one [start,end) pair
// per numbered capture group (in addition to the whole-match pair at
// index 0). A group that did not participate in the match reports
// [-1,-1].
func (p *Pattern) FindSubmatchIndex(input []byte) []int {
	caps, ok := p.find(input, 0)
	if !ok {
		return nil
	}
	out := make([]int, 0, 2*len(caps))
	for _, c := range caps {
		out = append(out, c.start, c.end)
	}
	return out
}

// FindAllIndex returns the [start,end) offsets of up to n
// non-overlapping matches (n<0 means "all"), scanning left to right
// and resuming the search immediately after each match's end.
func (p *Pattern) FindAllIndex(input []byte, n int) [][]int {
	var out [][]int
	start := 0
	for (n < 0 || len(out) < n) && start <= len(input) {
		caps, ok := p.find(input, start)
		if !ok {
			break
		}
		out = append(out, []int{caps[0].start, caps[0].end})
		if caps[0].end > caps[0].start {
			start = caps[0].end
		} else {
			start = caps[0].end + 1
		}
	}
	return out
}

// find runs the unanchored search driver: try an anchored attempt at
// every byte offset from start onward until one succeeds.
func (p *Pattern) find(input []byte, start int) ([]capture, bool) {
	for at := start; at <= len(input); at++ {
		m := &matcher{
			input:    input,
			code:     p.prog.code,
			captures: make([]capture, p.prog.numCaptures+1),
		}
		for i := range m.captures {
			m.captures[i] = capture{-1, -1}
		}
		matchEnd := -1
		ok := m.run(0, at, len(p.prog.code), func(pos int) bool {
			matchEnd = pos
			return true
		})
		if ok {
			m.captures[0] = capture{at, matchEnd}
			return m.captures, true
		}
	}
	return nil, false
}

// Repl returns a copy of s with the first (or, if all is true, every
// non-overlapping) match of p replaced by repl. An empty pattern
// match is rejected with pstring.ErrInvalidArg rather than looped
// forever, since repeatedly "replacing" a zero-width match at the
// same offset never advances.
func (p *Pattern) Repl(s, repl []byte, all bool) ([]byte, error) {
	matches := p.FindAllIndex(s, -1)
	if len(matches) == 0 {
		return append([]byte(nil), s...), nil
	}
	for _, m := range matches {
		if m[0] == m[1] {
			return nil, pstring.ErrInvalidArg
		}
	}
	out := make([]byte, 0, len(s))
	prev := 0
	for i, m := range matches {
		if !all && i > 0 {
			break
		}
		out = append(out, s[prev:m[0]]...)
		out = append(out, repl...)
		prev = m[1]
	}
	out = append(out, s[prev:]...)
	return out, nil
}
