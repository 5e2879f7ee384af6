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

package pattern

import "bytes"

// maxMatcherDepth bounds the recursion depth of the backtracking
// walk, standing in for the source's fixed-size frame stack. Go's own
// call stack plays the role of that stack here: each
// opBranch/opMatch/opRepeat choice point is one more stack frame
// rather than one more array slot.
const maxMatcherDepth = 4096

// capture holds the [start,end) byte offsets of one capturing group;
// end == -1 means "not yet closed" and start == -1 means "never
// entered".
type capture struct {
	start, end int
}

type matcher struct {
	input    []byte
	code     []byte
	captures []capture
	depth    int
}

// run attempts to match m.code[pc:end] against m.input starting at
// pos, calling cont with the position reached once pc reaches end.
// cont returning false forces a backtrack into an earlier choice
// point exactly as if the match had failed, which is how quantifiers
// and alternation explore every remaining possibility. end is usually
// len(m.code) (the whole program), but opRepeat recurses with end set
// to the boundary of its repeated span so the span's own fallthrough
// invokes the loop's continuation instead of spilling into whatever
// instruction happens to follow the span in the full bytecode buffer.
func (m *matcher) run(pc, pos, end int, cont func(int) bool) bool {
	m.depth++
	defer func() { m.depth-- }()
	if m.depth > maxMatcherDepth {
		return false
	}
	if pc == end {
		return cont(pos)
	}
	op := opcode(m.code[pc])
	switch op {
	case opNop:
		return m.run(pc+1, pos, end, cont)

	case opWordBoundary, opNotWordBoundary:
		if isWordBoundaryAt(m.input, pos) == (op == opWordBoundary) {
			return m.run(pc+1, pos, end, cont)
		}
		return false

	case opCaptureStart:
		id := getWord(m.code[pc+1 : pc+1+wordSize])
		next := pc + 1 + wordSize
		saved := m.captures[id]
		m.captures[id].start = pos
		if m.run(next, pos, end, cont) {
			return true
		}
		m.captures[id] = saved
		return false

	case opCaptureEnd:
		id := getWord(m.code[pc+1 : pc+1+wordSize])
		next := pc + 1 + wordSize
		saved := m.captures[id]
		m.captures[id].end = pos
		if m.run(next, pos, end, cont) {
			return true
		}
		m.captures[id] = saved
		return false

	case opBranch:
		jump := getWord(m.code[pc+1 : pc+1+wordSize])
		next := pc + 1 + wordSize
		alt := next + int(jump)
		if m.run(next, pos, end, cont) {
			return true
		}
		return m.run(alt, pos, end, cont)

	case opJump:
		jump := getWord(m.code[pc+1 : pc+1+wordSize])
		next := pc + 1 + wordSize
		return m.run(next+int(jump), pos, end, cont)

	case opMatch:
		return m.runMatch(pc, pos, end, cont)

	case opRepeat:
		return m.runRepeat(pc, pos, end, cont)

	default:
		return false
	}
}

// runMatch implements greedy quantifier matching over a primitive
// atom: consume the atom as many times as possible (up to max), then
// hand control to the rest of the program, shrinking the count on
// backtrack down to min.
func (m *matcher) runMatch(pc, pos, end int, cont func(int) bool) bool {
	min := getWord(m.code[pc+1 : pc+1+wordSize])
	max := getWord(m.code[pc+1+wordSize : pc+1+2*wordSize])
	kind := valueKind(m.code[pc+1+2*wordSize])
	payload, next := matchPayload(m.code, pc+1+2*wordSize+1, kind)

	positions := []int{pos}
	cur := pos
	for uint32(len(positions)-1) < max {
		newPos, ok := matchAtom(kind, payload, m.input, cur)
		if !ok {
			break
		}
		cur = newPos
		positions = append(positions, cur)
	}
	if uint32(len(positions)-1) < min {
		return false
	}
	for count := len(positions) - 1; count >= int(min); count-- {
		if m.run(next, positions[count], end, cont) {
			return true
		}
	}
	return false
}

// runRepeat implements greedy quantifier matching over an arbitrary
// bytecode span (e.g. a whole capturing group), so patterns like
// `(a|b)+` can repeat something richer than a single atom. Each
// iteration re-enters the span fresh, so a repeated CAPTURE_START/END
// pair is overwritten every iteration — the capture left standing once
// the match completes is always the last iteration's, matching the
// usual "last iteration wins" semantics for a repeated group.
func (m *matcher) runRepeat(pc, pos, end int, cont func(int) bool) bool {
	min := getWord(m.code[pc+1 : pc+1+wordSize])
	max := getWord(m.code[pc+1+wordSize : pc+1+2*wordSize])
	bodyLen := getWord(m.code[pc+1+2*wordSize : pc+1+3*wordSize])
	bodyStart := pc + 1 + 3*wordSize
	bodyEnd := bodyStart + int(bodyLen)
	next := bodyEnd

	var loop func(pos int, count uint32) bool
	loop = func(pos int, count uint32) bool {
		if count < max {
			extended := m.run(bodyStart, pos, bodyEnd, func(newPos int) bool {
				if newPos == pos {
					// Zero-width iteration: looping again would never
					// terminate and never consumes more input, so
					// refuse it and let the body try a different
					// internal alternative (or give up) instead.
					return false
				}
				return loop(newPos, count+1)
			})
			if extended {
				return true
			}
		}
		if count >= min {
			return m.run(next, pos, end, cont)
		}
		return false
	}
	return loop(pos, 0)
}

// matchPayload decodes a MATCH instruction's inline value record
// starting at off (just past the kind byte) and returns (payload,
// nextInstrPC).
func matchPayload(code []byte, off int, kind valueKind) ([]byte, int) {
	switch kind {
	case valByte, valClass:
		return code[off : off+1], off + 1
	default: // valUtf8, valSet, valNegSet
		n := int(getWord(code[off : off+wordSize]))
		start := off + wordSize
		return code[start : start+n], start + n
	}
}

// matchAtom attempts to consume one atom of the given kind from
// input[pos:], returning the position after the atom on success.
func matchAtom(kind valueKind, payload, input []byte, pos int) (int, bool) {
	switch kind {
	case valByte:
		if pos < len(input) && input[pos] == payload[0] {
			return pos + 1, true
		}
		return pos, false
	case valClass:
		if pos < len(input) && classMatch(classID(payload[0]), input[pos]) {
			return pos + 1, true
		}
		return pos, false
	case valUtf8:
		n := len(payload)
		if pos+n <= len(input) && bytes.Equal(input[pos:pos+n], payload) {
			return pos + n, true
		}
		return pos, false
	case valSet, valNegSet:
		if pos >= len(input) {
			return pos, false
		}
		b := input[pos]
		member := payload[b>>3]&(1<<uint(b&7)) != 0
		if kind == valNegSet {
			member = !member
		}
		if member {
			return pos + 1, true
		}
		return pos, false
	default:
		return pos, false
	}
}

func isWordBoundaryAt(input []byte, pos int) bool {
	before := pos > 0 && isWordByte(input[pos-1])
	after := pos < len(input) && isWordByte(input[pos])
	return before != after
}
