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

// Package scan implements the SIMD-ish scanning kernel: vector-wide
// byte equality, byte-in-set membership, and block compare, with a
// process-global dispatch record populated at startup (static mode)
// or by an explicit Detect() call (dynamic mode).
//
// The block primitives are implemented as 8-byte SWAR (SIMD Within A
// Register) loops, grounded on the teacher's utf8/length.go
// continuation-byte counter: this pack carries no hand-written
// assembly kernels, so the widest portable "vector" lane here is a
// machine word, unrolled to fill the dispatch-selected block width V.
package scan

import (
	"encoding/binary"
	"math/bits"

	"github.com/SnellerInc/pstring/internal/cpufeat"
)

// Mode selects how the dispatch record's width V is chosen.
type Mode int

const (
	// Static takes the widest width the CPU offers, detected at
	// package initialization (and again by SetMode(Static)), and
	// Detect is a no-op.
	Static Mode = iota
	// Dynamic leaves V at 0 until Detect() probes CPU features.
	Dynamic
)

// dispatch is the process-global record described in §4.2. It is
// immutable after its one optional Detect() call; a caller racing
// Detect() with scanning must serialize externally, same as the
// teacher's own avx512level dispatch switch.
type dispatch struct {
	mode Mode
	v    int
}

var global = dispatch{mode: Static, v: cpufeat.Detect().Width()}

// SetMode switches between Static and Dynamic dispatch. Intended to
// be called, if at all, once at process startup before any scanning
// happens.
func SetMode(m Mode) {
	global.mode = m
	if m == Static {
		global.v = cpufeat.Detect().Width()
	} else {
		global.v = 0
	}
}

// Detect probes CPU features and populates the dispatch record when
// in Dynamic mode. It is a no-op in Static mode.
func Detect() {
	if global.mode == Dynamic {
		global.v = cpufeat.Detect().Width()
	}
}

// Width returns the currently active block width V. 0 means the
// scalar fallback must be used for every search.
func Width() int {
	return global.v
}

// MatchChr returns a bitmask where bit i is set iff block[i] == c.
// When Width() is nonzero and block holds at least Width() bytes, the
// lanes are [0, Width()) and higher bits are zero; otherwise (scalar
// mode, or a shorter block) the lanes are the first min(len(block), 32)
// bytes.
func MatchChr(block []byte, c byte) uint32 {
	v := global.v
	if v == 0 || len(block) < v {
		return matchChrScalar(block, c)
	}
	return swarEqMask(block[:v], c)
}

// MatchSet returns a bitmask where bit i is set iff block[i] is one
// of the first setlen bytes of set.
func MatchSet(block []byte, set []byte, setlen int) uint32 {
	v := global.v
	n := len(block)
	if v == 0 || n < v {
		v = n
	}
	var mask uint32
	for i := 0; i < v; i++ {
		if inSet(block[i], set[:setlen]) {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

// Compare returns a bitmask where bit i is set iff a[i] == b[i], over
// min(len(a), len(b)) lanes, capped at Width() when Width() is nonzero.
func Compare(a, b []byte) uint32 {
	v := global.v
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if v == 0 || n < v {
		v = n
	}
	var mask uint32
	for i := 0; i < v; i++ {
		if a[i] == b[i] {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

func inSet(b byte, set []byte) bool {
	for _, s := range set {
		if s == b {
			return true
		}
	}
	return false
}

func matchChrScalar(block []byte, c byte) uint32 {
	var mask uint32
	for i, b := range block {
		if i >= 32 {
			break
		}
		if b == c {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

// swarEqMask compares an 8-aligned-or-shorter block against c using
// the teacher's SWAR idiom (cf. utf8.ValidStringLength's qword
// continuation-byte count): broadcast c across a word, xor, and use
// a carry-free zero-byte test to find matches
// eight lanes at a time, falling through to a scalar tail for the
// remainder.
func swarEqMask(block []byte, c byte) uint32 {
	var mask uint32
	rep := uint64(c) * 0x0101010101010101
	i := 0
	for len(block)-i >= 8 {
		qword := binary.LittleEndian.Uint64(block[i:])
		x := qword ^ rep
		// zero-byte detection: for each byte y, (y&0x7f)+0x7f never carries
		// into the next byte and has its high bit set iff y&0x7f != 0, so
		// after or-ing in y the high bit is clear iff y == 0
		t := ((x & 0x7f7f7f7f7f7f7f7f) + 0x7f7f7f7f7f7f7f7f) | x
		z := ^t & 0x8080808080808080
		for lane := 0; lane < 8; lane++ {
			if z&(0x80<<uint(lane*8)) != 0 {
				mask |= 1 << uint(i+lane)
			}
		}
		i += 8
	}
	for ; i < len(block); i++ {
		if block[i] == c {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

// PopCount is a thin re-export of bits.OnesCount32 that counts the
// set lanes of a mask.
func PopCount(mask uint32) int {
	return bits.OnesCount32(mask)
}
