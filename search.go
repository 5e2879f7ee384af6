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

package pstring

import (
	"github.com/SnellerInc/pstring/internal/bitset"
	"github.com/SnellerInc/pstring/scan"
)

const notFound = -1

// Chr returns the index of the first occurrence of c in s, or -1.
// Follows the §4.2 template: scan full blocks with the kernel
// primitive, ctz the mask to find the first hit, fall through to a
// scalar tail.
func (s *String) Chr(c byte) int {
	return chrIn(s.Bytes(), c)
}

func chrIn(buf []byte, c byte) int {
	i := 0
	v := scan.Width()
	for v > 0 && len(buf)-i >= v {
		mask := scan.MatchChr(buf[i:i+v], c)
		if mask != 0 {
			return i + bitset.FirstSet(mask)
		}
		i += v
	}
	for ; i < len(buf); i++ {
		if buf[i] == c {
			return i
		}
	}
	return notFound
}

// RChr returns the index of the last occurrence of c in s, or -1.
func (s *String) RChr(c byte) int {
	buf := s.Bytes()
	for i := len(buf) - 1; i >= 0; i-- {
		if buf[i] == c {
			return i
		}
	}
	return notFound
}

// PBrk returns the index of the first byte of s that is in set, or
// -1. set must be at most 256 bytes.
func (s *String) PBrk(set []byte) int {
	return pbrkIn(s.Bytes(), set, true)
}

// CPBrk returns the index of the first byte of s that is NOT in set,
// or -1.
func (s *String) CPBrk(set []byte) int {
	return pbrkIn(s.Bytes(), set, false)
}

func pbrkIn(buf, set []byte, want bool) int {
	i := 0
	v := scan.Width()
	for v > 0 && len(buf)-i >= v {
		mask := scan.MatchSet(buf[i:i+v], set, len(set))
		if !want {
			mask = ^mask & bitset.Mask32(v)
		}
		if mask != 0 {
			return i + bitset.FirstSet(mask)
		}
		i += v
	}
	for ; i < len(buf); i++ {
		if inByteSet(buf[i], set) == want {
			return i
		}
	}
	return notFound
}

func inByteSet(b byte, set []byte) bool {
	for _, c := range set {
		if c == b {
			return true
		}
	}
	return false
}

// RPBrk returns the index of the last byte of s that is in set, or
// -1.
func (s *String) RPBrk(set []byte) int {
	return rpbrkIn(s.Bytes(), set, true)
}

// RCPBrk returns the index of the last byte of s that is NOT in set,
// or -1.
func (s *String) RCPBrk(set []byte) int {
	return rpbrkIn(s.Bytes(), set, false)
}

func rpbrkIn(buf, set []byte, want bool) int {
	for i := len(buf) - 1; i >= 0; i-- {
		if inByteSet(buf[i], set) == want {
			return i
		}
	}
	return notFound
}

// Spn returns the length of the leading run of bytes in set.
func (s *String) Spn(set []byte) int {
	i := s.CPBrk(set)
	if i == notFound {
		return s.length
	}
	return i
}

// CSpn returns the length of the leading run of bytes NOT in set.
func (s *String) CSpn(set []byte) int {
	i := s.PBrk(set)
	if i == notFound {
		return s.length
	}
	return i
}

// RSpn returns the length of the trailing run of bytes in set.
func (s *String) RSpn(set []byte) int {
	i := s.RCPBrk(set)
	if i == notFound {
		return s.length
	}
	return s.length - 1 - i
}

// RCSpn returns the length of the trailing run of bytes NOT in set.
func (s *String) RCSpn(set []byte) int {
	i := s.RPBrk(set)
	if i == notFound {
		return s.length
	}
	return s.length - 1 - i
}

// Index finds the first occurrence of needle in s (§4.3's strstr):
// Chr locates the needle's first byte, then a block compare confirms
// the match; ties break leftmost.
func (s *String) Index(needle *String) int {
	return indexIn(s.Bytes(), needle.Bytes())
}

func indexIn(hay, needle []byte) int {
	if len(needle) == 0 {
		return 0
	}
	if len(needle) > len(hay) {
		return notFound
	}
	first := needle[0]
	i := 0
	for {
		rel := chrIn(hay[i:], first)
		if rel == notFound {
			return notFound
		}
		i += rel
		if i+len(needle) > len(hay) {
			return notFound
		}
		if compareBytes(hay[i:i+len(needle)], needle) == 0 {
			return i
		}
		i++
	}
}
