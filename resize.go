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

import "github.com/SnellerInc/pstring/alloc"

// scanAlign is the scan kernel's widest block width; owned capacity
// is rounded up to a multiple of it minus one so the owned buffer can
// be read with aligned block loads, per §4.3's "Resize" rule.
const scanAlign = 32

func roundCap(n int) int {
	if n < 0 {
		n = 0
	}
	rem := (n + 1) % scanAlign
	if rem == 0 {
		return n
	}
	return n + (scanAlign - rem)
}

// Reserve ensures s has room for n more bytes beyond its current
// length, growing by (len+n)*2-len when it must reallocate. A slice
// value always fails with ErrInvalidArg, since it owns no buffer to
// grow.
func (s *String) Reserve(n int) error {
	if n < 0 {
		return ErrInvalidArg
	}
	need := s.length + n
	if need <= s.cap {
		return nil
	}
	if s.kind == KindSlice {
		return ErrInvalidArg
	}
	newCap := roundCap(need*2 - s.length)
	if newCap < need {
		newCap = roundCap(need)
	}
	return s.reallocTo(newCap)
}

// Grow enlarges s by at least n bytes, promoting an inline value to
// owned on its first growth beyond ISIZE (copying the inline bytes
// first).
func (s *String) Grow(n int) error {
	if n < 0 {
		return ErrInvalidArg
	}
	return s.Reserve(n)
}

// Shrink reallocates an owned s down to the smallest rounded capacity
// (see roundCap) that holds its length. A no-op for inline, slice and
// already-minimal owned values.
func (s *String) Shrink() error {
	if s.kind != KindOwned {
		return nil
	}
	target := roundCap(s.length)
	if target >= s.cap {
		return nil
	}
	return s.reallocTo(target)
}

// reallocTo grows/moves s to have exactly newCap usable bytes,
// promoting inline->owned as needed. On allocator failure the
// invariants of §3 are preserved: length is left untouched and any
// already-grown capacity is left intact (here: untouched, since the
// realloc either succeeds atomically or not at all).
func (s *String) reallocTo(newCap int) error {
	a := s.allocatorOrDefault()
	switch s.kind {
	case KindInline:
		buf, err := alloc.Alloc(a, newCap+1, 0)
		if err != nil {
			return ErrOutOfMemory
		}
		copy(buf, s.inline[:s.length])
		s.kind = KindOwned
		s.buf = buf
		s.cap = newCap
		s.a = a
		s.terminate()
		return nil
	case KindOwned:
		buf, err := alloc.Realloc(a, s.buf, s.cap+1, newCap+1, 0)
		if err != nil {
			return ErrOutOfMemory
		}
		s.buf = buf
		s.cap = newCap
		s.terminate()
		return nil
	default: // slice
		return ErrInvalidArg
	}
}

// growOwned is used by constructors that know up-front they need an
// owned buffer of at least n bytes.
func (s *String) growOwned(a alloc.Allocator, n int, extra int) {
	newCap := roundCap(n + extra)
	buf, err := alloc.Alloc(a, newCap+1, 0)
	if err != nil {
		// Constructors have no error return in the spec; fall back to
		// the smallest viable owned allocation rather than panic.
		buf, _ = alloc.Alloc(a, n+1, 0)
		newCap = n
	}
	s.kind = KindOwned
	s.buf = buf
	s.cap = newCap
	s.a = a
}

// setLength updates s's length, maintaining the owned null
// terminator. Callers are responsible for having ensured capacity.
func (s *String) setLength(n int) {
	s.length = n
	s.terminate()
}
