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

import "testing"

func TestNewInlineShortString(t *testing.T) {
	t.Parallel()
	s := NewString("hi", nil)
	if s.Kind() != KindInline {
		t.Fatalf("expected inline, got %v", s.Kind())
	}
	if s.Len() != 2 || s.String() != "hi" {
		t.Fatalf("unexpected content: len=%d val=%q", s.Len(), s.String())
	}
}

func TestGrowPromotesInlineToOwned(t *testing.T) {
	t.Parallel()
	s := NewString("hi", nil)
	if err := s.Grow(100); err != nil {
		t.Fatalf("Grow: %v", err)
	}
	if s.Kind() != KindOwned {
		t.Fatalf("expected owned after growth, got %v", s.Kind())
	}
	if s.Len() != 2 || s.Cap() < 102 {
		t.Fatalf("unexpected len/cap after grow: len=%d cap=%d", s.Len(), s.Cap())
	}
	if s.String() != "hi" {
		t.Fatalf("content changed across growth: %q", s.String())
	}
}

func TestWrapStrlenAndStrnlen(t *testing.T) {
	t.Parallel()
	buf := []byte("abc\x00def")
	s := Wrap(buf, 0, 0)
	if s.Kind() != KindSlice || s.Len() != 3 {
		t.Fatalf("Wrap strlen: got kind=%v len=%d", s.Kind(), s.Len())
	}

	s2 := Wrap(buf, 0, 6)
	if s2.Len() != 3 {
		t.Fatalf("Wrap bounded strnlen: got len=%d", s2.Len())
	}
}

func TestSliceResizeRejected(t *testing.T) {
	t.Parallel()
	buf := []byte("hello world")
	s := Wrap(buf, len(buf), len(buf))
	if err := s.Reserve(1); err != ErrInvalidArg {
		t.Fatalf("expected ErrInvalidArg from slice Reserve, got %v", err)
	}
}

func TestFreeResetsToEmptyInline(t *testing.T) {
	t.Parallel()
	s := NewString("a string long enough to be owned for sure", nil)
	if s.Kind() != KindOwned {
		t.Fatalf("setup: expected owned")
	}
	s.Free()
	if s.Kind() != KindInline || s.Len() != 0 {
		t.Fatalf("Free did not reset to empty inline: kind=%v len=%d", s.Kind(), s.Len())
	}
	s.Free() // double-free is a no-op
}

func TestDupCopiesIndependentStorage(t *testing.T) {
	t.Parallel()
	s := NewString("hello", nil)
	d := Dup(s)
	if !Equal(s, d) {
		t.Fatalf("dup not equal to source")
	}
	d.Catc('!')
	if Equal(s, d) {
		t.Fatalf("mutating dup affected source")
	}
}

func TestInvariantLenLEQCap(t *testing.T) {
	t.Parallel()
	for _, src := range []string{"", "a", "0123456789abcdef0123456789abcdef"} {
		s := NewString(src, nil)
		if s.Len() > s.Cap() {
			t.Fatalf("%q: len %d > cap %d", src, s.Len(), s.Cap())
		}
	}
}
