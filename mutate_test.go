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

func TestCatAssociative(t *testing.T) {
	t.Parallel()
	ab := NewString("ab", nil)
	if err := ab.Cats("c"); err != nil {
		t.Fatalf("Cats: %v", err)
	}
	if ab.String() != "abc" {
		t.Fatalf("got %q want abc", ab.String())
	}

	left := NewString("a", nil)
	left.Cats("b")
	left.Cats("c")

	right := NewString("a", nil)
	right.Cats("bc")

	if !Equal(left, right) {
		t.Fatalf("cat associativity violated: %q vs %q", left.String(), right.String())
	}
}

func TestRCat(t *testing.T) {
	t.Parallel()
	s := NewString("world", nil)
	if err := s.RCats("hello "); err != nil {
		t.Fatalf("RCats: %v", err)
	}
	if s.String() != "hello world" {
		t.Fatalf("got %q", s.String())
	}
}

func TestInsertRemove(t *testing.T) {
	t.Parallel()
	s := NewString("helloworld", nil)
	if err := s.InsertC(5, ' '); err != nil {
		t.Fatalf("InsertC: %v", err)
	}
	if s.String() != "hello world" {
		t.Fatalf("got %q", s.String())
	}
	if err := s.Remove(5, 6); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if s.String() != "helloworld" {
		t.Fatalf("got %q", s.String())
	}
}

func TestReplNoOpOnSelfReplace(t *testing.T) {
	t.Parallel()
	s := NewString("hello world", nil)
	orig := s.String()
	if err := s.Repls("world", "world", 0); err != nil {
		t.Fatalf("Repl: %v", err)
	}
	if s.String() != orig {
		t.Fatalf("repl(s,a,a,0) must be a no-op: got %q want %q", s.String(), orig)
	}
}

func TestReplEmptyTargetRejected(t *testing.T) {
	t.Parallel()
	s := NewString("hello", nil)
	if err := s.Repls("", "x", 0); err != ErrInvalidArg {
		t.Fatalf("expected ErrInvalidArg, got %v", err)
	}
}

func TestReplSinglePassNotReMatched(t *testing.T) {
	t.Parallel()
	s := NewString("aaa", nil)
	if err := s.Repls("a", "aa", 0); err != nil {
		t.Fatalf("Repl: %v", err)
	}
	if s.String() != "aaaaaa" {
		t.Fatalf("got %q want aaaaaa (no re-match of inserted text)", s.String())
	}
}

func TestReplMaxLimitsCount(t *testing.T) {
	t.Parallel()
	s := NewString("aaaa", nil)
	if err := s.Replc('a', 'b', 2); err != nil {
		t.Fatalf("Replc: %v", err)
	}
	if s.String() != "bbaa" {
		t.Fatalf("got %q want bbaa", s.String())
	}
}

func TestCutOnSliceRepositionsWithoutShiftingBackingBuffer(t *testing.T) {
	t.Parallel()
	buf := []byte("0123456789")
	s := Wrap(buf, len(buf), len(buf))
	if err := s.Cut(0, 3); err != nil {
		t.Fatalf("Cut: %v", err)
	}
	if s.String() != "3456789" {
		t.Fatalf("got %q", s.String())
	}
	if string(buf) != "0123456789" {
		t.Fatalf("Cut mutated the backing buffer outside the slice's own bytes: %q", buf)
	}
}
