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

func TestEqualImpliesHashEqual(t *testing.T) {
	t.Parallel()
	a := NewString("hello world", nil)
	b := NewString("hello world", nil)
	if !Equal(a, b) {
		t.Fatalf("setup: expected equal")
	}
	if a.Hash() != b.Hash() {
		t.Fatalf("equal strings must hash equal")
	}
}

func TestHashDifferentForDifferentContent(t *testing.T) {
	t.Parallel()
	a := NewString("hello", nil)
	b := NewString("world", nil)
	if a.Hash() == b.Hash() {
		t.Fatalf("different strings hashed equal (not impossible, but suspicious for this input)")
	}
}

func TestExternalHashHook(t *testing.T) {
	defer SetExternalHash(nil)
	SetExternalHash(func(b []byte) uint64 { return uint64(len(b)) })
	s := NewString("abcd", nil)
	if s.Hash() != 4 {
		t.Fatalf("external hash hook not used: got %d", s.Hash())
	}
}
