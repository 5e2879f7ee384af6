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

package alloc

import "testing"

func TestPooledAllocGrowFree(t *testing.T) {
	t.Parallel()

	buf, err := Alloc(Default, 10, ZeroInit)
	if err != nil || len(buf) != 10 {
		t.Fatalf("Alloc: got %v, %v", buf, err)
	}
	for _, b := range buf {
		if b != 0 {
			t.Fatalf("expected zeroed allocation")
		}
	}
	copy(buf, "0123456789")

	grown, err := Realloc(Default, buf, 10, 20, 0)
	if err != nil || len(grown) != 20 {
		t.Fatalf("Realloc: got %v, %v", grown, err)
	}
	if string(grown[:10]) != "0123456789" {
		t.Fatalf("Realloc did not preserve prefix: %q", grown[:10])
	}
	Free(Default, grown, 20)
}

func TestPooledAllocNilNoop(t *testing.T) {
	t.Parallel()
	buf, err := Alloc(Default, 0, 0)
	if err != nil || buf != nil {
		t.Fatalf("Alloc(0): got %v, %v", buf, err)
	}
}

func TestArenaBumpAndFreeAll(t *testing.T) {
	t.Parallel()

	a := NewArena(64)
	b1, _ := Alloc(a, 16, 0)
	b2, _ := Alloc(a, 16, 0)
	copy(b1, "aaaaaaaaaaaaaaaa")
	copy(b2, "bbbbbbbbbbbbbbbb")
	if string(b1) != "aaaaaaaaaaaaaaaa" || string(b2) != "bbbbbbbbbbbbbbbb" {
		t.Fatalf("arena allocations overlapped: %q %q", b1, b2)
	}
	a.FreeAll()
	if len(a.chunks) != 0 {
		t.Fatalf("FreeAll did not release chunks")
	}
}
