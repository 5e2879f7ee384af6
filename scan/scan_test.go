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

package scan

import (
	"testing"

	"github.com/SnellerInc/pstring/internal/bitset"
)

func TestMatchChr(t *testing.T) {
	t.Parallel()
	block := []byte("abcabcabcabcabcabc")
	mask := MatchChr(block, 'b')
	for i, b := range block {
		want := b == 'b'
		got := bitset.TestBit(mask, i)
		if got != want {
			t.Fatalf("lane %d: got %v want %v (mask=%032b)", i, got, want, mask)
		}
	}
}

func TestMatchSet(t *testing.T) {
	t.Parallel()
	block := []byte("a1b2c3d4")
	digits := []byte("0123456789")
	mask := MatchSet(block, digits, len(digits))
	for i, b := range block {
		want := b >= '0' && b <= '9'
		if bitset.TestBit(mask, i) != want {
			t.Fatalf("lane %d (%q): got %v want %v", i, b, bitset.TestBit(mask, i), want)
		}
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()
	a := []byte("hello world")
	b := []byte("hellO world")
	mask := Compare(a, b)
	for i := range a {
		want := a[i] == b[i]
		if bitset.TestBit(mask, i) != want {
			t.Fatalf("lane %d: got %v want %v", i, bitset.TestBit(mask, i), want)
		}
	}
}

func TestDynamicModeStartsScalar(t *testing.T) {
	SetMode(Dynamic)
	defer SetMode(Static)
	if Width() != 0 {
		t.Fatalf("dynamic mode should start at V=0 before Detect(), got %d", Width())
	}
	Detect()
	if Width() < 0 {
		t.Fatalf("Detect produced negative width")
	}
}
