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

func TestDistanceBasics(t *testing.T) {
	t.Parallel()
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"ab", "ba", 1}, // adjacent transposition cost 1
		{"same", "same", 0},
	}
	for _, c := range cases {
		got := Distance(NewString(c.a, nil), NewString(c.b, nil))
		if got != c.want {
			t.Errorf("Distance(%q,%q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestDistanceSymmetric(t *testing.T) {
	t.Parallel()
	a := NewString("distance", nil)
	b := NewString("instance", nil)
	if Distance(a, b) != Distance(b, a) {
		t.Fatalf("distance must be symmetric")
	}
}

func TestDistanceApproxWithinBound(t *testing.T) {
	t.Parallel()
	a := NewString("hello", nil)
	b := NewString("hellp", nil)
	got := DistanceApprox(a, b, 2)
	if got != 1 {
		t.Fatalf("DistanceApprox = %d want 1", got)
	}
}

func TestDistanceApproxExceedsBound(t *testing.T) {
	t.Parallel()
	a := NewString("abcdef", nil)
	b := NewString("ghijkl", nil)
	if got := DistanceApprox(a, b, 1); got != -1 {
		t.Fatalf("DistanceApprox should report -1 past the bound, got %d", got)
	}
}
