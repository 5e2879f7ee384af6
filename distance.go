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
	"unsafe"

	"github.com/SnellerInc/pstring/alloc"
)

// stackRowLimit is the row size (in ints) at or below which the three
// rolling rows of the edit-distance matrix live on the call stack
// (fixed-size local arrays); above it, scratch comes from the default
// allocator and is released before Distance returns, per §4.3.
const stackRowLimit = 1024

// Distance returns the Damerau-Levenshtein distance between a and b
// (insert/delete/substitute cost 1, adjacent-transposition cost 1),
// computed with three rolling rows sized min(len(a), len(b))+1,
// grounded on fuzzy/edit_distance_ref.go's rolling-matrix shape.
func Distance(a, b *String) int {
	return distanceBytes(a.Bytes(), b.Bytes())
}

func distanceBytes(x, y []byte) int {
	if len(x) == 0 {
		return len(y)
	}
	if len(y) == 0 {
		return len(x)
	}
	// x is the shorter operand so the rolling rows are as small as
	// possible.
	if len(x) > len(y) {
		x, y = y, x
	}
	m := len(x)
	rowSize := m + 1

	if rowSize <= stackRowLimit {
		var p2, p1, cu [stackRowLimit]int
		return editDistanceDP(x, y, p2[:rowSize], p1[:rowSize], cu[:rowSize])
	}

	scratch, err := alloc.Alloc(alloc.Default, rowSize*3*int(unsafe.Sizeof(int(0))), 0)
	if err != nil {
		// allocator exhausted: fall back to ordinary heap rows rather
		// than fail an operation with no error return in its signature.
		p2 := make([]int, rowSize)
		p1 := make([]int, rowSize)
		cu := make([]int, rowSize)
		return editDistanceDP(x, y, p2, p1, cu)
	}
	defer alloc.Free(alloc.Default, scratch, len(scratch))
	rows := unsafe.Slice((*int)(unsafe.Pointer(&scratch[0])), rowSize*3)
	return editDistanceDP(x, y, rows[:rowSize], rows[rowSize:2*rowSize], rows[2*rowSize:3*rowSize])
}

func editDistanceDP(x, y []byte, prev2, prev1, cur []int) int {
	m := len(x)
	n := len(y)
	for j := 0; j <= m; j++ {
		prev1[j] = j
	}
	for i := 1; i <= n; i++ {
		cur[0] = i
		for j := 1; j <= m; j++ {
			cost := 1
			if y[i-1] == x[j-1] {
				cost = 0
			}
			del := prev1[j] + 1
			ins := cur[j-1] + 1
			sub := prev1[j-1] + cost
			best := min3(del, ins, sub)
			if i > 1 && j > 1 && y[i-1] == x[j-2] && y[i-2] == x[j-1] {
				if t := prev2[j-2] + 1; t < best {
					best = t
				}
			}
			cur[j] = best
		}
		prev2, prev1, cur = prev1, cur, prev2
	}
	return prev1[m]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// DistanceApprox is a bounded, faster-but-inexact alternative to
// Distance for long strings, grounded on
// fuzzy/edit_distance_approx.go: it caps the number of edits it will
// search for at maxEdits and returns -1 if the true distance exceeds
// that bound, rather than computing the full matrix. Never used in
// place of Distance for correctness-sensitive callers; it is an
// explicit opt-in enrichment documented in SPEC_FULL.md.
func DistanceApprox(a, b *String, maxEdits int) int {
	return distanceApproxBytes(a.Bytes(), b.Bytes(), maxEdits)
}

// distanceApproxBytes implements a diagonal-banded Levenshtein scan:
// only cells within maxEdits of the main diagonal are evaluated, which
// bounds the work to O((len(a)+len(b)) * maxEdits) instead of
// O(len(a) * len(b)). It does not model transpositions (an
// approximation, per its name).
func distanceApproxBytes(x, y []byte, maxEdits int) int {
	if maxEdits < 0 {
		maxEdits = 0
	}
	m, n := len(x), len(y)
	if abs(m-n) > maxEdits {
		return -1
	}
	const inf = 1 << 30
	prev := make([]int, m+1)
	cur := make([]int, m+1)
	for j := 0; j <= m; j++ {
		if j <= maxEdits {
			prev[j] = j
		} else {
			prev[j] = inf
		}
	}
	for i := 1; i <= n; i++ {
		lo := i - maxEdits
		if lo < 0 {
			lo = 0
		}
		hi := i + maxEdits
		if hi > m {
			hi = m
		}
		for j := 0; j < lo; j++ {
			cur[j] = inf
		}
		for j := hi + 1; j <= m; j++ {
			cur[j] = inf
		}
		for j := lo; j <= hi; j++ {
			if j == 0 {
				cur[0] = i
				continue
			}
			cost := 1
			if x[j-1] == y[i-1] {
				cost = 0
			}
			best := prev[j-1] + cost
			if ins := cur[j-1] + 1; ins < best {
				best = ins
			}
			if del := prev[j] + 1; del < best {
				best = del
			}
			cur[j] = best
		}
		prev, cur = cur, prev
	}
	d := prev[m]
	if d >= inf || d > maxEdits {
		return -1
	}
	return d
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
