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

// Package bitset provides small generic bit-twiddling helpers shared
// by the scan kernel's lane masks and the dictionary's metadata-strip
// masks, grounded on the teacher's ints/bits.go generic helpers.
package bitset

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Mask16 returns a mask over the low n bits (n <= 16).
func Mask16(n int) uint16 {
	if n >= 16 {
		return 0xffff
	}
	return uint16(1)<<uint(n) - 1
}

// Mask32 returns a mask over the low n bits (n <= 32).
func Mask32(n int) uint32 {
	if n >= 32 {
		return 0xffffffff
	}
	return uint32(1)<<uint(n) - 1
}

// TestBit reports whether the k-th bit is set in v.
func TestBit[T constraints.Integer, K constraints.Integer](v T, k K) bool {
	return v&(T(1)<<uint(k)) != 0
}

// SetBit sets the k-th bit of v.
func SetBit[T constraints.Integer, K constraints.Integer](v T, k K) T {
	return v | (T(1) << uint(k))
}

// ClearBit clears the k-th bit of v.
func ClearBit[T constraints.Integer, K constraints.Integer](v T, k K) T {
	return v &^ (T(1) << uint(k))
}

// FirstSet returns the index of the lowest set bit of v, or -1 if v
// is zero. Used by scan-kernel mask consumers to locate the first hit
// without a linear scan (trailing-zero-count per §4.2).
func FirstSet(v uint32) int {
	if v == 0 {
		return -1
	}
	return bits.TrailingZeros32(v)
}

// LastSet returns the index of the highest set bit of v, or -1 if v
// is zero.
func LastSet(v uint32) int {
	if v == 0 {
		return -1
	}
	return 31 - bits.LeadingZeros32(v)
}
