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

import "github.com/dchest/siphash"

// hashKey is the process-local siphash key, analogous to the
// teacher's vm/interphash.go use of a fixed (k0, k1) pair keying
// siphash.Hash128 for every value hashed during a query.
var hashKey0, hashKey1 uint64 = 0x9ae16a3b2f90404f, 0xc949d7c7509e6557

// externalHash, when non-nil, replaces the bundled siphash with a
// caller-supplied function, implementing the "External hash"
// build-time switch from §6. SetExternalHash is meant to be called
// once at startup.
var externalHash func([]byte) uint64

// SetExternalHash installs fn as the hash function Hash delegates to.
// Passing nil restores the bundled siphash-based default.
func SetExternalHash(fn func([]byte) uint64) {
	externalHash = fn
}

// Hash returns a 64-bit non-cryptographic hash of s's bytes, stable
// across the life of the process but not guaranteed stable across
// builds or process restarts (the key is fixed at compile time here,
// but nothing promises its value won't change between releases).
func (s *String) Hash() uint64 {
	if externalHash != nil {
		return externalHash(s.Bytes())
	}
	lo, _ := siphash.Hash128(hashKey0, hashKey1, s.Bytes())
	return lo
}
