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

import "github.com/SnellerInc/pstring/scan"

// Compare returns byte-lexicographic order: negative if a < b, zero
// if equal, positive if a > b. On a mismatch the first differing
// byte's unsigned difference is returned, matching memcmp semantics.
func Compare(a, b *String) int {
	return compareBytes(a.Bytes(), b.Bytes())
}

func compareBytes(x, y []byte) int {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	i := 0
	for i+32 <= n {
		mask := scan.Compare(x[i:i+32], y[i:i+32])
		if mask != 0xffffffff {
			break
		}
		i += 32
	}
	for ; i < n; i++ {
		if x[i] != y[i] {
			return int(x[i]) - int(y[i])
		}
	}
	return len(x) - len(y)
}

// Equal is the shortcut form of Compare: true iff a and b have the
// same length and bytes.
func Equal(a, b *String) bool {
	if a.length != b.length {
		return false
	}
	return compareBytes(a.Bytes(), b.Bytes()) == 0
}
