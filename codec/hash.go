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

package codec

import "golang.org/x/crypto/blake2b"

// ContentHash returns a collision-resistant 256-bit digest of src,
// for content-addressing use cases distinct from pstring.String.Hash
// (which is a fast, non-cryptographic hash meant for the dictionary's
// probe sequence, not for deduplication across untrusted input).
func ContentHash(src []byte) [32]byte {
	return blake2b.Sum256(src)
}
