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

import "github.com/SnellerInc/pstring"

// EncodeHex appends the uppercase hex encoding of src onto dst.
func EncodeHex(dst *pstring.String, src []byte) error {
	out := make([]byte, 0, len(src)*2)
	for _, b := range src {
		out = append(out, hexDigitsUpper[b>>4], hexDigitsUpper[b&0xf])
	}
	return appendBytes(dst, out)
}

// DecodeHex appends the decoded bytes of the hex string src onto dst,
// rejecting an odd-length input or a non-hex digit.
func DecodeHex(dst *pstring.String, src []byte) error {
	if len(src)%2 != 0 {
		return pstring.ErrInvalidArg
	}
	out := make([]byte, 0, len(src)/2)
	for i := 0; i < len(src); i += 2 {
		hi, ok1 := hexVal(src[i])
		lo, ok2 := hexVal(src[i+1])
		if !ok1 || !ok2 {
			return pstring.ErrInvalidArg
		}
		out = append(out, hi<<4|lo)
	}
	return appendBytes(dst, out)
}
