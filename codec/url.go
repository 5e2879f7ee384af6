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

func isURLUnreserved(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_' || c == '~' || c == '.':
		return true
	}
	return false
}

// EncodeURL percent-encodes every byte of src outside the unreserved
// set (alphanumerics and -_~.) onto dst.
func EncodeURL(dst *pstring.String, src []byte) error {
	out := make([]byte, 0, len(src))
	for _, b := range src {
		if isURLUnreserved(b) {
			out = append(out, b)
			continue
		}
		out = append(out, '%', hexDigitsUpper[b>>4], hexDigitsUpper[b&0xf])
	}
	return appendBytes(dst, out)
}

// DecodeURL appends the percent-decoded bytes of src onto dst. A '%'
// without two following hex digits at the very end of the input is
// left as a literal byte (a trailing orphan); a malformed '%XY'
// sequence elsewhere in the input is an error.
func DecodeURL(dst *pstring.String, src []byte) error {
	out := make([]byte, 0, len(src))
	for i := 0; i < len(src); {
		c := src[i]
		if c != '%' {
			out = append(out, c)
			i++
			continue
		}
		if i+2 >= len(src) {
			out = append(out, '%')
			i++
			continue
		}
		hi, ok1 := hexVal(src[i+1])
		lo, ok2 := hexVal(src[i+2])
		if !ok1 || !ok2 {
			return pstring.ErrInvalidArg
		}
		out = append(out, hi<<4|lo)
		i += 3
	}
	return appendBytes(dst, out)
}
