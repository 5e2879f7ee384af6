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

import (
	"unicode/utf8"

	"github.com/SnellerInc/pstring"
)

// shortEscapes is the fixed short-escape table; anything else that
// needs escaping falls back to 3-digit octal.
var shortEscapes = map[byte]byte{
	'\a': 'a', '\b': 'b', '\f': 'f', '\n': 'n', '\r': 'r', '\t': 't', '\v': 'v',
	'\\': '\\', '"': '"',
}

func isCPrintable(b byte) bool {
	return b >= 0x20 && b < 0x7f
}

// EncodeCString appends the C-escaped form of src onto dst: control
// and non-printable bytes become a short escape where one is defined,
// otherwise a 3-digit octal escape.
func EncodeCString(dst *pstring.String, src []byte) error {
	out := make([]byte, 0, len(src))
	for _, b := range src {
		if esc, ok := shortEscapes[b]; ok {
			out = append(out, '\\', esc)
			continue
		}
		if isCPrintable(b) {
			out = append(out, b)
			continue
		}
		out = append(out, '\\', '0'+(b>>6)&7, '0'+(b>>3)&7, '0'+b&7)
	}
	return appendBytes(dst, out)
}

var shortUnescapes = map[byte]byte{
	'a': '\a', 'b': '\b', 'f': '\f', 'n': '\n', 'r': '\r', 't': '\t', 'v': '\v',
	'\\': '\\', '"': '"', '\'': '\'',
}

// DecodeCString appends the unescaped form of src onto dst. Accepts
// the short-escape table, 1-3 digit octal, \xHH (1-2 hex digits),
// \uXXXX, and \U00XXXXXX; rejects surrogate codepoints and codepoints
// above 0x10FFFF.
func DecodeCString(dst *pstring.String, src []byte) error {
	out := make([]byte, 0, len(src))
	i := 0
	for i < len(src) {
		c := src[i]
		if c != '\\' {
			out = append(out, c)
			i++
			continue
		}
		if i+1 >= len(src) {
			return pstring.ErrInvalidArg
		}
		esc := src[i+1]
		switch {
		case shortUnescapes[esc] != 0 || esc == '\\' || esc == '"' || esc == '\'':
			out = append(out, shortUnescapes[esc])
			i += 2
		case esc >= '0' && esc <= '7':
			j := i + 1
			v := 0
			n := 0
			for j < len(src) && n < 3 && src[j] >= '0' && src[j] <= '7' {
				v = v*8 + int(src[j]-'0')
				j++
				n++
			}
			if v > 0xff {
				return pstring.ErrInvalidArg
			}
			out = append(out, byte(v))
			i = j
		case esc == 'x':
			j := i + 2
			v := 0
			n := 0
			for j < len(src) && n < 2 {
				hv, ok := hexVal(src[j])
				if !ok {
					break
				}
				v = v*16 + int(hv)
				j++
				n++
			}
			if n == 0 {
				return pstring.ErrInvalidArg
			}
			out = append(out, byte(v))
			i = j
		case esc == 'u':
			cp, next, err := decodeHexCodepoint(src, i+2, 4)
			if err != nil {
				return err
			}
			if cp >= 0xd800 && cp <= 0xdfff {
				return pstring.ErrInvalidArg
			}
			var buf [utf8.UTFMax]byte
			n := utf8.EncodeRune(buf[:], rune(cp))
			out = append(out, buf[:n]...)
			i = next
		case esc == 'U':
			cp, next, err := decodeHexCodepoint(src, i+2, 8)
			if err != nil {
				return err
			}
			if cp > 0x10FFFF || (cp >= 0xd800 && cp <= 0xdfff) {
				return pstring.ErrInvalidArg
			}
			var buf [utf8.UTFMax]byte
			n := utf8.EncodeRune(buf[:], rune(cp))
			out = append(out, buf[:n]...)
			i = next
		default:
			return pstring.ErrInvalidArg
		}
	}
	return appendBytes(dst, out)
}

func decodeHexCodepoint(src []byte, off, digits int) (int, int, error) {
	if off+digits > len(src) {
		return 0, 0, pstring.ErrInvalidArg
	}
	v := 0
	for k := 0; k < digits; k++ {
		hv, ok := hexVal(src[off+k])
		if !ok {
			return 0, 0, pstring.ErrInvalidArg
		}
		v = v*16 + int(hv)
	}
	return v, off + digits, nil
}
