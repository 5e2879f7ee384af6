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

// EncodeJSON appends the JSON string-literal escaping of src (without
// the surrounding quotes) onto dst.
func EncodeJSON(dst *pstring.String, src []byte) error {
	out := make([]byte, 0, len(src))
	for i := 0; i < len(src); {
		c := src[i]
		switch c {
		case '"':
			out = append(out, '\\', '"')
			i++
		case '\\':
			out = append(out, '\\', '\\')
			i++
		case '\n':
			out = append(out, '\\', 'n')
			i++
		case '\r':
			out = append(out, '\\', 'r')
			i++
		case '\t':
			out = append(out, '\\', 't')
			i++
		default:
			if c < 0x20 {
				out = append(out, '\\', 'u', '0', '0', hexDigitsUpper[c>>4], hexDigitsUpper[c&0xf])
				i++
				continue
			}
			out = append(out, c)
			i++
		}
	}
	return appendBytes(dst, out)
}

// DecodeJSON appends the unescaped form of a JSON string-literal body
// src (without surrounding quotes) onto dst, including \uXXXX
// surrogate-pair reassembly.
func DecodeJSON(dst *pstring.String, src []byte) error {
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
		switch src[i+1] {
		case '"':
			out = append(out, '"')
			i += 2
		case '\\':
			out = append(out, '\\')
			i += 2
		case '/':
			out = append(out, '/')
			i += 2
		case 'b':
			out = append(out, '\b')
			i += 2
		case 'f':
			out = append(out, '\f')
			i += 2
		case 'n':
			out = append(out, '\n')
			i += 2
		case 'r':
			out = append(out, '\r')
			i += 2
		case 't':
			out = append(out, '\t')
			i += 2
		case 'u':
			cp, next, err := decodeHexCodepoint(src, i+2, 4)
			if err != nil {
				return err
			}
			r := rune(cp)
			if cp >= 0xd800 && cp <= 0xdbff && next+6 <= len(src) && src[next] == '\\' && src[next+1] == 'u' {
				lo, next2, err := decodeHexCodepoint(src, next+2, 4)
				if err == nil && lo >= 0xdc00 && lo <= 0xdfff {
					r = ((rune(cp) - 0xd800) << 10) + (rune(lo) - 0xdc00) + 0x10000
					next = next2
				}
			}
			if r >= 0xd800 && r <= 0xdfff {
				return pstring.ErrInvalidArg
			}
			var buf [utf8.UTFMax]byte
			n := utf8.EncodeRune(buf[:], r)
			out = append(out, buf[:n]...)
			i = next
		default:
			return pstring.ErrInvalidArg
		}
	}
	return appendBytes(dst, out)
}

var xmlEntities = map[string]byte{
	"amp": '&', "lt": '<', "gt": '>', "quot": '"', "apos": '\'',
}

// EncodeXML appends src onto dst with &<>"' replaced by their named
// entities.
func EncodeXML(dst *pstring.String, src []byte) error {
	out := make([]byte, 0, len(src))
	for _, c := range src {
		switch c {
		case '&':
			out = append(out, []byte("&amp;")...)
		case '<':
			out = append(out, []byte("&lt;")...)
		case '>':
			out = append(out, []byte("&gt;")...)
		case '"':
			out = append(out, []byte("&quot;")...)
		case '\'':
			out = append(out, []byte("&apos;")...)
		default:
			out = append(out, c)
		}
	}
	return appendBytes(dst, out)
}

// EncodeHTML is EncodeXML plus the &nbsp; entity for 0xA0 bytes
// (treated as a Latin-1 non-breaking space, the common HTML usage).
func EncodeHTML(dst *pstring.String, src []byte) error {
	out := make([]byte, 0, len(src))
	for _, c := range src {
		switch c {
		case '&':
			out = append(out, []byte("&amp;")...)
		case '<':
			out = append(out, []byte("&lt;")...)
		case '>':
			out = append(out, []byte("&gt;")...)
		case '"':
			out = append(out, []byte("&quot;")...)
		case '\'':
			out = append(out, []byte("&apos;")...)
		case 0xA0:
			out = append(out, []byte("&nbsp;")...)
		default:
			out = append(out, c)
		}
	}
	return appendBytes(dst, out)
}

// DecodeXML appends the entity-decoded form of src onto dst. Decoding
// the named entity set, decimal &#NN; and hex &#xHH; numeric
// references; text with no '&' passes through unchanged (idempotent
// for non-entity text, per §4.7).
func DecodeXML(dst *pstring.String, src []byte) error {
	out := make([]byte, 0, len(src))
	i := 0
	for i < len(src) {
		if src[i] != '&' {
			out = append(out, src[i])
			i++
			continue
		}
		end := indexByteFrom(src, i, ';')
		if end < 0 {
			out = append(out, src[i])
			i++
			continue
		}
		body := string(src[i+1 : end])
		if r, ok, err := decodeNumericEntity(body); ok {
			if err != nil {
				return err
			}
			var buf [utf8.UTFMax]byte
			n := utf8.EncodeRune(buf[:], r)
			out = append(out, buf[:n]...)
			i = end + 1
			continue
		}
		if b, ok := xmlEntities[body]; ok {
			out = append(out, b)
			i = end + 1
			continue
		}
		if body == "nbsp" {
			out = append(out, 0xA0)
			i = end + 1
			continue
		}
		out = append(out, src[i])
		i++
	}
	return appendBytes(dst, out)
}

// DecodeHTML is an alias of DecodeXML: both recognize the same named
// and numeric entity forms in this module.
func DecodeHTML(dst *pstring.String, src []byte) error {
	return DecodeXML(dst, src)
}

func indexByteFrom(b []byte, from int, c byte) int {
	for i := from; i < len(b); i++ {
		if b[i] == c {
			return i
		}
	}
	return -1
}

func decodeNumericEntity(body string) (rune, bool, error) {
	if len(body) < 2 || body[0] != '#' {
		return 0, false, nil
	}
	digits := body[1:]
	base := 10
	if len(digits) > 0 && (digits[0] == 'x' || digits[0] == 'X') {
		base = 16
		digits = digits[1:]
	}
	if digits == "" {
		return 0, true, pstring.ErrInvalidArg
	}
	v := 0
	for _, c := range []byte(digits) {
		var d int
		switch {
		case c >= '0' && c <= '9':
			d = int(c - '0')
		case base == 16 && c >= 'a' && c <= 'f':
			d = int(c-'a') + 10
		case base == 16 && c >= 'A' && c <= 'F':
			d = int(c-'A') + 10
		default:
			return 0, true, pstring.ErrInvalidArg
		}
		v = v*base + d
	}
	if v > 0x10FFFF || (v >= 0xd800 && v <= 0xdfff) {
		return 0, true, pstring.ErrInvalidArg
	}
	return rune(v), true, nil
}
