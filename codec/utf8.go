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

// EncodeUTF8 appends the UTF-8 encoding of a codepoint sequence onto
// dst. An invalid codepoint (surrogate, negative, or above 0x10FFFF)
// is an error and leaves dst unchanged: the encoding is built aside
// and appended only once every codepoint has been accepted.
func EncodeUTF8(dst *pstring.String, codepoints []rune) error {
	out := make([]byte, 0, len(codepoints)*2)
	var buf [utf8.UTFMax]byte
	for _, r := range codepoints {
		if r > 0x10FFFF || (r >= 0xd800 && r <= 0xdfff) || r < 0 {
			return pstring.ErrInvalidArg
		}
		n := utf8.EncodeRune(buf[:], r)
		out = append(out, buf[:n]...)
	}
	return appendBytes(dst, out)
}

// overlongAllowed is set by the pstring_utf8_overlong build tag
// (overlong_accept.go; overlong_default.go holds the untagged value).
// DecodeUTF8 does not consult it: in every build, an overlong encoding
// is ill-formed and is replaced by U+FFFD.
var _ = overlongAllowed

// DecodeUTF8 appends a sanitized copy of src onto dst: well-formed
// runs are copied through unchanged; any ill-formed byte sequence is
// replaced by the UTF-8 encoding of U+FFFD and decoding resynchronizes
// at the next lead byte, per §4.7.
func DecodeUTF8(dst *pstring.String, src []byte) error {
	out := make([]byte, 0, len(src))
	i := 0
	for i < len(src) {
		r, size := utf8.DecodeRune(src[i:])
		if r == utf8.RuneError && size <= 1 {
			out = append(out, utf8ReplacementBytes...)
			i++
			for i < len(src) && isUTF8Continuation(src[i]) {
				i++
			}
			continue
		}
		out = append(out, src[i:i+size]...)
		i += size
	}
	return appendBytes(dst, out)
}

var utf8ReplacementBytes = []byte{0xef, 0xbf, 0xbd} // U+FFFD

func isUTF8Continuation(b byte) bool {
	return b&0xc0 == 0x80
}

// DecodeUTF8Runes decodes src into its sequence of codepoints, per
// §4.7's "decode produces codepoints" contract — distinct from
// DecodeUTF8, which produces a sanitized *byte* copy instead. An
// ill-formed byte sequence anywhere in src is reported as
// pstring.ErrInvalidArg rather than silently replaced, so that
// DecodeUTF8Runes(EncodeUTF8(c)) == c holds exactly for every
// codepoint EncodeUTF8 accepts.
func DecodeUTF8Runes(src []byte) ([]rune, error) {
	out := make([]rune, 0, len(src))
	i := 0
	for i < len(src) {
		r, size := utf8.DecodeRune(src[i:])
		if r == utf8.RuneError && size <= 1 {
			return nil, pstring.ErrInvalidArg
		}
		out = append(out, r)
		i += size
	}
	return out, nil
}
