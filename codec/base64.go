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

// StdAlphabet is the standard base64 table (RFC 4648 §4).
const StdAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// URLAlphabet is the URL- and filename-safe base64 table (RFC 4648 §5).
const URLAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

const base64Pad = '='

// EncodeBase64 appends the standard-alphabet, padded base64 encoding
// of src onto dst.
func EncodeBase64(dst *pstring.String, src []byte) error {
	return EncodeBase64Table(dst, src, StdAlphabet)
}

// EncodeBase64URL appends the URL-safe-alphabet, padded base64
// encoding of src onto dst.
func EncodeBase64URL(dst *pstring.String, src []byte) error {
	return EncodeBase64Table(dst, src, URLAlphabet)
}

// EncodeBase64Table appends the base64 encoding of src under a
// caller-supplied 64-character alphabet onto dst.
func EncodeBase64Table(dst *pstring.String, src []byte, table string) error {
	if len(table) != 64 {
		return pstring.ErrInvalidArg
	}
	out := make([]byte, 0, (len(src)+2)/3*4)
	i := 0
	for ; i+3 <= len(src); i += 3 {
		n := uint32(src[i])<<16 | uint32(src[i+1])<<8 | uint32(src[i+2])
		out = append(out, table[n>>18&0x3f], table[n>>12&0x3f], table[n>>6&0x3f], table[n&0x3f])
	}
	switch len(src) - i {
	case 1:
		n := uint32(src[i]) << 16
		out = append(out, table[n>>18&0x3f], table[n>>12&0x3f], base64Pad, base64Pad)
	case 2:
		n := uint32(src[i])<<16 | uint32(src[i+1])<<8
		out = append(out, table[n>>18&0x3f], table[n>>12&0x3f], table[n>>6&0x3f], base64Pad)
	}
	return appendBytes(dst, out)
}

// DecodeBase64 appends the standard-alphabet base64 decoding of src
// onto dst.
func DecodeBase64(dst *pstring.String, src []byte) error {
	return DecodeBase64Table(dst, src, StdAlphabet)
}

// DecodeBase64URL appends the URL-safe-alphabet base64 decoding of
// src onto dst.
func DecodeBase64URL(dst *pstring.String, src []byte) error {
	return DecodeBase64Table(dst, src, URLAlphabet)
}

// DecodeBase64Table appends the base64 decoding of src under table
// onto dst. len(src) must be a multiple of 4 (including '=' padding);
// any character outside the table (other than trailing padding) is
// an error.
func DecodeBase64Table(dst *pstring.String, src []byte, table string) error {
	if len(table) != 64 || len(src)%4 != 0 {
		return pstring.ErrInvalidArg
	}
	var rev [256]int8
	for i := range rev {
		rev[i] = -1
	}
	for i := 0; i < 64; i++ {
		rev[table[i]] = int8(i)
	}
	out := make([]byte, 0, len(src)/4*3)
	for i := 0; i < len(src); i += 4 {
		quad := src[i : i+4]
		pad := 0
		if quad[3] == base64Pad {
			pad++
		}
		if quad[2] == base64Pad {
			pad++
		}
		vals := [4]int8{}
		for k := 0; k < 4; k++ {
			if quad[k] == base64Pad {
				vals[k] = 0
				continue
			}
			v := rev[quad[k]]
			if v < 0 {
				return pstring.ErrInvalidArg
			}
			vals[k] = v
		}
		n := uint32(vals[0])<<18 | uint32(vals[1])<<12 | uint32(vals[2])<<6 | uint32(vals[3])
		out = append(out, byte(n>>16))
		if pad < 2 {
			out = append(out, byte(n>>8))
		}
		if pad < 1 {
			out = append(out, byte(n))
		}
	}
	return appendBytes(dst, out)
}
