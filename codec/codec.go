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

// Package codec implements the byte encoder/decoder pairs described
// in §4.7: hex, url, base64/base64url, cstring, utf8, json, xml/html.
// Every pair is a pure transform appending onto a destination
// pstring.String's existing content, grounded on ion/write.go's
// grow-then-append idiom.
package codec

import "github.com/SnellerInc/pstring"

func appendBytes(dst *pstring.String, b []byte) error {
	_, err := dst.WriteAt(dst.Len(), b)
	return err
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

const hexDigitsUpper = "0123456789ABCDEF"
