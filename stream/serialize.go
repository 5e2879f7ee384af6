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

package stream

import (
	"strconv"

	"github.com/SnellerInc/pstring"
)

// serializeText implements the default text-mode Serialize shared by
// FileStream and StringStream: signed/unsigned integers and floats go
// through strconv, and strings are written as raw bytes, per §4.5.
// val holds the value itself rather than a pointer to it — idiomatic
// Go passes an any by value instead of threading a void*.
func serializeText(w Stream, t TypeID, val any) error {
	switch t {
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64:
		n, err := asInt64(val)
		if err != nil {
			return err
		}
		return writeString(w, strconv.FormatInt(n, 10))
	case TypeUint8, TypeUint16, TypeUint32, TypeUint64:
		n, err := asUint64(val)
		if err != nil {
			return err
		}
		return writeString(w, strconv.FormatUint(n, 10))
	case TypeFloat32:
		f, ok := val.(float32)
		if !ok {
			return pstring.ErrInvalidArg
		}
		return writeString(w, strconv.FormatFloat(float64(f), 'g', -1, 32))
	case TypeFloat64:
		f, ok := val.(float64)
		if !ok {
			return pstring.ErrInvalidArg
		}
		return writeString(w, strconv.FormatFloat(f, 'g', -1, 64))
	case TypeString:
		s, ok := val.(string)
		if ok {
			return writeString(w, s)
		}
		if ps, ok := val.(*pstring.String); ok {
			_, err := w.Write(ps.Bytes())
			return err
		}
		return pstring.ErrInvalidArg
	default:
		return pstring.ErrInvalidArg
	}
}

func writeString(w Stream, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

func asInt64(val any) (int64, error) {
	switch v := val.(type) {
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	default:
		return 0, pstring.ErrInvalidArg
	}
}

func asUint64(val any) (uint64, error) {
	switch v := val.(type) {
	case uint8:
		return uint64(v), nil
	case uint16:
		return uint64(v), nil
	case uint32:
		return uint64(v), nil
	case uint64:
		return v, nil
	case uint:
		return uint64(v), nil
	default:
		return 0, pstring.ErrInvalidArg
	}
}
