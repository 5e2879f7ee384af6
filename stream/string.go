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
	"io"

	"github.com/SnellerInc/pstring"
)

// StringStream is a Stream backed by an external *pstring.String and
// a byte cursor. write extends the string on overrun via Reserve;
// seek past the end extends the string with uninitialized capacity,
// per §4.5.
type StringStream struct {
	s      *pstring.String
	cursor int64
}

// NewStringStream wraps s, which the caller continues to own; Close
// is a no-op and never frees s.
func NewStringStream(s *pstring.String) *StringStream {
	return &StringStream{s: s}
}

// String returns the wrapped value.
func (ss *StringStream) String() *pstring.String { return ss.s }

func (ss *StringStream) Read(p []byte) (int, error) {
	b := ss.s.Bytes()
	if ss.cursor >= int64(len(b)) {
		return 0, io.EOF
	}
	n := copy(p, b[ss.cursor:])
	ss.cursor += int64(n)
	return n, nil
}

func (ss *StringStream) Write(p []byte) (int, error) {
	n, err := ss.s.WriteAt(int(ss.cursor), p)
	ss.cursor += int64(n)
	return n, err
}

func (ss *StringStream) Tell() (int64, error) {
	return ss.cursor, nil
}

func (ss *StringStream) Seek(origin Origin, off int64) (int64, error) {
	var base int64
	switch origin {
	case SET:
		base = 0
	case CUR:
		base = ss.cursor
	case END:
		base = int64(ss.s.Len())
	default:
		return 0, pstring.ErrInvalidArg
	}
	pos := base + off
	if pos < 0 {
		return 0, pstring.ErrInvalidArg
	}
	// A seek beyond the current length only extends the string's
	// capacity, not its length: length moves forward only when a
	// subsequent write actually lands past the old length.
	if pos > int64(ss.s.Len()) {
		if err := ss.s.Reserve(int(pos) - ss.s.Len()); err != nil {
			return 0, err
		}
	}
	ss.cursor = pos
	return pos, nil
}

func (ss *StringStream) Flush() error { return nil }
func (ss *StringStream) Close() error { return nil }

func (ss *StringStream) Serialize(t TypeID, val any) error {
	return serializeText(ss, t, val)
}

func (ss *StringStream) Deserialize(TypeID, any) error {
	return ErrNotImplemented
}
