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

// Package stream defines the eight-entry virtual table that every
// byte sink/source in this module writes through: file streams,
// string-backed streams, and compressed wrappers of either.
package stream

import "github.com/SnellerInc/pstring"

// Origin selects the reference point for Seek.
type Origin int

const (
	SET Origin = iota
	CUR
	END
)

// TypeID names a runtime type for Serialize/Deserialize, mirroring
// the closed set a text-mode formatter must special-case.
type TypeID int

const (
	TypeInt8 TypeID = iota
	TypeInt16
	TypeInt32
	TypeInt64
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint64
	TypeFloat32
	TypeFloat64
	TypeString
)

// Stream is the eight-entry vtable described in §4.5: read, write,
// tell, seek, flush, close, serialize, deserialize. Every concrete
// stream in this package implements all eight; Init validates that a
// user-supplied Stream is non-nil in every entry exactly once so hot
// paths never re-check.
type Stream interface {
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
	Tell() (int64, error)
	Seek(origin Origin, off int64) (int64, error)
	Flush() error
	Close() error
	Serialize(t TypeID, ptr any) error
	Deserialize(t TypeID, ptr any) error
}

// Init validates that s is safe to use, returning
// pstring.ErrInvalidArg if s is nil. Concrete streams built by this
// package's constructors are always already valid; Init exists for
// callers plugging in their own Stream implementation, matching
// §4.5's "init validates the vtable once" contract.
func Init(s Stream) error {
	if s == nil {
		return pstring.ErrInvalidArg
	}
	return nil
}

// ErrNotImplemented is returned by Deserialize on streams (file,
// string) that only support the default text-mode Serialize.
var ErrNotImplemented = pstring.ErrNotSupported
