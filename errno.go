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

package pstring

// Errno is the closed error taxonomy every fallible operation in this
// module returns. Zero is success; all error values are negative, so
// a positive return from a fallible call never aliases an error code.
type Errno int32

// The closed set of error codes. Values mirror (negated) POSIX errno
// magnitudes for ease of diagnosis; callers must only depend on the
// symbolic names, never the numeric value.
const (
	OK              Errno = 0
	ErrNotFound     Errno = -2
	ErrInterrupted  Errno = -4
	ErrIOFailure    Errno = -5
	ErrOutOfMemory  Errno = -12
	ErrAlreadyExist Errno = -17
	ErrInvalidArg   Errno = -22
	ErrDomain       Errno = -33
	ErrOutOfRange   Errno = -34
	ErrNotSupported Errno = -38
	ErrNoData       Errno = -61
)

var errnoText = map[Errno]string{
	OK:              "ok",
	ErrNotFound:     "not found",
	ErrInterrupted:  "interrupted",
	ErrIOFailure:    "i/o failure",
	ErrOutOfMemory:  "out of memory",
	ErrAlreadyExist: "already exists",
	ErrInvalidArg:   "invalid argument",
	ErrDomain:       "domain error",
	ErrOutOfRange:   "out of range",
	ErrNotSupported: "not supported",
	ErrNoData:       "no data",
}

// Error implements the error interface so an Errno can be returned
// and compared via errors.Is without an extra wrapping allocation.
func (e Errno) Error() string {
	if s, ok := errnoText[e]; ok {
		return s
	}
	return "pstring: unknown error"
}

// Is lets errors.Is(err, pstring.ErrNotFound) work across wrapped
// errors produced by fmt.Errorf("...: %w", ErrNotFound).
func (e Errno) Is(target error) bool {
	t, ok := target.(Errno)
	return ok && t == e
}
