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
	"os"
)

// FileStream wraps an *os.File as a Stream. tell/seek operate on the
// underlying file's byte offset.
type FileStream struct {
	f *os.File
}

// OpenFile opens name with the given flag/perm and wraps it in a
// FileStream, mirroring os.OpenFile's contract directly.
func OpenFile(name string, flag int, perm os.FileMode) (*FileStream, error) {
	f, err := os.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return NewFileStream(f), nil
}

// NewFileStream wraps an already-open file.
func NewFileStream(f *os.File) *FileStream {
	return &FileStream{f: f}
}

func (fs *FileStream) Read(p []byte) (int, error)  { return fs.f.Read(p) }
func (fs *FileStream) Write(p []byte) (int, error) { return fs.f.Write(p) }

func (fs *FileStream) Tell() (int64, error) {
	return fs.f.Seek(0, io.SeekCurrent)
}

func (fs *FileStream) Seek(origin Origin, off int64) (int64, error) {
	return fs.f.Seek(off, originToWhence(origin))
}

func (fs *FileStream) Flush() error {
	return fs.f.Sync()
}

func (fs *FileStream) Close() error {
	return fs.f.Close()
}

// Serialize writes a value of type t in the default text-mode
// encoding, per §4.5.
func (fs *FileStream) Serialize(t TypeID, ptr any) error {
	return serializeText(fs, t, ptr)
}

// Deserialize is not implemented for file streams, per §4.5.
func (fs *FileStream) Deserialize(TypeID, any) error {
	return ErrNotImplemented
}

func originToWhence(o Origin) int {
	switch o {
	case CUR:
		return io.SeekCurrent
	case END:
		return io.SeekEnd
	default:
		return io.SeekStart
	}
}
