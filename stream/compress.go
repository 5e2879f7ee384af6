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
	"github.com/klauspost/compress/zstd"

	"github.com/SnellerInc/pstring"
)

// CompressedStream wraps another Stream's byte channel with zstd
// framing. It is write-only or read-only depending on which of
// NewCompressWriter/NewCompressReader built it; tell/seek are not
// supported over a compressed byte stream and report
// pstring.ErrNotSupported, matching the teacher's zion block-codec
// wrappers which also don't support random access mid-frame.
type CompressedStream struct {
	under Stream
	enc   *zstd.Encoder
	dec   *zstd.Decoder
}

// NewCompressWriter wraps under for writing: every Write is fed
// through a zstd encoder whose compressed output is written to under.
func NewCompressWriter(under Stream) (*CompressedStream, error) {
	enc, err := zstd.NewWriter(streamWriter{under})
	if err != nil {
		return nil, err
	}
	return &CompressedStream{under: under, enc: enc}, nil
}

// NewCompressReader wraps under for reading: every Read decodes the
// next span of under's zstd-framed bytes.
func NewCompressReader(under Stream) (*CompressedStream, error) {
	dec, err := zstd.NewReader(streamReader{under})
	if err != nil {
		return nil, err
	}
	return &CompressedStream{under: under, dec: dec}, nil
}

// streamWriter/streamReader adapt a Stream to io.Writer/io.Reader so
// the zstd package (which speaks stdlib io) can drive it directly.
type streamWriter struct{ s Stream }

func (w streamWriter) Write(p []byte) (int, error) { return w.s.Write(p) }

type streamReader struct{ s Stream }

func (r streamReader) Read(p []byte) (int, error) { return r.s.Read(p) }

func (cs *CompressedStream) Read(p []byte) (int, error) {
	if cs.dec == nil {
		return 0, pstring.ErrNotSupported
	}
	return cs.dec.Read(p)
}

func (cs *CompressedStream) Write(p []byte) (int, error) {
	if cs.enc == nil {
		return 0, pstring.ErrNotSupported
	}
	return cs.enc.Write(p)
}

func (cs *CompressedStream) Tell() (int64, error) {
	return 0, pstring.ErrNotSupported
}

func (cs *CompressedStream) Seek(Origin, int64) (int64, error) {
	return 0, pstring.ErrNotSupported
}

func (cs *CompressedStream) Flush() error {
	if cs.enc != nil {
		return cs.enc.Flush()
	}
	return nil
}

func (cs *CompressedStream) Close() error {
	if cs.enc != nil {
		err := cs.enc.Close()
		if cerr := cs.under.Close(); err == nil {
			err = cerr
		}
		return err
	}
	if cs.dec != nil {
		cs.dec.Close()
	}
	return cs.under.Close()
}

func (cs *CompressedStream) Serialize(t TypeID, val any) error {
	return serializeText(cs, t, val)
}

func (cs *CompressedStream) Deserialize(TypeID, any) error {
	return ErrNotImplemented
}
