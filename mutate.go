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

// setBytes replaces s's live content with b, reallocating first if
// necessary. Slice values reject growth past their fixed capacity,
// per §3's "resize fails with invalid argument" rule.
func (s *String) setBytes(b []byte) error {
	if len(b) > s.cap {
		if s.kind == KindSlice {
			return ErrInvalidArg
		}
		if err := s.reallocTo(roundCap(len(b))); err != nil {
			return err
		}
	}
	copy(s.storage(), b)
	s.setLength(len(b))
	return nil
}

// WriteAt overwrites s starting at byte offset off with p, growing s's
// capacity and length as needed (uninitialized bytes in the gap
// before off, if any, are left as-is). Used by stream.Stream
// implementations that seek past the end of a string-backed buffer
// before writing, per §4.5's "extends the string with uninitialized
// capacity" rule.
func (s *String) WriteAt(off int, p []byte) (int, error) {
	if off < 0 {
		return 0, ErrInvalidArg
	}
	end := off + len(p)
	if end > s.cap {
		if err := s.Reserve(end - s.length); err != nil {
			return 0, err
		}
	}
	copy(s.storage()[off:end], p)
	if end > s.length {
		s.setLength(end)
	}
	return len(p), nil
}

// Cat appends other's bytes to s.
func (s *String) Cat(other *String) error {
	return s.cats(other.Bytes())
}

// Cats appends the bytes of a Go string to s.
func (s *String) Cats(other string) error {
	return s.cats([]byte(other))
}

// Catc appends a single byte to s.
func (s *String) Catc(c byte) error {
	return s.cats([]byte{c})
}

func (s *String) cats(b []byte) error {
	if err := s.Reserve(len(b)); err != nil {
		return err
	}
	copy(s.storage()[s.length:], b)
	s.setLength(s.length + len(b))
	return nil
}

// RCat prepends other's bytes to s.
func (s *String) RCat(other *String) error {
	return s.rcats(other.Bytes())
}

// RCats prepends the bytes of a Go string to s.
func (s *String) RCats(other string) error {
	return s.rcats([]byte(other))
}

// RCatc prepends a single byte to s.
func (s *String) RCatc(c byte) error {
	return s.rcats([]byte{c})
}

func (s *String) rcats(b []byte) error {
	if err := s.Reserve(len(b)); err != nil {
		return err
	}
	store := s.storage()
	copy(store[len(b):len(b)+s.length], store[:s.length])
	copy(store, b)
	s.setLength(s.length + len(b))
	return nil
}

// Insert splices other's bytes into s at index i.
func (s *String) Insert(i int, other *String) error {
	return s.insert(i, other.Bytes())
}

// InsertC splices a single byte into s at index i.
func (s *String) InsertC(i int, c byte) error {
	return s.insert(i, []byte{c})
}

func (s *String) insert(i int, b []byte) error {
	if i < 0 || i > s.length {
		return ErrOutOfRange
	}
	if err := s.Reserve(len(b)); err != nil {
		return err
	}
	store := s.storage()
	copy(store[i+len(b):s.length+len(b)], store[i:s.length])
	copy(store[i:], b)
	s.setLength(s.length + len(b))
	return nil
}

// Remove excises the byte range [from, to) and shifts the tail left.
func (s *String) Remove(from, to int) error {
	from, to = clamp(from, to, s.length)
	if from == to {
		return nil
	}
	store := s.storage()
	copy(store[from:], store[to:s.length])
	s.setLength(s.length - (to - from))
	return nil
}

// Cut excises [from, to). For slice values this repositions the view
// instead of shifting bytes: cutting a prefix or suffix just narrows
// the window; an interior cut on a slice still has to shift the
// remaining window bytes (a slice owns no spare storage to avoid
// that), but never reallocates.
func (s *String) Cut(from, to int) error {
	from, to = clamp(from, to, s.length)
	if from == to {
		return nil
	}
	if s.kind != KindSlice {
		return s.Remove(from, to)
	}
	switch {
	case from == 0:
		s.buf = s.buf[to:s.cap]
		s.length -= to
		s.cap -= to
	case to == s.length:
		s.length = from
		s.cap = from
		s.buf = s.buf[:s.cap]
	default:
		copy(s.buf[from:], s.buf[to:s.length])
		s.length -= to - from
		s.cap = s.length
		s.buf = s.buf[:s.cap]
	}
	return nil
}

// Repl replaces up to max occurrences of target with repl in s (0
// means replace all), in a single forward pass so a replacement is
// never re-matched. Replacing an empty target is rejected, since its
// semantics are undefined (§8's algebraic laws; the C source this is
// derived from loops forever on it).
func (s *String) Repl(target, repl *String, max int) error {
	return s.replBytes(target.Bytes(), repl.Bytes(), max)
}

// Repls is Repl with Go-string target/replacement arguments.
func (s *String) Repls(target, repl string, max int) error {
	return s.replBytes([]byte(target), []byte(repl), max)
}

// Replc replaces up to max occurrences of the single byte target with
// repl.
func (s *String) Replc(target, repl byte, max int) error {
	return s.replBytes([]byte{target}, []byte{repl}, max)
}

func (s *String) replBytes(target, repl []byte, max int) error {
	if len(target) == 0 {
		return ErrInvalidArg
	}
	src := s.Bytes()
	out := make([]byte, 0, len(src))
	count := 0
	i := 0
	for i < len(src) {
		if (max == 0 || count < max) && i+len(target) <= len(src) && compareBytes(src[i:i+len(target)], target) == 0 {
			out = append(out, repl...)
			i += len(target)
			count++
			continue
		}
		out = append(out, src[i])
		i++
	}
	return s.setBytes(out)
}
