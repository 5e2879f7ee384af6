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

// Tokenizer walks successive maximal runs of bytes not in a
// delimiter set, holding the cursor that §4.3's tok(dst, src, set)
// keeps inside dst; here the cursor is its own small value instead of
// being smuggled into the destination string.
type Tokenizer struct {
	src *String
	pos int
}

// NewTokenizer starts tokenizing src from its first byte.
func NewTokenizer(src *String) *Tokenizer {
	return &Tokenizer{src: src}
}

// Next returns the next maximal run of bytes not in set, skipping any
// leading run of set bytes first. The second return is false once no
// further token remains.
func (t *Tokenizer) Next(set []byte) (*String, bool) {
	buf := t.src.Bytes()
	for t.pos < len(buf) && inByteSet(buf[t.pos], set) {
		t.pos++
	}
	if t.pos >= len(buf) {
		return nil, false
	}
	start := t.pos
	for t.pos < len(buf) && !inByteSet(buf[t.pos], set) {
		t.pos++
	}
	return t.src.Slice(start, t.pos), true
}

// SplitTokenizer walks successive substrings delimited by a literal
// separator substring (as opposed to Tokenizer's byte-class set).
type SplitTokenizer struct {
	src   *String
	sep   []byte
	pos   int
	done  bool
	first bool
}

// NewSplitTokenizer starts splitting src on sep.
func NewSplitTokenizer(src *String, sep []byte) *SplitTokenizer {
	return &SplitTokenizer{src: src, sep: sep, first: true}
}

// Next returns the next token between occurrences of sep. When sep
// sits immediately after the token just returned, it is skipped
// before searching for the next occurrence, so two adjacent
// separators do not yield an empty token between the skip and the
// search (they still may yield one via a direct sep match).
func (t *SplitTokenizer) Next() (*String, bool) {
	if t.done {
		return nil, false
	}
	buf := t.src.Bytes()
	if !t.first && len(t.sep) > 0 {
		if rel := indexIn(buf[t.pos:], t.sep); rel == 0 {
			t.pos += len(t.sep)
		}
	}
	t.first = false

	idx := notFound
	if len(t.sep) > 0 {
		idx = indexIn(buf[t.pos:], t.sep)
	}
	if idx == notFound {
		tok := t.src.Slice(t.pos, len(buf))
		t.done = true
		return tok, true
	}
	tok := t.src.Slice(t.pos, t.pos+idx)
	t.pos += idx
	return tok, true
}
