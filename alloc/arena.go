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

package alloc

import "sync"

// Arena is a bump allocator that hands out slices from growable
// chunks and frees everything at once via FreeAll, rather than per
// allocation. Individual Call(ptr, n, 0, _) frees are accepted but
// ignored, matching the "distinguished call with ptr == self" bulk
// free described in §4.1: per-object free is a no-op, bulk release
// happens through FreeAll.
type Arena struct {
	mu       sync.Mutex
	chunkLen int
	chunks   [][]byte
	off      int
}

// NewArena creates an arena that grows in chunkLen-byte increments.
func NewArena(chunkLen int) *Arena {
	if chunkLen <= 0 {
		chunkLen = 1 << 16
	}
	return &Arena{chunkLen: chunkLen}
}

func (a *Arena) Call(ptr []byte, oldSize, newSize int, flags Flags) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch {
	case ptr == nil && newSize == 0:
		return nil, nil
	case newSize == 0:
		// per-allocation free is a no-op for an arena
		return nil, nil
	}

	buf := a.bump(newSize)
	if ptr != nil {
		n := copy(buf, ptr[:oldSize])
		if flags.Zero() {
			for i := n; i < newSize; i++ {
				buf[i] = 0
			}
		}
	} else if flags.Zero() {
		for i := range buf {
			buf[i] = 0
		}
	}
	return buf, nil
}

func (a *Arena) bump(n int) []byte {
	if len(a.chunks) == 0 || a.off+n > len(a.chunks[len(a.chunks)-1]) {
		size := a.chunkLen
		if n > size {
			size = n
		}
		a.chunks = append(a.chunks, make([]byte, size))
		a.off = 0
	}
	cur := a.chunks[len(a.chunks)-1]
	buf := cur[a.off : a.off+n : a.off+n]
	a.off += n
	return buf
}

// FreeAll releases every chunk the arena has allocated.
func (a *Arena) FreeAll() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.chunks = nil
	a.off = 0
}
