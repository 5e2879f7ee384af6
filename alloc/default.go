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

import (
	"sync"
)

// pooled is the default process-wide allocator: a size-classed
// sync.Pool in front of the Go heap, mirroring the teacher's own use
// of sync.Mutex-guarded bookkeeping around a fixed memory region in
// vm/malloc.go, adapted here to a portable (non-mmap) pool since this
// module does not reserve a dedicated VMM region.
type pooled struct {
	mu    sync.Mutex
	pools map[int]*sync.Pool
}

// Default is the process-wide allocator singleton. Per §5, it is
// expected to be safe for concurrent use by a multithreaded host even
// though individual String/Dictionary/Stream/Program values are not.
var Default Allocator = newPooled()

func newPooled() *pooled {
	return &pooled{pools: make(map[int]*sync.Pool)}
}

func sizeClass(n int) int {
	c := 16
	for c < n {
		c <<= 1
	}
	return c
}

func (p *pooled) poolFor(class int) *sync.Pool {
	p.mu.Lock()
	defer p.mu.Unlock()
	pl, ok := p.pools[class]
	if !ok {
		cls := class
		pl = &sync.Pool{New: func() any { return make([]byte, cls) }}
		p.pools[class] = pl
	}
	return pl
}

func (p *pooled) Call(ptr []byte, oldSize, newSize int, flags Flags) ([]byte, error) {
	switch {
	case ptr == nil && newSize == 0:
		return nil, nil
	case ptr == nil && newSize > 0:
		buf := p.get(newSize)
		if flags.Zero() {
			for i := range buf[:newSize] {
				buf[i] = 0
			}
		}
		return buf[:newSize], nil
	case ptr != nil && newSize == 0:
		p.put(ptr[:oldSize])
		return nil, nil
	default: // ptr != nil, newSize > 0
		nb := p.get(newSize)
		n := copy(nb, ptr[:oldSize])
		if flags.Zero() && newSize > oldSize {
			for i := n; i < newSize; i++ {
				nb[i] = 0
			}
		}
		p.put(ptr[:oldSize])
		return nb[:newSize], nil
	}
}

func (p *pooled) get(n int) []byte {
	class := sizeClass(n)
	buf := p.poolFor(class).Get().([]byte)
	return buf[:cap(buf)]
}

func (p *pooled) put(buf []byte) {
	if cap(buf) == 0 {
		return
	}
	class := sizeClass(cap(buf))
	p.poolFor(class).Put(buf[:0:class])
}

// FreeAll is a no-op for the pooled allocator: buffers return to the
// pool individually via Free, there is no bulk bookkeeping to tear
// down.
func (p *pooled) FreeAll() {}
