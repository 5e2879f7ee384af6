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

// Package dict implements an open-addressed dictionary keyed by
// pstring.String, with SIMD-probed buckets banded by a hash
// fingerprint and tombstone-based deletion.
package dict

import (
	"log"

	"github.com/google/uuid"

	"github.com/SnellerInc/pstring"
	"github.com/SnellerInc/pstring/alloc"
	"github.com/SnellerInc/pstring/internal/bitset"
	"github.com/SnellerInc/pstring/scan"
)

// Logger is where Dictionary reports diagnostic events (resize,
// rehash). It defaults to the standard logger; embedders may
// redirect or silence it by assigning a different *log.Logger, the
// same package-level-knob idiom the teacher uses for its own
// build-tag-gated diagnostics (vm/vmmemleaks.go).
var Logger = log.Default()

// B is the number of slots per bucket, sized for SIMD-width
// fingerprint matching.
const B = 16
const bShift = 4 // log2(B)

const (
	metaEmpty     byte = 0
	metaTombstone byte = 1
)

const loadFactorNum = 7
const loadFactorDen = 10

type slot struct {
	key *pstring.String
	val any
}

type bucket struct {
	meta [B]byte
	slot [B]slot
}

// Dictionary is the open-addressed string-keyed map described in
// §4.4.
type Dictionary struct {
	buckets []bucket
	count   int
	a       alloc.Allocator
	hashFn  func(*pstring.String) uint64
	id      uuid.UUID
}

// Option configures a new Dictionary.
type Option func(*Dictionary)

// WithAllocator sets the allocator used for the dictionary's own
// bookkeeping (bucket array).
func WithAllocator(a alloc.Allocator) Option {
	return func(d *Dictionary) { d.a = a }
}

// WithHash overrides the hash function used to place keys; defaults
// to (*pstring.String).Hash.
func WithHash(fn func(*pstring.String) uint64) Option {
	return func(d *Dictionary) { d.hashFn = fn }
}

// WithID tags the dictionary with a uuid for trace/debug
// correlation; purely a diagnostic aid with no effect on behavior.
func WithID(id uuid.UUID) Option {
	return func(d *Dictionary) { d.id = id }
}

// New creates an empty dictionary with capacity B.
func New(opts ...Option) *Dictionary {
	d := &Dictionary{
		a:      alloc.Default,
		hashFn: (*pstring.String).Hash,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.buckets = make([]bucket, 1)
	return d
}

// ID returns the dictionary's diagnostic uuid (the zero uuid if
// WithID was never used).
func (d *Dictionary) ID() uuid.UUID { return d.id }

// Count returns the number of live entries.
func (d *Dictionary) Count() int { return d.count }

// Capacity returns the current slot count (a power of two, >= B).
func (d *Dictionary) Capacity() int { return len(d.buckets) * B }

func fingerprint(h uint64) byte {
	fp := byte(h)
	if fp < 2 {
		fp = 2
	}
	return fp
}

func (d *Dictionary) startBucket(h uint64) int {
	capMask := uint64(d.Capacity() - 1)
	return int((h & capMask) >> bShift)
}

// probeResult describes where a probe landed.
type probeResult struct {
	found     bool
	bi, si    int // bucket/slot index of the match or insertion point
	hasInsert bool
}

func (d *Dictionary) probe(key *pstring.String, h uint64) probeResult {
	fp := fingerprint(h)
	nb := len(d.buckets)
	bi := d.startBucket(h)
	var insertBi, insertSi int
	hasInsert := false

	for range d.buckets {
		bk := &d.buckets[bi]
		fpMask := scan.MatchChr(bk.meta[:], fp)
		for fpMask != 0 {
			si := bitset.FirstSet(fpMask)
			fpMask &^= 1 << uint(si)
			if pstring.Equal(bk.slot[si].key, key) {
				return probeResult{found: true, bi: bi, si: si}
			}
		}
		if !hasInsert {
			tMask := scan.MatchChr(bk.meta[:], metaTombstone)
			if tMask != 0 {
				insertBi, insertSi = bi, bitset.FirstSet(tMask)
				hasInsert = true
			}
		}
		emptyMask := scan.MatchChr(bk.meta[:], metaEmpty)
		if emptyMask != 0 {
			if !hasInsert {
				insertBi, insertSi = bi, bitset.FirstSet(emptyMask)
				hasInsert = true
			}
			return probeResult{found: false, bi: insertBi, si: insertSi, hasInsert: true}
		}
		bi = (bi + 1) % nb
	}
	// every bucket scanned with no empty slot: capacity invariant
	// (count <= 0.7*capacity) should have prevented this.
	return probeResult{found: false, hasInsert: hasInsert, bi: insertBi, si: insertSi}
}

// Get returns the stored value for key, or (nil, false) if absent.
func (d *Dictionary) Get(key *pstring.String) (any, bool) {
	h := d.hashFn(key)
	r := d.probe(key, h)
	if !r.found {
		return nil, false
	}
	return d.buckets[r.bi].slot[r.si].val, true
}

// Set inserts or overwrites the value stored for key.
func (d *Dictionary) Set(key *pstring.String, value any) error {
	if err := d.Reserve(1); err != nil {
		return err
	}
	h := d.hashFn(key)
	r := d.probe(key, h)
	if r.found {
		d.buckets[r.bi].slot[r.si].val = value
		return nil
	}
	d.place(r.bi, r.si, fingerprint(h), key, value)
	return nil
}

// Insert inserts value at key, failing with pstring.ErrAlreadyExist
// if key is already present.
func (d *Dictionary) Insert(key *pstring.String, value any) error {
	if err := d.Reserve(1); err != nil {
		return err
	}
	h := d.hashFn(key)
	r := d.probe(key, h)
	if r.found {
		return pstring.ErrAlreadyExist
	}
	d.place(r.bi, r.si, fingerprint(h), key, value)
	return nil
}

// FInsert is the unchecked fast path used during rehash: it assumes
// key is absent and skips the full probe-and-compare, only finding an
// empty slot along the probe chain.
func (d *Dictionary) FInsert(key *pstring.String, value any) {
	h := d.hashFn(key)
	fp := fingerprint(h)
	nb := len(d.buckets)
	bi := d.startBucket(h)
	for {
		bk := &d.buckets[bi]
		emptyMask := scan.MatchChr(bk.meta[:], metaEmpty)
		if emptyMask != 0 {
			si := bitset.FirstSet(emptyMask)
			d.place(bi, si, fp, key, value)
			return
		}
		bi = (bi + 1) % nb
	}
}

func (d *Dictionary) place(bi, si int, fp byte, key *pstring.String, value any) {
	bk := &d.buckets[bi]
	wasLive := bk.meta[si] != metaEmpty && bk.meta[si] != metaTombstone
	bk.meta[si] = fp
	bk.slot[si] = slot{key: key, val: value}
	if !wasLive {
		d.count++
	}
}

// Remove deletes key, failing with pstring.ErrNotFound if absent.
func (d *Dictionary) Remove(key *pstring.String) error {
	h := d.hashFn(key)
	r := d.probe(key, h)
	if !r.found {
		return pstring.ErrNotFound
	}
	bk := &d.buckets[r.bi]
	bk.meta[r.si] = metaTombstone
	bk.slot[r.si] = slot{}
	d.count--
	return nil
}

// Each visits every live entry in bucket-major/slot-minor order,
// stopping if f returns false. Returns pstring.ErrInterrupted if f
// halted iteration.
func (d *Dictionary) Each(f func(key *pstring.String, val any) bool) error {
	for bi := range d.buckets {
		bk := &d.buckets[bi]
		for si := 0; si < B; si++ {
			if bk.meta[si] == metaEmpty || bk.meta[si] == metaTombstone {
				continue
			}
			if !f(bk.slot[si].key, bk.slot[si].val) {
				return pstring.ErrInterrupted
			}
		}
	}
	return nil
}

// Filter visits every live entry and deletes those for which f
// returns false.
func (d *Dictionary) Filter(f func(key *pstring.String, val any) bool) error {
	for bi := range d.buckets {
		bk := &d.buckets[bi]
		for si := 0; si < B; si++ {
			if bk.meta[si] == metaEmpty || bk.meta[si] == metaTombstone {
				continue
			}
			if !f(bk.slot[si].key, bk.slot[si].val) {
				bk.meta[si] = metaTombstone
				bk.slot[si] = slot{}
				d.count--
			}
		}
	}
	return nil
}

// Reserve ensures the dictionary can hold n more entries without
// exceeding the 0.7 load-factor threshold, growing (doubling and
// rehashing) first if necessary.
func (d *Dictionary) Reserve(n int) error {
	needed := d.count + n
	if needed*loadFactorDen <= d.Capacity()*loadFactorNum {
		return nil
	}
	newBuckets := len(d.buckets) * 2
	if newBuckets == 0 {
		newBuckets = 1
	}
	for needed*loadFactorDen > newBuckets*B*loadFactorNum {
		newBuckets *= 2
	}
	return d.rehash(newBuckets)
}

func (d *Dictionary) rehash(newBucketCount int) error {
	Logger.Printf("dict: rehashing capacity %d -> %d (count=%d)", d.Capacity(), newBucketCount*B, d.count)
	old := d.buckets
	d.buckets = make([]bucket, newBucketCount)
	d.count = 0
	for bi := range old {
		bk := &old[bi]
		for si := 0; si < B; si++ {
			if bk.meta[si] == metaEmpty || bk.meta[si] == metaTombstone {
				continue
			}
			d.FInsert(bk.slot[si].key, bk.slot[si].val)
		}
	}
	return nil
}

// Keys returns a snapshot slice of every live key.
func (d *Dictionary) Keys() []*pstring.String {
	out := make([]*pstring.String, 0, d.count)
	d.Each(func(k *pstring.String, _ any) bool {
		out = append(out, k)
		return true
	})
	return out
}

// Values returns a snapshot slice of every live value.
func (d *Dictionary) Values() []any {
	out := make([]any, 0, d.count)
	d.Each(func(_ *pstring.String, v any) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Stats reports load-factor and tombstone introspection for
// diagnosing probe-sequence degradation.
type Stats struct {
	Count      int
	Capacity   int
	Tombstones int
	MaxProbe   int
}

// Stats computes a snapshot of the dictionary's internal health.
func (d *Dictionary) Stats() Stats {
	st := Stats{Count: d.count, Capacity: d.Capacity()}
	nb := len(d.buckets)
	for bi := range d.buckets {
		bk := &d.buckets[bi]
		for si := 0; si < B; si++ {
			if bk.meta[si] == metaTombstone {
				st.Tombstones++
			}
		}
	}
	for bi := range d.buckets {
		bk := &d.buckets[bi]
		for si := 0; si < B; si++ {
			if bk.meta[si] == metaEmpty || bk.meta[si] == metaTombstone {
				continue
			}
			h := d.hashFn(bk.slot[si].key)
			start := d.startBucket(h)
			probeLen := bi - start
			if probeLen < 0 {
				probeLen += nb
			}
			if probeLen > st.MaxProbe {
				st.MaxProbe = probeLen
			}
		}
	}
	return st
}
