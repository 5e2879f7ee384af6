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

package dict

import (
	"fmt"
	"testing"

	"github.com/SnellerInc/pstring"
)

func key(s string) *pstring.String { return pstring.NewString(s, nil) }

func TestSetGetRemove(t *testing.T) {
	t.Parallel()
	d := New()
	if err := d.Set(key("alpha"), 1); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok := d.Get(key("alpha"))
	if !ok || v.(int) != 1 {
		t.Fatalf("Get after Set = %v, %v", v, ok)
	}
	if err := d.Remove(key("alpha")); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok := d.Get(key("alpha")); ok {
		t.Fatalf("key still present after Remove")
	}
	if err := d.Remove(key("alpha")); err != pstring.ErrNotFound {
		t.Fatalf("Remove of absent key = %v, want ErrNotFound", err)
	}
}

func TestInsertRejectsDuplicate(t *testing.T) {
	t.Parallel()
	d := New()
	if err := d.Insert(key("k"), 1); err != nil {
		t.Fatalf("first Insert: %v", err)
	}
	if err := d.Insert(key("k"), 2); err != pstring.ErrAlreadyExist {
		t.Fatalf("duplicate Insert = %v, want ErrAlreadyExist", err)
	}
	v, _ := d.Get(key("k"))
	if v.(int) != 1 {
		t.Fatalf("duplicate Insert must not overwrite, got %v", v)
	}
}

func TestSetOverwrites(t *testing.T) {
	t.Parallel()
	d := New()
	d.Set(key("k"), 1)
	d.Set(key("k"), 2)
	v, _ := d.Get(key("k"))
	if v.(int) != 2 {
		t.Fatalf("Set must overwrite, got %v", v)
	}
	if d.Count() != 1 {
		t.Fatalf("overwrite must not change count, got %d", d.Count())
	}
}

func TestCountInvariantUnderManyInsertions(t *testing.T) {
	t.Parallel()
	d := New()
	const n = 500
	for i := 0; i < n; i++ {
		if err := d.Set(key(fmt.Sprintf("key-%d", i)), i); err != nil {
			t.Fatalf("Set %d: %v", i, err)
		}
	}
	if d.Count() != n {
		t.Fatalf("Count = %d, want %d", d.Count(), n)
	}
	if d.Capacity() < d.Count() {
		t.Fatalf("capacity %d below count %d", d.Capacity(), d.Count())
	}
	for i := 0; i < n; i++ {
		v, ok := d.Get(key(fmt.Sprintf("key-%d", i)))
		if !ok || v.(int) != i {
			t.Fatalf("Get key-%d = %v, %v", i, v, ok)
		}
	}
}

func TestEachVisitsExactlyOnce(t *testing.T) {
	t.Parallel()
	d := New()
	want := map[string]bool{}
	for i := 0; i < 64; i++ {
		s := fmt.Sprintf("item-%d", i)
		want[s] = true
		d.Set(key(s), i)
	}
	seen := map[string]int{}
	err := d.Each(func(k *pstring.String, v any) bool {
		seen[k.String()]++
		return true
	})
	if err != nil {
		t.Fatalf("Each: %v", err)
	}
	if len(seen) != len(want) {
		t.Fatalf("Each visited %d distinct keys, want %d", len(seen), len(want))
	}
	for k, c := range seen {
		if c != 1 {
			t.Fatalf("Each visited %q %d times, want 1", k, c)
		}
	}
}

func TestEachHaltsOnFalse(t *testing.T) {
	t.Parallel()
	d := New()
	for i := 0; i < 10; i++ {
		d.Set(key(fmt.Sprintf("k%d", i)), i)
	}
	count := 0
	err := d.Each(func(*pstring.String, any) bool {
		count++
		return count < 3
	})
	if err != pstring.ErrInterrupted {
		t.Fatalf("Each early-exit error = %v, want ErrInterrupted", err)
	}
	if count != 3 {
		t.Fatalf("Each visited %d before halting, want 3", count)
	}
}

func TestFilterRemovesNonMatching(t *testing.T) {
	t.Parallel()
	d := New()
	for i := 0; i < 20; i++ {
		d.Set(key(fmt.Sprintf("k%d", i)), i)
	}
	d.Filter(func(_ *pstring.String, v any) bool {
		return v.(int)%2 == 0
	})
	if d.Count() != 10 {
		t.Fatalf("Filter left count %d, want 10", d.Count())
	}
	for i := 0; i < 20; i++ {
		_, ok := d.Get(key(fmt.Sprintf("k%d", i)))
		if ok != (i%2 == 0) {
			t.Fatalf("key %d presence = %v after filter", i, ok)
		}
	}
}

func TestKeysValuesSnapshotLength(t *testing.T) {
	t.Parallel()
	d := New()
	for i := 0; i < 30; i++ {
		d.Set(key(fmt.Sprintf("k%d", i)), i)
	}
	if len(d.Keys()) != 30 || len(d.Values()) != 30 {
		t.Fatalf("Keys/Values length mismatch: %d/%d", len(d.Keys()), len(d.Values()))
	}
}

func TestStatsReflectsCount(t *testing.T) {
	t.Parallel()
	d := New()
	for i := 0; i < 40; i++ {
		d.Set(key(fmt.Sprintf("k%d", i)), i)
	}
	st := d.Stats()
	if st.Count != 40 {
		t.Fatalf("Stats.Count = %d, want 40", st.Count)
	}
	if st.Capacity < st.Count {
		t.Fatalf("Stats.Capacity %d below Count %d", st.Capacity, st.Count)
	}
}

func TestRemoveThenReinsertReusesTombstone(t *testing.T) {
	t.Parallel()
	d := New()
	d.Set(key("a"), 1)
	d.Set(key("b"), 2)
	d.Remove(key("a"))
	if err := d.Set(key("c"), 3); err != nil {
		t.Fatalf("Set after Remove: %v", err)
	}
	if d.Count() != 2 {
		t.Fatalf("Count = %d, want 2", d.Count())
	}
	v, ok := d.Get(key("b"))
	if !ok || v.(int) != 2 {
		t.Fatalf("surviving key b corrupted: %v, %v", v, ok)
	}
	if st := d.Stats(); st.Tombstones != 0 {
		t.Fatalf("Tombstones = %d after reinsert, want 0 (slot reused)", st.Tombstones)
	}
}

func TestWithIDRoundTrip(t *testing.T) {
	t.Parallel()
	d := New()
	if d.ID().String() != "00000000-0000-0000-0000-000000000000" {
		t.Fatalf("default ID must be the zero uuid, got %s", d.ID())
	}
	id := d.ID()
	id[0] = 1
	if got := New(WithID(id)).ID(); got != id {
		t.Fatalf("WithID round trip: got %s want %s", got, id)
	}
}
