// Copyright 2025 The Cockroach Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hashmap

import "github.com/cockroachdb/coll"

// Iterator is a live, non-copying view over the entries of a Map. The key,
// value, and entry views of the map are this one cursor observed through
// Key, Value, and SetValue/Remove respectively.
//
// Usage follows the scanner pattern:
//
//	it := m.Iter()
//	for it.Next() {
//		use(it.Key(), it.Value())
//	}
//	if err := it.Err(); err != nil {
//		// errors.Is(err, coll.ErrConcurrentModification)
//	}
//
// Next returns false when the view is exhausted or invalidated; Err
// distinguishes the two. Both states are terminal. An iterator observes a
// structural change of the map (any change other than one made through its
// own Remove) as invalidation on its next advance; value-only replacement
// via Map.Put of an existing key or via SetValue does not invalidate.
//
// Iteration order is unspecified and changes across resizes and seeds.
type Iterator[K comparable, V any] struct {
	m   *Map[K, V]
	gen uint64
	cur *entry[K, V]
	// bucket is the next bucket index to scan once the current chain is
	// exhausted.
	bucket  int
	started bool
	done    bool
	err     error
}

// Iter returns a new view positioned before the first entry.
func (m *Map[K, V]) Iter() *Iterator[K, V] {
	return &Iterator[K, V]{m: m, gen: m.gen}
}

// Next advances to the next entry, reporting whether one exists. It returns
// false forever once the view is exhausted or invalidated.
func (it *Iterator[K, V]) Next() bool {
	if it.done || it.err != nil {
		return false
	}
	if it.gen != it.m.gen {
		it.invalidate()
		return false
	}
	var n *entry[K, V]
	if !it.started {
		it.started = true
		n = it.m.sentinel
	} else if it.cur != nil {
		// Safe after a self-Remove: erase unlinks an entry without clearing
		// its next pointer, so a removed cursor still chains to its former
		// successor.
		n = it.cur.next
	}
	for n == nil && it.bucket < len(it.m.buckets) {
		n = it.m.buckets[it.bucket]
		it.bucket++
	}
	it.cur = n
	if n == nil {
		it.done = true
		return false
	}
	return true
}

// Key returns the key of the current entry. It must only be called after
// Next has returned true.
func (it *Iterator[K, V]) Key() K {
	return it.cur.key
}

// Value returns the value of the current entry. It must only be called
// after Next has returned true.
func (it *Iterator[K, V]) Value() V {
	return it.cur.value
}

// SetValue replaces the value of the current entry. Value-only replacement
// is not a structural change: the generation counter is not bumped and
// other live views remain valid. It must only be called after Next has
// returned true.
func (it *Iterator[K, V]) SetValue(value V) {
	it.cur.value = value
}

// Remove deletes the current entry from the map through the view. The
// structural change is applied to the backing table first and the view then
// re-snapshots its generation expectation, so removing through the view
// never invalidates the view itself (every other live view is
// invalidated). It must only be called after Next has returned true, and at
// most once per entry.
func (it *Iterator[K, V]) Remove() error {
	if it.err != nil {
		return it.err
	}
	if it.gen != it.m.gen {
		it.invalidate()
		return it.err
	}
	it.m.erase(it.cur.key)
	it.gen = it.m.gen
	return nil
}

// Err returns coll.ErrConcurrentModification if the view has been
// invalidated by a structural change, and nil otherwise (including after
// clean exhaustion).
func (it *Iterator[K, V]) Err() error {
	return it.err
}

func (it *Iterator[K, V]) invalidate() {
	it.err = coll.ErrConcurrentModification
	it.cur = nil
}
