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

// Package hashmap provides Map, a hash table from keys to values with
// fail-fast iteration.
//
// # Layout
//
// The table uses chaining to handle collisions: a power-of-two sized array
// of buckets, each bucket the head of a singly linked list of entries that
// share a hash-modulo-capacity slot. Every entry caches the 64-bit spread
// hash of its key, which lets chain scans skip most key comparisons and
// lets resize redistribute entries without rehashing.
//
// Bucket selection uses only the low bits of the hash, so every hash value
// is first passed through a fixed avalanche mix ("spread") that folds the
// high bits into the low bits. This bounds the clustering caused by
// low-entropy hash functions; with the default hasher (the same seeded hash
// used by Go's builtin map, via hash/maphash) chains stay short with high
// probability.
//
// When an insert pushes the load factor (size/capacity) above the
// configured threshold the bucket array doubles and every entry is
// redistributed, synchronously, inside the insert. Entry objects are
// relinked rather than copied; size is unchanged and every entry reappears
// exactly once.
//
// # Structural changes and iteration
//
// Map carries a generation counter that is bumped once per structural
// change: insert of a new key, removal of a key, and a resize. Replacing
// the value of an existing key is not a structural change. Iterators
// returned by Iter snapshot the counter and fail with
// coll.ErrConcurrentModification the moment they observe a mismatch; see
// the coll package doc for the protocol and Iterator for the view API.
//
// # Hash and equality contract
//
// Two keys that compare equal with == must produce the same hash. The
// default hasher guarantees this for any comparable key type; a hash
// function supplied with WithHash must preserve it. Violating the contract
// makes lookups undefined; it is documented, not checked.
//
// A Map is NOT goroutine-safe.
package hashmap

import (
	"fmt"
	"hash/maphash"
	"strings"
)

const (
	// defaultLoadFactor is the resize threshold used when WithLoadFactor is
	// not supplied. At 0.75 the average chain length stays below one for
	// well distributed hashes.
	defaultLoadFactor = 0.75

	// minCapacity is the bucket count of the first allocation when a map is
	// grown from empty. Always a power of two.
	minCapacity = 16
)

// entry holds a single key/value pair. An entry is owned exclusively by the
// table it resides in and is never shared between tables; resize relinks
// entries in place and removal merely unlinks them.
type entry[K comparable, V any] struct {
	key   K
	value V
	// hash is the cached spread hash of key.
	hash uint64
	next *entry[K, V]
}

// table is the chained hash table underlying Map. It implements the storage
// operations (lookup, upsert, erase, resize); the composite operation family
// lives on Map.
type table[K comparable, V any] struct {
	hash func(maphash.Seed, K) uint64
	seed maphash.Seed
	// buckets always has power-of-two length, so i%cap is i&(cap-1). A nil
	// slice is a valid empty table; the first insert allocates.
	buckets []*entry[K, V]
	// size is the number of entries, including the sentinel-key entry.
	size    int
	maxLoad float64
	// gen counts structural changes. See the coll package doc.
	gen uint64

	// The designated sentinel key, if any, bypasses hashing into a dedicated
	// slot. See WithSentinelKey.
	sentinelKey    K
	hasSentinelKey bool
	sentinel       *entry[K, V]
}

// Map is an unordered map from keys to values with the usual Put, Get,
// Delete operations, a family of composite operations (PutIfAbsent,
// ComputeIfAbsent, Compute, Merge) with precisely defined structural-change
// semantics, and live fail-fast views (Iter).
//
// A Map is NOT goroutine-safe. See the coll package doc for the ownership
// model.
type Map[K comparable, V any] struct {
	table[K, V]
}

// New constructs a Map with capacity for at least initialCapacity entries
// before the first resize. If initialCapacity is 0 the map starts without a
// bucket array and allocates on the first insert. The zero value for a Map
// is not usable.
func New[K comparable, V any](initialCapacity int, options ...Option[K, V]) *Map[K, V] {
	m := &Map[K, V]{table[K, V]{
		hash:    maphash.Comparable[K],
		seed:    maphash.MakeSeed(),
		maxLoad: defaultLoadFactor,
	}}
	for _, op := range options {
		op.apply(m)
	}
	if initialCapacity > 0 {
		// The smallest power of two that holds initialCapacity entries
		// without crossing the load factor threshold.
		need := int(float64(initialCapacity)/m.maxLoad) + 1
		n := minCapacity
		for n < need {
			n *= 2
		}
		m.buckets = make([]*entry[K, V], n)
	}
	m.checkInvariants()
	return m
}

// Put inserts an entry into the map, overwriting the value if an entry with
// the same key already exists. It returns the previous value, if any.
// Overwriting an existing key is a value-only replacement: it is not a
// structural change and does not invalidate live iterators.
func (m *Map[K, V]) Put(key K, value V) (prev V, replaced bool) {
	return m.upsert(key, value)
}

// Get retrieves the value for key, returning ok=false if the key is not
// present. Get never mutates the map.
func (m *Map[K, V]) Get(key K) (value V, ok bool) {
	return m.lookup(key)
}

// GetOrDefault returns the value for key, or fallback if the key is not
// present. It is a pure read and never inserts.
func (m *Map[K, V]) GetOrDefault(key K, fallback V) V {
	if v, ok := m.lookup(key); ok {
		return v
	}
	return fallback
}

// Delete removes the entry for key, returning the removed value, if any.
// Deleting an absent key is a no-op, not an error. A subsequent Put of the
// same key behaves as a fresh insert.
func (m *Map[K, V]) Delete(key K) (prev V, ok bool) {
	return m.erase(key)
}

// PutIfAbsent inserts value only if key is absent. It returns the value now
// associated with key and whether that value was already present. A present
// key is left unmodified.
func (m *Map[K, V]) PutIfAbsent(key K, value V) (actual V, loaded bool) {
	if v, ok := m.lookup(key); ok {
		return v, true
	}
	m.upsert(key, value)
	return value, false
}

// ComputeIfAbsent returns the value for key if present, without invoking
// fn. Otherwise it evaluates fn(key) exactly once, inserts the result, and
// returns it.
func (m *Map[K, V]) ComputeIfAbsent(key K, fn func(K) V) V {
	if v, ok := m.lookup(key); ok {
		return v
	}
	v := fn(key)
	m.upsert(key, v)
	return v
}

// Compute evaluates fn with the key, the current value, and whether the key
// is present. If fn reports ok=false the key is removed (a structural
// change, if the key was present); otherwise the returned value is
// upserted. Compute returns the value now associated with key, if any.
func (m *Map[K, V]) Compute(
	key K, fn func(key K, value V, ok bool) (V, bool),
) (value V, ok bool) {
	cur, present := m.lookup(key)
	next, keep := fn(key, cur, present)
	if keep {
		m.upsert(key, next)
		return next, true
	}
	if present {
		m.erase(key)
	}
	return value, false
}

// Merge inserts value if key is absent. If key is present, the existing
// value is replaced with combine(existing, value), or the key is removed if
// combine reports ok=false. Merge returns the value now associated with
// key, if any.
func (m *Map[K, V]) Merge(
	key K, value V, combine func(existing, value V) (V, bool),
) (V, bool) {
	cur, present := m.lookup(key)
	if !present {
		m.upsert(key, value)
		return value, true
	}
	next, keep := combine(cur, value)
	if !keep {
		m.erase(key)
		var zero V
		return zero, false
	}
	m.upsert(key, next)
	return next, true
}

// Len returns the number of entries in the map.
func (m *Map[K, V]) Len() int {
	return m.size
}

// Clear removes all entries, retaining the bucket array for reuse. Clearing
// a non-empty map is a structural change.
func (m *Map[K, V]) Clear() {
	if m.size == 0 {
		return
	}
	clear(m.buckets)
	m.sentinel = nil
	m.size = 0
	m.gen++
	m.checkInvariants()
}

// capacity returns the current bucket count.
func (t *table[K, V]) capacity() int {
	return len(t.buckets)
}

// hashKey computes the spread hash of key.
func (t *table[K, V]) hashKey(key K) uint64 {
	return spread(t.hash(t.seed, key))
}

func (t *table[K, V]) bucketIndex(h uint64) uint64 {
	return h & uint64(len(t.buckets)-1)
}

func (t *table[K, V]) lookup(key K) (value V, ok bool) {
	if t.hasSentinelKey && key == t.sentinelKey {
		if e := t.sentinel; e != nil {
			return e.value, true
		}
		return value, false
	}
	if len(t.buckets) == 0 {
		return value, false
	}
	h := t.hashKey(key)
	for e := t.buckets[t.bucketIndex(h)]; e != nil; e = e.next {
		if e.hash == h && e.key == key {
			return e.value, true
		}
	}
	return value, false
}

func (t *table[K, V]) upsert(key K, value V) (prev V, replaced bool) {
	if t.hasSentinelKey && key == t.sentinelKey {
		if e := t.sentinel; e != nil {
			prev, e.value = e.value, value
			return prev, true
		}
		t.sentinel = &entry[K, V]{key: key, value: value}
		t.size++
		t.gen++
		t.maybeGrow()
		t.checkInvariants()
		return prev, false
	}

	h := t.hashKey(key)
	if len(t.buckets) == 0 {
		t.buckets = make([]*entry[K, V], minCapacity)
	} else {
		for e := t.buckets[t.bucketIndex(h)]; e != nil; e = e.next {
			if e.hash == h && e.key == key {
				prev, e.value = e.value, value
				return prev, true
			}
		}
	}

	i := t.bucketIndex(h)
	t.buckets[i] = &entry[K, V]{key: key, value: value, hash: h, next: t.buckets[i]}
	t.size++
	t.gen++
	t.maybeGrow()
	t.checkInvariants()
	return prev, false
}

func (t *table[K, V]) erase(key K) (prev V, ok bool) {
	if t.hasSentinelKey && key == t.sentinelKey {
		e := t.sentinel
		if e == nil {
			return prev, false
		}
		t.sentinel = nil
		t.size--
		t.gen++
		t.checkInvariants()
		return e.value, true
	}
	if len(t.buckets) == 0 {
		return prev, false
	}
	h := t.hashKey(key)
	i := t.bucketIndex(h)
	var p *entry[K, V]
	for e := t.buckets[i]; e != nil; p, e = e, e.next {
		if e.hash == h && e.key == key {
			if p == nil {
				t.buckets[i] = e.next
			} else {
				p.next = e.next
			}
			// NB: e.next is deliberately left intact. An iterator that
			// removed e through its own Remove keeps chaining through it to
			// reach e's former successor.
			t.size--
			t.gen++
			t.checkInvariants()
			return e.value, true
		}
	}
	return prev, false
}

// maybeGrow resizes until the load factor invariant holds. Called after
// every size increment.
func (t *table[K, V]) maybeGrow() {
	for float64(t.size) > t.maxLoad*float64(len(t.buckets)) {
		n := 2 * len(t.buckets)
		if n == 0 {
			n = minCapacity
		}
		t.resize(n)
	}
}

// resize replaces the bucket array with one of newCapacity buckets (a power
// of two) and redistributes every entry by its cached hash. Entries are
// relinked, never copied or rehashed. size is unchanged. Resize is a
// structural change: the generation bump invalidates every live iterator.
func (t *table[K, V]) resize(newCapacity int) {
	oldBuckets := t.buckets
	t.buckets = make([]*entry[K, V], newCapacity)
	mask := uint64(newCapacity - 1)
	for _, head := range oldBuckets {
		for e := head; e != nil; {
			next := e.next
			i := e.hash & mask
			e.next = t.buckets[i]
			t.buckets[i] = e
			e = next
		}
	}
	t.gen++
}

func (t *table[K, V]) checkInvariants() {
	if invariants {
		if n := len(t.buckets); n&(n-1) != 0 {
			panic(fmt.Sprintf("invariant failed: capacity %d is not a power of two", n))
		}
		n := 0
		for i, head := range t.buckets {
			for e := head; e != nil; e = e.next {
				if h := t.hashKey(e.key); h != e.hash {
					panic(fmt.Sprintf("invariant failed: entry %v cached hash %016x, hashes to %016x\n%s",
						e.key, e.hash, h, t.debugString()))
				}
				if j := t.bucketIndex(e.hash); j != uint64(i) {
					panic(fmt.Sprintf("invariant failed: entry %v in bucket %d, hash selects %d\n%s",
						e.key, i, j, t.debugString()))
				}
				if _, ok := t.lookup(e.key); !ok {
					panic(fmt.Sprintf("invariant failed: entry %v not found by lookup\n%s",
						e.key, t.debugString()))
				}
				n++
			}
		}
		if t.sentinel != nil {
			n++
		}
		if n != t.size {
			panic(fmt.Sprintf("invariant failed: found %d entries, but size is %d\n%s",
				n, t.size, t.debugString()))
		}
	}
}

func (t *table[K, V]) debugString() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "capacity=%d size=%d gen=%d\n", len(t.buckets), t.size, t.gen)
	if t.sentinel != nil {
		fmt.Fprintf(&buf, "  sentinel: %v=%v\n", t.sentinel.key, t.sentinel.value)
	}
	for i, head := range t.buckets {
		if head == nil {
			continue
		}
		fmt.Fprintf(&buf, "  %4d:", i)
		for e := head; e != nil; e = e.next {
			fmt.Fprintf(&buf, " %v=%v [%016x]", e.key, e.value, e.hash)
		}
		buf.WriteString("\n")
	}
	return buf.String()
}

// spread mixes the bits of h so that the low bits used for bucket selection
// depend on every input bit. The constants and shifts are the 64-bit
// finalizer from MurmurHash3.
func spread(h uint64) uint64 {
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}
