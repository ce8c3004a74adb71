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

// Package hashset provides Set, an unordered set of elements backed by a
// hashmap.Map with unit values. Membership is key presence in the backing
// map; the set holds no independent state, so the map's hashing, resize,
// and fail-fast iteration behavior (see the hashmap and coll package docs)
// carry over unchanged.
//
// A Set is NOT goroutine-safe.
package hashset

import (
	"hash/maphash"

	"github.com/cockroachdb/coll/hashmap"
)

// unit is the value stored for every element.
type unit = struct{}

// Set is an unordered set of elements.
type Set[E comparable] struct {
	m *hashmap.Map[E, unit]
}

// Option configures a Set during construction by forwarding to the backing
// map.
type Option[E comparable] struct {
	opt hashmap.Option[E, unit]
}

// WithHash is an option to specify the hash function for the element type.
// See hashmap.WithHash for the contract.
func WithHash[E comparable](hash func(seed maphash.Seed, elem E) uint64) Option[E] {
	return Option[E]{hashmap.WithHash[E, unit](hash)}
}

// WithLoadFactor is an option to set the backing map's load factor
// threshold. See hashmap.WithLoadFactor.
func WithLoadFactor[E comparable](maxLoad float64) Option[E] {
	return Option[E]{hashmap.WithLoadFactor[E, unit](maxLoad)}
}

// WithSentinelElem designates one element value that bypasses hashing. See
// hashmap.WithSentinelKey.
func WithSentinelElem[E comparable](elem E) Option[E] {
	return Option[E]{hashmap.WithSentinelKey[E, unit](elem)}
}

// New constructs a Set with capacity for at least initialCapacity elements
// before the first resize. The zero value for a Set is not usable.
func New[E comparable](initialCapacity int, options ...Option[E]) *Set[E] {
	opts := make([]hashmap.Option[E, unit], len(options))
	for i, op := range options {
		opts[i] = op.opt
	}
	return &Set[E]{m: hashmap.New[E, unit](initialCapacity, opts...)}
}

// Add inserts elem, reporting whether it was newly added. Adding a present
// element leaves the set unchanged and is not a structural change.
func (s *Set[E]) Add(elem E) bool {
	_, loaded := s.m.PutIfAbsent(elem, unit{})
	return !loaded
}

// Remove deletes elem, reporting whether it was present.
func (s *Set[E]) Remove(elem E) bool {
	_, ok := s.m.Delete(elem)
	return ok
}

// Contains reports whether elem is in the set. It never mutates the set.
func (s *Set[E]) Contains(elem E) bool {
	_, ok := s.m.Get(elem)
	return ok
}

// Len returns the number of elements in the set.
func (s *Set[E]) Len() int {
	return s.m.Len()
}

// Clear removes all elements, retaining the backing storage for reuse.
func (s *Set[E]) Clear() {
	s.m.Clear()
}

// Iterator is a live view over the elements of a Set: the key view of the
// backing map. See hashmap.Iterator for the fail-fast protocol.
type Iterator[E comparable] struct {
	it *hashmap.Iterator[E, unit]
}

// Iter returns a new view positioned before the first element.
func (s *Set[E]) Iter() *Iterator[E] {
	return &Iterator[E]{it: s.m.Iter()}
}

// Next advances to the next element, reporting whether one exists.
func (it *Iterator[E]) Next() bool {
	return it.it.Next()
}

// Elem returns the current element. It must only be called after Next has
// returned true.
func (it *Iterator[E]) Elem() E {
	return it.it.Key()
}

// Remove deletes the current element through the view without invalidating
// the view. See hashmap.Iterator.Remove.
func (it *Iterator[E]) Remove() error {
	return it.it.Remove()
}

// Err returns coll.ErrConcurrentModification if the view has been
// invalidated, and nil otherwise.
func (it *Iterator[E]) Err() error {
	return it.it.Err()
}
