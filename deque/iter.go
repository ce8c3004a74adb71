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

package deque

import "github.com/cockroachdb/coll"

// Iterator is a live front-to-back view over the elements of a Deque,
// following the same scanner pattern and fail-fast protocol as
// hashmap.Iterator: Next returns false on exhaustion or invalidation, Err
// distinguishes the two, both states are terminal. Any push or pop
// invalidates live iterators; peeks do not.
type Iterator[E any] struct {
	d   *Deque[E]
	gen uint64
	// pos is the logical index (0 = front) of the next element to yield.
	pos  int
	elem E
	done bool
	err  error
}

// Iter returns a new view positioned before the front element.
func (d *Deque[E]) Iter() *Iterator[E] {
	return &Iterator[E]{d: d, gen: d.gen}
}

// Next advances to the next element, reporting whether one exists.
func (it *Iterator[E]) Next() bool {
	if it.done || it.err != nil {
		return false
	}
	if it.gen != it.d.gen {
		it.err = coll.ErrConcurrentModification
		var zero E
		it.elem = zero
		return false
	}
	if it.pos >= it.d.count {
		it.done = true
		return false
	}
	it.elem = it.d.storage[(it.d.head+it.pos)%len(it.d.storage)]
	it.pos++
	return true
}

// Value returns the current element. It must only be called after Next has
// returned true.
func (it *Iterator[E]) Value() E {
	return it.elem
}

// Err returns coll.ErrConcurrentModification if the view has been
// invalidated by a push or pop, and nil otherwise (including after clean
// exhaustion).
func (it *Iterator[E]) Err() error {
	return it.err
}
