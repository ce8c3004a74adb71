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

// Package deque provides Deque, a double-ended queue maintained over a
// circular buffer.
//
// Note: it is backed by a slice (unlike container/list which is backed by a
// linked list). The occupied region is tracked by a head index and a count;
// it may wrap around the end of the slice. A growable deque doubles its
// backing slice when full; a fixed-capacity deque (WithFixedCapacity)
// rejects pushes when full instead.
//
// Every operation comes in two forms. The asserting form returns a typed
// error (ErrEmpty, ErrFull, ErrNilElement) when its precondition does not
// hold; the Try form reports the same outcome through its return values and
// never returns an error. Callers pick the failure philosophy per call
// site.
//
// The structure imposes no ordering policy of its own: PushBack+PopFront is
// a FIFO queue, PushFront+PopFront is a LIFO stack.
//
// Pushes and pops bump a generation counter; iterators returned by Iter
// fail with coll.ErrConcurrentModification when they observe one they did
// not cause. See the coll package doc.
//
// A Deque is NOT goroutine-safe.
package deque

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrEmpty is returned by the asserting pop and peek forms when the
	// deque holds no elements.
	ErrEmpty = errors.New("deque: empty")

	// ErrFull is returned by the asserting push forms when a fixed-capacity
	// deque is full. A growable deque never returns it.
	ErrFull = errors.New("deque: full")

	// ErrNilElement is returned by the asserting push forms when elem is a
	// nil interface value, before any state change. Cleared slots of the
	// backing slice are zeroed, so a stored nil interface would be
	// indistinguishable from an empty slot; deques of non-interface element
	// types can never trigger this.
	ErrNilElement = errors.New("deque: nil element")
)

// Deque is a double-ended queue over a circular buffer.
//
// A Deque is NOT goroutine-safe. See the coll package doc for the ownership
// model.
type Deque[E any] struct {
	storage []E
	// head is the index of the front element; the occupied region is the
	// count slots starting at head, modulo len(storage).
	head  int
	count int
	fixed bool
	// gen counts structural changes. See the coll package doc.
	gen uint64
}

// New constructs a Deque with the given initial capacity. A growable deque
// may start at capacity 0; a fixed-capacity deque (WithFixedCapacity)
// requires a positive capacity and panics otherwise. The zero value for a
// Deque is a usable empty growable deque.
func New[E any](initialCapacity int, options ...Option[E]) *Deque[E] {
	d := &Deque[E]{}
	if initialCapacity > 0 {
		d.storage = make([]E, initialCapacity)
	}
	for _, op := range options {
		op.apply(d)
	}
	if d.fixed && initialCapacity <= 0 {
		panic("deque: fixed-capacity deque requires a positive capacity")
	}
	return d
}

// Len returns the number of elements in the deque.
func (d *Deque[E]) Len() int {
	return d.count
}

// Cap returns the current capacity. For a fixed deque it never changes.
func (d *Deque[E]) Cap() int {
	return len(d.storage)
}

// Fixed reports whether the deque rejects pushes when full rather than
// growing.
func (d *Deque[E]) Fixed() bool {
	return d.fixed
}

// PushFront inserts elem at the front, growing the deque if necessary.
// Returns ErrFull when fixed and full, ErrNilElement for a nil interface
// element; in both cases the deque is unchanged.
func (d *Deque[E]) PushFront(elem E) error {
	if isNil(elem) {
		return ErrNilElement
	}
	if !d.ensureSpace() {
		return ErrFull
	}
	d.head = (d.head - 1 + len(d.storage)) % len(d.storage)
	d.storage[d.head] = elem
	d.count++
	d.gen++
	return nil
}

// PushBack inserts elem at the back, growing the deque if necessary.
// Returns ErrFull when fixed and full, ErrNilElement for a nil interface
// element; in both cases the deque is unchanged.
func (d *Deque[E]) PushBack(elem E) error {
	if isNil(elem) {
		return ErrNilElement
	}
	if !d.ensureSpace() {
		return ErrFull
	}
	d.storage[(d.head+d.count)%len(d.storage)] = elem
	d.count++
	d.gen++
	return nil
}

// TryPushFront inserts elem at the front, reporting success. It returns
// false, leaving the deque unchanged, when the deque is fixed and full or
// elem is a nil interface element.
func (d *Deque[E]) TryPushFront(elem E) bool {
	return d.PushFront(elem) == nil
}

// TryPushBack inserts elem at the back, reporting success. It returns
// false, leaving the deque unchanged, when the deque is fixed and full or
// elem is a nil interface element.
func (d *Deque[E]) TryPushBack(elem E) bool {
	return d.PushBack(elem) == nil
}

// PopFront removes and returns the front element, or ErrEmpty.
func (d *Deque[E]) PopFront() (E, error) {
	if elem, ok := d.TryPopFront(); ok {
		return elem, nil
	}
	var zero E
	return zero, ErrEmpty
}

// PopBack removes and returns the back element, or ErrEmpty.
func (d *Deque[E]) PopBack() (E, error) {
	if elem, ok := d.TryPopBack(); ok {
		return elem, nil
	}
	var zero E
	return zero, ErrEmpty
}

// TryPopFront removes and returns the front element, reporting ok=false if
// the deque is empty.
func (d *Deque[E]) TryPopFront() (elem E, ok bool) {
	if d.count == 0 {
		return elem, false
	}
	var zero E
	elem = d.storage[d.head]
	// Zero the vacated slot so the backing slice does not retain the
	// element.
	d.storage[d.head] = zero
	d.head = (d.head + 1) % len(d.storage)
	d.count--
	d.gen++
	return elem, true
}

// TryPopBack removes and returns the back element, reporting ok=false if
// the deque is empty.
func (d *Deque[E]) TryPopBack() (elem E, ok bool) {
	if d.count == 0 {
		return elem, false
	}
	var zero E
	i := (d.head + d.count - 1) % len(d.storage)
	elem = d.storage[i]
	d.storage[i] = zero
	d.count--
	d.gen++
	return elem, true
}

// PeekFront returns the front element without removing it, or ErrEmpty.
// Peeks are pure reads and never invalidate iterators.
func (d *Deque[E]) PeekFront() (E, error) {
	if elem, ok := d.TryPeekFront(); ok {
		return elem, nil
	}
	var zero E
	return zero, ErrEmpty
}

// PeekBack returns the back element without removing it, or ErrEmpty.
func (d *Deque[E]) PeekBack() (E, error) {
	if elem, ok := d.TryPeekBack(); ok {
		return elem, nil
	}
	var zero E
	return zero, ErrEmpty
}

// TryPeekFront returns the front element, reporting ok=false if the deque
// is empty.
func (d *Deque[E]) TryPeekFront() (elem E, ok bool) {
	if d.count == 0 {
		return elem, false
	}
	return d.storage[d.head], true
}

// TryPeekBack returns the back element, reporting ok=false if the deque is
// empty.
func (d *Deque[E]) TryPeekBack() (elem E, ok bool) {
	if d.count == 0 {
		return elem, false
	}
	return d.storage[(d.head+d.count-1)%len(d.storage)], true
}

// Clear removes all elements, retaining the backing slice for reuse.
// Clearing a non-empty deque is a structural change.
func (d *Deque[E]) Clear() {
	if d.count == 0 {
		return
	}
	clear(d.storage)
	d.head = 0
	d.count = 0
	d.gen++
}

// ensureSpace makes room for one more element, reporting false when the
// deque is fixed and full.
func (d *Deque[E]) ensureSpace() bool {
	if d.count < len(d.storage) {
		return true
	}
	if d.fixed {
		return false
	}
	n := 2 * len(d.storage)
	if n == 0 {
		n = 1
	}
	d.grow(n)
	return true
}

// grow replaces the backing slice with one of capacity n, unwrapping the
// occupied region to the start of the new slice.
func (d *Deque[E]) grow(n int) {
	newStorage := make([]E, n)
	if d.head+d.count <= len(d.storage) {
		copy(newStorage, d.storage[d.head:d.head+d.count])
	} else {
		m := copy(newStorage, d.storage[d.head:])
		copy(newStorage[m:], d.storage[:d.count-m])
	}
	d.head = 0
	d.storage = newStorage
}

// isNil reports whether elem is a nil interface value. Boxing a
// non-interface type never yields nil, so this is false for every element
// of a value, pointer, or struct typed deque.
func isNil[E any](elem E) bool {
	return any(elem) == nil
}
