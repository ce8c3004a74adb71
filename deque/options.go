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

// Option configures a Deque during construction. Options are enumerated at
// construction time and immutable thereafter.
type Option[E any] interface {
	apply(d *Deque[E])
}

type fixedCapacityOption[E any] struct{}

func (fixedCapacityOption[E]) apply(d *Deque[E]) {
	d.fixed = true
}

// WithFixedCapacity is an option that makes the deque's capacity a hard
// bound: pushes into a full deque fail with ErrFull (or Try form false)
// instead of growing. New panics if the option is combined with a
// non-positive initial capacity.
func WithFixedCapacity[E any]() Option[E] {
	return fixedCapacityOption[E]{}
}
