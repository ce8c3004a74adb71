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

import (
	"fmt"
	"hash/maphash"
)

// Option configures a Map during construction. Options are enumerated at
// construction time and immutable thereafter.
type Option[K comparable, V any] interface {
	apply(m *Map[K, V])
}

type hashOption[K comparable, V any] struct {
	hash func(seed maphash.Seed, key K) uint64
}

func (op hashOption[K, V]) apply(m *Map[K, V]) {
	m.hash = op.hash
}

// WithHash is an option to specify the hash function to use for a Map[K,V].
// Keys that compare equal with == must hash equal under the supplied
// function; see the package doc for the contract. The function's output is
// spread before use, so it need not be well mixed, only consistent.
func WithHash[K comparable, V any](hash func(seed maphash.Seed, key K) uint64) Option[K, V] {
	return hashOption[K, V]{hash}
}

type loadFactorOption[K comparable, V any] struct {
	maxLoad float64
}

func (op loadFactorOption[K, V]) apply(m *Map[K, V]) {
	m.maxLoad = op.maxLoad
}

// WithLoadFactor is an option to set the load factor threshold (size over
// capacity) above which an insert triggers a resize. It must be in (0, 1];
// the default is 0.75.
func WithLoadFactor[K comparable, V any](maxLoad float64) Option[K, V] {
	if maxLoad <= 0 || maxLoad > 1 {
		panic(fmt.Sprintf("hashmap: load factor %g outside (0, 1]", maxLoad))
	}
	return loadFactorOption[K, V]{maxLoad}
}

type sentinelKeyOption[K comparable, V any] struct {
	key K
}

func (op sentinelKeyOption[K, V]) apply(m *Map[K, V]) {
	m.sentinelKey = op.key
	m.hasSentinelKey = true
}

// WithSentinelKey designates one key value that bypasses hashing into a
// dedicated slot outside the bucket array. The key otherwise behaves like
// any other: it counts toward Len, is overwritable, deletable, and visited
// by iterators. Use it when one key value stands for "absent" in the
// caller's domain and must not depend on the hash function (for instance
// when WithHash cannot handle it).
func WithSentinelKey[K comparable, V any](key K) Option[K, V] {
	return sentinelKeyOption[K, V]{key}
}
