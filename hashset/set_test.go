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

package hashset

import (
	"hash/maphash"
	"math/rand"
	"testing"

	"github.com/cockroachdb/coll"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

// toBuiltinSet collects the elements into a builtin set. Useful for testing.
func toBuiltinSet[E comparable](s *Set[E]) map[E]struct{} {
	r := make(map[E]struct{})
	it := s.Iter()
	for it.Next() {
		r[it.Elem()] = struct{}{}
	}
	if err := it.Err(); err != nil {
		panic(err)
	}
	return r
}

func TestBasic(t *testing.T) {
	s := New[int](0)
	require.False(t, s.Contains(1))
	require.True(t, s.Add(1))
	require.True(t, s.Contains(1))
	require.EqualValues(t, 1, s.Len())

	// Re-adding a present element is a no-op.
	require.False(t, s.Add(1))
	require.EqualValues(t, 1, s.Len())

	require.True(t, s.Add(2))
	require.EqualValues(t, 2, s.Len())

	require.True(t, s.Remove(1))
	require.False(t, s.Contains(1))
	require.False(t, s.Remove(1))
	require.EqualValues(t, 1, s.Len())

	s.Clear()
	require.EqualValues(t, 0, s.Len())
	require.False(t, s.Contains(2))
	require.True(t, s.Add(2))
}

// TestRandom runs random operations against a Set and a builtin-map set,
// verifying that they are equivalent.
func TestRandom(t *testing.T) {
	s := New[int](0)
	e := make(map[int]struct{})
	for i := 0; i < 10000; i++ {
		switch r := rand.Float64(); {
		case r < 0.5: // 50% add
			v := rand.Intn(2000)
			_, present := e[v]
			require.Equal(t, !present, s.Add(v))
			e[v] = struct{}{}
		case r < 0.7: // 20% remove
			v := rand.Intn(2000)
			_, present := e[v]
			require.Equal(t, present, s.Remove(v))
			delete(e, v)
		case r < 0.95: // 25% membership probe
			v := rand.Intn(2000)
			_, present := e[v]
			require.Equal(t, present, s.Contains(v))
		default: // 5% full iteration
			require.Equal(t, e, toBuiltinSet(s))
		}
		require.EqualValues(t, len(e), s.Len())
	}
}

func TestIterYieldsAll(t *testing.T) {
	s := New[int](0)
	expected := make(map[int]struct{})
	for i := 0; i < 100; i++ {
		s.Add(i)
		expected[i] = struct{}{}
	}
	require.Equal(t, expected, toBuiltinSet(s))
}

func TestIterFailFast(t *testing.T) {
	s := New[int](0)
	for i := 0; i < 3; i++ {
		s.Add(i)
	}

	it := s.Iter()
	require.True(t, it.Next())
	require.True(t, s.Remove(it.Elem()))
	require.False(t, it.Next())
	require.True(t, errors.Is(it.Err(), coll.ErrConcurrentModification))

	// A fresh view sees the post-removal contents.
	require.EqualValues(t, 2, len(toBuiltinSet(s)))
}

func TestIterSelfRemove(t *testing.T) {
	s := New[int](0)
	for i := 0; i < 100; i++ {
		s.Add(i)
	}

	it := s.Iter()
	for it.Next() {
		if it.Elem()%2 == 0 {
			require.NoError(t, it.Remove())
		}
	}
	require.NoError(t, it.Err())
	require.EqualValues(t, 50, s.Len())
	for i := 0; i < 100; i++ {
		require.Equal(t, i%2 == 1, s.Contains(i))
	}
}

func TestSentinelElem(t *testing.T) {
	s := New[string](0,
		WithSentinelElem[string](""),
		WithHash[string](func(seed maphash.Seed, elem string) uint64 {
			if elem == "" {
				t.Fatal("sentinel element reached the hash function")
			}
			return maphash.Comparable(seed, elem)
		}),
	)
	require.True(t, s.Add(""))
	require.True(t, s.Contains(""))
	require.True(t, s.Add("a"))
	require.EqualValues(t, 2, s.Len())

	require.Equal(t, map[string]struct{}{"": {}, "a": {}}, toBuiltinSet(s))

	require.True(t, s.Remove(""))
	require.False(t, s.Contains(""))
	require.EqualValues(t, 1, s.Len())
}

func TestLoadFactorOption(t *testing.T) {
	s := New[int](0, WithLoadFactor[int](0.5))
	for i := 0; i < 1000; i++ {
		s.Add(i)
	}
	for i := 0; i < 1000; i++ {
		require.True(t, s.Contains(i))
	}
	require.EqualValues(t, 1000, s.Len())
}
