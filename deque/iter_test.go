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

import (
	"testing"

	"github.com/cockroachdb/coll"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestIterEmpty(t *testing.T) {
	d := New[int](0)
	it := d.Iter()
	require.False(t, it.Next())
	require.NoError(t, it.Err())
	require.False(t, it.Next())
	require.NoError(t, it.Err())
}

func TestIterOrder(t *testing.T) {
	d := New[int](4)
	for i := 1; i <= 4; i++ {
		require.NoError(t, d.PushBack(i))
	}
	// Wrap the occupied region.
	_, err := d.PopFront()
	require.NoError(t, err)
	_, err = d.PopFront()
	require.NoError(t, err)
	require.NoError(t, d.PushBack(5))
	require.NoError(t, d.PushBack(6))

	require.Equal(t, []int{3, 4, 5, 6}, d.toSlice())
}

func TestIterFailFastOnPush(t *testing.T) {
	d := New[int](0)
	require.NoError(t, d.PushBack(1))
	require.NoError(t, d.PushBack(2))

	it := d.Iter()
	require.True(t, it.Next())
	require.NoError(t, d.PushBack(3))
	require.False(t, it.Next())
	require.True(t, errors.Is(it.Err(), coll.ErrConcurrentModification))

	// The deque itself remains valid.
	require.Equal(t, []int{1, 2, 3}, d.toSlice())
}

func TestIterFailFastOnPop(t *testing.T) {
	d := New[int](0)
	require.NoError(t, d.PushBack(1))
	require.NoError(t, d.PushBack(2))

	it := d.Iter()
	require.True(t, it.Next())
	_, ok := d.TryPopBack()
	require.True(t, ok)
	require.False(t, it.Next())
	require.True(t, errors.Is(it.Err(), coll.ErrConcurrentModification))
}

func TestIterPeekDoesNotInvalidate(t *testing.T) {
	d := New[int](0)
	require.NoError(t, d.PushBack(1))
	require.NoError(t, d.PushBack(2))

	it := d.Iter()
	require.True(t, it.Next())
	_, err := d.PeekFront()
	require.NoError(t, err)
	_, ok := d.TryPeekBack()
	require.True(t, ok)
	require.True(t, it.Next())
	require.False(t, it.Next())
	require.NoError(t, it.Err())
}

func TestIterExhaustedStaysClean(t *testing.T) {
	d := New[int](0)
	require.NoError(t, d.PushBack(1))

	it := d.Iter()
	require.True(t, it.Next())
	require.False(t, it.Next())
	require.NoError(t, it.Err())

	require.NoError(t, d.PushBack(2))
	require.False(t, it.Next())
	require.NoError(t, it.Err())
}
