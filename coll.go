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

// Package coll holds the shared contract for the container packages beneath
// it (hashmap, hashset, deque): single-owner mutation and fail-fast
// iteration.
//
// # Ownership
//
// The containers provide no internal locking. A container instance is
// exclusively owned by its creator: a single goroutine mutates and iterates
// a given instance at a time. Sharing an instance across goroutines without
// external synchronization is undefined behavior, not merely a detected
// error; wrap the container in your own mutex if you need to share it.
//
// # Fail-fast iteration
//
// Every mutable container carries a monotonic generation counter that is
// bumped on each structural (size-changing) mutation: inserting a new key or
// element, removing one, resizing the backing storage. Replacing the value
// of an existing map key is not structural. An iterator snapshots the
// counter at creation and compares it before every advance; on a mismatch
// the iterator reports ErrConcurrentModification and is permanently
// invalidated. The container itself remains valid and a freshly created
// iterator will succeed.
//
// This is detection, not prevention: a mutation from another goroutine can
// race with the check (see Ownership above). Within the owning goroutine the
// check is exact.
package coll

import "github.com/cockroachdb/errors"

// ErrConcurrentModification is reported by an iterator that has observed a
// structural mutation of its container performed through anything other than
// the iterator's own Remove. The iterator is unusable afterwards; the
// container is unaffected.
var ErrConcurrentModification = errors.New("coll: concurrent structural modification detected")
