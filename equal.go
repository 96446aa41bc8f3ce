// Copyright (c) 2025 The triemap Authors
// SPDX-License-Identifier: MIT

package triemap

import (
	"iter"
	"reflect"
)

// Equaler is a generic interface for types that can decide their own
// equality logic. It can be used to override the potentially expensive
// default comparison with [reflect.DeepEqual].
type Equaler[V any] interface {
	Equal(other V) bool
}

// equal compares two values of type V for equality.
// If V implements Equaler[V], that custom equality method is used.
// Otherwise, [reflect.DeepEqual] is used as a fallback.
func equal[V any](v1, v2 V) bool {
	// you can't assert directly on a type parameter
	if v1, ok := any(v1).(Equaler[V]); ok {
		return v1.Equal(v2)
	}
	// fallback
	return reflect.DeepEqual(v1, v2)
}

// Equal reports whether both maps hold the same set of keys with
// equal values. Values are compared with Equaler[V] when implemented,
// [reflect.DeepEqual] otherwise.
//
// Dead structure left behind by tombstone removals does not count,
// only live entries do; a pruned map equals its unpruned twin.
func (m *Map[K, V]) Equal(o *Map[K, V]) bool {
	if m == o {
		return true
	}
	if m == nil || o == nil || m.size != o.size {
		return false
	}

	// both iterate in ascending key order, walk them in parallel
	next, stop := iter.Pull2(m.All())
	defer stop()
	oNext, oStop := iter.Pull2(o.All())
	defer oStop()

	for {
		k1, v1, ok1 := next()
		k2, v2, ok2 := oNext()

		if ok1 != ok2 {
			return false
		}
		if !ok1 {
			return true
		}
		if keyCompare(k1, k2) != 0 || !equal(v1, v2) {
			return false
		}
	}
}

// equalRec compares two subtrees structurally: edge bitsets first,
// then value liveness and the values behind the slot handles, then
// the children pairwise.
//
// This is stricter than Equal, tombstone structure must match too.
// Used to verify that Clone reproduces the tree exactly.
func (n *node[V]) equalRec(o *node[V], nStore, oStore *valueStore[V]) bool {
	if n == o {
		return true
	}

	if n.edges != o.edges {
		return false
	}

	if n.hasValue() != o.hasValue() {
		return false
	}

	if n.hasValue() && !equal(nStore.mustGet(n.slotIndex()), oStore.mustGet(o.slotIndex())) {
		return false
	}

	// bitsets are equal, the child arrays have the same length
	for i := range n.children {
		if !n.children[i].equalRec(&o.children[i], nStore, oStore) {
			return false
		}
	}
	return true
}
