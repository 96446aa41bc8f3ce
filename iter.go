// Copyright (c) 2025 The triemap Authors
// SPDX-License-Identifier: MIT

package triemap

import "iter"

// frame is one level of the explicit DFS stack: the node, a cursor
// over the byte values still to probe (may legally reach 256) and a
// flag for whether the node's own value has been yielded.
type frame[V any] struct {
	n         *node[V]
	next      uint
	valueDone bool
}

// allFrom returns an iterator over the subtree rooted at seed, with
// seedPath as the accumulated key prefix. The walk is iterative, an
// explicit frame stack instead of recursion, and the path buffer
// grows and shrinks in lock-step with the frames: push a frame,
// append its edge byte; pop a frame, truncate one byte.
//
// Children are visited in ascending byte order, so the yielded keys
// are in strictly ascending byte-lexicographic order and a node's own
// value comes before anything in its subtree (shorter key first).
func (m *Map[K, V]) allFrom(seed *node[V], seedPath []byte) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		clone := keyIsByteSlice[K]()

		var fixed [32]frame[V]
		stack := append(fixed[:0], frame[V]{n: seed})

		path := make([]byte, 0, max(64, len(seedPath)+32))
		path = append(path, seedPath...)

		for len(stack) > 0 {
			top := &stack[len(stack)-1]

			if !top.valueDone {
				top.valueDone = true
				if top.n.hasValue() {
					if !yield(keyOf[K](path, clone), m.store.mustGet(top.n.slotIndex())) {
						return
					}
				}
			}

			b, ok := top.n.edges.NextSet(top.next)
			if !ok {
				// subtree exhausted, pop the frame and its path byte
				stack = stack[:len(stack)-1]
				if len(stack) > 0 {
					path = path[:len(path)-1]
				}
				continue
			}
			top.next = uint(b) + 1

			path = append(path, b)
			stack = append(stack, frame[V]{n: top.n.mustChild(b)})
		}
	}
}

// All returns an iterator over all key-value pairs in ascending
// byte-lexicographic key order.
//
// The iterator may be used in a for/range loop. The map must not be
// mutated while the iteration runs; collect the keys first and
// revisit them if edits are needed.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return m.allFrom(&m.root, nil)
}

// Keys returns an iterator over all keys in ascending order.
//
// The iterator may be used in a for/range loop.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for key := range m.All() {
			if !yield(key) {
				return
			}
		}
	}
}

// Values returns an iterator over all values, ordered by their keys.
//
// The iterator may be used in a for/range loop.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, val := range m.All() {
			if !yield(val) {
				return
			}
		}
	}
}

// Prefixed returns an iterator over the key-value pairs whose keys
// start with prefix, in the same ascending order as All. The sequence
// is empty if no key starts with prefix.
//
// The iterator is lazy, there is no upfront subtree pass; use
// CountPrefixed for an exact count.
//
// The iterator may be used in a for/range loop.
func (m *Map[K, V]) Prefixed(prefix K) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		pb := []byte(prefix)
		n := m.findNode(pb)
		if n == nil {
			return
		}
		m.allFrom(n, pb)(yield)
	}
}

// CountPrefixed returns the exact number of keys starting with
// prefix, an eager O(subtree) walk.
func (m *Map[K, V]) CountPrefixed(prefix K) int {
	n := m.findNode([]byte(prefix))
	if n == nil {
		return 0
	}
	return n.countRec()
}

// PrefixMatches returns all entries whose keys start with prefix, in
// ascending key order, eagerly collected.
func (m *Map[K, V]) PrefixMatches(prefix K) []Entry[K, V] {
	var entries []Entry[K, V]
	for key, val := range m.Prefixed(prefix) {
		entries = append(entries, Entry[K, V]{Key: key, Value: val})
	}
	return entries
}
