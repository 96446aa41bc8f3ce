// Copyright (c) 2025 The triemap Authors
// SPDX-License-Identifier: MIT

package triemap

import (
	"iter"
	"slices"
)

// Remove deletes key and returns its value along with an ok code.
//
// This is the tombstone variant: the value slot is freed but the
// structural nodes along the path stay in place for cheap reinsertion.
// Use RemoveAndPrune or Prune to reclaim dead structure.
func (m *Map[K, V]) Remove(key K) (val V, ok bool) {
	n := m.findNode([]byte(key))
	if n == nil || !n.hasValue() {
		return val, false
	}

	idx := n.slotIndex()
	val = m.store.mustGet(idx)
	m.store.free(idx)
	n.clearSlot()
	m.size--
	return val, true
}

// RemoveAndPrune deletes key like Remove and additionally removes the
// chain of nodes left dead by the deletion, walking back from the
// terminal node toward the root and stopping at the first ancestor
// still alive. The root itself is never removed.
func (m *Map[K, V]) RemoveAndPrune(key K) (val V, ok bool) {
	m.init()

	kb := []byte(key)

	// record the nodes on the path, needed to purge dead nodes
	// after the deletion
	var fixed [32]*node[V]
	stack := fixed[:0]

	n := &m.root
	for _, b := range kb {
		stack = append(stack, n)
		if n = n.childAddr(b); n == nil {
			return val, false
		}
	}
	if !n.hasValue() {
		return val, false
	}

	idx := n.slotIndex()
	val = m.store.mustGet(idx)
	m.store.free(idx)
	n.clearSlot()
	m.size--

	m.prunePath(stack, kb)
	return val, true
}

// prunePath walks the recorded path backwards and removes now-dead
// nodes from their parents, stopping at the first ancestor still
// alive. stack[d] is the node entered before consuming key[d].
//
// Removing an edge only rebuilds the parent's child array, pointers
// recorded above the parent stay valid during the backtracking.
func (m *Map[K, V]) prunePath(stack []*node[V], key []byte) {
	for d := len(stack) - 1; d >= 0; d-- {
		parent := stack[d]
		if !parent.mustChild(key[d]).isEmpty() {
			return
		}
		parent.removeChild(key[d], m.pool)
	}
}

// Prune removes all dead nodes (no value, no children) from the whole
// tree and returns how many were removed. Tombstone removals leave
// such nodes behind; a pruned tree holds no dead node except possibly
// the root.
func (m *Map[K, V]) Prune() int {
	m.init()
	return m.root.pruneRec(m.pool)
}

// pruneRec, post-order rec-descent prune of the subtree under n.
//
// The dead edges of a node are collected first and dropped with a
// single array rebuild, one reallocation per node instead of one per
// removed edge.
func (n *node[V]) pruneRec(pool *slicePool[V]) (removed int) {
	var edgeBuf, deadBuf [maxFanout]uint8
	edges := n.edges.AsSlice(edgeBuf[:0])

	dead := deadBuf[:0]
	for i, b := range edges {
		child := &n.children[i]
		removed += child.pruneRec(pool)
		if child.isEmpty() {
			dead = append(dead, b)
		}
	}

	removed += len(dead)
	n.removeChildren(dead, pool)
	return removed
}

// RemovePrefixMatches deletes every key starting with prefix and
// returns the removed entries in ascending key order.
//
// The whole subtree is excised at its attachment edge: all value
// slots below it are freed, all child arrays go back to the pool and
// the dead chain up to the root is pruned. With an empty prefix this
// drains the map.
func (m *Map[K, V]) RemovePrefixMatches(prefix K) []Entry[K, V] {
	m.init()

	pb := []byte(prefix)

	var fixed [32]*node[V]
	stack := fixed[:0]

	n := &m.root
	for _, b := range pb {
		stack = append(stack, n)
		if n = n.childAddr(b); n == nil {
			return nil
		}
	}

	// collect before cutting, the entries are read out of the subtree
	removed := m.PrefixMatches(prefix)

	n.releaseRec(m.pool, &m.store)
	m.size -= len(removed)

	m.prunePath(stack, pb)
	return removed
}

// Retain keeps only the entries for which pred returns true. The keys
// are collected first and the failing ones removed afterwards,
// mutation never runs inside an active traversal.
func (m *Map[K, V]) Retain(pred func(key K, val V) bool) {
	var doomed []K
	for key, val := range m.All() {
		if !pred(key, val) {
			doomed = append(doomed, key)
		}
	}
	for _, key := range doomed {
		m.RemoveAndPrune(key)
	}
}

// Drain returns an iterator that removes and yields every entry in
// ascending key order. Breaking early leaves the remaining entries in
// the map; running to completion leaves the map empty and pruned.
//
// The iterator may be used in a for/range loop.
func (m *Map[K, V]) Drain() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		keys := slices.Collect(m.Keys())
		for _, key := range keys {
			val, ok := m.Remove(key)
			if !ok {
				continue
			}
			if !yield(key, val) {
				return
			}
		}
		m.Prune()
	}
}
