// Copyright (c) 2025 The triemap Authors
// SPDX-License-Identifier: MIT

package triemap

import (
	"fmt"

	"github.com/triemap/triemap/internal/bitset"
)

// maxFanout is the branching factor of a node, one child per possible
// byte value.
const maxFanout = 256

// node is a level node in the byte trie.
//
// Instead of a fixed 256 slot child array per node, the present byte
// edges are tracked in a 256 bit set and the children live in a
// popcount-compressed slice: the child for byte b sits at slice index
// Rank(b), the count of set bits below b. Most nodes carry a handful
// of edges out of 256 possible, so this trades a popcount per step
// for a large memory saving and keeps siblings contiguous, the same
// technique hash-array-mapped tries use.
//
// A node with a terminating key holds a handle into the value store,
// values are never stored inline, the store gives them a stable index
// that survives any restructuring of the tree.
type node[V any] struct {
	edges bitset.BitSet256 // one bit per present byte edge

	// children is the rank ordered dense array of subtrees,
	// len(children) == edges.Size(), storage comes from the pool
	children []node[V]

	// slot is the biased value store handle, 0 means no value
	// terminates here, i+1 refers to store slot i. The bias keeps
	// the zero node a valid empty node without a constructor.
	slot int
}

func (n *node[V]) hasValue() bool { return n.slot != 0 }
func (n *node[V]) slotIndex() int { return n.slot - 1 }
func (n *node[V]) setSlot(i int)  { n.slot = i + 1 }
func (n *node[V]) clearSlot()     { n.slot = 0 }

// isEmpty returns true if the node is dead, no value and no children.
func (n *node[V]) isEmpty() bool {
	return n.slot == 0 && len(n.children) == 0
}

// childAddr returns the address of the child for byte b, or nil if
// the edge does not exist.
func (n *node[V]) childAddr(b byte) *node[V] {
	if !n.edges.Test(b) {
		return nil
	}
	return &n.children[n.edges.Rank(b)]
}

// mustChild returns the address of the child for byte b.
// It panics if the edge does not exist, only used where the node
// invariant guarantees presence.
func (n *node[V]) mustChild(b byte) *node[V] {
	if !n.edges.Test(b) {
		panic(fmt.Sprintf("triemap: logic flaw, no child for byte 0x%02x", b))
	}
	return &n.children[n.edges.Rank(b)]
}

// insertChild grows the child array by one, installing a fresh empty
// node for byte b at its rank position, and returns its address.
//
// The caller must know that edge b is absent. The old array is copied
// around the insertion point into a pooled array one longer, then
// released.
func (n *node[V]) insertChild(b byte, pool *slicePool[V]) *node[V] {
	rnk := n.edges.Rank(b)

	old := n.children
	next := pool.acquire(len(old) + 1)
	copy(next[:rnk], old[:rnk])
	copy(next[rnk+1:], old[rnk:])
	// next[rnk] is the fresh empty node, acquire returns zeroed storage
	pool.release(old)

	n.children = next
	n.edges.Set(b)
	return &next[rnk]
}

// removeChild shrinks the child array by one, dropping the entry for
// byte b, the mirror image of insertChild.
//
// The caller must know that edge b is present and that its subtree is
// dead, the dropped entry owns nothing.
func (n *node[V]) removeChild(b byte, pool *slicePool[V]) {
	rnk := n.edges.Rank(b)

	old := n.children
	next := pool.acquire(len(old) - 1)
	copy(next[:rnk], old[:rnk])
	copy(next[rnk:], old[rnk+1:])
	pool.release(old)

	n.children = next
	n.edges.Clear(b)
}

// removeChildren rebuilds the child array once with all dead byte
// edges dropped, a single reallocation instead of one per edge.
// dead must be ascending and a subset of the present edges.
func (n *node[V]) removeChildren(dead []uint8, pool *slicePool[V]) {
	if len(dead) == 0 {
		return
	}

	var buf [maxFanout]uint8
	edges := n.edges.AsSlice(buf[:0])

	old := n.children
	next := pool.acquire(len(old) - len(dead))

	// edges and dead are both ascending, one merge pass
	di, wi := 0, 0
	for ri, b := range edges {
		if di < len(dead) && dead[di] == b {
			di++
			continue
		}
		next[wi] = old[ri]
		wi++
	}

	for _, b := range dead {
		n.edges.Clear(b)
	}

	pool.release(old)
	n.children = next
}

// releaseRec hands every child array beneath n back to the pool and
// frees every live value slot, post-order, leaving n dead. Used when
// a whole subtree is cut out of the tree.
func (n *node[V]) releaseRec(pool *slicePool[V], store *valueStore[V]) {
	for i := range n.children {
		n.children[i].releaseRec(pool, store)
	}
	if n.hasValue() {
		store.free(n.slotIndex())
		n.clearSlot()
	}
	pool.release(n.children)
	n.children = nil
	n.edges = bitset.BitSet256{}
}

// hasValueRec reports whether a live value terminates at or below n.
// Early exit on the first hit, cheap on healthy trees, bounded by the
// subtree size on heavily tombstoned ones.
func (n *node[V]) hasValueRec() bool {
	if n.hasValue() {
		return true
	}
	for i := range n.children {
		if n.children[i].hasValueRec() {
			return true
		}
	}
	return false
}

// countRec returns the number of live values at or below n.
func (n *node[V]) countRec() (cnt int) {
	if n.hasValue() {
		cnt = 1
	}
	for i := range n.children {
		cnt += n.children[i].countRec()
	}
	return
}

// treeStats is the accounting of a (sub)tree, used by dump and tests.
type treeStats struct {
	nodes    int // reachable nodes, including the subtree root
	values   int // nodes holding a live value
	leaves   int // nodes without children
	maxDepth int // deepest node below the subtree root
}

// statsRec, rec-descent accounting of the subtree under n.
func (n *node[V]) statsRec(depth int) (s treeStats) {
	s.nodes = 1
	if n.hasValue() {
		s.values = 1
	}
	if len(n.children) == 0 {
		s.leaves = 1
	}
	s.maxDepth = depth

	for i := range n.children {
		cs := n.children[i].statsRec(depth + 1)
		s.nodes += cs.nodes
		s.values += cs.values
		s.leaves += cs.leaves
		s.maxDepth = max(s.maxDepth, cs.maxDepth)
	}
	return
}
