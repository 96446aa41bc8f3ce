// Copyright (c) 2025 The triemap Authors
// SPDX-License-Identifier: MIT

package triemap

import (
	"fmt"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// valueStore is the growable slot array behind a Map. Every live key
// owns exactly one slot; the slot index is a stable handle held by
// the terminating trie node and survives any restructuring of the
// tree around it.
//
// Occupancy is tracked in a dynamic bitset, bit i is set iff slots[i]
// holds a live value. Freed slots go onto a LIFO free list and the
// most recently freed index is reused first, so insert/remove churn
// on the same keys never grows the array.
type valueStore[V any] struct {
	slots []V

	// live is lazily created on the first alloc, a zero store is valid
	live *bitset.BitSet

	// freeList is a stack, alloc pops from the top
	freeList []int
}

// newValueStore returns a store with pre-sized slot storage.
func newValueStore[V any](capacity int) valueStore[V] {
	if capacity <= 0 {
		return valueStore[V]{}
	}
	return valueStore[V]{
		slots: make([]V, 0, capacity),
		live:  bitset.New(uint(capacity)),
	}
}

// alloc stores val and returns its slot index, reusing the most
// recently freed slot if one exists, else appending.
func (s *valueStore[V]) alloc(val V) int {
	if s.live == nil {
		s.live = bitset.New(0)
	}

	if last := len(s.freeList) - 1; last >= 0 {
		i := s.freeList[last]
		s.freeList = s.freeList[:last]
		s.slots[i] = val
		s.live.Set(uint(i))
		return i
	}

	s.slots = append(s.slots, val)
	i := len(s.slots) - 1
	s.live.Set(uint(i))
	return i
}

// free empties slot i and pushes the index onto the free list.
// The slot is zeroed, dead slots must not pin values for the GC.
func (s *valueStore[V]) free(i int) {
	var zero V
	s.slots[i] = zero
	s.live.Clear(uint(i))
	s.freeList = append(s.freeList, i)
}

// get returns the value at slot i along with an ok code.
func (s *valueStore[V]) get(i int) (val V, ok bool) {
	if s.live == nil || !s.live.Test(uint(i)) {
		return val, false
	}
	return s.slots[i], true
}

// mustGet returns the value at slot i, it panics on a dead slot.
// Only used where the node invariant guarantees liveness.
func (s *valueStore[V]) mustGet(i int) V {
	if s.live == nil || !s.live.Test(uint(i)) {
		panic(fmt.Sprintf("triemap: logic flaw, slot %d is dead", i))
	}
	return s.slots[i]
}

// set overwrites slot i in place, the handle stays valid.
func (s *valueStore[V]) set(i int, val V) {
	s.slots[i] = val
}

// count returns the number of live slots.
func (s *valueStore[V]) count() int {
	if s.live == nil {
		return 0
	}
	return int(s.live.Count())
}

// transform applies fn to every live slot, in slot order.
func (s *valueStore[V]) transform(fn func(V) V) {
	if s.live == nil {
		return
	}
	for i, ok := s.live.NextSet(0); ok; i, ok = s.live.NextSet(i + 1) {
		s.slots[i] = fn(s.slots[i])
	}
}

// clone deep copies the store. cloneFn, if non-nil, is applied per
// live slot; dead slots stay zero in the copy.
func (s *valueStore[V]) clone(cloneFn func(V) V) valueStore[V] {
	c := valueStore[V]{}
	if s.live == nil {
		return c
	}

	c.slots = make([]V, len(s.slots))
	if cloneFn == nil {
		copy(c.slots, s.slots)
	} else {
		for i, ok := s.live.NextSet(0); ok; i, ok = s.live.NextSet(i + 1) {
			c.slots[i] = cloneFn(s.slots[i])
		}
	}

	c.freeList = slices.Clone(s.freeList)
	c.live = s.live.Clone()
	return c
}

// compact releases unused capacity: trailing dead slots are cut off,
// the free list keeps only indices still inside the shortened array
// and the occupancy bitmap is shrunk to match. Live slots never move,
// handles held by nodes stay valid.
func (s *valueStore[V]) compact() {
	if s.live == nil || s.live.Count() == 0 {
		*s = valueStore[V]{}
		return
	}

	// index one past the highest live slot
	n := 0
	for i, ok := s.live.NextSet(0); ok; i, ok = s.live.NextSet(i + 1) {
		n = int(i) + 1
	}

	slots := make([]V, n)
	copy(slots, s.slots[:n])
	s.slots = slots

	kept := make([]int, 0, len(s.freeList))
	for _, i := range s.freeList {
		if i < n {
			kept = append(kept, i)
		}
	}
	s.freeList = kept

	s.live.Shrink(uint(n - 1))
}
