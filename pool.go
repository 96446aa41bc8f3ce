// Copyright (c) 2025 The triemap Authors
// SPDX-License-Identifier: MIT

package triemap

// slicePool recycles the densely packed child arrays of the trie
// nodes. Every structural edit resizes some node's array by one
// element; without reuse each edit would allocate a fresh array and
// garbage the old one, which dominates the amortized cost on tries
// with wide fan-out near the root.
//
// One free list per exact array length, 1..maxFanout. Acquire and
// release use the same bucket index, so a released array of length n
// always serves the next request for length n. Zero length arrays are
// never pooled, nil stands in for them.
//
// The pool is owned by exactly one Map and lives and dies with it,
// it is never shared between instances. Single writer, plain counters.
type slicePool[V any] struct {
	buckets [maxFanout + 1][][]node[V]

	// statistics for debugging and tests
	allocated int // arrays made fresh
	recycled  int // acquires served from a free list
	released  int // arrays returned to the pool
}

// poolStats is a snapshot of the pool counters.
type poolStats struct {
	allocated int
	recycled  int
	released  int
	held      int // arrays currently sitting in free lists
}

// acquire returns a zeroed array of exactly n nodes, preferring a
// recycled array from the matching free list.
//
// A nil pool degrades to plain allocation.
func (p *slicePool[V]) acquire(n int) []node[V] {
	if n == 0 {
		return nil
	}
	if p == nil {
		return make([]node[V], n)
	}
	if n > maxFanout {
		panic("triemap: logic flaw, child array longer than 256")
	}

	if last := len(p.buckets[n]) - 1; last >= 0 {
		s := p.buckets[n][last]
		p.buckets[n][last] = nil // clear the tail item
		p.buckets[n] = p.buckets[n][:last]
		p.recycled++
		return s
	}

	p.allocated++
	return make([]node[V], n)
}

// release files s into the free list for its exact length. The array
// is zeroed first, pooled memory must never pin subtrees or values
// for the GC; this also keeps the acquire contract cheap, recycled
// arrays come back already zeroed.
//
// A nil pool discards the array.
func (p *slicePool[V]) release(s []node[V]) {
	if p == nil || len(s) == 0 {
		return
	}
	if len(s) > maxFanout {
		panic("triemap: logic flaw, child array longer than 256")
	}

	clear(s)
	p.buckets[len(s)] = append(p.buckets[len(s)], s)
	p.released++
}

// drop empties all free lists, the held arrays become garbage.
func (p *slicePool[V]) drop() {
	if p == nil {
		return
	}
	clear(p.buckets[:])
}

// stats returns a snapshot of the pool counters.
func (p *slicePool[V]) stats() (s poolStats) {
	if p == nil {
		return
	}
	s.allocated = p.allocated
	s.recycled = p.recycled
	s.released = p.released
	for _, bucket := range p.buckets {
		s.held += len(bucket)
	}
	return
}
