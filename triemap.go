// Copyright (c) 2025 The triemap Authors
// SPDX-License-Identifier: MIT

package triemap

import (
	"reflect"
	"slices"
)

// Bytes is the key constraint: any type that can be losslessly viewed
// as a byte sequence. Keys are compared byte for byte, there is no
// collation and no unicode awareness.
type Bytes interface{ ~string | ~[]byte }

// Entry is a key/value pair, the element type of the eager query and
// removal results.
type Entry[K Bytes, V any] struct {
	Key   K
	Value V
}

// Map is an associative container keyed by byte sequences, organized
// as a bitmap-compressed byte trie with payload V.
//
// Lookup, insert and delete cost O(len(key)) independent of the
// number of entries, and all iteration is in ascending
// byte-lexicographic key order. Keys sharing prefixes share their
// path nodes, which makes prefix queries (StartsWith, Prefixed,
// RemovePrefixMatches) native operations instead of scans.
//
// The zero value is ready to use.
//
// A Map must not be modified concurrently, there is no internal
// locking. Multiple concurrent readers are fine as long as nobody
// writes; mutating while an iteration is running is not supported,
// collect the keys first and revisit them instead.
type Map[K Bytes, V any] struct {
	// root owns the whole tree, it is never removed, the empty key
	// terminates here
	root node[V]

	// store holds the values, nodes reference slots by stable index
	store valueStore[V]

	// pool recycles child arrays across structural edits, owned by
	// exactly this Map, created lazily on first structural insert
	pool *slicePool[V]

	// size is the number of live keys
	size int
}

// New returns an empty Map. Plain `new(Map[K, V])` or a zero value
// works just as well.
func New[K Bytes, V any]() *Map[K, V] {
	return &Map[K, V]{pool: new(slicePool[V])}
}

// NewWithCapacity returns an empty Map with value storage pre-sized
// for capacity entries.
func NewWithCapacity[K Bytes, V any](capacity int) *Map[K, V] {
	return &Map[K, V]{
		store: newValueStore[V](capacity),
		pool:  new(slicePool[V]),
	}
}

// init makes the zero value usable, the pool comes into existence on
// the first structural mutation.
func (m *Map[K, V]) init() {
	if m.pool == nil {
		m.pool = new(slicePool[V])
	}
}

// findNode returns the node reached by consuming all bytes of path,
// or nil if the walk falls off the tree.
func (m *Map[K, V]) findNode(path []byte) *node[V] {
	n := &m.root
	for _, b := range path {
		if n = n.childAddr(b); n == nil {
			return nil
		}
	}
	return n
}

// Get returns the value for key along with an ok code.
func (m *Map[K, V]) Get(key K) (val V, ok bool) {
	n := m.findNode([]byte(key))
	if n == nil || !n.hasValue() {
		return val, false
	}
	return m.store.mustGet(n.slotIndex()), true
}

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool {
	n := m.findNode([]byte(key))
	return n != nil && n.hasValue()
}

// StartsWith reports whether at least one key in the map starts with
// prefix. Structural nodes left behind by tombstone removals don't
// count, only live values do.
func (m *Map[K, V]) StartsWith(prefix K) bool {
	n := m.findNode([]byte(prefix))
	return n != nil && n.hasValueRec()
}

// Len returns the number of live keys.
func (m *Map[K, V]) Len() int {
	return m.size
}

// IsEmpty reports whether the map holds no keys.
func (m *Map[K, V]) IsEmpty() bool {
	return m.size == 0
}

// Clear resets the map to an empty root and discards all nodes,
// values and pooled arrays. The map stays usable.
func (m *Map[K, V]) Clear() {
	m.root = node[V]{}
	m.store = valueStore[V]{}
	m.pool.drop()
	m.size = 0
}

// Compact releases unused capacity: trailing dead value slots are cut
// off and all pooled child arrays are dropped. Live entries and their
// slot handles are untouched. The value store never shrinks on its
// own, this is the explicit pass.
func (m *Map[K, V]) Compact() {
	m.store.compact()
	m.pool.drop()
}

// keyIsByteSlice reports whether K's underlying type is a byte slice,
// decided once per iterator to pick the cloning yield path.
func keyIsByteSlice[K Bytes]() bool {
	return reflect.TypeFor[K]().Kind() == reflect.Slice
}

// keyOf converts an accumulated path into a key of type K. Iterators
// reuse their path buffer, so ~[]byte keys are cloned before the
// conversion; for ~string keys the conversion itself copies.
func keyOf[K Bytes](path []byte, clone bool) K {
	if clone {
		return K(slices.Clone(path))
	}
	return K(path)
}
