// Copyright (c) 2025 The triemap Authors
// SPDX-License-Identifier: MIT

package triemap

// Cloner is an interface that enables deep cloning of values of type V.
// If a value implements Cloner[V], Map methods such as Clone, Inserted,
// Removed, WithoutPrefix and WithPrefixOnly will use its Clone method
// to perform deep copies.
type Cloner[V any] interface {
	Clone() V
}

// cloneFnFactory returns the per-value clone function.
// If V implements Cloner[V], the returned function performs a deep
// copy using Clone(), otherwise it returns nil and values are copied
// by plain assignment.
func cloneFnFactory[V any]() func(V) V {
	var zero V
	// you can't assert directly on a type parameter
	if _, ok := any(zero).(Cloner[V]); ok {
		return cloneVal[V]
	}
	return nil
}

// cloneVal returns a deep clone of val by calling its Clone method when
// val implements Cloner[V]. If val does not implement Cloner[V] or the
// asserted Cloner is nil, val is returned unchanged.
func cloneVal[V any](val V) V {
	// you can't assert directly on a type parameter
	c, ok := any(val).(Cloner[V])
	if !ok || c == nil {
		return val
	}
	return c.Clone()
}

// Clone returns a deep copy of the map. Values are deep cloned when V
// implements Cloner[V], otherwise copied by assignment. The clone
// owns its own pool and store, nothing is shared, mutating one map
// never affects the other.
func (m *Map[K, V]) Clone() *Map[K, V] {
	if m == nil {
		return nil
	}

	c := New[K, V]()
	c.size = m.size
	c.store = m.store.clone(cloneFnFactory[V]())
	c.root.cloneRec(&m.root, c.pool)
	return c
}

// cloneRec deep copies the subtree of src into n. Value slots are
// stable handles and the cloned store keeps the same indices, so the
// handles copy over verbatim. Child arrays come from the clone's own
// pool.
func (n *node[V]) cloneRec(src *node[V], pool *slicePool[V]) {
	n.edges = src.edges
	n.slot = src.slot

	if len(src.children) == 0 {
		n.children = nil
		return
	}

	n.children = pool.acquire(len(src.children))
	for i := range src.children {
		n.children[i].cloneRec(&src.children[i], pool)
	}
}

// Inserted returns a copy of the map with key inserted or
// overwritten. The receiver is unchanged.
func (m *Map[K, V]) Inserted(key K, val V) *Map[K, V] {
	c := m.Clone()
	c.Insert(key, val)
	return c
}

// Removed returns a copy of the map with key removed and the dead
// path pruned. The receiver is unchanged.
func (m *Map[K, V]) Removed(key K) *Map[K, V] {
	c := m.Clone()
	c.RemoveAndPrune(key)
	return c
}

// WithoutPrefix returns a copy of the map with every key starting
// with prefix removed. The receiver is unchanged.
func (m *Map[K, V]) WithoutPrefix(prefix K) *Map[K, V] {
	c := m.Clone()
	c.RemovePrefixMatches(prefix)
	return c
}

// WithPrefixOnly returns a new map holding only the entries whose
// keys start with prefix. Values are deep cloned when V implements
// Cloner[V]. The receiver is unchanged.
func (m *Map[K, V]) WithPrefixOnly(prefix K) *Map[K, V] {
	c := New[K, V]()
	cloneFn := cloneFnFactory[V]()

	for key, val := range m.Prefixed(prefix) {
		if cloneFn != nil {
			val = cloneFn(val)
		}
		c.Insert(key, val)
	}
	return c
}
