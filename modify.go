// Copyright (c) 2025 The triemap Authors
// SPDX-License-Identifier: MIT

package triemap

// Insert adds or overwrites the value for key. An overwrite reuses
// the existing value slot in place, the tree and the size counter are
// untouched; a new key expands the path byte by byte and allocates a
// slot.
func (m *Map[K, V]) Insert(key K, val V) {
	m.init()

	n := &m.root
	for _, b := range []byte(key) {
		if child := n.childAddr(b); child != nil {
			n = child
			continue
		}
		n = n.insertChild(b, m.pool)
	}

	if n.hasValue() {
		m.store.set(n.slotIndex(), val)
		return
	}

	n.setSlot(m.store.alloc(val))
	m.size++
}

// GetOrInsert returns the value for key if present, otherwise inserts
// val and returns it. The inserted result reports which of the two
// happened. A present key is never mutated, the rejected val simply
// stays with the caller.
func (m *Map[K, V]) GetOrInsert(key K, val V) (actual V, inserted bool) {
	m.init()

	n := &m.root
	for _, b := range []byte(key) {
		if child := n.childAddr(b); child != nil {
			n = child
			continue
		}
		n = n.insertChild(b, m.pool)
	}

	if n.hasValue() {
		return m.store.mustGet(n.slotIndex()), false
	}

	n.setSlot(m.store.alloc(val))
	m.size++
	return val, true
}

// GetOrInsertFunc is GetOrInsert with a lazily built value, fn is
// only called when key is absent.
func (m *Map[K, V]) GetOrInsertFunc(key K, fn func() V) (actual V, inserted bool) {
	m.init()

	n := &m.root
	for _, b := range []byte(key) {
		if child := n.childAddr(b); child != nil {
			n = child
			continue
		}
		n = n.insertChild(b, m.pool)
	}

	if n.hasValue() {
		return m.store.mustGet(n.slotIndex()), false
	}

	val := fn()
	n.setSlot(m.store.alloc(val))
	m.size++
	return val, true
}

// Update or insert the value for key with the result of the callback.
// The callback is handed the old value and a found code; the new
// value is stored and returned.
func (m *Map[K, V]) Update(key K, cb func(val V, found bool) V) (newVal V) {
	m.init()

	n := &m.root
	for _, b := range []byte(key) {
		if child := n.childAddr(b); child != nil {
			n = child
			continue
		}
		n = n.insertChild(b, m.pool)
	}

	if n.hasValue() {
		idx := n.slotIndex()
		newVal = cb(m.store.mustGet(idx), true)
		m.store.set(idx, newVal)
		return newVal
	}

	var zero V
	newVal = cb(zero, false)
	n.setSlot(m.store.alloc(newVal))
	m.size++
	return newVal
}

// Modify the value for key with one callback, covering insert, update
// and delete in a single walk:
//
//	Operation | cb-input        | cb-return       | Modify-return
//	---------------------------------------------------------------
//	No-op:    | (zero,   false) | (_,      true)  | (zero,   false)
//	Insert:   | (zero,   false) | (newVal, false) | (newVal, false)
//	Update:   | (oldVal, true)  | (newVal, false) | (oldVal, false)
//	Delete:   | (oldVal, true)  | (_,      true)  | (oldVal, true)
//
// The delete branch also prunes the dead path, like RemoveAndPrune.
// The no-op branch leaves the tree untouched, the path is not
// expanded just to find out the key is absent.
func (m *Map[K, V]) Modify(key K, cb func(val V, found bool) (_ V, del bool)) (_ V, deleted bool) {
	var zero V
	m.init()

	kb := []byte(key)

	// record the path, the delete branch purges dead nodes upward
	var fixed [32]*node[V]
	stack := fixed[:0]

	n := &m.root
	for depth, b := range kb {
		stack = append(stack, n)

		child := n.childAddr(b)
		if child == nil {
			// key is absent, ask the callback what to do
			newVal, del := cb(zero, false)
			if del {
				return zero, false // no-op
			}

			// insert, expand the remaining path
			for _, c := range kb[depth:] {
				n = n.insertChild(c, m.pool)
			}
			n.setSlot(m.store.alloc(newVal))
			m.size++
			return newVal, false
		}
		n = child
	}

	if !n.hasValue() {
		// terminal node exists but key is absent
		newVal, del := cb(zero, false)
		if del {
			return zero, false // no-op
		}
		n.setSlot(m.store.alloc(newVal))
		m.size++
		return newVal, false
	}

	idx := n.slotIndex()
	oldVal := m.store.mustGet(idx)
	newVal, del := cb(oldVal, true)
	if !del {
		// update in place
		m.store.set(idx, newVal)
		return oldVal, false
	}

	// delete, free the slot and prune the dead chain upward
	m.store.free(idx)
	n.clearSlot()
	m.size--
	m.prunePath(stack, kb)
	return oldVal, true
}

// TransformValues applies fn to every live value, in unspecified
// order. The keys and the tree are untouched, this is a sweep over
// the value store, not a traversal.
func (m *Map[K, V]) TransformValues(fn func(V) V) {
	m.store.transform(fn)
}
