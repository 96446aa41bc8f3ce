// Copyright (c) 2025 The triemap Authors
// SPDX-License-Identifier: MIT

package triemap

import (
	"bytes"
	"iter"
)

// keyCompare orders two keys byte-lexicographically.
func keyCompare[K Bytes](a, b K) int {
	return bytes.Compare([]byte(a), []byte(b))
}

// mergeSeq merges two ascending sequences into one ascending
// sequence. The emit flags select which key classes are yielded:
// keys only in a, keys only in b, keys in both (a's value wins).
func mergeSeq[K Bytes, V any](a, b iter.Seq2[K, V], emitA, emitB, emitBoth bool) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		nextA, stopA := iter.Pull2(a)
		defer stopA()
		nextB, stopB := iter.Pull2(b)
		defer stopB()

		ka, va, okA := nextA()
		kb, vb, okB := nextB()

		for okA && okB {
			switch c := keyCompare(ka, kb); {
			case c < 0:
				if emitA && !yield(ka, va) {
					return
				}
				ka, va, okA = nextA()
			case c > 0:
				if emitB && !yield(kb, vb) {
					return
				}
				kb, vb, okB = nextB()
			default:
				if emitBoth && !yield(ka, va) {
					return
				}
				ka, va, okA = nextA()
				kb, vb, okB = nextB()
			}
		}

		for okA {
			if emitA && !yield(ka, va) {
				return
			}
			ka, va, okA = nextA()
		}
		for okB {
			if emitB && !yield(kb, vb) {
				return
			}
			kb, vb, okB = nextB()
		}
	}
}

// Union returns an iterator over the keys of both maps in ascending
// order. For keys present in both, the receiver's value wins.
//
// The iterator may be used in a for/range loop; both maps must stay
// unmodified while it runs.
func (m *Map[K, V]) Union(o *Map[K, V]) iter.Seq2[K, V] {
	return mergeSeq(m.All(), o.All(), true, true, true)
}

// Intersect returns an iterator over the keys present in both maps,
// in ascending order, with the receiver's values.
//
// The iterator may be used in a for/range loop.
func (m *Map[K, V]) Intersect(o *Map[K, V]) iter.Seq2[K, V] {
	return mergeSeq(m.All(), o.All(), false, false, true)
}

// Difference returns an iterator over the entries whose keys are in
// the receiver but not in o, in ascending order.
//
// The iterator may be used in a for/range loop.
func (m *Map[K, V]) Difference(o *Map[K, V]) iter.Seq2[K, V] {
	return mergeSeq(m.All(), o.All(), true, false, false)
}

// SymmetricDifference returns an iterator over the entries whose keys
// are in exactly one of the two maps, in ascending order, each with
// the value from its own map.
//
// The iterator may be used in a for/range loop.
func (m *Map[K, V]) SymmetricDifference(o *Map[K, V]) iter.Seq2[K, V] {
	return mergeSeq(m.All(), o.All(), true, true, false)
}

// IsSubsetOf reports whether every key of the receiver is also a key
// of o. Values are not compared. The empty map is a subset of every
// map.
func (m *Map[K, V]) IsSubsetOf(o *Map[K, V]) bool {
	if m.size > o.size {
		return false
	}
	for key := range m.Keys() {
		if !o.Contains(key) {
			return false
		}
	}
	return true
}

// IsProperSubsetOf reports whether the receiver is a subset of o and
// o holds at least one additional key.
func (m *Map[K, V]) IsProperSubsetOf(o *Map[K, V]) bool {
	return m.size < o.size && m.IsSubsetOf(o)
}

// Merge inserts all entries of o into the receiver; for keys present
// in both, o's value wins. Merging a map with itself is a no-op.
func (m *Map[K, V]) Merge(o *Map[K, V]) {
	if m == o {
		return
	}
	for key, val := range o.All() {
		m.Insert(key, val)
	}
}

// MergeWith inserts all entries of o into the receiver; conflicts are
// settled by resolve, handed the key, the receiver's value and o's
// value. Merging a map with itself is a no-op.
func (m *Map[K, V]) MergeWith(o *Map[K, V], resolve func(key K, own, other V) V) {
	if m == o {
		return
	}
	for key, otherVal := range o.All() {
		if ownVal, ok := m.Get(key); ok {
			m.Insert(key, resolve(key, ownVal, otherVal))
			continue
		}
		m.Insert(key, otherVal)
	}
}

// Collect builds a Map from an iterator sequence, the byte-keyed
// sibling of maps.Collect.
func Collect[K Bytes, V any](seq iter.Seq2[K, V]) *Map[K, V] {
	m := New[K, V]()
	m.InsertSeq(seq)
	return m
}

// InsertSeq inserts all key-value pairs from seq, the byte-keyed
// sibling of maps.Insert. seq must not be backed by the receiver
// itself.
func (m *Map[K, V]) InsertSeq(seq iter.Seq2[K, V]) {
	for key, val := range seq {
		m.Insert(key, val)
	}
}
