// Copyright (c) 2025 The triemap Authors
// SPDX-License-Identifier: MIT

package triemap

import (
	"testing"
)

func TestZeroValueMap(t *testing.T) {
	t.Parallel()

	var m Map[string, int]

	if !m.IsEmpty() {
		t.Error("zero value map is not empty")
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
	if _, ok := m.Get("foo"); ok {
		t.Error("Get on zero value map returned ok")
	}
	if m.Contains("foo") {
		t.Error("Contains on zero value map returned true")
	}
	if m.StartsWith("") {
		t.Error("StartsWith on zero value map returned true")
	}
	if _, ok := m.Remove("foo"); ok {
		t.Error("Remove on zero value map returned ok")
	}

	// zero value must be usable for mutation too
	m.Insert("foo", 1)
	if got, ok := m.Get("foo"); !ok || got != 1 {
		t.Errorf("Get(foo) = %v, %v, want 1, true", got, ok)
	}
}

func TestInsertGet(t *testing.T) {
	t.Parallel()

	m := New[string, int]()

	m.Insert("apple", 1)
	m.Insert("application", 2)
	m.Insert("banana", 3)

	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3", m.Len())
	}

	tests := []struct {
		key    string
		want   int
		wantOK bool
	}{
		{"apple", 1, true},
		{"application", 2, true},
		{"banana", 3, true},
		{"app", 0, false},    // interior node, no value
		{"applep", 0, false}, // off the tree
		{"apples", 0, false},
		{"", 0, false},
		{"cherry", 0, false},
	}

	for _, tc := range tests {
		got, ok := m.Get(tc.key)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("Get(%q) = %v, %v, want %v, %v", tc.key, got, ok, tc.want, tc.wantOK)
		}
		if m.Contains(tc.key) != tc.wantOK {
			t.Errorf("Contains(%q) = %v, want %v", tc.key, !tc.wantOK, tc.wantOK)
		}
	}
}

func TestInsertOverwrite(t *testing.T) {
	t.Parallel()

	m := New[string, string]()

	m.Insert("key", "old")
	m.Insert("key", "new")

	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after overwrite", m.Len())
	}
	if got, _ := m.Get("key"); got != "new" {
		t.Errorf("Get(key) = %q, want %q", got, "new")
	}

	// an overwrite must reuse the slot, not allocate a second one
	if got := len(m.store.slots); got != 1 {
		t.Errorf("store holds %d slots, want 1", got)
	}
}

func TestEmptyKey(t *testing.T) {
	t.Parallel()

	m := New[string, int]()

	// the empty key terminates at the root
	m.Insert("", 42)

	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
	if got, ok := m.Get(""); !ok || got != 42 {
		t.Errorf("Get(\"\") = %v, %v, want 42, true", got, ok)
	}
	if !m.StartsWith("") {
		t.Error("StartsWith(\"\") = false, want true")
	}

	// the empty key coexists with every other key
	m.Insert("a", 1)
	if got, ok := m.Get(""); !ok || got != 42 {
		t.Errorf("Get(\"\") = %v, %v after Insert(a)", got, ok)
	}

	if val, ok := m.Remove(""); !ok || val != 42 {
		t.Errorf("Remove(\"\") = %v, %v, want 42, true", val, ok)
	}
	if m.Contains("") {
		t.Error("empty key still present after Remove")
	}
	if !m.Contains("a") {
		t.Error("Remove(\"\") took the key \"a\" with it")
	}
}

func TestByteSliceKeys(t *testing.T) {
	t.Parallel()

	m := New[[]byte, int]()

	m.Insert([]byte("apple"), 1)
	m.Insert([]byte{0x00, 0xff}, 2)
	m.Insert(nil, 3) // nil slice is the empty key

	if got, ok := m.Get([]byte("apple")); !ok || got != 1 {
		t.Errorf("Get(apple) = %v, %v", got, ok)
	}
	if got, ok := m.Get([]byte{0x00, 0xff}); !ok || got != 2 {
		t.Errorf("Get(0x00ff) = %v, %v", got, ok)
	}
	if got, ok := m.Get([]byte{}); !ok || got != 3 {
		t.Errorf("Get(empty) = %v, %v, nil and empty slice must be the same key", got, ok)
	}
	if got, ok := m.Get(nil); !ok || got != 3 {
		t.Errorf("Get(nil) = %v, %v", got, ok)
	}
}

func TestWordBoundaryBytes(t *testing.T) {
	t.Parallel()

	// byte values on the 64 bit word seams of the edge bitmap
	seam := []byte{0, 63, 64, 127, 128, 191, 192, 255}

	m := New[[]byte, int]()
	for i, b := range seam {
		m.Insert([]byte{b}, i)
	}

	if m.Len() != len(seam) {
		t.Fatalf("Len() = %d, want %d", m.Len(), len(seam))
	}

	for i, b := range seam {
		if got, ok := m.Get([]byte{b}); !ok || got != i {
			t.Errorf("Get([%d]) = %v, %v, want %v, true", b, got, ok, i)
		}
	}

	// all eight edges hang off the root, in one compressed array
	if got := len(m.root.children); got != len(seam) {
		t.Errorf("root has %d children, want %d", got, len(seam))
	}
}

func TestKeysArePrefixesOfKeys(t *testing.T) {
	t.Parallel()

	m := New[string, int]()

	// insert a chain, every key a prefix of the next
	keys := []string{"a", "ab", "abc", "abcd", "abcde"}
	for i, k := range keys {
		m.Insert(k, i)
	}

	for i, k := range keys {
		if got, ok := m.Get(k); !ok || got != i {
			t.Errorf("Get(%q) = %v, %v, want %v, true", k, got, ok, i)
		}
	}

	// removing the middle of the chain leaves the rest intact
	m.Remove("abc")
	for _, k := range keys {
		want := k != "abc"
		if m.Contains(k) != want {
			t.Errorf("Contains(%q) = %v, want %v", k, !want, want)
		}
	}
}

func TestStartsWith(t *testing.T) {
	t.Parallel()

	m := New[string, int]()
	m.Insert("apple", 1)
	m.Insert("application", 2)
	m.Insert("banana", 3)

	tests := []struct {
		prefix string
		want   bool
	}{
		{"", true},
		{"a", true},
		{"app", true},
		{"apple", true},
		{"applic", true},
		{"application", true},
		{"applications", false},
		{"b", true},
		{"banana", true},
		{"bananas", false},
		{"c", false},
	}

	for _, tc := range tests {
		if got := m.StartsWith(tc.prefix); got != tc.want {
			t.Errorf("StartsWith(%q) = %v, want %v", tc.prefix, got, tc.want)
		}
	}
}

func TestStartsWithTombstones(t *testing.T) {
	t.Parallel()

	m := New[string, int]()
	m.Insert("apple", 1)
	m.Insert("banana", 2)

	// tombstone removal leaves the path nodes in place
	m.Remove("apple")

	// dead structure must not count as a match
	if m.StartsWith("app") {
		t.Error("StartsWith(app) = true over dead structure")
	}
	if !m.StartsWith("ban") {
		t.Error("StartsWith(ban) = false, want true")
	}
}

func TestClear(t *testing.T) {
	t.Parallel()

	m := New[string, int]()
	m.Insert("apple", 1)
	m.Insert("banana", 2)

	m.Clear()
	m.Clear() // a second Clear finds nothing to do

	if !m.IsEmpty() {
		t.Error("map not empty after Clear")
	}
	if m.Contains("apple") {
		t.Error("Contains(apple) after Clear")
	}
	if got := m.pool.stats().held; got != 0 {
		t.Errorf("pool holds %d arrays after Clear, want 0", got)
	}

	// the map stays usable
	m.Insert("cherry", 3)
	if got, ok := m.Get("cherry"); !ok || got != 3 {
		t.Errorf("Get(cherry) = %v, %v after Clear", got, ok)
	}
}

func TestCompact(t *testing.T) {
	t.Parallel()

	m := New[string, int]()
	for _, k := range []string{"a", "b", "c", "d", "e"} {
		m.Insert(k, 1)
	}

	// free the tail slots and one interior slot, then compact
	m.Remove("d")
	m.Remove("e")
	m.Remove("b")
	m.Compact()

	// trailing dead slots are cut, the interior hole stays
	if got := len(m.store.slots); got != 3 {
		t.Errorf("store holds %d slots after Compact, want 3", got)
	}
	if got := m.pool.stats().held; got != 0 {
		t.Errorf("pool holds %d arrays after Compact, want 0", got)
	}

	// live entries and their handles survive
	for _, k := range []string{"a", "c"} {
		if !m.Contains(k) {
			t.Errorf("Contains(%q) = false after Compact", k)
		}
	}

	// the interior hole is still reusable, the store must not grow
	m.Insert("f", 6)
	if got := len(m.store.slots); got != 3 {
		t.Errorf("store grew to %d slots, want 3, the freed slot must be reused", got)
	}
	if got := m.store.count(); got != 3 {
		t.Errorf("live slots = %d, want 3", got)
	}
}

func TestNewWithCapacity(t *testing.T) {
	t.Parallel()

	m := NewWithCapacity[string, int](100)

	if !m.IsEmpty() {
		t.Error("NewWithCapacity map is not empty")
	}
	if got := cap(m.store.slots); got < 100 {
		t.Errorf("store capacity = %d, want >= 100", got)
	}

	m.Insert("key", 1)
	if got, ok := m.Get("key"); !ok || got != 1 {
		t.Errorf("Get(key) = %v, %v", got, ok)
	}

	// zero capacity behaves like New
	z := NewWithCapacity[string, int](0)
	z.Insert("key", 1)
	if got, ok := z.Get("key"); !ok || got != 1 {
		t.Errorf("Get(key) = %v, %v on zero capacity map", got, ok)
	}
}

func TestCompactEmpty(t *testing.T) {
	t.Parallel()

	// Compact on a map that never held anything
	var m Map[string, int]
	m.Compact()

	if !m.IsEmpty() {
		t.Error("map not empty after Compact")
	}

	// and on one emptied by removal, all slots are trailing dead slots
	m.Insert("apple", 1)
	m.Remove("apple")
	m.Compact()

	if got := len(m.store.slots); got != 0 {
		t.Errorf("store holds %d slots after Compact on empty map, want 0", got)
	}
	if got := len(m.store.freeList); got != 0 {
		t.Errorf("free list holds %d indices after Compact on empty map, want 0", got)
	}

	m.Insert("banana", 2)
	if got, ok := m.Get("banana"); !ok || got != 2 {
		t.Errorf("Get(banana) = %v, %v after Compact", got, ok)
	}
}
