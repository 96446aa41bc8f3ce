// Copyright (c) 2025 The triemap Authors
// SPDX-License-Identifier: MIT

package triemap

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// kid, a node has no path information about its predecessors,
// we collect this during the recursive descent.
type kid[V any] struct {
	// for traversing
	n *node[V]

	// for printing
	path []byte
	val  V
}

// MarshalText implements the [encoding.TextMarshaler] interface,
// just a wrapper for [Map.Fprint].
func (m *Map[K, V]) MarshalText() ([]byte, error) {
	w := new(bytes.Buffer)
	if err := m.Fprint(w); err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// String returns a hierarchical tree diagram of the ordered keys
// as string, just a wrapper for [Map.Fprint].
// If Fprint returns an error, String panics.
func (m *Map[K, V]) String() string {
	w := new(strings.Builder)
	if err := m.Fprint(w); err != nil {
		panic(err)
	}

	return w.String()
}

// Fprint writes a hierarchical tree diagram of the ordered keys
// with default formatted payload V to w. If w is nil, Fprint panics.
//
// The order from top to bottom is the ascending byte order of the keys
// and the subtree structure follows the keys' prefix containment.
//
//	▼
//	├─ "apple" (1)
//	│  └─ "application" (2)
//	└─ "banana" (3)
func (m *Map[K, V]) Fprint(w io.Writer) error {
	if m == nil || m.size == 0 {
		return nil
	}

	if _, err := fmt.Fprint(w, "▼\n"); err != nil {
		return err
	}

	return m.fprintRec(w, kid[V]{}, "")
}

// fprintRec, the output is a hierarchical key tree starting below this kid.
func (m *Map[K, V]) fprintRec(w io.Writer, parent kid[V], pad string) error {
	// get direct kids for this kid ...
	directKids := m.kidsBelow(parent)

	// the edge order is already the key order, no sorting needed

	// symbols used in tree
	glyphe := "├─ "
	spacer := "│  "

	// for all direct kids under this node ...
	for i, kid := range directKids {
		// ... treat last kid special
		if i == len(directKids)-1 {
			glyphe = "└─ "
			spacer = "   "
		}

		// print key and val, padded with glyphe
		if _, err := fmt.Fprintf(w, "%s%q (%v)\n", pad+glyphe, kid.path, kid.val); err != nil {
			return err
		}

		// rec-descent with this kid as parent
		if err := m.fprintRec(w, kid, pad+spacer); err != nil {
			return err
		}
	}

	return nil
}

// kidsBelow returns the direct kids of parent, the zero kid stands
// for the virtual root above everything.
func (m *Map[K, V]) kidsBelow(parent kid[V]) []kid[V] {
	switch {
	case parent.n != nil:
		return m.directKidsRec(parent.n, parent.path)
	case m.root.hasValue():
		// the empty key is a prefix of every other key,
		// it heads the tree alone
		return []kid[V]{{n: &m.root, val: m.store.mustGet(m.root.slotIndex())}}
	default:
		return m.directKidsRec(&m.root, nil)
	}
}

// directKidsRec returns the live keys immediately below path, the
// nearest value bearing descendants of n. Dead interior nodes are
// stepped over, their live descendants bubble up to this level.
func (m *Map[K, V]) directKidsRec(n *node[V], path []byte) []kid[V] {
	var directKids []kid[V]

	var buf [maxFanout]uint8
	for _, b := range n.edges.AsSlice(buf[:0]) {
		c := n.mustChild(b)

		childPath := make([]byte, len(path)+1)
		copy(childPath, path)
		childPath[len(path)] = b

		if c.hasValue() {
			// the next live key, recursion stops here,
			// its own descendants are handled one level deeper
			directKids = append(directKids, kid[V]{
				n:    c,
				path: childPath,
				val:  m.store.mustGet(c.slotIndex()),
			})

			continue
		}

		directKids = append(directKids, m.directKidsRec(c, childPath)...)
	}

	return directKids
}
