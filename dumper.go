// Copyright (c) 2025 The triemap Authors
// SPDX-License-Identifier: MIT

package triemap

import (
	"fmt"
	"io"
	"strings"
)

type nodeType byte

const (
	nullNode         nodeType = iota // no value, no children
	fullNode                         // value and children
	leafNode                         // value, no children
	intermediateNode                 // only children, no value
)

// ##################################################
//  useful during development, debugging and testing
// ##################################################

// dumpString is just a wrapper for dump.
func (m *Map[K, V]) dumpString() string {
	w := new(strings.Builder)
	m.dump(w)

	return w.String()
}

// dump the map structure and all the nodes to w, tombstoned structure
// included. The tree diagram of Fprint shows the live keys, this shows
// the machinery: edge bitmaps, slot handles, store and pool counters.
func (m *Map[K, V]) dump(w io.Writer) {
	if m == nil {
		return
	}

	if m.size == 0 && m.root.isEmpty() {
		return
	}

	stats := m.root.statsRec(0)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "### size(%d), nodes(%d), leaves(%d), depth(%d)\n",
		m.size, stats.nodes, stats.leaves, stats.maxDepth)
	fmt.Fprintf(w, "### store: live(%d), slots(%d), free(%d)\n",
		m.store.count(), len(m.store.slots), len(m.store.freeList))

	if m.pool != nil {
		ps := m.pool.stats()
		fmt.Fprintf(w, "### pool: allocated(%d), recycled(%d), released(%d), held(%d)\n",
			ps.allocated, ps.recycled, ps.released, ps.held)
	}

	m.dumpRec(w, &m.root, nil, 0)
}

// dumpRec, rec-descent the trie.
func (m *Map[K, V]) dumpRec(w io.Writer, n *node[V], path []byte, depth int) {
	// dump this node
	m.dumpNode(w, n, path, depth)

	// the node may have childs, rec-descent down
	var buf [maxFanout]uint8
	for _, b := range n.edges.AsSlice(buf[:0]) {
		childPath := make([]byte, len(path)+1)
		copy(childPath, path)
		childPath[len(path)] = b

		m.dumpRec(w, n.mustChild(b), childPath, depth+1)
	}
}

// dumpNode dumps the node to w.
func (m *Map[K, V]) dumpNode(w io.Writer, n *node[V], path []byte, depth int) {
	indent := strings.Repeat(".", depth)

	// node type with depth and byte path
	fmt.Fprintf(w, "\n%s[%s] depth: %d path: [%q]\n", indent, n.hasType(), depth, path)

	if n.hasValue() {
		fmt.Fprintf(w, "%svalue: (%v) slot: %d\n", indent, m.store.mustGet(n.slotIndex()), n.slotIndex())
	}

	if cnt := len(n.children); cnt != 0 {
		// print the byte edges for this node
		fmt.Fprintf(w, "%sedges(#%d):", indent, cnt)

		var buf [maxFanout]uint8
		for _, b := range n.edges.AsSlice(buf[:0]) {
			fmt.Fprintf(w, " %s", byteFmt(b))
		}

		fmt.Fprintln(w)
	}
}

// hasType returns the nodeType.
func (n *node[V]) hasType() nodeType {
	switch {
	case !n.hasValue() && len(n.children) == 0:
		return nullNode
	case n.hasValue() && len(n.children) == 0:
		return leafNode
	case n.hasValue():
		return fullNode
	default:
		return intermediateNode
	}
}

// byteFmt, printable bytes as character literals, the rest in hex.
func byteFmt(b byte) string {
	if b > 0x20 && b < 0x7f {
		return fmt.Sprintf("%q", b)
	}

	return fmt.Sprintf("0x%02x", b)
}

// String implements Stringer for nodeType.
func (nt nodeType) String() string {
	switch nt {
	case nullNode:
		return "NULL"
	case fullNode:
		return "FULL"
	case leafNode:
		return "LEAF"
	case intermediateNode:
		return "IMED"
	default:
		return "unreachable"
	}
}
