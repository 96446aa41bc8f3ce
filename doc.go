// Copyright (c) 2025 The triemap Authors
// SPDX-License-Identifier: MIT

// Package triemap provides an ordered, in-memory map keyed by byte
// sequences, built as a byte trie with bitmap-compressed branching.
//
// Every node tracks its outgoing byte edges in a 256 bit set and keeps
// the children in a popcount-compressed dense array, the technique
// hash-array-mapped tries use: the child for byte b sits at the rank
// of b in the bitmap. Most nodes carry a handful of edges out of 256
// possible, so the compression saves the bulk of the memory a naive
// 256-ary trie would burn, at the cost of a popcount per step.
//
// Two recycling layers keep mutation churn off the garbage collector:
//
//   - child arrays are pooled by length and reused across the
//     insert/remove reallocations of any node
//   - values live in a growable slot store with a LIFO free list,
//     nodes hold stable slot handles instead of inline values
//
// Lookups, inserts and removals cost O(k) for a key of k bytes,
// independent of the map size. Iteration yields keys in ascending
// lexicographic byte order, and every key's prefixes and extensions
// are reachable by walking a single path, making the map well suited
// for prefix scans, longest-prefix bookkeeping and ordered merges.
//
// The zero value is an empty map ready for use. A Map is not safe for
// concurrent use, callers must synchronize writers.
package triemap
