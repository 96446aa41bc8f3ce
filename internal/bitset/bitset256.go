// Copyright (c) 2025 The triemap Authors
// SPDX-License-Identifier: MIT

// Package bitset implements a fixed size bitset over the byte
// range [0..255].
//
// Studied [github.com/bits-and-blooms/bitset] inside out and carved
// out the fixed 256 bit case, a trie node needs nothing more. The
// dynamic sized library is still used elsewhere in this project where
// the domain is not capped at 256.
package bitset

//  can inline (*BitSet256).Clear with cost 12
//  can inline (*BitSet256).FirstSet with cost 79
//  can inline (*BitSet256).IsEmpty with cost 28
//  can inline (*BitSet256).NextSet with cost 73
//  can inline (*BitSet256).popcnt with cost 33
//  can inline (*BitSet256).Rank with cost 61
//  can inline (*BitSet256).Set with cost 12
//  can inline (*BitSet256).Size with cost 36
//  can inline (*BitSet256).Test with cost 24

import (
	"fmt"
	"math/bits"
)

// The expressions
//
//	i>>6 and i&63
//
// are (i / 64) and (i % 64), not factored out as functions to keep
// the methods inlineable with minimal costs. With an uint8 bit
// argument i>>6 is provably < 4, so the bounds checks vanish; the
// occasional [i&3] form below does the same for int indices (BCE).

// BitSet256 represents a fixed size bitset from [0..255].
// The zero value is an empty set, ready to use.
type BitSet256 [4]uint64

func (b *BitSet256) String() string {
	return fmt.Sprint(b.All())
}

// Set sets the bit.
func (b *BitSet256) Set(bit uint8) {
	b[bit>>6] |= 1 << (bit & 63)
}

// Clear clears the bit.
func (b *BitSet256) Clear(bit uint8) {
	b[bit>>6] &^= 1 << (bit & 63)
}

// Test if the bit is set.
func (b *BitSet256) Test(bit uint8) bool {
	return b[bit>>6]&(1<<(bit&63)) != 0
}

// Rank returns the number of set bits strictly below bit.
//
// For a set bit this is its position in the densely packed child
// array, for an unset bit it is the insertion point.
func (b *BitSet256) Rank(bit uint8) (rnk int) {
	wIdx := int(bit >> 6)

	// sum up the popcounts of the whole words below wIdx ...
	// don't test word == 0, just add, less branches
	for jIdx := range wIdx {
		rnk += bits.OnesCount64(b[jIdx])
	}

	// ... plus the masked partial word at wIdx
	rnk += bits.OnesCount64(b[wIdx&3] & (1<<(bit&63) - 1))
	return
}

// FirstSet returns the first bit set along with an ok code.
func (b *BitSet256) FirstSet() (first uint8, ok bool) {
	// optimized for pipelining, can still inline with cost 79
	if x := bits.TrailingZeros64(b[0]); x != 64 {
		return uint8(x), true
	} else if x := bits.TrailingZeros64(b[1]); x != 64 {
		return uint8(x + 64), true
	} else if x := bits.TrailingZeros64(b[2]); x != 64 {
		return uint8(x + 128), true
	} else if x := bits.TrailingZeros64(b[3]); x != 64 {
		return uint8(x + 192), true
	}
	return
}

// NextSet returns the next bit set from the specified start bit,
// including possibly the current bit along with an ok code.
//
// The start bit may exceed 255, the answer is then always false;
// cursors advancing past the last byte value rely on this.
func (b *BitSet256) NextSet(bit uint) (uint8, bool) {
	wIdx := int(bit >> 6)
	if wIdx >= 4 {
		return 0, false
	}
	// wIdx is < 4

	// process the first (maybe partial) word
	first := b[wIdx&3] >> (bit & 63) // bit % 64
	if first != 0 {
		return uint8(bit) + uint8(bits.TrailingZeros64(first)), true
	}

	// process the following words until next bit is set
	wIdx++ // wIdx is <= 4
	for jIdx, word := range b[wIdx:] {
		if word != 0 {
			return uint8((wIdx+jIdx)<<6 + bits.TrailingZeros64(word)), true
		}
	}
	return 0, false
}

// AsSlice returns all set bits as slice of uint8 without
// heap allocations.
//
// This is faster than All, but also more dangerous,
// it panics if the capacity of buf is < b.Size()
func (b *BitSet256) AsSlice(buf []uint8) []uint8 {
	buf = buf[:cap(buf)] // use cap as max len

	size := 0
	for wIdx, word := range b {
		for ; word != 0; size++ {
			// panics if capacity of buf is exceeded.
			buf[size] = uint8(wIdx<<6 + bits.TrailingZeros64(word))

			// clear the rightmost set bit
			word &= word - 1
		}
	}

	buf = buf[:size]
	return buf
}

// All returns all set bits. This has a simpler API but is slower than AsSlice.
func (b *BitSet256) All() []uint8 {
	return b.AsSlice(make([]uint8, 0, 256))
}

// IsEmpty returns true if no bit is set.
func (b *BitSet256) IsEmpty() bool {
	return b[3] == 0 &&
		b[2] == 0 &&
		b[1] == 0 &&
		b[0] == 0
}

// Size is the number of set bits (popcount).
func (b *BitSet256) Size() int {
	return b.popcnt()
}

// popcnt, count all the set bits
func (b *BitSet256) popcnt() (cnt int) {
	cnt += bits.OnesCount64(b[0])
	cnt += bits.OnesCount64(b[1])
	cnt += bits.OnesCount64(b[2])
	cnt += bits.OnesCount64(b[3])
	return
}
