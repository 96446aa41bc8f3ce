// Copyright (c) 2025 The triemap Authors
// SPDX-License-Identifier: MIT

package triemap

import (
	"math/rand/v2"
	"testing"
)

// workLoadN to adjust loops for tests with -short
func workLoadN() int {
	if testing.Short() {
		return 1_000
	}
	return 10_000
}

// testWords is the shared fixture for the full-map tests, ordinary
// words with heavy prefix sharing and a few byte-level edge cases.
var testWords = []string{
	"",
	"a",
	"app",
	"apple",
	"apple pie",
	"applesauce",
	"application",
	"applications",
	"applicative",
	"apply",
	"appoint",
	"appointment",
	"apt",
	"banana",
	"band",
	"bandage",
	"bandit",
	"bandwidth",
	"bank",
	"banker",
	"banner",
	"bar",
	"bare",
	"bargain",
	"barge",
	"bark",
	"barn",
	"cat",
	"catalog",
	"catalogue",
	"catch",
	"category",
	"cater",
	"caterpillar",
	"cathedral",
	"do",
	"dog",
	"dogma",
	"door",
	"doorbell",
	"doormat",
	"dot",
	"double",
	"doubt",
	"inter",
	"interface",
	"interfere",
	"interim",
	"interior",
	"intern",
	"internal",
	"international",
	"internet",
	"interval",
	"zero",
	"zig",
	"zigzag",
	"zip",
	"zipper",
	"zoo",
	"zoom",
	"\x00",
	"\x00\x01",
	"\xff",
	"\xff\xfe",
	"éclair", // multi byte in UTF-8, still plain bytes here
	"élan",
}

// randomWords returns n keys drawn from a small alphabet with heavy
// prefix sharing, duplicates likely.
func randomWords(prng *rand.Rand, n, maxLen int) []string {
	words := make([]string, 0, n)
	for range n {
		l := prng.IntN(maxLen + 1)
		b := make([]byte, l)
		for i := range b {
			b[i] = byte('a' + prng.IntN(4))
		}
		words = append(words, string(b))
	}
	return words
}
