package triemap

import (
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"testing"
)

// roundFloat64 to 2 decimal places
func roundFloat64(f float64) float64 { return math.Round(f*100) / 100 }

func benchWords(n int) []string {
	prng := rand.New(rand.NewPCG(42, 42))
	return randomWords(prng, n, 12)
}

func BenchmarkMapMatch(b *testing.B) {
	words := benchWords(100_000)

	m := New[string, int]()
	for i, w := range words {
		m.Insert(w, i)
	}

	var probe string
	for _, w := range words {
		if len(w) >= 6 {
			probe = w
			break
		}
	}
	prefix := probe[:3]

	b.Run("Get", func(b *testing.B) {
		for b.Loop() {
			m.Get(probe)
		}
	})

	b.Run("Contains", func(b *testing.B) {
		for b.Loop() {
			m.Contains(probe)
		}
	})

	b.Run("StartsWith", func(b *testing.B) {
		for b.Loop() {
			m.StartsWith(prefix)
		}
	})

	b.Run("CountPrefixed", func(b *testing.B) {
		for b.Loop() {
			m.CountPrefixed(prefix)
		}
	})
}

func BenchmarkMapMiss(b *testing.B) {
	words := benchWords(100_000)

	m := New[string, int]()
	for i, w := range words {
		m.Insert(w, i)
	}

	// outside the corpus alphabet, misses at the root
	miss := "xyz"

	b.Run("Get", func(b *testing.B) {
		for b.Loop() {
			m.Get(miss)
		}
	})

	b.Run("Contains", func(b *testing.B) {
		for b.Loop() {
			m.Contains(miss)
		}
	})

	b.Run("StartsWith", func(b *testing.B) {
		for b.Loop() {
			m.StartsWith(miss)
		}
	})
}

func BenchmarkMapMutate(b *testing.B) {
	for n := 100; n <= 100_000; n *= 10 {
		words := benchWords(n)

		m := New[string, int]()
		for i, w := range words {
			m.Insert(w, i)
		}
		probe := words[len(words)/2]

		b.Run(fmt.Sprintf("Overwrite_%6d", n), func(b *testing.B) {
			for b.Loop() {
				m.Insert(probe, 0)
			}
		})

		b.Run(fmt.Sprintf("Update_%6d", n), func(b *testing.B) {
			for b.Loop() {
				m.Update(probe, func(v int, _ bool) int { return v + 1 })
			}
		})

		// insert and prune cycle on a fresh path, pool churn included
		b.Run(fmt.Sprintf("InsertRemove_%6d", n), func(b *testing.B) {
			for b.Loop() {
				m.Insert("xyzzy", 0)
				m.RemoveAndPrune("xyzzy")
			}
		})
	}
}

func BenchmarkMapIterate(b *testing.B) {
	for n := 100; n <= 100_000; n *= 10 {
		words := benchWords(n)

		m := New[string, int]()
		for i, w := range words {
			m.Insert(w, i)
		}

		b.Run(fmt.Sprintf("All_%6d", n), func(b *testing.B) {
			for b.Loop() {
				for range m.All() {
				}
			}
		})

		b.Run(fmt.Sprintf("Prefixed_%6d", n), func(b *testing.B) {
			for b.Loop() {
				for range m.Prefixed("a") {
				}
			}
		})
	}
}

func BenchmarkMapCloneEqual(b *testing.B) {
	for n := 100; n <= 100_000; n *= 10 {
		words := benchWords(n)

		m := New[string, int]()
		for i, w := range words {
			m.Insert(w, i)
		}
		c := m.Clone()

		b.Run(fmt.Sprintf("Clone_%6d", n), func(b *testing.B) {
			for b.Loop() {
				m.Clone()
			}
		})

		b.Run(fmt.Sprintf("Equal_%6d", n), func(b *testing.B) {
			for b.Loop() {
				m.Equal(c)
			}
		})
	}
}

func BenchmarkMapMemory(b *testing.B) {
	var startMem, endMem runtime.MemStats

	words := benchWords(100_000)

	m := New[string, struct{}]()
	runtime.GC()
	runtime.ReadMemStats(&startMem)

	b.Run(fmt.Sprintf("Map[]: %d", len(words)), func(b *testing.B) {
		for _, w := range words {
			m.Insert(w, struct{}{})
		}

		runtime.GC()
		runtime.ReadMemStats(&endMem)

		stats := m.root.statsRec(0)
		if stats.values == 0 {
			b.Skip("no keys inserted")
		}

		bytes := float64(endMem.HeapAlloc - startMem.HeapAlloc)
		b.ReportMetric(roundFloat64(bytes/float64(m.Len())), "bytes/key")

		b.ReportMetric(float64(stats.nodes), "nodes")
		b.ReportMetric(float64(stats.leaves), "leaves")
		b.ReportMetric(float64(stats.maxDepth), "depth")
		b.ReportMetric(0, "ns/op")
	})
}
