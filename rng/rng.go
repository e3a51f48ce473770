// Package rng implements the RNG collaborator spec.md §6/§9 requires:
// Fisher-Yates Shuffle and a Sample that draws k distinct elements
// uniformly at random and returns them in ascending original-index
// order, matching original_source/src/search/utils/rng.h's contract
// (the only caller — PreferredOperatorSelector — depends on that
// ordering for reproducibility from a fixed seed). No third-party RNG
// library appears anywhere in the retrieval pack, so this is built on
// stdlib math/rand/v2, which is the unforced, idiomatic choice here.
package rng

import "math/rand/v2"

// Sampler is the RNG collaborator contract. Index-based so it composes
// with any element type via the package-level Sample helper, and so
// tests can substitute a fixed-sequence fake without depending on
// math/rand/v2 internals.
type Sampler interface {
	// SampleIndices draws k distinct indices from [0, n) uniformly at
	// random without replacement, returned in ascending order. Panics if
	// k < 0 or k > n.
	SampleIndices(n, k int) []int
	// ShuffleIndices returns a Fisher-Yates permutation of [0, n).
	ShuffleIndices(n int) []int
}

// Source is the production Sampler, backed by a math/rand/v2 generator.
type Source struct {
	rnd *rand.Rand
}

// New returns a Source seeded deterministically, for reproducible runs.
func New(seed uint64) *Source {
	return &Source{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewFromEntropy returns a Source seeded from the runtime's entropy
// pool — the default for production use when no fixed seed is wanted.
func NewFromEntropy() *Source {
	return &Source{rnd: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

func (s *Source) rand() *rand.Rand {
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s.rnd
}

// ShuffleIndices implements Sampler.
func (s *Source) ShuffleIndices(n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	s.rand().Shuffle(n, func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})
	return indices
}

// SampleIndices implements Sampler using rng.h's algorithm: shuffle the
// index range, take the first k, sort ascending.
func (s *Source) SampleIndices(n, k int) []int {
	if k < 0 || k > n {
		panic("rng: SampleIndices called with k outside [0, n]")
	}
	if k == n {
		full := make([]int, n)
		for i := range full {
			full[i] = i
		}
		return full
	}

	shuffled := s.ShuffleIndices(n)
	selected := shuffled[:k]
	insertionSortAscending(selected)
	return selected
}

// Sample draws k distinct elements of items via s, in ascending
// original-index order — the typed convenience wrapper around
// Sampler.SampleIndices that every caller in this module actually uses.
func Sample[T any](s Sampler, items []T, k int) []T {
	indices := s.SampleIndices(len(items), k)
	out := make([]T, len(indices))
	for i, idx := range indices {
		out[i] = items[idx]
	}
	return out
}

// insertionSortAscending sorts small index slices in place; k is
// bounded by num_ops_bound in practice (typically single digits), so a
// simple insertion sort avoids pulling in sort for a handful of ints.
func insertionSortAscending(xs []int) {
	for i := 1; i < len(xs); i++ {
		v := xs[i]
		j := i - 1
		for j >= 0 && xs[j] > v {
			xs[j+1] = xs[j]
			j--
		}
		xs[j+1] = v
	}
}
