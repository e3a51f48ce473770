package rng_test

import (
	"sort"
	"testing"

	"github.com/corvid-labs/novelty/rng"
)

func TestSampleIndicesAscendingOrder(t *testing.T) {
	src := rng.New(42)
	for trial := 0; trial < 20; trial++ {
		indices := src.SampleIndices(10, 4)
		if len(indices) != 4 {
			t.Fatalf("len(indices) = %d, want 4", len(indices))
		}
		if !sort.IntsAreSorted(indices) {
			t.Fatalf("indices %v not ascending", indices)
		}
		seen := map[int]bool{}
		for _, idx := range indices {
			if idx < 0 || idx >= 10 {
				t.Fatalf("index %d out of range [0,10)", idx)
			}
			if seen[idx] {
				t.Fatalf("index %d sampled twice", idx)
			}
			seen[idx] = true
		}
	}
}

func TestSampleIndicesFullWhenKEqualsN(t *testing.T) {
	src := rng.New(1)
	indices := src.SampleIndices(5, 5)
	want := []int{0, 1, 2, 3, 4}
	for i, v := range want {
		if indices[i] != v {
			t.Errorf("indices[%d] = %d, want %d", i, indices[i], v)
		}
	}
}

func TestSampleIndicesPanicsOutOfRange(t *testing.T) {
	src := rng.New(1)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for k > n")
		}
	}()
	src.SampleIndices(3, 4)
}

func TestSampleIsDeterministicForFixedSeed(t *testing.T) {
	a := rng.New(7).SampleIndices(20, 5)
	b := rng.New(7).SampleIndices(20, 5)
	if len(a) != len(b) {
		t.Fatalf("length mismatch")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("same-seed samples diverged at %d: %v vs %v", i, a, b)
		}
	}
}

func TestSampleTypedWrapper(t *testing.T) {
	src := rng.New(3)
	items := []string{"a", "b", "c", "d", "e"}
	out := rng.Sample[string](src, items, 3)
	if len(out) != 3 {
		t.Fatalf("len(out) = %d, want 3", len(out))
	}
	for _, v := range out {
		found := false
		for _, item := range items {
			if item == v {
				found = true
			}
		}
		if !found {
			t.Errorf("sampled value %q not in source slice", v)
		}
	}
}

func TestShuffleIndicesIsAPermutation(t *testing.T) {
	src := rng.New(9)
	perm := src.ShuffleIndices(6)
	seen := make([]bool, 6)
	for _, v := range perm {
		seen[v] = true
	}
	for i, ok := range seen {
		if !ok {
			t.Errorf("index %d missing from permutation %v", i, perm)
		}
	}
}
