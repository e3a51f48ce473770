// Package preferred implements PreferredOperatorSelector from spec.md
// §4.4: given one evaluator's candidate operators, its current value,
// and the shared OperatorValueTable, apply a cutoff policy, cap the
// result, and emit the survivors through a task.Sink.
package preferred

import (
	"fmt"
	"sort"

	"github.com/corvid-labs/novelty/rng"
	"github.com/corvid-labs/novelty/table"
	"github.com/corvid-labs/novelty/task"
)

// CutoffType selects the candidate filtering/ordering policy (spec.md
// §3, §4.4).
type CutoffType int

const (
	Argmax CutoffType = iota
	AllOrdered
	AllRandom
	NoCutoff
)

// String names the policy, for diagnostics and config round-tripping.
func (c CutoffType) String() string {
	switch c {
	case Argmax:
		return "argmax"
	case AllOrdered:
		return "all_ordered"
	case AllRandom:
		return "all_random"
	case NoCutoff:
		return "no_cutoff"
	default:
		return fmt.Sprintf("CutoffType(%d)", int(c))
	}
}

// ParseCutoffType maps the config-file spelling from spec.md §6 to a
// CutoffType.
func ParseCutoffType(s string) (CutoffType, bool) {
	switch s {
	case "argmax":
		return Argmax, true
	case "all_ordered":
		return AllOrdered, true
	case "all_random":
		return AllRandom, true
	case "no_cutoff":
		return NoCutoff, true
	default:
		return 0, false
	}
}

// NeedsOperatorTable reports whether this cutoff policy consults the
// OperatorValueTable at all. NoCutoff does not (spec.md §4.4: "the
// OperatorValueTable is not required and is not allocated"), which is
// what lets the orchestrator skip allocating it entirely (spec.md §8
// "No double-work").
func (c CutoffType) NeedsOperatorTable() bool {
	return c != NoCutoff
}

// Bounds carries the size-capping parameters from spec.md §4.4 step 2.
type Bounds struct {
	CutoffBound         int     // threshold used by ALL_RANDOM / ALL_ORDERED
	NumOpsBound         int     // absolute cap, or a very large int for "infinity"
	NumOpsRelativeBound float64 // in (0, 1]; 1.0 disables the relative cap
}

// Selector applies one evaluator's cutoff policy and bounds, each call
// to Select corresponding to one PreferredOperatorSelector invocation
// from spec.md §4.5 step 1d.
type Selector struct {
	Cutoff CutoffType
	Bounds Bounds
	Sample rng.Sampler
}

// New constructs a Selector.
func New(cutoff CutoffType, bounds Bounds, sampler rng.Sampler) *Selector {
	return &Selector{Cutoff: cutoff, Bounds: bounds, Sample: sampler}
}

// OperatorValues is the read access the selector needs into the
// OperatorValueTable for one evaluator; table.OperatorValueTable
// satisfies it directly.
type OperatorValues interface {
	Get(op task.OperatorID, h task.EvaluatorHandle) int
}

// Select runs the three steps of spec.md §4.4 for one evaluator and
// emits the survivors to sink: filter/order by cutoff policy, cap the
// count, then (for every policy but AllOrdered) sample down to that
// count if needed. candidates is the evaluator's own
// PreferredOperators(state) output; values may be nil when
// Cutoff == NoCutoff, since that policy never reads it.
func (s *Selector) Select(candidates []task.OperatorID, h task.EvaluatorHandle, value int, values OperatorValues, sink task.Sink) {
	filtered := s.filter(candidates, h, value, values)

	originalCount := len(candidates)
	k := s.capCount(len(filtered), originalCount)
	if k <= 0 {
		return
	}

	var selected []task.OperatorID
	switch {
	case s.Cutoff == AllOrdered:
		selected = filtered[:k]
	case k >= len(filtered):
		selected = filtered
	default:
		selected = rng.Sample[task.OperatorID](s.Sample, filtered, k)
	}

	for _, op := range selected {
		sink.MarkPreferred(op)
	}
}

// filter implements spec.md §4.4 step 1: candidate filtering/ordering.
func (s *Selector) filter(candidates []task.OperatorID, h task.EvaluatorHandle, value int, values OperatorValues) []task.OperatorID {
	switch s.Cutoff {
	case Argmax:
		return argmaxFilter(candidates, h, values)
	case AllRandom:
		return keepAboveBound(candidates, h, value, s.Bounds.CutoffBound, values)
	case AllOrdered:
		kept := keepAboveBound(candidates, h, value, s.Bounds.CutoffBound, values)
		sortDescendingByValue(kept, h, values)
		return kept
	case NoCutoff:
		out := make([]task.OperatorID, len(candidates))
		copy(out, candidates)
		return out
	default:
		panic(fmt.Sprintf("preferred: unknown CutoffType %d reached in filter", int(s.Cutoff)))
	}
}

// argmaxFilter keeps every candidate whose stored value equals the max
// over all candidates, where the max is table.Unseen as soon as any
// candidate is Unseen (spec.md §4.4 Argmax, and the Open Question in
// spec.md §9 this resolves per the spec's own stated reading: the early
// break means an Unseen candidate makes the kept set exactly the Unseen
// candidates).
func argmaxFilter(candidates []task.OperatorID, h task.EvaluatorHandle, values OperatorValues) []task.OperatorID {
	max := minInt
	for _, op := range candidates {
		v := values.Get(op, h)
		if v == table.Unseen {
			max = table.Unseen
			break
		}
		if v > max {
			max = v
		}
	}

	kept := make([]task.OperatorID, 0, len(candidates))
	for _, op := range candidates {
		if values.Get(op, h) == max {
			kept = append(kept, op)
		}
	}
	return kept
}

// minInt seeds the argmax scan below any real stored value.
const minInt = -1 << 62

// keepAboveBound implements the shared ALL_RANDOM / ALL_ORDERED keep
// predicate: stored == Unseen, or stored - value > cutoffBound.
func keepAboveBound(candidates []task.OperatorID, h task.EvaluatorHandle, value, cutoffBound int, values OperatorValues) []task.OperatorID {
	kept := make([]task.OperatorID, 0, len(candidates))
	for _, op := range candidates {
		v := values.Get(op, h)
		if v == table.Unseen || v-value > cutoffBound {
			kept = append(kept, op)
		}
	}
	return kept
}

// sortDescendingByValue sorts kept by stored value, descending, with a
// stable tie-break on input order (spec.md §4.4 ALL_ORDERED: "stable
// tie-break implementation-defined" — we document it as input order).
func sortDescendingByValue(kept []task.OperatorID, h task.EvaluatorHandle, values OperatorValues) {
	sort.SliceStable(kept, func(i, j int) bool {
		return values.Get(kept[i], h) > values.Get(kept[j], h)
	})
}

// capCount implements spec.md §4.4 step 2:
//
//	k = min(C, floor(num_ops_relative_bound * R) if rel < 1.0 else C, num_ops_bound)
func (s *Selector) capCount(filteredCount, originalCandidateCount int) int {
	k := filteredCount
	if s.Bounds.NumOpsRelativeBound < 1.0 {
		relCap := int(s.Bounds.NumOpsRelativeBound * float64(originalCandidateCount))
		if relCap < k {
			k = relCap
		}
	}
	if s.Bounds.NumOpsBound < k {
		k = s.Bounds.NumOpsBound
	}
	return k
}
