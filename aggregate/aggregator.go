// Package aggregate implements the ScoreAggregator from spec.md §4.3:
// it turns the per-fact, per-evaluator novel/non-novel deltas the
// orchestrator computes from table.NoveltyTable observations into a
// single scalar state score, under one of four numeric semantics.
package aggregate

import "fmt"

// Type selects the score-aggregation mode (spec.md §3, §4.3).
type Type int

const (
	Basic Type = iota
	SeparateNovel
	SeparateBoth
	SeparateBothAggregate
)

// String names the mode, for diagnostics and config round-tripping.
func (t Type) String() string {
	switch t {
	case Basic:
		return "basic"
	case SeparateNovel:
		return "separate_novel"
	case SeparateBoth:
		return "separate_both"
	case SeparateBothAggregate:
		return "separate_both_aggregate"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ParseType maps the config-file spelling from spec.md §6 to a Type.
func ParseType(s string) (Type, bool) {
	switch s {
	case "basic":
		return Basic, true
	case "separate_novel":
		return SeparateNovel, true
	case "separate_both":
		return SeparateBoth, true
	case "separate_both_aggregate":
		return SeparateBothAggregate, true
	default:
		return 0, false
	}
}

// Aggregator holds the aggregation mode and the multiplier (the weight
// of a single novel fact) that the per-fact delta estimates depend on
// (spec.md §4.3's estimate_novel / estimate_non_novel). The largest
// value any evaluator has ever returned, which SeparateBothAggregate
// normalizes by, is not stored here; callers pass it to FactDelta.
type Aggregator struct {
	Type       Type
	Multiplier int
}

// New constructs an Aggregator. multiplier must be >= 1 (spec.md §6);
// callers are expected to have validated Options before reaching here.
func New(t Type, multiplier int) *Aggregator {
	return &Aggregator{Type: t, Multiplier: multiplier}
}

// FactDelta computes the (novel_delta, non_novel_delta) pair for a
// single (fact, evaluator) observation, per the table in spec.md §4.3.
// unseen reports whether the NoveltyTable's previous entry was Unseen;
// prev is meaningless when unseen is true. maxValueEverSeen is the
// orchestrator's running maximum (spec.md §3's "largest-value tracker"),
// required (and guaranteed non-Unseen, per spec.md §4.5) whenever Type
// is SeparateBothAggregate.
func (a *Aggregator) FactDelta(unseen bool, prev, value, maxValueEverSeen int) (novel, nonNovel int) {
	switch {
	case unseen:
		return a.estimateNovel(true, 0, value, maxValueEverSeen), 0
	case prev > value:
		return a.estimateNovel(false, prev, value, maxValueEverSeen), 0
	case prev == value:
		return 0, 0
	default: // prev < value
		return 0, a.estimateNonNovel(prev, value, maxValueEverSeen)
	}
}

// estimateNovel implements spec.md §4.3's estimate_novel.
func (a *Aggregator) estimateNovel(wasUnseen bool, prev, value, maxValueEverSeen int) int {
	if wasUnseen {
		return a.Multiplier
	}
	switch a.Type {
	case Basic, SeparateNovel, SeparateBoth:
		return a.Multiplier
	case SeparateBothAggregate:
		// prev > value here; maxValueEverSeen is guaranteed > 0 by the
		// orchestrator (spec.md §4.5) before this branch is reachable.
		return (a.Multiplier * (prev - value)) / maxValueEverSeen
	default:
		panic(fmt.Sprintf("aggregate: unknown Type %d reached in estimateNovel", int(a.Type)))
	}
}

// estimateNonNovel implements spec.md §4.3's estimate_non_novel.
func (a *Aggregator) estimateNonNovel(prev, value, maxValueEverSeen int) int {
	if a.Type == Basic || a.Type == SeparateNovel || prev == value {
		return 0
	}
	switch a.Type {
	case SeparateBoth:
		return a.Multiplier
	case SeparateBothAggregate:
		return (a.Multiplier * (value - prev)) / maxValueEverSeen
	default:
		panic(fmt.Sprintf("aggregate: unknown Type %d reached in estimateNonNovel", int(a.Type)))
	}
}

// ReduceFact reduces one fact's per-evaluator delta vectors to a single
// number each, by taking the maximum over evaluators (spec.md §4.3: "in
// particular, 0 if all entries are 0" — the zero value of values covers
// evaluators that didn't contribute, so a nil/empty slice reduces to 0).
func ReduceFact(values []int) int {
	max := 0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return max
}

// Score folds the summed novel (B) and non-novel (W) contributions
// across all facts into the final scalar, per spec.md §4.3. numVars is
// the task's variable count V.
func (a *Aggregator) Score(b, w, numVars int) int {
	switch a.Type {
	case Basic:
		if b > 0 {
			return 0
		}
		return 1
	case SeparateNovel:
		return a.Multiplier*numVars - b
	case SeparateBoth, SeparateBothAggregate:
		base := a.Multiplier * numVars
		if b > 0 {
			return base - b
		}
		return base + w
	default:
		panic(fmt.Sprintf("aggregate: unknown Type %d reached in Score", int(a.Type)))
	}
}
