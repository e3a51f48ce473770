// Package heuristic implements the NoveltyHeuristic orchestrator from
// spec.md §4.5: for each evaluated state it runs every underlying
// evaluator, updates the operator-value and novelty tables, asks the
// preferred-operator selector to emit candidates, aggregates per-fact
// deltas into a scalar score, and optionally dumps that score.
package heuristic

import (
	"math"

	"github.com/corvid-labs/novelty/aggregate"
	"github.com/corvid-labs/novelty/preferred"
	"github.com/corvid-labs/novelty/rng"
	"github.com/corvid-labs/novelty/table"
	"github.com/corvid-labs/novelty/task"
)

// DeadEnd is the integer sentinel Compute returns when any evaluator
// reports task.Infinity (spec.md §4.5 step 1a, GLOSSARY "DEAD_END").
// Kept textually distinct from table.Unseen per the Open Question
// resolution in SPEC_FULL.md §3 — the original C++ source conflates
// the two, this port does not.
const DeadEnd = math.MinInt

// NoveltyHeuristic is the orchestrator. Construct with New; it has
// exactly two externally observable states, fresh (before the first
// Compute) and warm (after), per spec.md §4.5's state machine — there
// is no Reset.
//
// Compute is a read-write operation despite its query shape: it mutates
// the novelty and operator tables and the largest-value tracker on
// every call. Callers (the enclosing search) must not treat it as pure
// or memoize it.
type NoveltyHeuristic struct {
	opts Options
	t    task.Task

	facts     *table.NoveltyTable
	operators *table.OperatorValueTable // nil unless opts.StoresOperatorValues()

	aggregator *aggregate.Aggregator
	selectors  []*preferred.Selector // one per evaluator; nil unless opts.UsePreferredOperators

	maxValueEverSeen int // table.Unseen until the first finite observation
	lastReachedBy    task.OperatorID

	dump DumpSink
	sink task.Sink
}

// New constructs a NoveltyHeuristic. opts must already satisfy
// opts.Validate() (spec.md §7.1's Configuration error is the caller's
// responsibility — typically registry.Config.Resolve, which validates
// before handing an Options to New). sink receives preferred-operator marks
// (spec.md §6's "Output sink"); dump may be nil, in which case dumping
// is a no-op regardless of opts.DumpValue.
func New(t task.Task, opts Options, sampler rng.Sampler, sink task.Sink, dump DumpSink) *NoveltyHeuristic {
	h := &NoveltyHeuristic{
		opts:             opts,
		t:                t,
		facts:            table.NewNoveltyTable(t.Variables(), len(opts.Evals)),
		aggregator:       aggregate.New(opts.Type, opts.Multiplier),
		maxValueEverSeen: table.Unseen,
		lastReachedBy:    task.NoOperator,
		sink:             sink,
		dump:             dump,
	}
	if h.dump == nil {
		h.dump = noopDumpSink{}
	}
	if opts.StoresOperatorValues() {
		h.operators = table.NewOperatorValueTable(t.NumOperators(), len(opts.Evals))
	}
	if opts.UsePreferredOperators {
		bounds := preferred.Bounds{
			CutoffBound:         opts.CutoffBound,
			NumOpsBound:         opts.NumOpsBound,
			NumOpsRelativeBound: opts.NumOpsRelativeBound,
		}
		h.selectors = make([]*preferred.Selector, len(opts.Evals))
		for i := range opts.Evals {
			h.selectors[i] = preferred.New(opts.CutoffType, bounds, sampler)
		}
	}
	return h
}

// NotifyStateTransition records the operator that produced the state
// about to be evaluated (spec.md §4.5 "notify_state_transition"). The
// enclosing search must call this before Compute(child) whenever child
// was reached by applying op (spec.md §5 ordering guarantee). It is a
// no-op when the operator table isn't in use, matching the original's
// `if (store_values_for_operators())` guard.
func (h *NoveltyHeuristic) NotifyStateTransition(op task.OperatorID) {
	if h.operators != nil {
		h.lastReachedBy = op
	}
}

// Compute implements spec.md §4.5. It returns DeadEnd immediately if any
// evaluator reports task.Infinity, making no table updates for that
// call (spec.md §8 "Dead-end short-circuit"); otherwise it returns the
// aggregated scalar score.
func (h *NoveltyHeuristic) Compute(state task.State) int {
	values := make([]int, len(h.opts.Evals))

	for i, ev := range h.opts.Evals {
		v := ev.Value(state)
		if v == task.Infinity {
			h.dump.Dump(0, true)
			return DeadEnd
		}
		values[i] = v
	}

	for i, ev := range h.opts.Evals {
		handle := task.EvaluatorHandle(i)
		v := values[i]
		h.updateMaxValueEverSeen(v)

		if h.opts.UsePreferredOperators {
			if h.operators != nil && h.lastReachedBy.Valid() {
				h.operators.TryImprove(h.lastReachedBy, handle, v)
			}
			h.runSelector(i, handle, ev, state, v)
		}
	}

	b, w := h.scoreFacts(state, values)
	score := h.aggregator.Score(b, w, len(h.t.Variables()))

	if h.opts.DumpValue {
		h.dump.Dump(score, false)
	}
	return score
}

// runSelector performs spec.md §4.5 step 1d for one evaluator: gather
// its candidate operators and hand them to that evaluator's Selector.
func (h *NoveltyHeuristic) runSelector(i int, handle task.EvaluatorHandle, ev task.Evaluator, state task.State, value int) {
	if h.selectors == nil {
		panic(newInvariantError("runSelector", "selectors is nil despite UsePreferredOperators; New should have allocated one per evaluator"))
	}
	candidates := ev.PreferredOperators(state)
	var values preferred.OperatorValues
	if h.operators != nil {
		values = h.operators
	}
	h.selectors[i].Select(candidates, handle, value, values, h.sink)
}

// scoreFacts implements spec.md §4.5 step 2: walk the state's facts,
// update the NoveltyTable, and accumulate B and W per spec.md §4.3.
func (h *NoveltyHeuristic) scoreFacts(state task.State, values []int) (b, w int) {
	for _, fact := range state.Facts() {
		novelPerEval := make([]int, len(values))
		nonNovelPerEval := make([]int, len(values))

		for i, v := range values {
			handle := task.EvaluatorHandle(i)
			prev := h.facts.Get(fact, handle)
			unseen := prev == table.Unseen
			novel, nonNovel := h.aggregator.FactDelta(unseen, prev, v, h.maxValueEverSeen)
			novelPerEval[i] = novel
			nonNovelPerEval[i] = nonNovel

			if unseen || prev > v {
				h.facts.TryImprove(fact, handle, v)
			}
		}

		b += aggregate.ReduceFact(novelPerEval)
		w += aggregate.ReduceFact(nonNovelPerEval)
	}
	return b, w
}

// updateMaxValueEverSeen implements spec.md §3's "largest-value
// tracker": monotone non-decreasing, Unseen until first write.
func (h *NoveltyHeuristic) updateMaxValueEverSeen(v int) {
	if h.maxValueEverSeen == table.Unseen || v > h.maxValueEverSeen {
		h.maxValueEverSeen = v
	}
}

// MaxValueEverSeen exposes the largest-value tracker for diagnostics
// (the novelty_max_value_ever_seen gauge fed by
// diagnostics.RecordMaxValueEverSeen).
func (h *NoveltyHeuristic) MaxValueEverSeen() int {
	return h.maxValueEverSeen
}
