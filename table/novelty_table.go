// Package table implements the two monotone per-key "best value so far"
// tables the novelty heuristic is built on: NoveltyTable (per fact) and
// OperatorValueTable (per operator). Both apply the same update rule —
// overwrite iff the previous entry is Unseen or strictly greater than
// the new value — so the update rule (tryImprove, below) is shared;
// the two tables differ only in what they're indexed by and when
// they're allocated.
package table

import "github.com/corvid-labs/novelty/task"

// Unseen is the sentinel meaning "no observation recorded yet". It is
// kept textually distinct from heuristic.DeadEnd (spec.md §3 notes the
// original C++ source conflates the two); see DESIGN.md for the
// resolution of that open question.
const Unseen = -1

// Outcome classifies the result of an attempted table update, letting
// callers (the ScoreAggregator in particular) branch on what happened
// without recomputing the comparison themselves.
type Outcome int

const (
	// WasUnseen: the entry had no prior observation; the table now holds v.
	WasUnseen Outcome = iota
	// Improved: the prior value was strictly greater than v; the table now holds v.
	Improved
	// Unchanged: the prior value was <= v; the table entry is untouched.
	Unchanged
)

// UpdateResult is what NoveltyTable.TryImprove and OperatorValueTable.TryImprove
// return: the previous value (before this call) and how the update went.
type UpdateResult struct {
	Previous int
	Outcome  Outcome
}

// tryImprove is the single monotone-min update rule shared by both
// tables: overwrite *cell with v iff *cell == Unseen or *cell > v.
func tryImprove(cell *int, v int) UpdateResult {
	prev := *cell
	switch {
	case prev == Unseen:
		*cell = v
		return UpdateResult{Previous: prev, Outcome: WasUnseen}
	case prev > v:
		*cell = v
		return UpdateResult{Previous: prev, Outcome: Improved}
	default:
		return UpdateResult{Previous: prev, Outcome: Unchanged}
	}
}

// NoveltyTable is the three-dimensional table T[variable][value][evaluator]
// -> int from spec.md §4.1. It is allocated once from the task's
// variable list and never resized.
type NoveltyTable struct {
	// cells[var][val][h]; the middle dimension's length is that
	// variable's domain size.
	cells [][][]int
}

// NewNoveltyTable allocates a table sized for vars, each entry
// initialized to Unseen, tracking numEvaluators underlying heuristics.
func NewNoveltyTable(vars []task.Variable, numEvaluators int) *NoveltyTable {
	t := &NoveltyTable{cells: make([][][]int, len(vars))}
	for _, v := range vars {
		row := make([][]int, v.DomainSize)
		for val := range row {
			col := make([]int, numEvaluators)
			for h := range col {
				col[h] = Unseen
			}
			row[val] = col
		}
		t.cells[v.ID] = row
	}
	return t
}

// Get returns T[fact][h] without modifying it.
func (t *NoveltyTable) Get(f task.Fact, h task.EvaluatorHandle) int {
	return t.cells[f.Var][f.Val][h]
}

// TryImprove applies the monotone update at (fact, h) with value v and
// reports the previous value and outcome, per spec.md §4.1.
func (t *NoveltyTable) TryImprove(f task.Fact, h task.EvaluatorHandle, v int) UpdateResult {
	return tryImprove(&t.cells[f.Var][f.Val][h], v)
}
