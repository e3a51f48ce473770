package table

import "github.com/corvid-labs/novelty/task"

// OperatorValueTable is the two-dimensional table P[operator][evaluator]
// -> int from spec.md §4.2. Unlike NoveltyTable it is allocated lazily —
// only when preferred-operator selection is enabled AND the active
// cutoff policy actually consults per-operator values (see spec.md §4.4,
// §8 "No double-work"). Construct it with NewOperatorValueTable only
// when that combination holds; callers that don't need it simply never
// allocate one.
type OperatorValueTable struct {
	cells [][]int
}

// NewOperatorValueTable allocates a table for numOperators operators and
// numEvaluators evaluators, all entries initialized to Unseen.
func NewOperatorValueTable(numOperators, numEvaluators int) *OperatorValueTable {
	t := &OperatorValueTable{cells: make([][]int, numOperators)}
	for i := range t.cells {
		col := make([]int, numEvaluators)
		for h := range col {
			col[h] = Unseen
		}
		t.cells[i] = col
	}
	return t
}

// Get returns P[op][h].
func (t *OperatorValueTable) Get(op task.OperatorID, h task.EvaluatorHandle) int {
	return t.cells[op][h]
}

// TryImprove applies the same monotone-min update rule as NoveltyTable,
// per (operator, evaluator) instead of per (fact, evaluator).
func (t *OperatorValueTable) TryImprove(op task.OperatorID, h task.EvaluatorHandle, v int) UpdateResult {
	return tryImprove(&t.cells[op][h], v)
}
