package preferred_test

import (
	"reflect"
	"testing"

	"github.com/corvid-labs/novelty/preferred"
	"github.com/corvid-labs/novelty/rng"
	"github.com/corvid-labs/novelty/table"
	"github.com/corvid-labs/novelty/task"
)

// fakeValues lets tests set up an OperatorValueTable's contents directly,
// without going through the orchestrator.
type fakeValues map[task.OperatorID]int

func (f fakeValues) Get(op task.OperatorID, _ task.EvaluatorHandle) int {
	v, ok := f[op]
	if !ok {
		return table.Unseen
	}
	return v
}

type recordingSink struct{ marked []task.OperatorID }

func (r *recordingSink) MarkPreferred(op task.OperatorID) { r.marked = append(r.marked, op) }

func TestSelectorAllOrderedScenario(t *testing.T) {
	// Scenario 6 from spec.md §8.
	values := fakeValues{1: table.Unseen, 2: 10, 3: 5, 4: 3}
	candidates := []task.OperatorID{1, 2, 3, 4}

	sel := preferred.New(preferred.AllOrdered, preferred.Bounds{
		CutoffBound:         0,
		NumOpsBound:         2,
		NumOpsRelativeBound: 1.0,
	}, rng.New(1))

	sink := &recordingSink{}
	sel.Select(candidates, 0, 4, values, sink)

	if len(sink.marked) != 2 {
		t.Fatalf("marked = %v, want 2 operators", sink.marked)
	}
	// o4 (stored 3, delta -1) must never appear: 3-4 = -1, not > 0.
	for _, op := range sink.marked {
		if op == 4 {
			t.Errorf("operator 4 should have been filtered out, got %v", sink.marked)
		}
	}
}

func TestSelectorArgmaxWithUnseenCandidate(t *testing.T) {
	values := fakeValues{10: 5, 11: 7} // 12 left Unseen deliberately
	candidates := []task.OperatorID{10, 11, 12}

	sel := preferred.New(preferred.Argmax, preferred.Bounds{
		NumOpsBound:         1000,
		NumOpsRelativeBound: 1.0,
	}, rng.New(1))

	sink := &recordingSink{}
	sel.Select(candidates, 0, 99, values, sink)

	want := []task.OperatorID{12}
	if !reflect.DeepEqual(sortedCopy(sink.marked), want) {
		t.Errorf("marked = %v, want only the Unseen candidate %v", sink.marked, want)
	}
}

func TestSelectorArgmaxAllSeenKeepsTiedMax(t *testing.T) {
	values := fakeValues{1: 5, 2: 9, 3: 9, 4: 3}
	candidates := []task.OperatorID{1, 2, 3, 4}

	sel := preferred.New(preferred.Argmax, preferred.Bounds{
		NumOpsBound:         1000,
		NumOpsRelativeBound: 1.0,
	}, rng.New(1))

	sink := &recordingSink{}
	sel.Select(candidates, 0, 0, values, sink)

	want := []task.OperatorID{2, 3}
	if !reflect.DeepEqual(sortedCopy(sink.marked), want) {
		t.Errorf("marked = %v, want %v", sink.marked, want)
	}
}

func TestSelectorNoCutoffKeepsEverythingInOrder(t *testing.T) {
	candidates := []task.OperatorID{5, 2, 9}
	sel := preferred.New(preferred.NoCutoff, preferred.Bounds{
		NumOpsBound:         1000,
		NumOpsRelativeBound: 1.0,
	}, rng.New(1))

	sink := &recordingSink{}
	// values may be nil: NoCutoff never reads the operator table.
	sel.Select(candidates, 0, 0, nil, sink)

	if !reflect.DeepEqual(sink.marked, candidates) {
		t.Errorf("marked = %v, want %v in original order", sink.marked, candidates)
	}
}

func TestSelectorRelativeBoundAppliesToOriginalCandidateSize(t *testing.T) {
	// spec.md §9 open question: the relative bound is computed against
	// the original candidate-set size, not the filtered size.
	values := fakeValues{} // everything Unseen -> ALL_RANDOM keeps all 6
	candidates := []task.OperatorID{1, 2, 3, 4, 5, 6}

	sel := preferred.New(preferred.AllRandom, preferred.Bounds{
		CutoffBound:         0,
		NumOpsBound:         1000,
		NumOpsRelativeBound: 0.5, // floor(0.5 * 6) = 3
	}, rng.New(1))

	sink := &recordingSink{}
	sel.Select(candidates, 0, 0, values, sink)

	if len(sink.marked) != 3 {
		t.Errorf("marked %v, want exactly 3 operators", sink.marked)
	}
}

func TestSelectorEmitsNothingWhenCapIsZero(t *testing.T) {
	values := fakeValues{}
	candidates := []task.OperatorID{1, 2, 3}
	sel := preferred.New(preferred.NoCutoff, preferred.Bounds{
		NumOpsBound:         0,
		NumOpsRelativeBound: 1.0,
	}, rng.New(1))

	sink := &recordingSink{}
	sel.Select(candidates, 0, 0, values, sink)
	if len(sink.marked) != 0 {
		t.Errorf("marked = %v, want none", sink.marked)
	}
}

func TestParseCutoffType(t *testing.T) {
	cases := map[string]preferred.CutoffType{
		"argmax":      preferred.Argmax,
		"all_ordered": preferred.AllOrdered,
		"all_random":  preferred.AllRandom,
		"no_cutoff":   preferred.NoCutoff,
	}
	for s, want := range cases {
		got, ok := preferred.ParseCutoffType(s)
		if !ok || got != want {
			t.Errorf("ParseCutoffType(%q) = (%v,%v)", s, got, ok)
		}
	}
	if _, ok := preferred.ParseCutoffType("bogus"); ok {
		t.Error("ParseCutoffType(bogus) should fail")
	}
}

func TestNeedsOperatorTable(t *testing.T) {
	if preferred.NoCutoff.NeedsOperatorTable() {
		t.Error("NoCutoff should not need the operator table")
	}
	for _, c := range []preferred.CutoffType{preferred.Argmax, preferred.AllOrdered, preferred.AllRandom} {
		if !c.NeedsOperatorTable() {
			t.Errorf("%v should need the operator table", c)
		}
	}
}

func sortedCopy(ops []task.OperatorID) []task.OperatorID {
	out := make([]task.OperatorID, len(ops))
	copy(out, ops)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
