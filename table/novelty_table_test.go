package table_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/corvid-labs/novelty/table"
	"github.com/corvid-labs/novelty/task"
)

func TestNoveltyTableMonotoneUpdate(t *testing.T) {
	vars := []task.Variable{{ID: 0, DomainSize: 2}}
	fact := task.Fact{Var: 0, Val: 0}
	h := task.EvaluatorHandle(0)

	Convey("Given a freshly allocated NoveltyTable", t, func() {
		nt := table.NewNoveltyTable(vars, 1)

		Convey("every entry starts Unseen", func() {
			So(nt.Get(fact, h), ShouldEqual, table.Unseen)
		})

		Convey("the first observation always improves the entry", func() {
			res := nt.TryImprove(fact, h, 5)
			So(res.Outcome, ShouldEqual, table.WasUnseen)
			So(res.Previous, ShouldEqual, table.Unseen)
			So(nt.Get(fact, h), ShouldEqual, 5)

			Convey("a strictly worse or equal observation leaves the entry unchanged", func() {
				res := nt.TryImprove(fact, h, 5)
				So(res.Outcome, ShouldEqual, table.Unchanged)
				So(res.Previous, ShouldEqual, 5)
				So(nt.Get(fact, h), ShouldEqual, 5)

				res = nt.TryImprove(fact, h, 9)
				So(res.Outcome, ShouldEqual, table.Unchanged)
				So(nt.Get(fact, h), ShouldEqual, 5)
			})

			Convey("a strictly better observation improves the entry", func() {
				res := nt.TryImprove(fact, h, 3)
				So(res.Outcome, ShouldEqual, table.Improved)
				So(res.Previous, ShouldEqual, 5)
				So(nt.Get(fact, h), ShouldEqual, 3)
			})
		})
	})
}

func TestNoveltyTableIsIndependentPerVariableValueAndEvaluator(t *testing.T) {
	vars := []task.Variable{
		{ID: 0, DomainSize: 2},
		{ID: 1, DomainSize: 3},
	}
	nt := table.NewNoveltyTable(vars, 2)

	nt.TryImprove(task.Fact{Var: 0, Val: 0}, 0, 10)
	nt.TryImprove(task.Fact{Var: 0, Val: 1}, 0, 20)
	nt.TryImprove(task.Fact{Var: 1, Val: 2}, 1, 30)

	Convey("updates do not leak across variables, values, or evaluators", t, func() {
		So(nt.Get(task.Fact{Var: 0, Val: 0}, 0), ShouldEqual, 10)
		So(nt.Get(task.Fact{Var: 0, Val: 1}, 0), ShouldEqual, 20)
		So(nt.Get(task.Fact{Var: 0, Val: 0}, 1), ShouldEqual, table.Unseen)
		So(nt.Get(task.Fact{Var: 1, Val: 2}, 1), ShouldEqual, 30)
		So(nt.Get(task.Fact{Var: 1, Val: 0}, 0), ShouldEqual, table.Unseen)
	})
}
