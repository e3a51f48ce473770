package bench

import (
	"context"
	"time"

	"github.com/google/uuid"
	channerics "github.com/niceyeti/channerics/channels"

	"github.com/corvid-labs/novelty/diagnostics"
	"github.com/corvid-labs/novelty/examples/grid"
	"github.com/corvid-labs/novelty/heuristic"
	"github.com/corvid-labs/novelty/rng"
	"github.com/corvid-labs/novelty/task"
)

// countingSink wraps a task.Sink to count preferred-operator marks made
// during a single Compute call, so the replica goroutine can report that
// count to diagnostics.RecordPreferredOps without heuristic depending on
// diagnostics (spec.md's orchestrator stays ignorant of its observers).
type countingSink struct {
	inner task.Sink
	count int
}

func (c *countingSink) MarkPreferred(op task.OperatorID) {
	c.count++
	if c.inner != nil {
		c.inner.MarkPreferred(op)
	}
}

// Runner executes one Scenario's replicas concurrently. Each replica is
// entirely independent: its own World walk, its own
// heuristic.NoveltyHeuristic, its own rng.Sampler seeded distinctly so
// replicas don't share a random sequence. Replica goroutines never touch
// each other's tables or sink state — the only shared object is the
// channerics-merged output channel.
type Runner struct {
	Hub   *diagnostics.Hub // optional; nil disables the live dashboard feed
	Store *diagnostics.Store // optional; nil disables run-history persistence
}

// Run executes every replica of scenario and blocks until all finish,
// returning the fanned-in event stream already fully drained into a
// slice (bench runs are bounded, not long-lived services, so a
// channel-of-events API would just be drained by the caller anyway).
func (r *Runner) Run(ctx context.Context, scenario Scenario) ([]diagnostics.Event, error) {
	world := grid.NewWorld(scenario.Layout)
	evals := []task.Evaluator{
		grid.GoalCountEvaluator{World: world},
		grid.ManhattanEvaluator{World: world},
	}

	opts, err := scenario.Options.Resolve(evals)
	if err != nil {
		return nil, err
	}

	channels := make([]<-chan diagnostics.Event, 0, scenario.NumReplicas)
	for i := 0; i < scenario.NumReplicas; i++ {
		channels = append(channels, r.runReplica(ctx, scenario, world, opts, uint64(i)))
	}

	merged := channerics.Merge(ctx.Done(), channels...)

	var events []diagnostics.Event
	for ev := range merged {
		events = append(events, ev)
	}
	return events, nil
}

// runReplica runs one independent heuristic instance walking the grid
// (at step i it applies applicable operator number i modulo their
// count; evaluator values do not steer the walk), for up to scenario.MaxSteps
// steps or until the goal is reached, emitting one diagnostics.Event per
// Compute call on the returned channel.
func (r *Runner) runReplica(
	ctx context.Context,
	scenario Scenario,
	world *grid.World,
	opts heuristic.Options,
	replicaSeed uint64,
) <-chan diagnostics.Event {
	out := make(chan diagnostics.Event)
	runID := uuid.New().String()

	go func() {
		defer close(out)

		start := time.Now()
		sampler := rng.New(replicaSeed + 1)
		sink := &countingSink{}
		dump := diagnostics.NewSink(runID, r.Hub)

		// Compute only calls its DumpSink for finite scores when DumpValue
		// is set, so it is forced on here to emit one Event per call.
		opts.DumpValue = true
		h := heuristic.New(world, opts, sampler, sink, forwardingDumpSink{out: out, runID: runID, inner: dump})

		state := grid.State{}
		deadEnds := 0
		finalScore := 0
		for step := 0; step < scenario.MaxSteps; step++ {
			select {
			case <-ctx.Done():
				return
			default:
			}

			sink.count = 0
			score := h.Compute(state)
			if score == heuristic.DeadEnd {
				deadEnds++
				break
			}
			finalScore = score
			diagnostics.RecordPreferredOps(runID, sink.count)
			diagnostics.RecordMaxValueEverSeen(runID, h.MaxValueEverSeen())

			if world.IsGoal(state) {
				break
			}

			ops := world.ApplicableOperators(state)
			if len(ops) == 0 {
				break
			}
			op := ops[step%len(ops)]
			next, ok := world.Successor(state, op)
			if !ok {
				break
			}
			h.NotifyStateTransition(op)
			state = next
		}

		if r.Store != nil {
			_ = r.Store.InsertRunSummary(diagnostics.RunSummary{
				RunID:          runID,
				ScenarioName:   scenario.Name,
				OptionHash:     opts.Type.String() + "-" + opts.CutoffType.String(),
				EvaluatorCount: len(opts.Evals),
				FinalScore:     finalScore,
				DeadEndCount:   deadEnds,
				WallTime:       time.Since(start),
				CompletedAt:    time.Now(),
			})
		}
	}()

	return out
}

// forwardingDumpSink implements heuristic.DumpSink by both forwarding to
// a diagnostics.Sink (metrics + live dashboard) and publishing the same
// Event onto this replica's own output channel, so Runner.Run's caller
// sees every Compute call without polling the Store or Hub.
type forwardingDumpSink struct {
	out   chan<- diagnostics.Event
	runID string
	inner *diagnostics.Sink
}

func (f forwardingDumpSink) Dump(score int, deadEnd bool) {
	f.inner.Dump(score, deadEnd)
	f.out <- diagnostics.Event{RunID: f.runID, Score: score, DeadEnd: deadEnd, Timestamp: time.Now()}
}
