// Package diagnostics is the ambient observability layer around the
// novelty heuristic: Prometheus metrics, a live websocket dashboard, a
// sqlite-backed benchmark run-history store, and the chi router that
// serves all three. None of it is consulted by heuristic.Compute's
// control flow — it only ever observes already-computed events through
// the heuristic.DumpSink seam, so none of spec.md's Non-goals around
// persistence or concurrency inside a heuristic instance are affected.
package diagnostics

import "time"

// Event is what crosses the DumpSink boundary on every
// heuristic.NoveltyHeuristic.Compute call: enough to drive metrics, the
// dashboard, and run-history summaries without diagnostics depending on
// the heuristic package's internals.
type Event struct {
	RunID     string
	Score     int
	DeadEnd   bool
	Timestamp time.Time
}

// Sink implements heuristic.DumpSink: it fans every Dump call out to
// Prometheus (via RecordEvent's package-level collectors) and to any
// registered live subscribers (the dashboard Hub), tagged with a fixed
// RunID so a multi-replica bench.Runner can tell instances apart.
type Sink struct {
	RunID string
	Hub   *Hub // may be nil; Dump is then metrics-only

	now func() time.Time
}

// NewSink constructs a Sink for one heuristic instance's lifetime.
func NewSink(runID string, hub *Hub) *Sink {
	return &Sink{RunID: runID, Hub: hub, now: time.Now}
}

// Dump implements heuristic.DumpSink.
func (s *Sink) Dump(score int, deadEnd bool) {
	now := s.now
	if now == nil {
		now = time.Now
	}
	ev := Event{RunID: s.RunID, Score: score, DeadEnd: deadEnd, Timestamp: now()}

	RecordEvent(ev)
	if s.Hub != nil {
		s.Hub.Publish(ev)
	}
}
