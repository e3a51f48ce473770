package diagnostics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Top-level promauto-registered collectors, grounded on
// NikeGunn-tutu/internal/infra/observability.go's package-var metrics
// shape — one var per signal, namespaced rather than built per instance,
// with run_id as a label so a multi-replica bench.Runner's instances
// show up distinctly without separate collector registrations per run.

var scoreHistogram = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "novelty",
	Name:      "score",
	Help:      "The value NoveltyHeuristic.Compute returned, per call.",
	Buckets:   prometheus.LinearBuckets(0, 1, 10),
}, []string{"run_id"})

var deadEndsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "novelty",
	Name:      "dead_ends_total",
	Help:      "Total DEAD_END short-circuits returned by Compute.",
}, []string{"run_id"})

var preferredOpsHistogram = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "novelty",
	Name:      "preferred_ops",
	Help:      "Operators marked preferred per Compute call, summed over evaluators.",
	Buckets:   prometheus.LinearBuckets(0, 2, 10),
}, []string{"run_id"})

var maxValueEverSeenGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "novelty",
	Name:      "max_value_ever_seen",
	Help:      "The largest-value tracker's current value, one gauge per run.",
}, []string{"run_id"})

// RecordEvent updates the score/dead-end collectors for one Compute
// call. Sink.Dump is the only caller in this module.
func RecordEvent(ev Event) {
	if ev.DeadEnd {
		deadEndsTotal.WithLabelValues(ev.RunID).Inc()
		return
	}
	scoreHistogram.WithLabelValues(ev.RunID).Observe(float64(ev.Score))
}

// RecordPreferredOps updates the preferred-operator histogram. Callers
// that use preferred-operator selection report their own per-call count
// here since Event (the DumpSink payload) doesn't carry it — dump_value
// and use_preferred_operators are independent options (spec.md §6).
func RecordPreferredOps(runID string, count int) {
	preferredOpsHistogram.WithLabelValues(runID).Observe(float64(count))
}

// RecordMaxValueEverSeen mirrors the orchestrator's largest-value
// tracker (heuristic.NoveltyHeuristic.MaxValueEverSeen) into a gauge.
func RecordMaxValueEverSeen(runID string, v int) {
	maxValueEverSeenGauge.WithLabelValues(runID).Set(float64(v))
}
