package heuristic

import "log/slog"

// DumpSink receives the score NoveltyHeuristic.Compute emits when
// Options.DumpValue is set (spec.md §4.5 step 3, §6's "dump" option).
// diagnostics.Sink implements this directly, so the same event also
// feeds Prometheus metrics and the live dashboard without the heuristic
// package depending on either of them.
type DumpSink interface {
	Dump(score int, deadEnd bool)
}

// SlogDumpSink is the default DumpSink: one line per spec.md §4.5's
// "NoveltyValue <score>" format, via stdlib structured logging. No
// third-party logging library appears anywhere in the retrieval pack to
// ground one on (see DESIGN.md), so log/slog is the unforced choice.
type SlogDumpSink struct {
	Logger *slog.Logger
}

// Dump implements DumpSink.
func (s SlogDumpSink) Dump(score int, deadEnd bool) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if deadEnd {
		logger.Info("NoveltyValue", "value", "DEAD_END")
		return
	}
	logger.Info("NoveltyValue", "value", score)
}

// noopDumpSink is used when New is given a nil dump, so Compute never
// has to nil-check.
type noopDumpSink struct{}

func (noopDumpSink) Dump(int, bool) {}
