package diagnostics_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/corvid-labs/novelty/diagnostics"
)

func TestStoreInsertAndHistoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.sqlite")
	store, err := diagnostics.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, score := range []int{3, 5, 7} {
		rs := diagnostics.RunSummary{
			RunID:          t.Name() + string(rune('a'+i)),
			ScenarioName:   "grid-demo",
			OptionHash:     "basic-noCutoff-m1",
			EvaluatorCount: 1,
			FinalScore:     score,
			DeadEndCount:   0,
			WallTime:       time.Duration(i+1) * time.Millisecond,
			CompletedAt:    base.Add(time.Duration(i) * time.Hour),
		}
		if err := store.InsertRunSummary(rs); err != nil {
			t.Fatalf("InsertRunSummary[%d]: %v", i, err)
		}
	}

	history, err := store.ScenarioHistory("grid-demo", 2)
	if err != nil {
		t.Fatalf("ScenarioHistory: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2 (limit applied)", len(history))
	}
	// Newest first.
	if history[0].FinalScore != 7 || history[1].FinalScore != 5 {
		t.Errorf("history order = %+v, want [7, 5]", history)
	}
}

func TestStoreUnknownScenarioIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.sqlite")
	store, err := diagnostics.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	history, err := store.ScenarioHistory("nonexistent", 10)
	if err != nil {
		t.Fatalf("ScenarioHistory: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("history = %+v, want empty", history)
	}
}
