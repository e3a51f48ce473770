package diagnostics

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists completed benchmark run summaries, grounded on
// NikeGunn-tutu/internal/infra/sqlite's DB wrapper (migration-statement
// slice run up front, upsert-style Exec/Query methods). It never sees a
// NoveltyTable or OperatorValueTable — only the orchestrator's finished,
// read-only summary for one run, so spec.md's "no persistence across
// runs" Non-goal still applies to the heuristic's own state.
type Store struct {
	db *sql.DB
}

// RunSummary is one completed bench.Runner replica's result.
type RunSummary struct {
	RunID         string
	ScenarioName  string
	OptionHash    string
	EvaluatorCount int
	FinalScore    int
	DeadEndCount  int
	WallTime      time.Duration
	CompletedAt   time.Time
}

// migrations are the Store's schema statements, executed in order; each
// is idempotent so Open can run them on every startup.
func migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS run_summaries (
			run_id          TEXT PRIMARY KEY,
			scenario_name   TEXT NOT NULL,
			option_hash     TEXT NOT NULL,
			evaluator_count INTEGER NOT NULL DEFAULT 0,
			final_score     INTEGER NOT NULL DEFAULT 0,
			dead_end_count  INTEGER NOT NULL DEFAULT 0,
			wall_time_ms    INTEGER NOT NULL DEFAULT 0,
			completed_at    TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_summaries_scenario ON run_summaries(scenario_name)`,
	}
}

// Open opens (creating if necessary) a sqlite database at path and
// applies migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("diagnostics: open %s: %w", path, err)
	}
	for _, stmt := range migrations() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("diagnostics: migrate: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertRunSummary records one completed replica's summary.
func (s *Store) InsertRunSummary(rs RunSummary) error {
	_, err := s.db.Exec(`
		INSERT INTO run_summaries
			(run_id, scenario_name, option_hash, evaluator_count, final_score, dead_end_count, wall_time_ms, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			final_score    = excluded.final_score,
			dead_end_count = excluded.dead_end_count,
			wall_time_ms   = excluded.wall_time_ms,
			completed_at   = excluded.completed_at
	`, rs.RunID, rs.ScenarioName, rs.OptionHash, rs.EvaluatorCount, rs.FinalScore,
		rs.DeadEndCount, rs.WallTime.Milliseconds(), rs.CompletedAt.Format(time.RFC3339))
	return err
}

// ScenarioHistory returns the most recent summaries for one scenario,
// newest first, for `noveltyctl bench --history` comparisons.
func (s *Store) ScenarioHistory(scenarioName string, limit int) ([]RunSummary, error) {
	rows, err := s.db.Query(`
		SELECT run_id, scenario_name, option_hash, evaluator_count, final_score, dead_end_count, wall_time_ms, completed_at
		FROM run_summaries
		WHERE scenario_name = ?
		ORDER BY completed_at DESC
		LIMIT ?
	`, scenarioName, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var rs RunSummary
		var wallMS int64
		var completedStr string
		if err := rows.Scan(&rs.RunID, &rs.ScenarioName, &rs.OptionHash, &rs.EvaluatorCount,
			&rs.FinalScore, &rs.DeadEndCount, &wallMS, &completedStr); err != nil {
			return nil, err
		}
		rs.WallTime = time.Duration(wallMS) * time.Millisecond
		rs.CompletedAt, _ = time.Parse(time.RFC3339, completedStr)
		out = append(out, rs)
	}
	return out, rows.Err()
}
