package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/corvid-labs/novelty/bench"
	"github.com/corvid-labs/novelty/diagnostics"
)

var (
	benchScenarioFile string
	benchHistoryDB    string
)

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().StringVarP(&benchScenarioFile, "scenarios", "s", "", "path to a scenario YAML file (required)")
	benchCmd.Flags().StringVar(&benchHistoryDB, "history", "", "optional sqlite path to persist run summaries")
	_ = benchCmd.MarkFlagRequired("scenarios")
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run every scenario in a YAML file across concurrent replicas",
	RunE:  benchRunE,
}

func benchRunE(cmd *cobra.Command, args []string) error {
	scenarios, err := bench.LoadScenarios(benchScenarioFile)
	if err != nil {
		return fmt.Errorf("noveltyctl bench: %w", err)
	}

	runner := &bench.Runner{}
	if benchHistoryDB != "" {
		store, err := diagnostics.Open(benchHistoryDB)
		if err != nil {
			return fmt.Errorf("noveltyctl bench: %w", err)
		}
		defer store.Close()
		runner.Store = store
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	for _, scenario := range scenarios {
		events, err := runner.Run(ctx, scenario)
		if err != nil {
			return fmt.Errorf("noveltyctl bench: scenario %q: %w", scenario.Name, err)
		}

		deadEnds := 0
		for _, ev := range events {
			if ev.DeadEnd {
				deadEnds++
			}
		}
		fmt.Fprintf(os.Stdout, "%s: %d replicas, %d events, %d dead ends\n",
			scenario.Name, scenario.NumReplicas, len(events), deadEnds)
	}
	return nil
}
