package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corvid-labs/novelty/examples/grid"
	"github.com/corvid-labs/novelty/heuristic"
	"github.com/corvid-labs/novelty/registry"
	"github.com/corvid-labs/novelty/rng"
	"github.com/corvid-labs/novelty/task"
)

var defaultLayout = []string{
	".......",
	".##....",
	".i#.#..",
	"....#..",
	"..####.",
	"......g",
}

var runMaxSteps int

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().IntVar(&runMaxSteps, "max-steps", 200, "maximum grid steps before giving up")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single demo search against the bundled grid task",
	RunE:  runRunE,
}

func runRunE(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigOrDefault(configPath)
	if err != nil {
		return err
	}

	world := grid.NewWorld(defaultLayout)
	evals := []task.Evaluator{
		grid.GoalCountEvaluator{World: world},
		grid.ManhattanEvaluator{World: world},
	}

	opts, err := cfg.Resolve(evals)
	if err != nil {
		return fmt.Errorf("noveltyctl run: %w", err)
	}

	sink := task.FuncSink(func(op task.OperatorID) {
		fmt.Fprintf(os.Stdout, "preferred: %d\n", op)
	})
	h := heuristic.New(world, opts, rng.NewFromEntropy(), sink, heuristic.SlogDumpSink{})

	state := grid.State{}
	for step := 0; step < runMaxSteps; step++ {
		score := h.Compute(state)
		if score == heuristic.DeadEnd {
			fmt.Fprintln(os.Stdout, "dead end, stopping")
			return nil
		}
		if world.IsGoal(state) {
			fmt.Fprintf(os.Stdout, "goal reached after %d steps\n", step)
			return nil
		}

		ops := world.ApplicableOperators(state)
		if len(ops) == 0 {
			fmt.Fprintln(os.Stdout, "no applicable operators, stopping")
			return nil
		}
		op := ops[step%len(ops)]
		next, ok := world.Successor(state, op)
		if !ok {
			fmt.Fprintln(os.Stdout, "chosen operator inapplicable, stopping")
			return nil
		}
		h.NotifyStateTransition(op)
		state = next
	}

	fmt.Fprintf(os.Stdout, "stopped after %d steps without reaching the goal\n", runMaxSteps)
	return nil
}

// loadConfigOrDefault mirrors registry.Load's "start from DefaultConfig,
// override from file" contract but tolerates a missing file, since
// noveltyctl run works fine with no config.toml present at all.
func loadConfigOrDefault(path string) (registry.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return registry.DefaultConfig(), nil
	}
	return registry.Load(path)
}
