// Package main is the noveltyctl CLI: a thin cobra front end over
// registry, bench, and diagnostics, grounded on
// NikeGunn-tutu/internal/cli's root/subcommand split (one file per
// command group, package-level *cobra.Command vars wired together in
// init, flags bound to package-level vars with Flags().XVar).
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "noveltyctl",
	Short: "Run and inspect the novelty heuristic",
	Long: `noveltyctl drives the novelty heuristic outside of a real planner:
run a single demo search, benchmark many replicas concurrently, or serve
the live diagnostics dashboard over HTTP.`,
}

func init() {
	defaultConfig := defaultConfigPath()
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfig,
		fmt.Sprintf("path to the novelty heuristic TOML config (default %s)", defaultConfig))
}

// defaultConfigPath mirrors NikeGunn-tutu's ~/.tutu/config.toml
// convention, scoped to this module's own config file name.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "novelty.toml"
	}
	return filepath.Join(home, ".noveltyctl", "config.toml")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "noveltyctl:", err)
		os.Exit(1)
	}
}
