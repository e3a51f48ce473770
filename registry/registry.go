// Package registry loads heuristic.Options from a TOML configuration
// file, the same "plugin name + defaults + file override" shape
// NikeGunn-tutu's internal/daemon.DefaultConfig() establishes for its
// own config sections, decoded with the go.mod-declared
// github.com/BurntSushi/toml rather than hand-rolled parsing.
package registry

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/corvid-labs/novelty/aggregate"
	"github.com/corvid-labs/novelty/heuristic"
	"github.com/corvid-labs/novelty/preferred"
	"github.com/corvid-labs/novelty/task"
)

// Name is the plugin identifier under which this heuristic registers
// itself with a planner (spec.md §6).
const Name = "novelty"

// Config is the on-disk shape of a novelty heuristic configuration
// block, decoded directly from TOML. The toml tags are the config-file
// spellings; string-valued Type/CutoffType are
// resolved to their enums by Resolve.
type Config struct {
	Type       string `toml:"novelty_type" mapstructure:"novelty_type"`
	CutoffType string `toml:"cutoff_type" mapstructure:"cutoff_type"`

	CutoffBound         *int64   `toml:"cutoff_bound" mapstructure:"cutoff_bound"`
	NumOpsBound         *int64   `toml:"num_ops_bound" mapstructure:"num_ops_bound"`
	NumOpsRelativeBound *float64 `toml:"num_ops_relative_bound" mapstructure:"num_ops_relative_bound"`

	DumpValue             bool `toml:"dump_value" mapstructure:"dump_value"`
	UsePreferredOperators bool `toml:"use_preferred_operators" mapstructure:"use_preferred_operators"`
	Multiplier            int  `toml:"multiplier" mapstructure:"multiplier"`
}

// DefaultConfig mirrors spec.md §6's option-table defaults, in the
// on-disk string/pointer shape Load and Resolve operate on.
func DefaultConfig() Config {
	return Config{
		Type:                  aggregate.Basic.String(),
		CutoffType:            preferred.NoCutoff.String(),
		DumpValue:             false,
		UsePreferredOperators: false,
		Multiplier:            1,
	}
}

// Load reads and decodes a TOML file at path into a Config, starting
// from DefaultConfig so unset fields keep spec.md §6's defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("registry: decode %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve turns a decoded Config plus the evaluator list a caller
// constructed itself (spec.md §6: evals is supplied by the planner, not
// config) into a validated heuristic.Options, ready for heuristic.New.
func (c Config) Resolve(evals []task.Evaluator) (heuristic.Options, error) {
	opts := heuristic.DefaultOptions()
	opts.Evals = evals

	noveltyType, ok := aggregate.ParseType(c.Type)
	if !ok {
		return heuristic.Options{}, fmt.Errorf("registry: unknown novelty_type %q", c.Type)
	}
	opts.Type = noveltyType

	cutoffType, ok := preferred.ParseCutoffType(c.CutoffType)
	if !ok {
		return heuristic.Options{}, fmt.Errorf("registry: unknown cutoff_type %q", c.CutoffType)
	}
	opts.CutoffType = cutoffType

	if c.CutoffBound != nil {
		opts.CutoffBound = int(*c.CutoffBound)
	}
	if c.NumOpsBound != nil {
		opts.NumOpsBound = int(*c.NumOpsBound)
	}
	if c.NumOpsRelativeBound != nil {
		opts.NumOpsRelativeBound = *c.NumOpsRelativeBound
	}

	opts.DumpValue = c.DumpValue
	opts.UsePreferredOperators = c.UsePreferredOperators
	if c.Multiplier > 0 {
		opts.Multiplier = c.Multiplier
	}

	if err := opts.Validate(); err != nil {
		return heuristic.Options{}, err
	}
	return opts, nil
}
