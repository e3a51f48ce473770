// Package bench runs many independent novelty-heuristic instances
// concurrently over demo grid scenarios and fans their diagnostic
// events into one stream. spec.md §5 forbids concurrency inside a
// single heuristic instance; that's preserved exactly here — each
// goroutine owns one heuristic.NoveltyHeuristic, one rng.Sampler, and
// its own tables, and no state crosses a goroutine boundary except the
// read-only diagnostics.Event it emits.
package bench

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/corvid-labs/novelty/registry"
)

// Scenario is one bench run's configuration: a grid layout, how many
// independent replicas to run against it, and the heuristic options
// each replica uses.
type Scenario struct {
	Name        string         `mapstructure:"name"`
	Layout      []string       `mapstructure:"layout"`
	NumReplicas int            `mapstructure:"num_replicas"`
	MaxSteps    int            `mapstructure:"max_steps"`
	Options     registry.Config `mapstructure:"options"`
}

// scenarioFile is the top-level shape of a scenario YAML document.
type scenarioFile struct {
	Scenarios []Scenario `mapstructure:"scenarios"`
}

// LoadScenarios reads a YAML scenario file, the same
// viper.New/SetConfigFile/SetConfigType/AddConfigPath/ReadInConfig/
// Unmarshal sequence niceyeti-tabular/tabular/reinforcement/learning.go's
// FromYaml uses for its own training config.
func LoadScenarios(path string) ([]Scenario, error) {
	vp := viper.New()
	vp.SetConfigFile(filepath.Base(path))
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))
	if err := vp.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("bench: read %s: %w", path, err)
	}

	var file scenarioFile
	if err := vp.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("bench: decode %s: %w", path, err)
	}

	for i := range file.Scenarios {
		if file.Scenarios[i].NumReplicas <= 0 {
			file.Scenarios[i].NumReplicas = 1
		}
		if file.Scenarios[i].MaxSteps <= 0 {
			file.Scenarios[i].MaxSteps = 200
		}
	}
	return file.Scenarios, nil
}
