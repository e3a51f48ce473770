package bench_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/corvid-labs/novelty/bench"
)

const sampleYAML = `
scenarios:
  - name: small-basic
    layout:
      - "...."
      - ".##."
      - ".i#."
      - "...g"
    num_replicas: 3
    max_steps: 50
    options:
      novelty_type: basic
      cutoff_type: no_cutoff
      use_preferred_operators: false
  - name: defaults-applied
    layout:
      - "..g"
    options:
      novelty_type: basic
      cutoff_type: argmax
`

func writeYAML(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scenarios.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadScenariosDecodesLayoutAndOptions(t *testing.T) {
	path := writeYAML(t, sampleYAML)

	scenarios, err := bench.LoadScenarios(path)
	if err != nil {
		t.Fatalf("LoadScenarios: %v", err)
	}
	if len(scenarios) != 2 {
		t.Fatalf("len(scenarios) = %d, want 2", len(scenarios))
	}

	first := scenarios[0]
	if first.Name != "small-basic" || first.NumReplicas != 3 || first.MaxSteps != 50 {
		t.Errorf("first scenario decoded wrong: %+v", first)
	}
	if len(first.Layout) != 4 {
		t.Errorf("first.Layout = %v, want 4 rows", first.Layout)
	}
	if first.Options.Type != "basic" || first.Options.CutoffType != "no_cutoff" {
		t.Errorf("first.Options decoded wrong: %+v", first.Options)
	}
}

func TestLoadScenariosAppliesDefaultsWhenOmitted(t *testing.T) {
	path := writeYAML(t, sampleYAML)

	scenarios, err := bench.LoadScenarios(path)
	if err != nil {
		t.Fatalf("LoadScenarios: %v", err)
	}

	second := scenarios[1]
	if second.NumReplicas != 1 {
		t.Errorf("NumReplicas = %d, want default 1", second.NumReplicas)
	}
	if second.MaxSteps != 200 {
		t.Errorf("MaxSteps = %d, want default 200", second.MaxSteps)
	}
}

func TestLoadScenariosRejectsMissingFile(t *testing.T) {
	if _, err := bench.LoadScenarios(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a nonexistent scenario file")
	}
}
