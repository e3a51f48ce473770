package heuristic

import (
	"math"

	"github.com/corvid-labs/novelty/aggregate"
	"github.com/corvid-labs/novelty/preferred"
	"github.com/corvid-labs/novelty/task"
)

// NoThreshold is the sentinel "no threshold" value for CutoffBound
// (spec.md §3: "may be very negative; sentinel 'no threshold'").
const NoThreshold = math.MinInt32

// Unbounded is the sentinel "infinity" for NumOpsBound (spec.md §3/§6).
const Unbounded = math.MaxInt32

// Options is the immutable-after-construction configuration record from
// spec.md §3/§6. The zero value is not valid on its own — use
// DefaultOptions and override fields, the same pattern
// NikeGunn-tutu/internal/daemon.DefaultConfig() establishes for its own
// option sections.
type Options struct {
	Evals []task.Evaluator

	Type       aggregate.Type
	CutoffType preferred.CutoffType

	CutoffBound         int
	NumOpsBound         int
	NumOpsRelativeBound float64

	DumpValue             bool
	UsePreferredOperators bool
	Multiplier            int
}

// DefaultOptions returns the defaults from spec.md §6's option table.
// Evals is left empty; the caller must always supply it.
func DefaultOptions() Options {
	return Options{
		Type:                  aggregate.Basic,
		CutoffType:            preferred.NoCutoff,
		CutoffBound:           NoThreshold,
		NumOpsBound:           Unbounded,
		NumOpsRelativeBound:   1.0,
		DumpValue:             false,
		UsePreferredOperators: false,
		Multiplier:            1,
	}
}

// StoresOperatorValues reports whether the OperatorValueTable should be
// allocated: only when preferred-operator selection is enabled AND the
// active cutoff policy actually consults per-operator values (spec.md
// §4.2, §4.4, §8 "No double-work"). This is the Go counterpart of the
// original C++'s derived preferred_operators_from_evals /
// store_values_for_operators bookkeeping (see SPEC_FULL.md §3) — not a
// separate user-facing option, just a function of the two real ones.
func (o Options) StoresOperatorValues() bool {
	return o.UsePreferredOperators && o.CutoffType.NeedsOperatorTable()
}

// Validate implements the Configuration-error checks from spec.md §7.1:
// empty evals, or an enum value this build doesn't recognize. It is the
// only place a *ConfigError is constructed; everything past this point
// assumes a validated Options.
func (o Options) Validate() error {
	if len(o.Evals) == 0 {
		return newConfigError("Validate", "evals must be a non-empty list of evaluators")
	}
	if o.Multiplier < 1 {
		return newConfigError("Validate", "multiplier must be >= 1")
	}
	if o.NumOpsBound < 1 {
		return newConfigError("Validate", "num_ops_bound must be >= 1")
	}
	if o.NumOpsRelativeBound <= 0 || o.NumOpsRelativeBound > 1 {
		return newConfigError("Validate", "num_ops_relative_bound must be in (0, 1]")
	}
	switch o.Type {
	case aggregate.Basic, aggregate.SeparateNovel, aggregate.SeparateBoth, aggregate.SeparateBothAggregate:
	default:
		return newConfigError("Validate", "unknown novelty type")
	}
	switch o.CutoffType {
	case preferred.Argmax, preferred.AllOrdered, preferred.AllRandom, preferred.NoCutoff:
	default:
		return newConfigError("Validate", "unknown cutoff type")
	}
	return nil
}
