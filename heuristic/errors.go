package heuristic

import "fmt"

// ConfigError is spec.md §7.1's Configuration error: fatal, raised
// before any search work, for an empty evals list or an enum value the
// parser itself should have already rejected. Shaped after
// xDarkicex-logic's core.LogicError (System/Op/Message).
type ConfigError struct {
	System  string
	Op      string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s config error in %s: %s", e.System, e.Op, e.Message)
}

func newConfigError(op, message string) *ConfigError {
	return &ConfigError{System: "novelty", Op: op, Message: message}
}

// InvariantError marks spec.md §7.3's Invariant violation: an enum
// branch reached at runtime that Validate should have made unreachable.
// These are latent bugs, not user-facing errors — compute panics with
// one rather than returning it, matching spec.md §7's "fatal abort"
// language and the original C++'s ABORT()/exit_with() calls.
type InvariantError struct {
	Op      string
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("novelty: invariant violation in %s: %s", e.Op, e.Message)
}

func newInvariantError(op, message string) *InvariantError {
	return &InvariantError{Op: op, Message: message}
}
