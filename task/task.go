// Package task defines the external collaborator contracts the novelty
// heuristic is built against: the planning task model, its evaluators,
// and the identifiers that flow between them. The heuristic packages
// never construct a Task themselves; a real planner or, for tests and
// the bundled demo, examples/grid supplies one.
package task

import "fmt"

// VariableID indexes a state variable in [0, V).
type VariableID int

// Variable describes one state variable and its finite domain.
type Variable struct {
	ID         VariableID
	DomainSize int
}

// Fact is an assignment variable = value.
type Fact struct {
	Var VariableID
	Val int
}

// OperatorID indexes a planning operator in [0, O). NoOperator is the
// sentinel "none" value used before any operator has been applied.
type OperatorID int

// NoOperator is the sentinel meaning "no operator" (the initial state
// was not reached by applying anything).
const NoOperator OperatorID = -1

// Valid reports whether id names a real operator rather than the
// sentinel.
func (id OperatorID) Valid() bool {
	return id >= 0
}

// Infinity is the value an Evaluator returns to signal that a state is
// a dead end (provably cannot reach the goal). It is intentionally not
// representable by any finite heuristic value.
const Infinity = int(^uint(0) >> 1) // math.MaxInt, without importing math for one constant

// EvaluatorHandle is an opaque, positionally-indexed reference to an
// underlying heuristic evaluator. The index is assigned by whoever
// constructs the evaluator list passed to heuristic.Options.Evals; it
// is stable for the lifetime of a NoveltyHeuristic instance.
type EvaluatorHandle int

// Evaluator is the capability interface an underlying heuristic must
// satisfy. It mirrors the "value(state)" / "preferred_operators(state)"
// contract from spec.md §6; this package does not implement it — only
// examples/grid and tests do.
type Evaluator interface {
	// Value returns the evaluator's estimate for state, or task.Infinity
	// if state is a dead end.
	Value(state State) int
	// PreferredOperators returns this evaluator's own candidate set of
	// operators worth branching on from state. May be empty.
	PreferredOperators(state State) []OperatorID
	// Name identifies the evaluator for diagnostics.
	Name() string
}

// State is the minimal read-only view of a search state the heuristic
// needs: its facts.
type State interface {
	// Facts returns every (variable, value) pair true in this state, one
	// per variable (a state assigns every variable exactly once).
	Facts() []Fact
}

// Task is the planning task model: its variables and the total number
// of operators. Facts and operators are otherwise addressed purely by
// ID; the heuristic never needs operator semantics.
type Task interface {
	Variables() []Variable
	NumOperators() int
}

// Sink receives preferred-operator marks from the selector. A real
// search attaches its own successor-generation bookkeeping here; tests
// use a slice-backed recorder.
type Sink interface {
	MarkPreferred(op OperatorID)
}

// FuncSink adapts a plain function to Sink, the same "adapt a func to an
// interface" shape used throughout this corpus for small collaborators.
type FuncSink func(OperatorID)

// MarkPreferred implements Sink.
func (f FuncSink) MarkPreferred(op OperatorID) { f(op) }

// Error reports a problem constructing or using a Task-level
// collaborator (e.g. a malformed demo task). Mirrors the Op/Message
// shape of heuristic.ConfigError and heuristic.InvariantError, which
// itself follows xDarkicex-logic's core.LogicError.
type Error struct {
	Op      string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("task error in %s: %s", e.Op, e.Message)
}

// NewError constructs a *Error.
func NewError(op, message string) *Error {
	return &Error{Op: op, Message: message}
}
