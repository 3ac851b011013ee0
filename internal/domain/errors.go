package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the error taxonomy. Components check these with
// errors.Is rather than matching on string content.
var (
	// ErrValidation marks a fatal input problem: a missing or empty
	// dataset, or a structurally invalid run request. The orchestrator
	// aborts before any LLM call.
	ErrValidation = errors.New("validation error")

	// ErrTransport marks a failed LLM call (network, rate limit,
	// timeout). Transient; callers retry with backoff and fall back
	// per their own policy on exhaustion.
	ErrTransport = errors.New("llm transport error")

	// ErrParse marks an LLM response that failed to parse as the
	// expected JSON shape. Transient, same retry policy as ErrTransport.
	ErrParse = errors.New("llm response parse error")

	// ErrStructural marks a DAG that failed Phase 1 structural
	// validation.
	ErrStructural = errors.New("dag structural validation error")

	// ErrSemantic marks a DAG that failed Phase 2 semantic validation.
	ErrSemantic = errors.New("dag semantic validation error")

	// ErrExecution marks a node failure inside an approved DAG. This is
	// a test outcome, not a loop trigger: no rebuild is attempted.
	ErrExecution = errors.New("dag execution error")

	// ErrInternal marks an invariant violation in the core. Fatal to
	// the affected question only; other questions in the run continue.
	ErrInternal = errors.New("internal invariant violation")

	// ErrCancelled marks a run aborted by cooperative cancellation rather
	// than by any component failing. Fatal to the whole run.
	ErrCancelled = errors.New("run cancelled")
)

// ValidationError collects one or more validation failure messages for a
// single entity, mirroring how the orchestrator's ingest gate reports
// multiple problems with one request at once.
type ValidationError struct {
	Entity string
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation error for %s: %s", e.Entity, e.Errors[0])
	}
	return fmt.Sprintf("validation errors for %s: %v", e.Entity, e.Errors)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func (e *ValidationError) AddError(msg string) { e.Errors = append(e.Errors, msg) }

func (e *ValidationError) HasErrors() bool { return len(e.Errors) > 0 }

// NewValidationError creates an empty ValidationError for the named
// entity, ready to accumulate failure messages.
func NewValidationError(entity string) *ValidationError {
	return &ValidationError{Entity: entity}
}

// StructuralError wraps the list of structural validator failures for a
// single DAG, used to build a CriticFeedback without duplicating message
// formatting across the critic.
type StructuralError struct {
	QuestionID string
	Issues     []string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("dag for question %s failed structural validation: %v", e.QuestionID, e.Issues)
}

func (e *StructuralError) Unwrap() error { return ErrStructural }
