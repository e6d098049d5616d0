package models

import (
	"fmt"
	"strings"
)

// NotFoundError indicates an unknown scenario or model reference. It is a
// user-input error: report it immediately, never retry.
type NotFoundError struct {
	Kind      string // "scenario" or "model"
	Name      string
	Available []string
}

func (e *NotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
	}
	return fmt.Sprintf("%s %q not found (available: %s)", e.Kind, e.Name, strings.Join(e.Available, ", "))
}

// ConversationError indicates a transport failure or timeout during a
// conversation turn. The conversation layer never retries: a regenerated
// turn would no longer be the turn that was timed.
type ConversationError struct {
	Scenario string
	Model    string
	Turn     int
	Err      error
}

func (e *ConversationError) Error() string {
	return fmt.Sprintf("conversation failed on turn %d (scenario %q, model %q): %v", e.Turn, e.Scenario, e.Model, e.Err)
}

func (e *ConversationError) Unwrap() error { return e.Err }

// ScoringError indicates the judge was unreachable after the retry budget,
// or its output could not be parsed into a complete set of dimension scores.
type ScoringError struct {
	Scenario string
	Model    string
	Rubric   RubricKind
	Err      error
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("%s scoring failed (scenario %q, model %q): %v", e.Rubric, e.Scenario, e.Model, e.Err)
}

func (e *ScoringError) Unwrap() error { return e.Err }

// ValidationError indicates a malformed scenario. Raised at load time so a
// bad scenario never reaches the pipeline.
type ValidationError struct {
	Scenario string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("scenario %q is invalid: %s", e.Scenario, strings.Join(e.Problems, "; "))
}
