package models

import (
	"errors"
	"time"
)

// Role identifies the speaker for a transcript turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single message in a conversation, with the wall-clock time the
// external call took to produce it (zero for user turns).
type Turn struct {
	Role     Role          `json:"role"`
	Text     string        `json:"text"`
	Duration time.Duration `json:"duration"`
}

// Transcript is the ordered record of one conversation run against one
// scenario/model pair. It is appended to turn-by-turn by the orchestrator
// and becomes immutable once Complete is called.
type Transcript struct {
	Scenario string `json:"scenario"`
	Model    string `json:"model"`
	Turns    []Turn `json:"turns"`
	// TotalDuration is the sum of per-turn durations plus orchestration
	// overhead, set when the transcript is completed.
	TotalDuration time.Duration `json:"total_duration"`

	sealed bool
}

// NewTranscript creates an empty transcript for a scenario/model pair.
func NewTranscript(scenario, model string) *Transcript {
	return &Transcript{Scenario: scenario, Model: model}
}

// Append adds a turn. Appending after Complete is an error.
func (t *Transcript) Append(turn Turn) error {
	if t.sealed {
		return errors.New("transcript is complete and cannot be appended to")
	}
	t.Turns = append(t.Turns, turn)
	return nil
}

// Complete seals the transcript with its total wall-clock duration.
func (t *Transcript) Complete(total time.Duration) error {
	if t.sealed {
		return errors.New("transcript is already complete")
	}
	t.TotalDuration = total
	t.sealed = true
	return nil
}

// Completed reports whether the transcript has been sealed.
func (t *Transcript) Completed() bool {
	return t.sealed
}

// TurnDurations returns the sum of per-turn durations, without
// orchestration overhead.
func (t *Transcript) TurnDurations() time.Duration {
	var sum time.Duration
	for _, turn := range t.Turns {
		sum += turn.Duration
	}
	return sum
}

// FinalOutput returns the text of the last assistant turn, or "" if the
// assistant never replied.
func (t *Transcript) FinalOutput() string {
	for i := len(t.Turns) - 1; i >= 0; i-- {
		if t.Turns[i].Role == RoleAssistant {
			return t.Turns[i].Text
		}
	}
	return ""
}
