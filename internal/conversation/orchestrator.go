// Package conversation drives the fixed two-turn exchange with the
// assistant under evaluation.
//
// Turn 1 sends the scenario's terse opening prompt and measures whether the
// assistant recognizes missing information. Turn 2 supplies the complete
// requirements brief and forbids further questions, so "asked for more info"
// is no longer an escape hatch when the final design is scored.
package conversation

import (
	"context"
	"time"

	"github.com/kvdesign/kvbench/internal/briefing"
	"github.com/kvdesign/kvbench/internal/channel"
	"github.com/kvdesign/kvbench/internal/models"
)

// DefaultTurnTimeout bounds each external assistant call.
const DefaultTurnTimeout = 5 * time.Minute

type state int

const (
	stateStart state = iota
	stateClarified
	stateComplete
)

// Orchestrator runs conversations against an assistant channel.
type Orchestrator struct {
	assistant   channel.AssistantChannel
	turnTimeout time.Duration
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTurnTimeout overrides the per-turn timeout.
func WithTurnTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.turnTimeout = d
		}
	}
}

// NewOrchestrator creates an orchestrator over the given assistant channel.
func NewOrchestrator(assistant channel.AssistantChannel, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		assistant:   assistant,
		turnTimeout: DefaultTurnTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes the two-turn protocol and returns the completed transcript.
// A transport failure or per-turn timeout aborts the run with a
// ConversationError. Turns are never retried: regenerating a
// non-deterministic turn would corrupt the timing metrics recorded on it.
func (o *Orchestrator) Run(ctx context.Context, scenario *models.Scenario, modelID string) (*models.Transcript, error) {
	expansion := briefing.Expand(scenario)

	start := time.Now()
	transcript := models.NewTranscript(scenario.Name, modelID)

	turnNum := 0
	for st := stateStart; st != stateComplete; {
		var message string
		switch st {
		case stateStart:
			message = expansion.Opening
		case stateClarified:
			// Regardless of what turn 1 asked, answer everything at
			// once and demand the final design.
			message = expansion.Brief
		}

		turnNum++
		if err := o.exchange(ctx, transcript, modelID, message); err != nil {
			return nil, &models.ConversationError{
				Scenario: scenario.Name,
				Model:    modelID,
				Turn:     turnNum,
				Err:      err,
			}
		}

		switch st {
		case stateStart:
			st = stateClarified
		case stateClarified:
			st = stateComplete
		}
	}

	// Total duration includes orchestration overhead around the calls.
	if err := transcript.Complete(time.Since(start)); err != nil {
		return nil, err
	}
	return transcript, nil
}

// exchange sends one user message and records both sides of the turn.
func (o *Orchestrator) exchange(ctx context.Context, transcript *models.Transcript, modelID, message string) error {
	if err := transcript.Append(models.Turn{Role: models.RoleUser, Text: message}); err != nil {
		return err
	}

	callCtx, cancel := context.WithTimeout(ctx, o.turnTimeout)
	defer cancel()

	reply, err := o.assistant.Send(callCtx, modelID, message)
	if err != nil {
		return err
	}

	return transcript.Append(models.Turn{
		Role:     models.RoleAssistant,
		Text:     reply.Text,
		Duration: reply.Duration,
	})
}
