package scoring

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kvdesign/kvbench/internal/briefing"
	"github.com/kvdesign/kvbench/internal/channel"
	"github.com/kvdesign/kvbench/internal/guidance"
	"github.com/kvdesign/kvbench/internal/models"
)

const (
	defaultMaxAttempts    = 3
	defaultInitialBackoff = 500 * time.Millisecond
)

// Engine scores transcripts with an LLM judge. Judge calls are retried with
// doubling backoff because verdicts occasionally come back unparseable; the
// conversation itself is never retried.
type Engine struct {
	judge          channel.JudgeChannel
	maxAttempts    int
	initialBackoff time.Duration
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithMaxAttempts sets how many times a judge call may be attempted.
func WithMaxAttempts(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.maxAttempts = n
		}
	}
}

// WithInitialBackoff sets the delay before the first retry. The delay
// doubles on each subsequent retry.
func WithInitialBackoff(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.initialBackoff = d
		}
	}
}

// NewEngine creates a scoring engine over the given judge channel.
func NewEngine(judge channel.JudgeChannel, opts ...EngineOption) *Engine {
	e := &Engine{
		judge:          judge,
		maxAttempts:    defaultMaxAttempts,
		initialBackoff: defaultInitialBackoff,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ScoreSession grades the modeling process recorded in the transcript.
func (e *Engine) ScoreSession(ctx context.Context, scenario *models.Scenario, transcript *models.Transcript) (*models.ScoreCard, error) {
	content := renderTranscript(transcript)
	return e.score(ctx, SessionRubric(), scenario, transcript, content)
}

// ScoreModel grades the final design. It scores the extracted data-model
// document when the assistant produced one, otherwise the raw final reply.
func (e *Engine) ScoreModel(ctx context.Context, scenario *models.Scenario, transcript *models.Transcript) (*models.ScoreCard, error) {
	content := transcript.FinalOutput()
	if sections := guidance.Extract(content); sections.HasDataModel() {
		content = sections.DataModel
	}
	return e.score(ctx, ModelRubric(), scenario, transcript, content)
}

func (e *Engine) score(ctx context.Context, rubric Rubric, scenario *models.Scenario, transcript *models.Transcript, content string) (*models.ScoreCard, error) {
	prompt := buildJudgePrompt(rubric, scenario, content)

	var lastErr error
	backoff := e.initialBackoff
	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				lastErr = ctx.Err()
				return nil, e.scoringError(rubric, scenario, transcript, lastErr)
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		reply, err := e.judge.Judge(ctx, prompt)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}

		scores, justifications, err := ParseVerdict(reply.Text, rubric.Names())
		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt, err)
			continue
		}

		card, err := models.NewScoreCard(rubric.Kind, scores, justifications)
		if err != nil {
			lastErr = err
			continue
		}
		return card, nil
	}

	return nil, e.scoringError(rubric, scenario, transcript, lastErr)
}

func (e *Engine) scoringError(rubric Rubric, scenario *models.Scenario, transcript *models.Transcript, err error) *models.ScoringError {
	return &models.ScoringError{
		Scenario: scenario.Name,
		Model:    transcript.Model,
		Rubric:   rubric.Kind,
		Err:      err,
	}
}

// buildJudgePrompt assembles the full judge prompt: role, requirements,
// the content under evaluation, and the rubric with output format.
func buildJudgePrompt(rubric Rubric, scenario *models.Scenario, content string) string {
	var sb strings.Builder

	switch rubric.Kind {
	case models.RubricSession:
		sb.WriteString("You are an expert reviewer of database design consultations. ")
		sb.WriteString("Evaluate the PROCESS in the conversation below: how the assistant worked, not only what it produced.\n\n")
	case models.RubricModel:
		sb.WriteString("You are an expert reviewer of key-value database designs. ")
		sb.WriteString("Evaluate the TECHNICAL QUALITY of the final design below.\n\n")
	}

	sb.WriteString("SCENARIO REQUIREMENTS\n")
	sb.WriteString(briefing.Expand(scenario).Brief)
	sb.WriteString("\n\n")

	switch rubric.Kind {
	case models.RubricSession:
		sb.WriteString("CONVERSATION UNDER EVALUATION\n")
	case models.RubricModel:
		sb.WriteString("DESIGN UNDER EVALUATION\n")
	}
	sb.WriteString(content)
	sb.WriteString("\n\n")

	sb.WriteString("RUBRIC\n")
	for _, d := range rubric.Dimensions {
		fmt.Fprintf(&sb, "- %s: %s\n", d.Name, d.Criteria)
	}
	sb.WriteString("\n")

	sb.WriteString("OUTPUT FORMAT\n")
	sb.WriteString("For each rubric dimension output exactly one line in the form\n")
	sb.WriteString("dimension_name: <score>/10\n")
	sb.WriteString("followed on the next line by a one-sentence justification.\n")
	sb.WriteString("Scores are numbers from 1 to 10. Do not output anything else.\n")

	return sb.String()
}

// renderTranscript flattens a transcript for the session judge.
func renderTranscript(t *models.Transcript) string {
	var sb strings.Builder
	for i, turn := range t.Turns {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "[%s]\n%s", strings.ToUpper(string(turn.Role)), turn.Text)
	}
	return sb.String()
}
