package models

import "time"

// RunStatus is the outcome status of one scenario/model pairing.
type RunStatus string

const (
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// Phase names the pipeline stage where a run failed.
type Phase string

const (
	PhaseConversation Phase = "conversation"
	PhaseSessionEval  Phase = "session_eval"
	PhaseModelEval    Phase = "model_eval"
)

// PhaseTimings holds per-phase wall-clock durations for a run.
type PhaseTimings struct {
	Conversation time.Duration `json:"conversation"`
	SessionEval  time.Duration `json:"session_eval"`
	ModelEval    time.Duration `json:"model_eval"`
}

// RunResult is the complete output for one (scenario, model) pairing:
// either the transcript plus both scorecards, or a recorded failure.
type RunResult struct {
	Scenario      string        `json:"scenario"`
	Model         string        `json:"model"`
	Status        RunStatus     `json:"status"`
	Transcript    *Transcript   `json:"transcript,omitempty"`
	SessionCard   *ScoreCard    `json:"session_scorecard,omitempty"`
	ModelCard     *ScoreCard    `json:"model_scorecard,omitempty"`
	Timings       PhaseTimings  `json:"timings"`
	TotalDuration time.Duration `json:"total_duration"`
	FailedPhase   Phase         `json:"failed_phase,omitempty"`
	ErrorMsg      string        `json:"error,omitempty"`
}

// CompositeScore is the simple mean of the session and model overall scores.
// The second return is false for failed runs.
func (r *RunResult) CompositeScore() (float64, bool) {
	if r.Status != RunSucceeded || r.SessionCard == nil || r.ModelCard == nil {
		return 0, false
	}
	return (r.SessionCard.Overall + r.ModelCard.Overall) / 2, true
}

// ModelRanking is one entry in a comparison report's ranking.
type ModelRanking struct {
	Model     string  `json:"model"`
	AvgScore  float64 `json:"avg_score"`
	Succeeded int     `json:"succeeded"`
	Evaluated int     `json:"evaluated"`
}

// ComparisonReport is the aggregate output of evaluating every
// (scenario, model) pair. It is built and owned by the aggregator for one
// invocation and never persisted by the core.
type ComparisonReport struct {
	StartedAt time.Time      `json:"started_at"`
	Duration  time.Duration  `json:"duration"`
	Results   []RunResult    `json:"results"`
	Rankings  []ModelRanking `json:"rankings"`
}
