// Package aggregate runs the full evaluation pipeline over every
// (scenario, model) pairing and assembles the comparison report.
package aggregate

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kvdesign/kvbench/internal/channel"
	"github.com/kvdesign/kvbench/internal/conversation"
	"github.com/kvdesign/kvbench/internal/models"
	"github.com/kvdesign/kvbench/internal/scoring"
)

// DefaultModel is used when no model is named on the command line.
const DefaultModel = "claude-sonnet-4"

// Config controls how an evaluation run executes.
type Config struct {
	// Parallel evaluates pairings concurrently.
	Parallel bool
	// Workers bounds concurrency in parallel mode. Zero means 4.
	Workers int
	// TurnTimeout bounds each assistant call. Zero uses the
	// orchestrator default.
	TurnTimeout time.Duration
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return 4
}

// Aggregator evaluates scenario/model pairings end to end: conversation,
// session scoring, model scoring.
type Aggregator struct {
	orchestrator *conversation.Orchestrator
	engine       *scoring.Engine
	cfg          Config
}

// New creates an aggregator. The assistant channel carries the conversation;
// the judge channel scores it.
func New(assistant channel.AssistantChannel, judge channel.JudgeChannel, cfg Config) *Aggregator {
	var orchOpts []conversation.Option
	if cfg.TurnTimeout > 0 {
		orchOpts = append(orchOpts, conversation.WithTurnTimeout(cfg.TurnTimeout))
	}
	return &Aggregator{
		orchestrator: conversation.NewOrchestrator(assistant, orchOpts...),
		engine:       scoring.NewEngine(judge),
		cfg:          cfg,
	}
}

// EvaluateOne runs the pipeline for a single pairing. The result always
// carries phase timings; on failure it also names the phase that failed and
// the error is returned alongside it.
func (a *Aggregator) EvaluateOne(ctx context.Context, scenario *models.Scenario, modelID string) (*models.RunResult, error) {
	result := &models.RunResult{
		Scenario: scenario.Name,
		Model:    modelID,
		Status:   models.RunFailed,
	}
	start := time.Now()
	defer func() { result.TotalDuration = time.Since(start) }()

	phaseStart := time.Now()
	transcript, err := a.orchestrator.Run(ctx, scenario, modelID)
	result.Timings.Conversation = time.Since(phaseStart)
	if err != nil {
		result.FailedPhase = models.PhaseConversation
		result.ErrorMsg = err.Error()
		return result, err
	}
	result.Transcript = transcript

	phaseStart = time.Now()
	sessionCard, err := a.engine.ScoreSession(ctx, scenario, transcript)
	result.Timings.SessionEval = time.Since(phaseStart)
	if err != nil {
		result.FailedPhase = models.PhaseSessionEval
		result.ErrorMsg = err.Error()
		return result, err
	}
	result.SessionCard = sessionCard

	phaseStart = time.Now()
	modelCard, err := a.engine.ScoreModel(ctx, scenario, transcript)
	result.Timings.ModelEval = time.Since(phaseStart)
	if err != nil {
		result.FailedPhase = models.PhaseModelEval
		result.ErrorMsg = err.Error()
		return result, err
	}
	result.ModelCard = modelCard

	result.Status = models.RunSucceeded
	return result, nil
}

// Evaluate runs every (scenario, model) pairing and aggregates the results.
// A pair's failure is recorded in its RunResult and never aborts the rest of
// the grid; the returned error covers only setup-level problems.
func (a *Aggregator) Evaluate(ctx context.Context, scenarios []*models.Scenario, modelIDs []string) (*models.ComparisonReport, error) {
	startedAt := time.Now()

	type pairing struct {
		scenario *models.Scenario
		modelID  string
	}
	pairs := make([]pairing, 0, len(scenarios)*len(modelIDs))
	for _, s := range scenarios {
		for _, m := range modelIDs {
			pairs = append(pairs, pairing{scenario: s, modelID: m})
		}
	}

	// Each pairing writes only its own slot, so parallel and sequential
	// runs produce identically ordered results.
	results := make([]models.RunResult, len(pairs))

	runPair := func(ctx context.Context, i int) {
		p := pairs[i]
		res, err := a.EvaluateOne(ctx, p.scenario, p.modelID)
		if err != nil {
			slog.Warn("pairing failed",
				"scenario", p.scenario.Name,
				"model", p.modelID,
				"phase", res.FailedPhase,
				"error", err)
		}
		results[i] = *res
	}

	if a.cfg.Parallel && len(pairs) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(a.cfg.workers())
		for i := range pairs {
			g.Go(func() error {
				runPair(gctx, i)
				return nil
			})
		}
		// Workers report failures through their result slots.
		_ = g.Wait()
	} else {
		for i := range pairs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			runPair(ctx, i)
		}
	}

	return &models.ComparisonReport{
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Results:   results,
		Rankings:  rankModels(results, modelIDs),
	}, nil
}

// rankModels orders models by average composite score (descending), then by
// successful run count (descending), then by model id (ascending). Failed
// runs count toward Evaluated but never toward the average.
func rankModels(results []models.RunResult, modelIDs []string) []models.ModelRanking {
	byModel := make(map[string]*models.ModelRanking, len(modelIDs))
	totals := make(map[string]float64, len(modelIDs))
	for _, id := range modelIDs {
		byModel[id] = &models.ModelRanking{Model: id}
	}

	for i := range results {
		r := &results[i]
		entry, ok := byModel[r.Model]
		if !ok {
			continue
		}
		entry.Evaluated++
		if score, ok := r.CompositeScore(); ok {
			entry.Succeeded++
			totals[r.Model] += score
		}
	}

	rankings := make([]models.ModelRanking, 0, len(modelIDs))
	for _, id := range modelIDs {
		entry := byModel[id]
		if entry.Succeeded > 0 {
			entry.AvgScore = totals[id] / float64(entry.Succeeded)
		}
		rankings = append(rankings, *entry)
	}

	sort.Slice(rankings, func(i, j int) bool {
		a, b := rankings[i], rankings[j]
		if a.AvgScore != b.AvgScore {
			return a.AvgScore > b.AvgScore
		}
		if a.Succeeded != b.Succeeded {
			return a.Succeeded > b.Succeeded
		}
		return a.Model < b.Model
	})
	return rankings
}
