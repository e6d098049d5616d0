package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvdesign/kvbench/internal/models"
)

func sampleReport(t *testing.T) *models.ComparisonReport {
	t.Helper()
	card := func(kind models.RubricKind, score float64) *models.ScoreCard {
		scores := map[string]float64{}
		for _, d := range kind.Dimensions() {
			scores[d] = score
		}
		c, err := models.NewScoreCard(kind, scores, nil)
		require.NoError(t, err)
		return c
	}

	return &models.ComparisonReport{
		Duration: 90 * time.Second,
		Results: []models.RunResult{
			{
				Scenario:    "Simple E-commerce Schema",
				Model:       "model-a",
				Status:      models.RunSucceeded,
				SessionCard: card(models.RubricSession, 8),
				ModelCard:   card(models.RubricModel, 7),
			},
			{
				Scenario:    "Simple E-commerce Schema",
				Model:       "model-b",
				Status:      models.RunFailed,
				FailedPhase: models.PhaseConversation,
				ErrorMsg:    "turn 1 timed out",
			},
		},
		Rankings: []models.ModelRanking{
			{Model: "model-a", AvgScore: 7.5, Succeeded: 1, Evaluated: 1},
			{Model: "model-b", AvgScore: 0, Succeeded: 0, Evaluated: 1},
		},
	}
}

func TestPrintReport(t *testing.T) {
	var sb strings.Builder
	printReport(&sb, sampleReport(t), false)
	out := sb.String()

	assert.Contains(t, out, "EVALUATION RESULTS")
	assert.Contains(t, out, "Simple E-commerce Schema")
	assert.Contains(t, out, "8.00")
	assert.Contains(t, out, "7.00")
	assert.Contains(t, out, "failed (conversation)")
	assert.Contains(t, out, "MODEL RANKING")
	assert.Contains(t, out, "1/1")
	assert.Contains(t, out, "0/1")
	// Non-verbose output omits per-dimension detail.
	assert.NotContains(t, out, "cost_optimization")
}

func TestPrintReportVerbose(t *testing.T) {
	var sb strings.Builder
	printReport(&sb, sampleReport(t), true)
	out := sb.String()

	assert.Contains(t, out, "cost_optimization")
	assert.Contains(t, out, "requirements_engineering")
	assert.Contains(t, out, "turn 1 timed out")
	assert.Contains(t, out, "timings:")
}

func TestPrintReportSingleModelSkipsRanking(t *testing.T) {
	report := sampleReport(t)
	report.Results = report.Results[:1]
	report.Rankings = report.Rankings[:1]

	var sb strings.Builder
	printReport(&sb, report, false)
	assert.NotContains(t, sb.String(), "MODEL RANKING")
}

func TestSaveReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, saveReport(sampleReport(t), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded models.ComparisonReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded.Results, 2)
	assert.Equal(t, "model-a", decoded.Rankings[0].Model)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "450ms", formatDuration(450*time.Millisecond))
	assert.Equal(t, "1m30s", formatDuration(90*time.Second))
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "short", truncateName("short", 10))
	assert.Equal(t, "a-very-lo…", truncateName("a-very-long-name", 10))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", padRight("ab", 5))
	assert.Equal(t, "abcdef", padRight("abcdef", 5))
}
