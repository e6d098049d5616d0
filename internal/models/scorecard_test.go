package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionScores(v float64) map[string]float64 {
	scores := make(map[string]float64, len(SessionDimensions))
	for _, dim := range SessionDimensions {
		scores[dim] = v
	}
	return scores
}

func TestClassifyQuality_Boundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  QualityLevel
	}{
		{10.0, QualityExcellent},
		{8.5, QualityExcellent},
		{8.4999, QualityGood},
		{7.0, QualityGood},
		{6.99, QualityAcceptable},
		{5.5, QualityAcceptable},
		{5.49, QualityNeedsImprovement},
		{4.0, QualityNeedsImprovement},
		{3.99, QualityPoor},
		{1.0, QualityPoor},
	}

	for _, tt := range tests {
		got, err := ClassifyQuality(tt.score)
		require.NoError(t, err, "score %v", tt.score)
		assert.Equal(t, tt.want, got, "score %v", tt.score)
	}
}

func TestClassifyQuality_OutOfDomain(t *testing.T) {
	for _, score := range []float64{0.99, 0.0, -3.0, 10.01, 11.0} {
		_, err := ClassifyQuality(score)
		assert.Error(t, err, "score %v", score)
	}
}

// Walking up the score range must never produce a lower tier.
func TestClassifyQuality_Monotonic(t *testing.T) {
	rank := map[QualityLevel]int{
		QualityPoor:             0,
		QualityNeedsImprovement: 1,
		QualityAcceptable:       2,
		QualityGood:             3,
		QualityExcellent:        4,
	}

	prev := -1
	for score := 1.0; score <= 10.0; score += 0.01 {
		level, err := ClassifyQuality(score)
		require.NoError(t, err)
		require.GreaterOrEqual(t, rank[level], prev, "score %v", score)
		prev = rank[level]
	}
}

func TestNewScoreCard(t *testing.T) {
	scores := map[string]float64{
		DimRequirementsEngineering: 8,
		DimAccessPatternAnalysis:   7.5,
		DimMethodologyAdherence:    9,
		DimTechnicalReasoning:      8,
		DimProcessDocumentation:    7,
	}

	card, err := NewScoreCard(RubricSession, scores, map[string]string{DimTechnicalReasoning: "solid trade-off analysis"})
	require.NoError(t, err)

	assert.Equal(t, RubricSession, card.RubricKind)
	assert.Equal(t, 7.9, card.Overall)
	assert.Equal(t, QualityGood, card.Quality)
	assert.Len(t, card.DimensionScores, 5)
}

func TestNewScoreCard_OverallIsRounded(t *testing.T) {
	scores := sessionScores(7)
	scores[DimProcessDocumentation] = 7.1 // mean 7.02

	card, err := NewScoreCard(RubricSession, scores, nil)
	require.NoError(t, err)
	assert.Equal(t, 7.02, card.Overall)
}

func TestNewScoreCard_Errors(t *testing.T) {
	t.Run("missing dimension", func(t *testing.T) {
		scores := sessionScores(8)
		delete(scores, DimTechnicalReasoning)
		_, err := NewScoreCard(RubricSession, scores, nil)
		assert.Error(t, err)
	})

	t.Run("wrong rubric's dimensions", func(t *testing.T) {
		_, err := NewScoreCard(RubricModel, sessionScores(8), nil)
		assert.Error(t, err)
	})

	t.Run("score out of range", func(t *testing.T) {
		scores := sessionScores(8)
		scores[DimMethodologyAdherence] = 11
		_, err := NewScoreCard(RubricSession, scores, nil)
		assert.Error(t, err)
	})
}

func TestRubricKindDimensions(t *testing.T) {
	assert.Equal(t, SessionDimensions, RubricSession.Dimensions())
	assert.Equal(t, ModelDimensions, RubricModel.Dimensions())
	assert.Len(t, SessionDimensions, 5)
	assert.Len(t, ModelDimensions, 5)
}
