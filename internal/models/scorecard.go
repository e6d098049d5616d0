package models

import (
	"fmt"
	"math"
)

// RubricKind identifies which of the two independent rubrics produced a
// ScoreCard.
type RubricKind string

const (
	// RubricSession scores the quality of the modeling process itself.
	RubricSession RubricKind = "session"
	// RubricModel scores the quality of the final data-model design.
	RubricModel RubricKind = "model"
)

// Session rubric dimensions (process quality).
const (
	DimRequirementsEngineering = "requirements_engineering"
	DimAccessPatternAnalysis   = "access_pattern_analysis"
	DimMethodologyAdherence    = "methodology_adherence"
	DimTechnicalReasoning      = "technical_reasoning"
	DimProcessDocumentation    = "process_documentation"
)

// Model rubric dimensions (design quality).
const (
	DimCompleteness              = "completeness"
	DimTechnicalAccuracy         = "technical_accuracy"
	DimAccessPatternCoverage     = "access_pattern_coverage"
	DimScalabilityConsiderations = "scalability_considerations"
	DimCostOptimization          = "cost_optimization"
)

// SessionDimensions lists the five session rubric dimensions, in rendering
// order.
var SessionDimensions = []string{
	DimRequirementsEngineering,
	DimAccessPatternAnalysis,
	DimMethodologyAdherence,
	DimTechnicalReasoning,
	DimProcessDocumentation,
}

// ModelDimensions lists the five model rubric dimensions, in rendering order.
var ModelDimensions = []string{
	DimCompleteness,
	DimTechnicalAccuracy,
	DimAccessPatternCoverage,
	DimScalabilityConsiderations,
	DimCostOptimization,
}

// Dimensions returns the dimension set for a rubric kind.
func (k RubricKind) Dimensions() []string {
	if k == RubricSession {
		return SessionDimensions
	}
	return ModelDimensions
}

// QualityLevel is the discrete label derived from an overall score.
type QualityLevel string

const (
	QualityExcellent        QualityLevel = "excellent"
	QualityGood             QualityLevel = "good"
	QualityAcceptable       QualityLevel = "acceptable"
	QualityNeedsImprovement QualityLevel = "needs_improvement"
	QualityPoor             QualityLevel = "poor"
)

// ClassifyQuality maps an overall score to a quality level using fixed
// breakpoints. Scores outside [1,10] are an upstream contract violation and
// fail loudly rather than being clamped.
func ClassifyQuality(score float64) (QualityLevel, error) {
	if score < 1.0 || score > 10.0 || math.IsNaN(score) {
		return "", fmt.Errorf("overall score %v is outside [1,10]", score)
	}
	switch {
	case score >= 8.5:
		return QualityExcellent, nil
	case score >= 7.0:
		return QualityGood, nil
	case score >= 5.5:
		return QualityAcceptable, nil
	case score >= 4.0:
		return QualityNeedsImprovement, nil
	default:
		return QualityPoor, nil
	}
}

// ScoreCard is the output of applying one rubric to one transcript.
type ScoreCard struct {
	RubricKind      RubricKind         `json:"rubric_kind"`
	DimensionScores map[string]float64 `json:"dimension_scores"`
	Justifications  map[string]string  `json:"justifications,omitempty"`
	// Overall is the arithmetic mean of the five dimension scores,
	// rounded to two decimal places.
	Overall float64      `json:"overall_score"`
	Quality QualityLevel `json:"quality_level"`
}

// NewScoreCard assembles a ScoreCard from per-dimension scores. The scores
// must cover exactly the five dimensions of the rubric kind, each in [1,10];
// the overall score and quality level are derived, never supplied.
func NewScoreCard(kind RubricKind, scores map[string]float64, justifications map[string]string) (*ScoreCard, error) {
	dims := kind.Dimensions()
	if len(scores) != len(dims) {
		return nil, fmt.Errorf("%s rubric requires %d dimension scores, got %d", kind, len(dims), len(scores))
	}

	total := 0.0
	for _, dim := range dims {
		score, ok := scores[dim]
		if !ok {
			return nil, fmt.Errorf("%s rubric is missing a score for %q", kind, dim)
		}
		if score < 1.0 || score > 10.0 {
			return nil, fmt.Errorf("dimension %q score %v is outside [1,10]", dim, score)
		}
		total += score
	}

	overall := math.Round(total/float64(len(dims))*100) / 100

	quality, err := ClassifyQuality(overall)
	if err != nil {
		return nil, err
	}

	return &ScoreCard{
		RubricKind:      kind,
		DimensionScores: scores,
		Justifications:  justifications,
		Overall:         overall,
		Quality:         quality,
	}, nil
}
