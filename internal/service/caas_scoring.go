package service

import (
	"math"

	"github.com/mvaldebenito/vocanta/internal/model"
)

// Likert answers run 1..5, so each catalog question is worth 5 points.
const caasPointsPerQuestion = 5

// CaasScores is the computed outcome of one closed CAAS answer set.
type CaasScores struct {
	TotalScore        int
	MaxScore          int
	Percentage        float64
	ScoresByDimension map[string]model.DimensionScore
	Level             string
}

// ComputeCaasScores scores a closed Likert answer set against the question
// catalog. Maxima derive from the catalog size, not a hard-coded 120, so a
// grown catalog keeps scoring correctly. Percentages are rounded to two
// decimals; the level comes from the unrounded overall percentage.
func ComputeCaasScores(questions []model.CaasQuestion, answers []model.CaasAnswer) CaasScores {
	type dimAcc struct{ score, max int }
	dims := make(map[string]dimAcc)

	byID := make(map[uint]model.CaasQuestion, len(questions))
	maxScore := 0
	for _, q := range questions {
		byID[q.ID] = q
		acc := dims[q.Dimension]
		acc.max += caasPointsPerQuestion
		dims[q.Dimension] = acc
		maxScore += caasPointsPerQuestion
	}

	totalScore := 0
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			continue
		}
		acc := dims[q.Dimension]
		acc.score += a.Value
		dims[q.Dimension] = acc
		totalScore += a.Value
	}

	percentage := 0.0
	if maxScore > 0 {
		percentage = float64(totalScore) / float64(maxScore) * 100
	}

	byDimension := make(map[string]model.DimensionScore, len(dims))
	for dim, acc := range dims {
		pct := 0.0
		if acc.max > 0 {
			pct = round2(float64(acc.score) / float64(acc.max) * 100)
		}
		byDimension[dim] = model.DimensionScore{Score: acc.score, Max: acc.max, Percentage: pct}
	}

	return CaasScores{
		TotalScore:        totalScore,
		MaxScore:          maxScore,
		Percentage:        round2(percentage),
		ScoresByDimension: byDimension,
		Level:             LevelForPercentage(percentage),
	}
}

// LevelForPercentage maps the overall percentage onto the three tiers.
// Boundaries are inclusive on the lower edge: exactly 40 is medium and
// exactly 70 is high.
func LevelForPercentage(p float64) string {
	switch {
	case p < 40:
		return model.LevelLow
	case p < 70:
		return model.LevelMedium
	default:
		return model.LevelHigh
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
