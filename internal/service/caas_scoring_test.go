package service

import (
	"testing"

	"github.com/mvaldebenito/vocanta/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// caasCatalog builds the standard 24-question catalog: 6 questions per
// dimension, IDs assigned in catalog order.
func caasCatalog() []model.CaasQuestion {
	var questions []model.CaasQuestion
	var id uint
	for _, dim := range model.CaasDimensions {
		for i := 0; i < 6; i++ {
			id++
			questions = append(questions, model.CaasQuestion{ID: id, Dimension: dim})
		}
	}
	return questions
}

func caasAnswersAll(questions []model.CaasQuestion, value int) []model.CaasAnswer {
	answers := make([]model.CaasAnswer, len(questions))
	for i, q := range questions {
		answers[i] = model.CaasAnswer{QuestionID: q.ID, Value: value}
	}
	return answers
}

func TestComputeCaasScores_UniformAnswers(t *testing.T) {
	questions := caasCatalog()
	scores := ComputeCaasScores(questions, caasAnswersAll(questions, 3))

	assert.Equal(t, 72, scores.TotalScore)
	assert.Equal(t, 120, scores.MaxScore)
	assert.Equal(t, 60.0, scores.Percentage)
	assert.Equal(t, model.LevelMedium, scores.Level)

	require.Len(t, scores.ScoresByDimension, 4)
	for _, dim := range model.CaasDimensions {
		assert.Equal(t, model.DimensionScore{Score: 18, Max: 30, Percentage: 60}, scores.ScoresByDimension[dim])
	}
}

func TestComputeCaasScores_MaxScoreDerivesFromCatalog(t *testing.T) {
	// A grown catalog must grow the denominator too.
	questions := caasCatalog()
	questions = append(questions, model.CaasQuestion{ID: 25, Dimension: "concern"})
	answers := caasAnswersAll(questions, 5)

	scores := ComputeCaasScores(questions, answers)
	assert.Equal(t, 125, scores.MaxScore)
	assert.Equal(t, 125, scores.TotalScore)
	assert.Equal(t, 100.0, scores.Percentage)
	assert.Equal(t, model.DimensionScore{Score: 35, Max: 35, Percentage: 100}, scores.ScoresByDimension["concern"])
}

func TestComputeCaasScores_PerDimensionBreakdown(t *testing.T) {
	questions := caasCatalog()
	valueByDim := map[string]int{"concern": 5, "control": 4, "curiosity": 2, "confidence": 1}
	answers := make([]model.CaasAnswer, len(questions))
	for i, q := range questions {
		answers[i] = model.CaasAnswer{QuestionID: q.ID, Value: valueByDim[q.Dimension]}
	}

	scores := ComputeCaasScores(questions, answers)

	assert.Equal(t, model.DimensionScore{Score: 30, Max: 30, Percentage: 100}, scores.ScoresByDimension["concern"])
	assert.Equal(t, model.DimensionScore{Score: 24, Max: 30, Percentage: 80}, scores.ScoresByDimension["control"])
	assert.Equal(t, model.DimensionScore{Score: 12, Max: 30, Percentage: 40}, scores.ScoresByDimension["curiosity"])
	assert.Equal(t, model.DimensionScore{Score: 6, Max: 30, Percentage: 20}, scores.ScoresByDimension["confidence"])
	assert.Equal(t, 72, scores.TotalScore)
	assert.Equal(t, 60.0, scores.Percentage)
}

func TestComputeCaasScores_PercentageRounding(t *testing.T) {
	questions := []model.CaasQuestion{
		{ID: 1, Dimension: "concern"},
		{ID: 2, Dimension: "concern"},
		{ID: 3, Dimension: "concern"},
	}
	answers := []model.CaasAnswer{
		{QuestionID: 1, Value: 1},
		{QuestionID: 2, Value: 2},
		{QuestionID: 3, Value: 2},
	}

	// 5/15 = 33.333... rounds to 33.33.
	scores := ComputeCaasScores(questions, answers)
	assert.Equal(t, 33.33, scores.Percentage)
	assert.Equal(t, 33.33, scores.ScoresByDimension["concern"].Percentage)
	assert.Equal(t, model.LevelLow, scores.Level)
}

func TestLevelForPercentage_Boundaries(t *testing.T) {
	tests := []struct {
		name string
		pct  float64
		want string
	}{
		{"zero", 0, model.LevelLow},
		{"just below low boundary", 39.99, model.LevelLow},
		{"exactly 40 is medium", 40, model.LevelMedium},
		{"mid medium", 55, model.LevelMedium},
		{"just below high boundary", 69.99, model.LevelMedium},
		{"exactly 70 is high", 70, model.LevelHigh},
		{"full score", 100, model.LevelHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LevelForPercentage(tt.pct))
		})
	}
}

func TestComputeCaasScores_EmptyCatalog(t *testing.T) {
	scores := ComputeCaasScores(nil, nil)
	assert.Equal(t, 0, scores.TotalScore)
	assert.Equal(t, 0, scores.MaxScore)
	assert.Equal(t, 0.0, scores.Percentage)
	assert.Equal(t, model.LevelLow, scores.Level)
}
