package dto

import "github.com/mvaldebenito/vocanta/internal/model"

// Period-level aggregation views (read path). Percentages are always
// sum-of-scores over sum-of-maxima, never an average of per-attempt
// percentages.

type PeriodCounts struct {
	StudentsCount   int `json:"students_count"`
	FinishedCount   int `json:"finished_count"`
	InProgressCount int `json:"in_progress_count"`
	NotStartedCount int `json:"not_started_count"`
}

// AreaAggregate is the period roll-up of one INAPV area.
type AreaAggregate struct {
	Area     string               `json:"area"`
	ScoreSum model.AreaDimScore   `json:"score_sum"`
	MaxSum   model.AreaDimScore   `json:"max_sum"`
	PctAvg   model.AreaDimPercent `json:"pct_avg"`
}

// DimensionAggregate is the period roll-up of one CAAS dimension.
type DimensionAggregate struct {
	Dimension string  `json:"dimension"`
	ScoreSum  int     `json:"score_sum"`
	MaxSum    int     `json:"max_sum"`
	PctAvg    float64 `json:"pct_avg"`
}

type LevelCounts struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

type InapPeriodAggregate struct {
	TopAreas []string        `json:"top_areas"`
	ByArea   []AreaAggregate `json:"by_area"`
}

type CaasPeriodAggregate struct {
	ByDimension   []DimensionAggregate `json:"by_dimension"`
	AvgPercentage float64              `json:"avg_percentage"`
	LevelCounts   LevelCounts          `json:"level_counts"`
}

type PeriodResultsResponse struct {
	ResultType            string               `json:"result_type"` // "inapv" or "caas"
	Counts                PeriodCounts         `json:"counts"`
	ResultsAvailableCount int                  `json:"results_available_count"`
	Inap                  *InapPeriodAggregate `json:"inap,omitempty"`
	Caas                  *CaasPeriodAggregate `json:"caas,omitempty"`
}
