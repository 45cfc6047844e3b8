package model

import (
	"time"

	"gorm.io/datatypes"
)

// CaasResult is the persisted outcome of a finished CAAS attempt, 1:1 with
// its attempt. Re-finishing overwrites the same row in place.
type CaasResult struct {
	ID                uint                                          `gorm:"primarykey" json:"id"`
	AttemptID         uint                                          `json:"attempt_id" gorm:"not null;uniqueIndex:uniq_caas_results_attempt"`
	TotalScore        int                                           `json:"total_score" gorm:"not null"`
	MaxScore          int                                           `json:"max_score" gorm:"not null"`
	Percentage        float64                                       `json:"percentage" gorm:"not null"`
	ScoresByDimension datatypes.JSONType[map[string]DimensionScore] `json:"scores_by_dimension" gorm:"not null"`
	Level             string                                        `json:"level" gorm:"type:varchar(10);not null"`
	CreatedAt         time.Time                                     `json:"created_at"`
	UpdatedAt         time.Time                                     `json:"updated_at"`
}
