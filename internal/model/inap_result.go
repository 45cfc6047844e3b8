package model

import (
	"time"

	"gorm.io/datatypes"
)

// InapResult is the persisted outcome of a finished INAPV attempt, 1:1 with
// its attempt. Re-finishing overwrites the same row in place.
type InapResult struct {
	ID                 uint                                         `gorm:"primarykey" json:"id"`
	AttemptID          uint                                         `json:"attempt_id" gorm:"not null;uniqueIndex:uniq_inap_results_attempt"`
	ScoresByAreaDim    datatypes.JSONType[map[string]AreaDimScore]  `json:"scores_by_area_dim" gorm:"not null"`
	MaxByAreaDim       datatypes.JSONType[map[string]AreaDimScore]  `json:"max_by_area_dim" gorm:"not null"`
	PercentByAreaDim   datatypes.JSONType[map[string]AreaDimPercent] `json:"percent_by_area_dim" gorm:"not null"`
	TopAreasByInterest datatypes.JSONSlice[string]                  `json:"top_areas_by_interest" gorm:"not null"`
	TopAreasByAptitude datatypes.JSONSlice[string]                  `json:"top_areas_by_aptitude" gorm:"not null"`
	CreatedAt          time.Time                                    `json:"created_at"`
	UpdatedAt          time.Time                                    `json:"updated_at"`
}
