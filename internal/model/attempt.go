package model

import "time"

const (
	AttemptStatusInProgress = "in_progress"
	AttemptStatusFinished   = "finished"
)

// Attempt is one student's single pass at one test within one period.
// AnsweredCount must always equal the number of distinct answered questions,
// even under concurrent writers; only the answer ledger mutates it.
// Attempts are never deleted.
type Attempt struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	UserID        uint       `json:"user_id" gorm:"not null;index;uniqueIndex:uniq_attempts_period_user"`
	PeriodID      uint       `json:"period_id" gorm:"not null;index;uniqueIndex:uniq_attempts_period_user"`
	Period        Period     `json:"period,omitempty" gorm:"foreignKey:PeriodID"`
	Status        string     `json:"status" gorm:"not null;default:'in_progress'"`
	AnsweredCount int        `json:"answered_count" gorm:"not null;default:0"`
	FinishedAt    *time.Time `json:"finished_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
