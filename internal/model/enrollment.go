package model

import "time"

// Enrollment admits one student into one period. The unique index backs the
// at-most-one-attempt-per-(period, user) invariant.
type Enrollment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	PeriodID  uint      `json:"period_id" gorm:"not null;index;uniqueIndex:uniq_enrollments_period_user"`
	UserID    uint      `json:"user_id" gorm:"not null;index;uniqueIndex:uniq_enrollments_period_user"`
	User      User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
