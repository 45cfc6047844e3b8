package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	PeriodStatusActive = "active"
	PeriodStatusClosed = "closed"
)

// Period is an administrative time window in which the students of one
// organization take one test.
type Period struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	OrganizationID uint           `json:"organization_id" gorm:"not null;index"`
	TestID         uint           `json:"test_id" gorm:"not null;index"`
	Test           Test           `json:"test,omitempty" gorm:"foreignKey:TestID"`
	Name           string         `json:"name" gorm:"not null"`
	Status         string         `json:"status" gorm:"not null;default:'active'"`
	StartAt        *time.Time     `json:"start_at,omitempty"`
	EndAt          *time.Time     `json:"end_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
