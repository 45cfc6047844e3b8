package model

import (
	"time"

	"gorm.io/gorm"
)

// Test keys identify which scoring engine an attempt goes through.
const (
	TestKeyInapv = "inapv" // binary interest/aptitude inventory
	TestKeyCaas  = "caas"  // Likert career-adaptability scale
)

type Test struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Key         string         `json:"key" gorm:"not null;index"` // "inapv" or "caas"
	Name        string         `json:"name" gorm:"not null"`
	Version     *string        `json:"version,omitempty"`
	Description string         `json:"description,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
