package model

import (
	"time"

	"gorm.io/gorm"
)

// CaasQuestion belongs to the immutable catalog of one CAAS test version.
// Each question scores toward exactly one adaptability dimension on a
// 1..5 Likert scale.
type CaasQuestion struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	TestID     uint           `json:"test_id" gorm:"not null;index;uniqueIndex:uniq_caas_questions_test_external"`
	ExternalID int            `json:"external_id" gorm:"not null;uniqueIndex:uniq_caas_questions_test_external"`
	Text       string         `json:"text" gorm:"type:text;not null"`
	Dimension  string         `json:"dimension" gorm:"type:varchar(20);not null"`
	OrderIndex int            `json:"order_index" gorm:"not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
