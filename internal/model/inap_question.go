package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// InapQuestion belongs to the immutable catalog of one INAPV test version.
// Dim holds the dimension tags the question counts toward ("interest",
// "aptitude", or both). Seeded once per test version; never mutated during
// attempts.
type InapQuestion struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	TestID     uint           `json:"test_id" gorm:"not null;index;uniqueIndex:uniq_inap_questions_test_external"`
	ExternalID int            `json:"external_id" gorm:"not null;uniqueIndex:uniq_inap_questions_test_external"`
	Text       string         `json:"text" gorm:"type:text;not null"`
	Area       string         `json:"area" gorm:"type:varchar(10);not null"`
	Dim        pq.StringArray `json:"dim" gorm:"type:text[];not null"`
	OrderIndex int            `json:"order_index" gorm:"not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// HasDim reports whether the question counts toward the given dimension tag.
func (q InapQuestion) HasDim(dim string) bool {
	for _, d := range q.Dim {
		if d == dim {
			return true
		}
	}
	return false
}
