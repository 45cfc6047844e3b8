package model

import "time"

// CaasAnswer is one 1..5 Likert answer of one attempt, upserted by the ledger
// on the (attempt, question) key.
type CaasAnswer struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	AttemptID  uint      `json:"attempt_id" gorm:"not null;index;uniqueIndex:uniq_caas_answers_attempt_question"`
	QuestionID uint      `json:"question_id" gorm:"not null;uniqueIndex:uniq_caas_answers_attempt_question"`
	Value      int       `json:"value" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
