package model

import "time"

// InapAnswer is one yes/no answer of one attempt. The unique index makes the
// (attempt, question) pair the upsert key of the ledger.
type InapAnswer struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	AttemptID  uint      `json:"attempt_id" gorm:"not null;index;uniqueIndex:uniq_inap_answers_attempt_question"`
	QuestionID uint      `json:"question_id" gorm:"not null;uniqueIndex:uniq_inap_answers_attempt_question"`
	Value      bool      `json:"value" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
