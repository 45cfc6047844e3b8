package repository

import (
	"github.com/mvaldebenito/vocanta/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// The answer ledger's storage contract: Upsert writes the (attempt, question)
// row and reports whether it was a fresh insert, accurately under concurrency.
// The gorm implementation relies on INSERT ... ON CONFLICT DO NOTHING: a
// rejected insert means the row existed, so the value is updated instead and
// the caller must not count it toward answered_count.

type InapAnswerRepository interface {
	Upsert(attemptID, questionID uint, value bool) (inserted bool, err error)
	ListByAttempt(attemptID uint) ([]model.InapAnswer, error)
	CountByAttempt(attemptID uint) (int64, error)
}

type CaasAnswerRepository interface {
	Upsert(attemptID, questionID uint, value int) (inserted bool, err error)
	ListByAttempt(attemptID uint) ([]model.CaasAnswer, error)
	CountByAttempt(attemptID uint) (int64, error)
}

var answerConflictTarget = []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}}

type inapAnswerRepository struct {
	db *gorm.DB
}

func NewInapAnswerRepository(db *gorm.DB) InapAnswerRepository {
	return &inapAnswerRepository{db: db}
}

func (r *inapAnswerRepository) Upsert(attemptID, questionID uint, value bool) (bool, error) {
	answer := model.InapAnswer{AttemptID: attemptID, QuestionID: questionID, Value: value}
	res := r.db.Clauses(clause.OnConflict{Columns: answerConflictTarget, DoNothing: true}).Create(&answer)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 1 {
		return true, nil
	}
	err := r.db.Model(&model.InapAnswer{}).
		Where("attempt_id = ? AND question_id = ?", attemptID, questionID).
		Update("value", value).Error
	return false, err
}

func (r *inapAnswerRepository) ListByAttempt(attemptID uint) ([]model.InapAnswer, error) {
	var answers []model.InapAnswer
	if err := r.db.Where("attempt_id = ?", attemptID).Order("question_id ASC").Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *inapAnswerRepository) CountByAttempt(attemptID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.InapAnswer{}).Where("attempt_id = ?", attemptID).Count(&count).Error
	return count, err
}

type caasAnswerRepository struct {
	db *gorm.DB
}

func NewCaasAnswerRepository(db *gorm.DB) CaasAnswerRepository {
	return &caasAnswerRepository{db: db}
}

func (r *caasAnswerRepository) Upsert(attemptID, questionID uint, value int) (bool, error) {
	answer := model.CaasAnswer{AttemptID: attemptID, QuestionID: questionID, Value: value}
	res := r.db.Clauses(clause.OnConflict{Columns: answerConflictTarget, DoNothing: true}).Create(&answer)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 1 {
		return true, nil
	}
	err := r.db.Model(&model.CaasAnswer{}).
		Where("attempt_id = ? AND question_id = ?", attemptID, questionID).
		Update("value", value).Error
	return false, err
}

func (r *caasAnswerRepository) ListByAttempt(attemptID uint) ([]model.CaasAnswer, error) {
	var answers []model.CaasAnswer
	if err := r.db.Where("attempt_id = ?", attemptID).Order("question_id ASC").Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *caasAnswerRepository) CountByAttempt(attemptID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.CaasAnswer{}).Where("attempt_id = ?", attemptID).Count(&count).Error
	return count, err
}
