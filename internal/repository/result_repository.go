package repository

import (
	"github.com/mvaldebenito/vocanta/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Results are keyed uniquely by attempt_id. Upsert creates the row the first
// time and overwrites the same row on a re-finish, never a second row.

type InapResultRepository interface {
	Upsert(result *model.InapResult) error
	FindByAttemptID(attemptID uint) (*model.InapResult, error)
	// ListFinishedByPeriod returns the results of every finished attempt in
	// the period, for the read-side aggregation.
	ListFinishedByPeriod(periodID uint) ([]model.InapResult, error)
}

type CaasResultRepository interface {
	Upsert(result *model.CaasResult) error
	FindByAttemptID(attemptID uint) (*model.CaasResult, error)
	ListFinishedByPeriod(periodID uint) ([]model.CaasResult, error)
}

var resultConflictTarget = []clause.Column{{Name: "attempt_id"}}

type inapResultRepository struct {
	db *gorm.DB
}

func NewInapResultRepository(db *gorm.DB) InapResultRepository {
	return &inapResultRepository{db: db}
}

func (r *inapResultRepository) Upsert(result *model.InapResult) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: resultConflictTarget,
		DoUpdates: clause.AssignmentColumns([]string{
			"scores_by_area_dim",
			"max_by_area_dim",
			"percent_by_area_dim",
			"top_areas_by_interest",
			"top_areas_by_aptitude",
			"updated_at",
		}),
	}).Create(result).Error
}

func (r *inapResultRepository) FindByAttemptID(attemptID uint) (*model.InapResult, error) {
	var result model.InapResult
	if err := r.db.Where("attempt_id = ?", attemptID).First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *inapResultRepository) ListFinishedByPeriod(periodID uint) ([]model.InapResult, error) {
	var results []model.InapResult
	err := r.db.
		Joins("JOIN attempts ON attempts.id = inap_results.attempt_id").
		Where("attempts.period_id = ? AND attempts.status = ?", periodID, model.AttemptStatusFinished).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

type caasResultRepository struct {
	db *gorm.DB
}

func NewCaasResultRepository(db *gorm.DB) CaasResultRepository {
	return &caasResultRepository{db: db}
}

func (r *caasResultRepository) Upsert(result *model.CaasResult) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: resultConflictTarget,
		DoUpdates: clause.AssignmentColumns([]string{
			"total_score",
			"max_score",
			"percentage",
			"scores_by_dimension",
			"level",
			"updated_at",
		}),
	}).Create(result).Error
}

func (r *caasResultRepository) FindByAttemptID(attemptID uint) (*model.CaasResult, error) {
	var result model.CaasResult
	if err := r.db.Where("attempt_id = ?", attemptID).First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *caasResultRepository) ListFinishedByPeriod(periodID uint) ([]model.CaasResult, error) {
	var results []model.CaasResult
	err := r.db.
		Joins("JOIN attempts ON attempts.id = caas_results.attempt_id").
		Where("attempts.period_id = ? AND attempts.status = ?", periodID, model.AttemptStatusFinished).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
