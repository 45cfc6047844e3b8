package repository

import (
	"github.com/mvaldebenito/vocanta/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptRepository interface {
	Create(attempt *model.Attempt) error
	// FirstOrCreate returns the existing attempt for (periodID, userID) or
	// creates a fresh in_progress one. The unique index backs the at-most-one
	// attempt per (period, user) invariant.
	FirstOrCreate(periodID, userID uint) (*model.Attempt, error)
	FindByID(id uint) (*model.Attempt, error)
	// FindByIDForUpdate locks the attempt row until the surrounding
	// transaction commits. The attempt row is the only contended resource:
	// both the answer ledger and finish serialize on it.
	FindByIDForUpdate(id uint) (*model.Attempt, error)
	Update(attempt *model.Attempt) error
	// IncrementAnsweredCount adds delta atomically in SQL, never via
	// read-modify-write, so concurrent ledgers cannot lose updates.
	IncrementAnsweredCount(id uint, delta int) error
	CountByPeriodAndStatus(periodID uint, status string) (int64, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.Attempt) error {
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) FirstOrCreate(periodID, userID uint) (*model.Attempt, error) {
	attempt := model.Attempt{
		PeriodID: periodID,
		UserID:   userID,
		Status:   model.AttemptStatusInProgress,
	}
	err := r.db.
		Where(model.Attempt{PeriodID: periodID, UserID: userID}).
		FirstOrCreate(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByID(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	if err := r.db.First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByIDForUpdate(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) Update(attempt *model.Attempt) error {
	return r.db.Save(attempt).Error
}

func (r *attemptRepository) IncrementAnsweredCount(id uint, delta int) error {
	return r.db.Model(&model.Attempt{}).
		Where("id = ?", id).
		UpdateColumn("answered_count", gorm.Expr("answered_count + ?", delta)).Error
}

func (r *attemptRepository) CountByPeriodAndStatus(periodID uint, status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Attempt{}).
		Where("period_id = ? AND status = ?", periodID, status).
		Count(&count).Error
	return count, err
}
