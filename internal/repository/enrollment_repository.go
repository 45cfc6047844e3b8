package repository

import (
	"github.com/mvaldebenito/vocanta/internal/model"
	"gorm.io/gorm"
)

type EnrollmentRepository interface {
	FirstOrCreate(periodID, userID uint) (*model.Enrollment, error)
	CountByPeriod(periodID uint) (int64, error)
	ListByPeriod(periodID uint) ([]model.Enrollment, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) FirstOrCreate(periodID, userID uint) (*model.Enrollment, error) {
	enrollment := model.Enrollment{PeriodID: periodID, UserID: userID}
	err := r.db.
		Where(model.Enrollment{PeriodID: periodID, UserID: userID}).
		FirstOrCreate(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepository) CountByPeriod(periodID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Enrollment{}).Where("period_id = ?", periodID).Count(&count).Error
	return count, err
}

func (r *enrollmentRepository) ListByPeriod(periodID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.db.Preload("User").Where("period_id = ?", periodID).Find(&enrollments).Error
	if err != nil {
		return nil, err
	}
	return enrollments, nil
}
