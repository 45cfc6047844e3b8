package repository

import (
	"github.com/mvaldebenito/vocanta/internal/model"
	"gorm.io/gorm"
)

type PeriodRepository interface {
	Create(period *model.Period) error
	FindByID(id uint) (*model.Period, error)
	FindByIDWithTest(id uint) (*model.Period, error)
	FindAllByOrganization(organizationID uint) ([]model.Period, error)
}

type periodRepository struct {
	db *gorm.DB
}

func NewPeriodRepository(db *gorm.DB) PeriodRepository {
	return &periodRepository{db: db}
}

func (r *periodRepository) Create(period *model.Period) error {
	return r.db.Create(period).Error
}

func (r *periodRepository) FindByID(id uint) (*model.Period, error) {
	var period model.Period
	if err := r.db.First(&period, id).Error; err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *periodRepository) FindByIDWithTest(id uint) (*model.Period, error) {
	var period model.Period
	if err := r.db.Preload("Test").First(&period, id).Error; err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *periodRepository) FindAllByOrganization(organizationID uint) ([]model.Period, error) {
	var periods []model.Period
	err := r.db.Where("organization_id = ?", organizationID).Order("created_at DESC").Find(&periods).Error
	if err != nil {
		return nil, err
	}
	return periods, nil
}
