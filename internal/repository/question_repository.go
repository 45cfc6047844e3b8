package repository

import (
	"github.com/mvaldebenito/vocanta/internal/model"
	"gorm.io/gorm"
)

// Question catalogs are read-only during attempts: seeded once per test
// version, returned in a stable order, never locked.

type InapQuestionRepository interface {
	CreateBatch(questions []model.InapQuestion) error
	FindByTestID(testID uint) ([]model.InapQuestion, error)
	CountByTestID(testID uint) (int64, error)
}

type CaasQuestionRepository interface {
	CreateBatch(questions []model.CaasQuestion) error
	FindByTestID(testID uint) ([]model.CaasQuestion, error)
	CountByTestID(testID uint) (int64, error)
}

type inapQuestionRepository struct {
	db *gorm.DB
}

func NewInapQuestionRepository(db *gorm.DB) InapQuestionRepository {
	return &inapQuestionRepository{db: db}
}

func (r *inapQuestionRepository) CreateBatch(questions []model.InapQuestion) error {
	return r.db.Create(&questions).Error
}

func (r *inapQuestionRepository) FindByTestID(testID uint) ([]model.InapQuestion, error) {
	var questions []model.InapQuestion
	if err := r.db.Where("test_id = ?", testID).Order("order_index ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *inapQuestionRepository) CountByTestID(testID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.InapQuestion{}).Where("test_id = ?", testID).Count(&count).Error
	return count, err
}

type caasQuestionRepository struct {
	db *gorm.DB
}

func NewCaasQuestionRepository(db *gorm.DB) CaasQuestionRepository {
	return &caasQuestionRepository{db: db}
}

func (r *caasQuestionRepository) CreateBatch(questions []model.CaasQuestion) error {
	return r.db.Create(&questions).Error
}

func (r *caasQuestionRepository) FindByTestID(testID uint) ([]model.CaasQuestion, error) {
	var questions []model.CaasQuestion
	if err := r.db.Where("test_id = ?", testID).Order("order_index ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *caasQuestionRepository) CountByTestID(testID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.CaasQuestion{}).Where("test_id = ?", testID).Count(&count).Error
	return count, err
}
