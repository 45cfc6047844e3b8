package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/mvaldebenito/vocanta/internal/apperr"
	"github.com/mvaldebenito/vocanta/internal/dto"
	"github.com/mvaldebenito/vocanta/internal/model"
	"github.com/mvaldebenito/vocanta/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AdminService provisions the fixtures attempts run against: test versions
// with their question catalogs, periods, students and enrollments.
type AdminService interface {
	CreateOrganization(req dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error)
	CreateTest(req dto.CreateTestRequest) (*dto.TestResponse, error)
	ListTests() ([]dto.TestResponse, error)
	CreatePeriod(req dto.CreatePeriodRequest) (*dto.PeriodResponse, error)
	ListPeriods(organizationID uint) ([]dto.PeriodResponse, error)
	CreateStudent(req dto.CreateStudentRequest) (*dto.StudentResponse, error)
	// EnrollStudent admits a student into a period and creates their
	// in_progress attempt. Idempotent: re-enrolling returns the existing
	// enrollment and attempt.
	EnrollStudent(periodID uint, req dto.EnrollStudentRequest) (*dto.EnrollmentResponse, error)
	GetPeriodRoster(periodID uint) (*dto.PeriodRosterResponse, error)
}

type adminService struct {
	store repository.Store
}

func NewAdminService(store repository.Store) AdminService {
	return &adminService{store: store}
}

func (s *adminService) CreateOrganization(req dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error) {
	org := model.Organization{Name: req.Name}
	if err := s.store.Organizations().Create(&org); err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("Failed to create organization")
		return nil, fmt.Errorf("database error creating organization: %w", err)
	}
	return &dto.OrganizationResponse{ID: org.ID, Name: org.Name, CreatedAt: org.CreatedAt}, nil
}

func (s *adminService) CreateTest(req dto.CreateTestRequest) (*dto.TestResponse, error) {
	switch req.Key {
	case model.TestKeyInapv:
		if len(req.InapQuestions) == 0 || len(req.CaasQuestions) > 0 {
			return nil, fmt.Errorf("an inapv test requires inap_questions only: %w", apperr.ErrInvalidInput)
		}
	case model.TestKeyCaas:
		if len(req.CaasQuestions) == 0 || len(req.InapQuestions) > 0 {
			return nil, fmt.Errorf("a caas test requires caas_questions only: %w", apperr.ErrInvalidInput)
		}
	default:
		return nil, fmt.Errorf("unknown test key %q: %w", req.Key, apperr.ErrInvalidInput)
	}

	test := model.Test{
		Key:         req.Key,
		Name:        req.Name,
		Version:     req.Version,
		Description: req.Description,
	}

	err := s.store.Transaction(func(tx repository.Store) error {
		if err := tx.Tests().Create(&test); err != nil {
			return fmt.Errorf("database error creating test: %w", err)
		}

		if req.Key == model.TestKeyInapv {
			questions := make([]model.InapQuestion, len(req.InapQuestions))
			seen := make(map[int]bool, len(req.InapQuestions))
			for i, q := range req.InapQuestions {
				if !model.IsValidInapArea(q.Area) {
					return fmt.Errorf("unknown area code %q: %w", q.Area, apperr.ErrInvalidInput)
				}
				if seen[q.ExternalID] {
					return fmt.Errorf("duplicate external_id %d in questions: %w", q.ExternalID, apperr.ErrInvalidInput)
				}
				seen[q.ExternalID] = true
				questions[i] = model.InapQuestion{
					TestID:     test.ID,
					ExternalID: q.ExternalID,
					Text:       q.Text,
					Area:       q.Area,
					Dim:        q.Dim,
					OrderIndex: q.OrderIndex,
				}
			}
			return tx.InapQuestions().CreateBatch(questions)
		}

		questions := make([]model.CaasQuestion, len(req.CaasQuestions))
		seen := make(map[int]bool, len(req.CaasQuestions))
		for i, q := range req.CaasQuestions {
			if !model.IsValidCaasDimension(q.Dimension) {
				return fmt.Errorf("unknown dimension code %q: %w", q.Dimension, apperr.ErrInvalidInput)
			}
			if seen[q.ExternalID] {
				return fmt.Errorf("duplicate external_id %d in questions: %w", q.ExternalID, apperr.ErrInvalidInput)
			}
			seen[q.ExternalID] = true
			questions[i] = model.CaasQuestion{
				TestID:     test.ID,
				ExternalID: q.ExternalID,
				Text:       q.Text,
				Dimension:  q.Dimension,
				OrderIndex: q.OrderIndex,
			}
		}
		return tx.CaasQuestions().CreateBatch(questions)
	})
	if err != nil {
		log.Error().Err(err).Str("key", req.Key).Msg("Failed to create test")
		return nil, err
	}

	resp := testResponse(test)
	return &resp, nil
}

func (s *adminService) ListTests() ([]dto.TestResponse, error) {
	tests, err := s.store.Tests().FindAll()
	if err != nil {
		return nil, fmt.Errorf("database error listing tests: %w", err)
	}
	out := make([]dto.TestResponse, len(tests))
	for i, t := range tests {
		out[i] = testResponse(t)
	}
	return out, nil
}

func (s *adminService) CreatePeriod(req dto.CreatePeriodRequest) (*dto.PeriodResponse, error) {
	if _, err := s.store.Organizations().FindByID(req.OrganizationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("organization", req.OrganizationID)
		}
		return nil, err
	}
	if _, err := s.store.Tests().FindByID(req.TestID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("test", req.TestID)
		}
		return nil, err
	}

	period := model.Period{
		OrganizationID: req.OrganizationID,
		TestID:         req.TestID,
		Name:           req.Name,
		Status:         model.PeriodStatusActive,
		StartAt:        req.StartAt,
		EndAt:          req.EndAt,
	}
	if err := s.store.Periods().Create(&period); err != nil {
		log.Error().Err(err).Msg("Failed to create period")
		return nil, fmt.Errorf("database error creating period: %w", err)
	}

	resp := periodResponse(&period)
	return &resp, nil
}

func (s *adminService) ListPeriods(organizationID uint) ([]dto.PeriodResponse, error) {
	if _, err := s.store.Organizations().FindByID(organizationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("organization", organizationID)
		}
		return nil, err
	}
	periods, err := s.store.Periods().FindAllByOrganization(organizationID)
	if err != nil {
		return nil, fmt.Errorf("database error listing periods: %w", err)
	}
	out := make([]dto.PeriodResponse, len(periods))
	for i := range periods {
		out[i] = periodResponse(&periods[i])
	}
	return out, nil
}

func (s *adminService) CreateStudent(req dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	if _, err := s.store.Organizations().FindByID(req.OrganizationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("organization", req.OrganizationID)
		}
		return nil, err
	}

	if _, err := s.store.Users().FindByRut(req.Rut); err == nil {
		return nil, fmt.Errorf("a user with rut %s already exists: %w", req.Rut, apperr.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := model.User{
		OrganizationID: req.OrganizationID,
		Rut:            req.Rut,
		Name:           req.Name,
		Email:          req.Email,
		Role:           model.RoleStudent,
	}
	if err := s.store.Users().Create(&user); err != nil {
		log.Error().Err(err).Str("rut", req.Rut).Msg("Failed to create student")
		return nil, fmt.Errorf("database error creating student: %w", err)
	}

	var resp dto.StudentResponse
	if err := copier.Copy(&resp, &user); err != nil {
		return nil, fmt.Errorf("error preparing student response: %w", err)
	}
	return &resp, nil
}

func (s *adminService) EnrollStudent(periodID uint, req dto.EnrollStudentRequest) (*dto.EnrollmentResponse, error) {
	period, err := s.store.Periods().FindByID(periodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("period", periodID)
		}
		return nil, err
	}

	user, err := s.store.Users().FindByID(req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user", req.UserID)
		}
		return nil, err
	}
	if user.OrganizationID != period.OrganizationID {
		return nil, fmt.Errorf("user %d belongs to another organization: %w", req.UserID, apperr.ErrForbidden)
	}

	var resp dto.EnrollmentResponse
	err = s.store.Transaction(func(tx repository.Store) error {
		enrollment, err := tx.Enrollments().FirstOrCreate(periodID, req.UserID)
		if err != nil {
			return err
		}
		attempt, err := tx.Attempts().FirstOrCreate(periodID, req.UserID)
		if err != nil {
			return err
		}
		resp = dto.EnrollmentResponse{
			PeriodID: enrollment.PeriodID,
			UserID:   enrollment.UserID,
			Attempt:  attemptProgress(attempt),
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("periodID", periodID).Uint("userID", req.UserID).Msg("Failed to enroll student")
		return nil, err
	}

	log.Info().Uint("periodID", periodID).Uint("userID", req.UserID).Msg("Student enrolled")
	return &resp, nil
}

func (s *adminService) GetPeriodRoster(periodID uint) (*dto.PeriodRosterResponse, error) {
	if _, err := s.store.Periods().FindByID(periodID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("period", periodID)
		}
		return nil, err
	}

	enrollments, err := s.store.Enrollments().ListByPeriod(periodID)
	if err != nil {
		return nil, fmt.Errorf("database error listing enrollments: %w", err)
	}

	students := make([]dto.StudentResponse, len(enrollments))
	for i, e := range enrollments {
		if err := copier.Copy(&students[i], &e.User); err != nil {
			return nil, fmt.Errorf("error preparing roster response: %w", err)
		}
	}
	return &dto.PeriodRosterResponse{PeriodID: periodID, Students: students}, nil
}
