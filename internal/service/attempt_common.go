package service

import (
	"errors"
	"fmt"

	"github.com/mvaldebenito/vocanta/internal/apperr"
	"github.com/mvaldebenito/vocanta/internal/dto"
	"github.com/mvaldebenito/vocanta/internal/model"
	"github.com/mvaldebenito/vocanta/internal/repository"
	"gorm.io/gorm"
)

// resolveAttempt loads an attempt, verifies ownership and that the attempt's
// period runs a test with the wanted key. Authorization beyond ownership
// (org scoping, roles) is the HTTP layer's concern.
func resolveAttempt(store repository.Store, attemptID, userID uint, testKey string) (*model.Attempt, *model.Period, error) {
	attempt, err := store.Attempts().FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NotFound("attempt", attemptID)
		}
		return nil, nil, err
	}
	if attempt.UserID != userID {
		return nil, nil, fmt.Errorf("attempt %d belongs to another user: %w", attemptID, apperr.ErrForbidden)
	}

	period, err := store.Periods().FindByIDWithTest(attempt.PeriodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("period missing for attempt %d: %w", attemptID, apperr.ErrInternal)
		}
		return nil, nil, err
	}
	if period.Test.Key != testKey {
		return nil, nil, fmt.Errorf("attempt %d belongs to test %q: %w", attemptID, period.Test.Key, apperr.ErrConflict)
	}
	return attempt, period, nil
}

func attemptProgress(a *model.Attempt) dto.AttemptProgress {
	return dto.AttemptProgress{
		ID:            a.ID,
		Status:        a.Status,
		AnsweredCount: a.AnsweredCount,
		FinishedAt:    a.FinishedAt,
	}
}

func testResponse(t model.Test) dto.TestResponse {
	return dto.TestResponse{
		ID:          t.ID,
		Key:         t.Key,
		Name:        t.Name,
		Version:     t.Version,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

func periodResponse(p *model.Period) dto.PeriodResponse {
	return dto.PeriodResponse{
		ID:             p.ID,
		OrganizationID: p.OrganizationID,
		TestID:         p.TestID,
		Name:           p.Name,
		Status:         p.Status,
		StartAt:        p.StartAt,
		EndAt:          p.EndAt,
	}
}
