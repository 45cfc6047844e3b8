package service

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mvaldebenito/vocanta/internal/apperr"
	"github.com/mvaldebenito/vocanta/internal/dto"
	"github.com/mvaldebenito/vocanta/internal/model"
	"github.com/mvaldebenito/vocanta/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CaasAttemptService owns the lifecycle of CAAS attempts. Same ledger and
// state-machine contract as the INAPV variant, with 1..5 Likert values.
type CaasAttemptService interface {
	GetContext(attemptID, userID uint) (*dto.CaasAttemptContextResponse, error)
	GetAnswers(attemptID, userID uint) (*dto.CaasAttemptAnswersResponse, error)
	SubmitAnswers(attemptID, userID uint, req dto.SaveCaasAnswersRequest) (*dto.AttemptProgress, error)
	Finish(attemptID, userID uint) (*dto.CaasAttemptResultResponse, error)
	GetResult(attemptID, userID uint) (*dto.CaasAttemptResultResponse, error)
}

type caasAttemptService struct {
	store repository.Store
}

func NewCaasAttemptService(store repository.Store) CaasAttemptService {
	return &caasAttemptService{store: store}
}

func (s *caasAttemptService) GetContext(attemptID, userID uint) (*dto.CaasAttemptContextResponse, error) {
	attempt, period, err := resolveAttempt(s.store, attemptID, userID, model.TestKeyCaas)
	if err != nil {
		return nil, err
	}

	questions, err := s.store.CaasQuestions().FindByTestID(period.TestID)
	if err != nil {
		return nil, fmt.Errorf("error fetching questions for test %d: %w", period.TestID, err)
	}

	questionDTOs := make([]dto.CaasQuestionResponse, len(questions))
	for i, q := range questions {
		questionDTOs[i] = dto.CaasQuestionResponse{
			ID:         q.ID,
			ExternalID: q.ExternalID,
			Text:       q.Text,
			Dimension:  q.Dimension,
			OrderIndex: q.OrderIndex,
		}
	}

	return &dto.CaasAttemptContextResponse{
		Test:       testResponse(period.Test),
		Period:     periodResponse(period),
		Attempt:    attemptProgress(attempt),
		Dimensions: model.CaasDimensions,
		Questions:  questionDTOs,
	}, nil
}

func (s *caasAttemptService) GetAnswers(attemptID, userID uint) (*dto.CaasAttemptAnswersResponse, error) {
	attempt, _, err := resolveAttempt(s.store, attemptID, userID, model.TestKeyCaas)
	if err != nil {
		return nil, err
	}

	answers, err := s.store.CaasAnswers().ListByAttempt(attempt.ID)
	if err != nil {
		return nil, fmt.Errorf("error fetching answers for attempt %d: %w", attempt.ID, err)
	}

	pairs := make([]dto.CaasAnswerPair, len(answers))
	for i, a := range answers {
		pairs[i] = dto.CaasAnswerPair{QuestionID: a.QuestionID, Value: a.Value}
	}
	return &dto.CaasAttemptAnswersResponse{Attempt: attemptProgress(attempt), Answers: pairs}, nil
}

// SubmitAnswers upserts a batch of Likert answers and advances answered_count
// by the number of fresh inserts, inside one transaction holding the attempt
// row lock.
func (s *caasAttemptService) SubmitAnswers(attemptID, userID uint, req dto.SaveCaasAnswersRequest) (*dto.AttemptProgress, error) {
	_, period, err := resolveAttempt(s.store, attemptID, userID, model.TestKeyCaas)
	if err != nil {
		return nil, err
	}

	values := make(map[uint]int, len(req.Answers))
	for _, a := range req.Answers {
		if a.Value < 1 || a.Value > 5 {
			return nil, fmt.Errorf("value %d for question %d is outside 1..5: %w", a.Value, a.QuestionID, apperr.ErrInvalidInput)
		}
		values[a.QuestionID] = a.Value
	}
	ids := make([]uint, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	if err := s.validateQuestionIDs(period.TestID, ids); err != nil {
		return nil, err
	}

	var progress dto.AttemptProgress
	err = s.store.Transaction(func(tx repository.Store) error {
		attempt, err := tx.Attempts().FindByIDForUpdate(attemptID)
		if err != nil {
			return err
		}
		if attempt.Status != model.AttemptStatusInProgress {
			return fmt.Errorf("attempt %d is %s: %w", attempt.ID, attempt.Status, apperr.ErrConflict)
		}

		inserted := 0
		for _, id := range ids {
			fresh, err := tx.CaasAnswers().Upsert(attempt.ID, id, values[id])
			if err != nil {
				return err
			}
			if fresh {
				inserted++
			}
		}

		if inserted > 0 {
			if err := tx.Attempts().IncrementAnsweredCount(attempt.ID, inserted); err != nil {
				return err
			}
			attempt.AnsweredCount += inserted
		}
		progress = attemptProgress(attempt)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Uint("attemptID", attemptID).Int("answeredCount", progress.AnsweredCount).Msg("CAAS answers saved")
	return &progress, nil
}

// Finish gates the terminal transition on completeness, scores the closed
// answer set and persists the result atomically. Finished attempts return
// their stored result unchanged.
func (s *caasAttemptService) Finish(attemptID, userID uint) (*dto.CaasAttemptResultResponse, error) {
	_, period, err := resolveAttempt(s.store, attemptID, userID, model.TestKeyCaas)
	if err != nil {
		return nil, err
	}

	var resp *dto.CaasAttemptResultResponse
	err = s.store.Transaction(func(tx repository.Store) error {
		attempt, err := tx.Attempts().FindByIDForUpdate(attemptID)
		if err != nil {
			return err
		}

		switch attempt.Status {
		case model.AttemptStatusFinished:
			result, err := tx.CaasResults().FindByAttemptID(attempt.ID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("finished attempt %d has no result: %w", attempt.ID, apperr.ErrInternal)
				}
				return err
			}
			resp = &dto.CaasAttemptResultResponse{
				Status:  attempt.Status,
				Attempt: attemptProgress(attempt),
				Result:  caasResultResponse(result),
			}
			return nil
		case model.AttemptStatusInProgress:
			// proceed below
		default:
			return fmt.Errorf("attempt %d has invalid status %q: %w", attempt.ID, attempt.Status, apperr.ErrInternal)
		}

		questions, err := tx.CaasQuestions().FindByTestID(period.TestID)
		if err != nil {
			return err
		}
		answers, err := tx.CaasAnswers().ListByAttempt(attempt.ID)
		if err != nil {
			return err
		}
		if attempt.AnsweredCount != len(answers) {
			return fmt.Errorf("attempt %d counter %d disagrees with ledger %d: %w",
				attempt.ID, attempt.AnsweredCount, len(answers), apperr.ErrInternal)
		}
		if len(answers) != len(questions) {
			return &apperr.IncompleteAttemptError{Answered: len(answers), Expected: len(questions)}
		}

		scores := ComputeCaasScores(questions, answers)
		result := &model.CaasResult{
			AttemptID:         attempt.ID,
			TotalScore:        scores.TotalScore,
			MaxScore:          scores.MaxScore,
			Percentage:        scores.Percentage,
			ScoresByDimension: datatypes.NewJSONType(scores.ScoresByDimension),
			Level:             scores.Level,
		}
		if err := tx.CaasResults().Upsert(result); err != nil {
			return err
		}

		now := time.Now()
		attempt.Status = model.AttemptStatusFinished
		attempt.FinishedAt = &now
		if err := tx.Attempts().Update(attempt); err != nil {
			return err
		}

		resp = &dto.CaasAttemptResultResponse{
			Status:  attempt.Status,
			Attempt: attemptProgress(attempt),
			Result:  caasResultResponse(result),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Uint("attemptID", attemptID).Msg("CAAS attempt finished")
	return resp, nil
}

func (s *caasAttemptService) GetResult(attemptID, userID uint) (*dto.CaasAttemptResultResponse, error) {
	attempt, _, err := resolveAttempt(s.store, attemptID, userID, model.TestKeyCaas)
	if err != nil {
		return nil, err
	}

	if attempt.Status != model.AttemptStatusFinished {
		return &dto.CaasAttemptResultResponse{Status: attempt.Status, Attempt: attemptProgress(attempt)}, nil
	}

	result, err := s.store.CaasResults().FindByAttemptID(attempt.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("finished attempt %d has no result: %w", attempt.ID, apperr.ErrInternal)
		}
		return nil, err
	}
	return &dto.CaasAttemptResultResponse{
		Status:  attempt.Status,
		Attempt: attemptProgress(attempt),
		Result:  caasResultResponse(result),
	}, nil
}

func (s *caasAttemptService) validateQuestionIDs(testID uint, ids []uint) error {
	questions, err := s.store.CaasQuestions().FindByTestID(testID)
	if err != nil {
		return fmt.Errorf("error fetching questions for test %d: %w", testID, err)
	}
	known := make(map[uint]struct{}, len(questions))
	for _, q := range questions {
		known[q.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("question %d does not belong to test %d: %w", id, testID, apperr.ErrInvalidInput)
		}
	}
	return nil
}

func caasResultResponse(result *model.CaasResult) *dto.CaasResultResponse {
	return &dto.CaasResultResponse{
		TotalScore:        result.TotalScore,
		MaxScore:          result.MaxScore,
		Percentage:        result.Percentage,
		ScoresByDimension: result.ScoresByDimension.Data(),
		Level:             result.Level,
		CreatedAt:         result.CreatedAt,
	}
}
