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

// InapAttemptService owns the lifecycle of INAPV attempts: the answer ledger
// (SubmitAnswers) and the in_progress -> finished state machine (Finish).
type InapAttemptService interface {
	GetContext(attemptID, userID uint) (*dto.InapAttemptContextResponse, error)
	GetAnswers(attemptID, userID uint) (*dto.InapAttemptAnswersResponse, error)
	SubmitAnswers(attemptID, userID uint, req dto.SaveInapAnswersRequest) (*dto.AttemptProgress, error)
	Finish(attemptID, userID uint) (*dto.InapAttemptResultResponse, error)
	GetResult(attemptID, userID uint) (*dto.InapAttemptResultResponse, error)
}

type inapAttemptService struct {
	store repository.Store
}

func NewInapAttemptService(store repository.Store) InapAttemptService {
	return &inapAttemptService{store: store}
}

func (s *inapAttemptService) GetContext(attemptID, userID uint) (*dto.InapAttemptContextResponse, error) {
	attempt, period, err := resolveAttempt(s.store, attemptID, userID, model.TestKeyInapv)
	if err != nil {
		return nil, err
	}

	questions, err := s.store.InapQuestions().FindByTestID(period.TestID)
	if err != nil {
		return nil, fmt.Errorf("error fetching questions for test %d: %w", period.TestID, err)
	}

	questionDTOs := make([]dto.InapQuestionResponse, len(questions))
	for i, q := range questions {
		questionDTOs[i] = dto.InapQuestionResponse{
			ID:         q.ID,
			ExternalID: q.ExternalID,
			Text:       q.Text,
			Area:       q.Area,
			Dim:        q.Dim,
			OrderIndex: q.OrderIndex,
		}
	}

	return &dto.InapAttemptContextResponse{
		Test:      testResponse(period.Test),
		Period:    periodResponse(period),
		Attempt:   attemptProgress(attempt),
		Areas:     model.InapAreas,
		Questions: questionDTOs,
	}, nil
}

func (s *inapAttemptService) GetAnswers(attemptID, userID uint) (*dto.InapAttemptAnswersResponse, error) {
	attempt, _, err := resolveAttempt(s.store, attemptID, userID, model.TestKeyInapv)
	if err != nil {
		return nil, err
	}

	answers, err := s.store.InapAnswers().ListByAttempt(attempt.ID)
	if err != nil {
		return nil, fmt.Errorf("error fetching answers for attempt %d: %w", attempt.ID, err)
	}

	pairs := make([]dto.InapAnswerPair, len(answers))
	for i, a := range answers {
		pairs[i] = dto.InapAnswerPair{QuestionID: a.QuestionID, Value: a.Value}
	}
	return &dto.InapAttemptAnswersResponse{Attempt: attemptProgress(attempt), Answers: pairs}, nil
}

// SubmitAnswers upserts a batch of answers and advances answered_count by the
// number of fresh inserts, all inside one transaction holding the attempt row
// lock. Resubmitting a question overwrites its value without touching the
// counter; concurrent overlapping batches count each question once total.
func (s *inapAttemptService) SubmitAnswers(attemptID, userID uint, req dto.SaveInapAnswersRequest) (*dto.AttemptProgress, error) {
	_, period, err := resolveAttempt(s.store, attemptID, userID, model.TestKeyInapv)
	if err != nil {
		return nil, err
	}

	// Dedup the batch by question, last value wins. Sorting the write order
	// keeps concurrent batches from upserting rows in opposite orders.
	values := make(map[uint]bool, len(req.Answers))
	for _, a := range req.Answers {
		values[a.QuestionID] = *a.Value
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
			fresh, err := tx.InapAnswers().Upsert(attempt.ID, id, values[id])
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

	log.Info().Uint("attemptID", attemptID).Int("answeredCount", progress.AnsweredCount).Msg("INAPV answers saved")
	return &progress, nil
}

// Finish gates the terminal transition on completeness, scores the closed
// answer set, and persists the result — one atomic transaction, serialized
// per attempt by the row lock. A finished attempt returns its stored result
// unchanged, so clients can retry after a timeout.
func (s *inapAttemptService) Finish(attemptID, userID uint) (*dto.InapAttemptResultResponse, error) {
	_, period, err := resolveAttempt(s.store, attemptID, userID, model.TestKeyInapv)
	if err != nil {
		return nil, err
	}

	var resp *dto.InapAttemptResultResponse
	err = s.store.Transaction(func(tx repository.Store) error {
		attempt, err := tx.Attempts().FindByIDForUpdate(attemptID)
		if err != nil {
			return err
		}

		switch attempt.Status {
		case model.AttemptStatusFinished:
			result, err := tx.InapResults().FindByAttemptID(attempt.ID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("finished attempt %d has no result: %w", attempt.ID, apperr.ErrInternal)
				}
				return err
			}
			resp = &dto.InapAttemptResultResponse{
				Status:  attempt.Status,
				Attempt: attemptProgress(attempt),
				Result:  inapResultResponse(result),
			}
			return nil
		case model.AttemptStatusInProgress:
			// proceed below
		default:
			return fmt.Errorf("attempt %d has invalid status %q: %w", attempt.ID, attempt.Status, apperr.ErrInternal)
		}

		questions, err := tx.InapQuestions().FindByTestID(period.TestID)
		if err != nil {
			return err
		}
		answers, err := tx.InapAnswers().ListByAttempt(attempt.ID)
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

		scores := ComputeInapScores(questions, answers)
		result := &model.InapResult{
			AttemptID:          attempt.ID,
			ScoresByAreaDim:    datatypes.NewJSONType(scores.ScoresByAreaDim),
			MaxByAreaDim:       datatypes.NewJSONType(scores.MaxByAreaDim),
			PercentByAreaDim:   datatypes.NewJSONType(scores.PercentByAreaDim),
			TopAreasByInterest: datatypes.NewJSONSlice(scores.TopAreasByInterest),
			TopAreasByAptitude: datatypes.NewJSONSlice(scores.TopAreasByAptitude),
		}
		if err := tx.InapResults().Upsert(result); err != nil {
			return err
		}

		now := time.Now()
		attempt.Status = model.AttemptStatusFinished
		attempt.FinishedAt = &now
		if err := tx.Attempts().Update(attempt); err != nil {
			return err
		}

		resp = &dto.InapAttemptResultResponse{
			Status:  attempt.Status,
			Attempt: attemptProgress(attempt),
			Result:  inapResultResponse(result),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Uint("attemptID", attemptID).Msg("INAPV attempt finished")
	return resp, nil
}

func (s *inapAttemptService) GetResult(attemptID, userID uint) (*dto.InapAttemptResultResponse, error) {
	attempt, _, err := resolveAttempt(s.store, attemptID, userID, model.TestKeyInapv)
	if err != nil {
		return nil, err
	}

	if attempt.Status != model.AttemptStatusFinished {
		return &dto.InapAttemptResultResponse{Status: attempt.Status, Attempt: attemptProgress(attempt)}, nil
	}

	result, err := s.store.InapResults().FindByAttemptID(attempt.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("finished attempt %d has no result: %w", attempt.ID, apperr.ErrInternal)
		}
		return nil, err
	}
	return &dto.InapAttemptResultResponse{
		Status:  attempt.Status,
		Attempt: attemptProgress(attempt),
		Result:  inapResultResponse(result),
	}, nil
}

func (s *inapAttemptService) validateQuestionIDs(testID uint, ids []uint) error {
	questions, err := s.store.InapQuestions().FindByTestID(testID)
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

func inapResultResponse(result *model.InapResult) *dto.InapResultResponse {
	return &dto.InapResultResponse{
		ScoresByAreaDim:    result.ScoresByAreaDim.Data(),
		MaxByAreaDim:       result.MaxByAreaDim.Data(),
		PercentByAreaDim:   result.PercentByAreaDim.Data(),
		TopAreasByInterest: result.TopAreasByInterest,
		TopAreasByAptitude: result.TopAreasByAptitude,
		CreatedAt:          result.CreatedAt,
	}
}
