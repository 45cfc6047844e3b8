package service

import (
	"sync"
	"testing"

	"github.com/lib/pq"
	"github.com/mvaldebenito/vocanta/internal/apperr"
	"github.com/mvaldebenito/vocanta/internal/dto"
	"github.com/mvaldebenito/vocanta/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inapFixture struct {
	store       *fakeStore
	svc         InapAttemptService
	attemptID   uint
	userID      uint
	questionIDs []uint
}

// newInapFixture seeds an inapv test with a small catalog, one period and one
// in-progress attempt.
func newInapFixture(t *testing.T, questionCount int) *inapFixture {
	t.Helper()
	store := newFakeStore()

	test := model.Test{Key: model.TestKeyInapv, Name: "INAPV"}
	require.NoError(t, store.Tests().Create(&test))

	period := model.Period{OrganizationID: 1, TestID: test.ID, Name: "2026-1", Status: model.PeriodStatusActive}
	require.NoError(t, store.Periods().Create(&period))

	questions := make([]model.InapQuestion, questionCount)
	for i := range questions {
		questions[i] = model.InapQuestion{
			TestID:     test.ID,
			ExternalID: i + 1,
			Text:       "q",
			Area:       "tec",
			Dim:        pq.StringArray{model.DimInterest, model.DimAptitude},
			OrderIndex: i + 1,
		}
	}
	require.NoError(t, store.InapQuestions().CreateBatch(questions))
	questionIDs := make([]uint, questionCount)
	for i, q := range questions {
		questionIDs[i] = q.ID
	}

	user := model.User{OrganizationID: 1, Rut: "11111111-1", Name: "Student", Role: model.RoleStudent}
	require.NoError(t, store.Users().Create(&user))

	attempt := model.Attempt{UserID: user.ID, PeriodID: period.ID, Status: model.AttemptStatusInProgress}
	require.NoError(t, store.Attempts().Create(&attempt))

	return &inapFixture{
		store:       store,
		svc:         NewInapAttemptService(store),
		attemptID:   attempt.ID,
		userID:      user.ID,
		questionIDs: questionIDs,
	}
}

func (f *inapFixture) answerAll(t *testing.T, value bool) {
	t.Helper()
	inputs := make([]dto.InapAnswerInput, len(f.questionIDs))
	for i, id := range f.questionIDs {
		v := value
		inputs[i] = dto.InapAnswerInput{QuestionID: id, Value: &v}
	}
	_, err := f.svc.SubmitAnswers(f.attemptID, f.userID, dto.SaveInapAnswersRequest{Answers: inputs})
	require.NoError(t, err)
}

func boolPtr(v bool) *bool { return &v }

func TestInapSubmitAnswers_CountsEachQuestionOnce(t *testing.T) {
	f := newInapFixture(t, 3)

	progress, err := f.svc.SubmitAnswers(f.attemptID, f.userID, dto.SaveInapAnswersRequest{
		Answers: []dto.InapAnswerInput{
			{QuestionID: f.questionIDs[0], Value: boolPtr(true)},
			{QuestionID: f.questionIDs[1], Value: boolPtr(false)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, progress.AnsweredCount)

	// Re-answering overwrites values without advancing the counter.
	progress, err = f.svc.SubmitAnswers(f.attemptID, f.userID, dto.SaveInapAnswersRequest{
		Answers: []dto.InapAnswerInput{
			{QuestionID: f.questionIDs[0], Value: boolPtr(false)},
			{QuestionID: f.questionIDs[2], Value: boolPtr(true)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, progress.AnsweredCount)

	resp, err := f.svc.GetAnswers(f.attemptID, f.userID)
	require.NoError(t, err)
	require.Len(t, resp.Answers, 3)
	assert.Equal(t, dto.InapAnswerPair{QuestionID: f.questionIDs[0], Value: false}, resp.Answers[0])
}

func TestInapSubmitAnswers_DedupsBatchLastWins(t *testing.T) {
	f := newInapFixture(t, 2)

	progress, err := f.svc.SubmitAnswers(f.attemptID, f.userID, dto.SaveInapAnswersRequest{
		Answers: []dto.InapAnswerInput{
			{QuestionID: f.questionIDs[0], Value: boolPtr(false)},
			{QuestionID: f.questionIDs[0], Value: boolPtr(true)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, progress.AnsweredCount)

	resp, err := f.svc.GetAnswers(f.attemptID, f.userID)
	require.NoError(t, err)
	require.Len(t, resp.Answers, 1)
	assert.True(t, resp.Answers[0].Value)
}

func TestInapSubmitAnswers_RejectsUnknownQuestion(t *testing.T) {
	f := newInapFixture(t, 2)

	_, err := f.svc.SubmitAnswers(f.attemptID, f.userID, dto.SaveInapAnswersRequest{
		Answers: []dto.InapAnswerInput{
			{QuestionID: 9999, Value: boolPtr(true)},
		},
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	progress, err := f.svc.GetAnswers(f.attemptID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.Attempt.AnsweredCount)
}

func TestInapSubmitAnswers_ConcurrentOverlappingBatches(t *testing.T) {
	f := newInapFixture(t, 10)

	// Every worker submits an overlapping window of the catalog. However the
	// batches interleave, each question must count exactly once.
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		start := w % 5
		wg.Add(1)
		go func(start int) {
			defer wg.Done()
			inputs := make([]dto.InapAnswerInput, 0, 5)
			for _, id := range f.questionIDs[start : start+5] {
				inputs = append(inputs, dto.InapAnswerInput{QuestionID: id, Value: boolPtr(true)})
			}
			_, err := f.svc.SubmitAnswers(f.attemptID, f.userID, dto.SaveInapAnswersRequest{Answers: inputs})
			assert.NoError(t, err)
		}(start)
	}
	wg.Wait()

	resp, err := f.svc.GetAnswers(f.attemptID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, len(resp.Answers), resp.Attempt.AnsweredCount)
	assert.Equal(t, 9, resp.Attempt.AnsweredCount) // windows cover questions 0..8
}

func TestInapSubmitAnswers_FinishedAttemptConflicts(t *testing.T) {
	f := newInapFixture(t, 2)
	f.answerAll(t, true)
	_, err := f.svc.Finish(f.attemptID, f.userID)
	require.NoError(t, err)

	_, err = f.svc.SubmitAnswers(f.attemptID, f.userID, dto.SaveInapAnswersRequest{
		Answers: []dto.InapAnswerInput{
			{QuestionID: f.questionIDs[0], Value: boolPtr(false)},
		},
	})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestInapFinish_IncompleteAttemptRejected(t *testing.T) {
	f := newInapFixture(t, 3)

	_, err := f.svc.SubmitAnswers(f.attemptID, f.userID, dto.SaveInapAnswersRequest{
		Answers: []dto.InapAnswerInput{
			{QuestionID: f.questionIDs[0], Value: boolPtr(true)},
		},
	})
	require.NoError(t, err)

	_, err = f.svc.Finish(f.attemptID, f.userID)
	var incomplete *apperr.IncompleteAttemptError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, 1, incomplete.Answered)
	assert.Equal(t, 3, incomplete.Expected)

	// The attempt must stay open and answerable.
	resp, err := f.svc.GetResult(f.attemptID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptStatusInProgress, resp.Status)
	assert.Nil(t, resp.Result)
}

func TestInapFinish_ComputesAndStoresResult(t *testing.T) {
	f := newInapFixture(t, 4)
	f.answerAll(t, true)

	resp, err := f.svc.Finish(f.attemptID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptStatusFinished, resp.Status)
	require.NotNil(t, resp.Attempt.FinishedAt)
	require.NotNil(t, resp.Result)

	// All 4 questions are tec with both dims.
	assert.Equal(t, model.AreaDimScore{Interest: 4, Aptitude: 4, Total: 8}, resp.Result.ScoresByAreaDim["tec"])
	assert.Equal(t, model.AreaDimPercent{Interest: 100, Aptitude: 100, Total: 100}, resp.Result.PercentByAreaDim["tec"])
	assert.Equal(t, []string{"tec"}, []string(resp.Result.TopAreasByInterest))
}

func TestInapFinish_IdempotentReturnsStoredResult(t *testing.T) {
	f := newInapFixture(t, 2)
	f.answerAll(t, false)

	first, err := f.svc.Finish(f.attemptID, f.userID)
	require.NoError(t, err)

	second, err := f.svc.Finish(f.attemptID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, first.Result.ScoresByAreaDim, second.Result.ScoresByAreaDim)
	assert.Equal(t, first.Attempt.FinishedAt, second.Attempt.FinishedAt)

	viaRead, err := f.svc.GetResult(f.attemptID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, first.Result.ScoresByAreaDim, viaRead.Result.ScoresByAreaDim)
}

func TestInapAttempt_OwnershipEnforced(t *testing.T) {
	f := newInapFixture(t, 2)

	stranger := model.User{OrganizationID: 1, Rut: "22222222-2", Name: "Other", Role: model.RoleStudent}
	require.NoError(t, f.store.Users().Create(&stranger))

	_, err := f.svc.GetContext(f.attemptID, stranger.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = f.svc.Finish(f.attemptID, stranger.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestInapAttempt_NotFound(t *testing.T) {
	f := newInapFixture(t, 1)
	_, err := f.svc.GetContext(999, f.userID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestInapAttempt_TestKeyMismatchConflicts(t *testing.T) {
	f := newInapFixture(t, 2)

	// A CAAS service must refuse an attempt whose period runs INAPV.
	caasSvc := NewCaasAttemptService(f.store)
	_, err := caasSvc.GetContext(f.attemptID, f.userID)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

// --- CAAS ---

type caasFixture struct {
	store       *fakeStore
	svc         CaasAttemptService
	attemptID   uint
	userID      uint
	questionIDs []uint
}

func newCaasFixture(t *testing.T) *caasFixture {
	t.Helper()
	store := newFakeStore()

	test := model.Test{Key: model.TestKeyCaas, Name: "CAAS"}
	require.NoError(t, store.Tests().Create(&test))

	period := model.Period{OrganizationID: 1, TestID: test.ID, Name: "2026-1", Status: model.PeriodStatusActive}
	require.NoError(t, store.Periods().Create(&period))

	var questions []model.CaasQuestion
	order := 0
	for _, dim := range model.CaasDimensions {
		for i := 0; i < 6; i++ {
			order++
			questions = append(questions, model.CaasQuestion{
				TestID:     test.ID,
				ExternalID: order,
				Text:       "q",
				Dimension:  dim,
				OrderIndex: order,
			})
		}
	}
	require.NoError(t, store.CaasQuestions().CreateBatch(questions))
	questionIDs := make([]uint, len(questions))
	for i, q := range questions {
		questionIDs[i] = q.ID
	}

	user := model.User{OrganizationID: 1, Rut: "11111111-1", Name: "Student", Role: model.RoleStudent}
	require.NoError(t, store.Users().Create(&user))

	attempt := model.Attempt{UserID: user.ID, PeriodID: period.ID, Status: model.AttemptStatusInProgress}
	require.NoError(t, store.Attempts().Create(&attempt))

	return &caasFixture{
		store:       store,
		svc:         NewCaasAttemptService(store),
		attemptID:   attempt.ID,
		userID:      user.ID,
		questionIDs: questionIDs,
	}
}

func (f *caasFixture) answerAll(t *testing.T, value int) {
	t.Helper()
	inputs := make([]dto.CaasAnswerInput, len(f.questionIDs))
	for i, id := range f.questionIDs {
		inputs[i] = dto.CaasAnswerInput{QuestionID: id, Value: value}
	}
	_, err := f.svc.SubmitAnswers(f.attemptID, f.userID, dto.SaveCaasAnswersRequest{Answers: inputs})
	require.NoError(t, err)
}

func TestCaasSubmitAnswers_RejectsOutOfRangeValue(t *testing.T) {
	f := newCaasFixture(t)

	for _, value := range []int{0, 6, -1} {
		_, err := f.svc.SubmitAnswers(f.attemptID, f.userID, dto.SaveCaasAnswersRequest{
			Answers: []dto.CaasAnswerInput{{QuestionID: f.questionIDs[0], Value: value}},
		})
		assert.ErrorIs(t, err, apperr.ErrInvalidInput, "value %d must be rejected", value)
	}
}

func TestCaasSubmitAnswers_OverwriteKeepsCounter(t *testing.T) {
	f := newCaasFixture(t)

	progress, err := f.svc.SubmitAnswers(f.attemptID, f.userID, dto.SaveCaasAnswersRequest{
		Answers: []dto.CaasAnswerInput{{QuestionID: f.questionIDs[0], Value: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, progress.AnsweredCount)

	progress, err = f.svc.SubmitAnswers(f.attemptID, f.userID, dto.SaveCaasAnswersRequest{
		Answers: []dto.CaasAnswerInput{{QuestionID: f.questionIDs[0], Value: 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, progress.AnsweredCount)

	resp, err := f.svc.GetAnswers(f.attemptID, f.userID)
	require.NoError(t, err)
	require.Len(t, resp.Answers, 1)
	assert.Equal(t, 5, resp.Answers[0].Value)
}

func TestCaasFinish_ScoresAndLevels(t *testing.T) {
	f := newCaasFixture(t)
	f.answerAll(t, 4)

	resp, err := f.svc.Finish(f.attemptID, f.userID)
	require.NoError(t, err)
	require.NotNil(t, resp.Result)

	assert.Equal(t, 96, resp.Result.TotalScore)
	assert.Equal(t, 120, resp.Result.MaxScore)
	assert.Equal(t, 80.0, resp.Result.Percentage)
	assert.Equal(t, model.LevelHigh, resp.Result.Level)
	assert.Equal(t, model.DimensionScore{Score: 24, Max: 30, Percentage: 80}, resp.Result.ScoresByDimension["control"])
}

func TestCaasFinish_IncompleteAttemptRejected(t *testing.T) {
	f := newCaasFixture(t)

	_, err := f.svc.SubmitAnswers(f.attemptID, f.userID, dto.SaveCaasAnswersRequest{
		Answers: []dto.CaasAnswerInput{{QuestionID: f.questionIDs[0], Value: 3}},
	})
	require.NoError(t, err)

	_, err = f.svc.Finish(f.attemptID, f.userID)
	var incomplete *apperr.IncompleteAttemptError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, 1, incomplete.Answered)
	assert.Equal(t, 24, incomplete.Expected)
}

func TestCaasGetResult_InProgressHasNoResult(t *testing.T) {
	f := newCaasFixture(t)

	resp, err := f.svc.GetResult(f.attemptID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptStatusInProgress, resp.Status)
	assert.Nil(t, resp.Result)
}

func TestCaasGetContext_ReturnsCatalogInOrder(t *testing.T) {
	f := newCaasFixture(t)

	resp, err := f.svc.GetContext(f.attemptID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, model.TestKeyCaas, resp.Test.Key)
	assert.Equal(t, model.CaasDimensions, resp.Dimensions)
	require.Len(t, resp.Questions, 24)
	for i := 1; i < len(resp.Questions); i++ {
		assert.Less(t, resp.Questions[i-1].OrderIndex, resp.Questions[i].OrderIndex)
	}
}
