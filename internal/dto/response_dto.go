package dto

import (
	"time"

	"github.com/mvaldebenito/vocanta/internal/model"
)

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// IncompleteAttemptResponse is the 4xx body when finish is requested before
// every question has an answer.
type IncompleteAttemptResponse struct {
	Message  string `json:"message"`
	Answered int    `json:"answered"`
	Expected int    `json:"expected"`
}

// AttemptProgress is the minimal attempt view returned after saving answers.
type AttemptProgress struct {
	ID            uint       `json:"id"`
	Status        string     `json:"status"`
	AnsweredCount int        `json:"answered_count"`
	FinishedAt    *time.Time `json:"finished_at,omitempty"`
}

// --- Attempt context (questions + progress, for resuming) ---

type InapQuestionResponse struct {
	ID         uint     `json:"id"`
	ExternalID int      `json:"external_id"`
	Text       string   `json:"text"`
	Area       string   `json:"area"`
	Dim        []string `json:"dim"`
	OrderIndex int      `json:"order_index"`
}

type CaasQuestionResponse struct {
	ID         uint   `json:"id"`
	ExternalID int    `json:"external_id"`
	Text       string `json:"text"`
	Dimension  string `json:"dimension"`
	OrderIndex int    `json:"order_index"`
}

type TestResponse struct {
	ID          uint      `json:"id"`
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	Version     *string   `json:"version,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type PeriodResponse struct {
	ID             uint       `json:"id"`
	OrganizationID uint       `json:"organization_id"`
	TestID         uint       `json:"test_id"`
	Name           string     `json:"name"`
	Status         string     `json:"status"`
	StartAt        *time.Time `json:"start_at,omitempty"`
	EndAt          *time.Time `json:"end_at,omitempty"`
}

type InapAttemptContextResponse struct {
	Test      TestResponse           `json:"test"`
	Period    PeriodResponse         `json:"period"`
	Attempt   AttemptProgress        `json:"attempt"`
	Areas     []string               `json:"areas"`
	Questions []InapQuestionResponse `json:"questions"`
}

type CaasAttemptContextResponse struct {
	Test       TestResponse           `json:"test"`
	Period     PeriodResponse         `json:"period"`
	Attempt    AttemptProgress        `json:"attempt"`
	Dimensions []string               `json:"dimensions"`
	Questions  []CaasQuestionResponse `json:"questions"`
}

// --- Saved answers (for resuming an attempt) ---

type InapAnswerPair struct {
	QuestionID uint `json:"question_id"`
	Value      bool `json:"value"`
}

type CaasAnswerPair struct {
	QuestionID uint `json:"question_id"`
	Value      int  `json:"value"`
}

type InapAttemptAnswersResponse struct {
	Attempt AttemptProgress  `json:"attempt"`
	Answers []InapAnswerPair `json:"answers"`
}

type CaasAttemptAnswersResponse struct {
	Attempt AttemptProgress  `json:"attempt"`
	Answers []CaasAnswerPair `json:"answers"`
}

// --- Results ---

type InapResultResponse struct {
	ScoresByAreaDim    map[string]model.AreaDimScore   `json:"scores_by_area_dim"`
	MaxByAreaDim       map[string]model.AreaDimScore   `json:"max_by_area_dim"`
	PercentByAreaDim   map[string]model.AreaDimPercent `json:"percent_by_area_dim"`
	TopAreasByInterest []string                        `json:"top_areas_by_interest"`
	TopAreasByAptitude []string                        `json:"top_areas_by_aptitude"`
	CreatedAt          time.Time                       `json:"created_at"`
}

type CaasResultResponse struct {
	TotalScore        int                             `json:"total_score"`
	MaxScore          int                             `json:"max_score"`
	Percentage        float64                         `json:"percentage"`
	ScoresByDimension map[string]model.DimensionScore `json:"scores_by_dimension"`
	Level             string                          `json:"level"`
	CreatedAt         time.Time                       `json:"created_at"`
}

// InapAttemptResultResponse carries progress while in_progress and the stored
// result once finished.
type InapAttemptResultResponse struct {
	Status  string              `json:"status"`
	Attempt AttemptProgress     `json:"attempt"`
	Result  *InapResultResponse `json:"result"`
}

type CaasAttemptResultResponse struct {
	Status  string              `json:"status"`
	Attempt AttemptProgress     `json:"attempt"`
	Result  *CaasResultResponse `json:"result"`
}

// --- Admin provisioning responses ---

type OrganizationResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type StudentResponse struct {
	ID             uint    `json:"id"`
	OrganizationID uint    `json:"organization_id"`
	Rut            string  `json:"rut"`
	Name           string  `json:"name"`
	Email          *string `json:"email,omitempty"`
}

type EnrollmentResponse struct {
	PeriodID uint            `json:"period_id"`
	UserID   uint            `json:"user_id"`
	Attempt  AttemptProgress `json:"attempt"`
}

// PeriodRosterResponse lists the students enrolled in a period.
type PeriodRosterResponse struct {
	PeriodID uint              `json:"period_id"`
	Students []StudentResponse `json:"students"`
}
