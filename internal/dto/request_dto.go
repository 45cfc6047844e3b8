package dto

import "time"

// --- Attempt-taking requests (student) ---

// InapAnswerInput is one yes/no answer in a save batch. Value is a pointer so
// binding can tell an explicit false apart from a missing field.
type InapAnswerInput struct {
	QuestionID uint  `json:"question_id" binding:"required"`
	Value      *bool `json:"value" binding:"required"`
}

type SaveInapAnswersRequest struct {
	Answers []InapAnswerInput `json:"answers" binding:"required,min=1,dive"`
}

// CaasAnswerInput is one Likert answer in a save batch, value 1..5.
type CaasAnswerInput struct {
	QuestionID uint `json:"question_id" binding:"required"`
	Value      int  `json:"value" binding:"required,min=1,max=5"`
}

type SaveCaasAnswersRequest struct {
	Answers []CaasAnswerInput `json:"answers" binding:"required,min=1,dive"`
}

// --- Admin provisioning requests ---

type CreateOrganizationRequest struct {
	Name string `json:"name" binding:"required"`
}

type InapQuestionInput struct {
	ExternalID int      `json:"external_id" binding:"required"`
	Text       string   `json:"text" binding:"required"`
	Area       string   `json:"area" binding:"required,oneof=adm agr art csn edu ing sal seg soc tec"`
	Dim        []string `json:"dim" binding:"required,min=1,max=2,dive,oneof=interest aptitude"`
	OrderIndex int      `json:"order_index" binding:"required,min=1"`
}

type CaasQuestionInput struct {
	ExternalID int    `json:"external_id" binding:"required"`
	Text       string `json:"text" binding:"required"`
	Dimension  string `json:"dimension" binding:"required,oneof=concern control curiosity confidence"`
	OrderIndex int    `json:"order_index" binding:"required,min=1"`
}

// CreateTestRequest seeds a test version with its full question catalog.
// Exactly one of InapQuestions/CaasQuestions must be present, matching Key.
type CreateTestRequest struct {
	Key           string              `json:"key" binding:"required,oneof=inapv caas"`
	Name          string              `json:"name" binding:"required"`
	Version       *string             `json:"version"`
	Description   string              `json:"description"`
	InapQuestions []InapQuestionInput `json:"inap_questions" binding:"omitempty,dive"`
	CaasQuestions []CaasQuestionInput `json:"caas_questions" binding:"omitempty,dive"`
}

type CreatePeriodRequest struct {
	OrganizationID uint       `json:"organization_id" binding:"required"`
	TestID         uint       `json:"test_id" binding:"required"`
	Name           string     `json:"name" binding:"required"`
	StartAt        *time.Time `json:"start_at"`
	EndAt          *time.Time `json:"end_at"`
}

type CreateStudentRequest struct {
	OrganizationID uint    `json:"organization_id" binding:"required"`
	Rut            string  `json:"rut" binding:"required"`
	Name           string  `json:"name" binding:"required"`
	Email          *string `json:"email" binding:"omitempty,email"`
}

type EnrollStudentRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}
