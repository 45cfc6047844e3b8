package student

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mvaldebenito/vocanta/internal/controller"
	"github.com/mvaldebenito/vocanta/internal/dto"
	"github.com/mvaldebenito/vocanta/internal/service"
	"github.com/rs/zerolog/log"
)

// CaasAttemptController exposes the CAAS attempt lifecycle, mirroring the
// INAPV routes under /caas.
type CaasAttemptController struct {
	svc service.CaasAttemptService
}

func NewCaasAttemptController(svc service.CaasAttemptService) *CaasAttemptController {
	return &CaasAttemptController{svc: svc}
}

func (ctrl *CaasAttemptController) RegisterRoutes(api *gin.RouterGroup) {
	attempts := api.Group("/caas/attempts")
	attempts.GET("/:id/context", ctrl.GetContextHandler)
	attempts.GET("/:id/answers", ctrl.GetAnswersHandler)
	attempts.POST("/:id/answers", ctrl.SaveAnswersHandler)
	attempts.POST("/:id/finish", ctrl.FinishHandler)
	attempts.GET("/:id/result", ctrl.GetResultHandler)
}

// GetContextHandler godoc
// @Summary Get the CAAS attempt context
// @Description Retrieve the test, period, question catalog and progress for an attempt, for starting or resuming it
// @Tags caas
// @Produce json
// @Param id path int true "Attempt ID"
// @Param user_id query int true "Student user ID"
// @Success 200 {object} dto.CaasAttemptContextResponse
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt belongs to another test"
// @Router /caas/attempts/{id}/context [get]
func (ctrl *CaasAttemptController) GetContextHandler(c *gin.Context) {
	attemptID, ok := controller.ParamUint(c, "id")
	if !ok {
		return
	}
	userID, ok := controller.QueryUint(c, "user_id")
	if !ok {
		return
	}

	resp, err := ctrl.svc.GetContext(attemptID, userID)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetAnswersHandler godoc
// @Summary Get the saved answers of a CAAS attempt
// @Description Retrieve every answer saved so far plus progress, for resuming
// @Tags caas
// @Produce json
// @Param id path int true "Attempt ID"
// @Param user_id query int true "Student user ID"
// @Success 200 {object} dto.CaasAttemptAnswersResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /caas/attempts/{id}/answers [get]
func (ctrl *CaasAttemptController) GetAnswersHandler(c *gin.Context) {
	attemptID, ok := controller.ParamUint(c, "id")
	if !ok {
		return
	}
	userID, ok := controller.QueryUint(c, "user_id")
	if !ok {
		return
	}

	resp, err := ctrl.svc.GetAnswers(attemptID, userID)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SaveAnswersHandler godoc
// @Summary Save a batch of CAAS answers
// @Description Upsert Likert answers (1..5) for an in-progress attempt. Re-answering a question overwrites the value without double counting it.
// @Tags caas
// @Accept json
// @Produce json
// @Param id path int true "Attempt ID"
// @Param user_id query int true "Student user ID"
// @Param answers body dto.SaveCaasAnswersRequest true "Answer batch"
// @Success 200 {object} dto.AttemptProgress
// @Failure 400 {object} dto.ErrorResponse "Invalid body, value out of range or unknown question"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Attempt already finished"
// @Router /caas/attempts/{id}/answers [post]
func (ctrl *CaasAttemptController) SaveAnswersHandler(c *gin.Context) {
	attemptID, ok := controller.ParamUint(c, "id")
	if !ok {
		return
	}
	userID, ok := controller.QueryUint(c, "user_id")
	if !ok {
		return
	}

	var req dto.SaveCaasAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind SaveCaasAnswersRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}

	progress, err := ctrl.svc.SubmitAnswers(attemptID, userID, req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// FinishHandler godoc
// @Summary Finish a CAAS attempt
// @Description Close the attempt and compute its result. Requires every question answered. Finishing an already finished attempt returns the stored result.
// @Tags caas
// @Produce json
// @Param id path int true "Attempt ID"
// @Param user_id query int true "Student user ID"
// @Success 200 {object} dto.CaasAttemptResultResponse
// @Failure 400 {object} dto.IncompleteAttemptResponse "Not every question answered"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /caas/attempts/{id}/finish [post]
func (ctrl *CaasAttemptController) FinishHandler(c *gin.Context) {
	attemptID, ok := controller.ParamUint(c, "id")
	if !ok {
		return
	}
	userID, ok := controller.QueryUint(c, "user_id")
	if !ok {
		return
	}

	resp, err := ctrl.svc.Finish(attemptID, userID)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetResultHandler godoc
// @Summary Get the result of a CAAS attempt
// @Description Returns progress while the attempt is in progress and the stored result once finished
// @Tags caas
// @Produce json
// @Param id path int true "Attempt ID"
// @Param user_id query int true "Student user ID"
// @Success 200 {object} dto.CaasAttemptResultResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /caas/attempts/{id}/result [get]
func (ctrl *CaasAttemptController) GetResultHandler(c *gin.Context) {
	attemptID, ok := controller.ParamUint(c, "id")
	if !ok {
		return
	}
	userID, ok := controller.QueryUint(c, "user_id")
	if !ok {
		return
	}

	resp, err := ctrl.svc.GetResult(attemptID, userID)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
