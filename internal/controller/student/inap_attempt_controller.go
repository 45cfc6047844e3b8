package student

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mvaldebenito/vocanta/internal/controller"
	"github.com/mvaldebenito/vocanta/internal/dto"
	"github.com/mvaldebenito/vocanta/internal/service"
	"github.com/rs/zerolog/log"
)

// InapAttemptController exposes the INAPV attempt lifecycle. The student is
// identified by the user_id query parameter; authentication sits in front of
// this service.
type InapAttemptController struct {
	svc service.InapAttemptService
}

func NewInapAttemptController(svc service.InapAttemptService) *InapAttemptController {
	return &InapAttemptController{svc: svc}
}

func (ctrl *InapAttemptController) RegisterRoutes(api *gin.RouterGroup) {
	attempts := api.Group("/inapv/attempts")
	attempts.GET("/:id/context", ctrl.GetContextHandler)
	attempts.GET("/:id/answers", ctrl.GetAnswersHandler)
	attempts.POST("/:id/answers", ctrl.SaveAnswersHandler)
	attempts.POST("/:id/finish", ctrl.FinishHandler)
	attempts.GET("/:id/result", ctrl.GetResultHandler)
}

// GetContextHandler godoc
// @Summary Get the INAPV attempt context
// @Description Retrieve the test, period, question catalog and progress for an attempt, for starting or resuming it
// @Tags inapv
// @Produce json
// @Param id path int true "Attempt ID"
// @Param user_id query int true "Student user ID"
// @Success 200 {object} dto.InapAttemptContextResponse
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt belongs to another test"
// @Router /inapv/attempts/{id}/context [get]
func (ctrl *InapAttemptController) GetContextHandler(c *gin.Context) {
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
// @Summary Get the saved answers of an INAPV attempt
// @Description Retrieve every answer saved so far plus progress, for resuming
// @Tags inapv
// @Produce json
// @Param id path int true "Attempt ID"
// @Param user_id query int true "Student user ID"
// @Success 200 {object} dto.InapAttemptAnswersResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /inapv/attempts/{id}/answers [get]
func (ctrl *InapAttemptController) GetAnswersHandler(c *gin.Context) {
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
// @Summary Save a batch of INAPV answers
// @Description Upsert yes/no answers for an in-progress attempt. Re-answering a question overwrites the value without double counting it.
// @Tags inapv
// @Accept json
// @Produce json
// @Param id path int true "Attempt ID"
// @Param user_id query int true "Student user ID"
// @Param answers body dto.SaveInapAnswersRequest true "Answer batch"
// @Success 200 {object} dto.AttemptProgress
// @Failure 400 {object} dto.ErrorResponse "Invalid body or unknown question"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Attempt already finished"
// @Router /inapv/attempts/{id}/answers [post]
func (ctrl *InapAttemptController) SaveAnswersHandler(c *gin.Context) {
	attemptID, ok := controller.ParamUint(c, "id")
	if !ok {
		return
	}
	userID, ok := controller.QueryUint(c, "user_id")
	if !ok {
		return
	}

	var req dto.SaveInapAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind SaveInapAnswersRequest")
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
// @Summary Finish an INAPV attempt
// @Description Close the attempt and compute its result. Requires every question answered. Finishing an already finished attempt returns the stored result.
// @Tags inapv
// @Produce json
// @Param id path int true "Attempt ID"
// @Param user_id query int true "Student user ID"
// @Success 200 {object} dto.InapAttemptResultResponse
// @Failure 400 {object} dto.IncompleteAttemptResponse "Not every question answered"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /inapv/attempts/{id}/finish [post]
func (ctrl *InapAttemptController) FinishHandler(c *gin.Context) {
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
// @Summary Get the result of an INAPV attempt
// @Description Returns progress while the attempt is in progress and the stored result once finished
// @Tags inapv
// @Produce json
// @Param id path int true "Attempt ID"
// @Param user_id query int true "Student user ID"
// @Success 200 {object} dto.InapAttemptResultResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /inapv/attempts/{id}/result [get]
func (ctrl *InapAttemptController) GetResultHandler(c *gin.Context) {
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
