package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mvaldebenito/vocanta/internal/controller"
	"github.com/mvaldebenito/vocanta/internal/service"
)

// PeriodResultsController exposes the period-level aggregates.
type PeriodResultsController struct {
	svc service.PeriodResultsService
}

func NewPeriodResultsController(svc service.PeriodResultsService) *PeriodResultsController {
	return &PeriodResultsController{svc: svc}
}

func (ctrl *PeriodResultsController) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/admin/periods/:id/results", ctrl.GetPeriodResultsHandler)
}

// GetPeriodResultsHandler godoc
// @Summary Get the aggregated results of a period
// @Description Progress counts plus the per-area (INAPV) or per-dimension (CAAS) roll-up over every finished attempt, recomputed on read
// @Tags admin
// @Produce json
// @Param id path int true "Period ID"
// @Success 200 {object} dto.PeriodResultsResponse
// @Failure 404 {object} dto.ErrorResponse "Period not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/periods/{id}/results [get]
func (ctrl *PeriodResultsController) GetPeriodResultsHandler(c *gin.Context) {
	periodID, ok := controller.ParamUint(c, "id")
	if !ok {
		return
	}

	resp, err := ctrl.svc.GetPeriodResults(periodID)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
