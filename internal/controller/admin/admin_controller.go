package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mvaldebenito/vocanta/internal/controller"
	"github.com/mvaldebenito/vocanta/internal/dto"
	"github.com/mvaldebenito/vocanta/internal/service"
	"github.com/rs/zerolog/log"
)

// AdminController exposes the provisioning endpoints: organizations, test
// catalogs, periods, students and enrollments.
type AdminController struct {
	svc service.AdminService
}

func NewAdminController(svc service.AdminService) *AdminController {
	return &AdminController{svc: svc}
}

func (ctrl *AdminController) RegisterRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin")
	admin.POST("/organizations", ctrl.CreateOrganizationHandler)
	admin.GET("/organizations/:id/periods", ctrl.ListPeriodsHandler)
	admin.POST("/tests", ctrl.CreateTestHandler)
	admin.GET("/tests", ctrl.ListTestsHandler)
	admin.POST("/periods", ctrl.CreatePeriodHandler)
	admin.POST("/students", ctrl.CreateStudentHandler)
	admin.POST("/periods/:id/enrollments", ctrl.EnrollStudentHandler)
	admin.GET("/periods/:id/students", ctrl.GetPeriodRosterHandler)
}

// CreateOrganizationHandler godoc
// @Summary Create an organization
// @Tags admin
// @Accept json
// @Produce json
// @Param organization body dto.CreateOrganizationRequest true "Organization data"
// @Success 201 {object} dto.OrganizationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/organizations [post]
func (ctrl *AdminController) CreateOrganizationHandler(c *gin.Context) {
	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}

	resp, err := ctrl.svc.CreateOrganization(req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListPeriodsHandler godoc
// @Summary List the periods of an organization
// @Tags admin
// @Produce json
// @Param id path int true "Organization ID"
// @Success 200 {array} dto.PeriodResponse
// @Failure 404 {object} dto.ErrorResponse "Organization not found"
// @Router /admin/organizations/{id}/periods [get]
func (ctrl *AdminController) ListPeriodsHandler(c *gin.Context) {
	orgID, ok := controller.ParamUint(c, "id")
	if !ok {
		return
	}

	periods, err := ctrl.svc.ListPeriods(orgID)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, periods)
}

// CreateTestHandler godoc
// @Summary Create a test version with its question catalog
// @Description Seeds an INAPV or CAAS test. The key decides which question list must be present.
// @Tags admin
// @Accept json
// @Produce json
// @Param test body dto.CreateTestRequest true "Test with questions"
// @Success 201 {object} dto.TestResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid body, key or question tags"
// @Router /admin/tests [post]
func (ctrl *AdminController) CreateTestHandler(c *gin.Context) {
	var req dto.CreateTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind CreateTestRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}

	resp, err := ctrl.svc.CreateTest(req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListTestsHandler godoc
// @Summary List all test versions
// @Tags admin
// @Produce json
// @Success 200 {array} dto.TestResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/tests [get]
func (ctrl *AdminController) ListTestsHandler(c *gin.Context) {
	tests, err := ctrl.svc.ListTests()
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, tests)
}

// CreatePeriodHandler godoc
// @Summary Create a period
// @Description Opens a testing window for one organization running one test
// @Tags admin
// @Accept json
// @Produce json
// @Param period body dto.CreatePeriodRequest true "Period data"
// @Success 201 {object} dto.PeriodResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Organization or test not found"
// @Router /admin/periods [post]
func (ctrl *AdminController) CreatePeriodHandler(c *gin.Context) {
	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}

	resp, err := ctrl.svc.CreatePeriod(req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CreateStudentHandler godoc
// @Summary Register a student
// @Tags admin
// @Accept json
// @Produce json
// @Param student body dto.CreateStudentRequest true "Student data"
// @Success 201 {object} dto.StudentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Organization not found"
// @Failure 409 {object} dto.ErrorResponse "Rut already registered"
// @Router /admin/students [post]
func (ctrl *AdminController) CreateStudentHandler(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}

	resp, err := ctrl.svc.CreateStudent(req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// EnrollStudentHandler godoc
// @Summary Enroll a student into a period
// @Description Creates the enrollment and the student's in-progress attempt. Idempotent.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Period ID"
// @Param enrollment body dto.EnrollStudentRequest true "Student to enroll"
// @Success 201 {object} dto.EnrollmentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Student belongs to another organization"
// @Failure 404 {object} dto.ErrorResponse "Period or user not found"
// @Router /admin/periods/{id}/enrollments [post]
func (ctrl *AdminController) EnrollStudentHandler(c *gin.Context) {
	periodID, ok := controller.ParamUint(c, "id")
	if !ok {
		return
	}

	var req dto.EnrollStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}

	resp, err := ctrl.svc.EnrollStudent(periodID, req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetPeriodRosterHandler godoc
// @Summary List the students enrolled in a period
// @Tags admin
// @Produce json
// @Param id path int true "Period ID"
// @Success 200 {object} dto.PeriodRosterResponse
// @Failure 404 {object} dto.ErrorResponse "Period not found"
// @Router /admin/periods/{id}/students [get]
func (ctrl *AdminController) GetPeriodRosterHandler(c *gin.Context) {
	periodID, ok := controller.ParamUint(c, "id")
	if !ok {
		return
	}

	resp, err := ctrl.svc.GetPeriodRoster(periodID)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
