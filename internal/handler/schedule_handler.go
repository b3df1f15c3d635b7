package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/keiri-hq/keiri-backend/internal/middleware"
	"github.com/keiri-hq/keiri-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// ScheduleHandler handles schedule-related HTTP requests
type ScheduleHandler struct {
	scheduleService *service.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler
func NewScheduleHandler(scheduleService *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
	}
}

// RefreshScheduleResponse reports how many tasks a refresh created
type RefreshScheduleResponse struct {
	OK            bool `json:"ok"`
	HorizonMonths int  `json:"horizonMonths"`
	Candidates    int  `json:"candidates"`
	Inserted      int  `json:"inserted"`
}

// PreviewScheduleRequest represents the preview request body.
// Company accepts the same keys as a stored company record, camelCase or snake_case.
type PreviewScheduleRequest struct {
	Company       map[string]any `json:"company"`
	HorizonMonths *int           `json:"horizonMonths,omitempty"`
}

// ListSchedule godoc
// @Summary List open tasks
// @Description List the company's open tasks ordered by due date, overdue ones flagged
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param companyId path string true "Company ID (UUID)"
// @Success 200 {array} service.ScheduleItem
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /companies/{companyId}/schedule [get]
func (h *ScheduleHandler) ListSchedule(c echo.Context) error {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		return invalidCompanyID(c)
	}

	items, err := h.scheduleService.ListSchedule(c.Request().Context(), companyID)
	if err != nil {
		return respondServiceError(c, err, "list schedule")
	}

	return c.JSON(http.StatusOK, items)
}

// RefreshSchedule godoc
// @Summary Refresh the task schedule
// @Description Generate any missing tasks within the refresh horizon. Existing tasks are never duplicated.
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param companyId path string true "Company ID (UUID)"
// @Success 200 {object} RefreshScheduleResponse
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 429 {object} map[string]string
// @Router /companies/{companyId}/schedule/refresh [post]
func (h *ScheduleHandler) RefreshSchedule(c echo.Context) error {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		return invalidCompanyID(c)
	}

	result, err := h.scheduleService.RefreshSchedule(c.Request().Context(), companyID)
	if err != nil {
		return respondServiceError(c, err, "refresh schedule")
	}

	return c.JSON(http.StatusOK, RefreshScheduleResponse{
		OK:            true,
		HorizonMonths: result.HorizonMonths,
		Candidates:    result.Candidates,
		Inserted:      int(result.Inserted),
	})
}

// GetHomeSummary godoc
// @Summary Home screen summary
// @Description Overdue count, tasks due in the next two weeks and profile alerts
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param companyId path string true "Company ID (UUID)"
// @Success 200 {object} service.HomeSummary
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /companies/{companyId}/summary [get]
func (h *ScheduleHandler) GetHomeSummary(c echo.Context) error {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		return invalidCompanyID(c)
	}

	summary, err := h.scheduleService.GetHomeSummary(c.Request().Context(), companyID)
	if err != nil {
		return respondServiceError(c, err, "get home summary")
	}

	return c.JSON(http.StatusOK, summary)
}

// PreviewSchedule godoc
// @Summary Preview a schedule
// @Description Dry-run the generator for an unsaved company record. Nothing is stored.
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PreviewScheduleRequest true "Company record and horizon"
// @Success 200 {object} service.SchedulePreview
// @Failure 400 {object} ProblemDetails
// @Router /schedule/preview [post]
func (h *ScheduleHandler) PreviewSchedule(c echo.Context) error {
	var req PreviewScheduleRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if req.Company == nil {
		return validationFailed(c, FieldError{Field: "company", Message: "Company is required"})
	}

	horizon := service.DefaultCreateHorizonMonths
	if req.HorizonMonths != nil {
		horizon = *req.HorizonMonths
	}

	preview, err := h.scheduleService.PreviewSchedule(req.Company, horizon)
	if err != nil {
		return respondServiceError(c, err, "preview schedule")
	}

	return c.JSON(http.StatusOK, preview)
}
