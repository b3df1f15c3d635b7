package handler

import (
	"github.com/keiri-hq/keiri-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	memberships middleware.MembershipChecker,
	refreshLimiter *middleware.RateLimiter,
	companyHandler *CompanyHandler,
	scheduleHandler *ScheduleHandler,
) {
	// API version 1
	api := e.Group("/api/v1")
	api.Use(authMiddleware.Authenticate())

	// Company creation (any authenticated user)
	api.POST("/companies", companyHandler.CreateCompany)

	// Company-scoped routes (members only)
	company := api.Group("/companies/:companyId")
	company.Use(middleware.RequireCompanyMember(memberships))
	company.GET("", companyHandler.GetCompany)
	company.GET("/schedule", scheduleHandler.ListSchedule)
	company.POST("/schedule/refresh", scheduleHandler.RefreshSchedule, middleware.RateLimitMiddleware(refreshLimiter))
	company.GET("/summary", scheduleHandler.GetHomeSummary)

	// Dry-run preview for an unsaved company profile
	api.POST("/schedule/preview", scheduleHandler.PreviewSchedule)
}
