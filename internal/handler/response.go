package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/keiri-hq/keiri-backend/internal/domain"
	"github.com/keiri-hq/keiri-backend/internal/middleware"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string       `json:"type"`
	Title    string       `json:"title"`
	Status   int          `json:"status"`
	Detail   string       `json:"detail,omitempty"`
	Instance string       `json:"instance,omitempty"`
	Errors   []FieldError `json:"errors,omitempty"`
}

// FieldError names the request field a validation failure belongs to
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Problem types emitted by the API
const (
	ErrorTypeValidation   = "https://keiri.app/errors/validation"
	ErrorTypeNotFound     = "https://keiri.app/errors/not-found"
	ErrorTypeUnauthorized = "https://keiri.app/errors/unauthorized"
	ErrorTypeConflict     = "https://keiri.app/errors/conflict"
	ErrorTypeInternal     = "https://keiri.app/errors/internal"
)

// fieldErrors maps company and schedule validation errors onto request fields
var fieldErrors = []struct {
	err   error
	field FieldError
}{
	{domain.ErrNameRequired, FieldError{Field: "name", Message: "Name is required"}},
	{domain.ErrNameTooLong, FieldError{Field: "name", Message: "Name must be 255 characters or less"}},
	{domain.ErrInvalidLegalForm, FieldError{Field: "legalForm", Message: "Legal form must be one of: corporation, sole"}},
	{domain.ErrInvalidFiscalMonth, FieldError{Field: "fiscalClosingMonth", Message: "Fiscal closing month must be between 1 and 12"}},
	{domain.ErrInvalidSchedule, FieldError{Field: "paymentSchedule", Message: "Payment schedule must be one of: monthly, special"}},
	{domain.ErrInvalidHorizon, FieldError{Field: "horizonMonths", Message: "Horizon must be between 0 and 60 months"}},
}

func writeProblem(c echo.Context, status int, problemType, title, detail string, fields []FieldError) error {
	return c.JSON(status, ProblemDetails{
		Type:     problemType,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   fields,
	})
}

func validationFailed(c echo.Context, fields ...FieldError) error {
	return writeProblem(c, http.StatusBadRequest, ErrorTypeValidation, "Validation Error", "Validation failed", fields)
}

func invalidBody(c echo.Context) error {
	return writeProblem(c, http.StatusBadRequest, ErrorTypeValidation, "Validation Error", "Invalid request body", nil)
}

func invalidCompanyID(c echo.Context) error {
	return writeProblem(c, http.StatusBadRequest, ErrorTypeValidation, "Validation Error", "Invalid company ID", nil)
}

func notAuthenticated(c echo.Context) error {
	return writeProblem(c, http.StatusUnauthorized, ErrorTypeUnauthorized, "Unauthorized", "Not authenticated", nil)
}

// respondServiceError writes the problem response for an error returned by a company
// or schedule service. Errors with no mapping are logged and reported as "Failed to <action>".
func respondServiceError(c echo.Context, err error, action string) error {
	for _, fe := range fieldErrors {
		if errors.Is(err, fe.err) {
			return validationFailed(c, fe.field)
		}
	}

	switch {
	case errors.Is(err, domain.ErrCompanyNotFound):
		return writeProblem(c, http.StatusNotFound, ErrorTypeNotFound, "Not Found", "Company not found", nil)
	case errors.Is(err, domain.ErrUnauthorized):
		return notAuthenticated(c)
	case errors.Is(err, domain.ErrAlreadyExists):
		return writeProblem(c, http.StatusConflict, ErrorTypeConflict, "Conflict", "Company already exists", nil)
	}

	event := log.Error().Err(err)
	if companyID := middleware.GetCompanyID(c); companyID != uuid.Nil {
		event = event.Str("company_id", companyID.String())
	}
	if subject := middleware.GetSubject(c); subject != "" {
		event = event.Str("subject", subject)
	}
	event.Msg("Failed to " + action)

	return writeProblem(c, http.StatusInternalServerError, ErrorTypeInternal, "Internal Server Error", "Failed to "+action, nil)
}
