package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/keiri-hq/keiri-backend/internal/domain"
	"github.com/keiri-hq/keiri-backend/internal/middleware"
	"github.com/keiri-hq/keiri-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// CompanyHandler handles company-related HTTP requests
type CompanyHandler struct {
	companyService *service.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
	}
}

// CreateCompanyRequest represents the create company request body
type CreateCompanyRequest struct {
	Name                string  `json:"name"`
	LegalForm           string  `json:"legalForm"`
	FiscalClosingMonth  *int32  `json:"fiscalClosingMonth,omitempty"`
	WithholdingSchedule string  `json:"withholdingIncomeTaxPaymentSchedule,omitempty"`
	ResidentSchedule    string  `json:"residentTaxPaymentSchedule,omitempty"`
	LocationCode        *string `json:"locationCode,omitempty"`
	Address             *string `json:"address,omitempty"`
	RepresentativeName  *string `json:"representativeName,omitempty"`
	ContactEmail        *string `json:"contactEmail,omitempty"`
	ContactPhone        *string `json:"contactPhone,omitempty"`
}

// CreateCompanyResponse is returned after a company is created
type CreateCompanyResponse struct {
	CompanyID uuid.UUID `json:"companyId"`
}

// CompanyResponse represents a company in API responses
type CompanyResponse struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	LegalForm           string    `json:"legalForm"`
	FiscalClosingMonth  *int32    `json:"fiscalClosingMonth,omitempty"`
	WithholdingSchedule *string   `json:"withholdingIncomeTaxPaymentSchedule,omitempty"`
	ResidentSchedule    *string   `json:"residentTaxPaymentSchedule,omitempty"`
	LocationCode        *string   `json:"locationCode,omitempty"`
	Address             *string   `json:"address,omitempty"`
	RepresentativeName  *string   `json:"representativeName,omitempty"`
	ContactEmail        *string   `json:"contactEmail,omitempty"`
	ContactPhone        *string   `json:"contactPhone,omitempty"`
	CreatedAt           string    `json:"createdAt"`
	UpdatedAt           string    `json:"updatedAt"`
}

// CreateCompany godoc
// @Summary Create a company
// @Description Create a company owned by the caller and generate its initial task schedule
// @Tags companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCompanyRequest true "Company profile"
// @Success 201 {object} CreateCompanyResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /companies [post]
func (h *CompanyHandler) CreateCompany(c echo.Context) error {
	subject := middleware.GetSubject(c)
	if subject == "" {
		return notAuthenticated(c)
	}

	var req CreateCompanyRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	input := service.CreateCompanyInput{
		Name:                req.Name,
		LegalForm:           domain.LegalForm(req.LegalForm),
		FiscalClosingMonth:  req.FiscalClosingMonth,
		WithholdingSchedule: domain.PaymentSchedule(req.WithholdingSchedule),
		ResidentSchedule:    domain.PaymentSchedule(req.ResidentSchedule),
		LocationCode:        req.LocationCode,
		Address:             req.Address,
		RepresentativeName:  req.RepresentativeName,
		ContactEmail:        req.ContactEmail,
		ContactPhone:        req.ContactPhone,
	}

	result, err := h.companyService.CreateCompany(c.Request().Context(), subject, input)
	if err != nil {
		return respondServiceError(c, err, "create company")
	}

	return c.JSON(http.StatusCreated, CreateCompanyResponse{CompanyID: result.Company.ID})
}

// GetCompany godoc
// @Summary Get a company
// @Tags companies
// @Produce json
// @Security BearerAuth
// @Param companyId path string true "Company ID (UUID)"
// @Success 200 {object} CompanyResponse
// @Failure 400 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /companies/{companyId} [get]
func (h *CompanyHandler) GetCompany(c echo.Context) error {
	companyID := middleware.GetCompanyID(c)
	if companyID == uuid.Nil {
		return invalidCompanyID(c)
	}

	company, err := h.companyService.GetCompany(c.Request().Context(), companyID)
	if err != nil {
		return respondServiceError(c, err, "get company")
	}

	return c.JSON(http.StatusOK, toCompanyResponse(company))
}

func toCompanyResponse(company *domain.Company) CompanyResponse {
	return CompanyResponse{
		ID:                  company.ID,
		Name:                company.Name,
		LegalForm:           string(company.LegalForm),
		FiscalClosingMonth:  company.FiscalClosingMonth,
		WithholdingSchedule: scheduleString(company.WithholdingSchedule),
		ResidentSchedule:    scheduleString(company.ResidentSchedule),
		LocationCode:        company.LocationCode,
		Address:             company.Address,
		RepresentativeName:  company.RepresentativeName,
		ContactEmail:        company.ContactEmail,
		ContactPhone:        company.ContactPhone,
		CreatedAt:           company.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           company.UpdatedAt.Format(time.RFC3339),
	}
}

func scheduleString(s *domain.PaymentSchedule) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}
