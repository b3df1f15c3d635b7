package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/keiri-hq/keiri-backend/internal/domain"
	"github.com/keiri-hq/keiri-backend/internal/websocket"
	"github.com/rs/zerolog"
)

// DefaultCreateHorizonMonths is the schedule horizon generated when a company is created
const DefaultCreateHorizonMonths = 18

// CompanyService handles company onboarding
type CompanyService struct {
	txManager      domain.TxManager
	companyRepo    domain.CompanyRepository
	generator      *ScheduleGenerator
	horizonMonths  int
	eventPublisher websocket.EventPublisher
	logger         zerolog.Logger
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(txManager domain.TxManager, companyRepo domain.CompanyRepository, generator *ScheduleGenerator, horizonMonths int, logger zerolog.Logger) *CompanyService {
	if horizonMonths < 0 {
		horizonMonths = DefaultCreateHorizonMonths
	}
	return &CompanyService{
		txManager:     txManager,
		companyRepo:   companyRepo,
		generator:     generator,
		horizonMonths: horizonMonths,
		logger:        logger.With().Str("component", "company_service").Logger(),
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *CompanyService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// publishEvent publishes a WebSocket event if a publisher is configured
func (s *CompanyService) publishEvent(companyID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(companyID, event)
	}
}

// CreateCompanyInput holds the input for creating a company
type CreateCompanyInput struct {
	Name                string
	LegalForm           domain.LegalForm
	FiscalClosingMonth  *int32
	WithholdingSchedule domain.PaymentSchedule
	ResidentSchedule    domain.PaymentSchedule
	LocationCode        *string
	Address             *string
	RepresentativeName  *string
	ContactEmail        *string
	ContactPhone        *string
}

// CreateCompanyResult is returned after a company and its initial schedule are persisted
type CreateCompanyResult struct {
	Company  *domain.Company
	Schedule *GenerateResult
}

// CreateCompany validates the input, then creates the company, the owner membership for
// subject and the initial task schedule in one transaction. Nothing is persisted on failure.
func (s *CompanyService) CreateCompany(ctx context.Context, subject string, input CreateCompanyInput) (*CreateCompanyResult, error) {
	if strings.TrimSpace(subject) == "" {
		return nil, domain.ErrUnauthorized
	}

	company, err := buildCompany(input)
	if err != nil {
		return nil, err
	}

	var result CreateCompanyResult
	err = s.txManager.WithinTx(ctx, func(tx domain.Tx) error {
		created, err := tx.Companies().Create(ctx, company)
		if err != nil {
			return fmt.Errorf("create company: %w", err)
		}

		err = tx.Memberships().Create(ctx, &domain.Membership{
			Subject:   subject,
			CompanyID: created.ID,
			Role:      domain.MembershipRoleOwner,
		})
		if err != nil {
			return fmt.Errorf("create owner membership: %w", err)
		}

		generated, err := s.generator.GenerateTasksForCompany(ctx, tx, created.ID, GenerateOptions{HorizonMonths: s.horizonMonths})
		if err != nil {
			return fmt.Errorf("generate initial schedule: %w", err)
		}

		result.Company = created
		result.Schedule = generated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("company_id", result.Company.ID.String()).
		Int("horizon_months", result.Schedule.HorizonMonths).
		Int("candidates", result.Schedule.Candidates).
		Int64("inserted", result.Schedule.Inserted).
		Msg("Company created")

	s.publishEvent(result.Company.ID, websocket.CompanyCreated(result.Company))
	s.publishEvent(result.Company.ID, websocket.ScheduleSynced(result.Schedule))

	return &result, nil
}

// GetCompany retrieves a company by ID
func (s *CompanyService) GetCompany(ctx context.Context, companyID uuid.UUID) (*domain.Company, error) {
	return s.companyRepo.GetByID(ctx, companyID)
}

// buildCompany validates the input and returns the company to persist
func buildCompany(input CreateCompanyInput) (*domain.Company, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len([]rune(name)) > domain.MaxCompanyNameLength {
		return nil, domain.ErrNameTooLong
	}

	if !input.LegalForm.IsValid() {
		return nil, domain.ErrInvalidLegalForm
	}

	var fiscalMonth int32 = 12
	if input.LegalForm == domain.LegalFormCorporation {
		if input.FiscalClosingMonth == nil {
			return nil, domain.ErrInvalidFiscalMonth
		}
		fiscalMonth = *input.FiscalClosingMonth
		if fiscalMonth < 1 || fiscalMonth > 12 {
			return nil, domain.ErrInvalidFiscalMonth
		}
	}

	withholding, err := scheduleOrDefault(input.WithholdingSchedule)
	if err != nil {
		return nil, err
	}
	resident, err := scheduleOrDefault(input.ResidentSchedule)
	if err != nil {
		return nil, err
	}

	return &domain.Company{
		Name:                name,
		LegalForm:           input.LegalForm,
		FiscalClosingMonth:  &fiscalMonth,
		WithholdingSchedule: &withholding,
		ResidentSchedule:    &resident,
		LocationCode:        trimmedOrNil(input.LocationCode),
		Address:             trimmedOrNil(input.Address),
		RepresentativeName:  trimmedOrNil(input.RepresentativeName),
		ContactEmail:        trimmedOrNil(input.ContactEmail),
		ContactPhone:        trimmedOrNil(input.ContactPhone),
	}, nil
}

func scheduleOrDefault(s domain.PaymentSchedule) (domain.PaymentSchedule, error) {
	if s == "" {
		return domain.PaymentScheduleMonthly, nil
	}
	if !s.IsValid() {
		return "", domain.ErrInvalidSchedule
	}
	return s, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
