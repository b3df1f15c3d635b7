package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LegalForm is the legal entity type of a company
type LegalForm string

const (
	LegalFormCorporation LegalForm = "corporation"
	LegalFormSole        LegalForm = "sole"
)

// IsValid reports whether the legal form is a known value
func (f LegalForm) IsValid() bool {
	return f == LegalFormCorporation || f == LegalFormSole
}

// PaymentSchedule is the remittance election for withholding and resident tax
type PaymentSchedule string

const (
	PaymentScheduleMonthly PaymentSchedule = "monthly"
	// PaymentScheduleSpecial is the semi-annual "納期の特例" election
	PaymentScheduleSpecial PaymentSchedule = "special"
)

// IsValid reports whether the schedule is a known value
func (s PaymentSchedule) IsValid() bool {
	return s == PaymentScheduleMonthly || s == PaymentScheduleSpecial
}

// Company is a tenant company whose compliance calendar is managed
type Company struct {
	ID                  uuid.UUID        `json:"id"`
	Name                string           `json:"name"`
	LegalForm           LegalForm        `json:"legalForm"`
	FiscalClosingMonth  *int32           `json:"fiscalClosingMonth,omitempty"`
	WithholdingSchedule *PaymentSchedule `json:"withholdingIncomeTaxPaymentSchedule,omitempty"`
	ResidentSchedule    *PaymentSchedule `json:"residentTaxPaymentSchedule,omitempty"`
	LocationCode        *string          `json:"locationCode,omitempty"`
	Address             *string          `json:"address,omitempty"`
	RepresentativeName  *string          `json:"representativeName,omitempty"`
	ContactEmail        *string          `json:"contactEmail,omitempty"`
	ContactPhone        *string          `json:"contactPhone,omitempty"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

// CompanyRepository defines the interface for company persistence operations
type CompanyRepository interface {
	Create(ctx context.Context, company *Company) (*Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Company, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
}

// MembershipRole is a user's role inside a company
type MembershipRole string

const (
	MembershipRoleOwner  MembershipRole = "owner"
	MembershipRoleMember MembershipRole = "member"
)

// Membership links an authenticated subject to a company
type Membership struct {
	Subject   string         `json:"subject"`
	CompanyID uuid.UUID      `json:"companyId"`
	Role      MembershipRole `json:"role"`
	CreatedAt time.Time      `json:"createdAt"`
}

// MembershipRepository defines the interface for membership persistence operations
type MembershipRepository interface {
	Create(ctx context.Context, membership *Membership) error
	Exists(ctx context.Context, subject string, companyID uuid.UUID) (bool, error)
}

// Validation constants
const (
	MaxCompanyNameLength = 255
)
