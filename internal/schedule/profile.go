package schedule

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/keiri-hq/keiri-backend/internal/domain"
)

// DefaultFiscalClosingMonth is used when a company has no (or an unusable) closing month
const DefaultFiscalClosingMonth = 12

// Field names accepted by ProfileFromRecord, highest priority first.
// Records exported by older clients use camelCase or snake_case interchangeably.
var (
	legalFormKeys    = []string{"legalForm", "legal_form"}
	fiscalMonthKeys  = []string{"fiscalClosingMonth", "fiscal_closing_month", "fiscalMonth", "fiscal_month"}
	withholdingKeys  = []string{"withholdingIncomeTaxPaymentSchedule", "withholding_income_tax_payment_schedule"}
	residentKeys     = []string{"residentTaxPaymentSchedule", "resident_tax_payment_schedule"}
	locationCodeKeys = []string{"locationCode", "location_code"}
)

// ProfileFromCompany maps a persisted company onto the profile used by the templates
func ProfileFromCompany(c *domain.Company) domain.CompanyProfile {
	p := domain.CompanyProfile{
		ID:                  c.ID,
		LegalForm:           c.LegalForm,
		FiscalClosingMonth:  DefaultFiscalClosingMonth,
		WithholdingSchedule: domain.PaymentScheduleMonthly,
		ResidentSchedule:    domain.PaymentScheduleMonthly,
		LocationCode:        c.LocationCode,
	}
	if c.FiscalClosingMonth != nil {
		p.FiscalClosingMonth = int(*c.FiscalClosingMonth)
	}
	if c.WithholdingSchedule != nil {
		p.WithholdingSchedule = *c.WithholdingSchedule
	}
	if c.ResidentSchedule != nil {
		p.ResidentSchedule = *c.ResidentSchedule
	}
	return normalize(p)
}

// ProfileFromRecord builds a profile from a loosely-typed company record, checking each
// known field name in priority order. Missing or null fields fall back to the defaults:
// corporation, closing month 12, monthly withholding and resident schedules.
func ProfileFromRecord(id uuid.UUID, record map[string]any) domain.CompanyProfile {
	p := domain.CompanyProfile{
		ID:                  id,
		LegalForm:           domain.LegalFormCorporation,
		FiscalClosingMonth:  DefaultFiscalClosingMonth,
		WithholdingSchedule: domain.PaymentScheduleMonthly,
		ResidentSchedule:    domain.PaymentScheduleMonthly,
	}

	if v, ok := firstString(record, legalFormKeys); ok {
		p.LegalForm = domain.LegalForm(v)
	}
	if v, ok := firstInt(record, fiscalMonthKeys); ok {
		p.FiscalClosingMonth = v
	}
	if v, ok := firstString(record, withholdingKeys); ok {
		p.WithholdingSchedule = domain.PaymentSchedule(v)
	}
	if v, ok := firstString(record, residentKeys); ok {
		p.ResidentSchedule = domain.PaymentSchedule(v)
	}
	if v, ok := firstString(record, locationCodeKeys); ok {
		p.LocationCode = &v
	}

	return normalize(p)
}

// normalize applies the rules every profile must satisfy regardless of its source
func normalize(p domain.CompanyProfile) domain.CompanyProfile {
	if !p.LegalForm.IsValid() {
		p.LegalForm = domain.LegalFormCorporation
	}
	// Sole proprietors always close in December
	if p.LegalForm == domain.LegalFormSole {
		p.FiscalClosingMonth = 12
	}
	if p.FiscalClosingMonth < 1 || p.FiscalClosingMonth > 12 {
		p.FiscalClosingMonth = DefaultFiscalClosingMonth
	}
	if !p.WithholdingSchedule.IsValid() {
		p.WithholdingSchedule = domain.PaymentScheduleMonthly
	}
	if !p.ResidentSchedule.IsValid() {
		p.ResidentSchedule = domain.PaymentScheduleMonthly
	}
	return p
}

func firstString(record map[string]any, keys []string) (string, bool) {
	for _, key := range keys {
		switch v := record[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s, true
			}
		case *string:
			if v != nil && strings.TrimSpace(*v) != "" {
				return strings.TrimSpace(*v), true
			}
		}
	}
	return "", false
}

func firstInt(record map[string]any, keys []string) (int, bool) {
	for _, key := range keys {
		switch v := record[key].(type) {
		case int:
			return v, true
		case int32:
			return int(v), true
		case int64:
			return int(v), true
		case float64:
			// JSON numbers decode as float64
			if v == math.Trunc(v) {
				return int(v), true
			}
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}
