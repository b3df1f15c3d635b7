package schedule

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/keiri-hq/keiri-backend/internal/domain"
	"github.com/keiri-hq/keiri-backend/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduleP(s domain.PaymentSchedule) *domain.PaymentSchedule {
	return &s
}

func TestProfileFromCompany_Defaults(t *testing.T) {
	id := uuid.New()
	p := ProfileFromCompany(&domain.Company{ID: id, LegalForm: domain.LegalFormCorporation})

	assert.Equal(t, id, p.ID)
	assert.Equal(t, domain.LegalFormCorporation, p.LegalForm)
	assert.Equal(t, 12, p.FiscalClosingMonth)
	assert.Equal(t, domain.PaymentScheduleMonthly, p.WithholdingSchedule)
	assert.Equal(t, domain.PaymentScheduleMonthly, p.ResidentSchedule)
	assert.Nil(t, p.LocationCode)
}

func TestProfileFromCompany_MapsFields(t *testing.T) {
	loc := "13101"
	p := ProfileFromCompany(&domain.Company{
		ID:                  uuid.New(),
		LegalForm:           domain.LegalFormCorporation,
		FiscalClosingMonth:  int32Ptr(3),
		WithholdingSchedule: scheduleP(domain.PaymentScheduleSpecial),
		ResidentSchedule:    scheduleP(domain.PaymentScheduleSpecial),
		LocationCode:        &loc,
	})

	assert.Equal(t, 3, p.FiscalClosingMonth)
	assert.Equal(t, domain.PaymentScheduleSpecial, p.WithholdingSchedule)
	assert.Equal(t, domain.PaymentScheduleSpecial, p.ResidentSchedule)
	require.NotNil(t, p.LocationCode)
	assert.Equal(t, "13101", *p.LocationCode)
}

func TestProfileFromCompany_SoleAlwaysDecember(t *testing.T) {
	for _, month := range []int32{1, 3, 9, 12} {
		p := ProfileFromCompany(&domain.Company{
			ID:                 uuid.New(),
			LegalForm:          domain.LegalFormSole,
			FiscalClosingMonth: int32Ptr(month),
		})
		assert.Equal(t, 12, p.FiscalClosingMonth, "stored month %d", month)
	}
}

func TestProfileFromCompany_OutOfRangeMonthFallsBack(t *testing.T) {
	for _, month := range []int32{0, 13, -1} {
		p := ProfileFromCompany(&domain.Company{
			ID:                 uuid.New(),
			LegalForm:          domain.LegalFormCorporation,
			FiscalClosingMonth: int32Ptr(month),
		})
		assert.Equal(t, DefaultFiscalClosingMonth, p.FiscalClosingMonth, "stored month %d", month)
	}
}

func TestProfileFromRecord_CamelCase(t *testing.T) {
	p := ProfileFromRecord(uuid.New(), map[string]any{
		"legalForm":                           "corporation",
		"fiscalClosingMonth":                  3,
		"withholdingIncomeTaxPaymentSchedule": "special",
		"residentTaxPaymentSchedule":          "monthly",
		"locationCode":                        "27100",
	})

	assert.Equal(t, domain.LegalFormCorporation, p.LegalForm)
	assert.Equal(t, 3, p.FiscalClosingMonth)
	assert.Equal(t, domain.PaymentScheduleSpecial, p.WithholdingSchedule)
	assert.Equal(t, domain.PaymentScheduleMonthly, p.ResidentSchedule)
	require.NotNil(t, p.LocationCode)
	assert.Equal(t, "27100", *p.LocationCode)
}

func TestProfileFromRecord_SnakeCaseAndLegacyNames(t *testing.T) {
	p := ProfileFromRecord(uuid.New(), map[string]any{
		"legal_form":                              "corporation",
		"fiscal_month":                            "6",
		"withholding_income_tax_payment_schedule": "special",
		"resident_tax_payment_schedule":           "special",
		"location_code":                           "01100",
	})

	assert.Equal(t, 6, p.FiscalClosingMonth)
	assert.Equal(t, domain.PaymentScheduleSpecial, p.WithholdingSchedule)
	assert.Equal(t, domain.PaymentScheduleSpecial, p.ResidentSchedule)
	require.NotNil(t, p.LocationCode)
	assert.Equal(t, "01100", *p.LocationCode)
}

func TestProfileFromRecord_PriorityOrder(t *testing.T) {
	p := ProfileFromRecord(uuid.New(), map[string]any{
		"fiscalClosingMonth":   nil, // null counts as absent
		"fiscal_closing_month": 9,
		"fiscalMonth":          4,
		"fiscal_month":         5,
	})
	assert.Equal(t, 9, p.FiscalClosingMonth)

	p = ProfileFromRecord(uuid.New(), map[string]any{
		"fiscalMonth":  4,
		"fiscal_month": 5,
	})
	assert.Equal(t, 4, p.FiscalClosingMonth)
}

func TestProfileFromRecord_EmptyRecordDefaults(t *testing.T) {
	p := ProfileFromRecord(uuid.New(), map[string]any{})

	assert.Equal(t, domain.LegalFormCorporation, p.LegalForm)
	assert.Equal(t, 12, p.FiscalClosingMonth)
	assert.Equal(t, domain.PaymentScheduleMonthly, p.WithholdingSchedule)
	assert.Equal(t, domain.PaymentScheduleMonthly, p.ResidentSchedule)
	assert.Nil(t, p.LocationCode)
}

func TestProfileFromRecord_DecodedJSON(t *testing.T) {
	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{
		"legal_form": "sole",
		"fiscal_closing_month": 3,
		"residentTaxPaymentSchedule": "special"
	}`), &record))

	p := ProfileFromRecord(uuid.New(), record)

	assert.Equal(t, domain.LegalFormSole, p.LegalForm)
	assert.Equal(t, 12, p.FiscalClosingMonth)
	assert.Equal(t, domain.PaymentScheduleMonthly, p.WithholdingSchedule)
	assert.Equal(t, domain.PaymentScheduleSpecial, p.ResidentSchedule)
}

func TestProfileFromRecord_UnknownValuesFallBack(t *testing.T) {
	p := ProfileFromRecord(uuid.New(), map[string]any{
		"legalForm":                           "partnership",
		"fiscalClosingMonth":                  3.5,
		"withholdingIncomeTaxPaymentSchedule": "quarterly",
	})

	assert.Equal(t, domain.LegalFormCorporation, p.LegalForm)
	assert.Equal(t, 12, p.FiscalClosingMonth)
	assert.Equal(t, domain.PaymentScheduleMonthly, p.WithholdingSchedule)
}

func TestComputeWindow(t *testing.T) {
	w := ComputeWindow(util.Date(2025, 3, 15), 6)
	assert.Equal(t, util.Date(2025, 3, 1), w.From)
	assert.Equal(t, util.Date(2025, 9, 30), w.To)
	assert.Equal(t, 6, w.Months())

	w = ComputeWindow(util.Date(2025, 12, 31), 18)
	assert.Equal(t, util.Date(2025, 12, 1), w.From)
	assert.Equal(t, util.Date(2027, 6, 30), w.To)
	assert.Equal(t, 18, w.Months())

	w = ComputeWindow(util.Date(2025, 2, 10), -3)
	assert.Equal(t, util.Date(2025, 2, 1), w.From)
	assert.Equal(t, util.Date(2025, 2, 28), w.To)
	assert.Equal(t, 0, w.Months())
}

func TestCandidates_EndToEndScenario(t *testing.T) {
	p := ProfileFromRecord(uuid.New(), map[string]any{
		"legalForm":                           "corporation",
		"fiscalClosingMonth":                  3,
		"withholdingIncomeTaxPaymentSchedule": "special",
		"residentTaxPaymentSchedule":          "monthly",
	})
	w := ComputeWindow(util.Date(2025, 1, 1), 6)

	byKey := make(map[string][]Candidate)
	for _, c := range Candidates(p, w) {
		assert.True(t, w.Contains(c.DueDate), "%s due %s outside window", c.TemplateKey, util.FormatYMD(c.DueDate))
		byKey[c.TemplateKey] = append(byKey[c.TemplateKey], c)
	}

	require.Len(t, byKey[KeyWithholdingSpecialJan], 1)
	assert.Equal(t, util.Date(2025, 1, 20), byKey[KeyWithholdingSpecialJan][0].DueDate)

	require.Len(t, byKey[KeyResidentMonthly], 6)
	for i, c := range byKey[KeyResidentMonthly] {
		assert.Equal(t, 2+i, int(c.DueDate.Month()))
		assert.False(t, util.IsWeekend(c.DueDate))
	}

	require.Len(t, byKey[KeyAnnualStatementsJan31], 1)
	assert.Equal(t, util.Date(2025, 1, 31), byKey[KeyAnnualStatementsJan31][0].DueDate)

	require.Len(t, byKey[KeyFilingCorporate], 1)
	assert.Equal(t, util.Date(2025, 6, 2), byKey[KeyFilingCorporate][0].DueDate)

	assert.Empty(t, byKey[KeyWithholdingMonthly])
	assert.Empty(t, byKey[KeyResidentSpecialJun])
}

func TestSortByDueDate(t *testing.T) {
	cs := []Candidate{
		{TemplateKey: "b", DueDate: util.Date(2025, 5, 1)},
		{TemplateKey: "a", DueDate: util.Date(2025, 4, 1)},
		{TemplateKey: "c", DueDate: util.Date(2025, 5, 1)},
	}
	SortByDueDate(cs)

	assert.Equal(t, "a", cs[0].TemplateKey)
	assert.Equal(t, "b", cs[1].TemplateKey)
	assert.Equal(t, "c", cs[2].TemplateKey)
}
