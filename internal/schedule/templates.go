package schedule

import (
	"fmt"
	"time"

	"github.com/keiri-hq/keiri-backend/internal/domain"
	"github.com/keiri-hq/keiri-backend/internal/util"
)

// Template keys
const (
	KeyWithholdingMonthly    = "tax_withholding_monthly"
	KeyWithholdingSpecialJul = "tax_withholding_special_jul"
	KeyWithholdingSpecialJan = "tax_withholding_special_jan"
	KeyResidentMonthly       = "tax_resident_monthly"
	KeyResidentSpecialJun    = "tax_resident_special_jun"
	KeyResidentSpecialDec    = "tax_resident_special_dec"
	KeyFilingCorporate       = "tax_filing_corporate"
	KeyAnnualStatementsJan31 = "annual_statements_jan31"
)

// Phase 1 statutory calendar:
//   - withholding tax: monthly (10th of next month) or special election (Jul 10 / Jan 20)
//   - resident tax special collection: monthly (10th of next month) or special (Jun 10 / Dec 10)
//   - Jan 31 batch: statutory statements, salary payment reports, depreciable assets
//   - corporate/local tax filing: end of the month two months after fiscal year end
var templates = []domain.TaskTemplate{
	{
		Key:         KeyWithholdingMonthly,
		Version:     1,
		Category:    domain.TaskCategoryTax,
		Title:       staticTitle("源泉所得税・復興特別所得税（毎月納付）"),
		Applies:     withholdingIs(domain.PaymentScheduleMonthly),
		Occurrences: nextMonthTenth,
	},
	{
		Key:         KeyWithholdingSpecialJul,
		Version:     1,
		Category:    domain.TaskCategoryTax,
		Title:       staticTitle("源泉所得税・復興特別所得税（納期の特例：1〜6月分）"),
		Applies:     withholdingIs(domain.PaymentScheduleSpecial),
		Occurrences: yearlyOn(time.July, 10, map[string]any{"range": "1-6"}),
	},
	{
		Key:         KeyWithholdingSpecialJan,
		Version:     1,
		Category:    domain.TaskCategoryTax,
		Title:       staticTitle("源泉所得税・復興特別所得税（納期の特例：7〜12月分）"),
		Applies:     withholdingIs(domain.PaymentScheduleSpecial),
		Occurrences: yearlyOn(time.January, 20, map[string]any{"range": "7-12(prev)"}),
	},
	{
		Key:         KeyResidentMonthly,
		Version:     1,
		Category:    domain.TaskCategoryTax,
		Title:       staticTitle("住民税（特別徴収）納入（毎月）"),
		Applies:     residentIs(domain.PaymentScheduleMonthly),
		Occurrences: nextMonthTenth,
	},
	{
		Key:         KeyResidentSpecialJun,
		Version:     1,
		Category:    domain.TaskCategoryTax,
		Title:       staticTitle("住民税（特別徴収）納入（納期の特例：12〜5月分）"),
		Applies:     residentIs(domain.PaymentScheduleSpecial),
		Occurrences: yearlyOn(time.June, 10, map[string]any{"range": "12-5"}),
	},
	{
		Key:         KeyResidentSpecialDec,
		Version:     1,
		Category:    domain.TaskCategoryTax,
		Title:       staticTitle("住民税（特別徴収）納入（納期の特例：6〜11月分）"),
		Applies:     residentIs(domain.PaymentScheduleSpecial),
		Occurrences: yearlyOn(time.December, 10, map[string]any{"range": "6-11"}),
	},
	{
		Key:      KeyFilingCorporate,
		Version:  1,
		Category: domain.TaskCategoryTax,
		Title:    staticTitle("法人税・地方税（確定申告・納付）"),
		Applies: func(p domain.CompanyProfile) bool {
			return p.LegalForm == domain.LegalFormCorporation
		},
		Occurrences: corporateFiling,
	},
	{
		Key:         KeyAnnualStatementsJan31,
		Version:     1,
		Category:    domain.TaskCategoryTax,
		Title:       staticTitle("法定調書・給与支払報告書・償却資産申告（提出期限）"),
		Applies:     func(domain.CompanyProfile) bool { return true },
		Occurrences: yearlyOn(time.January, 31, nil),
	},
}

// Templates returns the statutory template set in a stable order.
// The returned slice is a copy.
func Templates() []domain.TaskTemplate {
	out := make([]domain.TaskTemplate, len(templates))
	copy(out, templates)
	return out
}

// TemplateByKey looks up a template by its key
func TemplateByKey(key string) (domain.TaskTemplate, bool) {
	for _, t := range templates {
		if t.Key == key {
			return t, true
		}
	}
	return domain.TaskTemplate{}, false
}

func staticTitle(title string) func(domain.CompanyProfile) string {
	return func(domain.CompanyProfile) string { return title }
}

func withholdingIs(s domain.PaymentSchedule) func(domain.CompanyProfile) bool {
	return func(p domain.CompanyProfile) bool { return p.WithholdingSchedule == s }
}

func residentIs(s domain.PaymentSchedule) func(domain.CompanyProfile) bool {
	return func(p domain.CompanyProfile) bool { return p.ResidentSchedule == s }
}

// nextMonthTenth yields the 10th of the month after each month in the window.
// The due date, not the period month, must lie inside the window.
func nextMonthTenth(_ domain.CompanyProfile, w domain.GenerateWindow) []domain.TaskOccurrence {
	var res []domain.TaskOccurrence
	for _, period := range util.MonthStarts(w.From, w.To) {
		next := util.AddMonths(period, 1)
		due := util.ShiftWeekendToNextWeekday(util.Date(next.Year(), int(next.Month()), 10))
		if !w.Contains(due) {
			continue
		}
		res = append(res, domain.TaskOccurrence{
			DueDate: due,
			Meta:    map[string]any{"period": fmt.Sprintf("%d-%d", period.Year(), int(period.Month()))},
		})
	}
	return res
}

// yearlyOn yields month/day of every touched year, weekend-shifted
func yearlyOn(month time.Month, day int, meta map[string]any) func(domain.CompanyProfile, domain.GenerateWindow) []domain.TaskOccurrence {
	return func(_ domain.CompanyProfile, w domain.GenerateWindow) []domain.TaskOccurrence {
		var res []domain.TaskOccurrence
		for _, y := range touchedYears(w) {
			due := util.ShiftWeekendToNextWeekday(util.Date(y, int(month), day))
			if !w.Contains(due) {
				continue
			}
			res = append(res, domain.TaskOccurrence{DueDate: due, Meta: copyMeta(meta)})
		}
		return res
	}
}

func corporateFiling(p domain.CompanyProfile, w domain.GenerateWindow) []domain.TaskOccurrence {
	var res []domain.TaskOccurrence
	for _, y := range touchedYears(w) {
		fyEnd := FiscalYearEnd(p, y)
		due := FilingDue(fyEnd)
		if !w.Contains(due) {
			continue
		}
		res = append(res, domain.TaskOccurrence{
			DueDate: due,
			Meta:    map[string]any{"fiscalYearEnd": util.FormatYMD(fyEnd)},
		})
	}
	return res
}

// FiscalYearEnd is the last day of the profile's closing month in year
func FiscalYearEnd(p domain.CompanyProfile, year int) time.Time {
	return util.Date(year, p.FiscalClosingMonth+1, 0)
}

// FilingDue is the end of the month two months after fiscal year end, weekend-shifted
func FilingDue(fiscalYearEnd time.Time) time.Time {
	return util.ShiftWeekendToNextWeekday(util.EndOfMonth(util.AddMonths(fiscalYearEnd, 2)))
}

// touchedYears returns the distinct years of every month start in the window, ascending.
// A year may be touched while its due date falls outside the window; callers filter.
func touchedYears(w domain.GenerateWindow) []int {
	var years []int
	for _, m := range util.MonthStarts(w.From, w.To) {
		if n := len(years); n == 0 || years[n-1] != m.Year() {
			years = append(years, m.Year())
		}
	}
	return years
}

func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		out[k] = v
	}
	return out
}
