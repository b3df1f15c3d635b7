package schedule

import (
	"sort"
	"time"

	"github.com/keiri-hq/keiri-backend/internal/domain"
	"github.com/keiri-hq/keiri-backend/internal/util"
)

// ComputeWindow returns the generation window for now and a horizon in months:
// the first day of the current month through the last day of the month
// horizonMonths later. Negative horizons are treated as zero.
func ComputeWindow(now time.Time, horizonMonths int) domain.GenerateWindow {
	if horizonMonths < 0 {
		horizonMonths = 0
	}
	from := util.StartOfMonth(now)
	return domain.GenerateWindow{
		From: from,
		To:   util.EndOfMonth(util.AddMonths(from, horizonMonths)),
	}
}

// Candidate is one template occurrence resolved against a profile
type Candidate struct {
	TemplateKey     string
	TemplateVersion int32
	Category        domain.TaskCategory
	Title           string
	DueDate         time.Time
	Meta            map[string]any
}

// Candidates runs every applicable template over the window, in template order
func Candidates(p domain.CompanyProfile, w domain.GenerateWindow) []Candidate {
	var out []Candidate
	for _, tpl := range templates {
		if !tpl.Applies(p) {
			continue
		}
		title := tpl.Title(p)
		for _, occ := range tpl.Occurrences(p, w) {
			out = append(out, Candidate{
				TemplateKey:     tpl.Key,
				TemplateVersion: tpl.Version,
				Category:        tpl.Category,
				Title:           title,
				DueDate:         occ.DueDate,
				Meta:            occ.Meta,
			})
		}
	}
	return out
}

// SortByDueDate orders candidates by due date, keeping template order for ties
func SortByDueDate(cs []Candidate) {
	sort.SliceStable(cs, func(i, j int) bool {
		return cs[i].DueDate.Before(cs[j].DueDate)
	})
}
