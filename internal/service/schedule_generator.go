package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/keiri-hq/keiri-backend/internal/domain"
	"github.com/keiri-hq/keiri-backend/internal/schedule"
)

// GenerateOptions controls one generator run
type GenerateOptions struct {
	HorizonMonths int
}

// GenerateResult summarizes a generator run.
// Inserted is lower than Candidates when already-persisted tasks were skipped.
type GenerateResult struct {
	CompanyID     uuid.UUID             `json:"companyId"`
	HorizonMonths int                   `json:"horizonMonths"`
	Window        domain.GenerateWindow `json:"-"`
	Candidates    int                   `json:"candidates"`
	Inserted      int64                 `json:"inserted"`
}

// ScheduleGenerator materializes the statutory templates into task rows for a company
type ScheduleGenerator struct {
	now func() time.Time
}

// NewScheduleGenerator creates a new ScheduleGenerator using the wall clock
func NewScheduleGenerator() *ScheduleGenerator {
	return &ScheduleGenerator{now: time.Now}
}

// SetClock overrides the clock used to anchor the generation window
func (g *ScheduleGenerator) SetClock(now func() time.Time) {
	g.now = now
}

// Now returns the current time from the generator's clock
func (g *ScheduleGenerator) Now() time.Time {
	return g.now()
}

// GenerateTasksForCompany creates the company's statutory tasks due between the start of the
// current month and the end of the month HorizonMonths later. It must run inside tx; rows that
// already exist for the same company, title and due date are skipped.
func (g *ScheduleGenerator) GenerateTasksForCompany(ctx context.Context, tx domain.Tx, companyID uuid.UUID, opts GenerateOptions) (*GenerateResult, error) {
	company, err := tx.Companies().GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, err
	}

	profile := schedule.ProfileFromCompany(company)
	window := schedule.ComputeWindow(g.now(), opts.HorizonMonths)
	candidates := schedule.Candidates(profile, window)

	result := &GenerateResult{
		CompanyID:     companyID,
		HorizonMonths: window.Months(),
		Window:        window,
		Candidates:    len(candidates),
	}
	if len(candidates) == 0 {
		return result, nil
	}

	inserted, err := tx.Tasks().CreateManySkipDuplicates(ctx, buildTasks(companyID, candidates))
	if err != nil {
		return nil, fmt.Errorf("insert generated tasks: %w", err)
	}
	result.Inserted = inserted

	return result, nil
}

func buildTasks(companyID uuid.UUID, candidates []schedule.Candidate) []*domain.Task {
	tasks := make([]*domain.Task, 0, len(candidates))
	for _, c := range candidates {
		key := c.TemplateKey
		version := c.TemplateVersion
		tasks = append(tasks, &domain.Task{
			ID:              uuid.New(),
			CompanyID:       companyID,
			Category:        c.Category,
			Title:           c.Title,
			DueDate:         c.DueDate,
			Status:          domain.TaskStatusPending,
			Source:          domain.TaskSourceSystem,
			TemplateKey:     &key,
			TemplateVersion: &version,
			Meta:            c.Meta,
		})
	}
	return tasks
}
