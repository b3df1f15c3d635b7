package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/keiri-hq/keiri-backend/internal/domain"
	"github.com/keiri-hq/keiri-backend/internal/schedule"
	"github.com/keiri-hq/keiri-backend/internal/util"
	"github.com/keiri-hq/keiri-backend/internal/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultRefreshHorizonMonths is the horizon used by on-demand and background refreshes
	DefaultRefreshHorizonMonths = 3
	// MaxPreviewHorizonMonths bounds the horizon accepted by PreviewSchedule
	MaxPreviewHorizonMonths = 60
	// UpcomingWindowDays is how far ahead the home summary looks
	UpcomingWindowDays = 14
	// UpcomingTaskLimit caps the tasks listed in the home summary
	UpcomingTaskLimit = 5
)

// RefreshTimeout bounds one shared refresh run
const RefreshTimeout = 30 * time.Second

// Home summary alert messages
const (
	alertOverdueFormat  = "期限切れのタスクが %d 件あります"
	alertUpcomingFormat = "期限が近いタスクが %d 件あります"
	alertNoUpcoming     = "期限が近いタスクはありません"
)

// ScheduleService handles refreshing and reading a company's task schedule
type ScheduleService struct {
	txManager      domain.TxManager
	companyRepo    domain.CompanyRepository
	taskRepo       domain.TaskRepository
	generator      *ScheduleGenerator
	horizonMonths  int
	refreshGroup   singleflight.Group
	eventPublisher websocket.EventPublisher
	logger         zerolog.Logger
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(
	txManager domain.TxManager,
	companyRepo domain.CompanyRepository,
	taskRepo domain.TaskRepository,
	generator *ScheduleGenerator,
	horizonMonths int,
	logger zerolog.Logger,
) *ScheduleService {
	if horizonMonths < 0 {
		horizonMonths = DefaultRefreshHorizonMonths
	}
	return &ScheduleService{
		txManager:     txManager,
		companyRepo:   companyRepo,
		taskRepo:      taskRepo,
		generator:     generator,
		horizonMonths: horizonMonths,
		logger:        logger.With().Str("component", "schedule_service").Logger(),
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *ScheduleService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// publishEvent publishes a WebSocket event if a publisher is configured
func (s *ScheduleService) publishEvent(companyID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(companyID, event)
	}
}

// HorizonMonths returns the refresh horizon
func (s *ScheduleService) HorizonMonths() int {
	return s.horizonMonths
}

// RefreshSchedule generates any missing tasks for the refresh horizon in its own transaction.
// Concurrent refreshes of the same company share one run. The run is detached from the
// caller's cancellation, so a caller that goes away does not fail the others; each caller
// still stops waiting when its own ctx is done.
func (s *ScheduleService) RefreshSchedule(ctx context.Context, companyID uuid.UUID) (*GenerateResult, error) {
	runCtx := context.WithoutCancel(ctx)
	ch := s.refreshGroup.DoChan(companyID.String(), func() (interface{}, error) {
		timeoutCtx, cancel := context.WithTimeout(runCtx, RefreshTimeout)
		defer cancel()
		return s.refresh(timeoutCtx, companyID)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			s.logger.Debug().Str("company_id", companyID.String()).Msg("Joined in-flight schedule refresh")
		}
		return res.Val.(*GenerateResult), nil
	}
}

func (s *ScheduleService) refresh(ctx context.Context, companyID uuid.UUID) (*GenerateResult, error) {
	var result *GenerateResult
	err := s.txManager.WithinTx(ctx, func(tx domain.Tx) error {
		var err error
		result, err = s.generator.GenerateTasksForCompany(ctx, tx, companyID, GenerateOptions{HorizonMonths: s.horizonMonths})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("company_id", companyID.String()).
		Int("candidates", result.Candidates).
		Int64("inserted", result.Inserted).
		Msg("Schedule refreshed")

	s.publishEvent(companyID, websocket.ScheduleSynced(result))
	return result, nil
}

// ScheduleItem is a task with its display status applied
type ScheduleItem struct {
	ID              uuid.UUID           `json:"id"`
	Category        domain.TaskCategory `json:"category"`
	Title           string              `json:"title"`
	DueDate         string              `json:"dueDate"`
	Status          domain.TaskStatus   `json:"status"`
	TemplateKey     *string             `json:"templateKey,omitempty"`
	TemplateVersion *int32              `json:"templateVersion,omitempty"`
	Meta            map[string]any      `json:"meta,omitempty"`
}

// ListSchedule returns the company's open tasks ordered by due date, with display status
func (s *ScheduleService) ListSchedule(ctx context.Context, companyID uuid.UUID) ([]ScheduleItem, error) {
	if _, err := s.companyRepo.GetByID(ctx, companyID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListOpenByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	now := s.generator.Now()
	items := make([]ScheduleItem, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, ScheduleItem{
			ID:              t.ID,
			Category:        t.Category,
			Title:           t.Title,
			DueDate:         util.FormatYMD(t.DueDate),
			Status:          ComputeTaskStatus(t.Status, t.DueDate, now),
			TemplateKey:     t.TemplateKey,
			TemplateVersion: t.TemplateVersion,
			Meta:            t.Meta,
		})
	}
	return items, nil
}

// Alert is a home screen notice
type Alert struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// UpcomingTask is a task due soon, as shown on the home screen
type UpcomingTask struct {
	TaskID  uuid.UUID         `json:"taskId"`
	Title   string            `json:"title"`
	DueDate string            `json:"dueDate"`
	Status  domain.TaskStatus `json:"status"`
}

// HomeSummary is the home screen digest of a company's schedule
type HomeSummary struct {
	OverdueCount  int            `json:"overdueCount"`
	UpcomingCount int            `json:"upcomingCount"`
	UpcomingTasks []UpcomingTask `json:"upcomingTasks"`
	Alerts        []Alert        `json:"alerts"`
}

// GetHomeSummary counts overdue tasks and lists tasks due within the next two weeks
func (s *ScheduleService) GetHomeSummary(ctx context.Context, companyID uuid.UUID) (*HomeSummary, error) {
	if _, err := s.companyRepo.GetByID(ctx, companyID); err != nil {
		return nil, err
	}

	now := s.generator.Now()
	today := util.StartOfDay(now)
	soon := today.AddDate(0, 0, UpcomingWindowDays)

	overdue, err := s.taskRepo.CountOpenDueBefore(ctx, companyID, today)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.taskRepo.ListOpenDueBetween(ctx, companyID, today, soon, UpcomingTaskLimit)
	if err != nil {
		return nil, err
	}

	upcomingCount, err := s.taskRepo.CountOpenDueBetween(ctx, companyID, today, soon)
	if err != nil {
		return nil, err
	}

	summary := &HomeSummary{
		OverdueCount:  overdue,
		UpcomingCount: upcomingCount,
		UpcomingTasks: make([]UpcomingTask, 0, len(upcoming)),
		Alerts:        buildAlerts(overdue, upcomingCount),
	}
	for _, t := range upcoming {
		summary.UpcomingTasks = append(summary.UpcomingTasks, UpcomingTask{
			TaskID:  t.ID,
			Title:   t.Title,
			DueDate: util.FormatYMD(t.DueDate),
			Status:  ComputeTaskStatus(t.Status, t.DueDate, now),
		})
	}
	return summary, nil
}

func buildAlerts(overdue, upcoming int) []Alert {
	var alerts []Alert
	if overdue > 0 {
		alerts = append(alerts, Alert{Type: "warning", Message: fmt.Sprintf(alertOverdueFormat, overdue)})
	}
	if upcoming > 0 {
		alerts = append(alerts, Alert{Type: "warning", Message: fmt.Sprintf(alertUpcomingFormat, upcoming)})
	}
	if len(alerts) == 0 {
		alerts = append(alerts, Alert{Type: "warning", Message: alertNoUpcoming})
	}
	return alerts
}

// PreviewItem is an occurrence the generator would create
type PreviewItem struct {
	TemplateKey     string              `json:"templateKey"`
	TemplateVersion int32               `json:"templateVersion"`
	Category        domain.TaskCategory `json:"category"`
	Title           string              `json:"title"`
	DueDate         string              `json:"dueDate"`
	Meta            map[string]any      `json:"meta,omitempty"`
}

// SchedulePreview is the dry-run output of the generator for an unsaved company record
type SchedulePreview struct {
	From    string        `json:"from"`
	To      string        `json:"to"`
	Profile ProfileView   `json:"profile"`
	Items   []PreviewItem `json:"items"`
}

// ProfileView is the normalized profile used for a preview
type ProfileView struct {
	LegalForm           domain.LegalForm       `json:"legalForm"`
	FiscalClosingMonth  int                    `json:"fiscalClosingMonth"`
	WithholdingSchedule domain.PaymentSchedule `json:"withholdingIncomeTaxPaymentSchedule"`
	ResidentSchedule    domain.PaymentSchedule `json:"residentTaxPaymentSchedule"`
	LocationCode        *string                `json:"locationCode,omitempty"`
}

// PreviewSchedule returns the tasks a company described by record would receive over
// horizonMonths, sorted by due date. Nothing is persisted.
func (s *ScheduleService) PreviewSchedule(record map[string]any, horizonMonths int) (*SchedulePreview, error) {
	if horizonMonths < 0 || horizonMonths > MaxPreviewHorizonMonths {
		return nil, domain.ErrInvalidHorizon
	}

	now := s.generator.Now()
	profile := schedule.ProfileFromRecord(uuid.Nil, record)
	window := schedule.ComputeWindow(now, horizonMonths)
	candidates := schedule.Candidates(profile, window)
	schedule.SortByDueDate(candidates)

	preview := &SchedulePreview{
		From: util.FormatYMD(window.From),
		To:   util.FormatYMD(window.To),
		Profile: ProfileView{
			LegalForm:           profile.LegalForm,
			FiscalClosingMonth:  profile.FiscalClosingMonth,
			WithholdingSchedule: profile.WithholdingSchedule,
			ResidentSchedule:    profile.ResidentSchedule,
			LocationCode:        profile.LocationCode,
		},
		Items: make([]PreviewItem, 0, len(candidates)),
	}
	for _, c := range candidates {
		preview.Items = append(preview.Items, PreviewItem{
			TemplateKey:     c.TemplateKey,
			TemplateVersion: c.TemplateVersion,
			Category:        c.Category,
			Title:           c.Title,
			DueDate:         util.FormatYMD(c.DueDate),
			Meta:            c.Meta,
		})
	}
	return preview, nil
}
