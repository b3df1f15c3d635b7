package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/keiri-hq/keiri-backend/internal/domain"
	"github.com/rs/zerolog"
)

// ScheduleRefresher refreshes one company's schedule
type ScheduleRefresher interface {
	RefreshSchedule(ctx context.Context, companyID uuid.UUID) (*GenerateResult, error)
}

// ScheduleWorker is a background worker that periodically refreshes every company's schedule
type ScheduleWorker struct {
	refresher   ScheduleRefresher
	companyRepo domain.CompanyRepository
	logger      zerolog.Logger
	interval    time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	mu          sync.Mutex
	running     bool
}

// ScheduleWorkerConfig holds configuration for the schedule worker
type ScheduleWorkerConfig struct {
	Interval time.Duration // How often to sweep all companies
}

// DefaultScheduleWorkerConfig returns sensible defaults
func DefaultScheduleWorkerConfig() ScheduleWorkerConfig {
	return ScheduleWorkerConfig{
		Interval: 24 * time.Hour,
	}
}

// NewScheduleWorker creates a new schedule worker
func NewScheduleWorker(
	refresher ScheduleRefresher,
	companyRepo domain.CompanyRepository,
	logger zerolog.Logger,
	config ScheduleWorkerConfig,
) *ScheduleWorker {
	if config.Interval <= 0 {
		config.Interval = DefaultScheduleWorkerConfig().Interval
	}

	return &ScheduleWorker{
		refresher:   refresher,
		companyRepo: companyRepo,
		logger:      logger.With().Str("component", "schedule_worker").Logger(),
		interval:    config.Interval,
	}
}

// Start begins the background sweep. A stopped worker can be started again.
func (w *ScheduleWorker) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	stopCh, doneCh := w.stopCh, w.doneCh
	w.mu.Unlock()

	w.logger.Info().
		Dur("interval", w.interval).
		Msg("Starting schedule worker")

	go w.run(ctx, stopCh, doneCh)
}

// Stop gracefully stops the schedule worker
func (w *ScheduleWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	stopCh, doneCh := w.stopCh, w.doneCh
	w.mu.Unlock()

	w.logger.Info().Msg("Stopping schedule worker")
	close(stopCh)
	<-doneCh
	w.logger.Info().Msg("Schedule worker stopped")
}

func (w *ScheduleWorker) run(ctx context.Context, stopCh <-chan struct{}, doneCh chan struct{}) {
	defer close(doneCh)
	defer func() {
		w.mu.Lock()
		// A later Start owns the flag once it has replaced doneCh
		if w.doneCh == doneCh {
			w.running = false
		}
		w.mu.Unlock()
	}()

	// Run immediately on startup
	w.syncAll(ctx, stopCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case <-ticker.C:
			w.syncAll(ctx, stopCh)
		}
	}
}

// SweepResult summarizes one pass over all companies
type SweepResult struct {
	Companies int
	Inserted  int64
	Errors    int
}

// SyncAll refreshes every company once. A failing company is logged and skipped.
func (w *ScheduleWorker) SyncAll(ctx context.Context) SweepResult {
	return w.syncAll(ctx, nil)
}

// syncAll stops early when stopCh is closed; a nil stopCh never fires
func (w *ScheduleWorker) syncAll(ctx context.Context, stopCh <-chan struct{}) SweepResult {
	w.logger.Debug().Msg("Starting schedule sync for all companies")
	startTime := time.Now()

	var res SweepResult

	ids, err := w.companyRepo.ListIDs(ctx)
	if err != nil {
		w.logger.Error().Err(err).Msg("Failed to list companies for schedule sync")
		res.Errors++
		return res
	}

	for _, id := range ids {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Context cancelled, stopping sync")
			return res
		case <-stopCh:
			w.logger.Info().Msg("Stop signal received, stopping sync")
			return res
		default:
		}

		result, err := w.refresher.RefreshSchedule(ctx, id)
		if err != nil {
			w.logger.Error().
				Err(err).
				Str("company_id", id.String()).
				Msg("Failed to refresh schedule for company")
			res.Errors++
			continue
		}

		res.Companies++
		res.Inserted += result.Inserted

		if result.Inserted > 0 {
			w.logger.Debug().
				Str("company_id", id.String()).
				Int64("inserted", result.Inserted).
				Int("candidates", result.Candidates).
				Msg("Refreshed schedule for company")
		}
	}

	w.logger.Info().
		Int("companies", res.Companies).
		Int64("total_inserted", res.Inserted).
		Int("total_errors", res.Errors).
		Dur("elapsed", time.Since(startTime)).
		Msg("Completed schedule sync")

	return res
}

// IsRunning returns whether the worker is currently running
func (w *ScheduleWorker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
