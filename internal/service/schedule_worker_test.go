package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/keiri-hq/keiri-backend/internal/testutil"
	"github.com/keiri-hq/keiri-backend/internal/util"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRefresher counts refreshes and fails for selected companies
type recordingRefresher struct {
	mu      sync.Mutex
	calls   map[uuid.UUID]int
	failFor map[uuid.UUID]bool
}

func newRecordingRefresher() *recordingRefresher {
	return &recordingRefresher{
		calls:   make(map[uuid.UUID]int),
		failFor: make(map[uuid.UUID]bool),
	}
}

func (r *recordingRefresher) RefreshSchedule(ctx context.Context, companyID uuid.UUID) (*GenerateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[companyID]++
	if r.failFor[companyID] {
		return nil, errors.New("refresh failed")
	}
	return &GenerateResult{CompanyID: companyID, Candidates: 2, Inserted: 2}, nil
}

func (r *recordingRefresher) callCount(companyID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[companyID]
}

func setupScheduleWorker() (*ScheduleWorker, *recordingRefresher, *testutil.MockCompanyRepository) {
	refresher := newRecordingRefresher()
	companyRepo := testutil.NewMockCompanyRepository()

	worker := NewScheduleWorker(refresher, companyRepo, zerolog.Nop(), ScheduleWorkerConfig{
		Interval: 100 * time.Millisecond, // Fast interval for testing
	})
	return worker, refresher, companyRepo
}

func TestScheduleWorker_NewScheduleWorker(t *testing.T) {
	worker, _, _ := setupScheduleWorker()

	assert.NotNil(t, worker)
	assert.Equal(t, 100*time.Millisecond, worker.interval)
	assert.False(t, worker.IsRunning())
}

func TestScheduleWorker_DefaultsForInvalidConfig(t *testing.T) {
	worker := NewScheduleWorker(newRecordingRefresher(), testutil.NewMockCompanyRepository(), zerolog.Nop(), ScheduleWorkerConfig{})
	assert.Equal(t, DefaultScheduleWorkerConfig().Interval, worker.interval)
}

func TestScheduleWorker_StartStop(t *testing.T) {
	worker, _, _ := setupScheduleWorker()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker.Start(ctx)
	worker.Start(ctx) // idempotent
	time.Sleep(50 * time.Millisecond)
	assert.True(t, worker.IsRunning())

	worker.Stop()
	assert.False(t, worker.IsRunning())
}

func TestScheduleWorker_StopWithoutStart(t *testing.T) {
	worker, _, _ := setupScheduleWorker()

	assert.NotPanics(t, func() {
		worker.Stop()
	})
}

func TestScheduleWorker_ContextCancellation(t *testing.T) {
	worker, _, _ := setupScheduleWorker()

	ctx, cancel := context.WithCancel(context.Background())
	worker.Start(ctx)
	time.Sleep(50 * time.Millisecond)
	assert.True(t, worker.IsRunning())

	cancel()
	time.Sleep(50 * time.Millisecond)
	assert.False(t, worker.IsRunning())
}

func TestScheduleWorker_RunsImmediatelyOnStart(t *testing.T) {
	worker, refresher, companyRepo := setupScheduleWorker()
	company := marchCloseCompany()
	companyRepo.AddCompany(company)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker.Start(ctx)
	time.Sleep(50 * time.Millisecond)
	worker.Stop()

	assert.GreaterOrEqual(t, refresher.callCount(company.ID), 1)
}

func TestScheduleWorker_RestartAfterStop(t *testing.T) {
	worker, refresher, companyRepo := setupScheduleWorker()
	company := marchCloseCompany()
	companyRepo.AddCompany(company)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker.Start(ctx)
	time.Sleep(50 * time.Millisecond)
	worker.Stop()
	first := refresher.callCount(company.ID)
	require.GreaterOrEqual(t, first, 1)
	assert.False(t, worker.IsRunning())

	worker.Start(ctx)
	time.Sleep(50 * time.Millisecond)
	assert.True(t, worker.IsRunning())
	assert.Greater(t, refresher.callCount(company.ID), first)

	worker.Stop()
	assert.False(t, worker.IsRunning())
	assert.NotPanics(t, func() {
		worker.Stop()
	})
}

func TestScheduleWorker_SyncAllContinuesAfterFailure(t *testing.T) {
	worker, refresher, companyRepo := setupScheduleWorker()

	good1 := marchCloseCompany()
	bad := marchCloseCompany()
	good2 := marchCloseCompany()
	companyRepo.AddCompany(good1)
	companyRepo.AddCompany(bad)
	companyRepo.AddCompany(good2)
	refresher.failFor[bad.ID] = true

	res := worker.SyncAll(context.Background())

	assert.Equal(t, 2, res.Companies)
	assert.Equal(t, int64(4), res.Inserted)
	assert.Equal(t, 1, res.Errors)
	assert.Equal(t, 1, refresher.callCount(good1.ID))
	assert.Equal(t, 1, refresher.callCount(bad.ID))
	assert.Equal(t, 1, refresher.callCount(good2.ID))
}

func TestScheduleWorker_SyncAllListError(t *testing.T) {
	worker, _, companyRepo := setupScheduleWorker()
	companyRepo.ListIDsFn = func() ([]uuid.UUID, error) {
		return nil, errors.New("db down")
	}

	res := worker.SyncAll(context.Background())
	assert.Equal(t, 0, res.Companies)
	assert.Equal(t, 1, res.Errors)
}

func TestScheduleWorker_WithScheduleService(t *testing.T) {
	tx := testutil.NewMockTx()
	company := marchCloseCompany()
	tx.CompanyRepo.AddCompany(company)

	scheduleService := NewScheduleService(testutil.NewMockTxManager(tx), tx.CompanyRepo, tx.TaskRepo, fixedGenerator(util.Date(2025, 1, 1)), 3, zerolog.Nop())
	worker := NewScheduleWorker(scheduleService, tx.CompanyRepo, zerolog.Nop(), DefaultScheduleWorkerConfig())

	res := worker.SyncAll(context.Background())
	require.Equal(t, 1, res.Companies)
	assert.Equal(t, int64(5), res.Inserted)
	assert.Len(t, tx.TaskRepo.TasksFor(company.ID), 5)
}
