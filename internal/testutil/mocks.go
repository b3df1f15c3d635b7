package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/keiri-hq/keiri-backend/internal/domain"
	"github.com/keiri-hq/keiri-backend/internal/websocket"
)

// MockCompanyRepository is a mock implementation of domain.CompanyRepository
type MockCompanyRepository struct {
	Companies map[uuid.UUID]*domain.Company
	CreateFn  func(company *domain.Company) (*domain.Company, error)
	GetByIDFn func(id uuid.UUID) (*domain.Company, error)
	ListIDsFn func() ([]uuid.UUID, error)
	mu        sync.Mutex
}

// NewMockCompanyRepository creates a new MockCompanyRepository
func NewMockCompanyRepository() *MockCompanyRepository {
	return &MockCompanyRepository{
		Companies: make(map[uuid.UUID]*domain.Company),
	}
}

// Create stores a company, assigning an ID when none is set
func (m *MockCompanyRepository) Create(ctx context.Context, company *domain.Company) (*domain.Company, error) {
	if m.CreateFn != nil {
		return m.CreateFn(company)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}
	now := time.Now().UTC()
	company.CreatedAt = now
	company.UpdatedAt = now
	m.Companies[company.ID] = company
	return company, nil
}

// GetByID retrieves a company by ID
func (m *MockCompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.Companies[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCompanyNotFound
}

// ListIDs returns every company ID
func (m *MockCompanyRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	if m.ListIDsFn != nil {
		return m.ListIDsFn()
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]uuid.UUID, 0, len(m.Companies))
	for id := range m.Companies {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

// AddCompany adds a company to the mock repository (helper for tests)
func (m *MockCompanyRepository) AddCompany(company *domain.Company) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Companies[company.ID] = company
}

func (m *MockCompanyRepository) snapshot() map[uuid.UUID]*domain.Company {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[uuid.UUID]*domain.Company, len(m.Companies))
	for k, v := range m.Companies {
		out[k] = v
	}
	return out
}

func (m *MockCompanyRepository) restore(s map[uuid.UUID]*domain.Company) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Companies = s
}

// MockMembershipRepository is a mock implementation of domain.MembershipRepository
type MockMembershipRepository struct {
	Memberships map[string]*domain.Membership
	CreateFn    func(membership *domain.Membership) error
	ExistsFn    func(subject string, companyID uuid.UUID) (bool, error)
	mu          sync.Mutex
}

// NewMockMembershipRepository creates a new MockMembershipRepository
func NewMockMembershipRepository() *MockMembershipRepository {
	return &MockMembershipRepository{
		Memberships: make(map[string]*domain.Membership),
	}
}

func membershipKey(subject string, companyID uuid.UUID) string {
	return subject + "|" + companyID.String()
}

// Create stores a membership
func (m *MockMembershipRepository) Create(ctx context.Context, membership *domain.Membership) error {
	if m.CreateFn != nil {
		return m.CreateFn(membership)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := membershipKey(membership.Subject, membership.CompanyID)
	if _, ok := m.Memberships[key]; ok {
		return domain.ErrAlreadyExists
	}
	membership.CreatedAt = time.Now().UTC()
	m.Memberships[key] = membership
	return nil
}

// Exists reports whether subject is a member of the company
func (m *MockMembershipRepository) Exists(ctx context.Context, subject string, companyID uuid.UUID) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(subject, companyID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.Memberships[membershipKey(subject, companyID)]
	return ok, nil
}

// AddMembership adds a membership to the mock repository (helper for tests)
func (m *MockMembershipRepository) AddMembership(subject string, companyID uuid.UUID, role domain.MembershipRole) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Memberships[membershipKey(subject, companyID)] = &domain.Membership{
		Subject:   subject,
		CompanyID: companyID,
		Role:      role,
	}
}

func (m *MockMembershipRepository) snapshot() map[string]*domain.Membership {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]*domain.Membership, len(m.Memberships))
	for k, v := range m.Memberships {
		out[k] = v
	}
	return out
}

func (m *MockMembershipRepository) restore(s map[string]*domain.Membership) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Memberships = s
}

// MockTaskRepository is a mock implementation of domain.TaskRepository.
// It enforces uniqueness on (company, title, due date) like the tasks table.
type MockTaskRepository struct {
	Tasks           []*domain.Task
	CreateManyFn    func(tasks []*domain.Task) (int64, error)
	CreateManyCalls int
	mu              sync.Mutex
}

// NewMockTaskRepository creates a new MockTaskRepository
func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{
		Tasks: make([]*domain.Task, 0),
	}
}

func taskKey(companyID uuid.UUID, title string, dueDate time.Time) string {
	return companyID.String() + "|" + title + "|" + dueDate.UTC().Format("2006-01-02")
}

// CreateManySkipDuplicates inserts tasks, skipping rows that collide on the unique triple
func (m *MockTaskRepository) CreateManySkipDuplicates(ctx context.Context, tasks []*domain.Task) (int64, error) {
	m.mu.Lock()
	m.CreateManyCalls++
	m.mu.Unlock()

	if m.CreateManyFn != nil {
		return m.CreateManyFn(tasks)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing := make(map[string]bool, len(m.Tasks))
	for _, t := range m.Tasks {
		existing[taskKey(t.CompanyID, t.Title, t.DueDate)] = true
	}

	var inserted int64
	for _, t := range tasks {
		key := taskKey(t.CompanyID, t.Title, t.DueDate)
		if existing[key] {
			continue
		}
		existing[key] = true
		if t.ID == uuid.Nil {
			t.ID = uuid.New()
		}
		t.CreatedAt = time.Now().UTC()
		m.Tasks = append(m.Tasks, t)
		inserted++
	}
	return inserted, nil
}

// ListOpenByCompany returns non-done, non-archived tasks ordered by due date then creation
func (m *MockTaskRepository) ListOpenByCompany(ctx context.Context, companyID uuid.UUID) ([]*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*domain.Task
	for _, t := range m.Tasks {
		if t.CompanyID == companyID && t.Status != domain.TaskStatusDone && t.ArchivedAt == nil {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// CountOpenDueBefore counts non-done tasks due strictly before the given date
func (m *MockTaskRepository) CountOpenDueBefore(ctx context.Context, companyID uuid.UUID, before time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, t := range m.Tasks {
		if t.CompanyID == companyID && t.Status != domain.TaskStatusDone && t.DueDate.Before(before) {
			count++
		}
	}
	return count, nil
}

// ListOpenDueBetween returns up to limit non-done tasks due in [from, to], soonest first
func (m *MockTaskRepository) ListOpenDueBetween(ctx context.Context, companyID uuid.UUID, from, to time.Time, limit int) ([]*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := m.openBetween(companyID, from, to)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CountOpenDueBetween counts non-done tasks due in [from, to]
func (m *MockTaskRepository) CountOpenDueBetween(ctx context.Context, companyID uuid.UUID, from, to time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.openBetween(companyID, from, to)), nil
}

func (m *MockTaskRepository) openBetween(companyID uuid.UUID, from, to time.Time) []*domain.Task {
	var out []*domain.Task
	for _, t := range m.Tasks {
		if t.CompanyID != companyID || t.Status == domain.TaskStatusDone {
			continue
		}
		if t.DueDate.Before(from) || t.DueDate.After(to) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// AddTask adds a task to the mock repository (helper for tests)
func (m *MockTaskRepository) AddTask(task *domain.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	m.Tasks = append(m.Tasks, task)
}

// TasksFor returns every stored task of a company (helper for tests)
func (m *MockTaskRepository) TasksFor(companyID uuid.UUID) []*domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Task
	for _, t := range m.Tasks {
		if t.CompanyID == companyID {
			out = append(out, t)
		}
	}
	return out
}

func (m *MockTaskRepository) snapshot() []*domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Task, len(m.Tasks))
	copy(out, m.Tasks)
	return out
}

func (m *MockTaskRepository) restore(s []*domain.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Tasks = s
}

// MockTx is a domain.Tx backed by the mock repositories
type MockTx struct {
	CompanyRepo    *MockCompanyRepository
	MembershipRepo *MockMembershipRepository
	TaskRepo       *MockTaskRepository
}

// NewMockTx creates a MockTx with empty repositories
func NewMockTx() *MockTx {
	return &MockTx{
		CompanyRepo:    NewMockCompanyRepository(),
		MembershipRepo: NewMockMembershipRepository(),
		TaskRepo:       NewMockTaskRepository(),
	}
}

// Companies returns the company repository
func (t *MockTx) Companies() domain.CompanyRepository { return t.CompanyRepo }

// Memberships returns the membership repository
func (t *MockTx) Memberships() domain.MembershipRepository { return t.MembershipRepo }

// Tasks returns the task repository
func (t *MockTx) Tasks() domain.TaskRepository { return t.TaskRepo }

// MockTxManager is a mock implementation of domain.TxManager.
// Transactions are serialized; a failing fn restores every repository to its prior state.
type MockTxManager struct {
	Tx         *MockTx
	BeginErr   error
	Commits    int
	Rollbacks  int
	mu         sync.Mutex
	countersMu sync.Mutex
}

// NewMockTxManager creates a MockTxManager over tx
func NewMockTxManager(tx *MockTx) *MockTxManager {
	return &MockTxManager{Tx: tx}
}

// WithinTx runs fn, committing on success and rolling back on error or a cancelled ctx
func (m *MockTxManager) WithinTx(ctx context.Context, fn func(tx domain.Tx) error) error {
	if m.BeginErr != nil {
		return m.BeginErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	companies := m.Tx.CompanyRepo.snapshot()
	memberships := m.Tx.MembershipRepo.snapshot()
	tasks := m.Tx.TaskRepo.snapshot()

	err := fn(m.Tx)
	if err == nil {
		// A cancelled context fails the commit, as it does with pgx
		err = ctx.Err()
	}
	if err != nil {
		m.Tx.CompanyRepo.restore(companies)
		m.Tx.MembershipRepo.restore(memberships)
		m.Tx.TaskRepo.restore(tasks)
		m.countersMu.Lock()
		m.Rollbacks++
		m.countersMu.Unlock()
		return err
	}

	m.countersMu.Lock()
	m.Commits++
	m.countersMu.Unlock()
	return nil
}

// CommitCount returns the number of committed transactions
func (m *MockTxManager) CommitCount() int {
	m.countersMu.Lock()
	defer m.countersMu.Unlock()
	return m.Commits
}

// RollbackCount returns the number of rolled back transactions
func (m *MockTxManager) RollbackCount() int {
	m.countersMu.Lock()
	defer m.countersMu.Unlock()
	return m.Rollbacks
}

// PublishedEvent is an event captured by MockPublisher
type PublishedEvent struct {
	CompanyID uuid.UUID
	Event     websocket.Event
}

// MockPublisher is a websocket.EventPublisher that records published events
type MockPublisher struct {
	events []PublishedEvent
	mu     sync.Mutex
}

// NewMockPublisher creates a new MockPublisher
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// Publish records the event
func (m *MockPublisher) Publish(companyID uuid.UUID, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, PublishedEvent{CompanyID: companyID, Event: event})
}

// Events returns a copy of every recorded event
func (m *MockPublisher) Events() []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PublishedEvent, len(m.events))
	copy(out, m.events)
	return out
}
