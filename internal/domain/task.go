package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type TaskCategory string

const (
	TaskCategoryTax    TaskCategory = "tax"
	TaskCategorySocial TaskCategory = "social"
	TaskCategoryOther  TaskCategory = "other"
)

type TaskStatus string

const (
	TaskStatusPending TaskStatus = "pending"
	TaskStatusDone    TaskStatus = "done"
	// TaskStatusOverdue is a display state and is never persisted
	TaskStatusOverdue TaskStatus = "overdue"
)

// TaskSource distinguishes generator-owned rows from user-created rows
type TaskSource string

const (
	TaskSourceSystem TaskSource = "system"
	TaskSourceUser   TaskSource = "user"
)

// Task is a compliance deadline belonging to a company.
// (CompanyID, Title, DueDate) is unique.
type Task struct {
	ID              uuid.UUID      `json:"id"`
	CompanyID       uuid.UUID      `json:"companyId"`
	Category        TaskCategory   `json:"category"`
	Title           string         `json:"title"`
	DueDate         time.Time      `json:"dueDate"`
	Status          TaskStatus     `json:"status"`
	Source          TaskSource     `json:"source"`
	TemplateKey     *string        `json:"templateKey,omitempty"`
	TemplateVersion *int32         `json:"templateVersion,omitempty"`
	ArchivedAt      *time.Time     `json:"archivedAt,omitempty"`
	Meta            map[string]any `json:"meta,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
}

// TaskRepository defines the interface for task persistence operations
type TaskRepository interface {
	// CreateManySkipDuplicates inserts tasks in one statement, silently skipping rows
	// that collide on (company_id, title, due_date). Returns the number inserted.
	CreateManySkipDuplicates(ctx context.Context, tasks []*Task) (int64, error)
	// ListOpenByCompany returns non-done, non-archived tasks ordered by due date, then creation time
	ListOpenByCompany(ctx context.Context, companyID uuid.UUID) ([]*Task, error)
	// CountOpenDueBefore counts non-done tasks due strictly before the given date
	CountOpenDueBefore(ctx context.Context, companyID uuid.UUID, before time.Time) (int, error)
	// ListOpenDueBetween returns up to limit non-done tasks due in [from, to], soonest first
	ListOpenDueBetween(ctx context.Context, companyID uuid.UUID, from, to time.Time, limit int) ([]*Task, error)
	// CountOpenDueBetween counts non-done tasks due in [from, to]
	CountOpenDueBetween(ctx context.Context, companyID uuid.UUID, from, to time.Time) (int, error)
}
