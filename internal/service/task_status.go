package service

import (
	"time"

	"github.com/keiri-hq/keiri-backend/internal/domain"
	"github.com/keiri-hq/keiri-backend/internal/util"
)

// ComputeTaskStatus returns the display status of a task: done stays done, an open task
// whose due date is before today (UTC) is overdue, anything else is pending
func ComputeTaskStatus(stored domain.TaskStatus, dueDate time.Time, now time.Time) domain.TaskStatus {
	if stored == domain.TaskStatusDone {
		return domain.TaskStatusDone
	}
	if dueDate.Before(util.StartOfDay(now)) {
		return domain.TaskStatusOverdue
	}
	return domain.TaskStatusPending
}
