package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CompanyProfile is the normalized view of a company that drives template selection
type CompanyProfile struct {
	ID                  uuid.UUID
	LegalForm           LegalForm
	FiscalClosingMonth  int // 1-12, always 12 for sole proprietors
	WithholdingSchedule PaymentSchedule
	ResidentSchedule    PaymentSchedule
	LocationCode        *string // reserved for jurisdiction-specific rules
}

// GenerateWindow is a closed, month-aligned date interval
type GenerateWindow struct {
	From time.Time
	To   time.Time
}

// Contains reports whether d lies inside [From, To]
func (w GenerateWindow) Contains(d time.Time) bool {
	return !d.Before(w.From) && !d.After(w.To)
}

// Months returns how many months To lies after From
func (w GenerateWindow) Months() int {
	return (w.To.Year()-w.From.Year())*12 + int(w.To.Month()-w.From.Month())
}

// TaskOccurrence is a single due date produced by a template
type TaskOccurrence struct {
	DueDate time.Time
	Meta    map[string]any
}

// TaskTemplate is a stateless rule that yields statutory deadlines for a company
type TaskTemplate struct {
	Key         string
	Version     int32
	Category    TaskCategory
	Title       func(p CompanyProfile) string
	Applies     func(p CompanyProfile) bool
	Occurrences func(p CompanyProfile, w GenerateWindow) []TaskOccurrence
}

// Tx exposes repositories bound to a single database transaction
type Tx interface {
	Companies() CompanyRepository
	Memberships() MembershipRepository
	Tasks() TaskRepository
}

// TxManager runs fn inside a transaction, committing when fn returns nil and rolling back otherwise
type TxManager interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}
