package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/keiri-hq/keiri-backend/internal/domain"
)

// MembershipRepository implements domain.MembershipRepository using PostgreSQL
type MembershipRepository struct {
	db DBTX
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(db DBTX) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Create inserts a membership
func (r *MembershipRepository) Create(ctx context.Context, membership *domain.Membership) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO memberships (subject, company_id, role)
		VALUES ($1, $2, $3)`,
		membership.Subject, membership.CompanyID, string(membership.Role),
	)
	if err != nil {
		if isPgUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Exists reports whether subject is a member of the company
func (r *MembershipRepository) Exists(ctx context.Context, subject string, companyID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM memberships WHERE subject = $1 AND company_id = $2)`,
		subject, companyID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
