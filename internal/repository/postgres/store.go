package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/keiri-hq/keiri-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// DBTX is the query surface shared by *pgxpool.Pool and pgx.Tx
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB is a DBTX that can open transactions
type DB interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store bundles the PostgreSQL repositories and implements domain.TxManager
type Store struct {
	db          DB
	companies   *CompanyRepository
	memberships *MembershipRepository
	tasks       *TaskRepository
}

// NewStore creates a new Store over a pool
func NewStore(db DB) *Store {
	return &Store{
		db:          db,
		companies:   NewCompanyRepository(db),
		memberships: NewMembershipRepository(db),
		tasks:       NewTaskRepository(db),
	}
}

// Companies returns the pool-bound company repository
func (s *Store) Companies() *CompanyRepository { return s.companies }

// Memberships returns the pool-bound membership repository
func (s *Store) Memberships() *MembershipRepository { return s.memberships }

// Tasks returns the pool-bound task repository
func (s *Store) Tasks() *TaskRepository { return s.tasks }

// WithinTx runs fn in a transaction. fn's error rolls the transaction back and is returned as is.
func (s *Store) WithinTx(ctx context.Context, fn func(tx domain.Tx) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(newTxRepos(tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Warn().Err(rbErr).Msg("Failed to roll back transaction")
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// txRepos exposes repositories bound to one pgx.Tx
type txRepos struct {
	companies   *CompanyRepository
	memberships *MembershipRepository
	tasks       *TaskRepository
}

func newTxRepos(tx DBTX) *txRepos {
	return &txRepos{
		companies:   NewCompanyRepository(tx),
		memberships: NewMembershipRepository(tx),
		tasks:       NewTaskRepository(tx),
	}
}

func (t *txRepos) Companies() domain.CompanyRepository { return t.companies }

func (t *txRepos) Memberships() domain.MembershipRepository { return t.memberships }

func (t *txRepos) Tasks() domain.TaskRepository { return t.tasks }

// isPgUniqueViolation checks if an error is a PostgreSQL unique constraint violation
func isPgUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	// PostgreSQL unique violation error code is 23505
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
