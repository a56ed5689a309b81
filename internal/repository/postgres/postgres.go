package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"talentdesk-backend/internal/logger"
	"talentdesk-backend/internal/repository"

	"github.com/lib/pq"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx so every repository can be
// bound to either the pool or one transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.Repositories
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:           db,
		Repositories: newRepositories(db),
	}
}

func newRepositories(q dbtx) repository.Repositories {
	return repository.Repositories{
		Jobs:       NewJobOpeningRepository(q),
		Referrals:  NewReferralRepository(q),
		Rounds:     NewInterviewRoundRepository(q),
		Interviews: NewCandidateInterviewRepository(q),
		Offers:     NewOfferRepository(q),
		History:    NewHistoryRepository(q),
		Directory:  NewDirectoryRepository(q),
	}
}

// ExecTx runs fn inside a transaction, handing it repositories bound to
// that transaction.
func (s *Store) ExecTx(ctx context.Context, fn func(repository.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(newRepositories(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.Error("transaction rollback failed", "error", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation, optionally on one named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code != "23505" {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
