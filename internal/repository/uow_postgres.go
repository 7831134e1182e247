package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresUnitOfWork struct {
	pool *pgxpool.Pool
}

// NewUnitOfWork returns a pgx transaction-backed unit of work.
func NewUnitOfWork(pool *pgxpool.Pool) UnitOfWork {
	return &postgresUnitOfWork{pool: pool}
}

// WithinTx runs fn against transaction-bound repositories. fn's writes commit
// together or roll back together.
func (u *postgresUnitOfWork) WithinTx(ctx context.Context, fn func(reports ReportRepository, appeals AppealRepository) error) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(NewReportRepository(tx), NewAppealRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
