package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/scamwatch/blacklist-service/internal/domain"
)

// DB is the subset of pgx execution methods shared by *pgxpool.Pool and
// pgx.Tx, letting a repository run inside or outside a transaction.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// StatusOverride carries the optional fields of the raw status override. Nil
// fields are left unchanged.
type StatusOverride struct {
	Status          *domain.ReportStatus
	NegotiationNote *string
}

// ReportRepository encapsulates report persistence. List methods return
// newest first. ListPublic and ListAll never populate EvidenceImage; evidence
// retrieval is always the separate GetEvidence fetch.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id string) (*domain.Report, error)
	GetEvidence(ctx context.Context, id string) (evidence string, status domain.ReportStatus, err error)
	ListPublic(ctx context.Context) ([]domain.Report, error)
	ListPending(ctx context.Context) ([]domain.Report, error)
	ListAll(ctx context.Context) ([]domain.Report, error)
	SearchPublic(ctx context.Context, query string) ([]domain.Report, error)
	FindByTargetName(ctx context.Context, targetName string) ([]domain.Report, error)
	Approve(ctx context.Context, id string) error
	Override(ctx context.Context, id string, override StatusOverride) error
	Resolve(ctx context.Context, id, negotiationNote string) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (domain.ReportStats, error)
}

// AppealRepository encapsulates appeal persistence.
type AppealRepository interface {
	Create(ctx context.Context, appeal *domain.Appeal) error
	GetByID(ctx context.Context, id string) (*domain.Appeal, error)
	ListOpen(ctx context.Context) ([]domain.Appeal, error)
	CountOpen(ctx context.Context) (int64, error)
	Close(ctx context.Context, id string) error
}

// UserRepository defines persistence access for registered users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, error)
}

// UnitOfWork runs report and appeal mutations as a single atomic unit.
// Appeal resolution touches two records; both writes commit or neither does.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(reports ReportRepository, appeals AppealRepository) error) error
}
