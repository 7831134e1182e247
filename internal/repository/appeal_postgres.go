package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/scamwatch/blacklist-service/internal/domain"
)

const appealColumns = `id, submitted_by, target_name, detail, evidence_image, is_closed, created_at, updated_at`

type appealRepository struct {
	db DB
}

// NewAppealRepository returns a Postgres-backed implementation.
func NewAppealRepository(db DB) AppealRepository {
	return &appealRepository{db: db}
}

func (r *appealRepository) Create(ctx context.Context, appeal *domain.Appeal) error {
	const query = `
        INSERT INTO appeals (id, submitted_by, target_name, detail, evidence_image, is_closed)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		appeal.ID,
		appeal.SubmittedBy,
		appeal.TargetName,
		appeal.Detail,
		appeal.EvidenceImage,
		appeal.IsClosed,
	).Scan(&appeal.CreatedAt, &appeal.UpdatedAt)
}

func (r *appealRepository) GetByID(ctx context.Context, id string) (*domain.Appeal, error) {
	query := `SELECT ` + appealColumns + ` FROM appeals WHERE id=$1`
	var appeal domain.Appeal
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&appeal.ID,
		&appeal.SubmittedBy,
		&appeal.TargetName,
		&appeal.Detail,
		&appeal.EvidenceImage,
		&appeal.IsClosed,
		&appeal.CreatedAt,
		&appeal.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &appeal, nil
}

func (r *appealRepository) ListOpen(ctx context.Context) ([]domain.Appeal, error) {
	query := `SELECT ` + appealColumns + ` FROM appeals WHERE is_closed = FALSE ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Appeal
	for rows.Next() {
		var appeal domain.Appeal
		if err := rows.Scan(
			&appeal.ID,
			&appeal.SubmittedBy,
			&appeal.TargetName,
			&appeal.Detail,
			&appeal.EvidenceImage,
			&appeal.IsClosed,
			&appeal.CreatedAt,
			&appeal.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, appeal)
	}
	return result, rows.Err()
}

func (r *appealRepository) CountOpen(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM appeals WHERE is_closed = FALSE`).Scan(&count)
	return count, err
}

// Close marks the appeal done. Closing an already-closed appeal is a no-op
// success; only a missing id is an error.
func (r *appealRepository) Close(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE appeals SET is_closed = TRUE, updated_at = NOW() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
