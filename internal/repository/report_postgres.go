package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/scamwatch/blacklist-service/internal/domain"
)

const reportColumns = `id, reported_by, target_name, category, detail, evidence_image, status, negotiation_note, created_at, updated_at`

// listColumns substitutes an empty string for the evidence blob so list
// views never carry it over the wire.
const reportListColumns = `id, reported_by, target_name, category, detail, '' AS evidence_image, status, negotiation_note, created_at, updated_at`

type reportRepository struct {
	db DB
}

// NewReportRepository returns a Postgres-backed implementation.
func NewReportRepository(db DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	const query = `
        INSERT INTO reports (id, reported_by, target_name, category, detail, evidence_image, status, negotiation_note)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		report.ID,
		report.ReportedBy,
		report.TargetName,
		report.Category,
		report.Detail,
		report.EvidenceImage,
		report.Status,
		report.NegotiationNote,
	).Scan(&report.CreatedAt, &report.UpdatedAt)
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *reportRepository) GetEvidence(ctx context.Context, id string) (string, domain.ReportStatus, error) {
	const query = `SELECT evidence_image, status FROM reports WHERE id=$1`
	var evidence string
	var status domain.ReportStatus
	if err := r.db.QueryRow(ctx, query, id).Scan(&evidence, &status); err != nil {
		return "", "", err
	}
	return evidence, status, nil
}

func (r *reportRepository) ListPublic(ctx context.Context) ([]domain.Report, error) {
	query := `SELECT ` + reportListColumns + ` FROM reports WHERE status <> $1 ORDER BY created_at DESC`
	return r.list(ctx, query, domain.ReportStatusPending)
}

func (r *reportRepository) ListPending(ctx context.Context) ([]domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE status = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, domain.ReportStatusPending)
}

func (r *reportRepository) ListAll(ctx context.Context) ([]domain.Report, error) {
	query := `SELECT ` + reportListColumns + ` FROM reports ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *reportRepository) SearchPublic(ctx context.Context, query string) ([]domain.Report, error) {
	sql := `SELECT ` + reportColumns + ` FROM reports
            WHERE status <> $1 AND LOWER(target_name) LIKE $2
            ORDER BY created_at DESC`
	pattern := "%" + strings.ToLower(query) + "%"
	return r.list(ctx, sql, domain.ReportStatusPending, pattern)
}

func (r *reportRepository) FindByTargetName(ctx context.Context, targetName string) ([]domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE target_name = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, targetName)
}

// Approve transitions PENDING to FLAGGED. Re-approving a report that already
// left PENDING is a deliberate no-op success; only a missing id is an error.
func (r *reportRepository) Approve(ctx context.Context, id string) error {
	const query = `UPDATE reports SET status=$1, updated_at=NOW() WHERE id=$2 AND status=$3`
	cmd, err := r.db.Exec(ctx, query, domain.ReportStatusFlagged, id, domain.ReportStatusPending)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}
	return r.exists(ctx, id)
}

// Override is the raw escape hatch: no state-machine restriction applies.
func (r *reportRepository) Override(ctx context.Context, id string, override StatusOverride) error {
	const query = `
        UPDATE reports SET
            status = COALESCE($1, status),
            negotiation_note = COALESCE($2, negotiation_note),
            updated_at = NOW()
        WHERE id=$3`
	cmd, err := r.db.Exec(ctx, query, override.Status, override.NegotiationNote, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Resolve applies the appeal-driven transition, overwriting the negotiation
// note with the appeal's detail.
func (r *reportRepository) Resolve(ctx context.Context, id, negotiationNote string) error {
	const query = `UPDATE reports SET status=$1, negotiation_note=$2, updated_at=NOW() WHERE id=$3`
	cmd, err := r.db.Exec(ctx, query, domain.ReportStatusResolved, negotiationNote, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reportRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM reports WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reportRepository) Stats(ctx context.Context) (domain.ReportStats, error) {
	const query = `
        SELECT
            COUNT(*) FILTER (WHERE status = $1),
            COUNT(*) FILTER (WHERE status = $2),
            COUNT(*) FILTER (WHERE status = $3),
            COUNT(*)
        FROM reports`
	var stats domain.ReportStats
	err := r.db.QueryRow(ctx, query,
		domain.ReportStatusPending,
		domain.ReportStatusFlagged,
		domain.ReportStatusResolved,
	).Scan(&stats.Pending, &stats.Flagged, &stats.Resolved, &stats.Total)
	return stats, err
}

func (r *reportRepository) exists(ctx context.Context, id string) error {
	var found bool
	if err := r.db.QueryRow(ctx, `SELECT TRUE FROM reports WHERE id=$1`, id).Scan(&found); err != nil {
		return err
	}
	return nil
}

func (r *reportRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Report, error) {
	var report domain.Report
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&report.ID,
		&report.ReportedBy,
		&report.TargetName,
		&report.Category,
		&report.Detail,
		&report.EvidenceImage,
		&report.Status,
		&report.NegotiationNote,
		&report.CreatedAt,
		&report.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) list(ctx context.Context, query string, args ...any) ([]domain.Report, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReports(rows)
}

func scanReports(rows pgx.Rows) ([]domain.Report, error) {
	var result []domain.Report
	for rows.Next() {
		var report domain.Report
		if err := rows.Scan(
			&report.ID,
			&report.ReportedBy,
			&report.TargetName,
			&report.Category,
			&report.Detail,
			&report.EvidenceImage,
			&report.Status,
			&report.NegotiationNote,
			&report.CreatedAt,
			&report.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, report)
	}
	return result, rows.Err()
}
