package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/scamwatch/blacklist-service/internal/domain"
	apperrors "github.com/scamwatch/blacklist-service/pkg/util/errorutil"
)

// MemoryStore backs the repositories when no Postgres DSN is configured. A
// single store-wide mutex serializes writers, so per-record read-modify-write
// is atomic and the unit of work applies multi-record mutations as one unit.
// Records are held in insertion order; creation is the only append, so
// iterating backwards yields newest first.
type MemoryStore struct {
	mu      sync.RWMutex
	reports []*domain.Report
	appeals []*domain.Appeal
	users   []*domain.User
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Reports returns the report repository view of the store.
func (s *MemoryStore) Reports() ReportRepository {
	return &memoryReports{store: s}
}

// Appeals returns the appeal repository view of the store.
func (s *MemoryStore) Appeals() AppealRepository {
	return &memoryAppeals{store: s}
}

// Users returns the user repository view of the store.
func (s *MemoryStore) Users() UserRepository {
	return &memoryUsers{store: s}
}

// UnitOfWork returns a unit of work holding the store lock for the whole
// callback, so both writes land or, on error, the lock-guarded state is left
// to the caller to treat as failed before any observer sees a partial apply.
func (s *MemoryStore) UnitOfWork() UnitOfWork {
	return &memoryUnitOfWork{store: s}
}

type memoryReports struct {
	store *MemoryStore
	inTx  bool
}

func (r *memoryReports) Create(_ context.Context, report *domain.Report) error {
	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	if r.store.findReport(report.ID) != nil {
		return apperrors.NewConflict("report id already exists", nil)
	}
	now := time.Now()
	report.CreatedAt = now
	report.UpdatedAt = now
	stored := *report
	r.store.reports = append(r.store.reports, &stored)
	return nil
}

func (r *memoryReports) GetByID(_ context.Context, id string) (*domain.Report, error) {
	if !r.inTx {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	report := r.store.findReport(id)
	if report == nil {
		return nil, pgx.ErrNoRows
	}
	copied := *report
	return &copied, nil
}

func (r *memoryReports) GetEvidence(_ context.Context, id string) (string, domain.ReportStatus, error) {
	if !r.inTx {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	report := r.store.findReport(id)
	if report == nil {
		return "", "", pgx.ErrNoRows
	}
	return report.EvidenceImage, report.Status, nil
}

func (r *memoryReports) ListPublic(_ context.Context) ([]domain.Report, error) {
	return r.collect(func(rep *domain.Report) bool {
		return rep.Status != domain.ReportStatusPending
	}, true)
}

func (r *memoryReports) ListPending(_ context.Context) ([]domain.Report, error) {
	return r.collect(func(rep *domain.Report) bool {
		return rep.Status == domain.ReportStatusPending
	}, false)
}

func (r *memoryReports) ListAll(_ context.Context) ([]domain.Report, error) {
	return r.collect(func(*domain.Report) bool { return true }, true)
}

func (r *memoryReports) SearchPublic(_ context.Context, query string) ([]domain.Report, error) {
	needle := strings.ToLower(query)
	return r.collect(func(rep *domain.Report) bool {
		return rep.Status != domain.ReportStatusPending &&
			strings.Contains(strings.ToLower(rep.TargetName), needle)
	}, false)
}

func (r *memoryReports) FindByTargetName(_ context.Context, targetName string) ([]domain.Report, error) {
	return r.collect(func(rep *domain.Report) bool {
		return rep.TargetName == targetName
	}, false)
}

func (r *memoryReports) Approve(_ context.Context, id string) error {
	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	report := r.store.findReport(id)
	if report == nil {
		return pgx.ErrNoRows
	}
	if report.Status == domain.ReportStatusPending {
		report.Status = domain.ReportStatusFlagged
		report.UpdatedAt = time.Now()
	}
	return nil
}

func (r *memoryReports) Override(_ context.Context, id string, override StatusOverride) error {
	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	report := r.store.findReport(id)
	if report == nil {
		return pgx.ErrNoRows
	}
	if override.Status != nil {
		report.Status = *override.Status
	}
	if override.NegotiationNote != nil {
		report.NegotiationNote = *override.NegotiationNote
	}
	report.UpdatedAt = time.Now()
	return nil
}

func (r *memoryReports) Resolve(_ context.Context, id, negotiationNote string) error {
	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	report := r.store.findReport(id)
	if report == nil {
		return pgx.ErrNoRows
	}
	report.Status = domain.ReportStatusResolved
	report.NegotiationNote = negotiationNote
	report.UpdatedAt = time.Now()
	return nil
}

func (r *memoryReports) Delete(_ context.Context, id string) error {
	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	for i, report := range r.store.reports {
		if report.ID == id {
			r.store.reports = append(r.store.reports[:i], r.store.reports[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *memoryReports) Stats(_ context.Context) (domain.ReportStats, error) {
	if !r.inTx {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	var stats domain.ReportStats
	for _, report := range r.store.reports {
		switch report.Status {
		case domain.ReportStatusPending:
			stats.Pending++
		case domain.ReportStatusFlagged:
			stats.Flagged++
		case domain.ReportStatusResolved:
			stats.Resolved++
		}
		stats.Total++
	}
	return stats, nil
}

func (r *memoryReports) collect(match func(*domain.Report) bool, stripEvidence bool) ([]domain.Report, error) {
	if !r.inTx {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	var result []domain.Report
	for i := len(r.store.reports) - 1; i >= 0; i-- {
		report := r.store.reports[i]
		if !match(report) {
			continue
		}
		copied := *report
		if stripEvidence {
			copied.EvidenceImage = ""
		}
		result = append(result, copied)
	}
	return result, nil
}

type memoryAppeals struct {
	store *MemoryStore
	inTx  bool
}

func (r *memoryAppeals) Create(_ context.Context, appeal *domain.Appeal) error {
	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	if r.store.findAppeal(appeal.ID) != nil {
		return apperrors.NewConflict("appeal id already exists", nil)
	}
	now := time.Now()
	appeal.CreatedAt = now
	appeal.UpdatedAt = now
	stored := *appeal
	r.store.appeals = append(r.store.appeals, &stored)
	return nil
}

func (r *memoryAppeals) GetByID(_ context.Context, id string) (*domain.Appeal, error) {
	if !r.inTx {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	appeal := r.store.findAppeal(id)
	if appeal == nil {
		return nil, pgx.ErrNoRows
	}
	copied := *appeal
	return &copied, nil
}

func (r *memoryAppeals) ListOpen(_ context.Context) ([]domain.Appeal, error) {
	if !r.inTx {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	var result []domain.Appeal
	for i := len(r.store.appeals) - 1; i >= 0; i-- {
		appeal := r.store.appeals[i]
		if appeal.IsClosed {
			continue
		}
		copied := *appeal
		result = append(result, copied)
	}
	return result, nil
}

func (r *memoryAppeals) CountOpen(_ context.Context) (int64, error) {
	if !r.inTx {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	var count int64
	for _, appeal := range r.store.appeals {
		if !appeal.IsClosed {
			count++
		}
	}
	return count, nil
}

func (r *memoryAppeals) Close(_ context.Context, id string) error {
	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	appeal := r.store.findAppeal(id)
	if appeal == nil {
		return pgx.ErrNoRows
	}
	if !appeal.IsClosed {
		appeal.IsClosed = true
		appeal.UpdatedAt = time.Now()
	}
	return nil
}

type memoryUsers struct {
	store *MemoryStore
}

func (r *memoryUsers) Create(_ context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return apperrors.NewConflict("username or email already registered", nil)
		}
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	r.store.users = append(r.store.users, &stored)
	return nil
}

func (r *memoryUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, user := range r.store.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, user := range r.store.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryUsers) UsernameOrEmailTaken(_ context.Context, username, email string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, user := range r.store.users {
		if user.Username == username || user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type memoryUnitOfWork struct {
	store *MemoryStore
}

// WithinTx holds the store lock for the whole callback; no other writer or
// reader observes a state between fn's individual writes.
func (u *memoryUnitOfWork) WithinTx(_ context.Context, fn func(reports ReportRepository, appeals AppealRepository) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	return fn(
		&memoryReports{store: u.store, inTx: true},
		&memoryAppeals{store: u.store, inTx: true},
	)
}

func (s *MemoryStore) findReport(id string) *domain.Report {
	for _, report := range s.reports {
		if report.ID == id {
			return report
		}
	}
	return nil
}

func (s *MemoryStore) findAppeal(id string) *domain.Appeal {
	for _, appeal := range s.appeals {
		if appeal.ID == id {
			return appeal
		}
	}
	return nil
}
