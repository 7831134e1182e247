package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/scamwatch/blacklist-service/internal/domain"
	"github.com/scamwatch/blacklist-service/internal/events"
	"github.com/scamwatch/blacklist-service/internal/policy"
	"github.com/scamwatch/blacklist-service/internal/repository"
	apperrors "github.com/scamwatch/blacklist-service/pkg/util/errorutil"
)

// ReportService coordinates the blacklist report lifecycle.
type ReportService struct {
	reports    repository.ReportRepository
	cache      *CounterCache
	dispatcher events.Dispatcher
}

// ReportDependencies bundles collaborators for the report service.
type ReportDependencies struct {
	ReportRepo repository.ReportRepository
	Cache      *CounterCache
	Dispatcher events.Dispatcher
}

// ReportCreateInput describes report submission payload.
type ReportCreateInput struct {
	TargetName    string
	Category      domain.ReportCategory
	Detail        string
	EvidenceImage string
}

// NewReportService constructs the service.
func NewReportService(deps ReportDependencies) *ReportService {
	return &ReportService{
		reports:    deps.ReportRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
	}
}

// Create validates and persists a new report in PENDING state. The submitter
// is taken from the verified identity, never from the payload.
func (s *ReportService) Create(ctx context.Context, identity domain.Identity, input ReportCreateInput) (*domain.Report, error) {
	targetName := strings.TrimSpace(input.TargetName)
	detail := strings.TrimSpace(input.Detail)
	evidence := strings.TrimSpace(input.EvidenceImage)

	missing := map[string]any{}
	if targetName == "" {
		missing["target_name"] = "required"
	}
	if detail == "" {
		missing["detail"] = "required"
	}
	if evidence == "" {
		missing["evidence_image"] = "required"
	}
	if input.Category == "" {
		missing["category"] = "required"
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("missing required fields", missing)
	}
	if !input.Category.Valid() {
		return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": input.Category})
	}

	report := &domain.Report{
		ID:              newReportID(),
		ReportedBy:      identity.Username,
		TargetName:      targetName,
		Category:        input.Category,
		Detail:          detail,
		EvidenceImage:   evidence,
		Status:          domain.ReportStatusPending,
		NegotiationNote: domain.DefaultNegotiationNote,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.cache.Invalidate(ctx, statsCacheKey)
	s.dispatcher.Publish(ctx, events.Event{
		Type:  events.EventReportSubmitted,
		Actor: events.ActorFromIdentity(identity),
		Payload: events.ReportSubmittedPayload{
			ReportID:   report.ID,
			TargetName: report.TargetName,
			Category:   report.Category,
		},
	})
	return report, nil
}

// ListPublic returns all reports a moderator has acted on, newest first,
// without evidence blobs.
func (s *ReportService) ListPublic(ctx context.Context) ([]domain.Report, error) {
	list, err := s.reports.ListPublic(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// ListPending returns the moderation queue, newest first, evidence included.
func (s *ReportService) ListPending(ctx context.Context) ([]domain.Report, error) {
	list, err := s.reports.ListPending(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// ListAll returns every report, newest first, without evidence blobs.
func (s *ReportService) ListAll(ctx context.Context) ([]domain.Report, error) {
	list, err := s.reports.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// Search matches query as a case-insensitive substring of target names,
// restricted to acted-on reports.
func (s *ReportService) Search(ctx context.Context, query string) ([]domain.Report, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("search query required", nil)
	}
	list, err := s.reports.SearchPublic(ctx, query)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// Approve transitions a PENDING report to FLAGGED. Approving a report that
// already left PENDING is a no-op success.
func (s *ReportService) Approve(ctx context.Context, identity domain.Identity, id string) error {
	if err := s.reports.Approve(ctx, id); err != nil {
		return notFoundOr(err, "report")
	}

	s.cache.Invalidate(ctx, statsCacheKey)
	s.dispatcher.Publish(ctx, events.Event{
		Type:    events.EventReportApproved,
		Actor:   events.ActorFromIdentity(identity),
		Payload: events.ReportApprovedPayload{ReportID: id},
	})
	return nil
}

// SetStatus is the raw override escape hatch: it writes either field directly
// with no state-machine restriction, unlike Approve and appeal resolution. At
// least one field must be supplied.
func (s *ReportService) SetStatus(ctx context.Context, identity domain.Identity, id string, status *domain.ReportStatus, negotiationNote *string) error {
	if status == nil && negotiationNote == nil {
		return apperrors.NewValidationError("status or negotiation note required", nil)
	}
	if status != nil && !status.Valid() {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": *status})
	}

	override := repository.StatusOverride{Status: status, NegotiationNote: negotiationNote}
	if err := s.reports.Override(ctx, id, override); err != nil {
		return notFoundOr(err, "report")
	}

	s.cache.Invalidate(ctx, statsCacheKey)
	s.dispatcher.Publish(ctx, events.Event{
		Type:  events.EventReportOverridden,
		Actor: events.ActorFromIdentity(identity),
		Payload: events.ReportOverriddenPayload{
			ReportID:  id,
			NewStatus: status,
			NoteSet:   negotiationNote != nil,
		},
	})
	return nil
}

// Delete permanently removes a report. There is no soft delete.
func (s *ReportService) Delete(ctx context.Context, identity domain.Identity, id string) error {
	if err := s.reports.Delete(ctx, id); err != nil {
		return notFoundOr(err, "report")
	}

	s.cache.Invalidate(ctx, statsCacheKey)
	s.dispatcher.Publish(ctx, events.Event{
		Type:    events.EventReportDeleted,
		Actor:   events.ActorFromIdentity(identity),
		Payload: events.ReportDeletedPayload{ReportID: id},
	})
	return nil
}

// GetEvidence returns the evidence blob when the disclosure policy grants
// access. A denial leaks nothing beyond the refusal itself; the status read
// is current, not a cached snapshot.
func (s *ReportService) GetEvidence(ctx context.Context, identity domain.Identity, id string) (string, error) {
	evidence, status, err := s.reports.GetEvidence(ctx, id)
	if err != nil {
		return "", notFoundOr(err, "report")
	}
	if !policy.CanViewEvidence(status, identity.IsAdmin) {
		return "", apperrors.NewForbidden("evidence is pending review")
	}
	return evidence, nil
}

// Stats returns per-status counts, served from the counter cache when warm.
func (s *ReportService) Stats(ctx context.Context) (domain.ReportStats, error) {
	var stats domain.ReportStats
	if s.cache.Get(ctx, statsCacheKey, &stats) {
		return stats, nil
	}

	stats, err := s.reports.Stats(ctx)
	if err != nil {
		return domain.ReportStats{}, apperrors.MapError(err)
	}
	s.cache.Set(ctx, statsCacheKey, stats)
	return stats, nil
}

// newReportID builds a human-displayable id: prefixed, timestamp-derived and
// suffixed with random bits so concurrent submissions never collide.
func newReportID() string {
	return fmt.Sprintf("SCAM-%s-%s", time.Now().UTC().Format("20060102150405"), idSuffix())
}

func idSuffix() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}

func notFoundOr(err error, resource string) error {
	if de := apperrors.ToDomainError(err); de.Code == "NOT_FOUND" {
		return apperrors.NewNotFound(resource, nil)
	}
	return apperrors.MapError(err)
}
