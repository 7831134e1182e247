package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/scamwatch/blacklist-service/internal/domain"
	"github.com/scamwatch/blacklist-service/internal/events"
	"github.com/scamwatch/blacklist-service/internal/repository"
	apperrors "github.com/scamwatch/blacklist-service/pkg/util/errorutil"
)

// AppealService coordinates dispute submissions and the moderator queue.
type AppealService struct {
	appeals    repository.AppealRepository
	cache      *CounterCache
	dispatcher events.Dispatcher
}

// AppealDependencies bundles collaborators for the appeal service.
type AppealDependencies struct {
	AppealRepo repository.AppealRepository
	Cache      *CounterCache
	Dispatcher events.Dispatcher
}

// AppealCreateInput describes appeal submission payload.
type AppealCreateInput struct {
	TargetName    string
	Detail        string
	EvidenceImage string
}

// NewAppealService constructs the service.
func NewAppealService(deps AppealDependencies) *AppealService {
	return &AppealService{
		appeals:    deps.AppealRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
	}
}

// Create validates and persists a new open appeal.
func (s *AppealService) Create(ctx context.Context, identity domain.Identity, input AppealCreateInput) (*domain.Appeal, error) {
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
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("missing required fields", missing)
	}

	appeal := &domain.Appeal{
		ID:            newAppealID(),
		SubmittedBy:   identity.Username,
		TargetName:    targetName,
		Detail:        detail,
		EvidenceImage: evidence,
		IsClosed:      false,
	}
	if err := s.appeals.Create(ctx, appeal); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.cache.Invalidate(ctx, openAppealsCacheKey)
	s.dispatcher.Publish(ctx, events.Event{
		Type:  events.EventAppealSubmitted,
		Actor: events.ActorFromIdentity(identity),
		Payload: events.AppealSubmittedPayload{
			AppealID:   appeal.ID,
			TargetName: appeal.TargetName,
		},
	})
	return appeal, nil
}

// ListOpen returns the open appeal queue, newest first. Appeals are never
// listed publicly; their evidence is moderator-only by construction.
func (s *AppealService) ListOpen(ctx context.Context) ([]domain.Appeal, error) {
	list, err := s.appeals.ListOpen(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// CountOpen returns the number of open appeals, cached between writes.
func (s *AppealService) CountOpen(ctx context.Context) (int64, error) {
	var count int64
	if s.cache.Get(ctx, openAppealsCacheKey, &count) {
		return count, nil
	}

	count, err := s.appeals.CountOpen(ctx)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	s.cache.Set(ctx, openAppealsCacheKey, count)
	return count, nil
}

// Close marks an appeal done without touching any report. Closing an
// already-closed appeal is a no-op success.
func (s *AppealService) Close(ctx context.Context, id string) (*domain.Appeal, error) {
	if err := s.appeals.Close(ctx, id); err != nil {
		return nil, notFoundOr(err, "appeal")
	}
	s.cache.Invalidate(ctx, openAppealsCacheKey)

	appeal, err := s.appeals.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return appeal, nil
}

func newAppealID() string {
	return fmt.Sprintf("APP-%s-%s", time.Now().UTC().Format("20060102150405"), idSuffix())
}
