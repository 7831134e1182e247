package service

import (
	"context"

	"github.com/scamwatch/blacklist-service/internal/domain"
	"github.com/scamwatch/blacklist-service/internal/events"
	"github.com/scamwatch/blacklist-service/internal/policy"
	"github.com/scamwatch/blacklist-service/internal/repository"
	apperrors "github.com/scamwatch/blacklist-service/pkg/util/errorutil"
)

// ModerationService orchestrates the cross-entity transition: approving an
// appeal locates matching reports by target name and resolves them.
type ModerationService struct {
	uow        repository.UnitOfWork
	resolution policy.ResolutionPolicy
	cache      *CounterCache
	dispatcher events.Dispatcher
}

// ModerationDependencies bundles collaborators for the moderation service.
type ModerationDependencies struct {
	UnitOfWork repository.UnitOfWork
	Resolution policy.ResolutionPolicy
	Cache      *CounterCache
	Dispatcher events.Dispatcher
}

// ResolveResult reports the outcome of an appeal resolution.
type ResolveResult struct {
	AppealID        string
	TargetName      string
	ResolvedReports []string
}

// NewModerationService constructs the service.
func NewModerationService(deps ModerationDependencies) *ModerationService {
	resolution := deps.Resolution
	if resolution == "" {
		resolution = policy.ResolveFirstMatch
	}
	return &ModerationService{
		uow:        deps.UnitOfWork,
		resolution: resolution,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
	}
}

// ResolveAppeal closes the appeal and transitions the matching report(s) to
// RESOLVED with the appeal's detail as negotiation note, as one atomic unit:
// the report mutation and the appeal closure commit together or not at all.
// The appeal→report link is an exact match on the stored target name, so an
// appeal without a matching report still closes successfully. Which matches
// transition is governed by the configured resolution policy; matches are
// visited newest first.
func (s *ModerationService) ResolveAppeal(ctx context.Context, identity domain.Identity, appealID string) (*ResolveResult, error) {
	result := &ResolveResult{AppealID: appealID}

	err := s.uow.WithinTx(ctx, func(reports repository.ReportRepository, appeals repository.AppealRepository) error {
		appeal, err := appeals.GetByID(ctx, appealID)
		if err != nil {
			return notFoundOr(err, "appeal")
		}
		result.TargetName = appeal.TargetName
		if appeal.IsClosed {
			return nil
		}

		matches, err := reports.FindByTargetName(ctx, appeal.TargetName)
		if err != nil {
			return apperrors.MapError(err)
		}
		if s.resolution == policy.ResolveFirstMatch && len(matches) > 1 {
			matches = matches[:1]
		}
		for _, match := range matches {
			if err := reports.Resolve(ctx, match.ID, appeal.Detail); err != nil {
				return apperrors.MapError(err)
			}
			result.ResolvedReports = append(result.ResolvedReports, match.ID)
		}

		return appeals.Close(ctx, appealID)
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.cache.Invalidate(ctx, statsCacheKey, openAppealsCacheKey)
	s.dispatcher.Publish(ctx, events.Event{
		Type:  events.EventAppealResolved,
		Actor: events.ActorFromIdentity(identity),
		Payload: events.AppealResolvedPayload{
			AppealID:        result.AppealID,
			TargetName:      result.TargetName,
			ResolvedReports: result.ResolvedReports,
		},
	})
	return result, nil
}
