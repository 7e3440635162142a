package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"presskit-backend/internal/domains/presskit"
	"presskit-backend/internal/domains/subscription"
	"presskit-backend/internal/domains/user"
)

type subscriptionService struct {
	repo      subscription.Repository
	users     user.Repository
	presskits presskit.Repository
}

func NewSubscriptionService(repo subscription.Repository, users user.Repository, presskits presskit.Repository) subscription.Service {
	return &subscriptionService{
		repo:      repo,
		users:     users,
		presskits: presskits,
	}
}

func (s *subscriptionService) ListPlans(ctx context.Context) ([]subscription.Plan, error) {
	return s.repo.ListPlans(ctx)
}

// Current joins the profile's tier to its catalog plan and counts the
// profile's presskits against the profile limit. The profile limit
// wins over the plan limit: grandfathered accounts keep their quota.
func (s *subscriptionService) Current(ctx context.Context, authUserID uuid.UUID) (*subscription.CurrentDTO, error) {
	profile, err := s.users.FindProfileByAuthID(ctx, authUserID)
	if err != nil {
		if errors.Is(err, user.ErrProfileNotFound) {
			return nil, subscription.ErrProfileNotFound
		}
		return nil, err
	}

	plan, err := s.repo.FindPlanByTier(ctx, profile.Subscription)
	if err != nil {
		return nil, err
	}

	count, err := s.presskits.CountByOwner(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	return &subscription.CurrentDTO{
		Plan: *plan,
		Usage: subscription.Usage{
			PresskitCount: count,
			PresskitLimit: profile.PresskitLimit,
		},
	}, nil
}
