package subscription

import (
	"context"

	"presskit-backend/internal/domains/user"
)

// Repository defines read-only access to the plan catalog.
type Repository interface {
	// ListPlans returns the catalog ordered by monthly price, cheapest
	// first.
	ListPlans(ctx context.Context) ([]Plan, error)

	// FindPlanByTier returns ErrPlanNotFound when the tier has no
	// catalog row.
	FindPlanByTier(ctx context.Context, tier user.SubscriptionStatus) (*Plan, error)
}
