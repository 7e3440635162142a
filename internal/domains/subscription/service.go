package subscription

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the subscription business logic contract.
type Service interface {
	// ListPlans is the public catalog.
	ListPlans(ctx context.Context) ([]Plan, error)

	// Current resolves the authed user's profile to its plan and
	// current quota usage.
	Current(ctx context.Context, authUserID uuid.UUID) (*CurrentDTO, error)
}
