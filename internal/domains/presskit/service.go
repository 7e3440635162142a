package presskit

import (
	"context"

	"github.com/google/uuid"

	"presskit-backend/internal/domains/analytics"
)

// Service defines the presskit business logic contract. The authUserID
// parameters are auth identities; the service resolves them to the
// owning profile.
type Service interface {
	Create(ctx context.Context, authUserID uuid.UUID, req CreateRequest) (*Presskit, error)
	List(ctx context.Context, authUserID uuid.UUID) ([]Presskit, error)
	GetByID(ctx context.Context, authUserID, id uuid.UUID) (*Presskit, error)
	Update(ctx context.Context, authUserID, id uuid.UUID, req UpdateRequest) (*Presskit, error)
	Publish(ctx context.Context, authUserID, id uuid.UUID) (*Presskit, error)
	Archive(ctx context.Context, authUserID, id uuid.UUID) (*Presskit, error)
	Delete(ctx context.Context, authUserID, id uuid.UUID) error

	// GetPublic serves the public slug path: only published+public
	// rows, bumps view_count and records a view event.
	GetPublic(ctx context.Context, slug string, meta analytics.RequestMeta) (*Presskit, error)

	// RegisterDownload bumps download_count and records a download
	// event for a publicly visible presskit.
	RegisterDownload(ctx context.Context, slug string, meta analytics.RequestMeta) (*Presskit, error)

	// Stats is the owner-facing analytics read model.
	Stats(ctx context.Context, authUserID, id uuid.UUID) (*StatsDTO, error)
}
