package presskit

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the presskit data access contract. Owner-scoped
// lookups take the owning profile ID so a user can never touch
// another artist's presskit.
type Repository interface {
	// Create inserts a new draft.
	Create(ctx context.Context, p *Presskit) error

	// ListByOwner returns the owner's presskits, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Presskit, error)

	// FindByIDForOwner returns ErrPresskitNotFound when the row is
	// absent or owned by someone else.
	FindByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (*Presskit, error)

	// Update applies a partial patch and returns the updated row.
	Update(ctx context.Context, id, ownerID uuid.UUID, req UpdateRequest) (*Presskit, error)

	// Publish transitions the row to published/public, assigning slug
	// and published_at only when they are not already set.
	Publish(ctx context.Context, id, ownerID uuid.UUID, slug string) (*Presskit, error)

	// Archive transitions the row to archived and withdraws it from
	// public view. The slug is retained.
	Archive(ctx context.Context, id, ownerID uuid.UUID) (*Presskit, error)

	// Delete hard-deletes the row.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error

	// FindPublicBySlug only matches status=published AND is_public.
	// Returns ErrPresskitNotFound otherwise.
	FindPublicBySlug(ctx context.Context, slug string) (*Presskit, error)

	// IncrementViewCount / IncrementDownloadCount bump the monotonic
	// counters on the public read paths.
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
	IncrementDownloadCount(ctx context.Context, id uuid.UUID) error

	// CountByOwner backs quota enforcement.
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)

	// SlugExists backs unique slug assignment.
	SlugExists(ctx context.Context, slug string) (bool, error)
}
