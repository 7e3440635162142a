package template

import (
	"context"

	"github.com/google/uuid"

	"presskit-backend/internal/domains/presskit"
)

// Repository defines read-only access to the template catalog.
type Repository interface {
	// ListActive returns active templates ordered by name. A non-empty
	// templateType filters the list.
	ListActive(ctx context.Context, templateType presskit.TemplateType) ([]Template, error)

	// FindByID returns ErrTemplateNotFound when the row is absent or
	// inactive.
	FindByID(ctx context.Context, id uuid.UUID) (*Template, error)
}
