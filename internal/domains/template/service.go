package template

import (
	"context"

	"github.com/google/uuid"

	"presskit-backend/internal/domains/presskit"
)

// Service defines the template catalog business logic contract.
type Service interface {
	List(ctx context.Context, templateType presskit.TemplateType) ([]Template, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Template, error)
}
