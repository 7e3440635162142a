package template

import (
	"time"

	"github.com/google/uuid"

	"presskit-backend/internal/domains/presskit"
)

// Config is the layout description stored as JSONB.
type Config struct {
	Sections    []string `json:"sections"`
	ColorScheme string   `json:"color_scheme"`
	Layout      string   `json:"layout"`
}

// Template is read-only reference data describing a presskit layout.
// Rows are seeded; the API never mutates them.
type Template struct {
	ID           uuid.UUID             `db:"id" json:"id"`
	Name         string                `db:"name" json:"name"`
	TemplateType presskit.TemplateType `db:"template_type" json:"template_type"`
	Description  *string               `db:"description" json:"description,omitempty"`
	ConfigData   Config                `db:"config_data" json:"config_data"`
	IsActive     bool                  `db:"is_active" json:"is_active"`
	CreatedAt    time.Time             `db:"created_at" json:"created_at"`
}
