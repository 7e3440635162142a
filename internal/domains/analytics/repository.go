package analytics

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the append-only analytics log.
type Repository interface {
	// Record appends one event.
	Record(ctx context.Context, event *Event) error

	// CountsByPresskit returns event counts keyed by event type.
	CountsByPresskit(ctx context.Context, presskitID uuid.UUID) (map[EventType]int, error)
}
