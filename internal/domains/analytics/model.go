package analytics

import (
	"time"

	"github.com/google/uuid"
)

// EventType enum: view/download/share.
type EventType string

const (
	EventView     EventType = "view"
	EventDownload EventType = "download"
	EventShare    EventType = "share"
)

func (e EventType) IsValid() bool {
	switch e {
	case EventView, EventDownload, EventShare:
		return true
	}
	return false
}

// Event is one append-only row in the analytics log. Written
// fire-and-forget from the public presskit paths.
type Event struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	PresskitID uuid.UUID  `db:"presskit_id" json:"presskit_id"`
	EventType  EventType  `db:"event_type" json:"event_type"`
	UserAgent  *string    `db:"user_agent" json:"user_agent,omitempty"`
	IPAddress  *string    `db:"ip_address" json:"ip_address,omitempty"`
	Referrer   *string    `db:"referrer" json:"referrer,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// RequestMeta carries the request attributes recorded with an event.
type RequestMeta struct {
	UserAgent string
	IPAddress string
	Referrer  string
}
