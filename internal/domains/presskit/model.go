package presskit

import (
	"time"

	"github.com/google/uuid"
)

// TemplateType enum: basic/electronic/band/solo.
type TemplateType string

const (
	TemplateBasic      TemplateType = "basic"
	TemplateElectronic TemplateType = "electronic"
	TemplateBand       TemplateType = "band"
	TemplateSolo       TemplateType = "solo"
)

func (t TemplateType) IsValid() bool {
	switch t {
	case TemplateBasic, TemplateElectronic, TemplateBand, TemplateSolo:
		return true
	}
	return false
}

// Status lifecycle: draft -> published -> archived.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// ContactInfo is the booking/press contact block of the content
// payload.
type ContactInfo struct {
	BookingEmail string  `json:"booking_email"`
	PressEmail   *string `json:"press_email,omitempty"`
}

// Content is the structured presskit payload stored as JSONB.
type Content struct {
	Biography    string            `json:"biography"`
	Genre        []string          `json:"genre"`
	ProfilePhoto *string           `json:"profile_photo,omitempty"`
	PressPhotos  []string          `json:"press_photos,omitempty"`
	SocialMedia  map[string]string `json:"social_media,omitempty"`
	ContactInfo  ContactInfo       `json:"contact_info"`
}

// Presskit is the publishable artist promotional document.
//
// Invariants:
//   - PublicSlug, once assigned at first publish, never changes.
//   - Publicly retrievable only while Status==published AND IsPublic.
//   - View/download counters only ever increase.
type Presskit struct {
	ID            uuid.UUID    `db:"id" json:"id"`
	UserID        uuid.UUID    `db:"user_id" json:"user_id"` // owning profile ID
	Title         string       `db:"title" json:"title"`
	ArtistName    string       `db:"artist_name" json:"artist_name"`
	TemplateType  TemplateType `db:"template_type" json:"template_type"`
	Status        Status       `db:"status" json:"status"`
	IsPublic      bool         `db:"is_public" json:"is_public"`
	PublicSlug    *string      `db:"public_slug" json:"public_slug,omitempty"`
	ContentData   Content      `db:"content_data" json:"content_data"`
	ViewCount     int          `db:"view_count" json:"view_count"`
	DownloadCount int          `db:"download_count" json:"download_count"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at" json:"updated_at"`
	PublishedAt   *time.Time   `db:"published_at" json:"published_at,omitempty"`
}

// IsPubliclyVisible is the single gate for the public slug path.
func (p *Presskit) IsPubliclyVisible() bool {
	return p.Status == StatusPublished && p.IsPublic
}
