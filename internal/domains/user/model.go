package user

import (
	"time"

	"github.com/google/uuid"
)

// AuthUser is the authentication identity. It never reaches clients
// with the password hash attached.
type AuthUser struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// SubscriptionStatus enum: free/pro/enterprise.
type SubscriptionStatus string

const (
	SubscriptionFree       SubscriptionStatus = "free"
	SubscriptionPro        SubscriptionStatus = "pro"
	SubscriptionEnterprise SubscriptionStatus = "enterprise"
)

func (s SubscriptionStatus) IsValid() bool {
	switch s {
	case SubscriptionFree, SubscriptionPro, SubscriptionEnterprise:
		return true
	}
	return false
}

func (s SubscriptionStatus) String() string {
	return string(s)
}

// DefaultPresskitLimit is what a fresh free-tier profile starts with.
const DefaultPresskitLimit = 3

// UserProfile is the artist profile, linked 1:1 to an AuthUser.
// The row is created explicitly during sign-up; a missing row on read
// is a valid state (PROFILE_NOT_FOUND), never an internal error.
type UserProfile struct {
	ID             uuid.UUID          `db:"id" json:"id"`
	AuthUserID     uuid.UUID          `db:"auth_user_id" json:"auth_user_id"`
	Email          string             `db:"email" json:"email"`
	ArtistName     string             `db:"artist_name" json:"artist_name"`
	FullName       *string            `db:"full_name" json:"full_name,omitempty"`
	AvatarURL      *string            `db:"avatar_url" json:"avatar_url,omitempty"`
	Bio            *string            `db:"bio" json:"bio,omitempty"`
	Subscription   SubscriptionStatus `db:"subscription_status" json:"subscription_status"`
	PresskitLimit  int                `db:"presskit_limit" json:"presskit_limit"`
	SocialMedia    map[string]string  `db:"social_media" json:"social_media,omitempty"`
	ContactEmail   *string            `db:"contact_email" json:"contact_email,omitempty"`
	Phone          *string            `db:"phone" json:"phone,omitempty"`
	Location       *string            `db:"location" json:"location,omitempty"`
	CreatedAt      time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `db:"updated_at" json:"updated_at"`
}
