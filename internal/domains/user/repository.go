package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the data access contract for auth users and
// their artist profiles.
type Repository interface {
	// ========================================
	// AUTH IDENTITY
	// ========================================

	// CreateUser inserts a new auth identity.
	// Returns ErrEmailAlreadyExists on a duplicate email.
	CreateUser(ctx context.Context, u *AuthUser) error

	// FindUserByEmail is the sign-in lookup.
	// Returns ErrUserNotFound when the email is unknown.
	FindUserByEmail(ctx context.Context, email string) (*AuthUser, error)

	// FindUserByID returns ErrUserNotFound when absent.
	FindUserByID(ctx context.Context, id uuid.UUID) (*AuthUser, error)

	// UpdateLastLogin stamps last_login_at; best-effort.
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error

	// ========================================
	// ARTIST PROFILE
	// ========================================

	// CreateProfile inserts the 1:1 profile row for an auth user.
	CreateProfile(ctx context.Context, p *UserProfile) error

	// FindProfileByAuthID returns ErrProfileNotFound when no row
	// exists; callers treat that as a valid state.
	FindProfileByAuthID(ctx context.Context, authUserID uuid.UUID) (*UserProfile, error)

	// UpdateProfile applies a partial patch and returns the updated
	// row. Returns ErrProfileNotFound when no row exists.
	UpdateProfile(ctx context.Context, authUserID uuid.UUID, req UpdateProfileRequest) (*UserProfile, error)

	// DeleteProfile removes the profile row.
	DeleteProfile(ctx context.Context, authUserID uuid.UUID) error
}
