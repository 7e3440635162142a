package user

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the business logic contract for auth and profiles.
type Service interface {
	// Authentication
	SignUp(ctx context.Context, req SignUpRequest) (*AuthResponse, error)
	SignIn(ctx context.Context, req SignInRequest) (*AuthResponse, error)
	SignOut(ctx context.Context, userID uuid.UUID) error
	RefreshSession(ctx context.Context, refreshToken string) (*AuthResponse, error)

	// Profile
	GetProfile(ctx context.Context, authUserID uuid.UUID) (*UserProfile, error)
	UpdateProfile(ctx context.Context, authUserID uuid.UUID, req UpdateProfileRequest) (*UserProfile, error)
	DeleteProfile(ctx context.Context, authUserID uuid.UUID) error
}
