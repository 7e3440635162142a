package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"presskit-backend/internal/domains/user"
	"presskit-backend/pkg/cache"
	"presskit-backend/pkg/jwt"
	"presskit-backend/pkg/logger"
)

// bcryptCost 12 balances hashing time against brute-force resistance.
const bcryptCost = 12

func sessionKey(userID, jti string) string {
	return fmt.Sprintf("session:%s:%s", userID, jti)
}

type userService struct {
	repo       user.Repository
	jwtManager *jwt.Manager
	sessions   cache.Cache
}

func NewUserService(repo user.Repository, jwtManager *jwt.Manager, sessions cache.Cache) user.Service {
	return &userService{
		repo:       repo,
		jwtManager: jwtManager,
		sessions:   sessions,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

// SignUp creates the auth identity and, in the same flow, the artist
// profile. Profile creation is an explicit post-condition of sign-up
// here; nothing relies on an external trigger.
func (s *userService) SignUp(ctx context.Context, req user.SignUpRequest) (*user.AuthResponse, error) {
	// Handler already validated, but services stay safe on their own.
	if err := req.Validate(); err != nil {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	newUser := &user.AuthUser{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateUser(ctx, newUser); err != nil {
		return nil, err
	}

	profile := &user.UserProfile{
		ID:            uuid.New(),
		AuthUserID:    newUser.ID,
		Email:         newUser.Email,
		ArtistName:    req.ArtistName,
		FullName:      req.FullName,
		Subscription:  user.SubscriptionFree,
		PresskitLimit: user.DefaultPresskitLimit,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.CreateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	session, err := s.openSession(ctx, newUser)
	if err != nil {
		return nil, err
	}

	return &user.AuthResponse{User: newUser.ToDTO(), Session: *session}, nil
}

func (s *userService) SignIn(ctx context.Context, req user.SignInRequest) (*user.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		// Unknown email and wrong password are indistinguishable.
		return nil, user.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	session, err := s.openSession(ctx, u)
	if err != nil {
		return nil, err
	}

	// Best-effort; a failed stamp must not fail the sign-in.
	go func() {
		if err := s.repo.UpdateLastLogin(context.Background(), u.ID); err != nil {
			logger.Error("update last login", err)
		}
	}()

	return &user.AuthResponse{User: u.ToDTO(), Session: *session}, nil
}

// SignOut revokes every active session of the user.
func (s *userService) SignOut(ctx context.Context, userID uuid.UUID) error {
	if err := s.sessions.DeletePattern(ctx, sessionKey(userID.String(), "*")); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	return nil
}

// RefreshSession rotates a valid, unrevoked refresh token into a new
// token pair.
func (s *userService) RefreshSession(ctx context.Context, refreshToken string) (*user.AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	var active bool
	found, err := s.sessions.Get(ctx, sessionKey(claims.UserID, claims.ID), &active)
	if err != nil {
		return nil, fmt.Errorf("check session: %w", err)
	}
	if !found {
		// Signed out (or expired server-side) since issuance.
		return nil, user.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	u, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	// Rotation: the old refresh token dies with its session entry.
	if err := s.sessions.Delete(ctx, sessionKey(claims.UserID, claims.ID)); err != nil {
		logger.Error("delete rotated session", err)
	}

	session, err := s.openSession(ctx, u)
	if err != nil {
		return nil, err
	}

	return &user.AuthResponse{User: u.ToDTO(), Session: *session}, nil
}

// openSession issues the token pair and registers the refresh JTI in
// Redis so sign-out can revoke it server-side.
func (s *userService) openSession(ctx context.Context, u *user.AuthUser) (*user.SessionDTO, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, jti, err := s.jwtManager.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	// Session entries live exactly as long as the refresh token.
	if err := s.sessions.Set(ctx, sessionKey(u.ID.String(), jti), true, s.jwtManager.RefreshTTL()); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return &user.SessionDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.jwtManager.AccessTTL()),
	}, nil
}

// ========================================
// PROFILE
// ========================================

func (s *userService) GetProfile(ctx context.Context, authUserID uuid.UUID) (*user.UserProfile, error) {
	return s.repo.FindProfileByAuthID(ctx, authUserID)
}

func (s *userService) UpdateProfile(ctx context.Context, authUserID uuid.UUID, req user.UpdateProfileRequest) (*user.UserProfile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// An empty patch is a no-op: return the current row untouched so
	// updated_at keeps whatever the store last wrote.
	if req.IsEmpty() {
		return s.repo.FindProfileByAuthID(ctx, authUserID)
	}

	return s.repo.UpdateProfile(ctx, authUserID, req)
}

func (s *userService) DeleteProfile(ctx context.Context, authUserID uuid.UUID) error {
	return s.repo.DeleteProfile(ctx, authUserID)
}
