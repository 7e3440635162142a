package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"presskit-backend/internal/domains/analytics"
	"presskit-backend/internal/domains/presskit"
	"presskit-backend/internal/domains/user"
	"presskit-backend/internal/shared/utils"
	"presskit-backend/pkg/logger"
)

// slugAttempts bounds the retry loop for unique slug generation.
const slugAttempts = 5

type presskitService struct {
	repo      presskit.Repository
	users     user.Repository
	analytics analytics.Repository
}

func NewPresskitService(repo presskit.Repository, users user.Repository, analyticsRepo analytics.Repository) presskit.Service {
	return &presskitService{
		repo:      repo,
		users:     users,
		analytics: analyticsRepo,
	}
}

// ========================================
// OWNER OPERATIONS
// ========================================

func (s *presskitService) Create(ctx context.Context, authUserID uuid.UUID, req presskit.CreateRequest) (*presskit.Presskit, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	profile, err := s.ownerProfile(ctx, authUserID)
	if err != nil {
		return nil, err
	}

	// Quota check against the profile's plan limit.
	count, err := s.repo.CountByOwner(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	if count >= profile.PresskitLimit {
		return nil, presskit.ErrQuotaExceeded
	}

	now := time.Now()
	p := &presskit.Presskit{
		ID:           uuid.New(),
		UserID:       profile.ID,
		Title:        req.Title,
		ArtistName:   req.ArtistName,
		TemplateType: req.TemplateType,
		Status:       presskit.StatusDraft,
		IsPublic:     false,
		ContentData:  req.ContentData,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	logger.Info("presskit created", map[string]interface{}{
		"presskit_id": p.ID.String(),
		"profile_id":  profile.ID.String(),
	})

	return p, nil
}

func (s *presskitService) List(ctx context.Context, authUserID uuid.UUID) ([]presskit.Presskit, error) {
	profile, err := s.ownerProfile(ctx, authUserID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByOwner(ctx, profile.ID)
}

func (s *presskitService) GetByID(ctx context.Context, authUserID, id uuid.UUID) (*presskit.Presskit, error) {
	profile, err := s.ownerProfile(ctx, authUserID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByIDForOwner(ctx, id, profile.ID)
}

func (s *presskitService) Update(ctx context.Context, authUserID, id uuid.UUID, req presskit.UpdateRequest) (*presskit.Presskit, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	profile, err := s.ownerProfile(ctx, authUserID)
	if err != nil {
		return nil, err
	}

	if req.IsEmpty() {
		return s.repo.FindByIDForOwner(ctx, id, profile.ID)
	}

	return s.repo.Update(ctx, id, profile.ID, req)
}

// Publish makes the presskit publicly reachable. The slug is assigned
// once, on first publish; later publishes reuse it.
func (s *presskitService) Publish(ctx context.Context, authUserID, id uuid.UUID) (*presskit.Presskit, error) {
	profile, err := s.ownerProfile(ctx, authUserID)
	if err != nil {
		return nil, err
	}

	current, err := s.repo.FindByIDForOwner(ctx, id, profile.ID)
	if err != nil {
		return nil, err
	}

	slug := ""
	if current.PublicSlug == nil {
		slug, err = s.availableSlug(ctx, current.ArtistName)
		if err != nil {
			return nil, err
		}
	}

	p, err := s.repo.Publish(ctx, id, profile.ID, slug)
	if err != nil {
		return nil, err
	}

	logger.Info("presskit published", map[string]interface{}{
		"presskit_id": p.ID.String(),
		"slug":        derefSlug(p.PublicSlug),
	})

	return p, nil
}

func (s *presskitService) Archive(ctx context.Context, authUserID, id uuid.UUID) (*presskit.Presskit, error) {
	profile, err := s.ownerProfile(ctx, authUserID)
	if err != nil {
		return nil, err
	}
	return s.repo.Archive(ctx, id, profile.ID)
}

func (s *presskitService) Delete(ctx context.Context, authUserID, id uuid.UUID) error {
	profile, err := s.ownerProfile(ctx, authUserID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, id, profile.ID)
}

func (s *presskitService) Stats(ctx context.Context, authUserID, id uuid.UUID) (*presskit.StatsDTO, error) {
	profile, err := s.ownerProfile(ctx, authUserID)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.FindByIDForOwner(ctx, id, profile.ID)
	if err != nil {
		return nil, err
	}

	counts, err := s.analytics.CountsByPresskit(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	return &presskit.StatsDTO{
		ViewCount:     p.ViewCount,
		DownloadCount: p.DownloadCount,
		ShareCount:    counts[analytics.EventShare],
	}, nil
}

// ========================================
// PUBLIC OPERATIONS
// ========================================

func (s *presskitService) GetPublic(ctx context.Context, slug string, meta analytics.RequestMeta) (*presskit.Presskit, error) {
	p, err := s.repo.FindPublicBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	s.trackEvent(ctx, p.ID, analytics.EventView, meta)
	if err := s.repo.IncrementViewCount(ctx, p.ID); err != nil {
		logger.Error("failed to increment view count", err)
	} else {
		p.ViewCount++
	}

	return p, nil
}

func (s *presskitService) RegisterDownload(ctx context.Context, slug string, meta analytics.RequestMeta) (*presskit.Presskit, error) {
	p, err := s.repo.FindPublicBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	s.trackEvent(ctx, p.ID, analytics.EventDownload, meta)
	if err := s.repo.IncrementDownloadCount(ctx, p.ID); err != nil {
		logger.Error("failed to increment download count", err)
	} else {
		p.DownloadCount++
	}

	return p, nil
}

// ========================================
// HELPERS
// ========================================

// ownerProfile resolves the auth identity to its artist profile.
func (s *presskitService) ownerProfile(ctx context.Context, authUserID uuid.UUID) (*user.UserProfile, error) {
	profile, err := s.users.FindProfileByAuthID(ctx, authUserID)
	if err != nil {
		if errors.Is(err, user.ErrProfileNotFound) {
			return nil, presskit.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// availableSlug derives a slug from the artist name and retries with a
// random suffix until it is free.
func (s *presskitService) availableSlug(ctx context.Context, artistName string) (string, error) {
	base := utils.GenerateSlug(artistName)
	if base != "" {
		taken, err := s.repo.SlugExists(ctx, base)
		if err != nil {
			return "", err
		}
		if !taken {
			return base, nil
		}
	}

	for i := 0; i < slugAttempts; i++ {
		candidate := utils.GenerateUniqueSlug(artistName)
		taken, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("could not find an available slug for %q", artistName)
}

// trackEvent is best-effort: a failed analytics write never fails the
// public request.
func (s *presskitService) trackEvent(ctx context.Context, presskitID uuid.UUID, eventType analytics.EventType, meta analytics.RequestMeta) {
	event := &analytics.Event{
		ID:         uuid.New(),
		PresskitID: presskitID,
		EventType:  eventType,
		UserAgent:  optional(meta.UserAgent),
		IPAddress:  optional(meta.IPAddress),
		Referrer:   optional(meta.Referrer),
		CreatedAt:  time.Now(),
	}

	if err := s.analytics.Record(ctx, event); err != nil {
		logger.Error("failed to record analytics event", err)
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefSlug(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
