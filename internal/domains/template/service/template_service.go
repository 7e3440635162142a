package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"presskit-backend/internal/domains/presskit"
	"presskit-backend/internal/domains/template"
	"presskit-backend/pkg/cache"
	"presskit-backend/pkg/logger"
)

// cacheTTL is short: the catalog is seed data but ops can still flip
// is_active without waiting long for the cache to catch up.
const cacheTTL = 5 * time.Minute

type templateService struct {
	repo  template.Repository
	cache cache.Cache
}

func NewTemplateService(repo template.Repository, c cache.Cache) template.Service {
	return &templateService{repo: repo, cache: c}
}

// List is cache-aside: Redis first, Postgres on miss, best-effort
// backfill. Cache failures degrade to direct reads.
func (s *templateService) List(ctx context.Context, templateType presskit.TemplateType) ([]template.Template, error) {
	key := listKey(templateType)

	var cached []template.Template
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Error("template cache read failed", err)
	}
	if found {
		return cached, nil
	}

	templates, err := s.repo.ListActive(ctx, templateType)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, templates, cacheTTL); err != nil {
		logger.Error("template cache write failed", err)
	}

	return templates, nil
}

func (s *templateService) GetByID(ctx context.Context, id uuid.UUID) (*template.Template, error) {
	key := fmt.Sprintf("templates:id:%s", id)

	var cached template.Template
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Error("template cache read failed", err)
	}
	if found {
		return &cached, nil
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, t, cacheTTL); err != nil {
		logger.Error("template cache write failed", err)
	}

	return t, nil
}

func listKey(templateType presskit.TemplateType) string {
	if templateType == "" {
		return "templates:all"
	}
	return fmt.Sprintf("templates:type:%s", templateType)
}
