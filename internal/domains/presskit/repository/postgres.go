package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"presskit-backend/internal/domains/presskit"
)

const uniqueViolation = "23505"

const presskitColumns = `
	id, user_id, title, artist_name, template_type, status, is_public,
	public_slug, content_data, view_count, download_count,
	created_at, updated_at, published_at
`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) presskit.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, p *presskit.Presskit) error {
	content, err := json.Marshal(p.ContentData)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}

	query := `
		INSERT INTO presskits (
			id, user_id, title, artist_name, template_type, status, is_public,
			public_slug, content_data, view_count, download_count,
			created_at, updated_at, published_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = r.pool.Exec(ctx, query,
		p.ID,
		p.UserID,
		p.Title,
		p.ArtistName,
		p.TemplateType,
		p.Status,
		p.IsPublic,
		p.PublicSlug,
		content,
		p.ViewCount,
		p.DownloadCount,
		p.CreatedAt,
		p.UpdatedAt,
		p.PublishedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return presskit.ErrSlugTaken
		}
		return fmt.Errorf("create presskit: %w", err)
	}

	return nil
}

func (r *postgresRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]presskit.Presskit, error) {
	query := `SELECT ` + presskitColumns + `
		FROM presskits
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list presskits: %w", err)
	}
	defer rows.Close()

	presskits := []presskit.Presskit{}
	for rows.Next() {
		p, err := scanPresskit(rows)
		if err != nil {
			return nil, err
		}
		presskits = append(presskits, *p)
	}

	return presskits, rows.Err()
}

func (r *postgresRepository) FindByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (*presskit.Presskit, error) {
	query := `SELECT ` + presskitColumns + `
		FROM presskits
		WHERE id = $1 AND user_id = $2`

	return scanPresskitRow(r.pool.QueryRow(ctx, query, id, ownerID))
}

func (r *postgresRepository) Update(ctx context.Context, id, ownerID uuid.UUID, req presskit.UpdateRequest) (*presskit.Presskit, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{id, ownerID}

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(column), len(args)))
	}

	if req.Title != nil {
		addSet("title", *req.Title)
	}
	if req.ArtistName != nil {
		addSet("artist_name", *req.ArtistName)
	}
	if req.TemplateType != nil {
		addSet("template_type", *req.TemplateType)
	}
	if req.ContentData != nil {
		content, err := json.Marshal(req.ContentData)
		if err != nil {
			return nil, fmt.Errorf("marshal content: %w", err)
		}
		addSet("content_data", content)
	}

	query := fmt.Sprintf(
		`UPDATE presskits SET %s WHERE id = $1 AND user_id = $2 RETURNING %s`,
		strings.Join(setClauses, ", "),
		presskitColumns,
	)

	return scanPresskitRow(r.pool.QueryRow(ctx, query, args...))
}

// Publish flips the row public. COALESCE keeps an already-assigned
// slug and published_at stable across republishes.
func (r *postgresRepository) Publish(ctx context.Context, id, ownerID uuid.UUID, slug string) (*presskit.Presskit, error) {
	query := `
		UPDATE presskits
		SET status = 'published',
			is_public = TRUE,
			public_slug = COALESCE(public_slug, $3),
			published_at = COALESCE(published_at, NOW()),
			updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + presskitColumns

	p, err := scanPresskitRow(r.pool.QueryRow(ctx, query, id, ownerID, slug))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, presskit.ErrSlugTaken
		}
		return nil, err
	}

	return p, nil
}

func (r *postgresRepository) Archive(ctx context.Context, id, ownerID uuid.UUID) (*presskit.Presskit, error) {
	query := `
		UPDATE presskits
		SET status = 'archived', is_public = FALSE, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + presskitColumns

	return scanPresskitRow(r.pool.QueryRow(ctx, query, id, ownerID))
}

func (r *postgresRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM presskits WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete presskit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return presskit.ErrPresskitNotFound
	}
	return nil
}

// FindPublicBySlug enforces the visibility invariant in the query
// itself: drafts and archived rows can never leak through this path.
func (r *postgresRepository) FindPublicBySlug(ctx context.Context, slug string) (*presskit.Presskit, error) {
	query := `SELECT ` + presskitColumns + `
		FROM presskits
		WHERE public_slug = $1 AND is_public = TRUE AND status = 'published'`

	return scanPresskitRow(r.pool.QueryRow(ctx, query, slug))
}

func (r *postgresRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `UPDATE presskits SET view_count = view_count + 1 WHERE id = $1`, id); err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}
	return nil
}

func (r *postgresRepository) IncrementDownloadCount(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `UPDATE presskits SET download_count = download_count + 1 WHERE id = $1`, id); err != nil {
		return fmt.Errorf("increment download count: %w", err)
	}
	return nil
}

func (r *postgresRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM presskits WHERE user_id = $1`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count presskits: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM presskits WHERE public_slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slug exists: %w", err)
	}
	return exists, nil
}

// ========================================
// SCANNING
// ========================================

func scanPresskitRow(row pgx.Row) (*presskit.Presskit, error) {
	p, err := scanPresskit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, presskit.ErrPresskitNotFound
		}
		return nil, err
	}
	return p, nil
}

func scanPresskit(row pgx.Row) (*presskit.Presskit, error) {
	var p presskit.Presskit
	var content []byte

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Title,
		&p.ArtistName,
		&p.TemplateType,
		&p.Status,
		&p.IsPublic,
		&p.PublicSlug,
		&content,
		&p.ViewCount,
		&p.DownloadCount,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.PublishedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan presskit: %w", err)
	}

	if len(content) > 0 {
		if err := json.Unmarshal(content, &p.ContentData); err != nil {
			return nil, fmt.Errorf("unmarshal content: %w", err)
		}
	}

	return &p, nil
}
