package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"presskit-backend/internal/domains/presskit"
	"presskit-backend/internal/domains/template"
)

const templateColumns = `id, name, template_type, description, config_data, is_active, created_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) template.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) ListActive(ctx context.Context, templateType presskit.TemplateType) ([]template.Template, error) {
	query := `SELECT ` + templateColumns + `
		FROM templates
		WHERE is_active = TRUE`
	args := []interface{}{}

	if templateType != "" {
		query += ` AND template_type = $1`
		args = append(args, templateType)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	templates := []template.Template{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *t)
	}

	return templates, rows.Err()
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*template.Template, error) {
	query := `SELECT ` + templateColumns + `
		FROM templates
		WHERE id = $1 AND is_active = TRUE`

	t, err := scanTemplate(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, template.ErrTemplateNotFound
		}
		return nil, err
	}

	return t, nil
}

func scanTemplate(row pgx.Row) (*template.Template, error) {
	var t template.Template
	var config []byte

	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.TemplateType,
		&t.Description,
		&config,
		&t.IsActive,
		&t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan template: %w", err)
	}

	if len(config) > 0 {
		if err := json.Unmarshal(config, &t.ConfigData); err != nil {
			return nil, fmt.Errorf("unmarshal template config: %w", err)
		}
	}

	return &t, nil
}
