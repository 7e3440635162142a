package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"presskit-backend/internal/domains/analytics"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) analytics.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Record(ctx context.Context, event *analytics.Event) error {
	query := `
		INSERT INTO analytics_events (id, presskit_id, event_type, user_agent, ip_address, referrer, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.PresskitID,
		event.EventType,
		event.UserAgent,
		event.IPAddress,
		event.Referrer,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record analytics event: %w", err)
	}

	return nil
}

func (r *postgresRepository) CountsByPresskit(ctx context.Context, presskitID uuid.UUID) (map[analytics.EventType]int, error) {
	query := `
		SELECT event_type, COUNT(*)
		FROM analytics_events
		WHERE presskit_id = $1
		GROUP BY event_type
	`

	rows, err := r.pool.Query(ctx, query, presskitID)
	if err != nil {
		return nil, fmt.Errorf("count analytics events: %w", err)
	}
	defer rows.Close()

	counts := make(map[analytics.EventType]int)
	for rows.Next() {
		var eventType analytics.EventType
		var count int
		if err := rows.Scan(&eventType, &count); err != nil {
			return nil, fmt.Errorf("scan analytics count: %w", err)
		}
		counts[eventType] = count
	}

	return counts, rows.Err()
}
