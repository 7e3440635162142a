package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"presskit-backend/internal/domains/subscription"
	"presskit-backend/internal/domains/user"
)

const planColumns = `id, tier, name, monthly_price, presskit_limit, features, created_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) subscription.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) ListPlans(ctx context.Context) ([]subscription.Plan, error) {
	query := `SELECT ` + planColumns + `
		FROM subscription_plans
		ORDER BY monthly_price ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	plans := []subscription.Plan{}
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *p)
	}

	return plans, rows.Err()
}

func (r *postgresRepository) FindPlanByTier(ctx context.Context, tier user.SubscriptionStatus) (*subscription.Plan, error) {
	query := `SELECT ` + planColumns + `
		FROM subscription_plans
		WHERE tier = $1`

	p, err := scanPlan(r.pool.QueryRow(ctx, query, tier))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, subscription.ErrPlanNotFound
		}
		return nil, err
	}

	return p, nil
}

func scanPlan(row pgx.Row) (*subscription.Plan, error) {
	var p subscription.Plan

	err := row.Scan(
		&p.ID,
		&p.Tier,
		&p.Name,
		&p.MonthlyPrice,
		&p.PresskitLimit,
		&p.Features,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan plan: %w", err)
	}

	return &p, nil
}
