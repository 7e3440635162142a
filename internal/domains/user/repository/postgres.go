package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"presskit-backend/internal/domains/user"
)

// uniqueViolation is the PostgreSQL error code for duplicate keys.
const uniqueViolation = "23505"

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) user.Repository {
	return &postgresRepository{pool: pool}
}

// ========================================
// AUTH IDENTITY
// ========================================

func (r *postgresRepository) CreateUser(ctx context.Context, u *user.AuthUser) error {
	query := `
		INSERT INTO users (id, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		u.ID,
		u.Email,
		u.PasswordHash,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return user.ErrEmailAlreadyExists
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindUserByEmail(ctx context.Context, email string) (*user.AuthUser, error) {
	query := `
		SELECT id, email, password_hash, last_login_at, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var u user.AuthUser
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.LastLoginAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	return &u, nil
}

func (r *postgresRepository) FindUserByID(ctx context.Context, id uuid.UUID) (*user.AuthUser, error) {
	query := `
		SELECT id, email, password_hash, last_login_at, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var u user.AuthUser
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.LastLoginAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}

	return &u, nil
}

func (r *postgresRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET last_login_at = NOW(), updated_at = NOW() WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// ========================================
// ARTIST PROFILE
// ========================================

const profileColumns = `
	id, auth_user_id, email, artist_name, full_name, avatar_url, bio,
	subscription_status, presskit_limit, social_media,
	contact_email, phone, location, created_at, updated_at
`

func (r *postgresRepository) CreateProfile(ctx context.Context, p *user.UserProfile) error {
	social, err := marshalSocial(p.SocialMedia)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO user_profiles (
			id, auth_user_id, email, artist_name, full_name, avatar_url, bio,
			subscription_status, presskit_limit, social_media,
			contact_email, phone, location, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err = r.pool.Exec(ctx, query,
		p.ID,
		p.AuthUserID,
		p.Email,
		p.ArtistName,
		p.FullName,
		p.AvatarURL,
		p.Bio,
		p.Subscription,
		p.PresskitLimit,
		social,
		p.ContactEmail,
		p.Phone,
		p.Location,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return user.ErrEmailAlreadyExists
		}
		return fmt.Errorf("create profile: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindProfileByAuthID(ctx context.Context, authUserID uuid.UUID) (*user.UserProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE auth_user_id = $1`

	return r.scanProfile(r.pool.QueryRow(ctx, query, authUserID))
}

// UpdateProfile builds the SET list from the non-nil patch fields so a
// partial update never clobbers untouched columns.
func (r *postgresRepository) UpdateProfile(ctx context.Context, authUserID uuid.UUID, req user.UpdateProfileRequest) (*user.UserProfile, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{authUserID}

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(column), len(args)))
	}

	if req.ArtistName != nil {
		addSet("artist_name", *req.ArtistName)
	}
	if req.FullName != nil {
		addSet("full_name", *req.FullName)
	}
	if req.Bio != nil {
		addSet("bio", *req.Bio)
	}
	if req.AvatarURL != nil {
		addSet("avatar_url", *req.AvatarURL)
	}
	if req.ContactEmail != nil {
		addSet("contact_email", *req.ContactEmail)
	}
	if req.Phone != nil {
		addSet("phone", *req.Phone)
	}
	if req.Location != nil {
		addSet("location", *req.Location)
	}
	if req.SocialMedia != nil {
		social, err := marshalSocial(req.SocialMedia)
		if err != nil {
			return nil, err
		}
		addSet("social_media", social)
	}

	query := fmt.Sprintf(
		`UPDATE user_profiles SET %s WHERE auth_user_id = $1 RETURNING %s`,
		strings.Join(setClauses, ", "),
		profileColumns,
	)

	return r.scanProfile(r.pool.QueryRow(ctx, query, args...))
}

func (r *postgresRepository) DeleteProfile(ctx context.Context, authUserID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM user_profiles WHERE auth_user_id = $1`, authUserID)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrProfileNotFound
	}
	return nil
}

// ========================================
// HELPERS
// ========================================

func (r *postgresRepository) scanProfile(row pgx.Row) (*user.UserProfile, error) {
	var p user.UserProfile
	var social []byte
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&p.ID,
		&p.AuthUserID,
		&p.Email,
		&p.ArtistName,
		&p.FullName,
		&p.AvatarURL,
		&p.Bio,
		&p.Subscription,
		&p.PresskitLimit,
		&social,
		&p.ContactEmail,
		&p.Phone,
		&p.Location,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrProfileNotFound
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}

	p.CreatedAt = createdAt
	p.UpdatedAt = updatedAt

	if len(social) > 0 {
		if err := json.Unmarshal(social, &p.SocialMedia); err != nil {
			return nil, fmt.Errorf("unmarshal social media: %w", err)
		}
	}

	return &p, nil
}

func marshalSocial(social map[string]string) ([]byte, error) {
	if social == nil {
		return nil, nil
	}
	data, err := json.Marshal(social)
	if err != nil {
		return nil, fmt.Errorf("marshal social media: %w", err)
	}
	return data, nil
}
