package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"evolve-coach/internal/domain"
)

// UserRepository defines the persistence contract for users.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	ListByReminderFrequency(ctx context.Context, frequency string) ([]domain.User, error)
}

// PgUserRepository implements UserRepository using pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (id, email, display_name, password_hash, personality_profile, preferences, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	personality, err := json.Marshal(user.Personality)
	if err != nil {
		return err
	}
	preferences, err := json.Marshal(user.Preferences)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.DisplayName,
		user.PasswordHash,
		personality,
		preferences,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return err
}

func (r *PgUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	const query = `
		SELECT id, email, display_name, password_hash, personality_profile, preferences, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `
		SELECT id, email, display_name, password_hash, personality_profile, preferences, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *PgUserRepository) ListByReminderFrequency(ctx context.Context, frequency string) ([]domain.User, error) {
	const query = `
		SELECT id, email, display_name, password_hash, personality_profile, preferences, created_at, updated_at
		FROM users
		WHERE preferences->>'reminder_frequency' = $1
	`
	rows, err := r.pool.Query(ctx, query, frequency)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PgUserRepository) scanUser(row pgx.Row) (domain.User, error) {
	var (
		u           domain.User
		personality []byte
		preferences []byte
	)
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.DisplayName,
		&u.PasswordHash,
		&personality,
		&preferences,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}
	if err != nil {
		return domain.User{}, err
	}
	if len(personality) > 0 {
		if err := json.Unmarshal(personality, &u.Personality); err != nil {
			return domain.User{}, err
		}
	}
	if len(preferences) > 0 {
		if err := json.Unmarshal(preferences, &u.Preferences); err != nil {
			return domain.User{}, err
		}
	}
	return u, nil
}
