package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/elevatepath/elevatepath/internal/config"
	"github.com/elevatepath/elevatepath/internal/domain"
	"github.com/elevatepath/elevatepath/internal/repository"
)

const userColumns = `id, auth_id, email, name, industry, experience, bio, skills, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.AuthID, &u.Email, &u.Name, &u.Industry,
		&u.Experience, &u.Bio, &u.Skills, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, input repository.CreateUserInput) (*domain.User, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO users (auth_id, email, name)
		 VALUES ($1, $2, $3)
		 RETURNING `+userColumns,
		input.AuthID, input.Email, input.Name)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *Store) GetUserByAuthID(ctx context.Context, authID string) (*domain.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE auth_id = $1`, authID)
	u, err := scanUser(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by auth id: %w", err)
	}
	return u, nil
}

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// UpdateProfile writes the career profile and seeds an empty insight row for
// industries we have never analyzed, so the insight refresh flow always has a
// row to update.
func (s *Store) UpdateProfile(ctx context.Context, input repository.UpdateProfileInput) (*domain.User, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if input.Industry != "" {
		_, err = tx.Exec(ctx,
			`INSERT INTO industry_insights (industry, next_update)
			 VALUES ($1, $2)
			 ON CONFLICT (industry) DO NOTHING`,
			input.Industry, time.Now().Add(config.InsightRefreshPeriod))
		if err != nil {
			return nil, fmt.Errorf("seed industry insight: %w", err)
		}
	}

	skills := input.Skills
	if skills == nil {
		skills = []string{}
	}

	row := tx.QueryRow(ctx,
		`UPDATE users
		 SET industry = $2, experience = $3, bio = $4, skills = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING `+userColumns,
		input.UserID, input.Industry, input.Experience, input.Bio, skills)
	u, err := scanUser(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return u, nil
}
