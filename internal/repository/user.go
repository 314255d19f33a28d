package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/taskhub/backend/internal/db"
	"github.com/taskhub/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const userColumns = `id, email, name, profile_picture, is_email_verified, last_login_at, is_2fa_enabled, created_at, updated_at`

type userRepository struct {
	db *sqlx.DB
}

func newUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const op = "repository.user.Create"

	const query = `
	INSERT INTO user
	(id, email, name, password_hash, is_email_verified)
	VALUES(uuid_to_bin(?), ?, ?, ?, ?);
	`

	result, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.IsEmailVerified,
	)
	if err != nil {
		if db.IsDuplicateEntry(err) {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("%s: db insert user: %w", op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected failed: %w", op, err)
	}

	if rowsAffected == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM user WHERE id = uuid_to_bin(?);`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select from user by id failed: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM user WHERE email = ?;`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select from user by email failed: %w", err)
	}
	return &user, nil
}

// GetByEmailWithPassword is the only read that includes the credential.
func (r *userRepository) GetByEmailWithPassword(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + `, password_hash FROM user WHERE email = ?;`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select from user with password by email failed: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetManyByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.UserSummary, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT id, name, email, profile_picture FROM user WHERE id IN (?);`, binaryIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("build user summaries query failed: %w", err)
	}

	var users []domain.UserSummary
	if err := r.db.SelectContext(ctx, &users, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select user summaries failed: %w", err)
	}
	return users, nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	const query = `UPDATE user SET last_login_at = ? WHERE id = uuid_to_bin(?);`

	return r.execOne(ctx, "repository.user.UpdateLastLogin", query, at, id)
}

func (r *userRepository) execOne(ctx context.Context, op string, query string, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: update user failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}
