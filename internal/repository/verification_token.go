package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/taskhub/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type verificationTokenRepository struct {
	db *sqlx.DB
}

func newVerificationTokenRepository(db *sqlx.DB) *verificationTokenRepository {
	return &verificationTokenRepository{
		db: db,
	}
}

func (r *verificationTokenRepository) Create(ctx context.Context, token *domain.VerificationToken) error {
	const op = "repository.verificationToken.Create"

	const query = `
    INSERT INTO verification_token (id, user_id, token, purpose, expires_at)
    VALUES (uuid_to_bin(:id), uuid_to_bin(:user_id), :token, :purpose, :expires_at)
    `

	res, err := r.db.NamedExecContext(ctx, query, token)
	if err != nil {
		return fmt.Errorf("%s: insert verification token failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows != 1 {
		return fmt.Errorf("%s: expected 1 row affected, got %d", op, rows)
	}

	return nil
}

// GetByUserAndToken matches on the exact token string; expiry and purpose are checked by the caller.
func (r *verificationTokenRepository) GetByUserAndToken(ctx context.Context, userID uuid.UUID, token string) (*domain.VerificationToken, error) {
	const op = "repository.verificationToken.GetByUserAndToken"

	const query = `
    SELECT id, user_id, token, purpose, expires_at, created_at
    FROM verification_token
    WHERE user_id = uuid_to_bin(?) AND token = ?
    LIMIT 1
    `

	var vt domain.VerificationToken
	if err := r.db.GetContext(ctx, &vt, query, userID, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select verification token failed: %w", op, err)
	}

	return &vt, nil
}

func (r *verificationTokenRepository) HasActive(ctx context.Context, userID uuid.UUID, purpose domain.TokenPurpose, now time.Time) (bool, error) {
	const op = "repository.verificationToken.HasActive"

	const query = `
    SELECT EXISTS (
        SELECT 1 FROM verification_token
        WHERE user_id = uuid_to_bin(?) AND purpose = ? AND expires_at > ?
    )
    `

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, purpose, now); err != nil {
		return false, fmt.Errorf("%s: select active token failed: %w", op, err)
	}

	return exists, nil
}

// ConsumeAndVerifyEmail deletes the token and marks its user verified in one transaction.
func (r *verificationTokenRepository) ConsumeAndVerifyEmail(ctx context.Context, tokenID, userID uuid.UUID) error {
	const query = `UPDATE user SET is_email_verified = TRUE WHERE id = uuid_to_bin(?)`

	return r.consume(ctx, "repository.verificationToken.ConsumeAndVerifyEmail", tokenID, query, userID)
}

// ConsumeAndSetPassword deletes the token and stores the new password hash in one transaction.
func (r *verificationTokenRepository) ConsumeAndSetPassword(ctx context.Context, tokenID, userID uuid.UUID, passwordHash string) error {
	const query = `UPDATE user SET password_hash = ? WHERE id = uuid_to_bin(?)`

	return r.consume(ctx, "repository.verificationToken.ConsumeAndSetPassword", tokenID, query, passwordHash, userID)
}

// consume rolls back the delete when the user update fails, so the token stays usable.
func (r *verificationTokenRepository) consume(ctx context.Context, op string, tokenID uuid.UUID, update string, args ...interface{}) error {
	const deleteToken = `DELETE FROM verification_token WHERE id = uuid_to_bin(?)`

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, deleteToken, tokenID)
		if err != nil {
			return fmt.Errorf("%s: delete verification token failed: %w", op, err)
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%s: get rows affected failed: %w", op, err)
		}

		// a concurrent consumer already deleted it
		if rows == 0 {
			return domain.ErrNoRowsAffected
		}

		res, err = tx.ExecContext(ctx, update, args...)
		if err != nil {
			return fmt.Errorf("%s: update user failed: %w", op, err)
		}

		rows, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%s: get rows affected failed: %w", op, err)
		}

		if rows == 0 {
			return domain.ErrNotFound
		}

		return nil
	})
}

func (r *verificationTokenRepository) DeleteByUserAndPurpose(ctx context.Context, userID uuid.UUID, purpose domain.TokenPurpose) (int64, error) {
	const op = "repository.verificationToken.DeleteByUserAndPurpose"

	const query = `DELETE FROM verification_token WHERE user_id = uuid_to_bin(?) AND purpose = ?`

	res, err := r.db.ExecContext(ctx, query, userID, purpose)
	if err != nil {
		return 0, fmt.Errorf("%s: delete verification tokens failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	return rows, nil
}
