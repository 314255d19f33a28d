package domain

import (
	"time"

	"github.com/google/uuid"
)

// TokenPurpose tags every signed token and every stored verification record.
type TokenPurpose string

const (
	PurposeEmailVerification TokenPurpose = "email-verification"
	PurposeLogin             TokenPurpose = "login"
	PurposeResetPassword     TokenPurpose = "reset-password"
)

func (p TokenPurpose) Valid() bool {
	switch p {
	case PurposeEmailVerification, PurposeLogin, PurposeResetPassword:
		return true
	}
	return false
}

func (p TokenPurpose) String() string {
	return string(p)
}

type VerificationToken struct {
	ID        uuid.UUID    `db:"id"`
	UserID    uuid.UUID    `db:"user_id"`
	Token     string       `db:"token"`
	Purpose   TokenPurpose `db:"purpose"`
	ExpiresAt time.Time    `db:"expires_at"`
	CreatedAt time.Time    `db:"created_at"`
}

// Expired reports whether the record can no longer be consumed at now.
func (t *VerificationToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
