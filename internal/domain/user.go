package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	Email           string     `db:"email" json:"email"`
	Name            string     `db:"name" json:"name"`
	PasswordHash    string     `db:"password_hash" json:"-"`
	ProfilePicture  *string    `db:"profile_picture" json:"profile_picture,omitempty"`
	IsEmailVerified bool       `db:"is_email_verified" json:"is_email_verified"`
	LastLoginAt     *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
	Is2FAEnabled    bool       `db:"is_2fa_enabled" json:"is_2fa_enabled"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Sanitized returns a copy without the credential.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// UserSummary is the public projection used when expanding member lists.
type UserSummary struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Email          string    `db:"email" json:"email"`
	ProfilePicture *string   `db:"profile_picture" json:"profile_picture,omitempty"`
}
