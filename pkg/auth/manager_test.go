package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, key string) *Manager {
	t.Helper()

	m, err := NewManager(config.JWTConfig{
		SigningKey:           key,
		EmailVerificationTTL: time.Hour,
		SessionTTL:           7 * 24 * time.Hour,
		ResetPasswordTTL:     15 * time.Minute,
	})
	require.NoError(t, err)

	return m
}

func TestNewManager_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewManager(config.JWTConfig{})
	assert.Error(t, err)

	_, err = NewManager(config.JWTConfig{SigningKey: "k", EmailVerificationTTL: time.Hour, SessionTTL: time.Hour})
	assert.Error(t, err, "zero reset ttl must be rejected")
}

func TestIssueAndParse(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, "super-secret")
	userID := uuid.New()

	for _, purpose := range []domain.TokenPurpose{
		domain.PurposeEmailVerification,
		domain.PurposeLogin,
		domain.PurposeResetPassword,
	} {
		tok, expiresAt, err := m.Issue(userID, purpose)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(m.TTL(purpose)), expiresAt, 2*time.Second)

		claims, err := m.Parse(tok)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID())
		assert.Equal(t, purpose, claims.Purpose)
		assert.NotEmpty(t, claims.ID)
	}
}

func TestIssue_UniquePerCall(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, "k")
	userID := uuid.New()

	a, _, err := m.Issue(userID, domain.PurposeResetPassword)
	require.NoError(t, err)
	b, _, err := m.Issue(userID, domain.PurposeResetPassword)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestIssue_DefaultTTLs(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, "k")

	assert.Equal(t, time.Hour, m.TTL(domain.PurposeEmailVerification))
	assert.Equal(t, 7*24*time.Hour, m.TTL(domain.PurposeLogin))
	assert.Equal(t, 15*time.Minute, m.TTL(domain.PurposeResetPassword))

	_, _, err := m.Issue(uuid.New(), domain.TokenPurpose("admin"))
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	issuedAt := time.Now().Add(-time.Hour)
	m := newTestManager(t, "k").WithClock(func() time.Time { return issuedAt })

	tok, _, err := m.Issue(uuid.New(), domain.PurposeResetPassword)
	require.NoError(t, err)

	m.WithClock(time.Now)

	_, err = m.Parse(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, _, err := newTestManager(t, "right-secret").Issue(uuid.New(), domain.PurposeLogin)
	require.NoError(t, err)

	_, err = newTestManager(t, "wrong-secret").Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Tampered(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, "k")
	tok, _, err := m.Issue(uuid.New(), domain.PurposeLogin)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}

	_, err = m.Parse(parts[0] + "." + parts[1] + "." + string(sig))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	_, err := newTestManager(t, "k").Parse("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_RejectsForeignClaims(t *testing.T) {
	t.Parallel()

	key := []byte("k")
	m := newTestManager(t, "k")

	cases := map[string]jwt.Claims{
		"no expiry": Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.NewString()},
			Purpose:          domain.PurposeLogin,
		},
		"unknown purpose": Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   uuid.NewString(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			Purpose: "admin",
		},
		"bad subject": Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "42",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			Purpose: domain.PurposeLogin,
		},
	}

	for name, claims := range cases {
		t.Run(name, func(t *testing.T) {
			tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
			require.NoError(t, err)

			_, err = m.Parse(tok)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestParse_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, "k")
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Purpose: domain.PurposeLogin,
	}

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = m.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
