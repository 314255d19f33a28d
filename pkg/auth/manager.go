package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token is expired")
)

// TokenManager issues and verifies purpose-tagged signed tokens.
type TokenManager interface {
	Issue(userID uuid.UUID, purpose domain.TokenPurpose) (string, time.Time, error)
	Parse(token string) (*Claims, error)
}

type Claims struct {
	jwt.RegisteredClaims
	Purpose domain.TokenPurpose `json:"purpose"`
}

// UserID returns the subject as a uuid. Only valid on claims returned by Parse.
func (c *Claims) UserID() uuid.UUID {
	id, _ := uuid.Parse(c.Subject)
	return id
}

type Manager struct {
	signingKey []byte
	ttl        map[domain.TokenPurpose]time.Duration
	now        func() time.Time
}

func NewManager(cfg config.JWTConfig) (*Manager, error) {
	if cfg.SigningKey == "" {
		return nil, errors.New("empty signing key")
	}

	ttl := map[domain.TokenPurpose]time.Duration{
		domain.PurposeEmailVerification: cfg.EmailVerificationTTL,
		domain.PurposeLogin:             cfg.SessionTTL,
		domain.PurposeResetPassword:     cfg.ResetPasswordTTL,
	}
	for purpose, d := range ttl {
		if d <= 0 {
			return nil, fmt.Errorf("empty %s token ttl", purpose)
		}
	}

	return &Manager{
		signingKey: []byte(cfg.SigningKey),
		ttl:        ttl,
		now:        time.Now,
	}, nil
}

// WithClock replaces the time source, used by tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

func (m *Manager) TTL(purpose domain.TokenPurpose) time.Duration {
	return m.ttl[purpose]
}

func (m *Manager) Issue(userID uuid.UUID, purpose domain.TokenPurpose) (string, time.Time, error) {
	ttl, ok := m.ttl[purpose]
	if !ok {
		return "", time.Time{}, fmt.Errorf("unknown token purpose %q", purpose)
	}

	jti, err := uuid.NewV7()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate token id failed: %w", err)
	}

	now := m.now()
	expiresAt := now.Add(ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti.String(),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Purpose: purpose,
	})

	signed, err := token.SignedString(m.signingKey)
	if err != nil {
		return "", time.Time{}, errors.New("sign jwt failed")
	}

	return signed, expiresAt, nil
}

func (m *Manager) Parse(token string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return m.signingKey, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}

	if !claims.Purpose.Valid() {
		return nil, fmt.Errorf("%w: unknown purpose", ErrInvalidToken)
	}

	return claims, nil
}
