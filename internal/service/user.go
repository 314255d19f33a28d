package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskhub/backend/internal/domain"
	"github.com/taskhub/backend/internal/repository"
	"github.com/taskhub/backend/internal/service/riskscreen"
	"github.com/taskhub/backend/pkg/auth"
	"github.com/taskhub/backend/pkg/hash"
	"github.com/taskhub/backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const minPasswordLength = 6

type userService struct {
	userRepository  repository.Users
	tokenRepository repository.VerificationTokens
	hasher          hash.PasswordHasher
	tokenManager    auth.TokenManager
	notifier        Notifier
	screener        riskscreen.Screener
	now             func() time.Time
}

func newUserService(userRepository repository.Users,
	tokenRepository repository.VerificationTokens,
	hasher hash.PasswordHasher,
	tokenManager auth.TokenManager,
	notifier Notifier,
	screener riskscreen.Screener,
) *userService {
	return &userService{
		userRepository:  userRepository,
		tokenRepository: tokenRepository,
		hasher:          hasher,
		tokenManager:    tokenManager,
		notifier:        notifier,
		screener:        screener,
		now:             time.Now,
	}
}

type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	IP        string
	UserAgent string
}

type LoginInput struct {
	Email    string
	Password string
}

type ResetPasswordInput struct {
	Token           string
	NewPassword     string
	ConfirmPassword string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) Register(ctx context.Context, input RegisterInput) error {
	email := normalizeEmail(input.Email)

	if s.screener != nil {
		decision, err := s.screener.Screen(ctx, riskscreen.Request{Email: email, IP: input.IP, UserAgent: input.UserAgent})
		if err != nil {
			return fmt.Errorf("risk screening failed: %w", err)
		}
		if decision.Denied {
			logger.Info("registration denied", zap.String("email", email), zap.String("reason", decision.Reason))
			return ErrRegistrationDenied
		}
	}

	if _, err := s.userRepository.GetByEmail(ctx, email); err == nil {
		return ErrUserAlreadyExist
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("get user by email failed: %w", err)
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return fmt.Errorf("hash password failed: %w", err)
	}

	userID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate user id failed: %w", err)
	}

	user := &domain.User{
		ID:           userID,
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: passwordHash,
	}

	if err := s.userRepository.Create(ctx, user); err != nil {
		// lost a concurrent registration race on the unique email index
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return ErrUserAlreadyExist
		}
		return fmt.Errorf("create user failed: %w", err)
	}

	token, err := s.issueToken(ctx, user.ID, domain.PurposeEmailVerification)
	if err != nil {
		return err
	}

	if err := s.notifier.SendVerificationEmail(LinkEmailInput{Email: user.Email, Name: user.Name, Token: token}); err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	return nil
}

func (s *userService) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.parse(token, domain.PurposeEmailVerification)
	if err != nil {
		return err
	}

	record, err := s.consumable(ctx, claims, token)
	if err != nil {
		return err
	}

	user, err := s.userRepository.GetByID(ctx, claims.UserID())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("get user by id failed: %w", err)
	}

	if user.IsEmailVerified {
		return ErrEmailAlreadyVerified
	}

	if err := s.tokenRepository.ConsumeAndVerifyEmail(ctx, record.ID, user.ID); err != nil {
		return consumeFailed("set email verified", err)
	}

	return nil
}

func (s *userService) Login(ctx context.Context, input LoginInput) (*Session, error) {
	user, err := s.userRepository.GetByEmailWithPassword(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user by email failed: %w", err)
	}

	if !user.IsEmailVerified {
		return nil, s.resendVerification(ctx, user)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		if errors.Is(err, hash.ErrMismatchedPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("compare password failed: %w", err)
	}

	token, expiresAt, err := s.tokenManager.Issue(user.ID, domain.PurposeLogin)
	if err != nil {
		return nil, fmt.Errorf("issue session token failed: %w", err)
	}

	now := s.now()
	if err := s.userRepository.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("update last login failed: %w", err)
	}
	user.LastLoginAt = &now

	return &Session{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.Sanitized(),
	}, nil
}

// resendVerification always returns an error: the login attempt is rejected either way.
func (s *userService) resendVerification(ctx context.Context, user *domain.User) error {
	active, err := s.tokenRepository.HasActive(ctx, user.ID, domain.PurposeEmailVerification, s.now())
	if err != nil {
		return fmt.Errorf("check active verification token failed: %w", err)
	}

	if active {
		return ErrEmailNotVerified
	}

	token, err := s.issueToken(ctx, user.ID, domain.PurposeEmailVerification)
	if err != nil {
		return err
	}

	if err := s.notifier.SendVerificationEmail(LinkEmailInput{Email: user.Email, Name: user.Name, Token: token}); err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	return ErrVerificationResent
}

func (s *userService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepository.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("get user by email failed: %w", err)
	}

	if !user.IsEmailVerified {
		return ErrEmailNotVerified
	}

	deleted, err := s.tokenRepository.DeleteByUserAndPurpose(ctx, user.ID, domain.PurposeResetPassword)
	if err != nil {
		return fmt.Errorf("invalidate reset tokens failed: %w", err)
	}
	if deleted > 0 {
		logger.Debug("previous reset tokens invalidated", zap.String("user_id", user.ID.String()), zap.Int64("count", deleted))
	}

	token, err := s.issueToken(ctx, user.ID, domain.PurposeResetPassword)
	if err != nil {
		return err
	}

	if err := s.notifier.SendPasswordResetEmail(LinkEmailInput{Email: user.Email, Name: user.Name, Token: token}); err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	return nil
}

func (s *userService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	if input.Token == "" || input.NewPassword == "" || input.ConfirmPassword == "" {
		return ErrMissingFields
	}

	claims, err := s.parse(input.Token, domain.PurposeResetPassword)
	if err != nil {
		return err
	}

	record, err := s.consumable(ctx, claims, input.Token)
	if err != nil {
		return err
	}

	if input.NewPassword != input.ConfirmPassword {
		return ErrPasswordsMismatch
	}

	if len(input.NewPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	user, err := s.userRepository.GetByID(ctx, claims.UserID())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("get user by id failed: %w", err)
	}

	passwordHash, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password failed: %w", err)
	}

	if err := s.tokenRepository.ConsumeAndSetPassword(ctx, record.ID, user.ID, passwordHash); err != nil {
		return consumeFailed("update password", err)
	}

	return nil
}

func (s *userService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.parse(token, domain.PurposeLogin)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepository.GetByID(ctx, claims.UserID())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id failed: %w", err)
	}

	return user, nil
}

func (s *userService) GetMe(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id failed: %w", err)
	}

	sanitized := user.Sanitized()
	return &sanitized, nil
}

func (s *userService) issueToken(ctx context.Context, userID uuid.UUID, purpose domain.TokenPurpose) (string, error) {
	token, expiresAt, err := s.tokenManager.Issue(userID, purpose)
	if err != nil {
		return "", fmt.Errorf("issue %s token failed: %w", purpose, err)
	}

	recordID, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate verification token id failed: %w", err)
	}

	if err := s.tokenRepository.Create(ctx, &domain.VerificationToken{
		ID:        recordID,
		UserID:    userID,
		Token:     token,
		Purpose:   purpose,
		ExpiresAt: expiresAt,
	}); err != nil {
		return "", fmt.Errorf("store %s token failed: %w", purpose, err)
	}

	return token, nil
}

func (s *userService) parse(token string, purpose domain.TokenPurpose) (*auth.Claims, error) {
	claims, err := s.tokenManager.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Purpose != purpose {
		return nil, ErrInvalidTokenPurpose
	}

	return claims, nil
}

// consumable is the store-side check run after the signature check passed.
func (s *userService) consumable(ctx context.Context, claims *auth.Claims, token string) (*domain.VerificationToken, error) {
	record, err := s.tokenRepository.GetByUserAndToken(ctx, claims.UserID(), token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("get verification token failed: %w", err)
	}

	if record.Purpose != claims.Purpose || record.Expired(s.now()) {
		return nil, ErrTokenNotFound
	}

	return record, nil
}

// consumeFailed maps a failed token consume; losing the delete to a concurrent consumer means the token is spent.
func consumeFailed(action string, err error) error {
	switch {
	case errors.Is(err, domain.ErrNoRowsAffected):
		return ErrTokenNotFound
	case errors.Is(err, domain.ErrNotFound):
		return ErrUserNotFound
	default:
		return fmt.Errorf("%s failed: %w", action, err)
	}
}
