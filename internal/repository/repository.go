package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/taskhub/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Users              Users
	VerificationTokens VerificationTokens
	Workspaces         Workspaces
	Projects           Projects
	Tasks              Tasks
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Users:              newUserRepository(db),
		VerificationTokens: newVerificationTokenRepository(db),
		Workspaces:         newWorkspaceRepository(db),
		Projects:           newProjectRepository(db),
		Tasks:              newTaskRepository(db),
	}
}

// Users is the credential store.
type Users interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByEmailWithPassword(ctx context.Context, email string) (*domain.User, error)
	GetManyByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.UserSummary, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// VerificationTokens stores single-use purpose-tagged tokens.
type VerificationTokens interface {
	Create(ctx context.Context, token *domain.VerificationToken) error
	GetByUserAndToken(ctx context.Context, userID uuid.UUID, token string) (*domain.VerificationToken, error)
	HasActive(ctx context.Context, userID uuid.UUID, purpose domain.TokenPurpose, now time.Time) (bool, error)
	ConsumeAndVerifyEmail(ctx context.Context, tokenID, userID uuid.UUID) error
	ConsumeAndSetPassword(ctx context.Context, tokenID, userID uuid.UUID, passwordHash string) error
	DeleteByUserAndPurpose(ctx context.Context, userID uuid.UUID, purpose domain.TokenPurpose) (int64, error)
}

type Workspaces interface {
	Create(ctx context.Context, workspace *domain.Workspace) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error)
	ListByMember(ctx context.Context, userID uuid.UUID) ([]*domain.Workspace, error)
}

type Projects interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*domain.Project, error)
	UpdateProgress(ctx context.Context, id uuid.UUID, progress int) error
}

type Tasks interface {
	Create(ctx context.Context, task *domain.Task) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error)
}

func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx failed: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx failed: %w", err)
	}

	return nil
}

// binaryIDs converts ids for sqlx.In expansion against BINARY(16) columns.
func binaryIDs(ids []uuid.UUID) [][]byte {
	out := make([][]byte, len(ids))
	for i, id := range ids {
		b := id
		out[i] = b[:]
	}
	return out
}
