package service

import (
	"context"
	"time"

	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/domain"
	"github.com/taskhub/backend/internal/repository"
	"github.com/taskhub/backend/internal/service/riskscreen"
	"github.com/taskhub/backend/pkg/auth"
	"github.com/taskhub/backend/pkg/hash"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type Services struct {
	Users      Users
	Workspaces Workspaces
	Projects   Projects
	Tasks      Tasks
}

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type Deps struct {
	Config       *config.Config
	Hasher       hash.PasswordHasher
	TokenManager auth.TokenManager
	Repos        *repository.Repositories
	Notifier     Notifier
	Screener     riskscreen.Screener
	Queue        Enqueuer
}

func NewServices(deps Deps) *Services {
	return &Services{
		Users: newUserService(deps.Repos.Users,
			deps.Repos.VerificationTokens,
			deps.Hasher,
			deps.TokenManager,
			deps.Notifier,
			deps.Screener,
		),
		Workspaces: newWorkspaceService(deps.Repos.Workspaces, deps.Repos.Projects),
		Projects:   newProjectService(deps.Repos.Workspaces, deps.Repos.Projects, deps.Repos.Tasks, deps.Repos.Users),
		Tasks:      newTaskService(deps.Repos.Projects, deps.Repos.Tasks, deps.Repos.Users, deps.Queue, deps.Config.Queue.MaxRetry),
	}
}

type Users interface {
	Register(ctx context.Context, input RegisterInput) error
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, input LoginInput) (*Session, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, input ResetPasswordInput) error
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	GetMe(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

type Workspaces interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CreateWorkspaceInput) (*domain.Workspace, error)
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Workspace, error)
	Get(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.Workspace, error)
	ListProjects(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.Workspace, []*domain.Project, error)
}

type Projects interface {
	Create(ctx context.Context, userID, workspaceID uuid.UUID, input CreateProjectInput) (*domain.Project, error)
	Get(ctx context.Context, userID, projectID uuid.UUID) (*domain.Project, error)
	ListTasks(ctx context.Context, userID, projectID uuid.UUID) (*domain.Project, []*domain.Task, error)
}

type Tasks interface {
	Create(ctx context.Context, creator *domain.User, projectID uuid.UUID, input CreateTaskInput) (*domain.Task, error)
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	User      domain.User
}
