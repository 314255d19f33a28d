package v1

import (
	"context"

	"github.com/taskhub/backend/internal/domain"
	"github.com/taskhub/backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) Register(ctx context.Context, input service.RegisterInput) error {
	return m.Called(input).Error(0)
}

func (m *mockUsers) VerifyEmail(ctx context.Context, token string) error {
	return m.Called(token).Error(0)
}

func (m *mockUsers) Login(ctx context.Context, input service.LoginInput) (*service.Session, error) {
	args := m.Called(input)
	session, _ := args.Get(0).(*service.Session)
	return session, args.Error(1)
}

func (m *mockUsers) RequestPasswordReset(ctx context.Context, email string) error {
	return m.Called(email).Error(0)
}

func (m *mockUsers) ResetPassword(ctx context.Context, input service.ResetPasswordInput) error {
	return m.Called(input).Error(0)
}

func (m *mockUsers) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(token)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUsers) GetMe(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	args := m.Called(userID)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

type mockWorkspaces struct {
	mock.Mock
}

func (m *mockWorkspaces) Create(ctx context.Context, ownerID uuid.UUID, input service.CreateWorkspaceInput) (*domain.Workspace, error) {
	args := m.Called(ownerID, input)
	ws, _ := args.Get(0).(*domain.Workspace)
	return ws, args.Error(1)
}

func (m *mockWorkspaces) List(ctx context.Context, userID uuid.UUID) ([]*domain.Workspace, error) {
	args := m.Called(userID)
	list, _ := args.Get(0).([]*domain.Workspace)
	return list, args.Error(1)
}

func (m *mockWorkspaces) Get(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.Workspace, error) {
	args := m.Called(userID, workspaceID)
	ws, _ := args.Get(0).(*domain.Workspace)
	return ws, args.Error(1)
}

func (m *mockWorkspaces) ListProjects(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.Workspace, []*domain.Project, error) {
	args := m.Called(userID, workspaceID)
	ws, _ := args.Get(0).(*domain.Workspace)
	projects, _ := args.Get(1).([]*domain.Project)
	return ws, projects, args.Error(2)
}

type mockProjects struct {
	mock.Mock
}

func (m *mockProjects) Create(ctx context.Context, userID, workspaceID uuid.UUID, input service.CreateProjectInput) (*domain.Project, error) {
	args := m.Called(userID, workspaceID, input)
	p, _ := args.Get(0).(*domain.Project)
	return p, args.Error(1)
}

func (m *mockProjects) Get(ctx context.Context, userID, projectID uuid.UUID) (*domain.Project, error) {
	args := m.Called(userID, projectID)
	p, _ := args.Get(0).(*domain.Project)
	return p, args.Error(1)
}

func (m *mockProjects) ListTasks(ctx context.Context, userID, projectID uuid.UUID) (*domain.Project, []*domain.Task, error) {
	args := m.Called(userID, projectID)
	p, _ := args.Get(0).(*domain.Project)
	tasks, _ := args.Get(1).([]*domain.Task)
	return p, tasks, args.Error(2)
}

type mockTasks struct {
	mock.Mock
}

func (m *mockTasks) Create(ctx context.Context, creator *domain.User, projectID uuid.UUID, input service.CreateTaskInput) (*domain.Task, error) {
	args := m.Called(creator.ID, projectID, input)
	t, _ := args.Get(0).(*domain.Task)
	return t, args.Error(1)
}
