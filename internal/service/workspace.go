package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskhub/backend/internal/domain"
	"github.com/taskhub/backend/internal/repository"

	"github.com/google/uuid"
)

type workspaceService struct {
	workspaceRepository repository.Workspaces
	projectRepository   repository.Projects
}

func newWorkspaceService(workspaceRepository repository.Workspaces, projectRepository repository.Projects) *workspaceService {
	return &workspaceService{
		workspaceRepository: workspaceRepository,
		projectRepository:   projectRepository,
	}
}

type CreateWorkspaceInput struct {
	Name        string
	Description string
	Color       string
}

func (s *workspaceService) Create(ctx context.Context, ownerID uuid.UUID, input CreateWorkspaceInput) (*domain.Workspace, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate workspace id failed: %w", err)
	}

	color := input.Color
	if color == "" {
		color = domain.DefaultWorkspaceColor
	}

	now := time.Now()
	workspace := &domain.Workspace{
		ID:          id,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Color:       color,
		OwnerID:     ownerID,
		Members: []domain.WorkspaceMember{{
			UserID:   ownerID,
			Role:     domain.WorkspaceRoleOwner,
			JoinedAt: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.workspaceRepository.Create(ctx, workspace); err != nil {
		return nil, fmt.Errorf("create workspace failed: %w", err)
	}

	return workspace, nil
}

func (s *workspaceService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Workspace, error) {
	workspaces, err := s.workspaceRepository.ListByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list workspaces failed: %w", err)
	}

	if workspaces == nil {
		workspaces = []*domain.Workspace{}
	}

	return workspaces, nil
}

// Get hides workspaces the caller does not belong to behind ErrWorkspaceNotFound.
func (s *workspaceService) Get(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.Workspace, error) {
	workspace, err := s.workspaceRepository.GetByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("get workspace failed: %w", err)
	}

	if !workspace.HasMember(userID) {
		return nil, ErrWorkspaceNotFound
	}

	return workspace, nil
}

func (s *workspaceService) ListProjects(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.Workspace, []*domain.Project, error) {
	workspace, err := s.Get(ctx, userID, workspaceID)
	if err != nil {
		return nil, nil, err
	}

	projects, err := s.projectRepository.ListByWorkspace(ctx, workspace.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list workspace projects failed: %w", err)
	}

	return workspace, projects, nil
}
