package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskhub/backend/internal/domain"
	"github.com/taskhub/backend/internal/repository"
	"github.com/taskhub/backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type projectService struct {
	workspaceRepository repository.Workspaces
	projectRepository   repository.Projects
	taskRepository      repository.Tasks
	userRepository      repository.Users
}

func newProjectService(workspaceRepository repository.Workspaces,
	projectRepository repository.Projects,
	taskRepository repository.Tasks,
	userRepository repository.Users,
) *projectService {
	return &projectService{
		workspaceRepository: workspaceRepository,
		projectRepository:   projectRepository,
		taskRepository:      taskRepository,
		userRepository:      userRepository,
	}
}

type ProjectMemberInput struct {
	UserID uuid.UUID
	Role   domain.ProjectRole
}

type CreateProjectInput struct {
	Title       string
	Description string
	Status      domain.ProjectStatus
	StartDate   time.Time
	DueDate     *time.Time
	// Tags is a comma separated list.
	Tags    string
	Members []ProjectMemberInput
}

func splitTags(tags string) domain.StringList {
	out := domain.StringList{}
	for _, tag := range strings.Split(tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func (s *projectService) Create(ctx context.Context, userID, workspaceID uuid.UUID, input CreateProjectInput) (*domain.Project, error) {
	workspace, err := s.workspaceRepository.GetByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("get workspace failed: %w", err)
	}

	if !workspace.HasMember(userID) {
		return nil, ErrNotWorkspaceMember
	}

	if input.DueDate != nil && input.DueDate.Before(input.StartDate) {
		return nil, ErrInvalidDateRange
	}

	status := input.Status
	if status == "" {
		status = domain.ProjectPlanning
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate project id failed: %w", err)
	}

	project := &domain.Project{
		ID:          id,
		WorkspaceID: workspace.ID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Status:      status,
		StartDate:   input.StartDate,
		DueDate:     input.DueDate,
		Tags:        splitTags(input.Tags),
		CreatedBy:   userID,
	}

	seen := make(map[uuid.UUID]struct{}, len(input.Members)+1)
	for _, m := range input.Members {
		if _, ok := seen[m.UserID]; ok {
			continue
		}
		if !workspace.HasMember(m.UserID) {
			return nil, ErrMemberNotInWorkspace
		}
		role := m.Role
		if role == "" {
			role = domain.ProjectRoleContributor
		}
		seen[m.UserID] = struct{}{}
		project.Members = append(project.Members, domain.ProjectMember{UserID: m.UserID, Role: role})
	}

	if _, ok := seen[userID]; !ok {
		project.Members = append(project.Members, domain.ProjectMember{UserID: userID, Role: domain.ProjectRoleManager})
	}

	if err := s.projectRepository.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project failed: %w", err)
	}

	created, err := s.projectRepository.GetByID(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("get created project failed: %w", err)
	}

	return created, nil
}

func (s *projectService) Get(ctx context.Context, userID, projectID uuid.UUID) (*domain.Project, error) {
	project, err := s.projectRepository.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project failed: %w", err)
	}

	if !project.HasMember(userID) {
		return nil, ErrNotProjectMember
	}

	return project, nil
}

// ListTasks also refreshes the stored project progress from the task statuses.
func (s *projectService) ListTasks(ctx context.Context, userID, projectID uuid.UUID) (*domain.Project, []*domain.Task, error) {
	project, err := s.Get(ctx, userID, projectID)
	if err != nil {
		return nil, nil, err
	}

	tasks, err := s.taskRepository.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list project tasks failed: %w", err)
	}

	if err := s.expandAssignees(ctx, tasks); err != nil {
		return nil, nil, err
	}

	if progress := domain.Progress(tasks); progress != project.Progress {
		project.Progress = progress
		if err := s.projectRepository.UpdateProgress(ctx, project.ID, progress); err != nil {
			logger.Warn("update project progress failed", zap.String("project_id", project.ID.String()), zap.Error(err))
		}
	}

	return project, tasks, nil
}

func (s *projectService) expandAssignees(ctx context.Context, tasks []*domain.Task) error {
	var ids []uuid.UUID
	seen := map[uuid.UUID]struct{}{}
	for _, t := range tasks {
		for _, id := range t.AssigneeIDs {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	if len(ids) == 0 {
		return nil
	}

	users, err := s.userRepository.GetManyByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("get assignees failed: %w", err)
	}

	byID := make(map[uuid.UUID]domain.UserSummary, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	for _, t := range tasks {
		t.Assignees = make([]domain.UserSummary, 0, len(t.AssigneeIDs))
		for _, id := range t.AssigneeIDs {
			if u, ok := byID[id]; ok {
				t.Assignees = append(t.Assignees, u)
			}
		}
	}

	return nil
}
