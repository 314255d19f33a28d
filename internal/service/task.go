package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskhub/backend/internal/domain"
	"github.com/taskhub/backend/internal/queue/task"
	"github.com/taskhub/backend/internal/repository"
	"github.com/taskhub/backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type taskService struct {
	projectRepository repository.Projects
	taskRepository    repository.Tasks
	userRepository    repository.Users
	queue             Enqueuer
	maxRetry          int
}

func newTaskService(projectRepository repository.Projects,
	taskRepository repository.Tasks,
	userRepository repository.Users,
	queue Enqueuer,
	maxRetry int,
) *taskService {
	return &taskService{
		projectRepository: projectRepository,
		taskRepository:    taskRepository,
		userRepository:    userRepository,
		queue:             queue,
		maxRetry:          maxRetry,
	}
}

type CreateTaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	DueDate     *time.Time
	Assignees   []uuid.UUID
}

func (s *taskService) Create(ctx context.Context, creator *domain.User, projectID uuid.UUID, input CreateTaskInput) (*domain.Task, error) {
	project, err := s.projectRepository.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project failed: %w", err)
	}

	if !project.HasMember(creator.ID) {
		return nil, ErrNotProjectMember
	}

	members := make(map[uuid.UUID]domain.ProjectMember, len(project.Members))
	for _, m := range project.Members {
		members[m.UserID] = m
	}

	assignees := make([]uuid.UUID, 0, len(input.Assignees))
	seen := map[uuid.UUID]struct{}{}
	for _, id := range input.Assignees {
		if _, ok := seen[id]; ok {
			continue
		}
		if _, ok := members[id]; !ok {
			return nil, ErrAssigneeNotMember
		}
		seen[id] = struct{}{}
		assignees = append(assignees, id)
	}

	status := input.Status
	if status == "" {
		status = domain.TaskToDo
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.TaskPriorityMedium
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate task id failed: %w", err)
	}

	now := time.Now()
	t := &domain.Task{
		ID:          id,
		ProjectID:   project.ID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     input.DueDate,
		Tags:        domain.StringList{},
		CreatedBy:   creator.ID,
		AssigneeIDs: assignees,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if status == domain.TaskDone {
		t.CompletedAt = &now
	}

	if err := s.taskRepository.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create task failed: %w", err)
	}

	t.Assignees, err = s.assigneeSummaries(ctx, members, assignees)
	if err != nil {
		return nil, err
	}

	s.notifyAssignees(ctx, creator, project, t)

	return t, nil
}

// assigneeSummaries prefers the summaries loaded with the project members and
// reads the rest from the user store.
func (s *taskService) assigneeSummaries(ctx context.Context, members map[uuid.UUID]domain.ProjectMember, ids []uuid.UUID) ([]domain.UserSummary, error) {
	var missing []uuid.UUID
	for _, id := range ids {
		if members[id].User == nil {
			missing = append(missing, id)
		}
	}

	loaded := map[uuid.UUID]domain.UserSummary{}
	if len(missing) > 0 {
		users, err := s.userRepository.GetManyByIDs(ctx, missing)
		if err != nil {
			return nil, fmt.Errorf("get assignees failed: %w", err)
		}
		for _, u := range users {
			loaded[u.ID] = u
		}
	}

	out := make([]domain.UserSummary, 0, len(ids))
	for _, id := range ids {
		if u := members[id].User; u != nil {
			out = append(out, *u)
		} else if u, ok := loaded[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

// notifyAssignees never fails the request; the worker retries delivery on its own.
func (s *taskService) notifyAssignees(ctx context.Context, creator *domain.User, project *domain.Project, t *domain.Task) {
	if s.queue == nil {
		return
	}

	var dueDate string
	if t.DueDate != nil {
		dueDate = t.DueDate.Format("Jan 2, 2006")
	}

	for _, assignee := range t.Assignees {
		if assignee.ID == creator.ID {
			continue
		}

		job, err := task.NewTaskAssignedEmailTask(task.TaskAssignedEmail{
			Email:        assignee.Email,
			Name:         assignee.Name,
			AssignedBy:   creator.Name,
			ProjectID:    project.ID,
			ProjectTitle: project.Title,
			TaskID:       t.ID,
			TaskTitle:    t.Title,
			Priority:     string(t.Priority),
			DueDate:      dueDate,
		}, s.maxRetry)
		if err != nil {
			logger.Error("build task assigned email task failed", zap.Error(err))
			continue
		}

		if _, err := s.queue.EnqueueContext(ctx, job); err != nil {
			logger.Error("enqueue task assigned email failed",
				zap.String("task_id", t.ID.String()),
				zap.String("assignee_id", assignee.ID.String()),
				zap.Error(err),
			)
		}
	}
}
