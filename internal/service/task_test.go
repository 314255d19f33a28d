package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/taskhub/backend/internal/domain"
	"github.com/taskhub/backend/internal/queue/task"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) EnqueueContext(ctx context.Context, t *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, t)

	info, _ := args.Get(0).(*asynq.TaskInfo)
	return info, args.Error(1)
}

func newTaskProject(t *testing.T, projects *fakeProjects, creator, assignee *domain.User) *domain.Project {
	t.Helper()

	project := &domain.Project{
		ID:    mustUUID(t),
		Title: "Launch",
		Members: []domain.ProjectMember{
			{UserID: creator.ID, Role: domain.ProjectRoleManager, User: &domain.UserSummary{ID: creator.ID, Name: creator.Name, Email: creator.Email}},
			{UserID: assignee.ID, Role: domain.ProjectRoleContributor, User: &domain.UserSummary{ID: assignee.ID, Name: assignee.Name, Email: assignee.Email}},
		},
	}
	require.NoError(t, projects.Create(context.Background(), project))

	return project
}

func TestTaskService_Create_EnqueuesForOtherAssignees(t *testing.T) {
	projects, tasks, queue := &fakeProjects{}, &fakeTasks{}, &mockEnqueuer{}
	svc := newTaskService(projects, tasks, newFakeUsers(), queue, 3)

	creator := &domain.User{ID: mustUUID(t), Name: "Carol", Email: "c@x.com"}
	assignee := &domain.User{ID: mustUUID(t), Name: "Dave", Email: "d@x.com"}
	project := newTaskProject(t, projects, creator, assignee)

	queue.On("EnqueueContext", mock.Anything, mock.MatchedBy(func(job *asynq.Task) bool {
		var payload task.TaskAssignedEmail
		if err := json.Unmarshal(job.Payload(), &payload); err != nil {
			return false
		}
		return job.Type() == task.TaskAssignedEmailTaskName &&
			payload.Email == "d@x.com" &&
			payload.AssignedBy == "Carol" &&
			payload.ProjectTitle == "Launch"
	})).Return(&asynq.TaskInfo{}, nil).Once()

	due := time.Now().Add(24 * time.Hour)
	created, err := svc.Create(context.Background(), creator, project.ID, CreateTaskInput{
		Title:     " Ship it ",
		Priority:  domain.TaskPriorityHigh,
		DueDate:   &due,
		Assignees: []uuid.UUID{creator.ID, assignee.ID, assignee.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ship it", created.Title)
	assert.Equal(t, domain.TaskToDo, created.Status)
	assert.Len(t, created.AssigneeIDs, 2)
	assert.Len(t, created.Assignees, 2)
	assert.Nil(t, created.CompletedAt)
	require.Len(t, tasks.tasks, 1)

	queue.AssertExpectations(t)
}

func TestTaskService_Create_EnqueueFailureDoesNotFail(t *testing.T) {
	projects, queue := &fakeProjects{}, &mockEnqueuer{}
	svc := newTaskService(projects, &fakeTasks{}, newFakeUsers(), queue, 0)

	creator := &domain.User{ID: mustUUID(t), Name: "Carol"}
	assignee := &domain.User{ID: mustUUID(t), Name: "Dave", Email: "d@x.com"}
	project := newTaskProject(t, projects, creator, assignee)

	queue.On("EnqueueContext", mock.Anything, mock.Anything).Return(nil, errors.New("redis down")).Once()

	created, err := svc.Create(context.Background(), creator, project.ID, CreateTaskInput{
		Title:     "Ship it",
		Status:    domain.TaskDone,
		Assignees: []uuid.UUID{assignee.ID},
	})
	require.NoError(t, err)
	assert.NotNil(t, created.CompletedAt)
	assert.Equal(t, domain.TaskPriorityMedium, created.Priority)
	queue.AssertExpectations(t)
}

func TestTaskService_Create_Rejections(t *testing.T) {
	projects := &fakeProjects{}
	svc := newTaskService(projects, &fakeTasks{}, newFakeUsers(), nil, 0)
	ctx := context.Background()

	creator := &domain.User{ID: mustUUID(t)}
	assignee := &domain.User{ID: mustUUID(t)}
	project := newTaskProject(t, projects, creator, assignee)

	_, err := svc.Create(ctx, creator, uuid.New(), CreateTaskInput{Title: "x", Assignees: []uuid.UUID{creator.ID}})
	assert.ErrorIs(t, err, ErrProjectNotFound)

	_, err = svc.Create(ctx, &domain.User{ID: mustUUID(t)}, project.ID, CreateTaskInput{Title: "x", Assignees: []uuid.UUID{creator.ID}})
	assert.ErrorIs(t, err, ErrNotProjectMember)

	_, err = svc.Create(ctx, creator, project.ID, CreateTaskInput{Title: "x", Assignees: []uuid.UUID{uuid.New()}})
	assert.ErrorIs(t, err, ErrAssigneeNotMember)

	created, err := svc.Create(ctx, creator, project.ID, CreateTaskInput{Title: "x", Assignees: []uuid.UUID{assignee.ID}})
	require.NoError(t, err, "nil queue skips notifications")
	assert.Equal(t, project.ID, created.ProjectID)
}

func TestTaskService_Create_LoadsMissingSummaries(t *testing.T) {
	projects, users, queue := &fakeProjects{}, newFakeUsers(), &mockEnqueuer{}
	svc := newTaskService(projects, &fakeTasks{}, users, queue, 0)
	ctx := context.Background()

	creator := &domain.User{ID: mustUUID(t), Name: "Carol"}
	assignee := &domain.User{ID: mustUUID(t), Name: "Dave", Email: "d@x.com"}
	require.NoError(t, users.Create(ctx, assignee))

	project := &domain.Project{
		ID:    mustUUID(t),
		Title: "Launch",
		Members: []domain.ProjectMember{
			{UserID: creator.ID, Role: domain.ProjectRoleManager},
			{UserID: assignee.ID, Role: domain.ProjectRoleContributor},
		},
	}
	require.NoError(t, projects.Create(ctx, project))

	queue.On("EnqueueContext", mock.Anything, mock.Anything).Return(&asynq.TaskInfo{}, nil).Once()

	created, err := svc.Create(ctx, creator, project.ID, CreateTaskInput{Title: "x", Assignees: []uuid.UUID{assignee.ID}})
	require.NoError(t, err)
	require.Len(t, created.Assignees, 1)
	assert.Equal(t, "d@x.com", created.Assignees[0].Email)
	queue.AssertExpectations(t)
}
