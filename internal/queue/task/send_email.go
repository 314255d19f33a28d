package task

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	SendEmailQueueName = "sendEmailQueue"

	TaskAssignedEmailTaskName = "taskAssignedEmailTask"
)

// TaskAssignedEmail tells an assignee about a task someone else gave them.
type TaskAssignedEmail struct {
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	AssignedBy   string    `json:"assigned_by"`
	ProjectID    uuid.UUID `json:"project_id"`
	ProjectTitle string    `json:"project_title"`
	TaskID       uuid.UUID `json:"task_id"`
	TaskTitle    string    `json:"task_title"`
	Priority     string    `json:"priority"`
	DueDate      string    `json:"due_date,omitempty"`
}

func NewTaskAssignedEmailTask(data TaskAssignedEmail, maxRetry int) (*asynq.Task, error) {
	if maxRetry <= 0 {
		maxRetry = 5
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		TaskAssignedEmailTaskName,
		payload,
		asynq.MaxRetry(maxRetry),
		asynq.Queue(SendEmailQueueName),
		// one email per task and assignee even if the request is retried
		asynq.TaskID(data.TaskID.String()+":"+data.Email),
	), nil
}
