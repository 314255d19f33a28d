package domain

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskToDo       TaskStatus = "To Do"
	TaskInProgress TaskStatus = "In Progress"
	TaskDone       TaskStatus = "Done"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

type Task struct {
	ID          uuid.UUID    `db:"id" json:"id"`
	ProjectID   uuid.UUID    `db:"project_id" json:"project_id"`
	Title       string       `db:"title" json:"title"`
	Description string       `db:"description" json:"description"`
	Status      TaskStatus   `db:"status" json:"status"`
	Priority    TaskPriority `db:"priority" json:"priority"`
	DueDate     *time.Time   `db:"due_date" json:"due_date,omitempty"`
	CompletedAt *time.Time   `db:"completed_at" json:"completed_at,omitempty"`
	Tags        StringList   `db:"tags" json:"tags"`
	CreatedBy   uuid.UUID    `db:"created_by" json:"created_by"`
	IsArchived  bool         `db:"is_archived" json:"is_archived"`

	AssigneeIDs []uuid.UUID   `db:"-" json:"assignee_ids"`
	Assignees   []UserSummary `db:"-" json:"assignees,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Progress is the rounded percentage of done tasks.
func Progress(tasks []*Task) int {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Status == TaskDone {
			done++
		}
	}
	return (done*100 + len(tasks)/2) / len(tasks)
}
