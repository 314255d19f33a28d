package repository

import (
	"context"
	"fmt"

	"github.com/taskhub/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type taskRepository struct {
	db *sqlx.DB
}

func newTaskRepository(db *sqlx.DB) *taskRepository {
	return &taskRepository{
		db: db,
	}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	const op = "repository.task.Create"

	const insertTask = `
    INSERT INTO task (id, project_id, title, description, status, priority, due_date, completed_at, tags, created_by)
    VALUES (uuid_to_bin(:id), uuid_to_bin(:project_id), :title, :description, :status, :priority, :due_date, :completed_at, :tags, uuid_to_bin(:created_by))
    `

	const insertAssignee = `INSERT INTO task_assignee (task_id, user_id) VALUES (uuid_to_bin(?), uuid_to_bin(?))`

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, insertTask, task); err != nil {
			return fmt.Errorf("%s: insert task failed: %w", op, err)
		}

		for _, userID := range task.AssigneeIDs {
			if _, err := tx.ExecContext(ctx, insertAssignee, task.ID, userID); err != nil {
				return fmt.Errorf("%s: insert task assignee failed: %w", op, err)
			}
		}

		return nil
	})
}

// ListByProject returns non-archived tasks ordered by due date, then by priority.
func (r *taskRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error) {
	const op = "repository.task.ListByProject"

	const query = `
    SELECT id, project_id, title, description, status, priority, due_date, completed_at, tags, created_by, is_archived, created_at, updated_at
    FROM task
    WHERE project_id = uuid_to_bin(?) AND is_archived = FALSE
    ORDER BY due_date IS NULL, due_date ASC, priority_rank DESC
    `

	tasks := []*domain.Task{}
	if err := r.db.SelectContext(ctx, &tasks, query, projectID); err != nil {
		return nil, fmt.Errorf("%s: select tasks failed: %w", op, err)
	}

	if len(tasks) == 0 {
		return tasks, nil
	}

	byID := make(map[uuid.UUID]*domain.Task, len(tasks))
	ids := make([]uuid.UUID, 0, len(tasks))
	for _, t := range tasks {
		t.AssigneeIDs = []uuid.UUID{}
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}

	query2, args, err := sqlx.In(`SELECT task_id, user_id FROM task_assignee WHERE task_id IN (?)`, binaryIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("%s: build assignees query failed: %w", op, err)
	}

	var assignees []struct {
		TaskID uuid.UUID `db:"task_id"`
		UserID uuid.UUID `db:"user_id"`
	}
	if err := r.db.SelectContext(ctx, &assignees, r.db.Rebind(query2), args...); err != nil {
		return nil, fmt.Errorf("%s: select task assignees failed: %w", op, err)
	}

	for _, a := range assignees {
		if t, ok := byID[a.TaskID]; ok {
			t.AssigneeIDs = append(t.AssigneeIDs, a.UserID)
		}
	}

	return tasks, nil
}
