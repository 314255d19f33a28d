package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taskhub/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const projectColumns = `id, workspace_id, title, description, status, start_date, due_date, progress, tags, created_by, is_archived, created_at, updated_at`

type projectRepository struct {
	db *sqlx.DB
}

func newProjectRepository(db *sqlx.DB) *projectRepository {
	return &projectRepository{
		db: db,
	}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	const op = "repository.project.Create"

	const insertProject = `
    INSERT INTO project (id, workspace_id, title, description, status, start_date, due_date, progress, tags, created_by)
    VALUES (uuid_to_bin(:id), uuid_to_bin(:workspace_id), :title, :description, :status, :start_date, :due_date, :progress, :tags, uuid_to_bin(:created_by))
    `

	const insertMember = `
    INSERT INTO project_member (project_id, user_id, role)
    VALUES (uuid_to_bin(:project_id), uuid_to_bin(:user_id), :role)
    `

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, insertProject, project); err != nil {
			return fmt.Errorf("%s: insert project failed: %w", op, err)
		}

		for i := range project.Members {
			project.Members[i].ProjectID = project.ID
			if _, err := tx.NamedExecContext(ctx, insertMember, &project.Members[i]); err != nil {
				return fmt.Errorf("%s: insert project member failed: %w", op, err)
			}
		}

		return nil
	})
}

func (r *projectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	const op = "repository.project.GetByID"

	const query = `SELECT ` + projectColumns + ` FROM project WHERE id = uuid_to_bin(?)`

	var project domain.Project
	if err := r.db.GetContext(ctx, &project, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select project failed: %w", op, err)
	}

	const membersQuery = `
    SELECT m.project_id, m.user_id, m.role, u.name, u.email, u.profile_picture
    FROM project_member m
    JOIN user u ON u.id = m.user_id
    WHERE m.project_id = uuid_to_bin(?)
    `

	var rows []struct {
		domain.ProjectMember
		Name           string  `db:"name"`
		Email          string  `db:"email"`
		ProfilePicture *string `db:"profile_picture"`
	}
	if err := r.db.SelectContext(ctx, &rows, membersQuery, id); err != nil {
		return nil, fmt.Errorf("%s: select project members failed: %w", op, err)
	}

	project.Members = make([]domain.ProjectMember, 0, len(rows))
	for _, row := range rows {
		member := row.ProjectMember
		member.User = &domain.UserSummary{
			ID:             member.UserID,
			Name:           row.Name,
			Email:          row.Email,
			ProfilePicture: row.ProfilePicture,
		}
		project.Members = append(project.Members, member)
	}

	return &project, nil
}

// ListByWorkspace returns non-archived projects, newest first.
func (r *projectRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*domain.Project, error) {
	const op = "repository.project.ListByWorkspace"

	const query = `
    SELECT ` + projectColumns + `
    FROM project
    WHERE workspace_id = uuid_to_bin(?) AND is_archived = FALSE
    ORDER BY created_at DESC
    `

	projects := []*domain.Project{}
	if err := r.db.SelectContext(ctx, &projects, query, workspaceID); err != nil {
		return nil, fmt.Errorf("%s: select projects failed: %w", op, err)
	}

	return projects, nil
}

func (r *projectRepository) UpdateProgress(ctx context.Context, id uuid.UUID, progress int) error {
	const op = "repository.project.UpdateProgress"

	const query = `UPDATE project SET progress = ? WHERE id = uuid_to_bin(?)`

	if _, err := r.db.ExecContext(ctx, query, progress, id); err != nil {
		return fmt.Errorf("%s: update project progress failed: %w", op, err)
	}

	return nil
}
