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

type workspaceRepository struct {
	db *sqlx.DB
}

func newWorkspaceRepository(db *sqlx.DB) *workspaceRepository {
	return &workspaceRepository{
		db: db,
	}
}

// Create stores the workspace together with its initial member list.
func (r *workspaceRepository) Create(ctx context.Context, workspace *domain.Workspace) error {
	const op = "repository.workspace.Create"

	const insertWorkspace = `
    INSERT INTO workspace (id, name, description, color, owner_id)
    VALUES (uuid_to_bin(:id), :name, :description, :color, uuid_to_bin(:owner_id))
    `

	const insertMember = `
    INSERT INTO workspace_member (workspace_id, user_id, role, joined_at)
    VALUES (uuid_to_bin(:workspace_id), uuid_to_bin(:user_id), :role, :joined_at)
    `

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, insertWorkspace, workspace); err != nil {
			return fmt.Errorf("%s: insert workspace failed: %w", op, err)
		}

		for i := range workspace.Members {
			workspace.Members[i].WorkspaceID = workspace.ID
			if _, err := tx.NamedExecContext(ctx, insertMember, &workspace.Members[i]); err != nil {
				return fmt.Errorf("%s: insert workspace member failed: %w", op, err)
			}
		}

		return nil
	})
}

func (r *workspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	const op = "repository.workspace.GetByID"

	const query = `
    SELECT id, name, description, color, owner_id, created_at, updated_at
    FROM workspace
    WHERE id = uuid_to_bin(?)
    `

	var workspace domain.Workspace
	if err := r.db.GetContext(ctx, &workspace, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select workspace failed: %w", op, err)
	}

	workspaces := []*domain.Workspace{&workspace}
	if err := r.loadMembers(ctx, workspaces); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &workspace, nil
}

func (r *workspaceRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]*domain.Workspace, error) {
	const op = "repository.workspace.ListByMember"

	const query = `
    SELECT w.id, w.name, w.description, w.color, w.owner_id, w.created_at, w.updated_at
    FROM workspace w
    JOIN workspace_member m ON m.workspace_id = w.id
    WHERE m.user_id = uuid_to_bin(?)
    ORDER BY w.created_at DESC
    `

	var workspaces []*domain.Workspace
	if err := r.db.SelectContext(ctx, &workspaces, query, userID); err != nil {
		return nil, fmt.Errorf("%s: select workspaces failed: %w", op, err)
	}

	if err := r.loadMembers(ctx, workspaces); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return workspaces, nil
}

func (r *workspaceRepository) loadMembers(ctx context.Context, workspaces []*domain.Workspace) error {
	if len(workspaces) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*domain.Workspace, len(workspaces))
	ids := make([]uuid.UUID, 0, len(workspaces))
	for _, w := range workspaces {
		w.Members = []domain.WorkspaceMember{}
		byID[w.ID] = w
		ids = append(ids, w.ID)
	}

	query, args, err := sqlx.In(`
    SELECT m.workspace_id, m.user_id, m.role, m.joined_at, u.name, u.email, u.profile_picture
    FROM workspace_member m
    JOIN user u ON u.id = m.user_id
    WHERE m.workspace_id IN (?)
    ORDER BY m.joined_at
    `, binaryIDs(ids))
	if err != nil {
		return fmt.Errorf("build members query failed: %w", err)
	}

	var rows []struct {
		domain.WorkspaceMember
		Name           string  `db:"name"`
		Email          string  `db:"email"`
		ProfilePicture *string `db:"profile_picture"`
	}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("select workspace members failed: %w", err)
	}

	for _, row := range rows {
		member := row.WorkspaceMember
		member.User = &domain.UserSummary{
			ID:             member.UserID,
			Name:           row.Name,
			Email:          row.Email,
			ProfilePicture: row.ProfilePicture,
		}
		if w, ok := byID[member.WorkspaceID]; ok {
			w.Members = append(w.Members, member)
		}
	}

	return nil
}
