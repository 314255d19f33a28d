package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/taskhub/backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newWorkspaceRepository(db)

	ownerID := uuid.New()
	ws := &domain.Workspace{
		ID:      uuid.New(),
		Name:    "Team",
		Color:   domain.DefaultWorkspaceColor,
		OwnerID: ownerID,
		Members: []domain.WorkspaceMember{{UserID: ownerID, Role: domain.WorkspaceRoleOwner, JoinedAt: time.Now()}},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO workspace (")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO workspace_member")).
		WithArgs(ws.ID, ownerID, domain.WorkspaceRoleOwner, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), ws))
	assert.Equal(t, ws.ID, ws.Members[0].WorkspaceID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceRepository_Create_RollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newWorkspaceRepository(db)

	ownerID := uuid.New()
	ws := &domain.Workspace{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Members: []domain.WorkspaceMember{{UserID: ownerID, Role: domain.WorkspaceRoleOwner}},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO workspace (")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO workspace_member")).
		WillReturnError(errors.New("fk violation"))
	mock.ExpectRollback()

	require.Error(t, repo.Create(context.Background(), ws))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newWorkspaceRepository(db)

	id, ownerID := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM workspace")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "color", "owner_id", "created_at", "updated_at"}).
			AddRow(id[:], "Team", "", "#3B82F6", ownerID[:], now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM workspace_member m")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"workspace_id", "user_id", "role", "joined_at", "name", "email", "profile_picture"}).
			AddRow(id[:], ownerID[:], "owner", now, "Owner", "o@b.co", nil))

	ws, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, ws.Members, 1)
	assert.True(t, ws.HasMember(ownerID))
	assert.Equal(t, "Owner", ws.Members[0].User.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newWorkspaceRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM workspace")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWorkspaceRepository_ListByMember_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newWorkspaceRepository(db)

	userID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("JOIN workspace_member m")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "color", "owner_id", "created_at", "updated_at"}))

	list, err := repo.ListByMember(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, list)
	require.NoError(t, mock.ExpectationsWereMet())
}
