package v1

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/taskhub/backend/internal/domain"
	"github.com/taskhub/backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWorkspace(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	user := env.signedIn()
	ws := &domain.Workspace{ID: uuid.New(), Name: "Acme", Color: domain.DefaultWorkspaceColor, OwnerID: user.ID}
	env.workspaces.On("Create", user.ID, service.CreateWorkspaceInput{Name: "Acme", Description: "team"}).Return(ws, nil)

	w := env.do(t, http.MethodPost, "/api/v1/workspaces", map[string]string{"name": "Acme", "description": "team"}, testToken)

	require.Equal(t, http.StatusCreated, w.Code)

	var res domain.Workspace
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, ws.ID, res.ID)
	assert.Equal(t, "#3B82F6", res.Color)
}

func TestCreateWorkspace_Validation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.signedIn()

	w := env.do(t, http.MethodPost, "/api/v1/workspaces", map[string]string{"name": "Acme", "color": "blue"}, testToken)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var res ValidationErrorStruct
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "color", res.Errors[0].FieldKey)
	assert.Equal(t, "Invalid hex color", res.Errors[0].ErrorMessage)
}

func TestCreateWorkspace_RequiresSession(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/workspaces", map[string]string{"name": "Acme"}, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListWorkspaces_EmptyIsArray(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	user := env.signedIn()
	env.workspaces.On("List", user.ID).Return(nil, nil)

	w := env.do(t, http.MethodGet, "/api/v1/workspaces", nil, testToken)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetWorkspace(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	user := env.signedIn()
	wsID := uuid.New()
	env.workspaces.On("Get", user.ID, wsID).Return(nil, service.ErrWorkspaceNotFound)

	w := env.do(t, http.MethodGet, "/api/v1/workspaces/"+wsID.String(), nil, testToken)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, ErrorCode(WorkspaceNotFoundCode), decodeError(t, w).ErrorCode)
}

func TestGetWorkspace_BadID(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.signedIn()

	w := env.do(t, http.MethodGet, "/api/v1/workspaces/42", nil, testToken)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrorCode(InvalidIDCode), decodeError(t, w).ErrorCode)
}

func TestListWorkspaceProjects(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	user := env.signedIn()
	ws := &domain.Workspace{ID: uuid.New(), Name: "Acme"}
	projects := []*domain.Project{{ID: uuid.New(), WorkspaceID: ws.ID, Title: "Launch"}}
	env.workspaces.On("ListProjects", user.ID, ws.ID).Return(ws, projects, nil)

	w := env.do(t, http.MethodGet, "/api/v1/workspaces/"+ws.ID.String()+"/projects", nil, testToken)

	require.Equal(t, http.StatusOK, w.Code)

	var res workspaceProjectsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, ws.ID, res.Workspace.ID)
	require.Len(t, res.Projects, 1)
	assert.Equal(t, "Launch", res.Projects[0].Title)
}
