package v1

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/domain"
	"github.com/taskhub/backend/internal/service"
	"github.com/taskhub/backend/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testToken = "session-token"

var registerValidator sync.Once

type testEnv struct {
	users      *mockUsers
	workspaces *mockWorkspaces
	projects   *mockProjects
	tasks      *mockTasks
	router     *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)
	registerValidator.Do(validator.RegisterGinValidator)

	env := &testEnv{
		users:      &mockUsers{},
		workspaces: &mockWorkspaces{},
		projects:   &mockProjects{},
		tasks:      &mockTasks{},
		router:     gin.New(),
	}

	h := NewHandler(&service.Services{
		Users:      env.users,
		Workspaces: env.workspaces,
		Projects:   env.projects,
		Tasks:      env.tasks,
	}, &config.Config{})
	h.Init(env.router.Group("/api"))

	t.Cleanup(func() {
		env.users.AssertExpectations(t)
		env.workspaces.AssertExpectations(t)
		env.projects.AssertExpectations(t)
		env.tasks.AssertExpectations(t)
	})

	return env
}

// signedIn makes testToken resolve to a verified user.
func (e *testEnv) signedIn() *domain.User {
	user := &domain.User{ID: uuid.New(), Email: "ann@example.com", Name: "Ann", IsEmailVerified: true}
	e.users.On("Authenticate", testToken).Return(user, nil)
	return user
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorStruct {
	t.Helper()

	var res ErrorStruct
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}
