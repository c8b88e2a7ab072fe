// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taskboard/internal/api"
	"github.com/taibuivan/taskboard/internal/platform/config"
	"github.com/taibuivan/taskboard/internal/platform/middleware"
	"github.com/taibuivan/taskboard/internal/platform/sec"
	"github.com/taibuivan/taskboard/internal/project"
	"github.com/taibuivan/taskboard/internal/task"
	"github.com/taibuivan/taskboard/internal/users/account"
	"github.com/taibuivan/taskboard/internal/users/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestServer(t *testing.T, cfg *config.Config, deps api.HealthDependencies) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokens, err := sec.NewTokenService(testSecret, "taskboard.test")
	require.NoError(t, err)

	users := auth.NewMemoryUserRepository()
	authService := auth.NewService(users, tokens, nil, logger)
	taskService := task.NewService(task.NewMemoryRepository(), logger)
	projectService := project.NewService(project.NewMemoryRepository(), taskService, logger)

	liveness, readiness := api.NewHealthHandlers(deps, logger)

	server := api.NewServer(cfg, logger, api.Options{
		Gate: middleware.Authenticate(tokens, authService),
	}, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Account:   account.NewHandler(account.NewService(users, logger)),
		Project:   project.NewHandler(projectService),
		Task:      task.NewHandler(taskService),
	})
	return server.Handler()
}

func testConfig() *config.Config {
	return &config.Config{ServerPort: "0", CORSOrigins: []string{"http://localhost:5173"}}
}

type client struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func (c *client) do(method, path, body string, out any) int {
	c.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		request.Header.Set("Authorization", "Bearer "+c.token)
	}

	recorder := httptest.NewRecorder()
	c.handler.ServeHTTP(recorder, request)

	if out != nil {
		require.NoError(c.t, json.Unmarshal(recorder.Body.Bytes(), out), recorder.Body.String())
	}
	return recorder.Code
}

type session struct {
	User struct {
		ID string `json:"_id"`
	} `json:"user"`
	Token string `json:"token"`
}

// TestEndToEnd_TaskCompletion walks a new user from registration to a completed task.
func TestEndToEnd_TaskCompletion(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t, testConfig(), nil)}

	var registered session
	code := c.do(http.MethodPost, "/api/users/register",
		`{"name":"Alice","email":"alice@example.com","password":"secret1","country":"NZ"}`, &registered)
	require.Equal(t, http.StatusCreated, code)

	var loggedIn session
	code = c.do(http.MethodPost, "/api/users/login", `{"email":"alice@example.com","password":"secret1"}`, &loggedIn)
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, loggedIn.Token)
	c.token = loggedIn.Token

	var p project.Project
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/projects", `{"title":"P1"}`, &p))
	assert.Equal(t, registered.User.ID, p.Owner)

	var created task.Task
	code = c.do(http.MethodPost, "/api/tasks",
		`{"title":"T1","description":"first","project":"`+p.ID+`","assignedTo":"`+loggedIn.User.ID+`"}`, &created)
	require.Equal(t, http.StatusCreated, code)

	var updated task.Task
	require.Equal(t, http.StatusOK, c.do(http.MethodPatch, "/api/tasks/"+created.ID, `{"status":"completed"}`, &updated))

	var tasks []task.Task
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/projects/"+p.ID+"/tasks", "", &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, task.StatusCompleted, tasks[0].Status)
	assert.NotNil(t, tasks[0].CompletedAt)

	var profile map[string]any
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/users/profile", "", &profile))
	assert.Equal(t, "alice", profile["username"])
}

func TestGate_ProtectsResources(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t, testConfig(), nil)}

	var body map[string]any
	for _, path := range []string{"/api/projects", "/api/users/profile"} {
		require.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, path, "", &body), path)
		assert.Equal(t, "No token provided", body["error"])
	}

	c.token = "garbage"
	require.Equal(t, http.StatusUnauthorized, c.do(http.MethodPost, "/api/tasks", `{}`, &body))
	assert.Equal(t, "Please authenticate", body["error"])

	// Register and login stay open
	c.token = ""
	require.Equal(t, http.StatusUnauthorized, c.do(http.MethodPost, "/api/users/login", `{"email":"x@y.z","password":"nope12"}`, &body))
	assert.Equal(t, "Invalid credentials", body["error"])
}

func TestGate_TokenForDeletedUser(t *testing.T) {
	tokens, err := sec.NewTokenService(testSecret, "taskboard.test")
	require.NoError(t, err)
	token, err := tokens.Issue("0190a5f2-7c1e-7b3a-9d4e-0000000000ff", -time.Minute)
	require.NoError(t, err)

	// Expired tokens never reach the lookup
	c := &client{t: t, handler: newTestServer(t, testConfig(), nil), token: token}
	var body map[string]any
	require.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/projects", "", &body))
	assert.Equal(t, "Please authenticate", body["error"])

	token, err = tokens.Issue("0190a5f2-7c1e-7b3a-9d4e-0000000000ff", time.Hour)
	require.NoError(t, err)
	c.token = token
	require.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/projects", "", &body))
	assert.Equal(t, "User not found", body["error"])
}

func TestHealthEndpoints(t *testing.T) {
	healthy := newTestServer(t, testConfig(), api.HealthDependencies{
		"postgres": func(context.Context) error { return nil },
	})
	c := &client{t: t, handler: healthy}

	var body map[string]any
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/health", "", &body))
	assert.Equal(t, "ok", body["status"])

	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/ready", "", &body))
	assert.Equal(t, "ready", body["status"])

	degraded := newTestServer(t, testConfig(), api.HealthDependencies{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	})
	c = &client{t: t, handler: degraded}
	require.Equal(t, http.StatusServiceUnavailable, c.do(http.MethodGet, "/ready", "", &body))
	assert.Equal(t, "degraded", body["status"])
}

func TestNotFound(t *testing.T) {
	c := &client{t: t, handler: newTestServer(t, testConfig(), nil)}

	var body map[string]any
	require.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/nothing", "", &body))
	assert.Equal(t, "Route not found", body["error"])
}

func TestStaticFrontend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o600))

	cfg := testConfig()
	cfg.StaticDir = dir
	handler := newTestServer(t, cfg, nil)

	get := func(path string) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
		return recorder
	}

	recorder := get("/app.js")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "console.log(1)", recorder.Body.String())

	recorder = get("/projects/123")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "app")

	recorder = get("/api/unknown")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
