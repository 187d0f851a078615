package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/example/task-tracker/config"
	domain "github.com/example/task-tracker/domain/task"
	"github.com/example/task-tracker/modules/activity"
	"github.com/example/task-tracker/modules/task"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSQLiteApp serves the real task module over an in-memory database.
func newSQLiteApp(t *testing.T) *fiber.App {
	t.Helper()

	log := &mockLogger{}
	taskModule := task.NewModule(config.Config{DBDriver: config.DriverSQLite, DBPath: ":memory:"}, log)
	require.NoError(t, taskModule.Start(context.Background()))
	t.Cleanup(func() { taskModule.Stop(context.Background()) })

	h := NewHandlers(taskModule.Service(), activity.NewModule(log), taskModule)
	return newApp(h, "*", log)
}

func listTasks(t *testing.T, app *fiber.App) []domain.Task {
	t.Helper()

	status, body := doRequest(t, app, http.MethodGet, "/api/task", "")
	require.Equal(t, http.StatusOK, status)

	var tasks []domain.Task
	require.NoError(t, json.Unmarshal([]byte(body), &tasks))
	return tasks
}

func createTask(t *testing.T, app *fiber.App, title, description string) domain.Task {
	t.Helper()

	body := fmt.Sprintf(`{"title":%q,"description":%q}`, title, description)
	status, _ := doRequest(t, app, http.MethodPost, "/api/task", body)
	require.Equal(t, http.StatusCreated, status)

	tasks := listTasks(t, app)
	require.NotEmpty(t, tasks)
	require.Equal(t, title, tasks[0].Title)
	return tasks[0]
}

func TestSQLite_EmptyStore(t *testing.T) {
	app := newSQLiteApp(t)

	status, body := doRequest(t, app, http.MethodGet, "/api/task", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "[]", body)
}

func TestSQLite_CreateIgnoresClientTimestamps(t *testing.T) {
	app := newSQLiteApp(t)

	status, _ := doRequest(t, app, http.MethodPost, "/api/task",
		`{"title":"Test","description":"testing","createdAt":"1999-01-01T00:00:00Z","status":"CONCLUDED"}`)
	require.Equal(t, http.StatusCreated, status)

	tasks := listTasks(t, app)
	require.Len(t, tasks, 1)
	assert.Equal(t, domain.StatusPending, tasks[0].Status)
	assert.NotEqual(t, 1999, tasks[0].CreatedAt.Year())
	assert.True(t, tasks[0].UpdatedAt.Equal(tasks[0].CreatedAt))
}

func TestSQLite_ListNewestFirst(t *testing.T) {
	app := newSQLiteApp(t)

	first := createTask(t, app, "Test Older", "first")
	second := createTask(t, app, "Test Newer", "second")

	tasks := listTasks(t, app)
	require.Len(t, tasks, 2)
	assert.Equal(t, second.ID, tasks[0].ID)
	assert.Equal(t, first.ID, tasks[1].ID)
}

func TestSQLite_ConcludeFlow(t *testing.T) {
	app := newSQLiteApp(t)
	created := createTask(t, app, "Conclude", "me")

	status, _ := doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/task/conclude/%d", created.ID), "")
	require.Equal(t, http.StatusOK, status)

	status, body := doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/task/%d", created.ID), "")
	require.Equal(t, http.StatusOK, status)

	var got domain.Task
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, domain.StatusConcluded, got.Status)
	assert.True(t, got.CreatedAt.Equal(created.CreatedAt))
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))

	status, body = doRequest(t, app, http.MethodPut, "/api/task/conclude/-1", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Task not found with ID: -1", body)

	status, _ = doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/task/conclude/%d", created.ID+100), "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSQLite_EditFlow(t *testing.T) {
	app := newSQLiteApp(t)
	created := createTask(t, app, "Test", "testing")
	path := fmt.Sprintf("/api/task/edit/%d", created.ID)

	status, _ := doRequest(t, app, http.MethodPut, path,
		`{"title":"Edit Test","description":"testing edit","createdAt":"1999-01-01T00:00:00Z"}`)
	require.Equal(t, http.StatusOK, status)

	tasks := listTasks(t, app)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Edit Test", tasks[0].Title)
	assert.Equal(t, "testing edit", tasks[0].Description)
	assert.Equal(t, domain.StatusPending, tasks[0].Status)
	assert.True(t, tasks[0].CreatedAt.Equal(created.CreatedAt))

	status, body := doRequest(t, app, http.MethodPut, path, `{"title":"","description":""}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Validation errors: Title may not be blank Description may not be blank", body)

	status, _ = doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/task/edit/%d", created.ID+100),
		`{"title":"t","description":"d"}`)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSQLite_DeleteFlow(t *testing.T) {
	app := newSQLiteApp(t)
	created := createTask(t, app, "Delete", "me")
	path := fmt.Sprintf("/api/task/%d", created.ID)

	status, _ := doRequest(t, app, http.MethodDelete, path, "")
	require.Equal(t, http.StatusNoContent, status)

	status, body := doRequest(t, app, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, fmt.Sprintf("Task not found with ID: %d", created.ID), body)

	status, _ = doRequest(t, app, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSQLite_Health(t *testing.T) {
	app := newSQLiteApp(t)

	status, body := doRequest(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"driver":"sqlite"`)
}
