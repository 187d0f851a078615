package api

import (
	"context"
	"errors"
	"strconv"

	domain "github.com/example/task-tracker/domain/task"
	"github.com/example/task-tracker/modules/activity"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
)

const msgInvalidJSON = "Request body must be valid JSON"

// TaskService is the task use-case surface the HTTP layer drives.
type TaskService interface {
	FindAll(ctx context.Context) ([]domain.Task, error)
	FindByID(ctx context.Context, id uint) (*domain.Task, error)
	Create(ctx context.Context, in domain.Insert) error
	Conclude(ctx context.Context, id uint) error
	Edit(ctx context.Context, in domain.Insert, id uint) error
	Delete(ctx context.Context, id uint) error
}

// ActivityLog returns recorded task activity, newest first.
type ActivityLog interface {
	Entries(limit int) []activity.Entry
}

// HealthChecker reports the health of the task store.
type HealthChecker interface {
	Health(ctx context.Context) mono.HealthStatus
}

// Handlers contains HTTP request handlers for task operations.
type Handlers struct {
	tasks    TaskService
	activity ActivityLog
	health   HealthChecker
}

// NewHandlers creates a new handlers instance.
func NewHandlers(tasks TaskService, activityLog ActivityLog, health HealthChecker) *Handlers {
	return &Handlers{
		tasks:    tasks,
		activity: activityLog,
		health:   health,
	}
}

// ListTasks handles GET /api/task.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	tasks, err := h.tasks.FindAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(tasks)
}

// GetTask handles GET /api/task/:id.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	raw := c.Params("id")
	id, ok := parseID(raw)
	if !ok {
		return taskNotFound(c, raw)
	}

	t, err := h.tasks.FindByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, raw)
	}
	return c.JSON(t)
}

// CreateTask handles POST /api/task.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	in, err := parseInsert(c)
	if err != nil {
		return respondError(c, err, "")
	}

	if err := h.tasks.Create(c.UserContext(), in); err != nil {
		return respondError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).Send(nil)
}

// ConcludeTask handles PUT /api/task/conclude/:id.
func (h *Handlers) ConcludeTask(c *fiber.Ctx) error {
	raw := c.Params("id")
	id, ok := parseID(raw)
	if !ok {
		return taskNotFound(c, raw)
	}

	if err := h.tasks.Conclude(c.UserContext(), id); err != nil {
		return respondError(c, err, raw)
	}
	return c.Status(fiber.StatusOK).Send(nil)
}

// EditTask handles PUT /api/task/edit/:id.
// The body is validated before the id is resolved.
func (h *Handlers) EditTask(c *fiber.Ctx) error {
	in, err := parseInsert(c)
	if err != nil {
		return respondError(c, err, "")
	}

	raw := c.Params("id")
	id, ok := parseID(raw)
	if !ok {
		return taskNotFound(c, raw)
	}

	if err := h.tasks.Edit(c.UserContext(), in, id); err != nil {
		return respondError(c, err, raw)
	}
	return c.Status(fiber.StatusOK).Send(nil)
}

// DeleteTask handles DELETE /api/task/:id.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	raw := c.Params("id")
	id, ok := parseID(raw)
	if !ok {
		return taskNotFound(c, raw)
	}

	if err := h.tasks.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err, raw)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListActivity handles GET /api/activity?limit=N.
func (h *Handlers) ListActivity(c *fiber.Ctx) error {
	return c.JSON(h.activity.Entries(c.QueryInt("limit", 0)))
}

// HealthCheck handles GET /health.
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	status := h.health.Health(c.UserContext())
	if !status.Healthy {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "unhealthy",
			"message": status.Message,
		})
	}

	return c.JSON(fiber.Map{
		"status":  "healthy",
		"message": status.Message,
		"details": status.Details,
	})
}

// parseInsert decodes the request body and validates it.
func parseInsert(c *fiber.Ctx) (domain.Insert, error) {
	var in domain.Insert
	if err := c.BodyParser(&in); err != nil {
		return in, &domain.ValidationError{Messages: []string{msgInvalidJSON}}
	}
	if err := in.Validate(); err != nil {
		return in, err
	}
	return in, nil
}

// parseID accepts positive integers only; anything else cannot name a task.
func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// respondError maps domain errors to responses. Anything unrecognised is
// returned to the app error handler, which logs it and answers 500.
func respondError(c *fiber.Ctx, err error, rawID string) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).SendString(verr.Error())
	case errors.Is(err, domain.ErrNotFound):
		return taskNotFound(c, rawID)
	default:
		return err
	}
}

func taskNotFound(c *fiber.Ctx, rawID string) error {
	return c.Status(fiber.StatusNotFound).SendString("Task not found with ID: " + rawID)
}
