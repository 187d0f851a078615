package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/task-tracker/config"
	"github.com/example/task-tracker/modules/activity"
	"github.com/example/task-tracker/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Module serves the task REST API over Fiber.
type Module struct {
	app            *fiber.App
	addr           string
	allowedOrigins string
	taskModule     *task.TaskModule
	activityModule *activity.Module
	logger         types.Logger
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates the HTTP API module. The task module must be registered
// before it so that its service exists when the server starts.
func NewModule(
	cfg config.Config,
	taskModule *task.TaskModule,
	activityModule *activity.Module,
	logger types.Logger,
) *Module {
	return &Module{
		addr:           fmt.Sprintf(":%d", cfg.HTTPPort),
		allowedOrigins: cfg.CORSAllowedOrigins,
		taskModule:     taskModule,
		activityModule: activityModule,
		logger:         logger.WithModule("api"),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "api"
}

// Start builds the Fiber app and starts listening.
func (m *Module) Start(_ context.Context) error {
	svc := m.taskModule.Service()
	if svc == nil {
		return errors.New("task module not started")
	}

	handlers := NewHandlers(svc, m.activityModule, m.taskModule)
	m.app = newApp(handlers, m.allowedOrigins, m.logger)

	// Start server in goroutine with startup error detection
	errCh := make(chan error, 1)
	go func() {
		if err := m.app.Listen(m.addr); err != nil {
			errCh <- err
		}
	}()

	// Wait briefly to catch immediate startup errors (port in use, permission denied)
	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
	}

	m.logger.Info("HTTP server started", "addr", m.addr)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (m *Module) Stop(ctx context.Context) error {
	if m.app == nil {
		return nil
	}
	if err := m.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	m.logger.Info("HTTP server stopped")
	return nil
}

// Health reports whether the server has been started.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.app == nil {
		return mono.HealthStatus{Healthy: false, Message: "server not started"}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{"addr": m.addr},
	}
}

// newApp wires middleware and routes around the handlers.
func newApp(h *Handlers, allowedOrigins string, log types.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Task Tracker",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(log),
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Content-Type",
	}))

	app.Get("/health", h.HealthCheck)

	tasks := app.Group("/api/task")
	tasks.Get("", h.ListTasks)
	tasks.Post("", h.CreateTask)
	tasks.Get("/:id", h.GetTask)
	tasks.Put("/conclude/:id", h.ConcludeTask)
	tasks.Put("/edit/:id", h.EditTask)
	tasks.Delete("/:id", h.DeleteTask)

	app.Get("/api/activity", h.ListActivity)

	return app
}

// errorHandler keeps Fiber's own status codes and hides everything else
// behind a plain 500.
func errorHandler(log types.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).SendString(fe.Message)
		}

		log.Error("Request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}
}
