package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/task-tracker/config"
	domain "github.com/example/task-tracker/domain/task"
	"github.com/example/task-tracker/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"gorm.io/gorm"
)

// TaskModule owns the task store and exposes the task service.
type TaskModule struct {
	db       *gorm.DB
	repo     *domain.Repository
	service  *Service
	eventBus mono.EventBus
	logger   types.Logger
	driver   string
	dsn      string
	debug    bool
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*TaskModule)(nil)
	_ mono.ServiceProviderModule = (*TaskModule)(nil)
	_ mono.EventEmitterModule    = (*TaskModule)(nil)
	_ mono.HealthCheckableModule = (*TaskModule)(nil)
)

// NewModule creates a new TaskModule for the configured database.
func NewModule(cfg config.Config, logger types.Logger) *TaskModule {
	return &TaskModule{
		logger: logger.WithModule("task"),
		driver: cfg.DBDriver,
		dsn:    cfg.DSN(),
		debug:  cfg.DBDebug,
	}
}

// Name returns the module name.
func (m *TaskModule) Name() string {
	return "task"
}

// SetEventBus receives the EventBus from the framework.
func (m *TaskModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module can emit.
func (m *TaskModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TaskCreatedV1.ToBase(),
		events.TaskEditedV1.ToBase(),
		events.TaskConcludedV1.ToBase(),
		events.TaskDeletedV1.ToBase(),
	}
}

// RegisterServices registers request-reply services in the service container.
// The framework prefixes service names with "services.task.".
func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "list", json.Unmarshal, json.Marshal, m.handleList,
	); err != nil {
		return fmt.Errorf("register list: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.handleGet,
	); err != nil {
		return fmt.Errorf("register get: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "create", json.Unmarshal, json.Marshal, m.handleCreate,
	); err != nil {
		return fmt.Errorf("register create: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "conclude", json.Unmarshal, json.Marshal, m.handleConclude,
	); err != nil {
		return fmt.Errorf("register conclude: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "edit", json.Unmarshal, json.Marshal, m.handleEdit,
	); err != nil {
		return fmt.Errorf("register edit: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "delete", json.Unmarshal, json.Marshal, m.handleDelete,
	); err != nil {
		return fmt.Errorf("register delete: %w", err)
	}

	m.logger.Info("Registered services",
		"services", []string{"list", "get", "create", "conclude", "edit", "delete"})
	return nil
}

// Start connects to the database, runs migrations and builds the service.
func (m *TaskModule) Start(_ context.Context) error {
	m.logger.Info("Connecting to database", "driver", m.driver)

	db, err := openDatabase(m.driver, m.dsn, m.debug)
	if err != nil {
		return err
	}
	m.db = db

	m.repo = domain.NewRepository(db)
	if err := m.repo.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if m.eventBus == nil {
		m.logger.Warn("EventBus not set, task events will not be published")
	}
	m.service = NewService(m.repo, newBusPublisher(m.eventBus), m.logger)

	m.logger.Info("Module started")
	return nil
}

// Stop closes the database connection.
func (m *TaskModule) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	m.logger.Info("Database connection closed")
	return nil
}

// Health pings the database.
func (m *TaskModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get sql.DB: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": m.driver,
		},
	}
}

// Service returns the task service. It is nil until the module has started.
func (m *TaskModule) Service() *Service {
	return m.service
}

func (m *TaskModule) handleList(ctx context.Context, _ ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.service.FindAll(ctx)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return ListTasksResponse{Tasks: tasks, Total: len(tasks)}, nil
}

func (m *TaskModule) handleGet(ctx context.Context, req TaskIDRequest, _ *mono.Msg) (domain.Task, error) {
	t, err := m.service.FindByID(ctx, req.ID)
	if err != nil {
		return domain.Task{}, err
	}
	return *t, nil
}

func (m *TaskModule) handleCreate(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (AckResponse, error) {
	in := domain.Insert{Title: req.Title, Description: req.Description}
	if err := m.service.Create(ctx, in); err != nil {
		return AckResponse{}, err
	}
	return AckResponse{OK: true}, nil
}

func (m *TaskModule) handleConclude(ctx context.Context, req TaskIDRequest, _ *mono.Msg) (AckResponse, error) {
	if err := m.service.Conclude(ctx, req.ID); err != nil {
		return AckResponse{}, err
	}
	return AckResponse{OK: true}, nil
}

func (m *TaskModule) handleEdit(ctx context.Context, req EditTaskRequest, _ *mono.Msg) (AckResponse, error) {
	in := domain.Insert{Title: req.Title, Description: req.Description}
	if err := m.service.Edit(ctx, in, req.ID); err != nil {
		return AckResponse{}, err
	}
	return AckResponse{OK: true}, nil
}

func (m *TaskModule) handleDelete(ctx context.Context, req TaskIDRequest, _ *mono.Msg) (AckResponse, error) {
	if err := m.service.Delete(ctx, req.ID); err != nil {
		return AckResponse{}, err
	}
	return AckResponse{OK: true}, nil
}
