package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/example/task-tracker/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// MaxEntries bounds the in-memory activity log.
const MaxEntries = 100

// Entry is one recorded task lifecycle event.
type Entry struct {
	TaskID     uint      `json:"taskId"`
	Type       string    `json:"type"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurredAt"`
}

// RecentRequest is the request for the recent activity service.
// A zero Limit returns every retained entry.
type RecentRequest struct {
	Limit int `json:"limit"`
}

// RecentResponse lists retained entries, newest first.
type RecentResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

// Module keeps a bounded log of task lifecycle events.
type Module struct {
	entries []Entry
	mu      sync.RWMutex
	logger  types.Logger
}

var (
	_ mono.Module                = (*Module)(nil)
	_ mono.EventConsumerModule   = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
)

// NewModule creates a new activity module.
func NewModule(logger types.Logger) *Module {
	return &Module{
		entries: make([]Entry, 0, MaxEntries),
		logger:  logger.WithModule("activity"),
	}
}

func (m *Module) Name() string {
	return "activity"
}

func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskEditedV1, m.handleTaskEdited, m); err != nil {
		return fmt.Errorf("failed to register TaskEdited consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskConcludedV1, m.handleTaskConcluded, m); err != nil {
		return fmt.Errorf("failed to register TaskConcluded consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.handleTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}

	m.logger.Info("Registered event consumers",
		"events", []string{"TaskCreated", "TaskEdited", "TaskConcluded", "TaskDeleted"})
	return nil
}

// RegisterServices exposes the log as services.activity.recent.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "recent", json.Unmarshal, json.Marshal, m.handleRecent,
	); err != nil {
		return fmt.Errorf("register recent: %w", err)
	}
	return nil
}

func (m *Module) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	m.record(event.TaskID, "task_created", fmt.Sprintf("Task %d '%s' created", event.TaskID, event.Title), event.CreatedAt)
	return nil
}

func (m *Module) handleTaskEdited(_ context.Context, event events.TaskEditedEvent, _ *mono.Msg) error {
	m.record(event.TaskID, "task_edited", fmt.Sprintf("Task %d renamed to '%s'", event.TaskID, event.Title), event.UpdatedAt)
	return nil
}

func (m *Module) handleTaskConcluded(_ context.Context, event events.TaskConcludedEvent, _ *mono.Msg) error {
	m.record(event.TaskID, "task_concluded", fmt.Sprintf("Task %d concluded", event.TaskID), event.ConcludedAt)
	return nil
}

func (m *Module) handleTaskDeleted(_ context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	m.record(event.TaskID, "task_deleted", fmt.Sprintf("Task %d deleted", event.TaskID), event.DeletedAt)
	return nil
}

func (m *Module) handleRecent(_ context.Context, req RecentRequest, _ *mono.Msg) (RecentResponse, error) {
	entries := m.Entries(req.Limit)
	return RecentResponse{Entries: entries, Total: len(entries)}, nil
}

func (m *Module) record(taskID uint, kind, message string, at time.Time) {
	if at.IsZero() {
		at = time.Now()
	}
	m.logger.Debug("Recorded activity", "type", kind, "task_id", taskID)

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.entries) == MaxEntries {
		copy(m.entries, m.entries[1:])
		m.entries = m.entries[:MaxEntries-1]
	}
	m.entries = append(m.entries, Entry{
		TaskID:     taskID,
		Type:       kind,
		Message:    message,
		OccurredAt: at,
	})
}

// Entries returns up to limit retained entries, newest first.
// A limit of zero or less returns all of them.
func (m *Module) Entries(limit int) []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	result := make([]Entry, 0, n)
	for i := len(m.entries) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, m.entries[i])
	}
	return result
}

func (m *Module) Start(_ context.Context) error {
	m.logger.Info("Module started, listening for task events")
	return nil
}

func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Module stopped")
	return nil
}
