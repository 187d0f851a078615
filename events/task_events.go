package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// TaskCreatedEvent is emitted when a new task is created.
type TaskCreatedEvent struct {
	TaskID    uint      `json:"task_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskCreatedV1 is the typed event definition for task creation.
// Subject: events.task.v1.task-created
var TaskCreatedV1 = helper.EventDefinition[TaskCreatedEvent](
	"task", "TaskCreated", "v1",
)

// TaskEditedEvent is emitted when a task's title or description changes.
type TaskEditedEvent struct {
	TaskID    uint      `json:"task_id"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskEditedV1 is the typed event definition for task edits.
// Subject: events.task.v1.task-edited
var TaskEditedV1 = helper.EventDefinition[TaskEditedEvent](
	"task", "TaskEdited", "v1",
)

// TaskConcludedEvent is emitted when a task is concluded.
type TaskConcludedEvent struct {
	TaskID      uint      `json:"task_id"`
	ConcludedAt time.Time `json:"concluded_at"`
}

// TaskConcludedV1 is the typed event definition for task conclusion.
// Subject: events.task.v1.task-concluded
var TaskConcludedV1 = helper.EventDefinition[TaskConcludedEvent](
	"task", "TaskConcluded", "v1",
)

// TaskDeletedEvent is emitted when a task is deleted.
type TaskDeletedEvent struct {
	TaskID    uint      `json:"task_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

// TaskDeletedV1 is the typed event definition for task deletion.
// Subject: events.task.v1.task-deleted
var TaskDeletedV1 = helper.EventDefinition[TaskDeletedEvent](
	"task", "TaskDeleted", "v1",
)
