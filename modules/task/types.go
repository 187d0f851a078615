package task

import domain "github.com/example/task-tracker/domain/task"

// ListTasksRequest is the request for listing tasks.
type ListTasksRequest struct{}

// ListTasksResponse is the response containing every task, newest first.
type ListTasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
	Total int           `json:"total"`
}

// TaskIDRequest addresses a single task for get, conclude and delete.
type TaskIDRequest struct {
	ID uint `json:"id"`
}

// CreateTaskRequest is the request for creating a task.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// EditTaskRequest is the request for editing a task.
type EditTaskRequest struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AckResponse acknowledges a mutation that returns no data.
type AckResponse struct {
	OK bool `json:"ok"`
}
