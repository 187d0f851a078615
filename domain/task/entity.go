package task

import "time"

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConcluded Status = "CONCLUDED"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConcluded:
		return true
	}
	return false
}

// Task is a persisted unit of work.
type Task struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"not null" json:"description"`
	Status      Status    `gorm:"size:16;not null;index" json:"status"`
	CreatedAt   time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}

// TableName returns the table name for Task model.
func (Task) TableName() string {
	return "tasks"
}
