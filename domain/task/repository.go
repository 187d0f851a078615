package task

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Repository provides database operations for tasks.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate runs database migrations for the task table.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&Task{})
}

// Transaction runs fn against a repository bound to a single database
// transaction. The transaction commits when fn returns nil.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// Insert saves a new task to the database.
func (r *Repository) Insert(ctx context.Context, task *Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

// GetByID retrieves a task by its ID.
func (r *Repository) GetByID(ctx context.Context, id uint) (*Task, error) {
	var task Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

// ListAllSortedByCreatedAtDesc retrieves every task, newest first.
func (r *Repository) ListAllSortedByCreatedAtDesc(ctx context.Context) ([]Task, error) {
	tasks := make([]Task, 0)
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Update writes the mutable columns of an existing task.
func (r *Repository) Update(ctx context.Context, task *Task) error {
	result := r.db.WithContext(ctx).
		Model(&Task{}).
		Where("id = ?", task.ID).
		Select("title", "description", "status", "updated_at").
		Updates(map[string]any{
			"title":       task.Title,
			"description": task.Description,
			"status":      task.Status,
			"updated_at":  task.UpdatedAt,
		})
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByID permanently removes a task.
func (r *Repository) DeleteByID(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Task{}, id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
