package task

import (
	"context"
	"fmt"
	"time"

	domain "github.com/example/task-tracker/domain/task"
	"github.com/example/task-tracker/events"
	"github.com/go-monolith/mono/pkg/types"
)

// Service implements the task business rules on top of the repository.
// Every mutation runs inside a single database transaction.
type Service struct {
	repo      *domain.Repository
	publisher Publisher
	logger    types.Logger
	now       func() time.Time
}

// NewService creates a new task service. publisher may be nil, in which case
// no lifecycle events are published.
func NewService(repo *domain.Repository, publisher Publisher, logger types.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       utcNow,
	}
}

// utcNow keeps stored timestamps in one zone so text-encoded SQLite times sort correctly.
func utcNow() time.Time {
	return time.Now().UTC()
}

// FindAll returns every task, most recently created first.
func (s *Service) FindAll(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.repo.ListAllSortedByCreatedAtDesc(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Listed tasks", "count", len(tasks))
	return tasks, nil
}

// FindByID returns the task with the given ID or domain.ErrNotFound.
func (s *Service) FindByID(ctx context.Context, id uint) (*domain.Task, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates in and persists a new pending task.
func (s *Service) Create(ctx context.Context, in domain.Insert) error {
	if err := in.Validate(); err != nil {
		return err
	}

	now := s.now()
	t := &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Transaction(ctx, func(tx *domain.Repository) error {
		return tx.Insert(ctx, t)
	}); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Debug("Created task", "id", t.ID)
	s.emit("TaskCreated", t.ID, func(p Publisher) error {
		return p.PublishTaskCreated(events.TaskCreatedEvent{
			TaskID:    t.ID,
			Title:     t.Title,
			CreatedAt: t.CreatedAt,
		})
	})
	return nil
}

// Conclude marks a task as concluded. Concluding an already concluded task
// succeeds and only refreshes its update time.
func (s *Service) Conclude(ctx context.Context, id uint) error {
	var concludedAt time.Time
	err := s.repo.Transaction(ctx, func(tx *domain.Repository) error {
		t, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		t.Status = domain.StatusConcluded
		t.UpdatedAt = s.stamp(t)
		concludedAt = t.UpdatedAt
		return tx.Update(ctx, t)
	})
	if err != nil {
		return fmt.Errorf("failed to conclude task %d: %w", id, err)
	}

	s.logger.Debug("Concluded task", "id", id)
	s.emit("TaskConcluded", id, func(p Publisher) error {
		return p.PublishTaskConcluded(events.TaskConcludedEvent{
			TaskID:      id,
			ConcludedAt: concludedAt,
		})
	})
	return nil
}

// Edit replaces the title and description of an existing task.
func (s *Service) Edit(ctx context.Context, in domain.Insert, id uint) error {
	if err := in.Validate(); err != nil {
		return err
	}

	var updatedAt time.Time
	err := s.repo.Transaction(ctx, func(tx *domain.Repository) error {
		t, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		t.Title = in.Title
		t.Description = in.Description
		t.UpdatedAt = s.stamp(t)
		updatedAt = t.UpdatedAt
		return tx.Update(ctx, t)
	})
	if err != nil {
		return fmt.Errorf("failed to edit task %d: %w", id, err)
	}

	s.logger.Debug("Edited task", "id", id)
	s.emit("TaskEdited", id, func(p Publisher) error {
		return p.PublishTaskEdited(events.TaskEditedEvent{
			TaskID:    id,
			Title:     in.Title,
			UpdatedAt: updatedAt,
		})
	})
	return nil
}

// Delete permanently removes a task.
func (s *Service) Delete(ctx context.Context, id uint) error {
	err := s.repo.Transaction(ctx, func(tx *domain.Repository) error {
		if _, err := tx.GetByID(ctx, id); err != nil {
			return err
		}
		return tx.DeleteByID(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}

	s.logger.Debug("Deleted task", "id", id)
	deletedAt := s.now()
	s.emit("TaskDeleted", id, func(p Publisher) error {
		return p.PublishTaskDeleted(events.TaskDeletedEvent{
			TaskID:    id,
			DeletedAt: deletedAt,
		})
	})
	return nil
}

// stamp returns the update time for t, never earlier than its creation time.
func (s *Service) stamp(t *domain.Task) time.Time {
	now := s.now()
	if now.Before(t.CreatedAt) {
		return t.CreatedAt
	}
	return now
}

// emit publishes a lifecycle event. Publishing is best-effort: a failure is
// logged and never fails an operation that already committed.
func (s *Service) emit(event string, id uint, publish func(Publisher) error) {
	if s.publisher == nil {
		return
	}
	if err := publish(s.publisher); err != nil {
		s.logger.Warn("Failed to publish event", "event", event, "id", id, "error", err)
	}
}
