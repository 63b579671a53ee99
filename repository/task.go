package repository

import (
	"context"

	"github.com/taskforge/backend/domain"
)

type TaskRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)
	// Save persists a new task. A (owner, title) collision yields
	// domain.ErrTaskDuplicate and writes nothing.
	Save(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// SetStatus updates the status of the task with the given id, scoped to
	// the owner. Missing or non-owned ids yield domain.ErrTaskNotFound.
	SetStatus(ctx context.Context, id, ownerID, status string) error
	// Delete removes the task with the given id, scoped to the owner.
	Delete(ctx context.Context, id, ownerID string) error
}
