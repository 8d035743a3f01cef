package task

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("task: not found")

type Repository interface {
	Create(ctx context.Context, t *Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*Task, error)
	Update(ctx context.Context, id uuid.UUID, mutate func(*Task)) bool
	Delete(ctx context.Context, id uuid.UUID) bool
	List(ctx context.Context) []Task
}

type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	Update(ctx context.Context, id uuid.UUID, mutate func(*Notification)) bool
	List(ctx context.Context) []Notification
}
