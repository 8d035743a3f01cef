package task

import (
	"context"

	"github.com/google/uuid"

	"github.com/klinikos/klinikos/internal/store"
)

type memRepo struct {
	tasks *store.Collection[Task]
}

// NewMemRepository creates the in-memory task repository.
func NewMemRepository() Repository {
	return &memRepo{
		tasks: store.NewCollection(func(t Task) uuid.UUID { return t.ID }),
	}
}

func (r *memRepo) Create(_ context.Context, t *Task) error {
	r.tasks.Add(*t)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (*Task, error) {
	t, ok := r.tasks.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (r *memRepo) Update(_ context.Context, id uuid.UUID, mutate func(*Task)) bool {
	return r.tasks.Update(id, mutate)
}

func (r *memRepo) Delete(_ context.Context, id uuid.UUID) bool {
	return r.tasks.Delete(id)
}

func (r *memRepo) List(_ context.Context) []Task {
	return r.tasks.List()
}

type memNotificationRepo struct {
	notifications *store.Collection[Notification]
}

// NewMemNotificationRepository creates the in-memory notification repository.
func NewMemNotificationRepository() NotificationRepository {
	return &memNotificationRepo{
		notifications: store.NewCollection(func(n Notification) uuid.UUID { return n.ID }),
	}
}

func (r *memNotificationRepo) Create(_ context.Context, n *Notification) error {
	r.notifications.Add(*n)
	return nil
}

func (r *memNotificationRepo) Update(_ context.Context, id uuid.UUID, mutate func(*Notification)) bool {
	return r.notifications.Update(id, mutate)
}

func (r *memNotificationRepo) List(_ context.Context) []Notification {
	return r.notifications.List()
}
