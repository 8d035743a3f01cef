package scheduling

import (
	"context"

	"github.com/google/uuid"

	"github.com/klinikos/klinikos/internal/store"
)

type memRepo struct {
	appts *store.Collection[Appointment]
}

// NewMemRepository creates the in-memory appointment repository.
func NewMemRepository() Repository {
	return &memRepo{
		appts: store.NewCollection(func(a Appointment) uuid.UUID { return a.ID }),
	}
}

func (r *memRepo) Create(_ context.Context, a *Appointment) error {
	r.appts.Add(*a)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := r.appts.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (r *memRepo) Update(_ context.Context, id uuid.UUID, mutate func(*Appointment)) bool {
	return r.appts.Update(id, mutate)
}

func (r *memRepo) Delete(_ context.Context, id uuid.UUID) bool {
	return r.appts.Delete(id)
}

func (r *memRepo) List(_ context.Context) []Appointment {
	return r.appts.List()
}
