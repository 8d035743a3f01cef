package labs

import (
	"context"

	"github.com/google/uuid"

	"github.com/klinikos/klinikos/internal/store"
)

type memRepo struct {
	orders *store.Collection[LabOrder]
}

// NewMemRepository creates the in-memory lab order repository.
func NewMemRepository() Repository {
	return &memRepo{
		orders: store.NewCollection(func(o LabOrder) uuid.UUID { return o.ID }),
	}
}

func (r *memRepo) Create(_ context.Context, o *LabOrder) error {
	r.orders.Add(*o)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (*LabOrder, error) {
	o, ok := r.orders.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

func (r *memRepo) Update(_ context.Context, id uuid.UUID, mutate func(*LabOrder)) bool {
	return r.orders.Update(id, mutate)
}

func (r *memRepo) Delete(_ context.Context, id uuid.UUID) bool {
	return r.orders.Delete(id)
}

func (r *memRepo) List(_ context.Context) []LabOrder {
	return r.orders.List()
}
