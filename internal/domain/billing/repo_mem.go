package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/klinikos/klinikos/internal/store"
)

type memRepo struct {
	invoices *store.Collection[Invoice]
}

// NewMemRepository creates the in-memory invoice repository.
func NewMemRepository() Repository {
	return &memRepo{
		invoices: store.NewCollection(func(inv Invoice) uuid.UUID { return inv.ID }),
	}
}

func (r *memRepo) Create(_ context.Context, inv *Invoice) error {
	r.invoices.Add(*inv)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (*Invoice, error) {
	inv, ok := r.invoices.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &inv, nil
}

func (r *memRepo) Update(_ context.Context, id uuid.UUID, mutate func(*Invoice)) bool {
	return r.invoices.Update(id, mutate)
}

func (r *memRepo) Delete(_ context.Context, id uuid.UUID) bool {
	return r.invoices.Delete(id)
}

func (r *memRepo) List(_ context.Context) []Invoice {
	return r.invoices.List()
}
