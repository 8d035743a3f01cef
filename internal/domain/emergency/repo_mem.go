package emergency

import (
	"context"

	"github.com/google/uuid"

	"github.com/klinikos/klinikos/internal/store"
)

type memRepo struct {
	cases *store.Collection[Case]
}

// NewMemRepository creates the in-memory emergency case repository.
func NewMemRepository() Repository {
	return &memRepo{
		cases: store.NewCollection(func(c Case) uuid.UUID { return c.ID }),
	}
}

func (r *memRepo) Create(_ context.Context, c *Case) error {
	r.cases.Add(*c)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (*Case, error) {
	c, ok := r.cases.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *memRepo) Update(_ context.Context, id uuid.UUID, mutate func(*Case)) bool {
	return r.cases.Update(id, mutate)
}

func (r *memRepo) Delete(_ context.Context, id uuid.UUID) bool {
	return r.cases.Delete(id)
}

func (r *memRepo) List(_ context.Context) []Case {
	return r.cases.List()
}
