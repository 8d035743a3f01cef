package emergency

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("emergency: not found")

type Repository interface {
	Create(ctx context.Context, c *Case) error
	GetByID(ctx context.Context, id uuid.UUID) (*Case, error)
	Update(ctx context.Context, id uuid.UUID, mutate func(*Case)) bool
	Delete(ctx context.Context, id uuid.UUID) bool
	List(ctx context.Context) []Case
}
