package labs

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("labs: not found")

type Repository interface {
	Create(ctx context.Context, o *LabOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*LabOrder, error)
	Update(ctx context.Context, id uuid.UUID, mutate func(*LabOrder)) bool
	Delete(ctx context.Context, id uuid.UUID) bool
	List(ctx context.Context) []LabOrder
}
