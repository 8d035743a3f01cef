package scheduling

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("scheduling: not found")

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, id uuid.UUID, mutate func(*Appointment)) bool
	Delete(ctx context.Context, id uuid.UUID) bool
	List(ctx context.Context) []Appointment
}
