package medication

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("medication: not found")
	ErrOutOfStock = errors.New("medication: out of stock")
)

type RegistryRepository interface {
	Create(ctx context.Context, item *RegistryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*RegistryItem, error)
	Update(ctx context.Context, id uuid.UUID, mutate func(*RegistryItem)) bool
	Delete(ctx context.Context, id uuid.UUID) bool
	List(ctx context.Context) []RegistryItem
}

type PrescriptionRepository interface {
	Create(ctx context.Context, p *Prescription) error
	GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error)
	Update(ctx context.Context, id uuid.UUID, mutate func(*Prescription)) bool
	Delete(ctx context.Context, id uuid.UUID) bool
	List(ctx context.Context) []Prescription
	ListByPatient(ctx context.Context, patientID uuid.UUID) []Prescription
}
