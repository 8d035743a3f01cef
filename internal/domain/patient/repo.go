package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned by lookups for unknown ids. Updates and deletes do
// not return it: they are silent no-ops per the store contract.
var ErrNotFound = errors.New("patient: not found")

type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, id uuid.UUID, mutate func(*Patient)) bool
	Delete(ctx context.Context, id uuid.UUID) bool
	List(ctx context.Context) []Patient
}

type VisitRepository interface {
	Create(ctx context.Context, v *Visit) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) []Visit
}

type FileRepository interface {
	Create(ctx context.Context, f *File) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) []File
	Delete(ctx context.Context, id uuid.UUID) bool
}
