package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("billing: not found")

type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	Update(ctx context.Context, id uuid.UUID, mutate func(*Invoice)) bool
	Delete(ctx context.Context, id uuid.UUID) bool
	List(ctx context.Context) []Invoice
}

// PrescriptionInfo is the slice of prescription state billing needs to
// build an invoice line.
type PrescriptionInfo struct {
	ID        uuid.UUID
	PatientID uuid.UUID
	Name      string
	Dosage    string
	Active    bool
}

// PrescriptionSource resolves prescription ids. Implemented by the
// medication service.
type PrescriptionSource interface {
	LookupPrescription(ctx context.Context, id uuid.UUID) (PrescriptionInfo, bool)
}

// PriceList resolves a catalog price by medication name and dosage.
// Implemented by the medication registry.
type PriceList interface {
	Price(ctx context.Context, name, dosage string) (unitPrice float64, code string, ok bool)
}
