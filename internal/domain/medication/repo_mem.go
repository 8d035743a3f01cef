package medication

import (
	"context"

	"github.com/google/uuid"

	"github.com/klinikos/klinikos/internal/store"
)

type memRegistryRepo struct {
	items *store.Collection[RegistryItem]
}

// NewMemRegistryRepository creates the in-memory catalog repository.
func NewMemRegistryRepository() RegistryRepository {
	return &memRegistryRepo{
		items: store.NewCollection(func(i RegistryItem) uuid.UUID { return i.ID }),
	}
}

func (r *memRegistryRepo) Create(_ context.Context, item *RegistryItem) error {
	r.items.Add(*item)
	return nil
}

func (r *memRegistryRepo) GetByID(_ context.Context, id uuid.UUID) (*RegistryItem, error) {
	item, ok := r.items.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (r *memRegistryRepo) Update(_ context.Context, id uuid.UUID, mutate func(*RegistryItem)) bool {
	return r.items.Update(id, mutate)
}

func (r *memRegistryRepo) Delete(_ context.Context, id uuid.UUID) bool {
	return r.items.Delete(id)
}

func (r *memRegistryRepo) List(_ context.Context) []RegistryItem {
	return r.items.List()
}

type memPrescriptionRepo struct {
	prescriptions *store.Collection[Prescription]
}

// NewMemPrescriptionRepository creates the in-memory prescription repository.
func NewMemPrescriptionRepository() PrescriptionRepository {
	return &memPrescriptionRepo{
		prescriptions: store.NewCollection(func(p Prescription) uuid.UUID { return p.ID }),
	}
}

func (r *memPrescriptionRepo) Create(_ context.Context, p *Prescription) error {
	r.prescriptions.Add(*p)
	return nil
}

func (r *memPrescriptionRepo) GetByID(_ context.Context, id uuid.UUID) (*Prescription, error) {
	p, ok := r.prescriptions.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *memPrescriptionRepo) Update(_ context.Context, id uuid.UUID, mutate func(*Prescription)) bool {
	return r.prescriptions.Update(id, mutate)
}

func (r *memPrescriptionRepo) Delete(_ context.Context, id uuid.UUID) bool {
	return r.prescriptions.Delete(id)
}

func (r *memPrescriptionRepo) List(_ context.Context) []Prescription {
	return r.prescriptions.List()
}

func (r *memPrescriptionRepo) ListByPatient(_ context.Context, patientID uuid.UUID) []Prescription {
	return r.prescriptions.Filter(func(p Prescription) bool { return p.PatientID == patientID })
}
