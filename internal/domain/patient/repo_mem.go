package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/klinikos/klinikos/internal/store"
)

type memPatientRepo struct {
	patients *store.Collection[Patient]
}

// NewMemPatientRepository creates the in-memory patient repository.
func NewMemPatientRepository() PatientRepository {
	return &memPatientRepo{
		patients: store.NewCollection(func(p Patient) uuid.UUID { return p.ID }),
	}
}

func (r *memPatientRepo) Create(_ context.Context, p *Patient) error {
	r.patients.Add(*p)
	return nil
}

func (r *memPatientRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := r.patients.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *memPatientRepo) Update(_ context.Context, id uuid.UUID, mutate func(*Patient)) bool {
	return r.patients.Update(id, mutate)
}

func (r *memPatientRepo) Delete(_ context.Context, id uuid.UUID) bool {
	return r.patients.Delete(id)
}

func (r *memPatientRepo) List(_ context.Context) []Patient {
	return r.patients.List()
}

type memVisitRepo struct {
	visits *store.Collection[Visit]
}

// NewMemVisitRepository creates the in-memory visit repository.
func NewMemVisitRepository() VisitRepository {
	return &memVisitRepo{
		visits: store.NewCollection(func(v Visit) uuid.UUID { return v.ID }),
	}
}

func (r *memVisitRepo) Create(_ context.Context, v *Visit) error {
	r.visits.Add(*v)
	return nil
}

func (r *memVisitRepo) ListByPatient(_ context.Context, patientID uuid.UUID) []Visit {
	return r.visits.Filter(func(v Visit) bool { return v.PatientID == patientID })
}

type memFileRepo struct {
	files *store.Collection[File]
}

// NewMemFileRepository creates the in-memory patient file repository.
func NewMemFileRepository() FileRepository {
	return &memFileRepo{
		files: store.NewCollection(func(f File) uuid.UUID { return f.ID }),
	}
}

func (r *memFileRepo) Create(_ context.Context, f *File) error {
	r.files.Add(*f)
	return nil
}

func (r *memFileRepo) ListByPatient(_ context.Context, patientID uuid.UUID) []File {
	return r.files.Filter(func(f File) bool { return f.PatientID == patientID })
}

func (r *memFileRepo) Delete(_ context.Context, id uuid.UUID) bool {
	return r.files.Delete(id)
}
