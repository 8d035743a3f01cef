package patient

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	patients PatientRepository
	visits   VisitRepository
	files    FileRepository
}

func NewService(patients PatientRepository, visits VisitRepository, files FileRepository) *Service {
	return &Service{patients: patients, visits: visits, files: files}
}

var validPatientStatuses = map[string]bool{
	"admitted": true, "outpatient": true, "discharged": true, "emergency": true,
}

var validGenders = map[string]bool{
	"male": true, "female": true, "other": true,
}

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.MRN == "" {
		return fmt.Errorf("mrn is required")
	}
	if p.FirstName == "" {
		return fmt.Errorf("first_name is required")
	}
	if p.LastName == "" {
		return fmt.Errorf("last_name is required")
	}
	if p.DateOfBirth.IsZero() {
		return fmt.Errorf("date_of_birth is required")
	}
	if !validGenders[p.Gender] {
		return fmt.Errorf("invalid gender: %s", p.Gender)
	}
	if p.Status == "" {
		p.Status = "outpatient"
	}
	if !validPatientStatuses[p.Status] {
		return fmt.Errorf("invalid status: %s", p.Status)
	}
	p.ID = uuid.New()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.patients.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

// ListPatients returns patients matching the optional status filter and
// case-insensitive search query over name, MRN and id. Filters combine with
// AND.
func (s *Service) ListPatients(ctx context.Context, status, query string) []Patient {
	all := s.patients.List(ctx)
	if status == "" && query == "" {
		return all
	}
	q := strings.ToLower(query)
	var out []Patient
	for _, p := range all {
		if status != "" && p.Status != status {
			continue
		}
		if q != "" && !matchesPatient(p, q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesPatient(p Patient, q string) bool {
	return strings.Contains(strings.ToLower(p.FullName()), q) ||
		strings.Contains(strings.ToLower(p.MRN), q) ||
		strings.Contains(strings.ToLower(p.ID.String()), q)
}

// PatientUpdate carries a partial patient update. Nil fields are untouched.
type PatientUpdate struct {
	FirstName        *string           `json:"first_name,omitempty"`
	LastName         *string           `json:"last_name,omitempty"`
	BloodType        *string           `json:"blood_type,omitempty"`
	Allergies        *[]string         `json:"allergies,omitempty"`
	ContactNumber    *string           `json:"contact_number,omitempty"`
	Address          *string           `json:"address,omitempty"`
	Insurance        *Insurance        `json:"insurance,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty"`
	AdmissionDate    *time.Time        `json:"admission_date,omitempty"`
	Status           *string           `json:"status,omitempty"`
}

// UpdatePatient applies a partial update. An unknown id leaves the store
// unchanged and returns nil.
func (s *Service) UpdatePatient(ctx context.Context, id uuid.UUID, upd PatientUpdate) error {
	if upd.Status != nil && !validPatientStatuses[*upd.Status] {
		return fmt.Errorf("invalid status: %s", *upd.Status)
	}
	s.patients.Update(ctx, id, func(p *Patient) {
		if upd.FirstName != nil {
			p.FirstName = *upd.FirstName
		}
		if upd.LastName != nil {
			p.LastName = *upd.LastName
		}
		if upd.BloodType != nil {
			p.BloodType = *upd.BloodType
		}
		if upd.Allergies != nil {
			p.Allergies = *upd.Allergies
		}
		if upd.ContactNumber != nil {
			p.ContactNumber = *upd.ContactNumber
		}
		if upd.Address != nil {
			p.Address = *upd.Address
		}
		if upd.Insurance != nil {
			p.Insurance = upd.Insurance
		}
		if upd.EmergencyContact != nil {
			p.EmergencyContact = upd.EmergencyContact
		}
		if upd.AdmissionDate != nil {
			p.AdmissionDate = upd.AdmissionDate
		}
		if upd.Status != nil {
			p.Status = *upd.Status
		}
		p.UpdatedAt = time.Now()
	})
	return nil
}

// DeletePatient removes the patient record only. Appointments, invoices and
// visits keep their denormalized patient name snapshots.
func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) {
	s.patients.Delete(ctx, id)
}

func (s *Service) AddVisit(ctx context.Context, v *Visit) error {
	if v.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if _, err := s.patients.GetByID(ctx, v.PatientID); err != nil {
		return fmt.Errorf("unknown patient: %s", v.PatientID)
	}
	if v.ChiefComplaint == "" {
		return fmt.Errorf("chief_complaint is required")
	}
	if v.Date.IsZero() {
		v.Date = time.Now()
	}
	v.ID = uuid.New()
	v.CreatedAt = time.Now()
	return s.visits.Create(ctx, v)
}

// ListVisits returns a patient's visits, newest first.
func (s *Service) ListVisits(ctx context.Context, patientID uuid.UUID) []Visit {
	visits := s.visits.ListByPatient(ctx, patientID)
	sort.SliceStable(visits, func(i, j int) bool {
		return visits[i].Date.After(visits[j].Date)
	})
	return visits
}

func (s *Service) AddFile(ctx context.Context, f *File) error {
	if f.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if f.Name == "" {
		return fmt.Errorf("name is required")
	}
	if f.URI == "" {
		return fmt.Errorf("uri is required")
	}
	f.ID = uuid.New()
	f.UploadedAt = time.Now()
	return s.files.Create(ctx, f)
}

func (s *Service) ListFiles(ctx context.Context, patientID uuid.UUID) []File {
	return s.files.ListByPatient(ctx, patientID)
}

func (s *Service) DeleteFile(ctx context.Context, id uuid.UUID) {
	s.files.Delete(ctx, id)
}
