package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient is the master record for a person under care.
type Patient struct {
	ID               uuid.UUID         `json:"id"`
	MRN              string            `json:"mrn"`
	FirstName        string            `json:"first_name"`
	LastName         string            `json:"last_name"`
	DateOfBirth      time.Time         `json:"date_of_birth"`
	Gender           string            `json:"gender"`
	BloodType        string            `json:"blood_type,omitempty"`
	Allergies        []string          `json:"allergies,omitempty"`
	ContactNumber    string            `json:"contact_number,omitempty"`
	Address          string            `json:"address,omitempty"`
	Insurance        *Insurance        `json:"insurance,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty"`
	AdmissionDate    *time.Time        `json:"admission_date,omitempty"`
	Status           string            `json:"status"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// FullName returns the display name used in denormalized references.
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

type Insurance struct {
	Provider     string     `json:"provider"`
	PolicyNumber string     `json:"policy_number"`
	ValidUntil   *time.Time `json:"valid_until,omitempty"`
}

type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

// Visit records one encounter with a clinician.
type Visit struct {
	ID             uuid.UUID `json:"id"`
	PatientID      uuid.UUID `json:"patient_id"`
	Date           time.Time `json:"date"`
	DoctorID       uuid.UUID `json:"doctor_id"`
	DoctorName     string    `json:"doctor_name"`
	ChiefComplaint string    `json:"chief_complaint"`
	Diagnosis      string    `json:"diagnosis,omitempty"`
	Treatment      string    `json:"treatment,omitempty"`
	Prescriptions  []string  `json:"prescriptions,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	Category       string    `json:"category,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// File is an uploaded document attached to a patient.
type File struct {
	ID         uuid.UUID `json:"id"`
	PatientID  uuid.UUID `json:"patient_id"`
	Name       string    `json:"name"`
	Kind       string    `json:"kind"`
	URI        string    `json:"uri"`
	UploadedBy string    `json:"uploaded_by,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}
