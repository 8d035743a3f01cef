package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// Appointment is a scheduled encounter. Patient and doctor names are
// denormalized at create time and survive deletion of the referenced
// records.
type Appointment struct {
	ID          uuid.UUID `json:"id"`
	PatientID   uuid.UUID `json:"patient_id"`
	PatientName string    `json:"patient_name"`
	DoctorID    uuid.UUID `json:"doctor_id"`
	DoctorName  string    `json:"doctor_name"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	Duration    int       `json:"duration_minutes"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Room        string    `json:"room,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
