package emergency

import (
	"time"

	"github.com/google/uuid"
)

// Case is an emergency department admission with triage classification.
type Case struct {
	ID             uuid.UUID   `json:"id"`
	PatientID      uuid.UUID   `json:"patient_id,omitempty"`
	PatientName    string      `json:"patient_name"`
	ArrivalTime    time.Time   `json:"arrival_time"`
	ChiefComplaint string      `json:"chief_complaint"`
	TriageLevel    int         `json:"triage_level"`
	TriageColor    string      `json:"triage_color"`
	VitalSigns     []VitalSign `json:"vital_signs,omitempty"`
	AssignedTo     string      `json:"assigned_to,omitempty"`
	Status         string      `json:"status"`
	Location       string      `json:"location,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// VitalSign is one observation set recorded during an emergency case.
type VitalSign struct {
	Temperature      *float64  `json:"temperature,omitempty"`
	SystolicBP       *int      `json:"systolic_bp,omitempty"`
	DiastolicBP      *int      `json:"diastolic_bp,omitempty"`
	HeartRate        *int      `json:"heart_rate,omitempty"`
	RespiratoryRate  *int      `json:"respiratory_rate,omitempty"`
	OxygenSaturation *int      `json:"oxygen_saturation,omitempty"`
	RecordedBy       string    `json:"recorded_by"`
	Timestamp        time.Time `json:"timestamp"`
}
