package labs

import (
	"time"

	"github.com/google/uuid"
)

// LabOrder is a request for one or more laboratory tests on a patient.
type LabOrder struct {
	ID          uuid.UUID `json:"id"`
	PatientID   uuid.UUID `json:"patient_id,omitempty"`
	PatientName string    `json:"patient_name"`
	OrderedBy   string    `json:"ordered_by"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	Tests       []LabTest `json:"tests"`
	Notes       string    `json:"notes,omitempty"`
	OrderedAt   time.Time `json:"ordered_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LabTest is a single analyte within an order. Result fields stay empty
// until the lab reports them.
type LabTest struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Code           string    `json:"code,omitempty"`
	Category       string    `json:"category,omitempty"`
	Result         string    `json:"result,omitempty"`
	Unit           string    `json:"unit,omitempty"`
	ReferenceRange string    `json:"reference_range,omitempty"`
	Status         string    `json:"status"`
}

// Completed reports whether every test in the order has a final result.
func (o *LabOrder) Completed() bool {
	if len(o.Tests) == 0 {
		return false
	}
	for _, t := range o.Tests {
		if t.Status != "completed" && t.Status != "abnormal" {
			return false
		}
	}
	return true
}
