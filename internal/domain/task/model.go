package task

import (
	"time"

	"github.com/google/uuid"
)

// Task is a unit of staff work, optionally tied to a patient.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	PatientID   uuid.UUID  `json:"patient_id,omitempty"`
	PatientName string     `json:"patient_name,omitempty"`
	AssignedTo  string     `json:"assigned_to,omitempty"`
	AssignedBy  string     `json:"assigned_by,omitempty"`
	Category    string     `json:"category,omitempty"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Notification is a per-user inbox entry.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message,omitempty"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
