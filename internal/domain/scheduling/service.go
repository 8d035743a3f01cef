package scheduling

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	appts Repository
}

func NewService(appts Repository) *Service {
	return &Service{appts: appts}
}

var validApptTypes = map[string]bool{
	"consultation": true, "follow_up": true, "procedure": true, "emergency": true,
}

// Status transitions are free-form: any status may move to any other, so
// only membership is checked.
var validApptStatuses = map[string]bool{
	"scheduled": true, "confirmed": true, "in_progress": true,
	"completed": true, "cancelled": true,
}

func (s *Service) Create(ctx context.Context, a *Appointment) error {
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if a.PatientName == "" {
		return fmt.Errorf("patient_name is required")
	}
	if a.DoctorName == "" {
		return fmt.Errorf("doctor_name is required")
	}
	if a.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if a.Type == "" {
		a.Type = "consultation"
	}
	if !validApptTypes[a.Type] {
		return fmt.Errorf("invalid type: %s", a.Type)
	}
	if a.Status == "" {
		a.Status = "scheduled"
	}
	if !validApptStatuses[a.Status] {
		return fmt.Errorf("invalid status: %s", a.Status)
	}
	if a.Duration <= 0 {
		a.Duration = 30
	}
	a.ID = uuid.New()
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	return s.appts.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appts.GetByID(ctx, id)
}

// AppointmentUpdate carries a partial appointment update.
type AppointmentUpdate struct {
	Date     *time.Time `json:"date,omitempty"`
	Time     *string    `json:"time,omitempty"`
	Duration *int       `json:"duration_minutes,omitempty"`
	Type     *string    `json:"type,omitempty"`
	Status   *string    `json:"status,omitempty"`
	Room     *string    `json:"room,omitempty"`
	Notes    *string    `json:"notes,omitempty"`
}

// Update applies a partial update; unknown ids are silent no-ops.
func (s *Service) Update(ctx context.Context, id uuid.UUID, upd AppointmentUpdate) error {
	if upd.Type != nil && !validApptTypes[*upd.Type] {
		return fmt.Errorf("invalid type: %s", *upd.Type)
	}
	if upd.Status != nil && !validApptStatuses[*upd.Status] {
		return fmt.Errorf("invalid status: %s", *upd.Status)
	}
	s.appts.Update(ctx, id, func(a *Appointment) {
		if upd.Date != nil {
			a.Date = *upd.Date
		}
		if upd.Time != nil {
			a.Time = *upd.Time
		}
		if upd.Duration != nil {
			a.Duration = *upd.Duration
		}
		if upd.Type != nil {
			a.Type = *upd.Type
		}
		if upd.Status != nil {
			a.Status = *upd.Status
		}
		if upd.Room != nil {
			a.Room = *upd.Room
		}
		if upd.Notes != nil {
			a.Notes = *upd.Notes
		}
		a.UpdatedAt = time.Now()
	})
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) {
	s.appts.Delete(ctx, id)
}

// List returns appointments matching the optional status filter and search
// query (case-insensitive over patient name, doctor name and id),
// AND-combined.
func (s *Service) List(ctx context.Context, status, query string) []Appointment {
	all := s.appts.List(ctx)
	if status == "" && query == "" {
		return all
	}
	q := strings.ToLower(query)
	var out []Appointment
	for _, a := range all {
		if status != "" && a.Status != status {
			continue
		}
		if q != "" && !matchesAppointment(a, q) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func matchesAppointment(a Appointment, q string) bool {
	return strings.Contains(strings.ToLower(a.PatientName), q) ||
		strings.Contains(strings.ToLower(a.DoctorName), q) ||
		strings.Contains(strings.ToLower(a.ID.String()), q)
}

// ListInWindow returns the appointments in the day/week/month window around
// ref.
func (s *Service) ListInWindow(ctx context.Context, ref time.Time, mode WindowMode) []Appointment {
	return AppointmentsInWindow(s.appts.List(ctx), WindowAround(ref, mode))
}
