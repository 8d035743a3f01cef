package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService() *Service {
	return NewService(NewMemRepository())
}

func validAppointment() *Appointment {
	return &Appointment{
		PatientID:   uuid.New(),
		PatientName: "Ana Popescu",
		DoctorID:    uuid.New(),
		DoctorName:  "Dr. Enache",
		Date:        date(2026, 6, 17),
		Time:        "10:30",
	}
}

func TestCreate_Defaults(t *testing.T) {
	svc := newTestService()
	a := validAppointment()
	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != "scheduled" {
		t.Errorf("expected default status scheduled, got %s", a.Status)
	}
	if a.Type != "consultation" {
		t.Errorf("expected default type consultation, got %s", a.Type)
	}
	if a.Duration != 30 {
		t.Errorf("expected default duration 30, got %d", a.Duration)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*Appointment)
	}{
		{"missing patient", func(a *Appointment) { a.PatientID = uuid.Nil }},
		{"missing patient name", func(a *Appointment) { a.PatientName = "" }},
		{"missing doctor name", func(a *Appointment) { a.DoctorName = "" }},
		{"missing date", func(a *Appointment) { a.Date = time.Time{} }},
		{"bad type", func(a *Appointment) { a.Type = "walk_in" }},
		{"bad status", func(a *Appointment) { a.Status = "postponed" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAppointment()
			tt.mutate(a)
			if err := svc.Create(ctx, a); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestUpdate_FreeFormStatusTransitions(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	a := validAppointment()
	_ = svc.Create(ctx, a)

	// completed straight back to scheduled is allowed
	for _, status := range []string{"completed", "scheduled", "cancelled", "in_progress"} {
		s := status
		if err := svc.Update(ctx, a.ID, AppointmentUpdate{Status: &s}); err != nil {
			t.Fatalf("transition to %s: %v", status, err)
		}
		got, _ := svc.Get(ctx, a.ID)
		if got.Status != status {
			t.Errorf("expected %s, got %s", status, got.Status)
		}
	}
}

func TestUpdate_UnknownIDIsNoOp(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	a := validAppointment()
	_ = svc.Create(ctx, a)

	status := "cancelled"
	if err := svc.Update(ctx, uuid.New(), AppointmentUpdate{Status: &status}); err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
	if got, _ := svc.Get(ctx, a.ID); got.Status != "scheduled" {
		t.Error("existing appointment changed by no-op update")
	}
	if len(svc.List(ctx, "", "")) != 1 {
		t.Error("no-op update must not insert")
	}
}

func TestList_SearchAndStatus(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	a := validAppointment()
	_ = svc.Create(ctx, a)

	b := validAppointment()
	b.PatientName = "Ion Ionescu"
	b.DoctorName = "Dr. Vlad"
	_ = svc.Create(ctx, b)

	status := "completed"
	_ = svc.Update(ctx, b.ID, AppointmentUpdate{Status: &status})

	if got := svc.List(ctx, "completed", ""); len(got) != 1 || got[0].ID != b.ID {
		t.Errorf("status filter failed")
	}
	if got := svc.List(ctx, "", "POPESCU"); len(got) != 1 || got[0].ID != a.ID {
		t.Errorf("case-insensitive patient search failed")
	}
	if got := svc.List(ctx, "", "vlad"); len(got) != 1 || got[0].ID != b.ID {
		t.Errorf("doctor search failed")
	}
	if got := svc.List(ctx, "scheduled", "ionescu"); len(got) != 0 {
		t.Errorf("AND combination failed: %v", got)
	}
}

func TestListInWindow(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	inWeek := validAppointment()
	inWeek.Date = date(2026, 6, 16)
	_ = svc.Create(ctx, inWeek)

	nextWeek := validAppointment()
	nextWeek.Date = date(2026, 6, 24)
	_ = svc.Create(ctx, nextWeek)

	got := svc.ListInWindow(ctx, date(2026, 6, 17), WindowWeek)
	if len(got) != 1 || got[0].ID != inWeek.ID {
		t.Errorf("expected only the in-week appointment, got %d", len(got))
	}

	month := svc.ListInWindow(ctx, date(2026, 6, 17), WindowMonth)
	if len(month) != 2 {
		t.Errorf("expected both June appointments, got %d", len(month))
	}
}
