package emergency

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService() *Service {
	return NewService(NewMemRepository())
}

func mustCreate(t *testing.T, svc *Service, c *Case) *Case {
	t.Helper()
	if err := svc.Create(context.Background(), c); err != nil {
		t.Fatalf("create case: %v", err)
	}
	return c
}

func TestCreateDefaults(t *testing.T) {
	svc := newTestService()
	c := mustCreate(t, svc, &Case{
		PatientName:    "Lena Ortiz",
		ChiefComplaint: "chest pain",
		TriageLevel:    2,
		TriageColor:    "orange",
	})
	if c.ID == uuid.Nil {
		t.Fatal("expected id to be assigned")
	}
	if c.Status != "waiting" {
		t.Fatalf("expected default status waiting, got %s", c.Status)
	}
	if c.ArrivalTime.IsZero() {
		t.Fatal("expected arrival time to default to now")
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService()
	cases := []Case{
		{ChiefComplaint: "fall", TriageLevel: 3, TriageColor: "yellow"},
		{PatientName: "A", TriageLevel: 3, TriageColor: "yellow"},
		{PatientName: "A", ChiefComplaint: "fall", TriageLevel: 0, TriageColor: "yellow"},
		{PatientName: "A", ChiefComplaint: "fall", TriageLevel: 6, TriageColor: "yellow"},
		{PatientName: "A", ChiefComplaint: "fall", TriageLevel: 3, TriageColor: "purple"},
		{PatientName: "A", ChiefComplaint: "fall", TriageLevel: 3, TriageColor: "yellow", Status: "unknown"},
	}
	for i, c := range cases {
		if err := svc.Create(context.Background(), &c); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestListSortedByTriageThenArrival(t *testing.T) {
	svc := newTestService()
	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	mustCreate(t, svc, &Case{PatientName: "Late Green", ChiefComplaint: "sprain", TriageLevel: 4, TriageColor: "green", ArrivalTime: base.Add(2 * time.Hour)})
	mustCreate(t, svc, &Case{PatientName: "Second Red", ChiefComplaint: "trauma", TriageLevel: 1, TriageColor: "red", ArrivalTime: base.Add(time.Hour)})
	mustCreate(t, svc, &Case{PatientName: "First Red", ChiefComplaint: "cardiac arrest", TriageLevel: 1, TriageColor: "red", ArrivalTime: base})
	mustCreate(t, svc, &Case{PatientName: "Yellow", ChiefComplaint: "fracture", TriageLevel: 3, TriageColor: "yellow", ArrivalTime: base})

	got := svc.List(context.Background(), "", "")
	want := []string{"First Red", "Second Red", "Yellow", "Late Green"}
	if len(got) != len(want) {
		t.Fatalf("expected %d cases, got %d", len(want), len(got))
	}
	for i, name := range want {
		if got[i].PatientName != name {
			t.Errorf("position %d: expected %s, got %s", i, name, got[i].PatientName)
		}
	}
}

func TestListFilterAndSearch(t *testing.T) {
	svc := newTestService()
	mustCreate(t, svc, &Case{PatientName: "Maria Gonzalez", ChiefComplaint: "abdominal pain", TriageLevel: 3, TriageColor: "yellow"})
	admitted := mustCreate(t, svc, &Case{PatientName: "Omar Haddad", ChiefComplaint: "head injury", TriageLevel: 2, TriageColor: "orange"})
	if err := svc.Update(context.Background(), admitted.ID, CaseUpdate{Status: strPtr("admitted")}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got := svc.List(context.Background(), "admitted", "")
	if len(got) != 1 || got[0].PatientName != "Omar Haddad" {
		t.Fatalf("expected only the admitted case, got %v", got)
	}

	got = svc.List(context.Background(), "", "ABDOMINAL")
	if len(got) != 1 || got[0].PatientName != "Maria Gonzalez" {
		t.Fatalf("expected complaint search match, got %v", got)
	}

	got = svc.List(context.Background(), "admitted", "maria")
	if len(got) != 0 {
		t.Fatalf("expected status and search filters to combine, got %v", got)
	}
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	svc := newTestService()
	if err := svc.Update(context.Background(), uuid.New(), CaseUpdate{Status: strPtr("discharged")}); err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
}

func TestUpdateValidation(t *testing.T) {
	svc := newTestService()
	c := mustCreate(t, svc, &Case{PatientName: "A", ChiefComplaint: "fall", TriageLevel: 3, TriageColor: "yellow"})
	if err := svc.Update(context.Background(), c.ID, CaseUpdate{TriageLevel: intPtr(7)}); err == nil {
		t.Error("expected triage level validation error")
	}
	if err := svc.Update(context.Background(), c.ID, CaseUpdate{TriageColor: strPtr("magenta")}); err == nil {
		t.Error("expected triage color validation error")
	}
	if err := svc.Update(context.Background(), c.ID, CaseUpdate{Status: strPtr("vanished")}); err == nil {
		t.Error("expected status validation error")
	}
}

func TestRecordVitals(t *testing.T) {
	svc := newTestService()
	c := mustCreate(t, svc, &Case{PatientName: "A", ChiefComplaint: "fever", TriageLevel: 4, TriageColor: "green"})

	temp := 38.9
	hr := 104
	if err := svc.RecordVitals(context.Background(), c.ID, VitalSign{Temperature: &temp, HeartRate: &hr, RecordedBy: "nurse.kim"}); err != nil {
		t.Fatalf("record vitals: %v", err)
	}
	got, err := svc.Get(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.VitalSigns) != 1 {
		t.Fatalf("expected 1 vital sign, got %d", len(got.VitalSigns))
	}
	if got.VitalSigns[0].Timestamp.IsZero() {
		t.Error("expected timestamp to default to now")
	}

	if err := svc.RecordVitals(context.Background(), c.ID, VitalSign{HeartRate: &hr}); err == nil {
		t.Error("expected recorded_by validation error")
	}
}

func TestDeleteIdempotent(t *testing.T) {
	svc := newTestService()
	c := mustCreate(t, svc, &Case{PatientName: "A", ChiefComplaint: "fall", TriageLevel: 3, TriageColor: "yellow"})
	svc.Delete(context.Background(), c.ID)
	svc.Delete(context.Background(), c.ID)
	if _, err := svc.Get(context.Background(), c.ID); err == nil {
		t.Fatal("expected case to be gone")
	}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
