package patient

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService() *Service {
	return NewService(NewMemPatientRepository(), NewMemVisitRepository(), NewMemFileRepository())
}

func validPatient() *Patient {
	return &Patient{
		MRN:         "MRN-001",
		FirstName:   "Ana",
		LastName:    "Popescu",
		DateOfBirth: time.Date(1984, 3, 12, 0, 0, 0, 0, time.UTC),
		Gender:      "female",
	}
}

func TestCreatePatient(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	p := validPatient()
	if err := svc.CreatePatient(ctx, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
	if p.Status != "outpatient" {
		t.Errorf("expected default status outpatient, got %s", p.Status)
	}

	got, err := svc.GetPatient(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FullName() != "Ana Popescu" {
		t.Errorf("unexpected name %s", got.FullName())
	}
}

func TestCreatePatient_Validation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*Patient)
	}{
		{"missing mrn", func(p *Patient) { p.MRN = "" }},
		{"missing first name", func(p *Patient) { p.FirstName = "" }},
		{"missing dob", func(p *Patient) { p.DateOfBirth = time.Time{} }},
		{"bad gender", func(p *Patient) { p.Gender = "unknown" }},
		{"bad status", func(p *Patient) { p.Status = "lost" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPatient()
			tt.mutate(p)
			if err := svc.CreatePatient(ctx, p); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestUpdatePatient_UnknownIDIsNoOp(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	p := validPatient()
	if err := svc.CreatePatient(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Maria"
	if err := svc.UpdatePatient(ctx, uuid.New(), PatientUpdate{FirstName: &name}); err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}

	got, _ := svc.GetPatient(ctx, p.ID)
	if got.FirstName != "Ana" {
		t.Errorf("existing record changed by no-op update: %s", got.FirstName)
	}
	if len(svc.ListPatients(ctx, "", "")) != 1 {
		t.Error("no-op update must not insert")
	}
}

func TestUpdatePatient_Partial(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	p := validPatient()
	_ = svc.CreatePatient(ctx, p)

	status := "admitted"
	if err := svc.UpdatePatient(ctx, p.ID, PatientUpdate{Status: &status}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, _ := svc.GetPatient(ctx, p.ID)
	if got.Status != "admitted" {
		t.Errorf("expected admitted, got %s", got.Status)
	}
	if got.FirstName != "Ana" {
		t.Error("untouched field was modified")
	}
}

func TestListPatients_Filters(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	a := validPatient()
	_ = svc.CreatePatient(ctx, a)

	b := validPatient()
	b.MRN = "MRN-002"
	b.FirstName = "Ion"
	b.LastName = "Ionescu"
	b.Gender = "male"
	b.Status = "admitted"
	_ = svc.CreatePatient(ctx, b)

	if got := svc.ListPatients(ctx, "admitted", ""); len(got) != 1 || got[0].ID != b.ID {
		t.Errorf("status filter failed: %v", got)
	}
	if got := svc.ListPatients(ctx, "", "popescu"); len(got) != 1 || got[0].ID != a.ID {
		t.Errorf("name search failed: %v", got)
	}
	if got := svc.ListPatients(ctx, "", "MRN-002"); len(got) != 1 || got[0].ID != b.ID {
		t.Errorf("mrn search failed: %v", got)
	}
	// AND combination: admitted AND popescu matches nothing
	if got := svc.ListPatients(ctx, "admitted", "popescu"); len(got) != 0 {
		t.Errorf("expected no match, got %v", got)
	}
}

func TestDeletePatient_NoCascade(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	p := validPatient()
	_ = svc.CreatePatient(ctx, p)

	v := &Visit{PatientID: p.ID, DoctorName: "Dr. Enache", ChiefComplaint: "fever"}
	if err := svc.AddVisit(ctx, v); err != nil {
		t.Fatalf("add visit: %v", err)
	}

	svc.DeletePatient(ctx, p.ID)
	// deleting twice stays silent
	svc.DeletePatient(ctx, p.ID)

	if _, err := svc.GetPatient(ctx, p.ID); err == nil {
		t.Error("expected patient to be gone")
	}
	visits := svc.ListVisits(ctx, p.ID)
	if len(visits) != 1 {
		t.Fatalf("visits must survive patient deletion, got %d", len(visits))
	}
	if visits[0].DoctorName != "Dr. Enache" {
		t.Error("visit snapshot changed")
	}
}

func TestAddVisit_UnknownPatient(t *testing.T) {
	svc := newTestService()
	v := &Visit{PatientID: uuid.New(), ChiefComplaint: "fever"}
	if err := svc.AddVisit(context.Background(), v); err == nil {
		t.Error("expected error for unknown patient")
	}
}

func TestListVisits_NewestFirst(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	p := validPatient()
	_ = svc.CreatePatient(ctx, p)

	old := &Visit{PatientID: p.ID, ChiefComplaint: "checkup", Date: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)}
	recent := &Visit{PatientID: p.ID, ChiefComplaint: "followup", Date: time.Date(2026, 2, 5, 9, 0, 0, 0, time.UTC)}
	_ = svc.AddVisit(ctx, old)
	_ = svc.AddVisit(ctx, recent)

	visits := svc.ListVisits(ctx, p.ID)
	if len(visits) != 2 {
		t.Fatalf("expected 2 visits, got %d", len(visits))
	}
	if visits[0].ChiefComplaint != "followup" {
		t.Error("expected newest visit first")
	}
}

func TestFiles(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	p := validPatient()
	_ = svc.CreatePatient(ctx, p)

	f := &File{PatientID: p.ID, Name: "xray.png", Kind: "image", URI: "file:///scans/xray.png"}
	if err := svc.AddFile(ctx, f); err != nil {
		t.Fatalf("add file: %v", err)
	}
	if got := svc.ListFiles(ctx, p.ID); len(got) != 1 {
		t.Fatalf("expected 1 file, got %d", len(got))
	}

	svc.DeleteFile(ctx, f.ID)
	if got := svc.ListFiles(ctx, p.ID); len(got) != 0 {
		t.Error("expected file to be deleted")
	}
}
