package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/klinikos/klinikos/internal/domain/medication"
	"github.com/klinikos/klinikos/internal/domain/settings"
	"github.com/klinikos/klinikos/internal/platform/kvstore"
)

func newMedicationService(t *testing.T) *medication.Service {
	t.Helper()
	return medication.NewService(medication.NewMemRegistryRepository(), medication.NewMemPrescriptionRepository())
}

func TestPrescriptionAdapter(t *testing.T) {
	med := newMedicationService(t)
	ctx := context.Background()

	item := &medication.RegistryItem{Name: "Amoxicillin", Dosage: "500mg", Route: "oral", UnitPrice: 12.50, StockQuantity: 5, ReorderLevel: 1}
	if err := med.CreateRegistryItem(ctx, item); err != nil {
		t.Fatalf("create registry item: %v", err)
	}
	p, err := med.Assign(ctx, medication.AssignInput{
		PatientID:    uuid.New(),
		RegistryID:   item.ID,
		Frequency:    "2x daily",
		PrescribedBy: "dr.alvarez",
	})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}

	adapter := &prescriptionAdapter{med: med}
	info, ok := adapter.LookupPrescription(ctx, p.ID)
	if !ok {
		t.Fatal("expected prescription to resolve")
	}
	if info.Name != "Amoxicillin" || info.Dosage != "500mg" || !info.Active {
		t.Fatalf("unexpected info: %+v", info)
	}

	if _, ok := adapter.LookupPrescription(ctx, uuid.New()); ok {
		t.Fatal("expected unknown id to miss")
	}
}

func TestPriceListAdapter(t *testing.T) {
	med := newMedicationService(t)
	ctx := context.Background()

	item := &medication.RegistryItem{Name: "Ibuprofen", Dosage: "400mg", Route: "oral", UnitPrice: 4.80, StockQuantity: 10, ReorderLevel: 1}
	if err := med.CreateRegistryItem(ctx, item); err != nil {
		t.Fatalf("create registry item: %v", err)
	}

	adapter := &priceListAdapter{med: med}
	price, code, ok := adapter.Price(ctx, "Ibuprofen", "400mg")
	if !ok || price != 4.80 || code != item.ID.String() {
		t.Fatalf("unexpected price lookup: price=%v code=%s ok=%v", price, code, ok)
	}

	if _, _, ok := adapter.Price(ctx, "Ibuprofen", "200mg"); ok {
		t.Fatal("expected dosage mismatch to miss")
	}
}

func TestLetterheadAdapter(t *testing.T) {
	kv, err := kvstore.Open(filepath.Join(t.TempDir(), "main.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })

	svc := settings.NewService(kv, zerolog.Nop())
	adapter := &letterheadAdapter{settings: svc}

	lh := adapter.Letterhead(context.Background())
	defaults := settings.Defaults()
	if lh.Name != defaults.Name {
		t.Fatalf("expected letterhead name %q, got %q", defaults.Name, lh.Name)
	}
	if lh.Address == "" || lh.Phone == "" {
		t.Fatalf("expected populated letterhead, got %+v", lh)
	}
}
