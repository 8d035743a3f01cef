package main

import (
	"context"

	"github.com/google/uuid"

	"github.com/klinikos/klinikos/internal/domain/billing"
	"github.com/klinikos/klinikos/internal/domain/medication"
	"github.com/klinikos/klinikos/internal/domain/settings"
)

// prescriptionAdapter lets the billing service resolve prescription ids
// without importing the medication package.
type prescriptionAdapter struct {
	med *medication.Service
}

func (a *prescriptionAdapter) LookupPrescription(ctx context.Context, id uuid.UUID) (billing.PrescriptionInfo, bool) {
	p, err := a.med.GetPrescription(ctx, id)
	if err != nil {
		return billing.PrescriptionInfo{}, false
	}
	return billing.PrescriptionInfo{
		ID:        p.ID,
		PatientID: p.PatientID,
		Name:      p.Name,
		Dosage:    p.Dosage,
		Active:    p.Status == "active",
	}, true
}

// priceListAdapter resolves catalog prices by medication name and dosage.
type priceListAdapter struct {
	med *medication.Service
}

func (a *priceListAdapter) Price(ctx context.Context, name, dosage string) (float64, string, bool) {
	for _, item := range a.med.ListRegistry(ctx, "", "") {
		if item.Name == name && item.Dosage == dosage {
			return item.UnitPrice, item.ID.String(), true
		}
	}
	return 0, "", false
}

// letterheadAdapter feeds hospital settings into printable invoices.
type letterheadAdapter struct {
	settings *settings.Service
}

func (a *letterheadAdapter) Letterhead(ctx context.Context) billing.Letterhead {
	s := a.settings.Get(ctx)
	return billing.Letterhead{
		Name:    s.Name,
		Address: s.Address + ", " + s.City,
		Phone:   s.Phone,
		Email:   s.Email,
		TaxID:   s.TaxID,
	}
}
