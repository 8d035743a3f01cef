package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/klinikos/klinikos/internal/domain/billing"
	"github.com/klinikos/klinikos/internal/domain/medication"
	"github.com/klinikos/klinikos/internal/domain/patient"
	"github.com/klinikos/klinikos/internal/domain/scheduling"
)

// seedDemoData loads a small data set so a fresh server has something to
// show. Failures are logged and skipped, a partial seed is fine.
func seedDemoData(
	ctx context.Context,
	logger zerolog.Logger,
	patientSvc *patient.Service,
	schedulingSvc *scheduling.Service,
	medicationSvc *medication.Service,
	billingSvc *billing.Service,
) {
	patients := []*patient.Patient{
		{
			MRN:         "MRN-2026-0001",
			FirstName:   "Maria",
			LastName:    "Gonzalez",
			DateOfBirth: time.Date(1987, 4, 12, 0, 0, 0, 0, time.UTC),
			Gender:      "female",
			BloodType:   "O+",
			Allergies:   []string{"penicillin"},
			Status:      "admitted",
		},
		{
			MRN:         "MRN-2026-0002",
			FirstName:   "Omar",
			LastName:    "Haddad",
			DateOfBirth: time.Date(1963, 11, 2, 0, 0, 0, 0, time.UTC),
			Gender:      "male",
			BloodType:   "A-",
			Status:      "outpatient",
		},
	}
	for _, p := range patients {
		if err := patientSvc.CreatePatient(ctx, p); err != nil {
			logger.Warn().Err(err).Str("mrn", p.MRN).Msg("seeding patient")
		}
	}

	registry := []*medication.RegistryItem{
		{Name: "Amoxicillin", Dosage: "500mg", Route: "oral", UnitPrice: 12.50, StockQuantity: 120, ReorderLevel: 20},
		{Name: "Ibuprofen", Dosage: "400mg", Route: "oral", UnitPrice: 4.80, StockQuantity: 15, ReorderLevel: 30},
		{Name: "Morphine", Dosage: "10mg", Route: "iv", UnitPrice: 28.00, StockQuantity: 0, ReorderLevel: 10},
	}
	for _, item := range registry {
		if err := medicationSvc.CreateRegistryItem(ctx, item); err != nil {
			logger.Warn().Err(err).Str("name", item.Name).Msg("seeding medication")
		}
	}

	var patientID uuid.UUID
	var patientName string
	if len(patients) > 0 && patients[0].ID != uuid.Nil {
		patientID = patients[0].ID
		patientName = patients[0].FullName()
	}

	appt := &scheduling.Appointment{
		PatientID:   patientID,
		PatientName: patientName,
		DoctorName:  "Dr. Elena Alvarez",
		Date:        time.Now().AddDate(0, 0, 1),
		Time:        "10:30",
		Type:        "consultation",
	}
	if err := schedulingSvc.Create(ctx, appt); err != nil {
		logger.Warn().Err(err).Msg("seeding appointment")
	}

	invoice := &billing.Invoice{
		PatientID:   patientID,
		PatientName: patientName,
		Items: []billing.InvoiceItem{
			{Description: "Consultation", Quantity: 1, UnitPrice: 100.00},
			{Description: "Blood panel", Quantity: 1, UnitPrice: 45.50},
		},
	}
	if err := billingSvc.Create(ctx, invoice); err != nil {
		logger.Warn().Err(err).Msg("seeding invoice")
	}

	logger.Info().Msg("seeded demo data")
}
