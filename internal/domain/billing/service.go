package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DueDays is the payment window granted on new invoices.
const DueDays = 30

type Service struct {
	invoices      Repository
	prescriptions PrescriptionSource
	prices        PriceList
}

func NewService(invoices Repository, prescriptions PrescriptionSource, prices PriceList) *Service {
	return &Service{invoices: invoices, prescriptions: prescriptions, prices: prices}
}

var validInvoiceStatuses = map[string]bool{
	StatusDraft: true, StatusSent: true, StatusPaid: true,
	StatusOverdue: true, StatusCancelled: true,
}

func (s *Service) Create(ctx context.Context, inv *Invoice) error {
	if inv.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if inv.PatientName == "" {
		return fmt.Errorf("patient_name is required")
	}
	if len(inv.Items) == 0 {
		return fmt.Errorf("at least one item is required")
	}
	for i := range inv.Items {
		if inv.Items[i].Quantity <= 0 {
			return fmt.Errorf("item quantity must be positive")
		}
		if inv.Items[i].UnitPrice < 0 {
			return fmt.Errorf("item unit_price must not be negative")
		}
		if inv.Items[i].ID == uuid.Nil {
			inv.Items[i].ID = uuid.New()
		}
	}
	if inv.Status == "" {
		inv.Status = StatusDraft
	}
	if !validInvoiceStatuses[inv.Status] {
		return fmt.Errorf("invalid status: %s", inv.Status)
	}
	now := time.Now()
	if inv.Date.IsZero() {
		inv.Date = now
	}
	if inv.DueDate.IsZero() {
		inv.DueDate = inv.Date.AddDate(0, 0, DueDays)
	}
	inv.ID = uuid.New()
	inv.Recalculate()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	return s.invoices.Create(ctx, inv)
}

// BuildFromPrescriptions creates a draft medication invoice for the patient.
// Each prescription id that resolves to an active prescription of that
// patient with a priced catalog match becomes a quantity-1 line; ids that
// don't resolve are skipped, never failing the batch. Stock is untouched.
func (s *Service) BuildFromPrescriptions(ctx context.Context, patientID uuid.UUID, patientName string, prescriptionIDs []uuid.UUID) (*Invoice, error) {
	if patientID == uuid.Nil {
		return nil, fmt.Errorf("patient_id is required")
	}
	if patientName == "" {
		return nil, fmt.Errorf("patient_name is required")
	}

	var items []InvoiceItem
	for _, pid := range prescriptionIDs {
		info, ok := s.prescriptions.LookupPrescription(ctx, pid)
		if !ok || !info.Active || info.PatientID != patientID {
			continue
		}
		price, code, ok := s.prices.Price(ctx, info.Name, info.Dosage)
		if !ok {
			continue
		}
		presID := pid
		items = append(items, InvoiceItem{
			ID:             uuid.New(),
			Description:    info.Name + " - " + info.Dosage,
			Code:           code,
			Quantity:       1,
			UnitPrice:      price,
			PrescriptionID: &presID,
		})
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no billable prescriptions")
	}

	now := time.Now()
	inv := &Invoice{
		ID:          uuid.New(),
		PatientID:   patientID,
		PatientName: patientName,
		Date:        now,
		DueDate:     now.AddDate(0, 0, DueDays),
		Items:       items,
		Status:      StatusDraft,
		Kind:        "medication",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	inv.Recalculate()
	if err := s.invoices.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.invoices.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) []Invoice {
	return s.invoices.List(ctx)
}

// Filter returns invoices matching the status filter AND the
// case-insensitive query over invoice id and patient name.
func (s *Service) Filter(ctx context.Context, status, query string) []Invoice {
	all := s.invoices.List(ctx)
	if status == "" && query == "" {
		return all
	}
	q := strings.ToLower(query)
	var out []Invoice
	for _, inv := range all {
		if status != "" && inv.Status != status {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(inv.ID.String()), q) &&
			!strings.Contains(strings.ToLower(inv.PatientName), q) {
			continue
		}
		out = append(out, inv)
	}
	return out
}

// InvoiceUpdate carries a partial invoice update. Items replace wholesale;
// totals are recomputed.
type InvoiceUpdate struct {
	Items         *[]InvoiceItem `json:"items,omitempty"`
	Status        *string        `json:"status,omitempty"`
	PaymentMethod *string        `json:"payment_method,omitempty"`
	DueDate       *time.Time     `json:"due_date,omitempty"`
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, upd InvoiceUpdate) error {
	if upd.Status != nil && !validInvoiceStatuses[*upd.Status] {
		return fmt.Errorf("invalid status: %s", *upd.Status)
	}
	s.invoices.Update(ctx, id, func(inv *Invoice) {
		if upd.Items != nil {
			inv.Items = *upd.Items
			for i := range inv.Items {
				if inv.Items[i].ID == uuid.Nil {
					inv.Items[i].ID = uuid.New()
				}
			}
			inv.Recalculate()
		}
		if upd.Status != nil {
			inv.Status = *upd.Status
		}
		if upd.PaymentMethod != nil {
			inv.PaymentMethod = *upd.PaymentMethod
		}
		if upd.DueDate != nil {
			inv.DueDate = *upd.DueDate
		}
		inv.UpdatedAt = time.Now()
	})
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) {
	s.invoices.Delete(ctx, id)
}
