package billing

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// VATRate is the tax rate applied to every invoice.
const VATRate = 0.19

// Invoice statuses.
const (
	StatusDraft     = "draft"
	StatusSent      = "sent"
	StatusPaid      = "paid"
	StatusOverdue   = "overdue"
	StatusCancelled = "cancelled"
)

// Invoice is a bill issued to a patient. PatientName is a snapshot taken at
// creation time.
type Invoice struct {
	ID            uuid.UUID     `json:"id"`
	PatientID     uuid.UUID     `json:"patient_id"`
	PatientName   string        `json:"patient_name"`
	Date          time.Time     `json:"date"`
	DueDate       time.Time     `json:"due_date"`
	Items         []InvoiceItem `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	Tax           float64       `json:"tax"`
	Total         float64       `json:"total"`
	Status        string        `json:"status"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	Kind          string        `json:"kind,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// InvoiceItem is one line of an invoice.
type InvoiceItem struct {
	ID             uuid.UUID  `json:"id"`
	Description    string     `json:"description"`
	Code           string     `json:"code,omitempty"`
	Quantity       int        `json:"quantity"`
	UnitPrice      float64    `json:"unit_price"`
	Total          float64    `json:"total"`
	PrescriptionID *uuid.UUID `json:"prescription_id,omitempty"`
}

// round2 rounds to cents.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Recalculate derives line totals, subtotal, tax and total. Tax and total
// are each rounded independently, so the result can differ by a cent from
// rounding only once at the end.
func (inv *Invoice) Recalculate() {
	var subtotal float64
	for i := range inv.Items {
		inv.Items[i].Total = round2(float64(inv.Items[i].Quantity) * inv.Items[i].UnitPrice)
		subtotal += inv.Items[i].Total
	}
	inv.Subtotal = round2(subtotal)
	inv.Tax = round2(inv.Subtotal * VATRate)
	inv.Total = round2(inv.Subtotal + inv.Tax)
}

// Unpaid reports whether the invoice still counts toward a patient's open
// balance.
func (inv *Invoice) Unpaid() bool {
	return inv.Status != StatusPaid && inv.Status != StatusCancelled
}
