package medication

import (
	"time"

	"github.com/google/uuid"
)

// Stock status classes for registry items. Status is derived from quantity
// and reorder level; it is never accepted from callers.
const (
	StatusAvailable  = "available"
	StatusLowStock   = "low_stock"
	StatusOutOfStock = "out_of_stock"
)

// RegistryItem is an entry in the medication catalog with live stock
// tracking.
type RegistryItem struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Dosage        string    `json:"dosage"`
	Route         string    `json:"route"`
	UnitPrice     float64   `json:"unit_price"`
	StockQuantity int       `json:"stock_quantity"`
	ReorderLevel  int       `json:"reorder_level"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StockStatus classifies quantity against the reorder level.
func StockStatus(quantity, reorderLevel int) string {
	switch {
	case quantity == 0:
		return StatusOutOfStock
	case quantity <= reorderLevel:
		return StatusLowStock
	default:
		return StatusAvailable
	}
}

// Prescription assigns a catalog medication to a patient. Name, dosage and
// route are copied from the registry item at assignment time.
type Prescription struct {
	ID           uuid.UUID  `json:"id"`
	PatientID    uuid.UUID  `json:"patient_id"`
	RegistryID   uuid.UUID  `json:"registry_id"`
	Name         string     `json:"name"`
	Dosage       string     `json:"dosage"`
	Route        string     `json:"route"`
	Frequency    string     `json:"frequency"`
	Instructions string     `json:"instructions,omitempty"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	PrescribedBy string     `json:"prescribed_by"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
