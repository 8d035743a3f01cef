package medication

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	registry      RegistryRepository
	prescriptions PrescriptionRepository

	// assignMu serializes stock decrements so concurrent assignments
	// cannot drive quantity below zero.
	assignMu sync.Mutex
}

func NewService(registry RegistryRepository, prescriptions PrescriptionRepository) *Service {
	return &Service{registry: registry, prescriptions: prescriptions}
}

var validRoutes = map[string]bool{
	"oral": true, "iv": true, "im": true, "topical": true, "other": true,
}

var validPrescriptionStatuses = map[string]bool{
	"active": true, "completed": true, "discontinued": true,
}

func (s *Service) CreateRegistryItem(ctx context.Context, item *RegistryItem) error {
	if item.Name == "" {
		return fmt.Errorf("name is required")
	}
	if item.Dosage == "" {
		return fmt.Errorf("dosage is required")
	}
	if item.Route == "" {
		item.Route = "oral"
	}
	if !validRoutes[item.Route] {
		return fmt.Errorf("invalid route: %s", item.Route)
	}
	if item.UnitPrice < 0 {
		return fmt.Errorf("unit_price must not be negative")
	}
	if item.StockQuantity < 0 {
		return fmt.Errorf("stock_quantity must not be negative")
	}
	if item.ReorderLevel < 0 {
		return fmt.Errorf("reorder_level must not be negative")
	}
	item.ID = uuid.New()
	item.Status = StockStatus(item.StockQuantity, item.ReorderLevel)
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	return s.registry.Create(ctx, item)
}

func (s *Service) GetRegistryItem(ctx context.Context, id uuid.UUID) (*RegistryItem, error) {
	return s.registry.GetByID(ctx, id)
}

// ListRegistry returns catalog entries, optionally filtered by derived
// status and a case-insensitive name search.
func (s *Service) ListRegistry(ctx context.Context, status, query string) []RegistryItem {
	all := s.registry.List(ctx)
	if status == "" && query == "" {
		return all
	}
	q := strings.ToLower(query)
	var out []RegistryItem
	for _, item := range all {
		if status != "" && item.Status != status {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(item.Name), q) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// RegistryItemUpdate carries a partial catalog update. Status is absent on
// purpose: it is always recomputed.
type RegistryItemUpdate struct {
	Name          *string  `json:"name,omitempty"`
	Dosage        *string  `json:"dosage,omitempty"`
	Route         *string  `json:"route,omitempty"`
	UnitPrice     *float64 `json:"unit_price,omitempty"`
	StockQuantity *int     `json:"stock_quantity,omitempty"`
	ReorderLevel  *int     `json:"reorder_level,omitempty"`
}

// UpdateRegistryItem applies a partial update and reclassifies stock status.
// Unknown ids are silent no-ops.
func (s *Service) UpdateRegistryItem(ctx context.Context, id uuid.UUID, upd RegistryItemUpdate) error {
	if upd.Route != nil && !validRoutes[*upd.Route] {
		return fmt.Errorf("invalid route: %s", *upd.Route)
	}
	if upd.UnitPrice != nil && *upd.UnitPrice < 0 {
		return fmt.Errorf("unit_price must not be negative")
	}
	if upd.StockQuantity != nil && *upd.StockQuantity < 0 {
		return fmt.Errorf("stock_quantity must not be negative")
	}
	if upd.ReorderLevel != nil && *upd.ReorderLevel < 0 {
		return fmt.Errorf("reorder_level must not be negative")
	}

	// Stock changes share a lock with Assign so an admin write cannot land
	// between its zero check and the decrement.
	s.assignMu.Lock()
	defer s.assignMu.Unlock()

	s.registry.Update(ctx, id, func(item *RegistryItem) {
		if upd.Name != nil {
			item.Name = *upd.Name
		}
		if upd.Dosage != nil {
			item.Dosage = *upd.Dosage
		}
		if upd.Route != nil {
			item.Route = *upd.Route
		}
		if upd.UnitPrice != nil {
			item.UnitPrice = *upd.UnitPrice
		}
		if upd.StockQuantity != nil {
			item.StockQuantity = *upd.StockQuantity
		}
		if upd.ReorderLevel != nil {
			item.ReorderLevel = *upd.ReorderLevel
		}
		item.Status = StockStatus(item.StockQuantity, item.ReorderLevel)
		item.UpdatedAt = time.Now()
	})
	return nil
}

func (s *Service) DeleteRegistryItem(ctx context.Context, id uuid.UUID) {
	s.registry.Delete(ctx, id)
}

// AssignInput are the caller-supplied fields of an assignment.
type AssignInput struct {
	PatientID    uuid.UUID  `json:"patient_id"`
	RegistryID   uuid.UUID  `json:"registry_id"`
	Frequency    string     `json:"frequency"`
	Instructions string     `json:"instructions,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	PrescribedBy string     `json:"prescribed_by"`
}

// Assign creates an active prescription from a catalog item, copying its
// name, dosage and route, and consumes exactly one unit of stock. An item
// with zero stock rejects the assignment.
func (s *Service) Assign(ctx context.Context, in AssignInput) (*Prescription, error) {
	if in.PatientID == uuid.Nil {
		return nil, fmt.Errorf("patient_id is required")
	}
	if in.Frequency == "" {
		return nil, fmt.Errorf("frequency is required")
	}
	if in.PrescribedBy == "" {
		return nil, fmt.Errorf("prescribed_by is required")
	}

	s.assignMu.Lock()
	defer s.assignMu.Unlock()

	item, err := s.registry.GetByID(ctx, in.RegistryID)
	if err != nil {
		return nil, fmt.Errorf("registry item %s: %w", in.RegistryID, err)
	}
	if item.StockQuantity == 0 {
		return nil, ErrOutOfStock
	}

	now := time.Now()
	p := &Prescription{
		ID:           uuid.New(),
		PatientID:    in.PatientID,
		RegistryID:   item.ID,
		Name:         item.Name,
		Dosage:       item.Dosage,
		Route:        item.Route,
		Frequency:    in.Frequency,
		Instructions: in.Instructions,
		StartDate:    now,
		EndDate:      in.EndDate,
		PrescribedBy: in.PrescribedBy,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.prescriptions.Create(ctx, p); err != nil {
		return nil, err
	}

	s.registry.Update(ctx, item.ID, func(it *RegistryItem) {
		it.StockQuantity--
		it.Status = StockStatus(it.StockQuantity, it.ReorderLevel)
		it.UpdatedAt = now
	})
	return p, nil
}

func (s *Service) GetPrescription(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return s.prescriptions.GetByID(ctx, id)
}

func (s *Service) ListPrescriptionsByPatient(ctx context.Context, patientID uuid.UUID) []Prescription {
	return s.prescriptions.ListByPatient(ctx, patientID)
}

func (s *Service) ListPrescriptions(ctx context.Context) []Prescription {
	return s.prescriptions.List(ctx)
}

// PrescriptionUpdate carries a partial prescription update.
type PrescriptionUpdate struct {
	Frequency    *string    `json:"frequency,omitempty"`
	Instructions *string    `json:"instructions,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Status       *string    `json:"status,omitempty"`
}

func (s *Service) UpdatePrescription(ctx context.Context, id uuid.UUID, upd PrescriptionUpdate) error {
	if upd.Status != nil && !validPrescriptionStatuses[*upd.Status] {
		return fmt.Errorf("invalid status: %s", *upd.Status)
	}
	s.prescriptions.Update(ctx, id, func(p *Prescription) {
		if upd.Frequency != nil {
			p.Frequency = *upd.Frequency
		}
		if upd.Instructions != nil {
			p.Instructions = *upd.Instructions
		}
		if upd.EndDate != nil {
			p.EndDate = upd.EndDate
		}
		if upd.Status != nil {
			p.Status = *upd.Status
		}
		p.UpdatedAt = time.Now()
	})
	return nil
}

// Discontinue marks a prescription discontinued. Stock is not returned.
func (s *Service) Discontinue(ctx context.Context, id uuid.UUID) {
	s.prescriptions.Update(ctx, id, func(p *Prescription) {
		p.Status = "discontinued"
		now := time.Now()
		p.EndDate = &now
		p.UpdatedAt = now
	})
}

func (s *Service) DeletePrescription(ctx context.Context, id uuid.UUID) {
	s.prescriptions.Delete(ctx, id)
}
