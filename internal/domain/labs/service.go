package labs

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	orders Repository
}

func NewService(orders Repository) *Service {
	return &Service{orders: orders}
}

var validPriorities = map[string]bool{
	"routine": true, "urgent": true, "stat": true,
}

var validOrderStatuses = map[string]bool{
	"ordered": true, "collected": true, "processing": true, "completed": true, "cancelled": true,
}

var validTestStatuses = map[string]bool{
	"pending": true, "processing": true, "completed": true, "abnormal": true,
}

func (s *Service) Create(ctx context.Context, o *LabOrder) error {
	if o.PatientName == "" {
		return fmt.Errorf("patient_name is required")
	}
	if len(o.Tests) == 0 {
		return fmt.Errorf("at least one test is required")
	}
	if o.Priority == "" {
		o.Priority = "routine"
	}
	if !validPriorities[o.Priority] {
		return fmt.Errorf("invalid priority: %s", o.Priority)
	}
	if o.Status == "" {
		o.Status = "ordered"
	}
	if !validOrderStatuses[o.Status] {
		return fmt.Errorf("invalid status: %s", o.Status)
	}
	for i := range o.Tests {
		if o.Tests[i].Name == "" {
			return fmt.Errorf("test %d: name is required", i)
		}
		o.Tests[i].ID = uuid.New()
		if o.Tests[i].Status == "" {
			o.Tests[i].Status = "pending"
		}
		if !validTestStatuses[o.Tests[i].Status] {
			return fmt.Errorf("test %d: invalid status: %s", i, o.Tests[i].Status)
		}
	}
	now := time.Now()
	if o.OrderedAt.IsZero() {
		o.OrderedAt = now
	}
	o.ID = uuid.New()
	o.CreatedAt = now
	o.UpdatedAt = now
	return s.orders.Create(ctx, o)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*LabOrder, error) {
	return s.orders.GetByID(ctx, id)
}

// List returns orders newest first, optionally filtered by status, priority
// and a case-insensitive patient name search.
func (s *Service) List(ctx context.Context, status, priority, query string) []LabOrder {
	all := s.orders.List(ctx)
	q := strings.ToLower(query)
	var out []LabOrder
	for _, o := range all {
		if status != "" && o.Status != status {
			continue
		}
		if priority != "" && o.Priority != priority {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(o.PatientName), q) {
			continue
		}
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderedAt.After(out[j].OrderedAt)
	})
	return out
}

// OrderUpdate carries a partial order update. Tests are managed through
// UpdateTestResult, not here.
type OrderUpdate struct {
	Priority *string `json:"priority,omitempty"`
	Status   *string `json:"status,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, upd OrderUpdate) error {
	if upd.Priority != nil && !validPriorities[*upd.Priority] {
		return fmt.Errorf("invalid priority: %s", *upd.Priority)
	}
	if upd.Status != nil && !validOrderStatuses[*upd.Status] {
		return fmt.Errorf("invalid status: %s", *upd.Status)
	}
	s.orders.Update(ctx, id, func(o *LabOrder) {
		if upd.Priority != nil {
			o.Priority = *upd.Priority
		}
		if upd.Status != nil {
			o.Status = *upd.Status
		}
		if upd.Notes != nil {
			o.Notes = *upd.Notes
		}
		o.UpdatedAt = time.Now()
	})
	return nil
}

// UpdateTestResult records a result on one test within an order. When every
// test has reached a final state the order itself moves to completed.
func (s *Service) UpdateTestResult(ctx context.Context, orderID, testID uuid.UUID, result, unit, refRange, status string) error {
	if !validTestStatuses[status] {
		return fmt.Errorf("invalid test status: %s", status)
	}
	s.orders.Update(ctx, orderID, func(o *LabOrder) {
		for i := range o.Tests {
			if o.Tests[i].ID != testID {
				continue
			}
			o.Tests[i].Result = result
			o.Tests[i].Unit = unit
			o.Tests[i].ReferenceRange = refRange
			o.Tests[i].Status = status
			break
		}
		if o.Completed() && o.Status != "cancelled" {
			o.Status = "completed"
		}
		o.UpdatedAt = time.Now()
	})
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) {
	s.orders.Delete(ctx, id)
}
