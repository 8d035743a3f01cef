package emergency

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	cases Repository
}

func NewService(cases Repository) *Service {
	return &Service{cases: cases}
}

var validTriageColors = map[string]bool{
	"red": true, "orange": true, "yellow": true, "green": true, "blue": true,
}

var validCaseStatuses = map[string]bool{
	"waiting": true, "in_treatment": true, "admitted": true, "discharged": true,
}

func (s *Service) Create(ctx context.Context, c *Case) error {
	if c.PatientName == "" {
		return fmt.Errorf("patient_name is required")
	}
	if c.ChiefComplaint == "" {
		return fmt.Errorf("chief_complaint is required")
	}
	if c.TriageLevel < 1 || c.TriageLevel > 5 {
		return fmt.Errorf("triage_level must be between 1 and 5, got %d", c.TriageLevel)
	}
	if !validTriageColors[c.TriageColor] {
		return fmt.Errorf("invalid triage_color: %s", c.TriageColor)
	}
	if c.Status == "" {
		c.Status = "waiting"
	}
	if !validCaseStatuses[c.Status] {
		return fmt.Errorf("invalid status: %s", c.Status)
	}
	now := time.Now()
	if c.ArrivalTime.IsZero() {
		c.ArrivalTime = now
	}
	c.ID = uuid.New()
	c.CreatedAt = now
	c.UpdatedAt = now
	return s.cases.Create(ctx, c)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Case, error) {
	return s.cases.GetByID(ctx, id)
}

// List returns cases ordered by triage level (most urgent first), then
// arrival time, optionally filtered by status and a case-insensitive search
// over patient name and complaint.
func (s *Service) List(ctx context.Context, status, query string) []Case {
	all := s.cases.List(ctx)
	q := strings.ToLower(query)
	var out []Case
	for _, c := range all {
		if status != "" && c.Status != status {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(c.PatientName), q) &&
			!strings.Contains(strings.ToLower(c.ChiefComplaint), q) {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TriageLevel != out[j].TriageLevel {
			return out[i].TriageLevel < out[j].TriageLevel
		}
		return out[i].ArrivalTime.Before(out[j].ArrivalTime)
	})
	return out
}

// CaseUpdate carries a partial case update.
type CaseUpdate struct {
	TriageLevel *int    `json:"triage_level,omitempty"`
	TriageColor *string `json:"triage_color,omitempty"`
	AssignedTo  *string `json:"assigned_to,omitempty"`
	Status      *string `json:"status,omitempty"`
	Location    *string `json:"location,omitempty"`
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, upd CaseUpdate) error {
	if upd.TriageLevel != nil && (*upd.TriageLevel < 1 || *upd.TriageLevel > 5) {
		return fmt.Errorf("triage_level must be between 1 and 5, got %d", *upd.TriageLevel)
	}
	if upd.TriageColor != nil && !validTriageColors[*upd.TriageColor] {
		return fmt.Errorf("invalid triage_color: %s", *upd.TriageColor)
	}
	if upd.Status != nil && !validCaseStatuses[*upd.Status] {
		return fmt.Errorf("invalid status: %s", *upd.Status)
	}
	s.cases.Update(ctx, id, func(c *Case) {
		if upd.TriageLevel != nil {
			c.TriageLevel = *upd.TriageLevel
		}
		if upd.TriageColor != nil {
			c.TriageColor = *upd.TriageColor
		}
		if upd.AssignedTo != nil {
			c.AssignedTo = *upd.AssignedTo
		}
		if upd.Status != nil {
			c.Status = *upd.Status
		}
		if upd.Location != nil {
			c.Location = *upd.Location
		}
		c.UpdatedAt = time.Now()
	})
	return nil
}

// RecordVitals appends a vital sign observation to the case; unknown ids
// are silent no-ops.
func (s *Service) RecordVitals(ctx context.Context, id uuid.UUID, v VitalSign) error {
	if v.RecordedBy == "" {
		return fmt.Errorf("recorded_by is required")
	}
	if v.Timestamp.IsZero() {
		v.Timestamp = time.Now()
	}
	s.cases.Update(ctx, id, func(c *Case) {
		c.VitalSigns = append(c.VitalSigns, v)
		c.UpdatedAt = time.Now()
	})
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) {
	s.cases.Delete(ctx, id)
}
