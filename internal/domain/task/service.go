package task

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	tasks         Repository
	notifications NotificationRepository
}

func NewService(tasks Repository, notifications NotificationRepository) *Service {
	return &Service{tasks: tasks, notifications: notifications}
}

var validPriorities = map[string]bool{
	"low": true, "medium": true, "high": true, "urgent": true,
}

var validTaskStatuses = map[string]bool{
	"pending": true, "in_progress": true, "completed": true, "cancelled": true,
}

func (s *Service) Create(ctx context.Context, t *Task) error {
	if t.Title == "" {
		return fmt.Errorf("title is required")
	}
	if t.Priority == "" {
		t.Priority = "medium"
	}
	if !validPriorities[t.Priority] {
		return fmt.Errorf("invalid priority: %s", t.Priority)
	}
	if t.Status == "" {
		t.Status = "pending"
	}
	if !validTaskStatuses[t.Status] {
		return fmt.Errorf("invalid status: %s", t.Status)
	}
	now := time.Now()
	t.ID = uuid.New()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.tasks.Create(ctx, t)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Task, error) {
	return s.tasks.GetByID(ctx, id)
}

// List returns tasks newest first, optionally filtered by status, assignee
// and a case-insensitive title search.
func (s *Service) List(ctx context.Context, status, assignedTo, query string) []Task {
	all := s.tasks.List(ctx)
	q := strings.ToLower(query)
	var out []Task
	for _, t := range all {
		if status != "" && t.Status != status {
			continue
		}
		if assignedTo != "" && t.AssignedTo != assignedTo {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.PatientName), q) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// TaskUpdate carries a partial task update.
type TaskUpdate struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	AssignedTo  *string    `json:"assigned_to,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	Status      *string    `json:"status,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, upd TaskUpdate) error {
	if upd.Priority != nil && !validPriorities[*upd.Priority] {
		return fmt.Errorf("invalid priority: %s", *upd.Priority)
	}
	if upd.Status != nil && !validTaskStatuses[*upd.Status] {
		return fmt.Errorf("invalid status: %s", *upd.Status)
	}
	s.tasks.Update(ctx, id, func(t *Task) {
		if upd.Title != nil {
			t.Title = *upd.Title
		}
		if upd.Description != nil {
			t.Description = *upd.Description
		}
		if upd.AssignedTo != nil {
			t.AssignedTo = *upd.AssignedTo
		}
		if upd.Priority != nil {
			t.Priority = *upd.Priority
		}
		if upd.Status != nil {
			t.Status = *upd.Status
		}
		if upd.DueDate != nil {
			t.DueDate = upd.DueDate
		}
		t.UpdatedAt = time.Now()
	})
	return nil
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !validTaskStatuses[status] {
		return fmt.Errorf("invalid status: %s", status)
	}
	s.tasks.Update(ctx, id, func(t *Task) {
		t.Status = status
		t.UpdatedAt = time.Now()
	})
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) {
	s.tasks.Delete(ctx, id)
}

var validNotificationTypes = map[string]bool{
	"info": true, "warning": true, "error": true, "success": true,
}

func (s *Service) Notify(ctx context.Context, n *Notification) error {
	if n.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	if n.Title == "" {
		return fmt.Errorf("title is required")
	}
	if n.Type == "" {
		n.Type = "info"
	}
	if !validNotificationTypes[n.Type] {
		return fmt.Errorf("invalid type: %s", n.Type)
	}
	n.ID = uuid.New()
	n.Read = false
	n.CreatedAt = time.Now()
	return s.notifications.Create(ctx, n)
}

// Notifications returns a user's inbox with unread entries first, newest
// first within each group.
func (s *Service) Notifications(ctx context.Context, userID uuid.UUID) []Notification {
	all := s.notifications.List(ctx)
	var out []Notification
	for _, n := range all {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Read != out[j].Read {
			return !out[i].Read
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *Service) MarkRead(ctx context.Context, id uuid.UUID) {
	s.notifications.Update(ctx, id, func(n *Notification) {
		n.Read = true
	})
}

func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) {
	for _, n := range s.notifications.List(ctx) {
		if n.UserID == userID && !n.Read {
			s.notifications.Update(ctx, n.ID, func(n *Notification) {
				n.Read = true
			})
		}
	}
}
