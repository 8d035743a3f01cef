package identity

import (
	"time"

	"github.com/google/uuid"
)

// User is a staff or patient account. PasswordHash never leaves the
// server.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	HospitalID   string     `json:"hospital_id,omitempty"`
	DepartmentID string     `json:"department_id,omitempty"`
	IsActive     bool       `json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

var validRoles = map[string]bool{
	"superadmin":     true,
	"hospital_admin": true,
	"doctor":         true,
	"nurse":          true,
	"pharmacist":     true,
	"lab_technician": true,
	"radiologist":    true,
	"or_staff":       true,
	"emergency":      true,
	"billing":        true,
	"reception":      true,
	"patient":        true,
}
