package identity

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/klinikos/klinikos/internal/platform/auth"
	"github.com/klinikos/klinikos/internal/platform/kvstore"
	"github.com/klinikos/klinikos/internal/store"
)

const (
	directoryKey = "hospital_users"
	sessionKey   = "session_user"
)

var (
	ErrEmailTaken         = errors.New("identity: email already registered")
	ErrNotFound           = errors.New("identity: user not found")
	ErrInactive           = errors.New("identity: account is deactivated")
	ErrInvalidCredentials = errors.New("identity: invalid credentials")
)

// userRecord is the persisted shape. The live User hides the password
// hash from JSON, so the record carries it explicitly.
type userRecord struct {
	User
	PasswordHash string `json:"password_hash"`
}

// Service owns the user directory and the login session. The directory
// lives in memory and is written behind to the kv store on every change.
type Service struct {
	mu     sync.Mutex
	users  *store.Collection[User]
	kv     *kvstore.Store
	issuer *auth.TokenIssuer
	log    zerolog.Logger
}

// NewService loads the persisted directory, seeding demo accounts when
// the record is absent or unreadable.
func NewService(kv *kvstore.Store, issuer *auth.TokenIssuer, log zerolog.Logger) *Service {
	s := &Service{
		users:  store.NewCollection(func(u User) uuid.UUID { return u.ID }),
		kv:     kv,
		issuer: issuer,
		log:    log,
	}

	var records []userRecord
	err := kv.Get(context.Background(), directoryKey, &records)
	switch {
	case err == nil && len(records) > 0:
		users := make([]User, 0, len(records))
		for _, r := range records {
			u := r.User
			u.PasswordHash = r.PasswordHash
			users = append(users, u)
		}
		s.users.Replace(users)
	case err != nil && !errors.Is(err, kvstore.ErrAbsent):
		log.Warn().Err(err).Msg("loading user directory, seeding defaults")
		fallthrough
	default:
		s.seed()
	}
	return s
}

func (s *Service) seed() {
	now := time.Now()
	demo := []struct {
		name, email, password, role string
	}{
		{"System Administrator", "admin@klinikos.example", "admin123", "hospital_admin"},
		{"Dr. Elena Alvarez", "e.alvarez@klinikos.example", "doctor123", "doctor"},
		{"Kim Seo-yeon", "s.kim@klinikos.example", "nurse123", "nurse"},
		{"Front Desk", "reception@klinikos.example", "reception123", "reception"},
	}
	for _, d := range demo {
		hash, err := bcrypt.GenerateFromPassword([]byte(d.password), bcrypt.DefaultCost)
		if err != nil {
			s.log.Error().Err(err).Str("email", d.email).Msg("seeding user")
			continue
		}
		s.users.Add(User{
			ID:           uuid.New(),
			Name:         d.name,
			Email:        d.email,
			PasswordHash: string(hash),
			Role:         d.role,
			HospitalID:   "klinikos-main",
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	s.persist()
}

// persist snapshots the directory to the kv store. Callers hold s.mu or
// run during startup before the service is shared.
func (s *Service) persist() {
	users := s.users.List()
	records := make([]userRecord, 0, len(users))
	for _, u := range users {
		records = append(records, userRecord{User: u, PasswordHash: u.PasswordHash})
	}
	s.kv.PutAsync(directoryKey, records)
}

// RegisterInput is the account creation request.
type RegisterInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	HospitalID   string `json:"hospital_id"`
	DepartmentID string `json:"department_id,omitempty"`
}

// Register creates an account. The returned user never carries the
// password hash in its serialized form.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("name, email and password are required")
	}
	if !validRoles[in.Role] {
		return nil, fmt.Errorf("invalid role: %s", in.Role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(in.Email)
	if _, ok := s.users.Find(func(u User) bool { return strings.ToLower(u.Email) == email }); ok {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	u := User{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
		HospitalID:   in.HospitalID,
		DepartmentID: in.DepartmentID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users.Add(u)
	s.persist()
	return &u, nil
}

// Login verifies credentials and returns the user with a signed session
// token. Inactive accounts are rejected before the password check.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lower := strings.ToLower(email)
	u, ok := s.users.Find(func(u User) bool { return strings.ToLower(u.Email) == lower })
	if !ok {
		return nil, "", ErrNotFound
	}
	if !u.IsActive {
		return nil, "", ErrInactive
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	now := time.Now()
	s.users.Update(u.ID, func(u *User) {
		u.LastLogin = &now
		u.UpdatedAt = now
	})
	u, _ = s.users.Get(u.ID)

	token, err := s.issuer.Issue(u.ID, u.Email, u.Name, u.Role)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	s.persist()
	s.kv.PutAsync(sessionKey, u)
	return &u, token, nil
}

// Logout clears the persisted session. Succeeds even when no session
// was stored.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.kv.Delete(ctx, sessionKey); err != nil {
		s.log.Warn().Err(err).Msg("clearing session")
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	u, ok := s.users.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

// List returns users sorted by name, optionally filtered by role and a
// case-insensitive name or email search.
func (s *Service) List(ctx context.Context, role, query string) []User {
	all := s.users.List()
	q := strings.ToLower(query)
	var out []User
	for _, u := range all {
		if role != "" && u.Role != role {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(u.Name), q) &&
			!strings.Contains(strings.ToLower(u.Email), q) {
			continue
		}
		out = append(out, u)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ProfileUpdate carries a partial profile change.
type ProfileUpdate struct {
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	Role         *string `json:"role,omitempty"`
	HospitalID   *string `json:"hospital_id,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
}

func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, upd ProfileUpdate) error {
	if upd.Role != nil && !validRoles[*upd.Role] {
		return fmt.Errorf("invalid role: %s", *upd.Role)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if upd.Email != nil {
		email := strings.ToLower(*upd.Email)
		if _, ok := s.users.Find(func(u User) bool {
			return strings.ToLower(u.Email) == email && u.ID != id
		}); ok {
			return ErrEmailTaken
		}
	}
	s.users.Update(id, func(u *User) {
		if upd.Name != nil {
			u.Name = *upd.Name
		}
		if upd.Email != nil {
			u.Email = strings.ToLower(*upd.Email)
		}
		if upd.Role != nil {
			u.Role = *upd.Role
		}
		if upd.HospitalID != nil {
			u.HospitalID = *upd.HospitalID
		}
		if upd.DepartmentID != nil {
			u.DepartmentID = *upd.DepartmentID
		}
		u.UpdatedAt = time.Now()
	})
	s.persist()
	return nil
}

// ToggleActive flips the account's active flag and returns the new state.
func (s *Service) ToggleActive(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var active bool
	if !s.users.Update(id, func(u *User) {
		u.IsActive = !u.IsActive
		u.UpdatedAt = time.Now()
		active = u.IsActive
	}) {
		return false, ErrNotFound
	}
	s.persist()
	return active, nil
}

func (s *Service) ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.users.Update(id, func(u *User) {
		u.PasswordHash = string(hash)
		u.UpdatedAt = time.Now()
	}) {
		return ErrNotFound
	}
	s.persist()
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.users.Delete(id) {
		s.persist()
	}
}
