package settings

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/klinikos/klinikos/internal/platform/kvstore"
)

const storageKey = "hospital_settings"

// HospitalSettings is the singleton facility configuration shown on
// printable documents and the admin screens.
type HospitalSettings struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Website  string `json:"website,omitempty"`
	TaxID    string `json:"tax_id,omitempty"`
	LogoURL  string `json:"logo_url,omitempty"`
	Language string `json:"language"`
}

// Defaults returns the settings used before an administrator customizes
// anything.
func Defaults() HospitalSettings {
	return HospitalSettings{
		Name:     "Klinikos General Hospital",
		Address:  "1 Hospital Plaza",
		City:     "Springfield",
		Phone:    "+1 555 0100",
		Email:    "info@klinikos.example",
		Language: "en",
	}
}

// Service holds the in-memory settings and writes changes behind to the
// kv store. A single mutex serializes writers; cross-instance conflict
// resolution is out of scope.
type Service struct {
	mu      sync.Mutex
	current HospitalSettings
	store   *kvstore.Store
	log     zerolog.Logger
}

// NewService loads persisted settings, falling back to defaults when the
// record is absent or unreadable.
func NewService(store *kvstore.Store, log zerolog.Logger) *Service {
	s := &Service{store: store, log: log, current: Defaults()}
	var loaded HospitalSettings
	err := store.Get(context.Background(), storageKey, &loaded)
	switch {
	case err == nil:
		s.current = loaded
	case errors.Is(err, kvstore.ErrAbsent):
	default:
		log.Warn().Err(err).Msg("loading hospital settings, using defaults")
	}
	return s
}

func (s *Service) Get(_ context.Context) HospitalSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Update carries a partial settings change. Nil fields keep their
// current value.
type Update struct {
	Name     *string `json:"name,omitempty"`
	Address  *string `json:"address,omitempty"`
	City     *string `json:"city,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	Website  *string `json:"website,omitempty"`
	TaxID    *string `json:"tax_id,omitempty"`
	LogoURL  *string `json:"logo_url,omitempty"`
	Language *string `json:"language,omitempty"`
}

// Apply merges the update into the live settings and persists the result
// behind the caller's back. The in-memory state is authoritative for the
// running process even if the write later fails.
func (s *Service) Apply(_ context.Context, upd Update) HospitalSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	if upd.Name != nil {
		s.current.Name = *upd.Name
	}
	if upd.Address != nil {
		s.current.Address = *upd.Address
	}
	if upd.City != nil {
		s.current.City = *upd.City
	}
	if upd.Phone != nil {
		s.current.Phone = *upd.Phone
	}
	if upd.Email != nil {
		s.current.Email = *upd.Email
	}
	if upd.Website != nil {
		s.current.Website = *upd.Website
	}
	if upd.TaxID != nil {
		s.current.TaxID = *upd.TaxID
	}
	if upd.LogoURL != nil {
		s.current.LogoURL = *upd.LogoURL
	}
	if upd.Language != nil {
		s.current.Language = *upd.Language
	}
	s.store.PutAsync(storageKey, s.current)
	return s.current
}
