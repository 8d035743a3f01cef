package identity

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/klinikos/klinikos/internal/platform/auth"
	"github.com/klinikos/klinikos/internal/platform/kvstore"
)

func newTestService(t *testing.T) (*Service, *kvstore.Store) {
	t.Helper()
	kv, err := kvstore.Open(filepath.Join(t.TempDir(), "identity.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	return NewService(kv, issuer, zerolog.Nop()), kv
}

func register(t *testing.T, svc *Service, email string) *User {
	t.Helper()
	u, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Test User",
		Email:    email,
		Password: "s3cret-pass",
		Role:     "doctor",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return u
}

func TestSeedDemoAccounts(t *testing.T) {
	svc, _ := newTestService(t)
	users := svc.List(context.Background(), "", "")
	if len(users) == 0 {
		t.Fatal("expected seeded demo accounts on empty directory")
	}
	for _, u := range users {
		if !u.IsActive {
			t.Errorf("expected seeded account %s to be active", u.Email)
		}
		if u.PasswordHash == "" {
			t.Errorf("expected seeded account %s to carry a password hash", u.Email)
		}
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, _ := newTestService(t)
	u := register(t, svc, "new.doctor@klinikos.example")

	if u.PasswordHash == "s3cret-pass" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret-pass")); err != nil {
		t.Fatalf("hash does not verify: %v", err)
	}
	if !u.IsActive {
		t.Error("expected new account to be active")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)
	bad := []RegisterInput{
		{Email: "a@b.c", Password: "x", Role: "doctor"},
		{Name: "A", Password: "x", Role: "doctor"},
		{Name: "A", Email: "a@b.c", Role: "doctor"},
		{Name: "A", Email: "a@b.c", Password: "x", Role: "janitor"},
	}
	for i, in := range bad {
		if _, err := svc.Register(context.Background(), in); err == nil {
			t.Errorf("input %d: expected validation error", i)
		}
	}
}

func TestRegisterEmailConflict(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc, "taken@klinikos.example")
	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Other",
		Email:    "TAKEN@klinikos.example",
		Password: "pw",
		Role:     "nurse",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginFlow(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc, "login@klinikos.example")

	u, token, err := svc.Login(context.Background(), "login@klinikos.example", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}
	if u.LastLogin == nil {
		t.Fatal("expected last login to be refreshed")
	}

	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Subject != u.ID.String() || claims.Role != "doctor" {
		t.Fatalf("unexpected claims: subject=%s role=%s", claims.Subject, claims.Role)
	}
}

func TestLoginFailures(t *testing.T) {
	svc, _ := newTestService(t)
	u := register(t, svc, "cases@klinikos.example")

	if _, _, err := svc.Login(context.Background(), "nobody@klinikos.example", "pw"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown email: expected ErrNotFound, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "cases@klinikos.example", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("bad password: expected ErrInvalidCredentials, got %v", err)
	}

	if _, err := svc.ToggleActive(context.Background(), u.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "cases@klinikos.example", "s3cret-pass"); !errors.Is(err, ErrInactive) {
		t.Errorf("inactive account: expected ErrInactive, got %v", err)
	}
}

func TestLogoutIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("logout without session: %v", err)
	}
	register(t, svc, "out@klinikos.example")
	if _, _, err := svc.Login(context.Background(), "out@klinikos.example", "s3cret-pass"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("second logout: %v", err)
	}
}

func TestDirectoryPersistsAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity.db")
	kv, err := kvstore.Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	svc := NewService(kv, issuer, zerolog.Nop())
	u := register(t, svc, "durable@klinikos.example")
	if err := kv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	kv, err = kvstore.Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })

	reloaded := NewService(kv, issuer, zerolog.Nop())
	got, err := reloaded.Get(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("expected user after restart, got %v", err)
	}
	if got.Email != "durable@klinikos.example" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if _, _, err := reloaded.Login(context.Background(), "durable@klinikos.example", "s3cret-pass"); err != nil {
		t.Fatalf("expected password hash to survive restart, login: %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestService(t)
	u := register(t, svc, "profile@klinikos.example")
	other := register(t, svc, "other@klinikos.example")

	name := "Renamed User"
	if err := svc.UpdateProfile(context.Background(), u.ID, ProfileUpdate{Name: &name}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := svc.Get(context.Background(), u.ID)
	if got.Name != name {
		t.Fatalf("expected renamed user, got %s", got.Name)
	}

	taken := other.Email
	if err := svc.UpdateProfile(context.Background(), u.ID, ProfileUpdate{Email: &taken}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	role := "janitor"
	if err := svc.UpdateProfile(context.Background(), u.ID, ProfileUpdate{Role: &role}); err == nil {
		t.Fatal("expected invalid role error")
	}
}

func TestResetPassword(t *testing.T) {
	svc, _ := newTestService(t)
	u := register(t, svc, "reset@klinikos.example")

	if err := svc.ResetPassword(context.Background(), u.ID, "new-pass"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "reset@klinikos.example", "s3cret-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("old password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "reset@klinikos.example", "new-pass"); err != nil {
		t.Errorf("new password: %v", err)
	}
}
