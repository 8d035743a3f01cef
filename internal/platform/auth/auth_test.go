package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newIssuer(ttl time.Duration) *TokenIssuer {
	return NewTokenIssuer("test-secret", ttl)
}

func TestIssueAndParse(t *testing.T) {
	issuer := newIssuer(time.Hour)
	userID := uuid.New()

	token, err := issuer.Issue(userID, "dr@example.com", "Dr. Example", "doctor")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != userID.String() {
		t.Errorf("expected subject %s, got %s", userID, claims.Subject)
	}
	if claims.Email != "dr@example.com" {
		t.Errorf("unexpected email %s", claims.Email)
	}
	if claims.Role != "doctor" {
		t.Errorf("unexpected role %s", claims.Role)
	}
}

func TestParseExpiredToken(t *testing.T) {
	issuer := newIssuer(-time.Minute)
	token, err := issuer.Issue(uuid.New(), "x@example.com", "X", "nurse")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := issuer.Parse(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestParseWrongSecret(t *testing.T) {
	token, err := newIssuer(time.Hour).Issue(uuid.New(), "x@example.com", "X", "nurse")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	other := NewTokenIssuer("different-secret", time.Hour)
	if _, err := other.Parse(token); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestMiddleware_ValidToken(t *testing.T) {
	issuer := newIssuer(time.Hour)
	userID := uuid.New()
	token, _ := issuer.Issue(userID, "a@example.com", "A", "receptionist")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		ctx := c.Request().Context()
		if UserIDFromContext(ctx) != userID.String() {
			t.Error("user id missing from context")
		}
		if RoleFromContext(ctx) != "receptionist" {
			t.Error("role missing from context")
		}
		return c.NoContent(http.StatusOK)
	}

	if err := Middleware(issuer)(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := Middleware(newIssuer(time.Hour))(handler)(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestMiddleware_MalformedHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := Middleware(newIssuer(time.Hour))(handler)(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func withRole(role string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), UserRoleKey, role)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestRequireRole_Allows(t *testing.T) {
	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	if err := RequireRole("doctor", "nurse")(handler)(withRole("nurse")); err != nil {
		t.Errorf("expected nurse to pass, got %v", err)
	}
}

func TestRequireRole_SuperadminOverride(t *testing.T) {
	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	if err := RequireRole("doctor")(handler)(withRole("superadmin")); err != nil {
		t.Errorf("expected superadmin override, got %v", err)
	}
}

func TestRequireRole_Forbidden(t *testing.T) {
	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := RequireRole("doctor")(handler)(withRole("driver"))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %v", err)
	}
}
