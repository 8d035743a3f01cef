package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("PORT")
	os.Unsetenv("DATA_PATH")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.DataPath != "data/klinikos.db" {
		t.Errorf("expected default data path, got %s", cfg.DataPath)
	}
	if cfg.JWTTTLHours != 24 {
		t.Errorf("expected default jwt ttl 24, got %d", cfg.JWTTTLHours)
	}
	if !cfg.SeedDemoData {
		t.Error("expected demo data seeding on by default")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	os.Setenv("PORT", "9100")
	defer os.Unsetenv("PORT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9100" {
		t.Errorf("expected port 9100, got %s", cfg.Port)
	}
}

func TestConfig_IsDev(t *testing.T) {
	c := &Config{Env: "development"}
	if !c.IsDev() {
		t.Error("expected IsDev() to return true for development")
	}

	c.Env = "production"
	if c.IsDev() {
		t.Error("expected IsDev() to return false for production")
	}
}

func TestValidate(t *testing.T) {
	c := &Config{Env: "production", JWTTTLHours: 24, RateLimitRPS: 100}
	if err := c.Validate(); err == nil {
		t.Error("expected error for production without JWT_SECRET")
	}

	c.JWTSecret = "secret"
	if err := c.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	c.JWTTTLHours = 0
	if err := c.Validate(); err == nil {
		t.Error("expected error for non-positive ttl")
	}
}

func TestResolvedJWTSecret(t *testing.T) {
	c := &Config{}
	if c.ResolvedJWTSecret() == "" {
		t.Error("expected dev fallback secret")
	}
	c.JWTSecret = "configured"
	if c.ResolvedJWTSecret() != "configured" {
		t.Error("expected configured secret to win")
	}
}
