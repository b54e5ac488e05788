package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "dev" {
		t.Fatalf("expected App.Env to default to dev, got %q", cfg.App.Env)
	}
	if !cfg.App.IsDev() {
		t.Fatal("expected IsDev() for default env")
	}
	if cfg.App.Port != "8000" {
		t.Fatalf("unexpected default port %q", cfg.App.Port)
	}
	if cfg.Idempotency.TTL != 24*time.Hour {
		t.Fatalf("expected idempotency TTL 24h, got %v", cfg.Idempotency.TTL)
	}
	if cfg.Session.DefaultSessionID != "default" {
		t.Fatalf("unexpected default session id %q", cfg.Session.DefaultSessionID)
	}
	if got := cfg.JWT.Expiration(); got != 720*time.Minute {
		t.Fatalf("expected jwt expiration 720m, got %v", got)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("FESTIVAULT_APP_ENV", "prod")
	t.Setenv("FESTIVAULT_APP_PORT", "9000")
	t.Setenv("FESTIVAULT_SESSION_SNAPSHOT_DIR", "/tmp/ledger")
	t.Setenv("FESTIVAULT_IDEMPOTENCY_TTL", "1h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if !cfg.App.IsProd() {
		t.Fatal("expected IsProd() when env overridden")
	}
	if cfg.App.Port != "9000" {
		t.Fatalf("unexpected port %q", cfg.App.Port)
	}
	if cfg.Session.SnapshotDir != "/tmp/ledger" {
		t.Fatalf("unexpected snapshot dir %q", cfg.Session.SnapshotDir)
	}
	if cfg.Idempotency.TTL != time.Hour {
		t.Fatalf("expected idempotency TTL 1h, got %v", cfg.Idempotency.TTL)
	}
}
