package config

import (
	"testing"
	"time"
)

func TestLoadDevDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ShutdownPeriod != 10*time.Second {
		t.Fatalf("shutdown period = %v", cfg.ShutdownPeriod)
	}
	if cfg.DedupTTL != 24*time.Hour {
		t.Fatalf("dedup ttl = %v", cfg.DedupTTL)
	}
	if !cfg.IsDev() {
		t.Fatalf("development env should be dev mode")
	}
}

func TestLoadRequiresBackendsInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error without DATABASE_URL in production")
	}

	t.Setenv("DATABASE_URL", "postgres://localhost/pay")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without REDIS_URL in production")
	}

	t.Setenv("REDIS_URL", "redis://localhost:6379")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.IsDev() {
		t.Fatalf("production env must not be dev mode")
	}
}

func TestLoadParsesDurations(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "5")
	t.Setenv("CALLBACK_DEDUP_TTL", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ShutdownPeriod != 5*time.Second {
		t.Fatalf("shutdown period = %v, want 5s", cfg.ShutdownPeriod)
	}
	if cfg.DedupTTL != 30*time.Minute {
		t.Fatalf("dedup ttl = %v, want 30m", cfg.DedupTTL)
	}
}

func TestLoadRejectsBadDurations(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("CALLBACK_DEDUP_TTL_SECONDS", "not-a-number")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid ttl")
	}
}

func TestAddress(t *testing.T) {
	if got := (Config{Port: "8080"}).Address(); got != ":8080" {
		t.Fatalf("address = %s", got)
	}
	if got := (Config{Port: ":9090"}).Address(); got != ":9090" {
		t.Fatalf("address = %s", got)
	}
}
