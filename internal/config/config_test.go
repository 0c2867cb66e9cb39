package config

import (
	"strings"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/financeia_test")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.RateLimitPerMinute != 100 {
		t.Errorf("Expected default rate limit 100, got %d", cfg.RateLimitPerMinute)
	}
	if cfg.RateLimitBurst != 10 {
		t.Errorf("Expected default burst 10, got %d", cfg.RateLimitBurst)
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected an error for missing DATABASE_URL")
	}
}

func TestLoad_RejectsZeroRateLimit(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RATE_LIMIT_PER_MINUTE", "0")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected an error for a zero rate limit")
	}
	if !strings.Contains(err.Error(), "RATE_LIMIT_PER_MINUTE") {
		t.Errorf("Expected the error to name RATE_LIMIT_PER_MINUTE, got %v", err)
	}
}

func TestLoad_RejectsNegativeBurst(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RATE_LIMIT_BURST", "-1")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected an error for a negative burst size")
	}
	if !strings.Contains(err.Error(), "RATE_LIMIT_BURST") {
		t.Errorf("Expected the error to name RATE_LIMIT_BURST, got %v", err)
	}
}
