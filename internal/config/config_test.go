package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_ADDR", "postgres://localhost:5432/bookapi")
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_ADDR", "postgres://localhost:5432/bookapi")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing JWT_SECRET")
	}
}

func TestLoad_MissingDBAddr(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_ADDR", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing DB_ADDR")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected default HTTP_ADDR :8080, got %q", cfg.HTTPAddr)
	}
	if cfg.SessionTokenTTL != time.Hour {
		t.Fatalf("expected 1h session TTL, got %v", cfg.SessionTokenTTL)
	}
	if cfg.OTPTTL != 10*time.Minute {
		t.Fatalf("expected 10m OTP TTL, got %v", cfg.OTPTTL)
	}
	if cfg.BcryptCost != 12 {
		t.Fatalf("expected bcrypt cost 12, got %d", cfg.BcryptCost)
	}
	if !cfg.RLEnabled || cfg.RLLimit != 120 {
		t.Fatalf("unexpected rate limit defaults: enabled=%v limit=%d", cfg.RLEnabled, cfg.RLLimit)
	}
	if cfg.RedisAddr != "" || cfg.RabbitURL != "" {
		t.Fatalf("expected optional infra to default empty")
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SESSION_TOKEN_TTL", "30m")
	t.Setenv("OTP_TTL", "5m")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_RESEND_OTP", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.SessionTokenTTL != 30*time.Minute {
		t.Fatalf("expected 30m session TTL, got %v", cfg.SessionTokenTTL)
	}
	if cfg.OTPTTL != 5*time.Minute {
		t.Fatalf("expected 5m OTP TTL, got %v", cfg.OTPTTL)
	}
	if cfg.RLEnabled {
		t.Fatalf("expected rate limiting disabled")
	}
	if cfg.RLResendOTP != 7 {
		t.Fatalf("expected resend limit 7, got %d", cfg.RLResendOTP)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("OTP_TTL", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for bad duration")
	}
}
