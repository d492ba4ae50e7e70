package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("expected default token TTL 24h, got %s", cfg.TokenTTL)
	}
	if cfg.ReportDir != "reports" {
		t.Errorf("expected default report dir reports, got %s", cfg.ReportDir)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_TTL", "12h")
	t.Setenv("BCRYPT_COST", "12")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.TokenTTL != 12*time.Hour {
		t.Errorf("expected token TTL 12h, got %s", cfg.TokenTTL)
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("expected bcrypt cost 12, got %d", cfg.BcryptCost)
	}
}

func TestInvalidEnvFallsBack(t *testing.T) {
	t.Setenv("TOKEN_TTL", "not-a-duration")
	t.Setenv("BCRYPT_COST", "abc")

	cfg := Load()

	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("expected fallback token TTL 24h, got %s", cfg.TokenTTL)
	}
}
