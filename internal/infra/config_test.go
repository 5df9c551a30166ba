package infra

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "")
	t.Setenv("DEFAULT_LOCALE", "")
	t.Setenv("REPORT_TIMEZONE", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port mismatch: got %q want %q", cfg.Port, "8080")
	}
	if cfg.DefaultLocale != "vi" {
		t.Fatalf("DefaultLocale mismatch: got %q want %q", cfg.DefaultLocale, "vi")
	}
	if cfg.ReportTimezone != "Asia/Ho_Chi_Minh" {
		t.Fatalf("ReportTimezone mismatch: got %q", cfg.ReportTimezone)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("AllowedOrigins mismatch: %#v", cfg.AllowedOrigins)
	}
	if cfg.SweepInterval != 300*time.Second {
		t.Fatalf("SweepInterval mismatch: got %s", cfg.SweepInterval)
	}
	if !cfg.AutoMigrate {
		t.Fatalf("AutoMigrate should default to true")
	}
}

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error when DATABASE_URL is missing")
	}
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error when JWT_SECRET is missing")
	}
}

func TestLoadConfigRejectsUnknownLocale(t *testing.T) {
	setRequired(t)
	t.Setenv("DEFAULT_LOCALE", "fr")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for unsupported locale")
	}
}

func TestLoadConfigSplitsOrigins(t *testing.T) {
	setRequired(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://quy.example.org , ,https://admin.example.org ")
	t.Setenv("AUTO_MIGRATE", "false")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	expected := []string{"https://quy.example.org", "https://admin.example.org"}
	if len(cfg.AllowedOrigins) != len(expected) {
		t.Fatalf("AllowedOrigins mismatch: got %#v want %#v", cfg.AllowedOrigins, expected)
	}
	for i, origin := range expected {
		if cfg.AllowedOrigins[i] != origin {
			t.Fatalf("AllowedOrigins[%d] = %q, want %q", i, cfg.AllowedOrigins[i], origin)
		}
	}
	if cfg.AutoMigrate {
		t.Fatalf("AutoMigrate should honor explicit false")
	}
}
