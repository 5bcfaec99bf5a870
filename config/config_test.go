package config

import (
	"testing"
	"time"

	"carneiros_checker/models"
)

func TestLoadDefaults(t *testing.T) {
	// No listings.yaml in the package directory, so the built-in table
	// applies.
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Checker.BaseURL != "https://www.airbnb.com.br" {
		t.Errorf("BaseURL = %q", cfg.Checker.BaseURL)
	}
	if cfg.Checker.NavTimeout != 30*time.Second {
		t.Errorf("NavTimeout = %v, want 30s", cfg.Checker.NavTimeout)
	}
	if cfg.Checker.SettleDelay != 5*time.Second {
		t.Errorf("SettleDelay = %v, want 5s", cfg.Checker.SettleDelay)
	}
	if cfg.Checker.MaxSessions != 2 {
		t.Errorf("MaxSessions = %d, want 2", cfg.Checker.MaxSessions)
	}
	if !cfg.Checker.Headless {
		t.Error("Headless should default to true")
	}

	if len(cfg.Listings) != 2 {
		t.Fatalf("Expected 2 default listings, got %d", len(cfg.Listings))
	}
	if cfg.Listings[0].ResultKey != models.ResultKeyColina {
		t.Errorf("First listing key = %s, want %s", cfg.Listings[0].ResultKey, models.ResultKeyColina)
	}
	if cfg.Listings[1].ResultKey != models.ResultKeyPraia {
		t.Errorf("Second listing key = %s, want %s", cfg.Listings[1].ResultKey, models.ResultKeyPraia)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("NAV_TIMEOUT_MS", "15000")
	t.Setenv("MAX_SESSIONS", "4")
	t.Setenv("HEADLESS", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.Checker.NavTimeout != 15*time.Second {
		t.Errorf("NavTimeout = %v, want 15s", cfg.Checker.NavTimeout)
	}
	if cfg.Checker.MaxSessions != 4 {
		t.Errorf("MaxSessions = %d, want 4", cfg.Checker.MaxSessions)
	}
	if cfg.Checker.Headless {
		t.Error("Headless should be false")
	}
}

func TestGetEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("MAX_SESSIONS", "many")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Checker.MaxSessions != 2 {
		t.Errorf("Non-numeric env should fall back to default, got %d", cfg.Checker.MaxSessions)
	}
}
