package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/garnizeh/skillsnap/internal/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SKILLSNAP_ADDR", "")
	t.Setenv("SKILLSNAP_JWT_SECRET", "")
	t.Setenv("SKILLSNAP_DATABASE_PATH", "")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.DatabasePath != "skillsnap.db" {
		t.Errorf("DatabasePath = %q, want skillsnap.db", cfg.DatabasePath)
	}
	if cfg.TokenDuration != 24*time.Hour {
		t.Errorf("TokenDuration = %v, want 24h", cfg.TokenDuration)
	}
	if cfg.Cache.ListingTTL != 30*time.Minute {
		t.Errorf("ListingTTL = %v, want 30m", cfg.Cache.ListingTTL)
	}
	if cfg.Cache.ListingSliding != 10*time.Minute {
		t.Errorf("ListingSliding = %v, want 10m", cfg.Cache.ListingSliding)
	}
	if cfg.Cache.StatisticsTTL != 15*time.Minute {
		t.Errorf("StatisticsTTL = %v, want 15m", cfg.Cache.StatisticsTTL)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SKILLSNAP_ADDR", ":9999")
	t.Setenv("SKILLSNAP_DATABASE_PATH", "/tmp/override.db")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q, want :9999", cfg.Addr)
	}
	if cfg.DatabasePath != "/tmp/override.db" {
		t.Errorf("DatabasePath = %q, want /tmp/override.db", cfg.DatabasePath)
	}
}

func TestLoadConfigYAMLOverlay(t *testing.T) {
	t.Setenv("SKILLSNAP_ADDR", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
addr: ":7070"
token_duration: 1h
cache:
  listing_ttl: 5m
  listing_sliding: 1m
  statistics_ttl: 2m
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Addr != ":7070" {
		t.Errorf("Addr = %q, want :7070", cfg.Addr)
	}
	if cfg.TokenDuration != time.Hour {
		t.Errorf("TokenDuration = %v, want 1h", cfg.TokenDuration)
	}
	if cfg.Cache.ListingTTL != 5*time.Minute {
		t.Errorf("ListingTTL = %v, want 5m", cfg.Cache.ListingTTL)
	}
	// Fields the file omits keep their defaults.
	if cfg.DatabasePath != "skillsnap.db" {
		t.Errorf("DatabasePath = %q, want skillsnap.db", cfg.DatabasePath)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for a missing config file")
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("::: not yaml :::"), 0o600); err != nil {
		t.Fatalf("write bad yaml: %v", err)
	}

	if _, err := config.LoadConfig(path); err == nil {
		t.Fatal("expected YAML decode error")
	}
}
