package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Database.Postgres.Host != "db" || cfg.Database.Postgres.Port != 5432 {
		t.Errorf("unexpected postgres defaults: %+v", cfg.Database.Postgres)
	}
	if !cfg.Search.Meilisearch.Enabled {
		t.Error("meilisearch should be enabled by default")
	}
	if cfg.AI.Model != "gpt-4o-mini" || cfg.AI.TimeoutSeconds != 2 {
		t.Errorf("unexpected AI defaults: %+v", cfg.AI)
	}
	if cfg.Scheduler.DailyRunTime != "02:00" || cfg.Scheduler.ListingExpiryDays != 90 {
		t.Errorf("unexpected scheduler defaults: %+v", cfg.Scheduler)
	}
	if cfg.RateLimit.RequestsPerMinute != 30 {
		t.Errorf("RequestsPerMinute = %d", cfg.RateLimit.RequestsPerMinute)
	}
	if cfg.Timezone != "Asia/Kuala_Lumpur" {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/app_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Cache.SearchTTLSeconds != 30 {
		t.Errorf("expected defaults, got %+v", cfg.Cache)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app_config.yaml")
	data := `
database:
  postgres:
    host: localhost
    database: airea_test
ai:
  enabled: false
  timeout_seconds: 4
scheduler:
  daily_run_time: "03:30"
cache:
  search_ttl_seconds: 60
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Database.Postgres.Host != "localhost" || cfg.Database.Postgres.Database != "airea_test" {
		t.Errorf("postgres overrides not applied: %+v", cfg.Database.Postgres)
	}
	if cfg.AI.Enabled {
		t.Error("ai.enabled override not applied")
	}
	if cfg.AI.GetTimeout() != 4*time.Second {
		t.Errorf("AI timeout = %v", cfg.AI.GetTimeout())
	}
	if cfg.Scheduler.DailyRunTime != "03:30" {
		t.Errorf("DailyRunTime = %q", cfg.Scheduler.DailyRunTime)
	}
	if cfg.Cache.SearchTTL() != time.Minute {
		t.Errorf("SearchTTL = %v", cfg.Cache.SearchTTL())
	}

	// untouched sections keep their defaults
	if cfg.Database.Postgres.Port != 5432 {
		t.Errorf("Port = %d, want default 5432", cfg.Database.Postgres.Port)
	}
	if cfg.Cache.AbbrevTTL() != 24*time.Hour {
		t.Errorf("AbbrevTTL = %v", cfg.Cache.AbbrevTTL())
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("database: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("malformed yaml must return an error")
	}
}

func TestDurationFallbacks(t *testing.T) {
	ai := AIConfig{TimeoutSeconds: 0}
	if ai.GetTimeout() != 2*time.Second {
		t.Errorf("AI fallback = %v", ai.GetTimeout())
	}
	geo := GeocodeConfig{TimeoutSeconds: -1}
	if geo.GetTimeout() != 5*time.Second {
		t.Errorf("geocode fallback = %v", geo.GetTimeout())
	}
	c := CacheConfig{}
	if c.SearchTTL() != 30*time.Second || c.AbbrevTTL() != 24*time.Hour {
		t.Errorf("cache fallbacks = %v / %v", c.SearchTTL(), c.AbbrevTTL())
	}
}
