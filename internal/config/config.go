package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Search    SearchConfig    `yaml:"search"`
	AI        AIConfig        `yaml:"ai"`
	Geocode   GeocodeConfig   `yaml:"geocode"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Cache     CacheConfig     `yaml:"cache"`
	Logging   LoggingConfig   `yaml:"logging"`
	Timezone  string          `yaml:"timezone"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig contains PostgreSQL connection settings
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// SearchConfig contains search engine settings
type SearchConfig struct {
	Meilisearch MeilisearchConfig `yaml:"meilisearch"`
}

// MeilisearchConfig contains Meilisearch connection settings
type MeilisearchConfig struct {
	Host    string `yaml:"host"`
	APIKey  string `yaml:"api_key"`
	Enabled bool   `yaml:"enabled"`
}

// AIConfig contains LLM completion provider settings
type AIConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Enabled        bool   `yaml:"enabled"`
}

// GeocodeConfig contains external geocoding provider settings
type GeocodeConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// RateLimitConfig contains rate limiting settings for the AI search endpoints
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requests_per_minute"`
	RequestsPerHour   int  `yaml:"requests_per_hour"`
	RequestsPerDay    int  `yaml:"requests_per_day"`
}

// SchedulerConfig contains background job settings
type SchedulerConfig struct {
	DailyRunEnabled      bool   `yaml:"daily_run_enabled"`
	DailyRunTime         string `yaml:"daily_run_time"`
	ListingExpiryDays    int    `yaml:"listing_expiry_days"`
	GeocodeWorkerEnabled bool   `yaml:"geocode_worker_enabled"`
}

// CacheConfig contains in-memory response cache settings
type CacheConfig struct {
	SearchTTLSeconds int `yaml:"search_ttl_seconds"`
	AbbrevTTLHours   int `yaml:"abbrev_ttl_hours"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level       string `yaml:"level"`
	LogRequests bool   `yaml:"log_requests"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Postgres: PostgresConfig{
				Host:    "db",
				Port:    5432,
				SSLMode: "disable",
			},
		},
		Search: SearchConfig{
			Meilisearch: MeilisearchConfig{
				Host:    "http://meilisearch:7700",
				Enabled: true,
			},
		},
		AI: AIConfig{
			BaseURL:        "https://api.openai.com/v1",
			Model:          "gpt-4o-mini",
			TimeoutSeconds: 2,
			Enabled:        true,
		},
		Geocode: GeocodeConfig{
			BaseURL:        "https://nominatim.openstreetmap.org",
			TimeoutSeconds: 5,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 30,
			RequestsPerHour:   600,
			RequestsPerDay:    5000,
		},
		Scheduler: SchedulerConfig{
			DailyRunEnabled:      true,
			DailyRunTime:         "02:00",
			ListingExpiryDays:    90,
			GeocodeWorkerEnabled: true,
		},
		Cache: CacheConfig{
			SearchTTLSeconds: 30,
			AbbrevTTLHours:   24,
		},
		Logging: LoggingConfig{
			Level:       "info",
			LogRequests: true,
		},
		Timezone: "Asia/Kuala_Lumpur",
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(filepath string) (*Config, error) {
	// Start with default config
	config := DefaultConfig()

	// If file doesn't exist, return default config
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// GetTimeout returns the AI completion timeout as a duration
func (c *AIConfig) GetTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 2 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// GetTimeout returns the geocoding request timeout as a duration
func (c *GeocodeConfig) GetTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SearchTTL returns the search response cache TTL as a duration
func (c *CacheConfig) SearchTTL() time.Duration {
	if c.SearchTTLSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.SearchTTLSeconds) * time.Second
}

// AbbrevTTL returns the abbreviation cache TTL as a duration
func (c *CacheConfig) AbbrevTTL() time.Duration {
	if c.AbbrevTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.AbbrevTTLHours) * time.Hour
}
