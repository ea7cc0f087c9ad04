package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Save original env
	originalDB := os.Getenv("CIRCLES_DATABASE_URL")
	defer func() {
		if originalDB != "" {
			os.Setenv("CIRCLES_DATABASE_URL", originalDB)
		} else {
			os.Unsetenv("CIRCLES_DATABASE_URL")
		}
	}()
	os.Unsetenv("CIRCLES_DATABASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Feed.DefaultLimit != 20 {
		t.Errorf("Feed.DefaultLimit = %d, want 20", cfg.Feed.DefaultLimit)
	}
	if cfg.Feed.MaxLimit != 50 {
		t.Errorf("Feed.MaxLimit = %d, want 50", cfg.Feed.MaxLimit)
	}
	if cfg.Feed.CacheTTL != 2*time.Minute {
		t.Errorf("Feed.CacheTTL = %v, want 2m", cfg.Feed.CacheTTL)
	}
	if cfg.Redis.Enabled {
		t.Error("Redis.Enabled should be false without redis_url")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing database url",
			mutate:  func(c *Config) { c.Database.URL = "" },
			wantErr: true,
		},
		{
			name:    "default limit above max",
			mutate:  func(c *Config) { c.Feed.DefaultLimit = 60 },
			wantErr: true,
		},
		{
			name:    "zero max limit",
			mutate:  func(c *Config) { c.Feed.MaxLimit = 0 },
			wantErr: true,
		},
		{
			name:    "zero branch timeout",
			mutate:  func(c *Config) { c.Feed.BranchTimeout = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Database: DatabaseConfig{URL: "postgresql://localhost/circlesfera"},
				Feed: FeedConfig{
					DefaultLimit:  20,
					MaxLimit:      50,
					CacheTTL:      2 * time.Minute,
					BranchTimeout: 3 * time.Second,
				},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestToEnvKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"database_url", "DATABASE_URL"},
		{"feed_cache_ttl", "FEED_CACHE_TTL"},
		{"log-level", "LOG_LEVEL"},
	}
	for _, tt := range tests {
		if got := toEnvKey(tt.in); got != tt.want {
			t.Errorf("toEnvKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
