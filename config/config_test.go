package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	cleanupEnv := func() {
		os.Unsetenv("GROCERMATCH_SERVER_PORT")
		os.Unsetenv("GROCERMATCH_SERVER_ENVIRONMENT")
		os.Unsetenv("GROCERMATCH_GROCER_API_KEY")
		os.Unsetenv("GROCERMATCH_GROCER_BASE_URL")
		os.Unsetenv("GROCERMATCH_GROCER_DEFAULT_LOCATION_ID")
		os.Unsetenv("GROCERMATCH_CACHE_TYPE")
		os.Unsetenv("GROCERMATCH_CACHE_REDIS_URL")
		os.Unsetenv("GROCERMATCH_CACHE_TTL")
		os.Unsetenv("GROCERMATCH_RATELIMIT_PER_IP")
		os.Unsetenv("GROCERMATCH_MATCHING_CONCURRENCY")
		os.Unsetenv("GROCERMATCH_MATCHING_NAME_SIMILARITY")
		os.Unsetenv("GROCERMATCH_LOG_LEVEL")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("GROCERMATCH_GROCER_API_KEY", "test-key")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Grocer.BaseURL != "https://api.grocer.example.com" {
			t.Errorf("Grocer.BaseURL = %s, want the default base URL", cfg.Grocer.BaseURL)
		}
		if cfg.Cache.Type != "memory" {
			t.Errorf("Cache.Type = %s, want memory", cfg.Cache.Type)
		}
		if cfg.Cache.TTL != time.Hour {
			t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 60 {
			t.Errorf("RateLimit.PerIP = %d, want 60", cfg.RateLimit.PerIP)
		}
		if cfg.Matching.Concurrency != 4 {
			t.Errorf("Matching.Concurrency = %d, want 4", cfg.Matching.Concurrency)
		}
		if cfg.Matching.CandidateLimit != 20 {
			t.Errorf("Matching.CandidateLimit = %d, want 20", cfg.Matching.CandidateLimit)
		}
		if cfg.Matching.NameSimilarity != 0.50 {
			t.Errorf("Matching.NameSimilarity = %v, want 0.50", cfg.Matching.NameSimilarity)
		}
		if cfg.Log.Level != "info" {
			t.Errorf("Log.Level = %s, want info", cfg.Log.Level)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("GROCERMATCH_SERVER_PORT", "9090")
		os.Setenv("GROCERMATCH_SERVER_ENVIRONMENT", "production")
		os.Setenv("GROCERMATCH_GROCER_API_KEY", "custom-api-key")
		os.Setenv("GROCERMATCH_GROCER_BASE_URL", "https://custom.api.com")
		os.Setenv("GROCERMATCH_GROCER_DEFAULT_LOCATION_ID", "store-42")
		os.Setenv("GROCERMATCH_CACHE_TYPE", "redis")
		os.Setenv("GROCERMATCH_CACHE_REDIS_URL", "redis://localhost:6379")
		os.Setenv("GROCERMATCH_CACHE_TTL", "24h")
		os.Setenv("GROCERMATCH_RATELIMIT_PER_IP", "200")
		os.Setenv("GROCERMATCH_MATCHING_NAME_SIMILARITY", "0.7")
		os.Setenv("GROCERMATCH_LOG_LEVEL", "debug")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Grocer.APIKey != "custom-api-key" {
			t.Errorf("Grocer.APIKey = %s, want custom-api-key", cfg.Grocer.APIKey)
		}
		if cfg.Grocer.DefaultLocationID != "store-42" {
			t.Errorf("Grocer.DefaultLocationID = %s, want store-42", cfg.Grocer.DefaultLocationID)
		}
		if cfg.Cache.Type != "redis" {
			t.Errorf("Cache.Type = %s, want redis", cfg.Cache.Type)
		}
		if cfg.Cache.RedisURL != "redis://localhost:6379" {
			t.Errorf("Cache.RedisURL = %s, want redis://localhost:6379", cfg.Cache.RedisURL)
		}
		if cfg.Cache.TTL != 24*time.Hour {
			t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 200 {
			t.Errorf("RateLimit.PerIP = %d, want 200", cfg.RateLimit.PerIP)
		}
		if cfg.Matching.NameSimilarity != 0.7 {
			t.Errorf("Matching.NameSimilarity = %v, want 0.7", cfg.Matching.NameSimilarity)
		}
		if cfg.Log.Level != "debug" {
			t.Errorf("Log.Level = %s, want debug", cfg.Log.Level)
		}
	})

	t.Run("fails validation when API key is missing", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Fatal("Load() error = nil, want error for missing API key")
		}
		if !strings.Contains(err.Error(), "grocer API key is required") {
			t.Errorf("Load() error = %v, want 'grocer API key is required'", err)
		}
	})

	t.Run("fails validation for invalid cache type", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("GROCERMATCH_GROCER_API_KEY", "test-key")
		os.Setenv("GROCERMATCH_CACHE_TYPE", "memcached")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Fatal("Load() error = nil, want error for invalid cache type")
		}
		if !strings.Contains(err.Error(), "cache type must be") {
			t.Errorf("Load() error = %v, want cache type error", err)
		}
	})

	t.Run("fails validation when redis cache has no URL", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("GROCERMATCH_GROCER_API_KEY", "test-key")
		os.Setenv("GROCERMATCH_CACHE_TYPE", "redis")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Fatal("Load() error = nil, want error for missing redis URL")
		}
		if !strings.Contains(err.Error(), "redis URL is required") {
			t.Errorf("Load() error = %v, want redis URL error", err)
		}
	})

	t.Run("fails validation for negative weight", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("GROCERMATCH_GROCER_API_KEY", "test-key")
		os.Setenv("GROCERMATCH_MATCHING_NAME_SIMILARITY", "-0.5")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Fatal("Load() error = nil, want error for negative weight")
		}
		if !strings.Contains(err.Error(), "must be non-negative") {
			t.Errorf("Load() error = %v, want non-negative weight error", err)
		}
	})

	t.Run("fails validation for zero concurrency", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("GROCERMATCH_GROCER_API_KEY", "test-key")
		os.Setenv("GROCERMATCH_MATCHING_CONCURRENCY", "0")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Fatal("Load() error = nil, want error for zero concurrency")
		}
		if !strings.Contains(err.Error(), "concurrency must be at least 1") {
			t.Errorf("Load() error = %v, want concurrency error", err)
		}
	})
}
