package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Grocer    GrocerConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Matching  MatchingConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GrocerConfig holds retailer catalog API configuration
type GrocerConfig struct {
	APIKey            string `mapstructure:"api_key"`
	BaseURL           string `mapstructure:"base_url"`
	DefaultLocationID string `mapstructure:"default_location_id"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// MatchingConfig holds scoring weights and pipeline bounds. Weights are
// tuning parameters exposed here so they can be adjusted without a code
// change.
type MatchingConfig struct {
	Concurrency    int     `mapstructure:"concurrency"`
	CandidateLimit int     `mapstructure:"candidate_limit"`
	NameSimilarity float64 `mapstructure:"name_similarity"`
	SizeProximity  float64 `mapstructure:"size_proximity"`
	CategoryMatch  float64 `mapstructure:"category_match"`
	Availability   float64 `mapstructure:"availability"`
	Promo          float64 `mapstructure:"promo"`
	FormPenalty    float64 `mapstructure:"form_penalty"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/grocermatch/")

	v.SetEnvPrefix("GROCERMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Secrets default to empty so viper registers the keys; AutomaticEnv
	// only reads env vars for keys it already knows about.
	v.SetDefault("grocer.api_key", "")
	v.SetDefault("grocer.base_url", "https://api.grocer.example.com")
	v.SetDefault("grocer.default_location_id", "")

	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "1h")

	v.SetDefault("ratelimit.per_ip", 60)

	v.SetDefault("matching.concurrency", 4)
	v.SetDefault("matching.candidate_limit", 20)
	v.SetDefault("matching.name_similarity", 0.50)
	v.SetDefault("matching.size_proximity", 0.20)
	v.SetDefault("matching.category_match", 0.15)
	v.SetDefault("matching.availability", 0.10)
	v.SetDefault("matching.promo", 0.05)
	v.SetDefault("matching.form_penalty", 0.25)

	v.SetDefault("log.level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Grocer.APIKey == "" {
		return fmt.Errorf("grocer API key is required (set GROCERMATCH_GROCER_API_KEY)")
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("redis URL is required when cache type is 'redis'")
	}

	weights := []struct {
		name  string
		value float64
	}{
		{"name_similarity", config.Matching.NameSimilarity},
		{"size_proximity", config.Matching.SizeProximity},
		{"category_match", config.Matching.CategoryMatch},
		{"availability", config.Matching.Availability},
		{"promo", config.Matching.Promo},
		{"form_penalty", config.Matching.FormPenalty},
	}
	for _, w := range weights {
		if w.value < 0 {
			return fmt.Errorf("matching weight %s must be non-negative, got: %v", w.name, w.value)
		}
	}

	if config.Matching.Concurrency < 1 {
		return fmt.Errorf("matching concurrency must be at least 1, got: %d", config.Matching.Concurrency)
	}

	return nil
}
