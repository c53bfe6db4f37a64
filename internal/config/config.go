// Package config loads runtime configuration from the environment
// (BOOKSTORE_ prefix) and an optional bookstore.yaml file, with sane
// defaults for everything except the database DSN and the admin token.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds every tunable the server reads at startup.
type Config struct {
	Port        int
	Environment string // development, staging, or production
	DB          struct {
		DSN string // PostgreSQL Data Source Name
	}
	AdminToken string // Bearer token that grants the is-admin capability
	Limiter    struct {
		Enabled bool
		RPS     float64 // Sustained requests per second per client IP
		Burst   int
	}
	Validation struct {
		MinTitleLength         int // Also applied to the author field
		MinDescriptionLength   int
		MinTextLength          int // Gibberish heuristic minimum
		ConsonantClusterLength int
		ImageExtensions        []string
		TrustedImageHosts      []string
	}
}

// Load reads config from the environment and optional bookstore.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BOOKSTORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("bookstore")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("port", 4000)
	v.SetDefault("environment", "development")
	v.SetDefault("limiter.enabled", true)
	v.SetDefault("limiter.rps", 2.0)
	v.SetDefault("limiter.burst", 4)
	v.SetDefault("validation.min_title_length", 3)
	v.SetDefault("validation.min_description_length", 10)
	v.SetDefault("validation.min_text_length", 3)
	v.SetDefault("validation.consonant_cluster_length", 5)
	v.SetDefault("validation.image_extensions",
		[]string{"jpg", "jpeg", "png", "gif", "webp", "avif", "svg"})
	v.SetDefault("validation.trusted_image_hosts",
		[]string{"bing.com", "unsplash.com", "pixabay.com", "googleusercontent.com"})

	cfg := &Config{}
	cfg.Port = v.GetInt("port")
	cfg.Environment = v.GetString("environment")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.AdminToken = v.GetString("admin_token")
	cfg.Limiter.Enabled = v.GetBool("limiter.enabled")
	cfg.Limiter.RPS = v.GetFloat64("limiter.rps")
	cfg.Limiter.Burst = v.GetInt("limiter.burst")
	cfg.Validation.MinTitleLength = v.GetInt("validation.min_title_length")
	cfg.Validation.MinDescriptionLength = v.GetInt("validation.min_description_length")
	cfg.Validation.MinTextLength = v.GetInt("validation.min_text_length")
	cfg.Validation.ConsonantClusterLength = v.GetInt("validation.consonant_cluster_length")
	cfg.Validation.ImageExtensions = v.GetStringSlice("validation.image_extensions")
	cfg.Validation.TrustedImageHosts = v.GetStringSlice("validation.trusted_image_hosts")

	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("BOOKSTORE_DB_DSN is required")
	}
	if cfg.AdminToken == "" {
		return nil, fmt.Errorf("BOOKSTORE_ADMIN_TOKEN is required")
	}

	return cfg, nil
}
