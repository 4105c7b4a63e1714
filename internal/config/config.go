// Package config loads the gateway's environment-driven configuration.
// Invalid or incomplete values are reported as errors here and treated
// as fatal by the caller; nothing is re-read after startup.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrInvalidConfig reports missing or inconsistent required values.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full set of recognized options.
type Config struct {
	// Service-account credential triple. A complete triple selects
	// ServiceAccount mode; a fully absent one selects the sidecar
	// broker. A partial triple is a configuration error.
	ProjectID   string // GCS_PROJECT_ID
	ClientEmail string // GCS_CLIENT_EMAIL
	PrivateKey  string // GCS_PRIVATE_KEY

	// Storage layout.
	DefaultBucket string   // STORAGE_BUCKET (optional, enables marker remapping)
	PrivateDir    string   // STORAGE_PRIVATE_DIR (required)
	PublicPaths   []string // STORAGE_PUBLIC_PATHS (comma-separated, at least one)

	// Server and observability.
	Address           string // ADDRESS (default :8080)
	SentryDSN         string // SENTRY_DSN (optional)
	SentryEnvironment string // SENTRY_ENVIRONMENT (default production)
}

// Load reads the environment and validates it.
func Load() (Config, error) {
	cfg := Config{
		ProjectID:         os.Getenv("GCS_PROJECT_ID"),
		ClientEmail:       os.Getenv("GCS_CLIENT_EMAIL"),
		PrivateKey:        os.Getenv("GCS_PRIVATE_KEY"),
		DefaultBucket:     os.Getenv("STORAGE_BUCKET"),
		PrivateDir:        os.Getenv("STORAGE_PRIVATE_DIR"),
		PublicPaths:       splitPaths(os.Getenv("STORAGE_PUBLIC_PATHS")),
		Address:           getEnv("ADDRESS", ":8080"),
		SentryDSN:         os.Getenv("SENTRY_DSN"),
		SentryEnvironment: getEnv("SENTRY_ENVIRONMENT", "production"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ServiceAccountConfigured reports whether the complete credential
// triple is present.
func (c Config) ServiceAccountConfigured() bool {
	return c.ProjectID != "" && c.ClientEmail != "" && c.PrivateKey != ""
}

// validate checks required values and consistency.
func (c Config) validate() error {
	if c.PrivateDir == "" {
		return fmt.Errorf("%w: STORAGE_PRIVATE_DIR is required", ErrInvalidConfig)
	}
	if len(c.PublicPaths) == 0 {
		return fmt.Errorf("%w: STORAGE_PUBLIC_PATHS needs at least one path", ErrInvalidConfig)
	}

	triple := 0
	for _, v := range []string{c.ProjectID, c.ClientEmail, c.PrivateKey} {
		if v != "" {
			triple++
		}
	}
	if triple != 0 && triple != 3 {
		return fmt.Errorf("%w: partial service-account triple; set all of GCS_PROJECT_ID, GCS_CLIENT_EMAIL, GCS_PRIVATE_KEY or none", ErrInvalidConfig)
	}

	return nil
}

// splitPaths parses a comma-separated path list, dropping empty entries.
func splitPaths(raw string) []string {
	var paths []string
	for p := range strings.SplitSeq(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// getEnv returns environment variable value or default if not set.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
