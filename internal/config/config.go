// Package config loads server configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration.
type Config struct {
	Anthropic AnthropicConfig
	Scan      ScanConfig
}

// AnthropicConfig configures the text-generation gateway.
type AnthropicConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// ScanConfig configures the companion stage scanner.
type ScanConfig struct {
	OutputsDir string // directory holding project folders
	DataDir    string // where the scan-state database lives
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present; real environment
// variables take precedence over it.
func Load() Config {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	return Config{
		Anthropic: AnthropicConfig{
			APIKey:  os.Getenv("ANTHROPIC_API_KEY"),
			BaseURL: os.Getenv("ANTHROPIC_BASE_URL"),
			Model:   os.Getenv("SPEC_ITERATOR_MODEL"),
		},
		Scan: ScanConfig{
			OutputsDir: envOr("SPEC_ITERATOR_OUTPUTS_DIR", "outputs"),
			DataDir:    envOr("SPEC_ITERATOR_DATA_DIR", defaultDataDir()),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".spec-iterator"
	}
	return filepath.Join(home, ".spec-iterator")
}
