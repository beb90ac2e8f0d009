// Package config assembles runtime configuration from the process environment.
package config

import (
	"os"
	"strings"
)

// Environment variable names read after bootstrap has settled the environment.
const (
	EnvAPIKey  = "OPENAI_API_KEY"
	EnvBaseURL = "OPENAI_BASE_URL"

	// EnvCloudRunID is injected by the managed runtime into every run. Its
	// presence is also what flips bootstrap into managed mode.
	EnvCloudRunID   = "GT_CLOUD_STRUCTURE_RUN_ID"
	EnvCloudBaseURL = "GT_CLOUD_BASE_URL"
	EnvCloudAPIKey  = "GT_CLOUD_API_KEY"
)

// DefaultCloudBaseURL is used when the managed runtime does not override it.
const DefaultCloudBaseURL = "https://cloud.griptape.ai"

// Config holds runtime configuration for one invocation.
type Config struct {
	APIKey  string
	BaseURL string

	CloudRunID   string
	CloudBaseURL string
	CloudAPIKey  string

	MaxTurns int
	Verbose  bool
}

// DefaultConfig returns a baseline configuration without side effects.
func DefaultConfig() Config {
	return Config{MaxTurns: 10}
}

// FromEnv reads configuration through lookup; pass os.LookupEnv in
// production. A missing API key is not an error here — it surfaces as the
// provider's authentication failure at call time.
func FromEnv(lookup func(string) (string, bool)) Config {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	cfg := DefaultConfig()
	cfg.APIKey = get(EnvAPIKey)
	cfg.BaseURL = get(EnvBaseURL)
	cfg.CloudRunID = get(EnvCloudRunID)
	cfg.CloudBaseURL = get(EnvCloudBaseURL)
	cfg.CloudAPIKey = get(EnvCloudAPIKey)
	return cfg
}

// Normalize sanitizes configuration values and applies defaults.
func Normalize(cfg Config) Config {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.CloudRunID = strings.TrimSpace(cfg.CloudRunID)
	cfg.CloudBaseURL = strings.TrimSpace(cfg.CloudBaseURL)
	cfg.CloudAPIKey = strings.TrimSpace(cfg.CloudAPIKey)

	if cfg.CloudBaseURL == "" {
		cfg.CloudBaseURL = DefaultCloudBaseURL
	}
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = 1
	}
	return cfg
}
