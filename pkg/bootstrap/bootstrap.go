// Package bootstrap decides how the process attaches to its execution
// environment: managed (telemetry delivered to the cloud runtime) or local
// (secrets loaded from a .env file).
package bootstrap

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/structurerun/structurerun/pkg/config"
	"github.com/structurerun/structurerun/pkg/events"
	loggerpkg "github.com/structurerun/structurerun/pkg/logger"
)

// RuntimeMode says whether the process runs under the managed runtime or
// locally. It is computed once at startup and threaded through; nothing
// mutates it afterwards.
type RuntimeMode int

const (
	ModeLocal RuntimeMode = iota
	ModeManaged
)

func (m RuntimeMode) String() string {
	if m == ModeManaged {
		return "managed"
	}
	return "local"
}

// MarkerVar is the variable the managed runtime injects into every run.
const MarkerVar = config.EnvCloudRunID

// SelectRuntimeMode inspects the environment through lookup; pass
// os.LookupEnv in production. Managed mode requires the marker to be present
// with a non-empty value.
func SelectRuntimeMode(lookup func(string) (string, bool)) RuntimeMode {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(MarkerVar); ok && v != "" {
		return ModeManaged
	}
	return ModeLocal
}

// Option overrides bootstrap behavior, mostly for tests.
type Option func(*settings)

type settings struct {
	lookup  func(string) (string, bool)
	envFile string
	client  *http.Client
}

// WithLookup substitutes the environment source.
func WithLookup(lookup func(string) (string, bool)) Option {
	return func(s *settings) { s.lookup = lookup }
}

// WithEnvFile loads the named secrets file instead of ./.env.
func WithEnvFile(path string) Option {
	return func(s *settings) { s.envFile = path }
}

// WithHTTPClient substitutes the client used for cloud event delivery.
func WithHTTPClient(c *http.Client) Option {
	return func(s *settings) { s.client = c }
}

// Bootstrap selects the runtime mode and wires its side effects.
//
// Managed: a cloud event listener is registered on bus; no secrets file is
// read, the runtime injects secrets itself.
//
// Local: the secrets file is loaded into the process environment. A missing
// file is not an error — whatever environment already exists wins, and any
// key still absent surfaces later as the provider's authentication failure.
func Bootstrap(bus *events.Bus, log loggerpkg.Logger, opts ...Option) (RuntimeMode, error) {
	s := settings{lookup: os.LookupEnv}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}

	mode := SelectRuntimeMode(s.lookup)
	if mode == ModeLocal {
		var err error
		if s.envFile != "" {
			err = godotenv.Load(s.envFile)
		} else {
			err = godotenv.Load()
		}
		if err != nil && !os.IsNotExist(err) {
			loggerpkg.Warn(log, "secrets file not loaded", map[string]any{"error": err.Error()})
		}
		return mode, nil
	}

	cfg := config.Normalize(config.FromEnv(s.lookup))
	driver, err := events.NewCloudEventDriver(events.CloudConfig{
		BaseURL: cfg.CloudBaseURL,
		APIKey:  cfg.CloudAPIKey,
		RunID:   cfg.CloudRunID,
	}, s.client)
	if err != nil {
		return mode, fmt.Errorf("attach cloud listener: %w", err)
	}
	if bus != nil {
		bus.AddListener(driver)
	}
	loggerpkg.Info(log, "cloud event listener attached", map[string]any{
		"run_id":   cfg.CloudRunID,
		"endpoint": driver.Endpoint(),
	})
	return mode, nil
}
