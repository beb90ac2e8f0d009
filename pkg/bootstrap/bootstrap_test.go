package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/structurerun/structurerun/pkg/events"
	loggerpkg "github.com/structurerun/structurerun/pkg/logger"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestSelectRuntimeMode(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want RuntimeMode
	}{
		{"marker absent", map[string]string{}, ModeLocal},
		{"marker empty", map[string]string{MarkerVar: ""}, ModeLocal},
		{"marker set", map[string]string{MarkerVar: "run-123"}, ModeManaged},
		{"marker set among noise", map[string]string{MarkerVar: "x", "OPENAI_API_KEY": "k"}, ModeManaged},
		{"unrelated vars only", map[string]string{"OPENAI_API_KEY": "k", "HOME": "/root"}, ModeLocal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SelectRuntimeMode(lookupFrom(tc.env)); got != tc.want {
				t.Fatalf("mode = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRuntimeModeString(t *testing.T) {
	if ModeLocal.String() != "local" || ModeManaged.String() != "managed" {
		t.Fatalf("String() = %q / %q", ModeLocal, ModeManaged)
	}
}

func TestBootstrapLocalLoadsSecretsFile(t *testing.T) {
	const key = "STRUCTURERUN_TEST_SECRET"
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "# provider credentials\n" + key + "=from-file\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	_ = os.Unsetenv(key)
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	bus := events.NewBus()
	mode, err := Bootstrap(bus, loggerpkg.NopLogger{},
		WithLookup(lookupFrom(map[string]string{})),
		WithEnvFile(envFile),
	)
	if err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if mode != ModeLocal {
		t.Fatalf("mode = %v, want local", mode)
	}
	if got := os.Getenv(key); got != "from-file" {
		t.Fatalf("%s = %q, want %q", key, got, "from-file")
	}
	if bus.ListenerCount() != 0 {
		t.Fatalf("local mode registered %d listener(s)", bus.ListenerCount())
	}
}

func TestBootstrapLocalMissingFileIsNotAnError(t *testing.T) {
	bus := events.NewBus()
	mode, err := Bootstrap(bus, loggerpkg.NopLogger{},
		WithLookup(lookupFrom(map[string]string{})),
		WithEnvFile(filepath.Join(t.TempDir(), "does-not-exist.env")),
	)
	if err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if mode != ModeLocal {
		t.Fatalf("mode = %v, want local", mode)
	}
}

func TestBootstrapLocalDoesNotOverrideExistingEnv(t *testing.T) {
	const key = "STRUCTURERUN_TEST_EXISTING"
	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte(key+"=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(key, "from-process")

	_, err := Bootstrap(events.NewBus(), loggerpkg.NopLogger{},
		WithLookup(lookupFrom(map[string]string{})),
		WithEnvFile(envFile),
	)
	if err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if got := os.Getenv(key); got != "from-process" {
		t.Fatalf("%s = %q, want the pre-existing value", key, got)
	}
}

func TestBootstrapManagedAttachesCloudListener(t *testing.T) {
	bus := events.NewBus()
	mode, err := Bootstrap(bus, loggerpkg.NopLogger{},
		WithLookup(lookupFrom(map[string]string{
			MarkerVar:           "run-123",
			"GT_CLOUD_BASE_URL": "https://cloud.example.com",
			"GT_CLOUD_API_KEY":  "cloud-key",
		})),
	)
	if err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if mode != ModeManaged {
		t.Fatalf("mode = %v, want managed", mode)
	}
	if bus.ListenerCount() != 1 {
		t.Fatalf("listener count = %d, want 1", bus.ListenerCount())
	}
}

func TestBootstrapManagedDefaultsCloudBaseURL(t *testing.T) {
	bus := events.NewBus()
	_, err := Bootstrap(bus, loggerpkg.NopLogger{},
		WithLookup(lookupFrom(map[string]string{MarkerVar: "run-123"})),
	)
	if err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if bus.ListenerCount() != 1 {
		t.Fatalf("listener count = %d, want 1", bus.ListenerCount())
	}
}
