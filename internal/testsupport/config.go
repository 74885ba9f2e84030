package testsupport

import (
	"path/filepath"
	"testing"

	"oralscan/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StagingDir = filepath.Join(base, "staging")
	cfg.Paths.KeyframeDir = filepath.Join(base, "keyframes")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.BaselineDB = filepath.Join(base, "baseline.db")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithKeyframeBounds overrides the sampler bounds on the test config.
func WithKeyframeBounds(min, max int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Keyframes.Min = min
		cfg.Keyframes.Max = max
	}
}
