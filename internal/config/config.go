package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and database location configuration.
type Paths struct {
	StagingDir  string `toml:"staging_dir" env:"STAGING_DIR"`
	KeyframeDir string `toml:"keyframe_dir" env:"KEYFRAME_DIR"`
	LogDir      string `toml:"log_dir" env:"LOG_DIR"`
	BaselineDB  string `toml:"baseline_db" env:"BASELINE_DB"`
}

// Video contains upload limits enforced before a source is scanned.
type Video struct {
	MaxDurationSeconds int `toml:"max_duration_seconds" env:"MAX_DURATION_SECONDS"`
	MaxSizeMB          int `toml:"max_size_mb" env:"MAX_SIZE_MB"`
}

// Keyframes contains the dual-track sampler tunables.
type Keyframes struct {
	Max                  int     `toml:"max" env:"MAX_KEYFRAMES"`
	Min                  int     `toml:"min" env:"MIN_KEYFRAMES"`
	UniformSampleCount   int     `toml:"uniform_sample_count" env:"UNIFORM_SAMPLE_COUNT"`
	PriorityThreshold    float64 `toml:"priority_threshold" env:"PRIORITY_THRESHOLD"`
	ScanSamplesPerSecond float64 `toml:"scan_samples_per_second" env:"SCAN_SAMPLES_PER_SECOND"`
	ProximityWindow      int     `toml:"proximity_window" env:"PROXIMITY_WINDOW"`
	JPEGQuality          int     `toml:"jpeg_quality" env:"JPEG_QUALITY"`
}

// Matching contains baseline matching tunables.
type Matching struct {
	MinMatchScore float64 `toml:"min_match_score" env:"MIN_MATCH_SCORE"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format" env:"LOG_FORMAT"`
	Level  string `toml:"level" env:"LOG_LEVEL"`
}

// Config encapsulates all configuration values for oralscan.
//
// Configuration sections by subsystem:
//   - Paths: staging/keyframe/log directories and baseline database location
//   - Video: source validation limits
//   - Keyframes: dual-track sampler bounds and thresholds
//   - Matching: baseline match score floor
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths" envPrefix:"PATHS_"`
	Video     Video     `toml:"video" envPrefix:"VIDEO_"`
	Keyframes Keyframes `toml:"keyframes" envPrefix:"KEYFRAMES_"`
	Matching  Matching  `toml:"matching" envPrefix:"MATCHING_"`
	Logging   Logging   `toml:"logging" envPrefix:"LOGGING_"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/oralscan/config.toml")
}

// Load locates, parses, and validates a configuration file, then applies
// ORALSCAN_* environment overrides. The returned config has all path fields
// expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "ORALSCAN_"}); err != nil {
		return nil, "", false, fmt.Errorf("apply env overrides: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("oralscan.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for pipeline operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StagingDir, c.Paths.KeyframeDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if dir := filepath.Dir(c.Paths.BaselineDB); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create baseline db directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
