package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if cfg.Keyframes.Max != defaultMaxKeyframes || cfg.Keyframes.Min != defaultMinKeyframes {
		t.Fatalf("unexpected keyframe bounds: %+v", cfg.Keyframes)
	}
	if cfg.Matching.MinMatchScore != defaultMinMatchScore {
		t.Fatalf("unexpected match score floor: %v", cfg.Matching.MinMatchScore)
	}
}

func TestLoadParsesFileAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "oralscan.toml")
	content := `
[keyframes]
max = 10
min = 3
priority_threshold = 0.7

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved == "" {
		t.Fatalf("expected config to resolve, got exists=%v path=%q", exists, resolved)
	}
	if cfg.Keyframes.Max != 10 || cfg.Keyframes.Min != 3 {
		t.Fatalf("unexpected keyframe bounds: %+v", cfg.Keyframes)
	}
	if cfg.Keyframes.PriorityThreshold != 0.7 {
		t.Fatalf("unexpected priority threshold: %v", cfg.Keyframes.PriorityThreshold)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging not normalized: %+v", cfg.Logging)
	}
}

func TestLoadRejectsInvertedBounds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "oralscan.toml")
	content := `
[keyframes]
max = 4
min = 9
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected validation error for min > max")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("ORALSCAN_KEYFRAMES_MAX_KEYFRAMES", "12")
	cfg, _, _, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Keyframes.Max != 12 {
		t.Fatalf("env override not applied, max=%d", cfg.Keyframes.Max)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	got, err := ExpandPath("~/x")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "x") {
		t.Fatalf("unexpected expansion: %q", got)
	}
}
