package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI executes the root command with args against an isolated config.
func runCLI(t *testing.T, args []string, configPath string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if configPath != "" {
		args = append(args, "--config", configPath)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeTestConfig(t *testing.T) string {
	t.Helper()

	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
staging_dir = %q
keyframe_dir = %q
log_dir = %q
baseline_db = %q

[logging]
level = "error"
`,
		filepath.Join(base, "staging"),
		filepath.Join(base, "keyframes"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "baseline.db"))

	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("output %q does not contain %q", haystack, needle)
	}
}

func TestConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, err = runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected error without --overwrite")
	}
}

func TestBaselineCoverageEmpty(t *testing.T) {
	configPath := writeTestConfig(t)

	out, err := runCLI(t, []string{"baseline", "coverage", "--user", "user-1"}, configPath)
	if err != nil {
		t.Fatalf("baseline coverage: %v", err)
	}
	requireContains(t, out, "Baseline complete: no")
	requireContains(t, out, "Upper Front")
}

func TestBaselineCommandsRequireUser(t *testing.T) {
	configPath := writeTestConfig(t)

	if _, err := runCLI(t, []string{"baseline", "coverage"}, configPath); err == nil {
		t.Fatal("expected error without --user")
	}
	if _, err := runCLI(t, []string{"baseline", "sessions"}, configPath); err == nil {
		t.Fatal("expected error without --user")
	}
}

func TestCheckRequiresUser(t *testing.T) {
	configPath := writeTestConfig(t)

	if _, err := runCLI(t, []string{"check", "some.mp4"}, configPath); err == nil {
		t.Fatal("expected error without --user")
	}
}

func TestDisplayHelpers(t *testing.T) {
	if got := displayTag("dark_deposit"); got != "Dark Deposit" {
		t.Fatalf("displayTag = %q", got)
	}
	if got := yesNo(true); got != "yes" {
		t.Fatalf("yesNo = %q", got)
	}
}

func TestRenderTableShape(t *testing.T) {
	out := renderTable([]string{"A", "B"}, [][]string{{"1", "2"}, {"3"}}, 1)
	requireContains(t, out, "A")
	requireContains(t, out, "3")
}
