package cli

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	output, err := captureRun(t, []string{"flowsync", "version"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, want := range []string{"flowsync version", "commit:", "built:", "go:"} {
		if !strings.Contains(output, want) {
			t.Errorf("Run() output = %q, want substring %q", output, want)
		}
	}
	if !strings.Contains(output, runtime.Version()) {
		t.Errorf("output should contain Go version %q, got %q", runtime.Version(), output)
	}

	// Four indented-label lines.
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines of output, got %d: %q", len(lines), output)
	}
	if !strings.HasPrefix(lines[0], "flowsync version ") {
		t.Errorf("first line should start with 'flowsync version ', got %q", lines[0])
	}
	for i, line := range lines[1:] {
		if !strings.HasPrefix(line, "  ") {
			t.Errorf("line %d should be indented with 2 spaces, got %q", i+2, line)
		}
	}
}

func TestVersionCommandDefinition(t *testing.T) {
	cmd := versionCommand()

	if cmd.Name != "version" {
		t.Errorf("command name = %q, want %q", cmd.Name, "version")
	}
	if cmd.Usage == "" {
		t.Error("command should have usage text")
	}
	if cmd.Action == nil {
		t.Error("command should have an action function")
	}
}

func TestConfigCommandShowsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	output, err := captureRun(t, []string{"flowsync", "config"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !strings.Contains(output, "not present, showing defaults") {
		t.Errorf("output should note missing config file, got %q", output)
	}
	for _, want := range []string{"duplicate_policy: reject", "progress: true", "color: auto"} {
		if !strings.Contains(output, want) {
			t.Errorf("output = %q, want substring %q", output, want)
		}
	}
}

func TestConfigCommandEnvironmentOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FLOWSYNC_PLAN_DUPLICATE_POLICY", "first-wins")

	output, err := captureRun(t, []string{"flowsync", "config"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !strings.Contains(output, "duplicate_policy: first-wins") {
		t.Errorf("output should reflect environment override, got %q", output)
	}
}

func TestConfigCommandInit(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	output, err := captureRun(t, []string{"flowsync", "config", "--init"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(output, "wrote default configuration") {
		t.Errorf("output = %q, want write confirmation", output)
	}

	path := filepath.Join(home, ".config", "flowsync", "config.yaml")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	// A second init must refuse to overwrite.
	if _, err := captureRun(t, []string{"flowsync", "config", "--init"}); err == nil {
		t.Error("second init should fail on an existing config file")
	}
}
