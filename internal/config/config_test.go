package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauern/flowsync/internal/reconcile"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if cfg.Plan.DuplicatePolicy != string(reconcile.DuplicateReject) {
		t.Errorf("expected default duplicate policy %q, got %q", reconcile.DuplicateReject, cfg.Plan.DuplicatePolicy)
	}
	if cfg.Plan.ForceEncoding {
		t.Error("expected ForceEncoding to be false by default")
	}
	if !cfg.Plan.Progress {
		t.Error("expected Progress to be true by default")
	}
	if cfg.Output.Color != "auto" {
		t.Errorf("expected Output.Color to be 'auto', got %q", cfg.Output.Color)
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `plan:
  duplicate_policy: first-wins
  progress: false
prefixes:
  lambda_source: dev-
  lambda_target: prod-
output:
  color: never
  verbose: true
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if cfg.Plan.DuplicatePolicy != "first-wins" {
		t.Errorf("DuplicatePolicy = %q, want first-wins", cfg.Plan.DuplicatePolicy)
	}
	if cfg.Plan.Progress {
		t.Error("Progress = true, want false")
	}
	if cfg.Prefixes.LambdaSource != "dev-" || cfg.Prefixes.LambdaTarget != "prod-" {
		t.Errorf("lambda prefixes = %q/%q", cfg.Prefixes.LambdaSource, cfg.Prefixes.LambdaTarget)
	}
	if cfg.Output.Color != "never" || !cfg.Output.Verbose {
		t.Errorf("output = %+v", cfg.Output)
	}
}

func TestLoadFromPath_Missing(t *testing.T) {
	if _, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config path")
	}
}

func TestSaveToPath_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.yaml")

	cfg := Default()
	cfg.Plan.DuplicatePolicy = string(reconcile.DuplicateFirstWins)
	cfg.Prefixes.BotSource = "devbot-"

	if err := cfg.SaveToPath(path); err != nil {
		t.Fatalf("SaveToPath() error = %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if loaded.Plan.DuplicatePolicy != string(reconcile.DuplicateFirstWins) {
		t.Errorf("DuplicatePolicy = %q after round trip", loaded.Plan.DuplicatePolicy)
	}
	if loaded.Prefixes.BotSource != "devbot-" {
		t.Errorf("BotSource = %q after round trip", loaded.Prefixes.BotSource)
	}
}

func TestApplyEnvironment(t *testing.T) {
	t.Setenv("FLOWSYNC_PLAN_DUPLICATE_POLICY", "first-wins")
	t.Setenv("FLOWSYNC_OUTPUT_VERBOSE", "yes")
	t.Setenv("FLOWSYNC_PREFIX_LAMBDA_TARGET", "prod-")

	cfg := Default()
	cfg.applyEnvironment()

	if cfg.Plan.DuplicatePolicy != "first-wins" {
		t.Errorf("DuplicatePolicy = %q, want env override", cfg.Plan.DuplicatePolicy)
	}
	if !cfg.Output.Verbose {
		t.Error("Verbose = false, want env override")
	}
	if cfg.Prefixes.LambdaTarget != "prod-" {
		t.Errorf("LambdaTarget = %q, want env override", cfg.Prefixes.LambdaTarget)
	}
}

func TestGetDuplicatePolicy(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected reconcile.DuplicatePolicy
	}{
		{"reject", "reject", reconcile.DuplicateReject},
		{"first-wins", "first-wins", reconcile.DuplicateFirstWins},
		{"invalid falls back", "bogus", reconcile.DuplicateReject},
		{"empty falls back", "", reconcile.DuplicateReject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Plan.DuplicatePolicy = tt.value
			if got := cfg.GetDuplicatePolicy(); got != tt.expected {
				t.Errorf("GetDuplicatePolicy() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"true", true},
		{"1", true},
		{"yes", true},
		{"on", true},
		{"TRUE", true},
		{"false", false},
		{"0", false},
		{"", false},
		{"maybe", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseBool(tt.input); got != tt.expected {
				t.Errorf("parseBool(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
