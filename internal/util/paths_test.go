package util

import (
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home := HomeDir()

	tests := []struct {
		name     string
		path     string
		baseDir  string
		expected string
	}{
		{"empty", "", "/base", ""},
		{"tilde only", "~", "/base", home},
		{"tilde prefix", "~/snapshots", "/base", filepath.Join(home, "snapshots")},
		{"absolute", "/var/snapshots", "/base", "/var/snapshots"},
		{"relative", "snapshots", "/base", filepath.Join("/base", "snapshots")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.path, tt.baseDir); got != tt.expected {
				t.Errorf("ExpandPath(%q, %q) = %q, want %q", tt.path, tt.baseDir, got, tt.expected)
			}
		})
	}
}

func TestFlowsyncConfigPath(t *testing.T) {
	got := FlowsyncConfigPath()
	if got == "" {
		t.Fatal("FlowsyncConfigPath() returned empty path")
	}
	if filepath.Base(got) != "flowsync" {
		t.Errorf("FlowsyncConfigPath() = %q, want a flowsync directory", got)
	}
}
