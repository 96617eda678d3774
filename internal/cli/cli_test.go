package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	urfave "github.com/urfave/cli/v3"

	"github.com/klauern/flowsync/internal/logging"
)

func TestMain(m *testing.M) {
	// Keep exit-coded errors from killing the test binary; Run still
	// returns the error for assertions.
	urfave.OsExiter = func(int) {}
	os.Exit(m.Run())
}

// captureRun executes the CLI with stdout captured and returns the output.
func captureRun(t *testing.T, args []string) (string, error) {
	t.Helper()

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	ctx := context.Background()
	err := Run(ctx, args)

	if cerr := w.Close(); cerr != nil {
		t.Fatalf("failed to close pipe writer: %v", cerr)
	}
	os.Stdout = old

	var buf bytes.Buffer
	if _, cerr := io.Copy(&buf, r); cerr != nil {
		t.Fatalf("failed to read captured output: %v", cerr)
	}
	return buf.String(), err
}

func TestVersionVariables(t *testing.T) {
	// Version should be set (even if to "dev")
	if Version == "" {
		t.Error("Version should not be empty")
	}

	// Commit and BuildDate should have defaults
	if Commit == "" {
		t.Error("Commit should not be empty")
	}
	if BuildDate == "" {
		t.Error("BuildDate should not be empty")
	}
}

func TestConfigureLogging(t *testing.T) {
	tests := map[string]struct {
		args      []string
		wantLevel slog.Level
	}{
		"no flags uses default info level": {
			args:      []string{"flowsync", "version"},
			wantLevel: slog.LevelInfo,
		},
		"verbose flag enables info level": {
			args:      []string{"flowsync", "--verbose", "version"},
			wantLevel: slog.LevelInfo,
		},
		"debug flag enables debug level": {
			args:      []string{"flowsync", "--debug", "version"},
			wantLevel: slog.LevelDebug,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			// Reset logging to default before each test
			logging.SetDefault(logging.New(logging.DefaultOptions()))

			_, err := captureRun(t, tt.args)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			logger := slog.Default()
			if got := logger.Enabled(context.Background(), tt.wantLevel); !got {
				t.Errorf("logger should be enabled at %v", tt.wantLevel)
			}
			if tt.wantLevel != slog.LevelDebug && logger.Enabled(context.Background(), slog.LevelDebug) {
				t.Error("logger should not be enabled at debug level")
			}
		})
	}
}

func TestPlanCommandUsageErrors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := map[string]struct {
		args []string
	}{
		"no arguments": {
			args: []string{"flowsync", "plan"},
		},
		"missing output directory": {
			args: []string{"flowsync", "plan", "a", "b"},
		},
		"too many arguments": {
			args: []string{"flowsync", "plan", "a", "b", "c", "d"},
		},
		"invalid duplicates policy": {
			args: []string{"flowsync", "plan", "--duplicates", "last-wins", "a", "b", "c"},
		},
		"invalid lambda prefix remap": {
			args: []string{"flowsync", "plan", "--lambda-prefix", "noseparator", "a", "b", "c"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := captureRun(t, tt.args)
			if err == nil {
				t.Fatal("Run() expected an error")
			}
			coder, ok := err.(urfave.ExitCoder)
			if !ok {
				t.Fatalf("Run() error = %v, want an exit-coded error", err)
			}
			if coder.ExitCode() != exitUsage {
				t.Errorf("exit code = %d, want %d", coder.ExitCode(), exitUsage)
			}
		})
	}
}

func TestReviewCommandRequiresTerminal(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	// Stdout is a pipe during capture, so the terminal check must fail.
	_, err := captureRun(t, []string{"flowsync", "review", "a", "b", "c"})
	if err == nil {
		t.Fatal("Run() expected an error")
	}
	coder, ok := err.(urfave.ExitCoder)
	if !ok {
		t.Fatalf("Run() error = %v, want an exit-coded error", err)
	}
	if coder.ExitCode() != exitUsage {
		t.Errorf("exit code = %d, want %d", coder.ExitCode(), exitUsage)
	}
}

func TestParseRemap(t *testing.T) {
	tests := map[string]struct {
		input      string
		wantErr    bool
		wantSource string
		wantTarget string
	}{
		"both sides": {
			input:      "dev-:prod-",
			wantSource: "dev-",
			wantTarget: "prod-",
		},
		"empty source": {
			input:      ":prod-",
			wantSource: "",
			wantTarget: "prod-",
		},
		"empty target": {
			input:      "dev-:",
			wantSource: "dev-",
			wantTarget: "",
		},
		"extra separator goes to target": {
			input:      "a:b:c",
			wantSource: "a",
			wantTarget: "b:c",
		},
		"no separator": {
			input:   "devprod",
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := parseRemap(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseRemap(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Source != tt.wantSource || got.Target != tt.wantTarget {
				t.Errorf("parseRemap(%q) = %q/%q, want %q/%q",
					tt.input, got.Source, got.Target, tt.wantSource, tt.wantTarget)
			}
		})
	}
}
