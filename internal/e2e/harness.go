// Package e2e provides testing infrastructure for end-to-end CLI tests.
// It includes a harness for running flowsync commands against fixture
// snapshot directories in an isolated environment.
package e2e

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"

	urfave "github.com/urfave/cli/v3"

	"github.com/klauern/flowsync/internal/cli"
)

// Result contains the outcome of running a CLI command.
type Result struct {
	// Stdout contains the captured standard output.
	Stdout string
	// Err is the error returned by the CLI command, if any.
	Err error
	// ExitCode is the exit code the process would have exited with.
	ExitCode int
}

// Success returns true if the command completed without error.
func (r *Result) Success() bool {
	return r.Err == nil
}

// Harness runs flowsync commands in an isolated environment. Each harness
// gets its own HOME so configuration files and FLOWSYNC_* variables from
// the host cannot leak into the test.
type Harness struct {
	t       *testing.T
	homeDir string
}

// NewHarness creates a new E2E test harness with an isolated home directory.
func NewHarness(t *testing.T) *Harness {
	t.Helper()

	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	for _, key := range []string{
		"FLOWSYNC_PLAN_DUPLICATE_POLICY",
		"FLOWSYNC_PLAN_FORCE_ENCODING",
		"FLOWSYNC_PLAN_PROGRESS",
		"FLOWSYNC_PREFIX_LAMBDA_SOURCE",
		"FLOWSYNC_PREFIX_LAMBDA_TARGET",
		"FLOWSYNC_PREFIX_BOT_SOURCE",
		"FLOWSYNC_PREFIX_BOT_TARGET",
		"FLOWSYNC_OUTPUT_COLOR",
		"FLOWSYNC_OUTPUT_VERBOSE",
	} {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset %s: %v", key, err)
		}
	}

	// Keep exit-coded errors from terminating the test binary.
	urfave.OsExiter = func(int) {}

	return &Harness{t: t, homeDir: homeDir}
}

// SetEnv sets an environment variable for CLI commands run through this
// harness. It is restored after the test completes.
func (h *Harness) SetEnv(key, value string) {
	h.t.Helper()
	h.t.Setenv(key, value)
}

// HomeDir returns the isolated home directory for this test harness.
func (h *Harness) HomeDir() string {
	return h.homeDir
}

// Run executes a CLI command with the given arguments and captures stdout.
func (h *Harness) Run(args ...string) *Result {
	h.t.Helper()

	if len(args) == 0 || args[0] != "flowsync" {
		args = append([]string{"flowsync"}, args...)
	}

	oldStdout := os.Stdout
	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		h.t.Fatalf("failed to create stdout pipe: %v", err)
	}
	os.Stdout = stdoutW

	// Read stdout concurrently to avoid pipe buffer deadlock on large
	// output.
	var stdoutBuf bytes.Buffer
	var copyErr error
	copyDone := make(chan struct{})
	go func() {
		defer close(copyDone)
		_, copyErr = io.Copy(&stdoutBuf, stdoutR)
	}()

	ctx := context.Background()
	cmdErr := cli.Run(ctx, args)

	if err := stdoutW.Close(); err != nil {
		h.t.Fatalf("failed to close stdout pipe writer: %v", err)
	}
	os.Stdout = oldStdout

	<-copyDone
	if copyErr != nil {
		h.t.Fatalf("failed to read captured stdout: %v", copyErr)
	}

	exitCode := 0
	if cmdErr != nil {
		exitCode = 1
		var coder urfave.ExitCoder
		if errors.As(cmdErr, &coder) {
			exitCode = coder.ExitCode()
		}
	}

	return &Result{
		Stdout:   stdoutBuf.String(),
		Err:      cmdErr,
		ExitCode: exitCode,
	}
}
