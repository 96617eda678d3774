package bundle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauern/flowsync/internal/logging"
	"github.com/klauern/flowsync/internal/rules"
)

// ErrDirectoryExists indicates the output directory already exists and force
// was not set. Nothing is written in that case.
var ErrDirectoryExists = errors.New("output directory already exists")

// Write persists the bundle into outputDir. If the directory exists and
// force is false it fails with ErrDirectoryExists before any write; when
// forced, the existing directory is removed first.
//
// All artifacts are staged into a temporary sibling directory and moved into
// place with a single rename, so a failed run never leaves a partially
// written bundle at the output path.
func Write(outputDir string, b *Bundle, force bool) error {
	defer logging.Timer("bundle-write")()

	if _, err := os.Stat(outputDir); err == nil {
		if !force {
			return fmt.Errorf("%w: %s", ErrDirectoryExists, outputDir)
		}
		logging.Debug("removing existing output directory", logging.Path(outputDir))
		if err := os.RemoveAll(outputDir); err != nil {
			return fmt.Errorf("remove existing output directory: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat output directory: %w", err)
	}

	parent := filepath.Dir(outputDir)
	if err := os.MkdirAll(parent, 0o750); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	staging, err := os.MkdirTemp(parent, ".flowsync-staging-*")
	if err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}
	// Removed unconditionally; a no-op once the rename has happened.
	defer os.RemoveAll(staging)

	script, err := rules.Script(b.Rules)
	if err != nil {
		return fmt.Errorf("render rule script: %w", err)
	}

	artifacts := []struct {
		name    string
		content string
	}{
		{VarFile, renderVariables(b.Variables)},
		{NewFile, renderList(b.NewList)},
		{ExistingFile, renderList(b.ExistingList)},
		{ScriptFile, script},
		{FlowTemplateFile, flowTemplate},
		{ModuleTemplateFile, moduleTemplate},
	}

	for _, a := range artifacts {
		path := filepath.Join(staging, a.name)
		// #nosec G306 - bundle artifacts are meant to be read by follow-up tooling
		if err := os.WriteFile(path, []byte(a.content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", a.name, err)
		}
	}

	if err := os.Chmod(staging, 0o750); err != nil {
		return fmt.Errorf("chmod staging directory: %w", err)
	}
	if err := os.Rename(staging, outputDir); err != nil {
		return fmt.Errorf("move bundle into place: %w", err)
	}

	logging.Debug("bundle written",
		logging.Path(outputDir),
		logging.Count(len(b.Rules)),
	)
	return nil
}

// renderVariables writes one key=value line per variable in insertion order.
func renderVariables(vars []Variable) string {
	var sb strings.Builder
	for _, v := range vars {
		fmt.Fprintf(&sb, "%s=%s\n", v.Key, v.Value)
	}
	return sb.String()
}

// renderList writes one label per line.
func renderList(labels []string) string {
	var sb strings.Builder
	for _, l := range labels {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}
