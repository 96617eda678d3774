package e2e

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauern/flowsync/internal/encode"
	"github.com/klauern/flowsync/internal/model"
)

// Fixture provides helpers for creating test files in E2E tests.
type Fixture struct {
	t       *testing.T
	baseDir string
}

// NewFixture creates a new fixture helper rooted at the given directory.
func NewFixture(t *testing.T, baseDir string) *Fixture {
	t.Helper()
	return &Fixture{
		t:       t,
		baseDir: baseDir,
	}
}

// WriteFile writes content to a file relative to the fixture base directory.
// It creates parent directories as needed.
func (f *Fixture) WriteFile(relPath, content string) string {
	f.t.Helper()
	fullPath := filepath.Join(f.baseDir, relPath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		f.t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, []byte(content), 0o600); err != nil {
		f.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}

	return fullPath
}

// Path returns the full path for a relative path.
func (f *Fixture) Path(relPath string) string {
	return filepath.Join(f.baseDir, relPath)
}

// Exists returns true if the file or directory exists.
func (f *Fixture) Exists(relPath string) bool {
	f.t.Helper()
	fullPath := filepath.Join(f.baseDir, relPath)
	_, err := os.Stat(fullPath)
	return err == nil
}

// ReadFile reads and returns the content of a file.
func (f *Fixture) ReadFile(relPath string) string {
	f.t.Helper()
	fullPath := filepath.Join(f.baseDir, relPath)

	// #nosec G304 - fullPath is constructed from trusted test fixture base and test-provided path
	data, err := os.ReadFile(fullPath)
	if err != nil {
		f.t.Fatalf("failed to read file %s: %v", fullPath, err)
	}

	return string(data)
}

// Resource describes one manifest entry for a snapshot fixture. Content is
// optional; an id-bearing JSON stub is written when it is empty.
type Resource struct {
	ID      string
	Name    string
	Content string
}

// SnapshotFixture builds a complete snapshot directory layout for one
// instance: instance.json, all six manifests, and content files for every
// resource in a category that carries content.
type SnapshotFixture struct {
	*Fixture
}

// Snapshot creates a snapshot fixture directory under the harness home.
func (h *Harness) Snapshot(name string) *SnapshotFixture {
	h.t.Helper()

	dir := filepath.Join(h.homeDir, "snapshots", name)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		h.t.Fatalf("failed to create snapshot directory: %v", err)
	}
	return &SnapshotFixture{Fixture: NewFixture(h.t, dir)}
}

// WriteInstance writes the instance.json descriptor.
func (s *SnapshotFixture) WriteInstance(id, region, account, alias string) {
	s.t.Helper()
	arn := fmt.Sprintf("arn:aws:connect:%s:%s:instance/%s", region, account, id)
	s.WriteFile("instance.json", fmt.Sprintf(
		`{"Id":%q,"Arn":%q,"Alias":%q,"Profile":%q}`, id, arn, alias, alias+"-profile"))
}

// WriteCategory writes the manifest for one category plus content files for
// every resource, including queue association files where the category
// carries them. Categories not written still need an empty manifest; use
// FillEmptyManifests after the populated categories are in place.
func (s *SnapshotFixture) WriteCategory(cat model.Category, resources ...Resource) {
	s.t.Helper()

	manifest := "["
	for i, r := range resources {
		if i > 0 {
			manifest += ","
		}
		manifest += fmt.Sprintf(`{"Id":%q,"Name":%q}`, r.ID, r.Name)
	}
	manifest += "]"
	s.WriteFile(cat.ManifestFile(), manifest)

	if !cat.HasContent() {
		return
	}
	for _, r := range resources {
		content := r.Content
		if content == "" {
			content = fmt.Sprintf(`{"Id":%q}`, r.ID)
		}
		s.WriteFile(fmt.Sprintf("%s_%s.json", cat.Tag(), encode.Encode(r.Name)), content)
		if cat.HasQueueAssociations() {
			s.WriteFile(fmt.Sprintf("routingQs_%s.json", encode.Encode(r.Name)), "[]")
		}
	}
}

// FillEmptyManifests writes an empty manifest for every category that does
// not have one yet, so the snapshot loads cleanly.
func (s *SnapshotFixture) FillEmptyManifests() {
	s.t.Helper()
	for _, cat := range model.AllCategories() {
		if !s.Exists(cat.ManifestFile()) {
			s.WriteFile(cat.ManifestFile(), "[]")
		}
	}
}
