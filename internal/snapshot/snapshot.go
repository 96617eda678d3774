// Package snapshot loads captured contact-center configuration snapshots
// from disk. A snapshot directory holds the instance identity, one summary
// manifest per resource category, and full-content companion files for the
// categories that need them.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/klauern/flowsync/internal/encode"
	"github.com/klauern/flowsync/internal/logging"
	"github.com/klauern/flowsync/internal/model"
)

// ErrMissingResource indicates a required manifest or content file is absent
// or empty. This is fatal for the whole run: a missing file would silently
// produce an incomplete migration plan.
var ErrMissingResource = errors.New("missing or empty snapshot file")

const (
	instanceJSONFile = "instance.json"
	instanceVarFile  = "instance.var"

	// queueAssociationPrefix names the second companion file a routing
	// profile owns, holding its queue associations.
	queueAssociationPrefix = "routingQs"
)

// Snapshot is a captured, read-only set of named resource records rooted at
// one directory. Records keep the order they were read in; callers must not
// modify the returned slices.
type Snapshot struct {
	Alias    string
	RootDir  string
	Instance model.Instance

	records map[model.Category][]model.ResourceRecord
}

// Records returns the ordered records for one category.
func (s *Snapshot) Records(cat model.Category) []model.ResourceRecord {
	return s.records[cat]
}

// ContentPath returns the path of the full-content companion file for a
// record, or "" for summary-only categories.
func (s *Snapshot) ContentPath(r model.ResourceRecord) string {
	if !r.Category.HasContent() {
		return ""
	}
	return filepath.Join(s.RootDir, contentFileName(r.Category.Tag(), r.Name))
}

// QueueAssociationsPath returns the path of a routing profile's queue
// association companion file, or "" for other categories.
func (s *Snapshot) QueueAssociationsPath(r model.ResourceRecord) string {
	if !r.Category.HasQueueAssociations() {
		return ""
	}
	return filepath.Join(s.RootDir, contentFileName(queueAssociationPrefix, r.Name))
}

// Load reads a snapshot from rootDir. It fails with ErrMissingResource if the
// instance identity, any category manifest, or any referenced content file is
// absent or empty. The returned snapshot is immutable.
func Load(rootDir string) (*Snapshot, error) {
	inst, err := loadInstance(rootDir)
	if err != nil {
		return nil, err
	}

	s := &Snapshot{
		Alias:    inst.Alias,
		RootDir:  rootDir,
		Instance: inst,
		records:  make(map[model.Category][]model.ResourceRecord),
	}

	for _, cat := range model.AllCategories() {
		records, err := loadManifest(rootDir, cat)
		if err != nil {
			return nil, err
		}

		if cat.HasContent() {
			for _, r := range records {
				if err := requireContent(rootDir, contentFileName(cat.Tag(), r.Name)); err != nil {
					return nil, fmt.Errorf("%s %q: %w", cat, r.Name, err)
				}
				if cat.HasQueueAssociations() {
					if err := requireContent(rootDir, contentFileName(queueAssociationPrefix, r.Name)); err != nil {
						return nil, fmt.Errorf("%s %q queue associations: %w", cat, r.Name, err)
					}
				}
			}
		}

		logging.Debug("loaded category manifest",
			logging.Path(rootDir),
			logging.Category(string(cat)),
			logging.Count(len(records)),
		)
		s.records[cat] = records
	}

	logging.Debug("snapshot loaded",
		logging.Path(rootDir),
		logging.Instance(inst.Alias),
	)
	return s, nil
}

// loadInstance reads the instance identity, preferring instance.json and
// falling back to the TOML instance.var form.
func loadInstance(rootDir string) (model.Instance, error) {
	var inst model.Instance

	jsonPath := filepath.Join(rootDir, instanceJSONFile)
	// #nosec G304 - snapshot paths are provided by the caller
	data, err := os.ReadFile(jsonPath)
	if err == nil && len(data) > 0 {
		if err := json.Unmarshal(data, &inst); err != nil {
			return inst, fmt.Errorf("parse %s: %w", jsonPath, err)
		}
		return inst, nil
	}

	varPath := filepath.Join(rootDir, instanceVarFile)
	if _, err := toml.DecodeFile(varPath, &inst); err != nil {
		if os.IsNotExist(err) {
			return inst, fmt.Errorf("%w: %s (or %s)", ErrMissingResource, instanceJSONFile, instanceVarFile)
		}
		return inst, fmt.Errorf("parse %s: %w", varPath, err)
	}
	return inst, nil
}

// loadManifest reads one category's ordered {Id, Name} summary list.
func loadManifest(rootDir string, cat model.Category) ([]model.ResourceRecord, error) {
	path := filepath.Join(rootDir, cat.ManifestFile())
	// #nosec G304 - snapshot paths are provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingResource, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingResource, path)
	}

	var records []model.ResourceRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for i := range records {
		records[i].Category = cat
	}
	return records, nil
}

// contentFileName resolves the companion filename for one resource,
// e.g. flow_Welcome.json or hour_Caf%C3%A9.json.
func contentFileName(prefix, name string) string {
	return fmt.Sprintf("%s_%s.json", prefix, encode.Encode(name))
}

// requireContent verifies a companion file exists and is non-empty.
func requireContent(rootDir, name string) error {
	path := filepath.Join(rootDir, name)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrMissingResource, path)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: %s", ErrMissingResource, path)
	}
	return nil
}
