package model

import "fmt"

// ResourceRecord is one named resource as listed in a category manifest.
// The identifier is opaque and only stable within its owning snapshot; the
// name is the human-chosen label used for cross-snapshot matching.
type ResourceRecord struct {
	ID       string   `json:"Id"`
	Name     string   `json:"Name"`
	Category Category `json:"-"`
}

// Label returns the traceable review label for list output, e.g. "flow_Welcome".
func (r ResourceRecord) Label() string {
	return fmt.Sprintf("%s_%s", r.Category.Tag(), r.Name)
}
