// Package reconcile pairs resources across two snapshots by exact name match
// and classifies each snapshot-A record as new or existing in snapshot B.
package reconcile

import (
	"errors"
	"fmt"

	"github.com/klauern/flowsync/internal/model"
)

// ErrAmbiguousMatch indicates a duplicate resource name within one snapshot
// and category. Matching on a duplicated name would silently pair the wrong
// resources, so the default policy rejects the run outright.
var ErrAmbiguousMatch = errors.New("duplicate resource name within category")

// DuplicatePolicy controls how duplicate names within a category are handled.
type DuplicatePolicy string

const (
	// DuplicateReject fails the run with ErrAmbiguousMatch. This is the
	// default: a guessed pairing is worse than no plan.
	DuplicateReject DuplicatePolicy = "reject"

	// DuplicateFirstWins matches against the first occurrence of a name and
	// ignores later duplicates. Legacy behavior, opt-in only.
	DuplicateFirstWins DuplicatePolicy = "first-wins"
)

// IsValid returns true if the policy is recognized.
func (p DuplicatePolicy) IsValid() bool {
	switch p {
	case DuplicateReject, DuplicateFirstWins:
		return true
	default:
		return false
	}
}

// String returns the string representation of the policy.
func (p DuplicatePolicy) String() string {
	return string(p)
}

// Options configures reconciliation behavior.
type Options struct {
	// Duplicates defines how duplicate names within a category are handled.
	Duplicates DuplicatePolicy
}

// DefaultOptions returns the default reconciliation options.
func DefaultOptions() Options {
	return Options{Duplicates: DuplicateReject}
}

// Match classifies one snapshot-A record against snapshot B. When Existing is
// true, IDB holds the identifier of the same-named resource in B. A match is
// never mutated after creation.
//
// For routing profiles the match covers the paired queue-association record
// as well: profile and associations are keyed by the same name and always
// travel together, so they can never split across new/existing.
type Match struct {
	Record   model.ResourceRecord
	IDB      string
	Existing bool
}

// Label returns the traceable review label for the matched resource.
func (m Match) Label() string {
	return m.Record.Label()
}

// Reconcile matches snapshot-A records against snapshot-B records for one
// category. It iterates A in stored order and looks up each record by exact,
// case-sensitive name equality in B. No match yields a new classification; a
// match yields an existing classification carrying both identifiers.
//
// Reconcile is a pure function: no I/O, fully deterministic given its inputs.
// The new and existing partitions are disjoint and their union is exactly a.
func Reconcile(cat model.Category, a, b []model.ResourceRecord, opts Options) ([]Match, error) {
	if opts.Duplicates == "" {
		opts.Duplicates = DuplicateReject
	}
	if !opts.Duplicates.IsValid() {
		return nil, fmt.Errorf("invalid duplicate policy %q", opts.Duplicates)
	}

	if opts.Duplicates == DuplicateReject {
		if name, ok := firstDuplicate(a); ok {
			return nil, fmt.Errorf("%w: %s %q in source snapshot", ErrAmbiguousMatch, cat, name)
		}
	}

	lookup, err := nameIndex(cat, b, opts.Duplicates)
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(a))
	for _, r := range a {
		m := Match{Record: r}
		if idB, ok := lookup[r.Name]; ok {
			m.IDB = idB
			m.Existing = true
		}
		matches = append(matches, m)
	}
	return matches, nil
}

// nameIndex builds the name-to-id lookup for snapshot B's records.
func nameIndex(cat model.Category, records []model.ResourceRecord, policy DuplicatePolicy) (map[string]string, error) {
	lookup := make(map[string]string, len(records))
	for _, r := range records {
		if _, exists := lookup[r.Name]; exists {
			if policy == DuplicateReject {
				return nil, fmt.Errorf("%w: %s %q in target snapshot", ErrAmbiguousMatch, cat, r.Name)
			}
			// First occurrence wins under the legacy policy.
			continue
		}
		lookup[r.Name] = r.ID
	}
	return lookup, nil
}

// firstDuplicate reports the first name that occurs more than once.
func firstDuplicate(records []model.ResourceRecord) (string, bool) {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, ok := seen[r.Name]; ok {
			return r.Name, true
		}
		seen[r.Name] = struct{}{}
	}
	return "", false
}
