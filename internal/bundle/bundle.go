// Package bundle assembles and persists the helper bundle: the complete set
// of output artifacts produced by one reconciliation run.
package bundle

import (
	"github.com/klauern/flowsync/internal/rules"
)

// Artifact filenames inside the helper bundle directory.
const (
	VarFile            = "helper.var"
	NewFile            = "helper.new"
	ExistingFile       = "helper.old"
	ScriptFile         = "helper.sed"
	FlowTemplateFile   = "flow_template.json"
	ModuleTemplateFile = "module_template.json"
)

// Variable is one key=value entry in the environment manifest. Entries keep
// their insertion order so reruns stay byte-identical.
type Variable struct {
	Key   string
	Value string
}

// Bundle is the in-memory aggregate of one reconciliation run. It is owned
// by the run that builds it and serialized exactly once at the end; no state
// accumulates in files along the way.
type Bundle struct {
	// Variables is the run-context manifest written to helper.var.
	Variables []Variable

	// NewList holds labels of resources present only in the source.
	NewList []string

	// ExistingList holds labels of resources present in both snapshots.
	ExistingList []string

	// Rules is the ordered substitution rule list written to helper.sed.
	Rules []rules.Rule
}
