// Package model defines the resource types tracked across contact-center snapshots.
package model

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category identifies one of the fixed resource kinds tracked in a snapshot.
type Category string

const (
	// CategoryPrompt is an audio prompt.
	CategoryPrompt Category = "prompt"

	// CategoryHours is an hours-of-operation schedule.
	CategoryHours Category = "hours"

	// CategoryQueue is a contact queue.
	CategoryQueue Category = "queue"

	// CategoryRouting is a routing profile, together with its queue associations.
	CategoryRouting Category = "routing"

	// CategoryModule is a reusable contact flow module.
	CategoryModule Category = "module"

	// CategoryFlow is a contact flow.
	CategoryFlow Category = "flow"
)

// AllCategories returns every category in the fixed processing order.
// Reconciliation, rule emission, and bundle output all follow this order.
func AllCategories() []Category {
	return []Category{
		CategoryPrompt,
		CategoryHours,
		CategoryQueue,
		CategoryRouting,
		CategoryModule,
		CategoryFlow,
	}
}

// IsValid returns true if the category is recognized.
func (c Category) IsValid() bool {
	switch c {
	case CategoryPrompt, CategoryHours, CategoryQueue, CategoryRouting, CategoryModule, CategoryFlow:
		return true
	default:
		return false
	}
}

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// ManifestFile returns the name of the category's summary manifest inside a
// snapshot directory.
func (c Category) ManifestFile() string {
	switch c {
	case CategoryPrompt:
		return "prompts.json"
	case CategoryHours:
		return "hours.json"
	case CategoryQueue:
		return "queues.json"
	case CategoryRouting:
		return "routings.json"
	case CategoryModule:
		return "modules.json"
	case CategoryFlow:
		return "flows.json"
	default:
		return ""
	}
}

// Tag returns the short label prefix used for content filenames and the
// new/existing list entries (e.g. "flow" yields "flow_Welcome").
func (c Category) Tag() string {
	switch c {
	case CategoryHours:
		return "hour"
	default:
		return string(c)
	}
}

// HasContent reports whether resources in this category carry a full-content
// companion file alongside the manifest. Prompts are summary-only; their audio
// lives in the instance and is never copied by content rewriting.
func (c Category) HasContent() bool {
	return c != CategoryPrompt
}

// HasQueueAssociations reports whether the category owns a second companion
// file with queue associations. Only routing profiles do; the association
// record always travels with its profile.
func (c Category) HasQueueAssociations() bool {
	return c == CategoryRouting
}

// Description returns a human-readable description of the category.
func (c Category) Description() string {
	switch c {
	case CategoryPrompt:
		return "Audio prompts"
	case CategoryHours:
		return "Hours of operation"
	case CategoryQueue:
		return "Queues"
	case CategoryRouting:
		return "Routing profiles"
	case CategoryModule:
		return "Flow modules"
	case CategoryFlow:
		return "Contact flows"
	default:
		return "Unknown category"
	}
}

var titleCaser = cases.Title(language.English)

// Title returns the category name in title case for display.
func (c Category) Title() string {
	return titleCaser.String(string(c))
}
