// Package rules generates the ordered substitution rules used to rewrite
// identifier references when copying resource content from the source
// instance to the target instance.
package rules

import (
	"fmt"
	"strings"

	"github.com/klauern/flowsync/internal/model"
	"github.com/klauern/flowsync/internal/reconcile"
)

// Rule is one ordered literal find/replace instruction. Rules are plain
// substring substitutions, not regular expressions, and each applies to all
// occurrences. Consumers must apply rules in order exactly once; the
// generator does not reorder to protect overlapping patterns.
type Rule struct {
	Pattern     string
	Replacement string
	Comment     string
}

// Env carries the per-side context the general rules are derived from.
type Env struct {
	Source model.Instance
	Target model.Instance
}

// Build converts match outcomes into the ordered rule list. Emission order:
//
//  1. source instance id -> target instance id
//  2. source ":region:account:" ARN segment -> target's (covers any service
//     ARN sharing the account/region segment)
//  3. lambda function-name prefix rule, only when the configured per-side
//     prefixes differ
//  4. one id rule per existing match, in the order matches are given
//
// New outcomes contribute no rule: the resource does not exist in the target
// yet, so there is nothing to remap.
func Build(env Env, matches []reconcile.Match) []Rule {
	rules := []Rule{
		{
			Pattern:     env.Source.ID,
			Replacement: env.Target.ID,
			Comment:     "instance identifier",
		},
		{
			Pattern:     env.Source.ARNScope(),
			Replacement: env.Target.ARNScope(),
			Comment:     "account/region ARN segment",
		},
	}

	// The ARN segment rule has already rewritten region and account by the
	// time this rule applies, so the pattern is built on the target's scope
	// with the source's configured function-name prefix.
	if env.Source.LambdaPrefix != env.Target.LambdaPrefix {
		rules = append(rules, Rule{
			Pattern:     lambdaARNPrefix(env.Target, env.Source.LambdaPrefix),
			Replacement: lambdaARNPrefix(env.Target, env.Target.LambdaPrefix),
			Comment:     "lambda function-name prefix",
		})
	}

	for _, m := range matches {
		if !m.Existing {
			continue
		}
		rules = append(rules, Rule{
			Pattern:     m.Record.ID,
			Replacement: m.IDB,
			Comment:     fmt.Sprintf("%s %s", m.Record.Category, m.Record.Name),
		})
	}

	return rules
}

// lambdaARNPrefix builds the fully qualified function-name prefix for an
// instance's account scope with the given configured prefix.
func lambdaARNPrefix(inst model.Instance, configured string) string {
	return "arn:aws:lambda" + inst.ARNScope() + "function:" + configured
}

// Applier rewrites content with an ordered rule list. The in-memory
// implementation below is the default; a streaming implementation over large
// content files can be substituted without changing rule semantics.
type Applier interface {
	Apply(content string, rules []Rule) string
}

// StringApplier applies rules in-memory over a whole content string.
type StringApplier struct{}

// Apply applies each rule in order, replacing all occurrences per rule.
func (StringApplier) Apply(content string, rules []Rule) string {
	for _, r := range rules {
		content = strings.ReplaceAll(content, r.Pattern, r.Replacement)
	}
	return content
}

// Apply is a convenience wrapper over the default in-memory applier.
func Apply(content string, rules []Rule) string {
	return StringApplier{}.Apply(content, rules)
}
