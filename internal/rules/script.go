package rules

import (
	"fmt"
	"strings"
)

// sedSeparator delimits pattern and replacement in the rule script. Patterns
// are identifiers, ARN segments, and lambda prefixes, none of which may
// contain it; Script rejects any rule that would break the framing.
const sedSeparator = "|"

// Validate reports whether the rule can be rendered into the script safely.
func (r Rule) Validate() error {
	for _, s := range []string{r.Pattern, r.Replacement} {
		if strings.Contains(s, sedSeparator) {
			return fmt.Errorf("rule %q contains separator %q", s, sedSeparator)
		}
		if strings.ContainsAny(s, "\n\r") {
			return fmt.Errorf("rule %q contains a line break", s)
		}
	}
	if r.Pattern == "" {
		return fmt.Errorf("rule with empty pattern (comment: %s)", r.Comment)
	}
	// Comments come from resource names; a line break would split the
	// comment line and corrupt the script framing.
	if strings.ContainsAny(r.Comment, "\n\r") {
		return fmt.Errorf("rule comment %q contains a line break", r.Comment)
	}
	return nil
}

// Script renders the ordered rule list as a sed-compatible script: one
// comment line followed by one global substitution command per rule.
func Script(rules []Rule) (string, error) {
	var b strings.Builder
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "# %s\n", r.Comment)
		fmt.Fprintf(&b, "s%s%s%s%s%sg\n", sedSeparator, r.Pattern, sedSeparator, r.Replacement, sedSeparator)
	}
	return b.String(), nil
}
