package rules

import (
	"strings"
	"testing"

	"github.com/klauern/flowsync/internal/model"
	"github.com/klauern/flowsync/internal/reconcile"
)

func testEnv(lambdaA, lambdaB string) Env {
	return Env{
		Source: model.Instance{
			ID:           "aaaa-1111",
			ARN:          "arn:aws:connect:us-east-1:111111111111:instance/aaaa-1111",
			LambdaPrefix: lambdaA,
		},
		Target: model.Instance{
			ID:           "bbbb-2222",
			ARN:          "arn:aws:connect:eu-west-2:222222222222:instance/bbbb-2222",
			LambdaPrefix: lambdaB,
		},
	}
}

func TestBuild_GeneralRulesFirst(t *testing.T) {
	rules := Build(testEnv("", ""), nil)

	if len(rules) != 2 {
		t.Fatalf("got %d rules, want 2 (no lambda rule when prefixes match)", len(rules))
	}
	if rules[0].Pattern != "aaaa-1111" || rules[0].Replacement != "bbbb-2222" {
		t.Errorf("rule 0 must map instance ids, got %+v", rules[0])
	}
	if rules[1].Pattern != ":us-east-1:111111111111:" || rules[1].Replacement != ":eu-west-2:222222222222:" {
		t.Errorf("rule 1 must map the account/region ARN segment, got %+v", rules[1])
	}
}

func TestBuild_LambdaRuleOnlyWhenPrefixesDiffer(t *testing.T) {
	tests := []struct {
		name     string
		prefixA  string
		prefixB  string
		expected bool
	}{
		{"both empty", "", "", false},
		{"equal", "dev-", "dev-", false},
		{"differ", "dev-", "prod-", true},
		{"source empty", "", "prod-", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := Build(testEnv(tt.prefixA, tt.prefixB), nil)
			found := false
			for _, r := range rules {
				if strings.Contains(r.Pattern, "arn:aws:lambda") {
					found = true
					// The ARN segment rule runs first, so the lambda pattern
					// must already carry the target's region and account.
					want := "arn:aws:lambda:eu-west-2:222222222222:function:" + tt.prefixA
					if r.Pattern != want {
						t.Errorf("lambda pattern = %q, want %q", r.Pattern, want)
					}
				}
			}
			if found != tt.expected {
				t.Errorf("lambda rule present = %v, want %v", found, tt.expected)
			}
		})
	}
}

func TestBuild_ExistingMatchesEmitRulesInOrder(t *testing.T) {
	matches := []reconcile.Match{
		{Record: model.ResourceRecord{ID: "Q1", Name: "Sales", Category: model.CategoryQueue}, IDB: "X1", Existing: true},
		{Record: model.ResourceRecord{ID: "Q2", Name: "Support", Category: model.CategoryQueue}},
		{Record: model.ResourceRecord{ID: "F1", Name: "Welcome", Category: model.CategoryFlow}, IDB: "F9", Existing: true},
	}

	rules := Build(testEnv("", ""), matches)

	perResource := rules[2:]
	if len(perResource) != 2 {
		t.Fatalf("got %d per-resource rules, want 2 (new outcomes emit none)", len(perResource))
	}
	if perResource[0].Pattern != "Q1" || perResource[0].Replacement != "X1" {
		t.Errorf("rule for Sales = %+v", perResource[0])
	}
	if perResource[1].Pattern != "F1" || perResource[1].Replacement != "F9" {
		t.Errorf("rule for Welcome = %+v", perResource[1])
	}
	if !strings.Contains(perResource[1].Comment, "flow") || !strings.Contains(perResource[1].Comment, "Welcome") {
		t.Errorf("comment must name category and resource, got %q", perResource[1].Comment)
	}
}

func TestApply_OrderedGlobalReplacement(t *testing.T) {
	rules := []Rule{
		{Pattern: "Q1", Replacement: "X1"},
		{Pattern: "X1-old", Replacement: "never"},
	}

	content := "queue Q1 routes to Q1 overflow"
	got := Apply(content, rules)
	want := "queue X1 routes to X1 overflow"
	if got != want {
		t.Errorf("Apply() = %q, want %q", got, want)
	}
}

func TestApply_AppliesRulesInEmissionOrder(t *testing.T) {
	// The second rule sees the output of the first, matching first-to-last,
	// apply-once semantics of the rule script.
	rules := []Rule{
		{Pattern: "abc", Replacement: "abcd"},
		{Pattern: "abcd", Replacement: "x"},
	}
	if got := Apply("abc", rules); got != "x" {
		t.Errorf("Apply() = %q, want %q", got, "x")
	}
}

func TestScript(t *testing.T) {
	rules := []Rule{
		{Pattern: "aaaa", Replacement: "bbbb", Comment: "instance identifier"},
		{Pattern: "F1", Replacement: "F9", Comment: "flow Welcome"},
	}

	script, err := Script(rules)
	if err != nil {
		t.Fatalf("Script() error = %v", err)
	}

	want := "# instance identifier\ns|aaaa|bbbb|g\n# flow Welcome\ns|F1|F9|g\n"
	if script != want {
		t.Errorf("Script() = %q, want %q", script, want)
	}
}

func TestScript_RejectsSeparatorInPattern(t *testing.T) {
	_, err := Script([]Rule{{Pattern: "a|b", Replacement: "c", Comment: "bad"}})
	if err == nil {
		t.Error("expected error for pattern containing separator")
	}
}

func TestScript_RejectsLineBreakInComment(t *testing.T) {
	// Comments carry resource names verbatim; a name with a newline must
	// not be able to inject extra script lines.
	_, err := Script([]Rule{{Pattern: "F1", Replacement: "F9", Comment: "flow bad\nname"}})
	if err == nil {
		t.Error("expected error for comment containing a line break")
	}
}

func TestRule_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		wantErr bool
	}{
		{"ok", Rule{Pattern: "a", Replacement: "b", Comment: "c"}, false},
		{"empty pattern", Rule{Replacement: "b"}, true},
		{"separator in replacement", Rule{Pattern: "a", Replacement: "b|c"}, true},
		{"newline in pattern", Rule{Pattern: "a\nb", Replacement: "c"}, true},
		{"newline in comment", Rule{Pattern: "a", Replacement: "b", Comment: "c\nd"}, true},
		{"separator in comment is harmless", Rule{Pattern: "a", Replacement: "b", Comment: "c|d"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
