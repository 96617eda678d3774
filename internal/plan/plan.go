// Package plan drives the reconciliation pipeline: load both snapshots,
// reconcile every category in the fixed order, generate substitution rules,
// and assemble the helper bundle.
package plan

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/klauern/flowsync/internal/bundle"
	"github.com/klauern/flowsync/internal/encode"
	"github.com/klauern/flowsync/internal/logging"
	"github.com/klauern/flowsync/internal/model"
	"github.com/klauern/flowsync/internal/progress"
	"github.com/klauern/flowsync/internal/reconcile"
	"github.com/klauern/flowsync/internal/rules"
	"github.com/klauern/flowsync/internal/snapshot"
)

// Remap overrides a name prefix pair for one resource class, rewriting the
// source-side prefix to the target-side prefix.
type Remap struct {
	Source string
	Target string
}

// Options configures a planning run.
type Options struct {
	// SourceDir is the snapshot directory for the source instance (A).
	SourceDir string

	// TargetDir is the snapshot directory for the target instance (B).
	TargetDir string

	// OutputDir is where the helper bundle is written.
	OutputDir string

	// Force removes an existing output directory instead of failing.
	Force bool

	// ForceEncoding skips the startup byte-encoding precondition check.
	ForceEncoding bool

	// Duplicates defines how duplicate names within a category are handled.
	Duplicates reconcile.DuplicatePolicy

	// LambdaRemap overrides the per-side lambda function-name prefixes
	// captured in the snapshots. Nil keeps the snapshot values.
	LambdaRemap *Remap

	// BotRemap overrides the per-side bot-name prefixes. Nil keeps the
	// snapshot values.
	BotRemap *Remap

	// Progress enables a progress bar across categories.
	Progress bool
}

// CategorySummary counts the outcomes for one category.
type CategorySummary struct {
	Category model.Category
	New      int
	Existing int
}

// Result is the outcome of one planning run. The bundle it carries is owned
// by the run and serialized at most once.
type Result struct {
	SourceAlias string
	TargetAlias string
	Source      *snapshot.Snapshot
	Target      *snapshot.Snapshot
	Matches     []reconcile.Match
	Categories  []CategorySummary
	Bundle      *bundle.Bundle
	Env         rules.Env
}

// Planner builds migration plans from snapshot pairs.
type Planner struct {
	applier rules.Applier
}

// New creates a new Planner.
func New() *Planner {
	return &Planner{applier: rules.StringApplier{}}
}

// Build loads both snapshots, reconciles all categories, and assembles the
// helper bundle in memory. Nothing is written to disk. Any error is fatal to
// the whole run; there is no partial-success mode.
func (p *Planner) Build(opts Options) (*Result, error) {
	defer logging.Timer("plan")()

	if !opts.ForceEncoding {
		if err := encode.Verify(); err != nil {
			return nil, err
		}
	} else {
		logging.Warn("encoding precondition check skipped by override")
	}

	logging.Debug("starting plan",
		logging.Operation("plan"),
		slog.String("source", opts.SourceDir),
		slog.String("target", opts.TargetDir),
	)

	source, err := snapshot.Load(opts.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("load source snapshot: %w", err)
	}
	target, err := snapshot.Load(opts.TargetDir)
	if err != nil {
		return nil, fmt.Errorf("load target snapshot: %w", err)
	}

	env := rules.Env{Source: source.Instance, Target: target.Instance}
	if opts.LambdaRemap != nil {
		env.Source.LambdaPrefix = opts.LambdaRemap.Source
		env.Target.LambdaPrefix = opts.LambdaRemap.Target
	}
	if opts.BotRemap != nil {
		env.Source.BotPrefix = opts.BotRemap.Source
		env.Target.BotPrefix = opts.BotRemap.Target
	}

	result := &Result{
		SourceAlias: source.Alias,
		TargetAlias: target.Alias,
		Source:      source,
		Target:      target,
		Env:         env,
	}

	var bar *progress.Bar
	if opts.Progress {
		bar = progress.Simple(int64(len(model.AllCategories())), "Reconciling")
	}

	var (
		allMatches   []reconcile.Match
		newList      []string
		existingList []string
	)
	recOpts := reconcile.Options{Duplicates: opts.Duplicates}
	for _, cat := range model.AllCategories() {
		matches, err := reconcile.Reconcile(cat, source.Records(cat), target.Records(cat), recOpts)
		if err != nil {
			return nil, fmt.Errorf("reconcile %s: %w", cat, err)
		}

		summary := CategorySummary{Category: cat}
		for _, m := range matches {
			if m.Existing {
				summary.Existing++
				existingList = append(existingList, m.Label())
			} else {
				summary.New++
				newList = append(newList, m.Label())
			}
		}
		result.Categories = append(result.Categories, summary)
		allMatches = append(allMatches, matches...)

		logging.Debug("category reconciled",
			logging.Category(string(cat)),
			slog.Int("new", summary.New),
			slog.Int("existing", summary.Existing),
		)
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	result.Matches = allMatches
	result.Bundle = &bundle.Bundle{
		Variables:    buildVariables(env, source.Instance, target.Instance),
		NewList:      newList,
		ExistingList: existingList,
		Rules:        rules.Build(env, allMatches),
	}

	logging.Debug("plan built",
		slog.Int("new", len(newList)),
		slog.Int("existing", len(existingList)),
		slog.Int("rules", len(result.Bundle.Rules)),
	)
	return result, nil
}

// Run builds the plan and writes the helper bundle to opts.OutputDir.
func (p *Planner) Run(opts Options) (*Result, error) {
	result, err := p.Build(opts)
	if err != nil {
		return nil, err
	}
	if err := bundle.Write(opts.OutputDir, result.Bundle, opts.Force); err != nil {
		return nil, err
	}
	return result, nil
}

// buildVariables assembles the helper.var environment manifest. The plan id
// is a name-based UUID over both instance identities, so identical inputs
// always produce an identical manifest.
func buildVariables(env rules.Env, source, target model.Instance) []bundle.Variable {
	planID := uuid.NewSHA1(uuid.NameSpaceURL,
		[]byte("flowsync://"+source.ID+"/"+target.ID))

	return []bundle.Variable{
		{Key: "plan_id", Value: planID.String()},
		{Key: "alias_a", Value: source.Alias},
		{Key: "instance_id_a", Value: source.ID},
		{Key: "instance_arn_a", Value: source.ARN},
		{Key: "account_a", Value: source.Account()},
		{Key: "region_a", Value: source.Region()},
		{Key: "profile_a", Value: source.Profile},
		{Key: "lambda_prefix_a", Value: env.Source.LambdaPrefix},
		{Key: "bot_prefix_a", Value: env.Source.BotPrefix},
		{Key: "alias_b", Value: target.Alias},
		{Key: "instance_id_b", Value: target.ID},
		{Key: "instance_arn_b", Value: target.ARN},
		{Key: "account_b", Value: target.Account()},
		{Key: "region_b", Value: target.Region()},
		{Key: "profile_b", Value: target.Profile},
		{Key: "lambda_prefix_b", Value: env.Target.LambdaPrefix},
		{Key: "bot_prefix_b", Value: env.Target.BotPrefix},
		{Key: "flow_name_prefix", Value: target.FlowNamePrefix},
	}
}
