package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/urfave/cli/v3"

	"github.com/klauern/flowsync/internal/model"
	"github.com/klauern/flowsync/internal/plan"
	"github.com/klauern/flowsync/internal/rules"
)

func diffCommand() *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "Preview how the substitution rules rewrite one resource",
		UsageText: "flowsync diff [options] <source-snapshot> <target-snapshot> <category> <name>",
		Description: `Build the migration plan in memory, apply its substitution rules to
   the named resource's content file, and print a unified diff of the
   rewrite. Nothing is written to disk.

   Categories: hours, queue, routing, module, flow

   Example:
     flowsync diff ./snap-dev ./snap-prod flow Welcome`,
		Flags: append(planFlags(),
			&cli.IntFlag{
				Name:  "context",
				Usage: "Number of context lines in the diff",
				Value: 4,
			},
		),
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() != 4 {
				return cli.Exit("diff requires exactly 4 arguments: <source-snapshot> <target-snapshot> <category> <name>", exitUsage)
			}

			cat := model.Category(args.Get(2))
			if !cat.IsValid() {
				return cli.Exit(fmt.Sprintf("unknown category %q", args.Get(2)), exitUsage)
			}
			if !cat.HasContent() {
				return cli.Exit(fmt.Sprintf("category %q has no content file to rewrite", cat), exitUsage)
			}
			name := args.Get(3)

			// Resolve the same effective options as plan, so the preview
			// shows exactly the rules a plan run would write.
			opts, err := resolveOptions(cmd)
			if err != nil {
				return err
			}
			opts.SourceDir = expandArg(args.Get(0))
			opts.TargetDir = expandArg(args.Get(1))
			opts.Progress = false

			result, err := plan.New().Build(opts)
			if err != nil {
				return cli.Exit(fmt.Sprintf("plan failed: %v", err), exitRuntime)
			}

			var record *model.ResourceRecord
			for _, r := range result.Source.Records(cat) {
				if r.Name == name {
					record = &r
					break
				}
			}
			if record == nil {
				return cli.Exit(fmt.Sprintf("no %s named %q in source snapshot", cat, name), exitRuntime)
			}

			path := result.Source.ContentPath(*record)
			// #nosec G304 - path is resolved from the caller's snapshot directory
			before, err := os.ReadFile(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("read content file: %v", err), exitRuntime)
			}

			after := rules.Apply(string(before), result.Bundle.Rules)
			patch, err := unifiedPatch(path, string(before), after, cmd.Int("context"))
			if err != nil {
				return cli.Exit(fmt.Sprintf("render diff: %v", err), exitRuntime)
			}
			if patch == "" {
				fmt.Printf("no changes for %s %q\n", cat, name)
				return nil
			}
			fmt.Print(patch)
			return nil
		},
	}
}

// unifiedPatch produces a classic unified patch (---/+++ headers, @@ hunks)
// for the before/after content of one file.
func unifiedPatch(path, before, after string, context int) (string, error) {
	if context <= 0 {
		context = 4
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLinesKeepNL(before),
		B:        splitLinesKeepNL(after),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  context,
	})
}

// splitLinesKeepNL splits into lines and keeps newline characters,
// which produces better unified hunks.
func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.SplitAfter(s, "\n")
}
