package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/klauern/flowsync/internal/config"
	"github.com/klauern/flowsync/internal/plan"
	"github.com/klauern/flowsync/internal/reconcile"
	"github.com/klauern/flowsync/internal/ui"
	"github.com/klauern/flowsync/internal/util"
)

func planCommand() *cli.Command {
	return &cli.Command{
		Name:      "plan",
		Usage:     "Build a migration plan from two snapshots",
		UsageText: "flowsync plan [options] <source-snapshot> <target-snapshot> <output-dir>",
		Description: `Reconcile two snapshot directories and write the helper bundle.

   Resources are matched across snapshots by exact name within each category.
   Resources present only in the source land in helper.new; resources present
   in both land in helper.old together with an id substitution rule in
   helper.sed.

   Examples:
     flowsync plan ./snap-dev ./snap-prod ./helper
     flowsync plan --force --lambda-prefix dev-:prod- ./snap-dev ./snap-prod ./helper`,
		Flags: planFlags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			opts, err := planOptions(cmd)
			if err != nil {
				return err
			}

			result, err := plan.New().Run(opts)
			if err != nil {
				return cli.Exit(fmt.Sprintf("plan failed: %v", err), exitRuntime)
			}

			printSummary(cmd, result)
			fmt.Println(ui.StatusSuccess(fmt.Sprintf("helper bundle written to %s (%d rules)",
				opts.OutputDir, len(result.Bundle.Rules))))
			return nil
		},
	}
}

// planFlags returns the flags shared by the plan and review commands.
func planFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "force",
			Aliases: []string{"f"},
			Usage:   "Replace the output directory if it already exists",
		},
		&cli.BoolFlag{
			Name:  "force-encoding",
			Usage: "Skip the startup name-encoding precondition check",
		},
		&cli.StringFlag{
			Name:  "duplicates",
			Usage: "Duplicate-name policy: reject or first-wins",
		},
		&cli.StringFlag{
			Name:  "lambda-prefix",
			Usage: "Lambda function-name prefix remap as SOURCE:TARGET (e.g. dev-:prod-)",
		},
		&cli.StringFlag{
			Name:  "bot-prefix",
			Usage: "Bot-name prefix remap as SOURCE:TARGET",
		},
		&cli.BoolFlag{
			Name:  "no-progress",
			Usage: "Disable the progress bar",
		},
	}
}

// planOptions resolves configuration, flags, and positional arguments into
// planner options. Argument and flag format problems are usage errors.
func planOptions(cmd *cli.Command) (plan.Options, error) {
	args := cmd.Args()
	if args.Len() != 3 {
		return plan.Options{}, cli.Exit("plan requires exactly 3 arguments: <source-snapshot> <target-snapshot> <output-dir>", exitUsage)
	}

	opts, err := resolveOptions(cmd)
	if err != nil {
		return opts, err
	}
	opts.SourceDir = expandArg(args.Get(0))
	opts.TargetDir = expandArg(args.Get(1))
	opts.OutputDir = expandArg(args.Get(2))
	return opts, nil
}

// resolveOptions merges the configuration file, environment overrides, and
// the shared plan flags into planner options. Positional arguments are left
// to the caller, so every command that previews or writes a plan resolves
// the same effective options.
func resolveOptions(cmd *cli.Command) (plan.Options, error) {
	var opts plan.Options

	cfg, err := config.Load()
	if err != nil {
		return opts, cli.Exit(fmt.Sprintf("load configuration: %v", err), exitRuntime)
	}

	opts.Force = cmd.Bool("force")
	opts.ForceEncoding = cmd.Bool("force-encoding") || cfg.Plan.ForceEncoding
	opts.Progress = cfg.Plan.Progress && !cmd.Bool("no-progress")

	opts.Duplicates = cfg.GetDuplicatePolicy()
	if v := cmd.String("duplicates"); v != "" {
		policy := reconcile.DuplicatePolicy(v)
		if !policy.IsValid() {
			return opts, cli.Exit(fmt.Sprintf("invalid --duplicates value %q (want reject or first-wins)", v), exitUsage)
		}
		opts.Duplicates = policy
	}

	if cfg.Prefixes.LambdaSource != "" || cfg.Prefixes.LambdaTarget != "" {
		opts.LambdaRemap = &plan.Remap{Source: cfg.Prefixes.LambdaSource, Target: cfg.Prefixes.LambdaTarget}
	}
	if cfg.Prefixes.BotSource != "" || cfg.Prefixes.BotTarget != "" {
		opts.BotRemap = &plan.Remap{Source: cfg.Prefixes.BotSource, Target: cfg.Prefixes.BotTarget}
	}

	if v := cmd.String("lambda-prefix"); v != "" {
		remap, err := parseRemap(v)
		if err != nil {
			return opts, cli.Exit(fmt.Sprintf("invalid --lambda-prefix: %v", err), exitUsage)
		}
		opts.LambdaRemap = remap
	}
	if v := cmd.String("bot-prefix"); v != "" {
		remap, err := parseRemap(v)
		if err != nil {
			return opts, cli.Exit(fmt.Sprintf("invalid --bot-prefix: %v", err), exitUsage)
		}
		opts.BotRemap = remap
	}

	return opts, nil
}

// expandArg resolves a leading ~ and relative snapshot or output paths
// against the working directory.
func expandArg(path string) string {
	base, err := os.Getwd()
	if err != nil {
		base = "."
	}
	return util.ExpandPath(path, base)
}

// parseRemap parses a SOURCE:TARGET prefix pair. Either side may be empty.
func parseRemap(v string) (*plan.Remap, error) {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%q is not of the form SOURCE:TARGET", v)
	}
	return &plan.Remap{Source: parts[0], Target: parts[1]}, nil
}

// printSummary renders the per-category outcome counts.
func printSummary(cmd *cli.Command, result *plan.Result) {
	fmt.Printf("%s\n\n", ui.Header(fmt.Sprintf("Migration plan: %s → %s", result.SourceAlias, result.TargetAlias)))
	for _, s := range result.Categories {
		fmt.Printf("  %-20s %s  %s\n",
			s.Category.Title(),
			ui.Success(fmt.Sprintf("%3d new", s.New)),
			ui.Info(fmt.Sprintf("%3d existing", s.Existing)),
		)
	}
	fmt.Println()

	if cmd.Bool("verbose") || cmd.Root().Bool("verbose") {
		for _, m := range result.Matches {
			if m.Existing {
				fmt.Println("  " + ui.StatusExisting(m.Label()))
			} else {
				fmt.Println("  " + ui.StatusNew(m.Label()))
			}
		}
		fmt.Println()
	}
}
