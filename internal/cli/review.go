package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/klauern/flowsync/internal/bundle"
	"github.com/klauern/flowsync/internal/plan"
	"github.com/klauern/flowsync/internal/ui"
	"github.com/klauern/flowsync/internal/ui/tui"
)

func reviewCommand() *cli.Command {
	return &cli.Command{
		Name:      "review",
		Usage:     "Review a migration plan interactively before writing it",
		UsageText: "flowsync review [options] <source-snapshot> <target-snapshot> <output-dir>",
		Description: `Build the migration plan and open an interactive review of every
   match outcome. The helper bundle is only written after confirmation.`,
		Flags: planFlags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			opts, err := planOptions(cmd)
			if err != nil {
				return err
			}
			// The review screen owns the terminal.
			opts.Progress = false

			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return cli.Exit("review requires an interactive terminal; use plan instead", exitUsage)
			}

			result, err := plan.New().Build(opts)
			if err != nil {
				return cli.Exit(fmt.Sprintf("plan failed: %v", err), exitRuntime)
			}

			review, err := tui.RunReviewList(result.Matches, result.SourceAlias, result.TargetAlias)
			if err != nil {
				return cli.Exit(fmt.Sprintf("review failed: %v", err), exitRuntime)
			}

			if review.Action != tui.ReviewActionWrite {
				fmt.Println(ui.StatusWarning("review ended without writing the helper bundle"))
				return nil
			}

			if err := bundle.Write(opts.OutputDir, result.Bundle, opts.Force); err != nil {
				return cli.Exit(fmt.Sprintf("write bundle: %v", err), exitRuntime)
			}
			fmt.Println(ui.StatusSuccess(fmt.Sprintf("helper bundle written to %s (%d rules)",
				opts.OutputDir, len(result.Bundle.Rules))))
			return nil
		},
	}
}
