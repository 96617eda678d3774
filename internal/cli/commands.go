// Package cli provides command definitions for flowsync.
package cli

import (
	"context"
	"fmt"
	"runtime"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/klauern/flowsync/internal/config"
)

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Display version and build information",
		Action: func(_ context.Context, _ *cli.Command) error {
			fmt.Printf("flowsync version %s\n", Version)
			fmt.Printf("  commit: %s\n", Commit)
			fmt.Printf("  built: %s\n", BuildDate)
			fmt.Printf("  go: %s\n", runtime.Version())
			return nil
		},
	}
}

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Display the effective configuration",
		Description: `Print the configuration flowsync would use, after merging the config
   file with environment overrides. The output is valid YAML that can be
   saved back to the config file path shown first.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "init",
				Usage: "Write the default configuration to the config file",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Bool("init") {
				if config.Exists() {
					return cli.Exit(fmt.Sprintf("config file already exists at %s", config.FilePath()), exitRuntime)
				}
				if err := config.Default().Save(); err != nil {
					return cli.Exit(fmt.Sprintf("write config: %v", err), exitRuntime)
				}
				fmt.Printf("wrote default configuration to %s\n", config.FilePath())
				return nil
			}

			cfg, err := config.Load()
			if err != nil {
				return cli.Exit(fmt.Sprintf("load configuration: %v", err), exitRuntime)
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return cli.Exit(fmt.Sprintf("render configuration: %v", err), exitRuntime)
			}

			fmt.Printf("# %s", config.FilePath())
			if !config.Exists() {
				fmt.Print(" (not present, showing defaults)")
			}
			fmt.Printf("\n%s", data)
			return nil
		},
	}
}
