package cmd

import (
	"fmt"
	"os"
	"strings"

	"config-updater/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// updateFlags holds the command line switches of the root command.
type updateFlags struct {
	force     bool
	replace   bool
	dryRun    bool
	logLevel  string
	logFormat string
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	flags := &updateFlags{}

	cmd := &cobra.Command{
		Use:   "config-updater <current> <incoming>",
		Short: "Update a YAML configuration file from a newer version",
		Long: `config-updater reconciles the current YAML configuration with an incoming one
and writes the result back to the current file.

Policies:
  default    keys match the incoming file; incoming values win
  --force    only keys already in the current file are updated
  --replace  the current file is replaced by the incoming one (wins over --force)

Examples:
  # Sync keys and values
  config-updater config.yaml config.new.yaml

  # Update existing fields only
  config-updater config.yaml config.new.yaml --force

  # Show what would change without writing
  config-updater config.yaml config.new.yaml --dry-run --log-level DEBUG`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, flags, args)
		},
	}

	cmd.Flags().BoolVar(&flags.force, "force", false, "Force update existing fields only")
	cmd.Flags().BoolVar(&flags.replace, "replace", false, "Replace entire configuration")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Report planned changes without writing")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "INFO", "Set the logging level ("+strings.Join(logger.Levels, ", ")+")")
	cmd.Flags().StringVar(&flags.logFormat, "log-format", "console", "Set the log format (console, json)")

	return cmd
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Report through the standard logger so failures look like every other entry.
		cfg := &logger.Config{
			Level:  "INFO",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
