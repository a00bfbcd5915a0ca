package cmd

import (
	"fmt"

	"config-updater/core/config"
	"config-updater/core/logger"
	"config-updater/core/storage"
	"config-updater/core/updater"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runUpdate(cmd *cobra.Command, flags *updateFlags, args []string) error {
	// Load configuration
	cfg, err := config.LoadConfig(".", cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	l.Debug("Configuration loaded",
		zap.String("log_level", cfg.Log.Level),
		zap.Int("indent", cfg.Document.Indent),
		zap.Bool("atomic", cfg.Storage.Atomic),
	)

	client := storage.NewOsClient(cfg.Storage)
	svc := updater.NewService(client, cfg.Document, l)

	_, err = svc.Run(cmd.Context(), updater.Options{
		CurrentPath:  args[0],
		IncomingPath: args[1],
		Force:        flags.force,
		Replace:      flags.replace,
		DryRun:       flags.dryRun,
	})
	if err != nil {
		return err
	}

	l.Info("Configuration update completed successfully.")
	return nil
}
