package cmd

import (
	"context"
	"fmt"
	"log"

	"rank-tracker/core/config"
	"rank-tracker/core/database"
	"rank-tracker/core/logger"
	"rank-tracker/feature/tracker"
	"rank-tracker/feature/tracker/moderation"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var syncContinueOnError bool

// syncCmd runs exactly one reconciliation pass and exits. Useful for cron
// setups and for verifying credentials before starting the scheduler.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run a single reconciliation pass",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		if !moderation.IsValidMode(cfg.Moderation.Mode) {
			return fmt.Errorf("invalid moderation mode %q", cfg.Moderation.Mode)
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		if err := database.VerifyColumns(db, cfg.Database.UsersTable, requiredColumns...); err != nil {
			return fmt.Errorf("users table verification failed: %w", err)
		}

		continueOnError := cfg.Tracker.ContinueOnError
		if cmd.Flags().Changed("continue-on-error") {
			continueOnError = syncContinueOnError
		}

		store := tracker.NewStore(db)
		sink := buildSink(cfg, store, logg)
		engine := tracker.NewEngine(store, osuClient(cfg), sink, logg, continueOnError)

		summary, err := engine.RunPass(context.Background())
		if summary != nil {
			logg.Info("Pass summary",
				zap.String("pass_id", summary.PassID),
				zap.String("mode", summary.Mode),
				zap.Int("total", summary.Total),
				zap.Int("updated", summary.Updated),
				zap.Int("missing", summary.Missing),
				zap.Int("failed", summary.Failed),
				zap.Float64("elapsed_seconds", summary.ElapsedSeconds()),
			)
		}
		if err != nil {
			return fmt.Errorf("pass failed: %w", err)
		}
		return nil
	},
}

func init() {
	syncCmd.Flags().BoolVar(&syncContinueOnError, "continue-on-error", false,
		"keep processing remaining users when one fails")
	RootCmd.AddCommand(syncCmd)
}
