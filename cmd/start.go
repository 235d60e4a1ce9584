package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rank-tracker/core/config"
	"rank-tracker/core/database"
	"rank-tracker/core/loader"
	"rank-tracker/core/logger"
	"rank-tracker/core/middleware/auth"
	"rank-tracker/core/middleware/rayid"
	"rank-tracker/core/storage"
	"rank-tracker/feature/tracker"
	"rank-tracker/feature/tracker/moderation"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// requiredColumns is every users-table column the tracker reads or writes.
var requiredColumns = []string{
	"osu_id", "osu_username", "discord_tag", "badges",
	"osu_global_rank", "bws_rank", "is_banned", "is_admin", "user_hash",
}

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the tracker scheduler",
	Long: `Starts the reconciliation scheduler and, if enabled, the operational HTTP server.
The first pass runs immediately; subsequent passes follow the configured interval.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		logg.Info("Started running rank tracker")

		if !moderation.IsValidMode(cfg.Moderation.Mode) {
			logg.Fatal("Invalid moderation mode", zap.String("mode", cfg.Moderation.Mode))
		}

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Database connection failed", zap.Error(err))
		}

		// The tracker never migrates; refuse to run against a table
		// missing the columns it depends on.
		if err := database.VerifyColumns(db, cfg.Database.UsersTable, requiredColumns...); err != nil {
			logg.Fatal("Users table verification failed", zap.Error(err))
		}
		logg.Info("Connected to tournament database", zap.String("table", cfg.Database.UsersTable))

		// 4. Build the tracker
		store := tracker.NewStore(db)
		source := osuClient(cfg)
		sink := buildSink(cfg, store, logg)

		engine := tracker.NewEngine(store, source, sink, logg, cfg.Tracker.ContinueOnError)

		var archiver *tracker.Archiver
		if cfg.Tracker.ArchiveReports {
			client, err := storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
			archiver = tracker.NewArchiver(client, cfg.Storage.Bucket, cfg.Tracker.ReportRetention, logg)
			logg.Info("Pass report archiving enabled", zap.String("bucket", cfg.Storage.Bucket))
		}

		service := tracker.NewService(engine, store, archiver, logg)

		// 5. Operational HTTP surface (optional)
		var app *fiber.App
		if cfg.Server.Enabled {
			app = fiber.New(fiber.Config{
				DisableStartupMessage: true, // We will log our own startup message
			})

			// RayID first so everything is traceable
			app.Use(rayid.New())
			app.Use(func(c *fiber.Ctx) error {
				l := logger.WithRayID(logg, c)
				l.Info("Request started",
					zap.String("method", c.Method()),
					zap.String("path", c.Path()),
					zap.String("ip", c.IP()),
				)
				err := c.Next()
				if err != nil {
					l.Error("Request error", zap.Error(err))
				}
				return err
			})
			app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

			mgr := loader.NewManager()
			mgr.Register(tracker.NewFeature(service, logg))
			if err := mgr.LoadAll(app); err != nil {
				logg.Fatal("Failed to load features", zap.Error(err))
			}

			go func() {
				logg.Info("Starting server", zap.String("port", cfg.Server.Port))
				if err := app.Listen(":" + cfg.Server.Port); err != nil {
					logg.Fatal("Server failed to start", zap.Error(err))
				}
			}()
		}

		// 6. Scheduler loop
		ctx, cancel := context.WithCancel(context.Background())
		go runScheduler(ctx, service, cfg.Tracker.IntervalSeconds, logg)

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down tracker...")
		cancel()
		if app != nil {
			_ = app.Shutdown()
		}
	},
}

// runScheduler runs one pass immediately, then one per interval, until the
// context is cancelled. A failed pass is logged; the next tick retries all
// users from scratch.
func runScheduler(ctx context.Context, service *tracker.Service, intervalSeconds int, logg *zap.Logger) {
	if intervalSeconds <= 0 {
		intervalSeconds = 900
	}
	interval := time.Duration(intervalSeconds) * time.Second

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	runOne := func() {
		summary, err := service.RunPass(ctx)
		if err != nil {
			logg.Error("Pass failed", zap.Error(err))
			return
		}
		logg.Info("Pass complete",
			zap.String("pass_id", summary.PassID),
			zap.Int("updated", summary.Updated),
			zap.Int("missing", summary.Missing),
		)
	}

	runOne()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOne()
		}
	}
}

func init() {
	RootCmd.AddCommand(startCmd)
}
