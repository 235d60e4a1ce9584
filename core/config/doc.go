// Package config provides configuration management for the Rank Tracker.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: operational HTTP server settings (port, API key)
//   - Database: MySQL/SQLite connection details
//   - Storage: S3/MinIO credentials for the pass-report archive
//   - Log: logging level and format
//   - Osu: osu! API OAuth credentials and endpoints
//   - Moderation: moderation mode (ban or delete) and ban API endpoint
//   - Tracker: pass interval, error policy, report archiving
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Tracker.IntervalSeconds)
package config
