package config

import (
	"reflect"
	"strings"

	"rank-tracker/core/database"
	"rank-tracker/core/logger"
	"rank-tracker/core/server"
	"rank-tracker/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// OsuConfig holds configuration for the osu! API client.
type OsuConfig struct {
	// ApiURL is the base URL of the osu! v2 API.
	ApiURL string `mapstructure:"api_url" default:"https://osu.ppy.sh/api/v2"`
	// TokenURL is the OAuth token endpoint.
	TokenURL string `mapstructure:"token_url" default:"https://osu.ppy.sh/oauth/token"`
	// ClientID is the OAuth client id.
	ClientID string `mapstructure:"client_id" default:""`
	// ClientSecret is the OAuth client secret.
	ClientSecret string `mapstructure:"client_secret" default:""`
	// RequestIntervalMs is the minimum time between request dispatches
	// in milliseconds.
	RequestIntervalMs int `mapstructure:"request_interval_ms" default:"1500"`
}

// ModerationConfig holds configuration for the moderation sink.
type ModerationConfig struct {
	// Mode selects what happens when a tracked user vanishes upstream
	// (ban, delete).
	Mode string `mapstructure:"mode" default:"delete"`
	// ApiURL is the base URL of the moderation API (ban mode only).
	ApiURL string `mapstructure:"api_url" default:""`
	// TimeoutSeconds is the HTTP timeout for ban calls.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// TrackerConfig holds configuration for the reconciliation engine and
// scheduler.
type TrackerConfig struct {
	// IntervalSeconds is the delay between the end of one pass and the
	// start of the next.
	IntervalSeconds int `mapstructure:"interval_seconds" default:"900"`
	// ContinueOnError makes a pass log per-user failures and keep going
	// instead of aborting on the first one. Off by default: a broken
	// upstream or store usually breaks every remaining user too.
	ContinueOnError bool `mapstructure:"continue_on_error" default:"false"`
	// ArchiveReports enables uploading pass summaries to object storage.
	ArchiveReports bool `mapstructure:"archive_reports" default:"false"`
	// ReportRetention is the number of archived reports to keep.
	ReportRetention int `mapstructure:"report_retention" default:"200"`
}

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the operational HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the pass-report object storage.
	Storage storage.Config `mapstructure:"storage"`
	// Osu holds configuration for the osu! API client.
	Osu OsuConfig `mapstructure:"osu"`
	// Moderation holds configuration for the moderation sink.
	Moderation ModerationConfig `mapstructure:"moderation"`
	// Tracker holds configuration for the reconciliation engine.
	Tracker TrackerConfig `mapstructure:"tracker"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. OSU_CLIENT_ID -> osu.client_id)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
