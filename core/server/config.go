package server

// Config holds configuration for the operational HTTP server.
type Config struct {
	// Enabled controls whether the HTTP server is started at all.
	// The tracker runs fine headless; the server only adds observability.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
}
