// Package server holds the operational HTTP server configuration.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structure for server settings.
//
// # Configuration
//
// The Config struct defines the HTTP port, API key, and whether the server
// is enabled at all. The tracker itself does not need the HTTP surface; it
// only exposes pass status and manual triggering.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings.
package server
