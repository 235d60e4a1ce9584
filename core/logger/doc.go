// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and integrates with the Fiber operational API as well as the reconciliation passes.
//
// # Context Awareness
//
// The logger supports two correlation fields. WithRayID extracts the RayID
// (Request ID) from a Fiber context for the HTTP surface; WithPass attaches
// the pass id so all log lines belonging to one reconciliation pass can be
// correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Tracker started")
//
//	// In a pass:
//	l := logger.WithPass(log, summary.PassID)
//	l.Info("Updated a single user")
package logger
