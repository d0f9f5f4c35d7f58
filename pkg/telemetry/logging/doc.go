// Package logging provides structured logging with credential redaction.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON and text formats
//   - Automatic credential redaction (DSN passwords, tokens, secrets)
//   - Component-tagged child loggers
//   - Configurable log levels (debug, info, warn, error)
//
// # Usage
//
//	// Create a logger
//	logger, err := logging.New(logging.Config{
//	    Level:         "info",
//	    Format:        "json",
//	    RedactSecrets: true,
//	})
//
//	// Log structured data
//	logger.Info("export started",
//	    "format", "csv",
//	    "dsn", "postgres://user:hunter2@db:5432/app",  // Password redacted
//	)
//
//	// Install as the process default so component loggers pick it up
//	logger.Install()
//
// # Credential Redaction
//
// Database connection strings carry passwords inline, and they appear in
// config dumps and driver error messages. When RedactSecrets is enabled:
//
//   - URL DSNs: postgres://user:hunter2@db/app → postgres://user:***@db/app
//   - Key-value DSNs: password=hunter2 → password=***
//   - Bearer tokens: Bearer eyJhb... → Bearer ***
//   - Fields named password, secret, token etc. are masked entirely
//
// # Output
//
// Export output may be streamed to standard output, so logs default to
// standard error.
package logging
