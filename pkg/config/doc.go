// Package config provides configuration management for Rowport.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides. It provides a type-safe
// configuration system with comprehensive validation and sensible defaults.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("rowport.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("rowport.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention ROWPORT_SECTION_FIELD.
// For example:
//
//   - ROWPORT_SOURCE_DSN overrides source.dsn
//   - ROWPORT_EXPORT_FORMAT overrides export.format
//   - ROWPORT_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Environment variables always take precedence over file-based configuration.
// The DSN override matters most in practice: it keeps database credentials
// out of the configuration file.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Singleton Pattern
//
// For application-wide configuration access, use the singleton pattern:
//
//	// At application startup
//	if err := config.Initialize("rowport.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Anywhere in the application
//	cfg := config.GetConfig()
//	fmt.Println(cfg.Source.Driver)
//
// The scheduler reads the singleton before every run and the configuration
// watcher replaces it via ReloadConfig, so file edits apply to the next
// scheduled export without a restart.
//
// For testing, prefer dependency injection with explicit Config instances
// rather than the global singleton.
//
// # Validation
//
// All configuration is validated automatically during loading. Validation includes:
//
//   - Required field checks (e.g., source driver, DSN, query)
//   - Enumeration checks (e.g., format must be csv, json, xml, or parquet)
//   - Projection checks (e.g., duplicate target columns)
//   - Logical validation (e.g., parquet refuses outer compression)
//
// Validation errors include field paths and helpful messages:
//
//	configuration validation failed with 2 errors:
//	  - source.dsn: data source name is required
//	  - columns[2].target: duplicate target column "id"
//
// # Example Configuration
//
// Here is a minimal configuration file:
//
//	export:
//	  format: "csv"
//
//	columns:
//	  - source: "id"
//	  - source: "email"
//	    target: "contact"
//
//	source:
//	  driver: "sqlite"
//	  dsn: "data/app.db"
//	  query: "SELECT id, email FROM users"
//
//	output:
//	  path: "exports/users.csv"
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
//
// # Thread Safety
//
// All configuration access is thread-safe. The singleton pattern uses read-write
// locks to allow concurrent reads while protecting against concurrent writes during
// reload operations.
package config
