package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The configuration is not modified by environment variables; use LoadConfigWithEnvOverrides
// for that functionality.
func LoadConfig(path string) (*Config, error) {
	// Read the file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	// Parse YAML
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	// Apply defaults
	ApplyDefaults(&cfg)

	// Validate
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention ROWPORT_SECTION_FIELD (e.g., ROWPORT_SOURCE_DSN).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	// First load from file (this already applies defaults)
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Re-validate after overrides
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// ParseConfig reads and parses the file at path, applying defaults and
// environment variable overrides but skipping validation. Callers that
// layer further overrides on top (command-line flags) validate the
// combined result themselves.
func ParseConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// DefaultConfig returns a configuration built from defaults and
// environment variable overrides alone, with no file loaded. The
// sections that have no defaults (source, columns) must be filled in by
// the caller before validation.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	applyEnvOverrides(cfg)
	return cfg
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format ROWPORT_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Export overrides
	if val := os.Getenv("ROWPORT_EXPORT_FORMAT"); val != "" {
		cfg.Export.Format = val
	}
	if val := os.Getenv("ROWPORT_EXPORT_ROW_GROUP_SIZE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Export.RowGroupSize = i
		}
	}
	if val := os.Getenv("ROWPORT_EXPORT_COMPRESSION"); val != "" {
		cfg.Export.Compression = val
	}

	// Source overrides - DSN commonly carries credentials and is the
	// main reason to prefer the environment over the file
	if val := os.Getenv("ROWPORT_SOURCE_DRIVER"); val != "" {
		cfg.Source.Driver = val
	}
	if val := os.Getenv("ROWPORT_SOURCE_DSN"); val != "" {
		cfg.Source.DSN = val
	}
	if val := os.Getenv("ROWPORT_SOURCE_QUERY"); val != "" {
		cfg.Source.Query = val
	}
	if val := os.Getenv("ROWPORT_SOURCE_MAX_OPEN_CONNS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Source.MaxOpenConns = i
		}
	}
	if val := os.Getenv("ROWPORT_SOURCE_MAX_IDLE_CONNS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Source.MaxIdleConns = i
		}
	}

	// Output overrides
	if val := os.Getenv("ROWPORT_OUTPUT_PATH"); val != "" {
		cfg.Output.Path = val
	}
	if val := os.Getenv("ROWPORT_OUTPUT_OVERWRITE"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Output.Overwrite = b
		}
	}

	// Schedule overrides
	if val := os.Getenv("ROWPORT_SCHEDULE_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Schedule.Enabled = b
		}
	}
	if val := os.Getenv("ROWPORT_SCHEDULE_CRON"); val != "" {
		cfg.Schedule.Cron = val
	}
	if val := os.Getenv("ROWPORT_SCHEDULE_WATCH_CONFIG"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Schedule.WatchConfig = b
		}
	}

	// Telemetry overrides
	if val := os.Getenv("ROWPORT_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("ROWPORT_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("ROWPORT_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("ROWPORT_TELEMETRY_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.ListenAddress = val
	}
	if val := os.Getenv("ROWPORT_TELEMETRY_METRICS_PATH"); val != "" {
		cfg.Telemetry.Metrics.Path = val
	}
}
