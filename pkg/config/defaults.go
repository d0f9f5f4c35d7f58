package config

// Default values for configuration fields.
const (
	// Export defaults
	DefaultExportFormat = "csv"
	DefaultRowGroupSize = 1000
	DefaultCompression  = "none"

	// Source defaults
	DefaultSourceMaxOpenConns = 2
	DefaultSourceMaxIdleConns = 1

	// Output defaults
	DefaultOutputPath = "-"

	// Schedule defaults
	DefaultScheduleCron = "0 3 * * *"

	// Telemetry defaults
	DefaultLoggingLevel         = "info"
	DefaultLoggingFormat        = "json"
	DefaultMetricsEnabled       = true
	DefaultMetricsListenAddress = "127.0.0.1:9090"
	DefaultMetricsPath          = "/metrics"
)

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Export defaults
	if cfg.Export.Format == "" {
		cfg.Export.Format = DefaultExportFormat
	}
	if cfg.Export.RowGroupSize == 0 {
		cfg.Export.RowGroupSize = DefaultRowGroupSize
	}
	if cfg.Export.Compression == "" {
		cfg.Export.Compression = DefaultCompression
	}

	// Column defaults - a column without a target keeps its source name
	for i := range cfg.Columns {
		if cfg.Columns[i].Target == "" {
			cfg.Columns[i].Target = cfg.Columns[i].Source
		}
	}

	// Source defaults
	if cfg.Source.MaxOpenConns == 0 {
		cfg.Source.MaxOpenConns = DefaultSourceMaxOpenConns
	}
	if cfg.Source.MaxIdleConns == 0 {
		cfg.Source.MaxIdleConns = DefaultSourceMaxIdleConns
	}

	// Output defaults
	if cfg.Output.Path == "" {
		cfg.Output.Path = DefaultOutputPath
	}

	// Schedule defaults
	if cfg.Schedule.Cron == "" {
		cfg.Schedule.Cron = DefaultScheduleCron
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	applyMetricsDefaults(cfg)
}

// applyMetricsDefaults applies default values to metrics configuration.
func applyMetricsDefaults(cfg *Config) {
	metrics := &cfg.Telemetry.Metrics

	// Set enabled default (true)
	if !metrics.Enabled {
		// Check if any metrics fields are set - if so, the user
		// configured the section and enabled stays as given.
		// Otherwise, use default.
		hasAnyConfig := metrics.ListenAddress != "" || metrics.Path != ""

		if !hasAnyConfig {
			metrics.Enabled = DefaultMetricsEnabled
		}
	}

	if metrics.ListenAddress == "" {
		metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if metrics.Path == "" {
		metrics.Path = DefaultMetricsPath
	}
}
