package config

import (
	"fmt"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "export.format").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateExport(&cfg.Export)...)
	errs = append(errs, validateColumns(cfg.Columns)...)
	errs = append(errs, validateSource(&cfg.Source)...)
	errs = append(errs, validateOutput(&cfg.Output)...)
	errs = append(errs, validateSchedule(&cfg.Schedule)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateExport validates export configuration.
func validateExport(cfg *ExportConfig) []FieldError {
	var errs []FieldError

	validFormats := map[string]bool{"csv": true, "json": true, "xml": true, "parquet": true}
	if cfg.Format == "" {
		errs = append(errs, FieldError{
			Field:   "export.format",
			Message: "format is required",
		})
	} else if !validFormats[cfg.Format] {
		errs = append(errs, FieldError{
			Field:   "export.format",
			Message: fmt.Sprintf("invalid format %q: must be 'csv', 'json', 'xml', or 'parquet'", cfg.Format),
		})
	}

	if cfg.RowGroupSize < 0 {
		errs = append(errs, FieldError{
			Field:   "export.row_group_size",
			Message: "row group size must be positive",
		})
	}

	validCompressions := map[string]bool{"none": true, "gzip": true, "zstd": true, "s2": true, "lz4": true}
	if cfg.Compression != "" && !validCompressions[cfg.Compression] {
		errs = append(errs, FieldError{
			Field:   "export.compression",
			Message: fmt.Sprintf("invalid compression %q: must be 'none', 'gzip', 'zstd', 's2', or 'lz4'", cfg.Compression),
		})
	}

	// Parquet compresses internally; an outer codec would produce a file
	// no parquet reader accepts.
	if cfg.Format == "parquet" && cfg.Compression != "" && cfg.Compression != "none" {
		errs = append(errs, FieldError{
			Field:   "export.compression",
			Message: "compression cannot be combined with the parquet format",
		})
	}

	return errs
}

// validateColumns validates the column projection.
func validateColumns(columns []ColumnConfig) []FieldError {
	var errs []FieldError

	if len(columns) == 0 {
		errs = append(errs, FieldError{
			Field:   "columns",
			Message: "at least one column must be configured",
		})
		return errs
	}

	seen := make(map[string]bool, len(columns))
	for i, col := range columns {
		prefix := fmt.Sprintf("columns[%d]", i)

		if col.Source == "" {
			errs = append(errs, FieldError{
				Field:   prefix + ".source",
				Message: "source field name is required",
			})
		}
		if col.Target == "" {
			errs = append(errs, FieldError{
				Field:   prefix + ".target",
				Message: "target column name is required",
			})
			continue
		}
		if seen[col.Target] {
			errs = append(errs, FieldError{
				Field:   prefix + ".target",
				Message: fmt.Sprintf("duplicate target column %q", col.Target),
			})
		}
		seen[col.Target] = true
	}

	return errs
}

// validateSource validates the row source configuration.
func validateSource(cfg *SourceConfig) []FieldError {
	var errs []FieldError

	validDrivers := map[string]bool{"sqlite": true, "postgres": true, "mysql": true}
	if cfg.Driver == "" {
		errs = append(errs, FieldError{
			Field:   "source.driver",
			Message: "driver is required",
		})
	} else if !validDrivers[cfg.Driver] {
		errs = append(errs, FieldError{
			Field:   "source.driver",
			Message: fmt.Sprintf("invalid driver %q: must be 'sqlite', 'postgres', or 'mysql'", cfg.Driver),
		})
	}

	if cfg.DSN == "" {
		errs = append(errs, FieldError{
			Field:   "source.dsn",
			Message: "data source name is required",
		})
	}
	if cfg.Query == "" {
		errs = append(errs, FieldError{
			Field:   "source.query",
			Message: "query is required",
		})
	}

	if cfg.MaxOpenConns < 0 {
		errs = append(errs, FieldError{
			Field:   "source.max_open_conns",
			Message: "max open connections must be non-negative",
		})
	}
	if cfg.MaxIdleConns < 0 {
		errs = append(errs, FieldError{
			Field:   "source.max_idle_conns",
			Message: "max idle connections must be non-negative",
		})
	}

	return errs
}

// validateOutput validates the output configuration.
func validateOutput(cfg *OutputConfig) []FieldError {
	var errs []FieldError

	if cfg.Path == "" {
		errs = append(errs, FieldError{
			Field:   "output.path",
			Message: "output path is required ('-' for standard output)",
		})
	}

	return errs
}

// validateSchedule validates the schedule configuration. The cron
// expression itself is parsed by the scheduler; this only checks it is
// present when the scheduler is enabled.
func validateSchedule(cfg *ScheduleConfig) []FieldError {
	var errs []FieldError

	if cfg.Enabled && cfg.Cron == "" {
		errs = append(errs, FieldError{
			Field:   "schedule.cron",
			Message: "cron expression is required when the schedule is enabled",
		})
	}

	return errs
}

// validateTelemetry validates telemetry configuration.
func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if cfg.Logging.Level != "" && !validLevels[cfg.Logging.Level] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.Logging.Level),
		})
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if cfg.Logging.Format != "" && !validLogFormats[cfg.Logging.Format] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid format %q: must be 'json' or 'text'", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled {
		if cfg.Metrics.ListenAddress == "" {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.listen_address",
				Message: "listen address is required when metrics are enabled",
			})
		}
		if cfg.Metrics.Path != "" && !strings.HasPrefix(cfg.Metrics.Path, "/") {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.path",
				Message: "metrics path must start with '/'",
			})
		}
	}

	return errs
}
