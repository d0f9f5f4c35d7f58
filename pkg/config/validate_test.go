package config

import (
	"strings"
	"testing"
)

// validConfig returns a minimal configuration that passes validation
// after defaults are applied.
func validConfig() *Config {
	cfg := &Config{
		Columns: []ColumnConfig{{Source: "id"}},
		Source: SourceConfig{
			Driver: "sqlite",
			DSN:    "data/app.db",
			Query:  "SELECT id FROM users",
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// fieldErrors returns the dotted field paths of all validation errors.
func fieldErrors(t *testing.T, err error) []string {
	t.Helper()
	if err == nil {
		return nil
	}
	verr, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	fields := make([]string, len(verr.Errors))
	for i, fe := range verr.Errors {
		fields[i] = fe.Field
	}
	return fields
}

func hasField(fields []string, want string) bool {
	for _, f := range fields {
		if f == want {
			return true
		}
	}
	return false
}

func TestValidate_ValidConfig(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Errorf("expected valid config, got: %v", err)
	}
}

func TestValidate_Export(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:      "missing format",
			mutate:    func(c *Config) { c.Export.Format = "" },
			wantField: "export.format",
		},
		{
			name:      "unknown format",
			mutate:    func(c *Config) { c.Export.Format = "avro" },
			wantField: "export.format",
		},
		{
			name:      "negative row group size",
			mutate:    func(c *Config) { c.Export.RowGroupSize = -5 },
			wantField: "export.row_group_size",
		},
		{
			name:      "unknown compression",
			mutate:    func(c *Config) { c.Export.Compression = "brotli" },
			wantField: "export.compression",
		},
		{
			name: "parquet with outer compression",
			mutate: func(c *Config) {
				c.Export.Format = "parquet"
				c.Export.Compression = "gzip"
			},
			wantField: "export.compression",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			fields := fieldErrors(t, Validate(cfg))
			if !hasField(fields, tt.wantField) {
				t.Errorf("expected error on %s, got %v", tt.wantField, fields)
			}
		})
	}
}

func TestValidate_Columns(t *testing.T) {
	t.Run("no columns", func(t *testing.T) {
		cfg := validConfig()
		cfg.Columns = nil

		fields := fieldErrors(t, Validate(cfg))
		if !hasField(fields, "columns") {
			t.Errorf("expected error on columns, got %v", fields)
		}
	})

	t.Run("missing source", func(t *testing.T) {
		cfg := validConfig()
		cfg.Columns = append(cfg.Columns, ColumnConfig{Target: "extra"})

		fields := fieldErrors(t, Validate(cfg))
		if !hasField(fields, "columns[1].source") {
			t.Errorf("expected error on columns[1].source, got %v", fields)
		}
	})

	t.Run("duplicate targets", func(t *testing.T) {
		cfg := validConfig()
		cfg.Columns = []ColumnConfig{
			{Source: "a", Target: "id"},
			{Source: "b", Target: "id"},
		}

		fields := fieldErrors(t, Validate(cfg))
		if !hasField(fields, "columns[1].target") {
			t.Errorf("expected error on columns[1].target, got %v", fields)
		}
	})
}

func TestValidate_Source(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:      "missing driver",
			mutate:    func(c *Config) { c.Source.Driver = "" },
			wantField: "source.driver",
		},
		{
			name:      "unknown driver",
			mutate:    func(c *Config) { c.Source.Driver = "oracle" },
			wantField: "source.driver",
		},
		{
			name:      "missing dsn",
			mutate:    func(c *Config) { c.Source.DSN = "" },
			wantField: "source.dsn",
		},
		{
			name:      "missing query",
			mutate:    func(c *Config) { c.Source.Query = "" },
			wantField: "source.query",
		},
		{
			name:      "negative pool size",
			mutate:    func(c *Config) { c.Source.MaxOpenConns = -1 },
			wantField: "source.max_open_conns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			fields := fieldErrors(t, Validate(cfg))
			if !hasField(fields, tt.wantField) {
				t.Errorf("expected error on %s, got %v", tt.wantField, fields)
			}
		})
	}
}

func TestValidate_Schedule(t *testing.T) {
	cfg := validConfig()
	cfg.Schedule.Enabled = true
	cfg.Schedule.Cron = ""

	fields := fieldErrors(t, Validate(cfg))
	if !hasField(fields, "schedule.cron") {
		t.Errorf("expected error on schedule.cron, got %v", fields)
	}
}

func TestValidate_Telemetry(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:      "unknown logging level",
			mutate:    func(c *Config) { c.Telemetry.Logging.Level = "verbose" },
			wantField: "telemetry.logging.level",
		},
		{
			name:      "unknown logging format",
			mutate:    func(c *Config) { c.Telemetry.Logging.Format = "logfmt" },
			wantField: "telemetry.logging.format",
		},
		{
			name: "metrics without listen address",
			mutate: func(c *Config) {
				c.Telemetry.Metrics.Enabled = true
				c.Telemetry.Metrics.ListenAddress = ""
			},
			wantField: "telemetry.metrics.listen_address",
		},
		{
			name: "metrics path without slash",
			mutate: func(c *Config) {
				c.Telemetry.Metrics.Enabled = true
				c.Telemetry.Metrics.Path = "metrics"
			},
			wantField: "telemetry.metrics.path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			fields := fieldErrors(t, Validate(cfg))
			if !hasField(fields, tt.wantField) {
				t.Errorf("expected error on %s, got %v", tt.wantField, fields)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &Config{}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation errors for an empty config")
	}

	fields := fieldErrors(t, err)
	for _, want := range []string{"export.format", "columns", "source.driver", "source.dsn", "source.query", "output.path"} {
		if !hasField(fields, want) {
			t.Errorf("expected error on %s, got %v", want, fields)
		}
	}
}

func TestValidationError_ErrorFormat(t *testing.T) {
	t.Run("single error", func(t *testing.T) {
		err := ValidationError{Errors: []FieldError{
			{Field: "source.dsn", Message: "data source name is required"},
		}}
		want := "configuration validation failed: source.dsn: data source name is required"
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		err := ValidationError{Errors: []FieldError{
			{Field: "source.dsn", Message: "data source name is required"},
			{Field: "columns", Message: "at least one column must be configured"},
		}}
		msg := err.Error()
		if !strings.Contains(msg, "2 errors") {
			t.Errorf("expected error count in message, got %q", msg)
		}
		if !strings.Contains(msg, "  - source.dsn:") {
			t.Errorf("expected itemized errors, got %q", msg)
		}
	})
}
