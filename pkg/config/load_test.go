package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rowport.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	configPath := writeConfigFile(t, `
export:
  format: "json"
  compression: "gzip"

columns:
  - source: "id"
  - source: "email"
    target: "contact"

source:
  driver: "sqlite"
  dsn: "data/app.db"
  query: "SELECT id, email FROM users"

output:
  path: "exports/users.json"

telemetry:
  logging:
    level: "debug"
    format: "text"
`)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify loaded values
	if cfg.Export.Format != "json" {
		t.Errorf("expected format %q, got %q", "json", cfg.Export.Format)
	}
	if cfg.Export.Compression != "gzip" {
		t.Errorf("expected compression %q, got %q", "gzip", cfg.Export.Compression)
	}
	if len(cfg.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(cfg.Columns))
	}
	if cfg.Columns[1].Target != "contact" {
		t.Errorf("expected target %q, got %q", "contact", cfg.Columns[1].Target)
	}
	if cfg.Source.Driver != "sqlite" || cfg.Source.DSN != "data/app.db" {
		t.Errorf("unexpected source config: %+v", cfg.Source)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("expected logging level %q, got %q", "debug", cfg.Telemetry.Logging.Level)
	}

	// Verify defaults filled the gaps
	if cfg.Export.RowGroupSize != DefaultRowGroupSize {
		t.Errorf("expected default row group size %d, got %d", DefaultRowGroupSize, cfg.Export.RowGroupSize)
	}
	if cfg.Columns[0].Target != "id" {
		t.Errorf("expected column target to default to source, got %q", cfg.Columns[0].Target)
	}
	if cfg.Schedule.Cron != DefaultScheduleCron {
		t.Errorf("expected default cron %q, got %q", DefaultScheduleCron, cfg.Schedule.Cron)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/rowport.yaml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
	// Check if error contains file not found message
	if !strings.Contains(err.Error(), "no such file or directory") {
		t.Errorf("expected file not found error, got: %v", err)
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	configPath := writeConfigFile(t, `
export:
  format: "csv"
  invalid yaml here: [
`)

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	// Config with validation errors (no query, unknown format)
	configPath := writeConfigFile(t, `
export:
  format: "avro"

columns:
  - source: "id"

source:
  driver: "sqlite"
  dsn: "data/app.db"
`)

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Fatal("expected validation error")
	}

	// Check if the error chain contains a ValidationError
	var validationErr ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("expected ValidationError in error chain, got %T: %v", err, err)
	}
	if len(validationErr.Errors) != 2 {
		t.Errorf("expected 2 field errors, got %d: %v", len(validationErr.Errors), validationErr)
	}
}

func TestLoadConfigWithEnvOverrides_BasicOverrides(t *testing.T) {
	configPath := writeConfigFile(t, `
export:
  format: "csv"

columns:
  - source: "id"

source:
  driver: "sqlite"
  dsn: "file-dsn.db"
  query: "SELECT id FROM users"

telemetry:
  logging:
    level: "info"
`)

	// Set environment variables
	os.Setenv("ROWPORT_EXPORT_FORMAT", "xml")
	os.Setenv("ROWPORT_SOURCE_DSN", "postgres://env-host/app")
	os.Setenv("ROWPORT_SOURCE_DRIVER", "postgres")
	os.Setenv("ROWPORT_TELEMETRY_LOGGING_LEVEL", "debug")
	defer func() {
		os.Unsetenv("ROWPORT_EXPORT_FORMAT")
		os.Unsetenv("ROWPORT_SOURCE_DSN")
		os.Unsetenv("ROWPORT_SOURCE_DRIVER")
		os.Unsetenv("ROWPORT_TELEMETRY_LOGGING_LEVEL")
	}()

	cfg, err := LoadConfigWithEnvOverrides(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify environment overrides took effect
	if cfg.Export.Format != "xml" {
		t.Errorf("expected format %q from env, got %q", "xml", cfg.Export.Format)
	}
	if cfg.Source.DSN != "postgres://env-host/app" {
		t.Errorf("expected DSN from env, got %q", cfg.Source.DSN)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("expected logging level %q from env, got %q", "debug", cfg.Telemetry.Logging.Level)
	}
}

func TestLoadConfigWithEnvOverrides_TypedParsing(t *testing.T) {
	configPath := writeConfigFile(t, `
columns:
  - source: "id"

source:
  driver: "sqlite"
  dsn: "data/app.db"
  query: "SELECT id FROM users"
`)

	os.Setenv("ROWPORT_EXPORT_ROW_GROUP_SIZE", "250")
	os.Setenv("ROWPORT_OUTPUT_OVERWRITE", "true")
	os.Setenv("ROWPORT_SCHEDULE_ENABLED", "true")
	defer func() {
		os.Unsetenv("ROWPORT_EXPORT_ROW_GROUP_SIZE")
		os.Unsetenv("ROWPORT_OUTPUT_OVERWRITE")
		os.Unsetenv("ROWPORT_SCHEDULE_ENABLED")
	}()

	cfg, err := LoadConfigWithEnvOverrides(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Export.RowGroupSize != 250 {
		t.Errorf("expected row group size 250, got %d", cfg.Export.RowGroupSize)
	}
	if !cfg.Output.Overwrite {
		t.Error("expected overwrite to be enabled from env")
	}
	if !cfg.Schedule.Enabled {
		t.Error("expected schedule to be enabled from env")
	}
}

func TestLoadConfigWithEnvOverrides_UnparseableValuesIgnored(t *testing.T) {
	configPath := writeConfigFile(t, `
columns:
  - source: "id"

source:
  driver: "sqlite"
  dsn: "data/app.db"
  query: "SELECT id FROM users"
`)

	os.Setenv("ROWPORT_EXPORT_ROW_GROUP_SIZE", "lots")
	os.Setenv("ROWPORT_OUTPUT_OVERWRITE", "yes please")
	defer func() {
		os.Unsetenv("ROWPORT_EXPORT_ROW_GROUP_SIZE")
		os.Unsetenv("ROWPORT_OUTPUT_OVERWRITE")
	}()

	cfg, err := LoadConfigWithEnvOverrides(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Export.RowGroupSize != DefaultRowGroupSize {
		t.Errorf("expected default row group size, got %d", cfg.Export.RowGroupSize)
	}
	if cfg.Output.Overwrite {
		t.Error("expected overwrite to stay disabled")
	}
}

func TestLoadConfigWithEnvOverrides_OverrideFailsValidation(t *testing.T) {
	configPath := writeConfigFile(t, `
columns:
  - source: "id"

source:
  driver: "sqlite"
  dsn: "data/app.db"
  query: "SELECT id FROM users"
`)

	os.Setenv("ROWPORT_EXPORT_FORMAT", "avro")
	defer os.Unsetenv("ROWPORT_EXPORT_FORMAT")

	_, err := LoadConfigWithEnvOverrides(configPath)
	if err == nil {
		t.Fatal("expected validation error after overrides")
	}
	if !strings.Contains(err.Error(), "after environment overrides") {
		t.Errorf("expected override validation error, got: %v", err)
	}
}
