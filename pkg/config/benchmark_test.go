package config

import (
	"os"
	"testing"
)

// BenchmarkLoadConfig benchmarks loading a typical configuration file.
func BenchmarkLoadConfig(b *testing.B) {
	configPath := benchConfigFile(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := LoadConfig(configPath); err != nil {
			b.Fatalf("failed to load config: %v", err)
		}
	}
}

// BenchmarkLoadConfigWithEnvOverrides benchmarks loading with environment variable overrides.
func BenchmarkLoadConfigWithEnvOverrides(b *testing.B) {
	configPath := benchConfigFile(b)

	os.Setenv("ROWPORT_EXPORT_FORMAT", "json")
	os.Setenv("ROWPORT_SOURCE_DSN", "bench.db")
	defer func() {
		os.Unsetenv("ROWPORT_EXPORT_FORMAT")
		os.Unsetenv("ROWPORT_SOURCE_DSN")
	}()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := LoadConfigWithEnvOverrides(configPath); err != nil {
			b.Fatalf("failed to load config: %v", err)
		}
	}
}

// BenchmarkValidate benchmarks configuration validation.
func BenchmarkValidate(b *testing.B) {
	cfg := &Config{
		Columns: []ColumnConfig{{Source: "id"}, {Source: "name"}, {Source: "email", Target: "contact"}},
		Source: SourceConfig{
			Driver: "sqlite",
			DSN:    "data/app.db",
			Query:  "SELECT id, name, email FROM users",
		},
	}
	ApplyDefaults(cfg)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := Validate(cfg); err != nil {
			b.Fatalf("validation failed: %v", err)
		}
	}
}

// BenchmarkApplyDefaults benchmarks applying default values.
func BenchmarkApplyDefaults(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cfg := Config{
			Columns: []ColumnConfig{{Source: "id"}},
		}
		ApplyDefaults(&cfg)
	}
}

// BenchmarkGetConfig benchmarks singleton config access.
func BenchmarkGetConfig(b *testing.B) {
	cfg := &Config{Columns: []ColumnConfig{{Source: "id"}}}
	ApplyDefaults(cfg)
	SetConfig(cfg)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetConfig()
	}
}

func benchConfigFile(b *testing.B) string {
	b.Helper()
	path := b.TempDir() + "/rowport.yaml"

	content := `
export:
  format: "csv"
  compression: "gzip"

columns:
  - source: "id"
  - source: "name"
  - source: "email"
    target: "contact"

source:
  driver: "sqlite"
  dsn: "data/app.db"
  query: "SELECT id, name, email FROM users"

output:
  path: "exports/users.csv"

schedule:
  enabled: true
  cron: "0 3 * * *"

telemetry:
  logging:
    level: "info"
    format: "json"
  metrics:
    enabled: true
    listen_address: "127.0.0.1:9090"
`

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		b.Fatalf("failed to write config file: %v", err)
	}
	return path
}
