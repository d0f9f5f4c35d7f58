package export

import (
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, ""},
		{"string", "hello", "hello"},
		{"empty string", "", ""},
		{"bytes", []byte("raw"), "raw"},
		{"timestamp", ts, "2026-03-14T09:26:53Z"},
		{"zero timestamp", time.Time{}, ""},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"int", 42, "42"},
		{"negative int", -7, "-7"},
		{"int64", int64(9000000000), "9000000000"},
		{"uint", uint(3), "3"},
		{"float", 3.14, "3.14"},
		{"float whole", 2.0, "2"},
		{"large float", 1e21, "1e+21"},
		{"nested map", map[string]any{"a": 1}, `{"a":1}`},
		{"nested slice", []any{"x", 2}, `["x",2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.value)
			if got != tt.want {
				t.Errorf("Normalize(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestNormalize_TimezoneOffset(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2026, 1, 2, 15, 4, 5, 0, loc)

	got := Normalize(ts)
	if got != "2026-01-02T15:04:05+02:00" {
		t.Errorf("expected offset-preserving RFC 3339, got %q", got)
	}
}
