package logging

import (
	"strings"
	"testing"
)

func TestRedactor_RedactString(t *testing.T) {
	r := NewRedactor()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "postgres URL DSN",
			input: "postgres://exporter:hunter2@db:5432/app?sslmode=disable",
			want:  "postgres://exporter:***@db:5432/app?sslmode=disable",
		},
		{
			name:  "mysql driver DSN",
			input: "root:hunter2@tcp(db:3306)/app",
			want:  "root:***@tcp(db:3306)/app",
		},
		{
			name:  "postgres keyword DSN",
			input: "host=db user=exporter password=hunter2 sslmode=disable",
			want:  "host=db user=exporter password=*** sslmode=disable",
		},
		{
			name:  "bearer token in error text",
			input: "request rejected: Bearer eyJhbGciOiJIUzI1NiJ9.payload",
			want:  "request rejected: Bearer ***",
		},
		{
			name:  "clean string unchanged",
			input: "exported 42 rows to /tmp/out.csv",
			want:  "exported 42 rows to /tmp/out.csv",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.RedactString(tt.input); got != tt.want {
				t.Errorf("RedactString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRedactor_RedactArgs(t *testing.T) {
	r := NewRedactor()

	t.Run("sensitive key is masked entirely", func(t *testing.T) {
		args := r.RedactArgs("password", "hunter2secret")
		if args[1] != "hunt***" {
			t.Errorf("password value = %v, want %q", args[1], "hunt***")
		}
	})

	t.Run("short sensitive value has no prefix", func(t *testing.T) {
		args := r.RedactArgs("token", "abc")
		if args[1] != "***" {
			t.Errorf("token value = %v, want %q", args[1], "***")
		}
	})

	t.Run("dsn value stays readable minus the password", func(t *testing.T) {
		args := r.RedactArgs("dsn", "postgres://exporter:hunter2@db/app")
		got, ok := args[1].(string)
		if !ok {
			t.Fatalf("dsn value is %T, want string", args[1])
		}
		if strings.Contains(got, "hunter2") {
			t.Errorf("password survived redaction: %q", got)
		}
		if !strings.Contains(got, "db/app") {
			t.Errorf("host was lost during redaction: %q", got)
		}
	})

	t.Run("non-sensitive values pass through", func(t *testing.T) {
		args := r.RedactArgs("rows", 42, "format", "csv")
		if args[1] != 42 {
			t.Errorf("rows = %v, want 42", args[1])
		}
		if args[3] != "csv" {
			t.Errorf("format = %v, want csv", args[3])
		}
	})

	t.Run("non-string sensitive value is masked", func(t *testing.T) {
		args := r.RedactArgs("api_key", 12345)
		if args[1] != "***" {
			t.Errorf("api_key value = %v, want %q", args[1], "***")
		}
	})

	t.Run("odd argument count does not panic", func(t *testing.T) {
		args := r.RedactArgs("dangling")
		if len(args) != 1 || args[0] != "dangling" {
			t.Errorf("args = %v, want [dangling]", args)
		}
	})
}

func TestRedactDSN(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{
			name: "postgres URL",
			dsn:  "postgres://exporter:hunter2@db:5432/app",
			want: "postgres://exporter:***@db:5432/app",
		},
		{
			name: "URL without password",
			dsn:  "postgres://exporter@db:5432/app",
			want: "postgres://exporter@db:5432/app",
		},
		{
			name: "mysql driver form",
			dsn:  "root:hunter2@tcp(db:3306)/app?parseTime=true",
			want: "root:***@tcp(db:3306)/app?parseTime=true",
		},
		{
			name: "keyword form",
			dsn:  "host=db password=hunter2 dbname=app",
			want: "host=db password=*** dbname=app",
		},
		{
			name: "sqlite path untouched",
			dsn:  "/var/lib/rowport/app.db",
			want: "/var/lib/rowport/app.db",
		},
		{
			name: "empty",
			dsn:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RedactDSN(tt.dsn); got != tt.want {
				t.Errorf("RedactDSN(%q) = %q, want %q", tt.dsn, got, tt.want)
			}
		})
	}
}
