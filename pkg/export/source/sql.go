package source

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"helios-data/rowport/pkg/export"
)

// SQLConfig contains configuration for a SQL row source.
type SQLConfig struct {
	// Driver is the database/sql driver name ("sqlite", "postgres",
	// "mysql"). The driver must be registered by the importing program.
	Driver string

	// DSN is the driver-specific data source name.
	DSN string

	// Query is the row-producing statement.
	Query string

	// Args are bound to the query's placeholders.
	Args []any

	// MaxOpenConns limits the connection pool. Default: 2
	MaxOpenConns int

	// MaxIdleConns limits idle pooled connections. Default: 1
	MaxIdleConns int
}

// SQLSource implements export.Source over a streaming database/sql
// query. Column names from the result set are the row's source field
// names; []byte cells are coerced to string so drivers that return raw
// bytes for text columns normalize cleanly.
type SQLSource struct {
	db     *sql.DB
	query  string
	args   []any
	logger *slog.Logger
}

// OpenSQLSource opens a database handle and wraps it as a row source.
// The source owns the handle; Close releases it.
func OpenSQLSource(config *SQLConfig) (*SQLSource, error) {
	if config == nil {
		return nil, fmt.Errorf("sql source config is required")
	}
	if config.Driver == "" {
		return nil, fmt.Errorf("sql source driver is required")
	}
	if config.DSN == "" {
		return nil, fmt.Errorf("sql source dsn is required")
	}
	if config.Query == "" {
		return nil, fmt.Errorf("sql source query is required")
	}

	db, err := sql.Open(config.Driver, config.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", config.Driver, err)
	}

	maxOpen := config.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 2
	}
	maxIdle := config.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 1
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)

	logger := slog.Default().With("component", "export.source.sql")
	logger.Debug("sql source opened", "driver", config.Driver)

	return &SQLSource{
		db:     db,
		query:  config.Query,
		args:   config.Args,
		logger: logger,
	}, nil
}

// NewSQLSource wraps an existing database handle. Ownership transfers to
// the source: Close closes the handle.
func NewSQLSource(db *sql.DB, query string, args ...any) *SQLSource {
	return &SQLSource{
		db:     db,
		query:  query,
		args:   args,
		logger: slog.Default().With("component", "export.source.sql"),
	}
}

// Rows executes the query and streams scanned rows into a buffered
// channel. Both returned channels are closed when streaming stops.
func (s *SQLSource) Rows(ctx context.Context) (<-chan export.Row, <-chan error, error) {
	rowsCh := make(chan export.Row, rowBuffer)
	errCh := make(chan error, 1)

	go func() {
		defer close(rowsCh)
		defer close(errCh)

		rows, err := s.db.QueryContext(ctx, s.query, s.args...)
		if err != nil {
			errCh <- fmt.Errorf("execute query: %w", err)
			return
		}
		defer rows.Close()

		cols, err := rows.Columns()
		if err != nil {
			errCh <- fmt.Errorf("read column names: %w", err)
			return
		}

		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}

		for rows.Next() {
			select {
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			default:
			}

			if err := rows.Scan(ptrs...); err != nil {
				errCh <- fmt.Errorf("scan row: %w", err)
				return
			}

			row := make(export.Row, len(cols))
			for i, name := range cols {
				v := values[i]
				if b, ok := v.([]byte); ok {
					v = string(b)
				}
				row[name] = v
			}

			select {
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			case rowsCh <- row:
			}
		}

		if err := rows.Err(); err != nil {
			errCh <- fmt.Errorf("iterate rows: %w", err)
		}
	}()

	return rowsCh, errCh, nil
}

// Close releases the database handle.
func (s *SQLSource) Close() error {
	return s.db.Close()
}
