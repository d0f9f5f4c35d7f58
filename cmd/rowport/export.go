package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"helios-data/rowport/pkg/cli"
	"helios-data/rowport/pkg/config"
	"helios-data/rowport/pkg/export"
	"helios-data/rowport/pkg/export/sink"
	"helios-data/rowport/pkg/export/source"
	"helios-data/rowport/pkg/telemetry/logging"
)

var exportFlags struct {
	format       string
	driver       string
	dsn          string
	query        string
	output       string
	columns      string
	compression  string
	rowGroupSize int
	overwrite    bool
	digest       bool
	logLevel     string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Run a one-shot export",
	Long: `Run one export: stream rows from the configured source through the
selected encoder into a file or standard output.

Values come from the configuration file, ROWPORT_* environment
variables, and flags; flags take precedence. Without --config the
default file is used if present, and flags alone can describe the whole
export.

Examples:
  # Export a sqlite table to CSV on standard output
  rowport export --driver sqlite --dsn app.db \
    --query "SELECT id, name FROM users" --columns id,name

  # Rename columns and write compressed JSON with an integrity digest
  rowport export --config rowport.yaml --format json \
    --columns "id,name:full_name" --compression zstd \
    --output users.json --digest

  # Everything from the config file
  rowport export --config rowport.yaml`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFlags.format, "format", "f", "", "output format: csv, json, xml, parquet")
	exportCmd.Flags().StringVar(&exportFlags.driver, "driver", "", "database driver: sqlite, postgres, mysql")
	exportCmd.Flags().StringVar(&exportFlags.dsn, "dsn", "", "database connection string")
	exportCmd.Flags().StringVar(&exportFlags.query, "query", "", "row-producing SQL statement")
	exportCmd.Flags().StringVarP(&exportFlags.output, "output", "o", "", "output file path ('-' for standard output)")
	exportCmd.Flags().StringVar(&exportFlags.columns, "columns", "", "column projection: source[:target],...")
	exportCmd.Flags().StringVar(&exportFlags.compression, "compression", "", "stream compression: none, gzip, zstd, s2, lz4")
	exportCmd.Flags().IntVar(&exportFlags.rowGroupSize, "row-group-size", 0, "parquet rows per row group")
	exportCmd.Flags().BoolVar(&exportFlags.overwrite, "overwrite", false, "replace an existing output file")
	exportCmd.Flags().BoolVar(&exportFlags.digest, "digest", false, "print an xxh64 digest of the written output")
	exportCmd.Flags().StringVar(&exportFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadEffectiveConfig(cmd)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	log.Install()

	out := cli.NewOutput(quiet, verbose)
	if cfg.Output.Path == "-" {
		// The document itself goes to stdout; keep the summary off it.
		out.Out = os.Stderr
	}

	log.Info("export starting",
		"format", cfg.Export.Format,
		"driver", cfg.Source.Driver,
		"dsn", cfg.Source.DSN,
		"output", cfg.Output.Path,
	)

	ctx := cli.SetupSignalHandler()

	outcome, err := runConfiguredExport(ctx, cfg, exportFlags.digest)
	if err != nil {
		return cli.NewExitError(cli.ExitExport, err)
	}

	res := outcome.result
	dest := outcome.path
	if dest == "-" {
		dest = "standard output"
	}

	out.Printf("✓ Exported %d rows to %s (%s, %s in %s)\n",
		res.Rows, dest, res.Format, formatBytes(outcome.written),
		res.Duration.Round(time.Millisecond))
	if outcome.written != res.Bytes {
		out.Verbosef("  encoded %s, wrote %s after %s compression\n",
			formatBytes(res.Bytes), formatBytes(outcome.written), cfg.Export.Compression)
	}
	if outcome.digested {
		out.Printf("✓ Digest: xxh64:%016x\n", outcome.digest)
	}

	return nil
}

// loadEffectiveConfig builds the export configuration from the file (if
// present), the environment, and the command's flags, then validates
// the combined result.
func loadEffectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config

	if _, err := os.Stat(cfgFile); err == nil {
		cfg, err = config.ParseConfig(cfgFile)
		if err != nil {
			return nil, cli.NewExitError(cli.ExitConfig, err)
		}
	} else if cmd.Flags().Changed("config") {
		// An explicitly named file must exist; the default path is
		// optional so flags alone can describe an export.
		return nil, cli.NewConfigError("config", fmt.Sprintf("cannot read %s: %v", cfgFile, err))
	} else {
		cfg = config.DefaultConfig()
	}

	if err := applyExportFlags(cmd, cfg); err != nil {
		return nil, err
	}
	config.ApplyDefaults(cfg)

	if err := config.Validate(cfg); err != nil {
		return nil, cli.NewExitError(cli.ExitConfig, err)
	}
	return cfg, nil
}

// applyExportFlags overrides configuration fields with flags the user
// actually set.
func applyExportFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("format") {
		cfg.Export.Format = exportFlags.format
	}
	if flags.Changed("compression") {
		cfg.Export.Compression = exportFlags.compression
	}
	if flags.Changed("row-group-size") {
		cfg.Export.RowGroupSize = exportFlags.rowGroupSize
	}
	if flags.Changed("driver") {
		cfg.Source.Driver = exportFlags.driver
	}
	if flags.Changed("dsn") {
		cfg.Source.DSN = exportFlags.dsn
	}
	if flags.Changed("query") {
		cfg.Source.Query = exportFlags.query
	}
	if flags.Changed("output") {
		cfg.Output.Path = exportFlags.output
	}
	if flags.Changed("overwrite") {
		cfg.Output.Overwrite = exportFlags.overwrite
	}
	if flags.Changed("log-level") {
		cfg.Telemetry.Logging.Level = exportFlags.logLevel
	}
	if flags.Changed("columns") {
		columns, err := parseColumnsFlag(exportFlags.columns)
		if err != nil {
			return cli.NewConfigError("columns", err.Error())
		}
		cfg.Columns = columns
	}

	return nil
}

// parseColumnsFlag parses the --columns value: a comma-separated list
// of source[:target] pairs. A pair without a target keeps its source
// name.
func parseColumnsFlag(spec string) ([]config.ColumnConfig, error) {
	var columns []config.ColumnConfig

	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		src, target, renamed := strings.Cut(part, ":")
		src = strings.TrimSpace(src)
		if src == "" {
			return nil, fmt.Errorf("column %q: source name must not be empty", part)
		}

		col := config.ColumnConfig{Source: src}
		if renamed {
			col.Target = strings.TrimSpace(target)
			if col.Target == "" {
				return nil, fmt.Errorf("column %q: target name must not be empty", part)
			}
		}
		columns = append(columns, col)
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("columns list is empty")
	}
	return columns, nil
}

// exportOutcome carries what one run produced, for summaries and
// metrics.
type exportOutcome struct {
	result   *export.Result
	written  int64 // bytes that reached the destination, post compression
	digest   uint64
	digested bool
	path     string // resolved output path, "-" for standard output
}

// runConfiguredExport executes one export described by cfg. The caller
// validates cfg first; parse failures here mean the run itself is
// broken, not the configuration.
func runConfiguredExport(ctx context.Context, cfg *config.Config, withDigest bool) (*exportOutcome, error) {
	format, err := export.ParseFormat(cfg.Export.Format)
	if err != nil {
		return nil, err
	}
	compression, err := sink.ParseCompression(cfg.Export.Compression)
	if err != nil {
		return nil, err
	}

	proj := projectionFromConfig(cfg.Columns)
	if err := proj.Validate(); err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	encoder, err := export.NewEncoder(format, proj, export.WithRowGroupSize(cfg.Export.RowGroupSize))
	if err != nil {
		return nil, err
	}

	src, err := source.OpenSQLSource(&source.SQLConfig{
		Driver:       cfg.Source.Driver,
		DSN:          cfg.Source.DSN,
		Query:        cfg.Source.Query,
		MaxOpenConns: cfg.Source.MaxOpenConns,
		MaxIdleConns: cfg.Source.MaxIdleConns,
	})
	if err != nil {
		return nil, err
	}

	path := outputPathFor(cfg.Output.Path, compression)
	dest, cleanup, err := openOutput(path, cfg.Output.Overwrite)
	if err != nil {
		// The pipeline never ran, so the source is still ours to release.
		src.Close()
		return nil, err
	}

	counter := sink.NewCountingWriter(dest)
	var w io.Writer = counter
	var digest *sink.DigestWriter
	if withDigest {
		digest = sink.NewDigestWriter(w)
		w = digest
	}

	compressed, err := sink.NewWriter(compression, w)
	if err != nil {
		src.Close()
		cleanup(false)
		return nil, err
	}

	pipeline := export.NewPipeline(src, encoder, compressed)
	result, runErr := pipeline.Run(ctx)

	// Close order: the compressor first so its final frame reaches the
	// destination before the file is closed and the digest is read.
	if cerr := compressed.Close(); cerr != nil && runErr == nil {
		runErr = fmt.Errorf("flush compressed output: %w", cerr)
	}
	if cerr := cleanup(runErr == nil); cerr != nil && runErr == nil {
		runErr = cerr
	}
	if runErr != nil {
		return nil, runErr
	}

	outcome := &exportOutcome{
		result:  result,
		written: counter.Count(),
		path:    path,
	}
	if digest != nil {
		outcome.digest = digest.Sum64()
		outcome.digested = true
	}
	return outcome, nil
}

// projectionFromConfig converts configured columns into the encoder
// projection. A column without a target keeps its source name.
func projectionFromConfig(columns []config.ColumnConfig) export.Projection {
	proj := make(export.Projection, 0, len(columns))
	for _, col := range columns {
		target := col.Target
		if target == "" {
			target = col.Source
		}
		proj = append(proj, export.Column{Source: col.Source, Target: target})
	}
	return proj
}

// outputPathFor appends the codec's conventional extension unless the
// path already carries it or the output is standard output.
func outputPathFor(path string, c sink.Compression) string {
	ext := c.Extension()
	if path == "-" || ext == "" || strings.HasSuffix(path, ext) {
		return path
	}
	return path + ext
}

// openOutput resolves the destination writer. The returned cleanup
// closes a file destination and, when the run failed, removes it: a
// failed export must not leave a half-written document behind.
func openOutput(path string, overwrite bool) (io.Writer, func(bool) error, error) {
	if path == "-" {
		return os.Stdout, func(bool) error { return nil }, nil
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return nil, nil, fmt.Errorf("output file %s already exists (use --overwrite to replace it)", path)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}

	cleanup := func(success bool) error {
		cerr := f.Close()
		if !success {
			os.Remove(path)
			return nil
		}
		if cerr != nil {
			return fmt.Errorf("close output file: %w", cerr)
		}
		return nil
	}
	return f, cleanup, nil
}

// newLogger builds the process logger from the telemetry section.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	return logging.New(logging.Config{
		Level:         cfg.Telemetry.Logging.Level,
		Format:        cfg.Telemetry.Logging.Format,
		RedactSecrets: true,
	})
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
