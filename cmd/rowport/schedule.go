package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"helios-data/rowport/pkg/cli"
	"helios-data/rowport/pkg/config"
	"helios-data/rowport/pkg/schedule"
	"helios-data/rowport/pkg/telemetry/health"
	"helios-data/rowport/pkg/telemetry/metrics"
)

var scheduleFlags struct {
	dryRun bool
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run exports on a cron schedule",
	Long: `Run the export scheduler: a long-lived process that executes the
configured export on a cron schedule.

With schedule.watch_config the process reloads its configuration when
the file changes on disk, so query or cadence edits apply without a
restart. With telemetry.metrics it serves Prometheus metrics and health
probes on a local listener. The process stops cleanly on SIGINT or
SIGTERM.

Examples:
  # Run the scheduler with the default config file
  rowport schedule

  # Validate the schedule configuration without starting
  rowport schedule --dry-run

  # Custom config location
  rowport schedule --config /etc/rowport/rowport.yaml`,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().BoolVar(&scheduleFlags.dryRun, "dry-run", false, "validate config without starting the scheduler")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewExitError(cli.ExitConfig, err)
	}
	cfg := config.GetConfig()

	if !cfg.Schedule.Enabled {
		return cli.NewConfigError("schedule.enabled",
			"the scheduler is disabled; enable it or use 'rowport export' for a one-shot run")
	}

	log, err := newLogger(cfg)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	log.Install()

	out := cli.NewOutput(quiet, verbose)

	if scheduleFlags.dryRun {
		out.Printf("✓ Configuration valid\n")
		out.Printf("✓ Schedule: %s\n", cfg.Schedule.Cron)
		return nil
	}

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	// Each tick re-reads the singleton so config reloads apply between
	// runs without touching a run already in progress.
	job := func(ctx context.Context) error {
		cfg := config.GetConfig()
		start := time.Now()

		outcome, err := runConfiguredExport(ctx, cfg, false)
		if err != nil {
			collector.RecordExport(cfg.Export.Format, "error", 0, 0, time.Since(start))
			return err
		}

		res := outcome.result
		collector.RecordExport(string(res.Format), "success", res.Rows, res.Bytes, res.Duration)
		return nil
	}

	ctx := cli.SetupSignalHandler()

	// The scheduler is replaced when a reload changes the cron
	// expression; every access goes through schedMu.
	var (
		schedMu     sync.Mutex
		scheduler   = schedule.NewScheduler(cfg.Schedule.Cron, job)
		currentCron = cfg.Schedule.Cron
	)
	if err := scheduler.Start(ctx); err != nil {
		return cli.NewCommandError("schedule", err)
	}

	out.Printf("✓ Scheduler started (%s)\n", currentCron)
	if next := scheduler.NextRun(); next != nil {
		out.Printf("✓ Next run: %s\n", next.Format(time.RFC3339))
	}

	var watcher *schedule.ConfigWatcher
	if cfg.Schedule.WatchConfig {
		watcher, err = schedule.NewConfigWatcher(cfgFile, 0)
		if err != nil {
			return cli.NewCommandError("schedule", err)
		}
		go func() {
			werr := watcher.Watch(ctx, func() error {
				if err := config.ReloadConfig(cfgFile); err != nil {
					return err
				}
				reloaded := config.GetConfig()

				schedMu.Lock()
				defer schedMu.Unlock()
				if reloaded.Schedule.Cron == currentCron {
					return nil
				}

				// The cadence changed: swap in a scheduler with the new
				// expression so it applies before the next tick.
				scheduler.Stop()
				next := schedule.NewScheduler(reloaded.Schedule.Cron, job)
				if err := next.Start(ctx); err != nil {
					return fmt.Errorf("restart scheduler with new cron: %w", err)
				}
				scheduler = next
				currentCron = reloaded.Schedule.Cron
				return nil
			})
			if werr != nil && ctx.Err() == nil {
				log.Error("config watcher stopped", "error", werr)
			}
		}()
		out.Printf("✓ Watching %s for changes\n", cfgFile)
	}

	checker := health.New(0)
	checker.RegisterCheck("scheduler", func(ctx context.Context) error {
		schedMu.Lock()
		s := scheduler
		schedMu.Unlock()
		if !s.IsRunning() {
			return fmt.Errorf("scheduler is not running")
		}
		return nil
	})
	checker.RegisterCheck("database", func(ctx context.Context) error {
		cfg := config.GetConfig()
		db, err := sql.Open(cfg.Source.Driver, cfg.Source.DSN)
		if err != nil {
			return err
		}
		defer db.Close()
		return db.PingContext(ctx)
	})

	var srv *http.Server
	errChan := make(chan error, 1)
	if cfg.Telemetry.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
		health.Mount(mux, checker, Version, GitCommit, BuildDate)

		srv = &http.Server{
			Addr:              cfg.Telemetry.Metrics.ListenAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- fmt.Errorf("metrics listener: %w", err)
			}
		}()
		out.Printf("✓ Metrics: http://%s%s\n", cfg.Telemetry.Metrics.ListenAddress, cfg.Telemetry.Metrics.Path)
	}

	out.Printf("\nPress Ctrl+C to stop\n")

	select {
	case err := <-errChan:
		return cli.NewCommandError("schedule", err)
	case <-ctx.Done():
	}

	out.Printf("\nShutting down...\n")

	if watcher != nil {
		if err := watcher.Stop(); err != nil {
			log.Error("config watcher shutdown failed", "error", err)
		}
	}

	schedMu.Lock()
	scheduler.Stop()
	schedMu.Unlock()

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("metrics listener shutdown failed", "error", err)
		}
	}

	out.Printf("✓ Scheduler stopped\n")
	return nil
}
