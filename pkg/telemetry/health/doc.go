// Package health provides health check endpoints for the schedule daemon.
//
// # Overview
//
// The health package implements liveness and readiness probes along with a
// version information endpoint. One-shot exports never open a listener;
// the schedule command mounts these endpoints on the same mux as the
// Prometheus metrics handler.
//
// # Endpoints
//
//   - /health: Liveness probe - indicates if the process is running
//   - /ready: Readiness probe - indicates if the daemon can export
//   - /version: Build information - version, commit, build time
//
// # Usage
//
//	checker := health.New(5 * time.Second)
//
//	// Register component checks
//	checker.RegisterCheck("database", func(ctx context.Context) error {
//	    return db.PingContext(ctx)
//	})
//	checker.RegisterCheck("scheduler", func(ctx context.Context) error {
//	    if !scheduler.IsRunning() {
//	        return errors.New("scheduler stopped")
//	    }
//	    return nil
//	})
//
//	// Mount on the metrics mux
//	health.Mount(mux, checker, version, commit, buildTime)
//
// # Liveness vs Readiness
//
// Liveness (/health) only proves the process is alive; it never touches
// the database and always returns 200 while the daemon runs.
//
// Readiness (/ready) runs all registered checks concurrently with a
// per-check timeout. It returns 200 when every check passes and 503 when
// any check fails, so orchestrators can hold traffic (or alerts) until
// the source database is reachable again.
//
// # Example Responses
//
// Readiness response (/ready):
//
//	{
//	    "status": "ready",
//	    "checks": {
//	        "database": {"status": "ok"},
//	        "scheduler": {"status": "ok"}
//	    },
//	    "timestamp": "2026-08-25T10:30:00Z"
//	}
//
// Degraded response (/ready):
//
//	{
//	    "status": "degraded",
//	    "checks": {
//	        "database": {"status": "unhealthy", "message": "connection refused"},
//	        "scheduler": {"status": "ok"}
//	    },
//	    "timestamp": "2026-08-25T10:30:00Z"
//	}
package health
