// Package health provides handlers for service health monitoring.
//
// Handlers:
//   - Liveness: process is running (no dependency checks)
//   - Readiness: all dependencies are available
//   - NoContent: 204 for minimal overhead
//
// Usage:
//
//	mux.Get("/live", health.Liveness)
//	mux.Get("/ready", health.Readiness(log, pg.Healthcheck(pool), redis.Healthcheck(client)))
//	mux.Get("/ping", health.NoContent)
//
// Dependency checks follow the func(context.Context) error signature.
package health
