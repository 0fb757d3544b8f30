package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/simplehttp/core/logger"
	"github.com/dmitrymomot/simplehttp/core/router"
)

// Readiness verifies all service dependencies are functioning.
// Answers "READY" if all checks pass, 503 Service Unavailable if any fail.
//
//	mux.Get("/ready", health.Readiness(log,
//		pg.Healthcheck(pool),
//		redis.Healthcheck(client),
//	))
func Readiness(log *slog.Logger, fn ...func(context.Context) error) router.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(ctx *router.Context) error {
		ctx.AddHeader("Content-Type", "text/plain; charset=utf-8")

		for _, f := range fn {
			if err := f(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed", logger.Error(err))
				ctx.SetStatus(http.StatusServiceUnavailable)
				ctx.Append(http.StatusText(http.StatusServiceUnavailable))
				return nil
			}
		}

		ctx.SetStatus(http.StatusOK)
		ctx.Append("READY")
		return nil
	}
}
