package health

import (
	"net/http"

	"github.com/dmitrymomot/simplehttp/core/router"
)

// Liveness indicates if the service process is running.
// Always answers "ALIVE" with 200 OK. No dependency checks.
//
//	mux.Get("/live", health.Liveness)
func Liveness(ctx *router.Context) error {
	ctx.SetStatus(http.StatusOK)
	ctx.AddHeader("Content-Type", "text/plain; charset=utf-8")
	ctx.Append("ALIVE")
	return nil
}

// NoContent answers 204 without a body.
func NoContent(ctx *router.Context) error {
	ctx.SetStatus(http.StatusNoContent)
	return nil
}
