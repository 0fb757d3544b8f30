package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/simplehttp/core/health"
	"github.com/dmitrymomot/simplehttp/core/router"
)

func registerRoutes(mux *router.Mux, log *slog.Logger, checks ...func(context.Context) error) {
	mux.Get("/", getExample)
	mux.Post("/", postExample)

	mux.Get("/params", paramsExample)
	mux.Post("/params", paramsExample)

	mux.Get("/cookies", cookiesExample)
	mux.Post("/cookies", cookiesExample)

	mux.Get("/session", sessionExample)
	mux.Post("/session", sessionExample)

	mux.Get("/live", health.Liveness)
	mux.Get("/ready", health.Readiness(log, checks...))
}

func getExample(ctx *router.Context) error {
	ctx.Append("Hello World!\n")
	ctx.Append("It's a GET example.\n")
	ctx.Append("Request Header:\n")
	ctx.Append(ctx.Header())
	ctx.SetStatus(http.StatusOK)
	return nil
}

func postExample(ctx *router.Context) error {
	ctx.Append("Hello World!\n")
	ctx.Append("It's a POST example.\n")
	ctx.Append("Request Header:\n")
	ctx.Append(ctx.Header())
	ctx.Append("Request Payload:\n")
	ctx.Append(ctx.Body())
	ctx.AddHeader("Content-Type", "text/plain")
	ctx.SetStatus(http.StatusOK)
	return nil
}

func paramsExample(ctx *router.Context) error {
	ctx.Append("Parameters:\n")
	ctx.Append(ctx.Params())
	ctx.Append("\n")
	ctx.AddHeader("Content-Type", "text/plain")
	ctx.SetStatus(http.StatusOK)
	return nil
}

func cookiesExample(ctx *router.Context) error {
	ctx.Append("Cookies:\n")
	ctx.Append(ctx.Cookies().Values())
	ctx.Append("\n")
	ctx.AddHeader("Content-Type", "text/plain")
	ctx.SetStatus(http.StatusOK)
	return nil
}

func sessionExample(ctx *router.Context) error {
	if _, err := ctx.SessionStart(); err != nil {
		return err
	}
	ctx.Session().Update(ctx.Params())

	ctx.Append("session data:\n")
	ctx.Append(ctx.Session().Values())
	ctx.Append("\n")
	ctx.AddHeader("Content-Type", "text/plain")
	ctx.SetStatus(http.StatusOK)
	return nil
}
