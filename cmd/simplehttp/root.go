package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/simplehttp/core/cookie"
	"github.com/dmitrymomot/simplehttp/core/logger"
	"github.com/dmitrymomot/simplehttp/core/router"
	"github.com/dmitrymomot/simplehttp/core/server"
)

func newRootCmd() *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "simplehttp [port]",
		Short: "Run the example HTTP server",
		Long: `Run an HTTP server with example routes for parameters, cookies and
sessions. Settings are read from the environment (and a .env file); the bind
flag and the port argument override SERVER_BIND and SERVER_PORT.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := applyArgs(&cfg, bind, cmd.Flags().Changed("bind"), args); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&bind, "bind", "b", "", "Specify alternate bind address [default: all interfaces]")

	return cmd
}

// applyArgs overrides the listen address from the command line.
func applyArgs(cfg *appConfig, bind string, bindSet bool, args []string) error {
	if bindSet {
		cfg.Server.Bind = bind
	}
	if len(args) > 0 {
		port, err := strconv.Atoi(args[0])
		if err != nil || port < 0 || port > 65535 {
			return fmt.Errorf("invalid port %q", args[0])
		}
		cfg.Server.Port = port
	}
	return nil
}

func run(ctx context.Context, cfg appConfig) error {
	log := logger.New(
		logger.ForEnv(cfg.Env, cfg.AppName),
		logger.WithLevelString(cfg.LogLevel),
	)

	if err := cfg.Session.Validate(); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	backend, err := openSessionBackend(ctx, g, cfg, log)
	if err != nil {
		return err
	}
	defer backend.close()

	mux := router.NewFromConfig(cfg.Router,
		router.WithLogger(log),
		router.WithSessionStore(backend.store),
		router.WithSessionCookieName(cfg.Session.CookieName),
		router.WithCookieOptions(cookie.NewFromConfig(cfg.Cookie)),
	)
	registerRoutes(mux, log, backend.checks...)

	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "routes registered", logger.Count("routes", len(mux.Routes())),
		logger.Component("simplehttp"))

	g.Go(srv.Run(ctx, mux))

	return g.Wait()
}
