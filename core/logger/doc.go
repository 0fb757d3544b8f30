// Package logger provides structured logging utilities built on Go's standard slog package.
//
// New builds a *slog.Logger from functional options; the attribute helpers give the
// rest of the module a shared vocabulary for log keys.
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/simplehttp/core/logger"
//
//	log := logger.New(logger.WithDevelopment("simplehttp"))
//
//	log.Info("request handled",
//		logger.Method("GET"),
//		logger.Path("/params"),
//		logger.StatusCode(200),
//		logger.Duration(time.Since(start)),
//	)
//
// # Environment Configurations
//
//	// Development: text format, debug level, source locations
//	log := logger.New(logger.WithDevelopment("simplehttp"))
//
//	// Production: JSON format, info level
//	log := logger.New(logger.WithProduction("simplehttp"))
//
//	// Pick one from APP_ENV, then override the level from LOG_LEVEL
//	log := logger.New(logger.ForEnv(cfg.Env, cfg.AppName), logger.WithLevelString(cfg.LogLevel))
//
// # Nil Safety
//
// Helpers such as Error, RequestID and SessionID return an empty slog.Attr for zero
// input, which slog silently drops:
//
//	log.Error("handler failed", logger.Error(err), logger.SessionID(id))
//
// Library packages in this module default to Discard and accept a WithLogger option.
package logger
