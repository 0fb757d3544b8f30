// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package loads a .env file on first use (when present) and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/simplehttp/core/config"
//
//	type AppConfig struct {
//		AppName  string `env:"APP_NAME" envDefault:"simplehttp"`
//		LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
//
//		Server  server.Config
//		Session session.Config
//	}
//
//	func main() {
//		var cfg AppConfig
//		config.MustLoad(&cfg)
//	}
//
// Nested structs without an env tag are parsed recursively, so each package can
// ship its own Config type and applications compose them.
package config
