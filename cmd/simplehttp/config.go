package main

import (
	"github.com/dmitrymomot/simplehttp/core/config"
	"github.com/dmitrymomot/simplehttp/core/cookie"
	"github.com/dmitrymomot/simplehttp/core/router"
	"github.com/dmitrymomot/simplehttp/core/server"
	"github.com/dmitrymomot/simplehttp/core/session"
	"github.com/dmitrymomot/simplehttp/integration/database/pg"
	"github.com/dmitrymomot/simplehttp/integration/database/redis"
)

type appConfig struct {
	AppName  string `env:"APP_NAME" envDefault:"simplehttp"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:""`

	Server   server.Config
	Router   router.Config
	Session  session.Config
	Cookie   cookie.Config
	Redis    redis.Config
	Postgres pg.Config
}

func loadConfig() (appConfig, error) {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return appConfig{}, err
	}
	return cfg, nil
}
