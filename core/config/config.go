package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNilConfig is returned when Load receives a nil pointer.
var ErrNilConfig = errors.New("config target must be a non-nil pointer")

var (
	dotenvOnce sync.Once

	mu    sync.Mutex
	cache = make(map[reflect.Type]any)
)

// Load populates cfg from environment variables, reading a .env file on first use.
// The first successful result for each type is cached and copied into later targets.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilConfig
	}

	dotenvOnce.Do(func() {
		// A missing .env file is the normal case outside local development.
		_ = godotenv.Load()
	})

	typ := reflect.TypeOf(cfg).Elem()

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := cache[typ]; ok {
		*cfg = cached.(T)
		return nil
	}

	var loaded T
	if err := env.Parse(&loaded); err != nil {
		return fmt.Errorf("parse %s from environment: %w", typ, err)
	}

	cache[typ] = loaded
	*cfg = loaded
	return nil
}

// MustLoad is like Load but panics on failure. Intended for program startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// resetCache drops every cached configuration.
func resetCache() {
	mu.Lock()
	defer mu.Unlock()
	cache = make(map[reflect.Type]any)
}
