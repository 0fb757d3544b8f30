package cookie

import "net/http"

// Config provides environment-based configuration for Set-Cookie attributes.
// All defaults are empty so the session cookie is emitted as a bare "name=value;".
type Config struct {
	Path     string        `env:"COOKIE_PATH" envDefault:""`
	Domain   string        `env:"COOKIE_DOMAIN" envDefault:""`
	MaxAge   int           `env:"COOKIE_MAX_AGE" envDefault:"0"`
	Secure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
	HttpOnly bool          `env:"COOKIE_HTTP_ONLY" envDefault:"false"`
	SameSite http.SameSite `env:"COOKIE_SAME_SITE" envDefault:"0"`
}

// DefaultConfig returns a Config that adds no attributes.
func DefaultConfig() Config {
	return Config{}
}

// NewFromConfig builds Options from configuration.
// Only non-zero config values are applied; opts override them.
func NewFromConfig(cfg Config, opts ...Option) Options {
	configOpts := make([]Option, 0, 6)

	if cfg.Path != "" {
		configOpts = append(configOpts, WithPath(cfg.Path))
	}
	if cfg.Domain != "" {
		configOpts = append(configOpts, WithDomain(cfg.Domain))
	}
	if cfg.MaxAge != 0 {
		configOpts = append(configOpts, WithMaxAge(cfg.MaxAge))
	}
	if cfg.Secure {
		configOpts = append(configOpts, WithSecure(true))
	}
	if cfg.HttpOnly {
		configOpts = append(configOpts, WithHTTPOnly(true))
	}
	if cfg.SameSite != 0 {
		configOpts = append(configOpts, WithSameSite(cfg.SameSite))
	}

	configOpts = append(configOpts, opts...)
	return applyOptions(Options{}, configOpts)
}
