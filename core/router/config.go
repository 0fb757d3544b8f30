package router

// Config provides environment-based dispatcher configuration.
type Config struct {
	MaxBodyBytes    int64  `env:"HTTP_MAX_BODY_BYTES" envDefault:"0"`
	RequestIDHeader string `env:"HTTP_REQUEST_ID_HEADER" envDefault:"X-Request-ID"`
}

// DefaultConfig returns a Config with no body limit.
func DefaultConfig() Config {
	return Config{RequestIDHeader: DefaultRequestIDHeader}
}

// NewFromConfig creates a Mux from configuration. Additional options override config values.
func NewFromConfig(cfg Config, opts ...Option) *Mux {
	configOpts := []Option{
		WithMaxBodyBytes(cfg.MaxBodyBytes),
		WithRequestIDHeader(cfg.RequestIDHeader),
	}
	return New(append(configOpts, opts...)...)
}
