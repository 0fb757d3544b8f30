package router

import (
	"log/slog"

	"github.com/dmitrymomot/simplehttp/core/cookie"
	"github.com/dmitrymomot/simplehttp/core/session"
)

// ErrorHandler observes handler errors and recovered panics. It may adjust the
// response through ctx before it is flushed.
type ErrorHandler func(ctx *Context, err error)

// Option configures a Mux during creation.
type Option func(*Mux)

// WithLogger sets the logger for request and fault logging.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mux) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithSessionStore shares a session store instead of a per-mux MemoryStore.
func WithSessionStore(store session.Store) Option {
	return func(m *Mux) {
		if store != nil {
			m.store = store
		}
	}
}

// WithErrorHandler sets a handler for handler errors and recovered panics.
func WithErrorHandler(h ErrorHandler) Option {
	return func(m *Mux) {
		if h != nil {
			m.errorHandler = h
		}
	}
}

// WithMaxBodyBytes rejects request bodies declaring more than n bytes with 413.
// Zero disables the limit.
func WithMaxBodyBytes(n int64) Option {
	return func(m *Mux) {
		if n >= 0 {
			m.maxBodyBytes = n
		}
	}
}

// WithSessionCookieName sets the cookie carrying the session identifier.
func WithSessionCookieName(name string) Option {
	return func(m *Mux) {
		if name != "" {
			m.cookieName = name
		}
	}
}

// WithCookieOptions sets attributes appended to the session Set-Cookie header.
func WithCookieOptions(o cookie.Options) Option {
	return func(m *Mux) {
		m.cookieOptions = o
	}
}

// WithRequestIDHeader sets the header a request id is read from.
func WithRequestIDHeader(name string) Option {
	return func(m *Mux) {
		if name != "" {
			m.requestIDHeader = name
		}
	}
}
