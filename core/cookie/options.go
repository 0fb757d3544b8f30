package cookie

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Options configures the attributes appended to a Set-Cookie header.
// The zero value adds no attributes at all.
type Options struct {
	Path     string
	Domain   string
	MaxAge   int
	Secure   bool
	HttpOnly bool
	SameSite http.SameSite
}

// Option is a functional option for configuring cookie options.
type Option func(*Options)

// WithPath sets the cookie path attribute.
func WithPath(path string) Option {
	return func(o *Options) {
		o.Path = path
	}
}

// WithDomain sets the cookie domain attribute.
func WithDomain(domain string) Option {
	return func(o *Options) {
		o.Domain = domain
	}
}

// WithMaxAge sets the cookie max-age in seconds.
// Negative values delete the cookie immediately.
func WithMaxAge(seconds int) Option {
	return func(o *Options) {
		o.MaxAge = seconds
	}
}

// WithSecure sets the secure flag, ensuring cookies are only sent over HTTPS.
func WithSecure(secure bool) Option {
	return func(o *Options) {
		o.Secure = secure
	}
}

// WithHTTPOnly prevents JavaScript access to the cookie.
func WithHTTPOnly(httpOnly bool) Option {
	return func(o *Options) {
		o.HttpOnly = httpOnly
	}
}

// WithSameSite sets the SameSite attribute.
func WithSameSite(sameSite http.SameSite) Option {
	return func(o *Options) {
		o.SameSite = sameSite
	}
}

// NewOptions applies opts to the zero Options.
func NewOptions(opts ...Option) Options {
	return applyOptions(Options{}, opts)
}

// applyOptions copies base before applying modifications so shared defaults stay untouched.
func applyOptions(base Options, opts []Option) Options {
	result := base
	for _, opt := range opts {
		opt(&result)
	}
	return result
}

// Format renders a Set-Cookie header value: "name=value;" followed by one
// " Attr=value;" pair per configured attribute.
func Format(name, value string, o Options) string {
	var b strings.Builder
	b.WriteString(url.PathEscape(name))
	b.WriteByte('=')
	b.WriteString(url.PathEscape(value))
	b.WriteByte(';')

	if o.Path != "" {
		b.WriteString(" Path=" + o.Path + ";")
	}
	if o.Domain != "" {
		b.WriteString(" Domain=" + o.Domain + ";")
	}
	switch {
	case o.MaxAge > 0:
		b.WriteString(" Max-Age=" + strconv.Itoa(o.MaxAge) + ";")
	case o.MaxAge < 0:
		b.WriteString(" Max-Age=0;")
	}
	if o.Secure {
		b.WriteString(" Secure;")
	}
	if o.HttpOnly {
		b.WriteString(" HttpOnly;")
	}
	switch o.SameSite {
	case http.SameSiteLaxMode:
		b.WriteString(" SameSite=Lax;")
	case http.SameSiteStrictMode:
		b.WriteString(" SameSite=Strict;")
	case http.SameSiteNoneMode:
		b.WriteString(" SameSite=None;")
	}

	return b.String()
}
