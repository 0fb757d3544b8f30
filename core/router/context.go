package router

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/simplehttp/core/cookie"
	"github.com/dmitrymomot/simplehttp/core/logger"
	"github.com/dmitrymomot/simplehttp/core/params"
	"github.com/dmitrymomot/simplehttp/core/response"
	"github.com/dmitrymomot/simplehttp/core/session"
)

// Context carries one request through the dispatcher: the parsed request data,
// the response buffer handlers write into and the lazily bound session.
// It implements context.Context by delegating to the request context.
type Context struct {
	r   *http.Request
	mux *Mux

	requestID string
	path      string
	fragment  string
	query     params.Params
	params    params.Params
	cookies   cookie.Cookies
	body      []byte

	resp *response.Buffer

	session        *session.Session
	sessionExisted bool
}

func newContext(m *Mux, r *http.Request) *Context {
	query := params.ParseQuery(r.URL.RawQuery)

	merged := make(params.Params, len(query))
	merged.Merge(query)

	return &Context{
		r:         r,
		mux:       m,
		requestID: m.requestID(r),
		path:      r.URL.EscapedPath(),
		fragment:  r.URL.Fragment,
		query:     query,
		params:    merged,
		cookies:   cookie.Parse(r.Header.Values("Cookie")),
		resp:      response.NewBuffer(),
	}
}

// Deadline implements context.Context.
func (c *Context) Deadline() (time.Time, bool) {
	return c.r.Context().Deadline()
}

// Done implements context.Context.
func (c *Context) Done() <-chan struct{} {
	return c.r.Context().Done()
}

// Err implements context.Context.
func (c *Context) Err() error {
	return c.r.Context().Err()
}

// Value implements context.Context.
func (c *Context) Value(key any) any {
	return c.r.Context().Value(key)
}

// Request returns the underlying request.
func (c *Context) Request() *http.Request {
	return c.r
}

// RequestID returns the X-Request-ID value or the identifier generated for this request.
func (c *Context) RequestID() string {
	return c.requestID
}

// Method returns the request method.
func (c *Context) Method() string {
	return c.r.Method
}

// Path returns the request path as sent, without query or fragment.
// Percent escapes are not decoded, so routes match the raw path.
func (c *Context) Path() string {
	return c.path
}

// Fragment returns the URL fragment, which is usually empty on server requests.
func (c *Context) Fragment() string {
	return c.fragment
}

// Header returns the request headers.
func (c *Context) Header() http.Header {
	return c.r.Header
}

// Query returns the decoded query string parameters.
func (c *Context) Query() params.Params {
	return c.query
}

// Params returns query parameters merged with decoded body parameters.
// Body keys win over query keys.
func (c *Context) Params() params.Params {
	return c.params
}

// Param returns a merged parameter rendered as a string.
func (c *Context) Param(key string) string {
	return c.params.String(key)
}

// Cookies returns the parsed request cookies.
func (c *Context) Cookies() cookie.Cookies {
	return c.cookies
}

// Body returns the raw request body. It is nil for methods that carry no body.
func (c *Context) Body() []byte {
	return c.body
}

// Response returns the buffer that is flushed after the handler returns.
func (c *Context) Response() *response.Buffer {
	return c.resp
}

// SetStatus sets the response status code.
func (c *Context) SetStatus(code int) {
	c.resp.SetStatus(code)
}

// Status returns the response status code set so far.
func (c *Context) Status() int {
	return c.resp.Status()
}

// AddHeader appends a response header. Repeated keys are kept.
func (c *Context) AddHeader(key, value string) {
	c.resp.AddHeader(key, value)
}

// Append adds v to the response body; see response.Buffer.Append.
func (c *Context) Append(v any) {
	c.resp.Append(v)
}

// Write implements io.Writer on the response body.
func (c *Context) Write(p []byte) (int, error) {
	return c.resp.Write(p)
}

// Session returns the session bound by SessionStart, or nil.
func (c *Context) Session() *session.Session {
	return c.session
}

// SessionStart binds the client's session to the request.
//
// When the request carries a known session cookie, that session is bound and
// SessionStart reports true. Otherwise a new session is created, a Set-Cookie
// header is queued and it reports false. Later calls in the same request return
// the first result without touching the store again.
func (c *Context) SessionStart() (bool, error) {
	if c.session != nil {
		return c.sessionExisted, nil
	}

	store := c.mux.store

	if id, ok := c.cookies.Get(c.mux.cookieName); ok && session.ValidID(id) {
		s, err := store.Get(c, id)
		switch {
		case err == nil:
			c.session = s
			c.sessionExisted = true
			return true, nil
		case !errors.Is(err, session.ErrNotFound) && !errors.Is(err, session.ErrInvalidID):
			return false, err
		}
		c.mux.logger.DebugContext(c, "unknown session identifier, starting new session",
			logger.RequestID(c.requestID))
	}

	id, err := store.Create(c)
	if err != nil {
		return false, err
	}
	s, err := store.Get(c, id)
	if err != nil {
		return false, err
	}

	c.resp.AddHeader("Set-Cookie", cookie.Format(c.mux.cookieName, id, c.mux.cookieOptions))
	c.session = s
	c.sessionExisted = false
	return false, nil
}

// readBody reads exactly Content-Length bytes, or fewer if the stream ends.
// It returns the status to short-circuit with on failure.
func (c *Context) readBody(limit int64) (int, error) {
	raw := strings.TrimSpace(c.r.Header.Get("Content-Length"))
	n, err := strconv.ParseInt(raw, 10, 64)
	if raw == "" || err != nil || n < 0 {
		return http.StatusLengthRequired, fmt.Errorf("%w: content-length %q", ErrLengthRequired, raw)
	}
	if limit > 0 && n > limit {
		return http.StatusRequestEntityTooLarge, fmt.Errorf("%w: %d > %d", ErrBodyTooLarge, n, limit)
	}

	if c.r.Body == nil || n == 0 {
		c.body = []byte{}
		return 0, nil
	}

	body, err := io.ReadAll(io.LimitReader(c.r.Body, n))
	if err != nil {
		return http.StatusBadRequest, errors.Join(ErrBodyRead, err)
	}
	c.body = body
	return 0, nil
}

// parseBody merges JSON or form-encoded body parameters over the query parameters.
func (c *Context) parseBody() {
	decoded, err := params.DecodeBody(c.r.Header.Get("Content-Type"), c.body)
	if err != nil {
		if !errors.Is(err, params.ErrUnsupportedMediaType) {
			c.mux.logger.DebugContext(c, "request body ignored",
				logger.Error(err),
				logger.RequestID(c.requestID),
				logger.Path(c.path))
		}
		return
	}
	c.params.Merge(decoded)
}

// release drops per-request state once the response is flushed.
func (c *Context) release() {
	c.body = nil
	c.session = nil
	c.sessionExisted = false
}
