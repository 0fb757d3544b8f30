package router

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/simplehttp/core/cookie"
	"github.com/dmitrymomot/simplehttp/core/logger"
	"github.com/dmitrymomot/simplehttp/core/session"
)

// DefaultRequestIDHeader is read for an incoming request id.
const DefaultRequestIDHeader = "X-Request-ID"

// Mux dispatches requests to handlers registered by method and exact path.
//
// For each request it parses the path, query, cookies and, for POST, PUT and
// PATCH, the body; resolves the handler; runs it with panic recovery; persists
// the bound session; and flushes the buffered response exactly once.
type Mux struct {
	table           *Table
	store           session.Store
	errorHandler    ErrorHandler
	logger          *slog.Logger
	maxBodyBytes    int64
	cookieName      string
	cookieOptions   cookie.Options
	requestIDHeader string
}

// New creates a Mux. Without WithSessionStore it owns a fresh MemoryStore.
func New(opts ...Option) *Mux {
	m := &Mux{
		table:           NewTable(),
		errorHandler:    func(*Context, error) {},
		logger:          logger.Discard(),
		cookieName:      session.DefaultCookieName,
		requestIDHeader: DefaultRequestIDHeader,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = session.NewMemoryStore(session.WithLogger(m.logger))
	}

	return m
}

// NewDefault creates a Mux with DumpInfo registered for GET and POST on "/".
func NewDefault(opts ...Option) *Mux {
	m := New(opts...)
	m.Get("/", DumpInfo)
	m.Post("/", DumpInfo)
	return m
}

// Handle registers h for method and path. Later registrations replace earlier ones.
func (m *Mux) Handle(method, path string, h HandlerFunc) {
	m.table.Register(method, path, h)
}

// Get registers a handler for GET requests.
func (m *Mux) Get(path string, h HandlerFunc) {
	m.Handle(http.MethodGet, path, h)
}

// Post registers a handler for POST requests.
func (m *Mux) Post(path string, h HandlerFunc) {
	m.Handle(http.MethodPost, path, h)
}

// Put registers a handler for PUT requests.
func (m *Mux) Put(path string, h HandlerFunc) {
	m.Handle(http.MethodPut, path, h)
}

// Patch registers a handler for PATCH requests.
func (m *Mux) Patch(path string, h HandlerFunc) {
	m.Handle(http.MethodPatch, path, h)
}

// Delete registers a handler for DELETE requests.
func (m *Mux) Delete(path string, h HandlerFunc) {
	m.Handle(http.MethodDelete, path, h)
}

// Routes lists the registered routes.
func (m *Mux) Routes() []Route {
	return m.table.Routes()
}

// SessionStore returns the store sessions are created in.
func (m *Mux) SessionStore() session.Store {
	return m.store
}

// ServeHTTP implements http.Handler.
func (m *Mux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := newContext(m, r)
	defer ctx.release()

	if hasBody(r.Method) {
		if status, err := ctx.readBody(m.maxBodyBytes); err != nil {
			m.logger.WarnContext(ctx, "request rejected",
				logger.Error(err),
				logger.RequestID(ctx.requestID),
				logger.Method(r.Method),
				logger.Path(ctx.path))
			ctx.resp.SetStatus(status)
			m.flush(w, ctx, start)
			return
		}
		ctx.parseBody()
	}

	h, err := m.table.Resolve(r.Method, ctx.path)
	switch {
	case errors.Is(err, ErrMethodNotAllowed):
		if allowed := m.table.Allowed(ctx.path); len(allowed) > 0 {
			ctx.resp.AddHeader("Allow", strings.Join(allowed, ", "))
		}
		ctx.resp.SetStatus(http.StatusMethodNotAllowed)
	case errors.Is(err, ErrNotFound):
		ctx.resp.SetStatus(http.StatusNotFound)
	default:
		if err := m.invoke(ctx, h); err != nil {
			m.handleError(ctx, err)
		}
		m.saveSession(ctx)
	}

	m.flush(w, ctx, start)
}

// invoke runs h, converting a panic into a PanicError.
func (m *Mux) invoke(ctx *Context, h HandlerFunc) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &panicError{value: p, stack: debug.Stack()}
		}
	}()
	return h(ctx)
}

func (m *Mux) handleError(ctx *Context, err error) {
	attrs := []any{
		logger.Error(err),
		logger.RequestID(ctx.requestID),
		logger.Method(ctx.Method()),
		logger.Path(ctx.path),
	}

	var pe PanicError
	if errors.As(err, &pe) {
		attrs = append(attrs, logger.Panic(pe.Value()), logger.Stack(pe.Stack()))
		m.logger.ErrorContext(ctx, "handler panicked", attrs...)
	} else {
		m.logger.ErrorContext(ctx, "handler failed", attrs...)
	}

	m.errorHandler(ctx, err)
}

// saveSession writes the bound session back for stores that hold copies.
func (m *Mux) saveSession(ctx *Context) {
	if ctx.session == nil {
		return
	}
	saver, ok := m.store.(session.Saver)
	if !ok {
		return
	}
	if err := saver.Save(ctx, ctx.session); err != nil {
		m.logger.ErrorContext(ctx, "failed to save session",
			logger.Error(err),
			logger.RequestID(ctx.requestID),
			logger.SessionID(ctx.session.ID()))
	}
}

func (m *Mux) flush(w http.ResponseWriter, ctx *Context, start time.Time) {
	status := ctx.resp.EffectiveStatus()

	n, err := ctx.resp.Flush(w)
	if err != nil {
		m.logger.WarnContext(ctx, "failed to write response",
			logger.Error(err),
			logger.RequestID(ctx.requestID))
	}

	m.logger.InfoContext(ctx, "request",
		logger.RequestID(ctx.requestID),
		logger.Method(ctx.Method()),
		logger.Path(ctx.path),
		logger.StatusCode(status),
		logger.BytesIn(int64(len(ctx.body))),
		logger.BytesOut(int64(n)),
		logger.Duration(time.Since(start)),
		logger.RemoteAddr(ctx.r.RemoteAddr))
}

func (m *Mux) requestID(r *http.Request) string {
	if id := r.Header.Get(m.requestIDHeader); id != "" {
		return id
	}
	return uuid.NewString()
}

// hasBody reports whether the dispatcher reads a body for method.
func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}
