// Package router dispatches HTTP requests to handlers registered by method and
// exact path, with buffered responses and cookie-based sessions.
//
// # Basic Usage
//
//	mux := router.New(router.WithLogger(log))
//
//	mux.Get("/params", func(ctx *router.Context) error {
//		ctx.SetStatus(http.StatusOK)
//		ctx.Append(ctx.Params())
//		return nil
//	})
//
//	http.ListenAndServe(":8000", mux)
//
// Paths match exactly; "/users" and "/users/" are different routes and there
// are no parameters or wildcards. A request whose method has no routes gets 405,
// with an Allow header when other methods serve the path. A request whose method
// has routes but not for the path gets 404.
//
// # Request Data
//
// Query parameters and, for POST, PUT and PATCH, application/json objects or
// application/x-www-form-urlencoded bodies are merged into ctx.Params(), body
// keys winning. Those methods must send a numeric Content-Length or the request
// is answered with 411 before any handler runs. Bodies that fail to decode are
// ignored and logged at debug level.
//
// # Responses
//
// Handlers write into a response.Buffer. The status starts at 500, so a handler
// that sets nothing reports an internal error. The buffer is flushed once after
// the handler returns, with a computed Content-Length.
//
// # Sessions
//
//	mux.Get("/session", func(ctx *router.Context) error {
//		found, err := ctx.SessionStart()
//		if err != nil {
//			return err
//		}
//		if !found {
//			ctx.Session().Set("visits", 0)
//		}
//		...
//	})
//
// SessionStart binds the session named by the "session" cookie or creates one
// and queues "Set-Cookie: session=<id>;". Each Mux owns a session.MemoryStore
// unless WithSessionStore supplies a shared or persistent one; stores that also
// implement session.Saver are saved after the handler returns.
//
// # Faults
//
// Handler errors and panics are logged, panics with their stack, and passed to
// the ErrorHandler set by WithErrorHandler. The response keeps whatever the
// handler buffered before failing. Use errors.As with PanicError to tell panics
// apart.
package router
