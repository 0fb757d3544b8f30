package router_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/simplehttp/core/logger"
	"github.com/dmitrymomot/simplehttp/core/params"
	"github.com/dmitrymomot/simplehttp/core/router"
)

type request struct {
	method  string
	target  string
	body    string
	headers map[string]string
}

func serve(t *testing.T, h http.Handler, req request) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if req.body != "" {
		body = strings.NewReader(req.body)
	}
	r := httptest.NewRequest(req.method, req.target, body)
	for k, v := range req.headers {
		r.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func withLength(body string, extra map[string]string) map[string]string {
	h := map[string]string{"Content-Length": strconv.Itoa(len(body))}
	for k, v := range extra {
		h[k] = v
	}
	return h
}

func TestMux_Dispatch(t *testing.T) {
	t.Parallel()

	t.Run("registered route runs exactly once", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		mux := router.New()
		mux.Get("/hello", func(ctx *router.Context) error {
			calls.Add(1)
			ctx.SetStatus(http.StatusOK)
			ctx.Append("hi")
			return nil
		})

		rec := serve(t, mux, request{method: http.MethodGet, target: "/hello"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "hi", rec.Body.String())
		assert.Equal(t, "2", rec.Header().Get("Content-Length"))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("unknown path under registered method is 404 with empty body", func(t *testing.T) {
		t.Parallel()

		mux := router.New()
		mux.Get("/", noop)

		rec := serve(t, mux, request{method: http.MethodGet, target: "/nonexistent"})

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Equal(t, "0", rec.Header().Get("Content-Length"))
	})

	t.Run("unregistered method is 405", func(t *testing.T) {
		t.Parallel()

		mux := router.New()
		mux.Get("/", noop)

		rec := serve(t, mux, request{method: http.MethodDelete, target: "/anything"})

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Empty(t, rec.Header().Get("Allow"))
	})

	t.Run("405 lists methods registered for the path", func(t *testing.T) {
		t.Parallel()

		mux := router.New()
		mux.Get("/items", noop)
		mux.Post("/items", noop)

		rec := serve(t, mux, request{method: http.MethodDelete, target: "/items"})

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, "GET, POST", rec.Header().Get("Allow"))
	})

	t.Run("escaped path does not match its decoded route", func(t *testing.T) {
		t.Parallel()

		mux := router.New()
		mux.Get("/a/b", noop)

		rec := serve(t, mux, request{method: http.MethodGet, target: "/a%2Fb"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("routes match the raw escaped path", func(t *testing.T) {
		t.Parallel()

		var path string
		mux := router.New()
		mux.Get("/a%20b", func(ctx *router.Context) error {
			path = ctx.Path()
			ctx.SetStatus(http.StatusOK)
			return nil
		})

		rec := serve(t, mux, request{method: http.MethodGet, target: "/a%20b"})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/a%20b", path)
	})

	t.Run("query string does not affect routing", func(t *testing.T) {
		t.Parallel()

		mux := router.New()
		mux.Get("/params", func(ctx *router.Context) error {
			ctx.SetStatus(http.StatusOK)
			return nil
		})

		rec := serve(t, mux, request{method: http.MethodGet, target: "/params?x=1"})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("status defaults to 500 when handler sets nothing", func(t *testing.T) {
		t.Parallel()

		mux := router.New()
		mux.Get("/", func(ctx *router.Context) error {
			ctx.Append("partial")
			return nil
		})

		rec := serve(t, mux, request{method: http.MethodGet, target: "/"})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "partial", rec.Body.String())
	})

	t.Run("repeated headers are preserved in order", func(t *testing.T) {
		t.Parallel()

		mux := router.New()
		mux.Get("/", func(ctx *router.Context) error {
			ctx.SetStatus(http.StatusOK)
			ctx.AddHeader("Set-Cookie", "a=1;")
			ctx.AddHeader("Set-Cookie", "b=2;")
			return nil
		})

		rec := serve(t, mux, request{method: http.MethodGet, target: "/"})
		assert.Equal(t, []string{"a=1;", "b=2;"}, rec.Header().Values("Set-Cookie"))
	})
}

func TestMux_Params(t *testing.T) {
	t.Parallel()

	capture := func(dst *params.Params, body *[]byte) router.HandlerFunc {
		return func(ctx *router.Context) error {
			*dst = ctx.Params()
			if body != nil {
				*body = ctx.Body()
			}
			ctx.SetStatus(http.StatusOK)
			return nil
		}
	}

	t.Run("query parameters", func(t *testing.T) {
		t.Parallel()

		var got params.Params
		mux := router.New()
		mux.Get("/params", capture(&got, nil))

		rec := serve(t, mux, request{method: http.MethodGet, target: "/params?x=1&y=2"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, params.Params{"x": "1", "y": "2"}, got)
	})

	t.Run("form body overrides query", func(t *testing.T) {
		t.Parallel()

		var got params.Params
		mux := router.New()
		mux.Post("/params", capture(&got, nil))

		body := "a=hello+world&b=%26amp&x=body"
		rec := serve(t, mux, request{
			method:  http.MethodPost,
			target:  "/params?x=query&q=1",
			body:    body,
			headers: withLength(body, map[string]string{"Content-Type": params.ContentTypeForm}),
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, params.Params{"a": "hello world", "b": "&amp", "x": "body", "q": "1"}, got)
	})

	t.Run("json object body is merged", func(t *testing.T) {
		t.Parallel()

		var got params.Params
		mux := router.New()
		mux.Put("/params", capture(&got, nil))

		body := `{"a":1,"name":"x"}`
		serve(t, mux, request{
			method:  http.MethodPut,
			target:  "/params?a=query",
			body:    body,
			headers: withLength(body, map[string]string{"Content-Type": params.ContentTypeJSON}),
		})

		assert.Equal(t, "1", got.String("a"))
		assert.Equal(t, "x", got.String("name"))
	})

	t.Run("malformed json leaves params unmerged and handler runs", func(t *testing.T) {
		t.Parallel()

		var got params.Params
		var raw []byte
		mux := router.New()
		mux.Post("/", capture(&got, &raw))

		rec := serve(t, mux, request{
			method: http.MethodPost,
			target: "/?q=1",
			body:   `{"a":1}`,
			headers: map[string]string{
				"Content-Type":   params.ContentTypeJSON,
				"Content-Length": "4",
			},
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `{"a"`, string(raw))
		assert.Equal(t, params.Params{"q": "1"}, got)
	})

	t.Run("content type with parameters is not decoded", func(t *testing.T) {
		t.Parallel()

		var got params.Params
		mux := router.New()
		mux.Post("/", capture(&got, nil))

		body := "a=1"
		serve(t, mux, request{
			method:  http.MethodPost,
			target:  "/",
			body:    body,
			headers: withLength(body, map[string]string{"Content-Type": params.ContentTypeForm + "; charset=utf-8"}),
		})

		assert.Empty(t, got)
	})

	t.Run("get does not read a body", func(t *testing.T) {
		t.Parallel()

		var got params.Params
		var raw []byte
		mux := router.New()
		mux.Get("/", capture(&got, &raw))

		body := "a=1"
		rec := serve(t, mux, request{
			method:  http.MethodGet,
			target:  "/",
			body:    body,
			headers: withLength(body, map[string]string{"Content-Type": params.ContentTypeForm}),
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, raw)
		assert.Empty(t, got)
	})
}

func TestMux_BodyFraming(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers map[string]string
		maxBody int64
		want    int
	}{
		{"missing content length", nil, 0, http.StatusLengthRequired},
		{"non numeric content length", map[string]string{"Content-Length": "abc"}, 0, http.StatusLengthRequired},
		{"negative content length", map[string]string{"Content-Length": "-1"}, 0, http.StatusLengthRequired},
		{"body over limit", map[string]string{"Content-Length": "10"}, 5, http.StatusRequestEntityTooLarge},
		{"body within limit", map[string]string{"Content-Length": "5"}, 5, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32
			mux := router.New(router.WithMaxBodyBytes(tt.maxBody))
			mux.Post("/", func(ctx *router.Context) error {
				calls.Add(1)
				ctx.SetStatus(http.StatusOK)
				return nil
			})

			rec := serve(t, mux, request{method: http.MethodPost, target: "/", body: "0123456789", headers: tt.headers})

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, int32(1), calls.Load())
			} else {
				assert.Zero(t, calls.Load())
				assert.Empty(t, rec.Body.String())
			}
		})
	}

	t.Run("zero length body is accepted", func(t *testing.T) {
		t.Parallel()

		var raw []byte
		mux := router.New()
		mux.Post("/", func(ctx *router.Context) error {
			raw = ctx.Body()
			ctx.SetStatus(http.StatusNoContent)
			return nil
		})

		rec := serve(t, mux, request{method: http.MethodPost, target: "/", headers: map[string]string{"Content-Length": "0"}})

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.NotNil(t, raw)
		assert.Empty(t, raw)
	})

	t.Run("short stream reads what is available", func(t *testing.T) {
		t.Parallel()

		var raw []byte
		mux := router.New()
		mux.Post("/", func(ctx *router.Context) error {
			raw = ctx.Body()
			ctx.SetStatus(http.StatusOK)
			return nil
		})

		rec := serve(t, mux, request{
			method:  http.MethodPost,
			target:  "/",
			body:    "abc",
			headers: map[string]string{"Content-Length": "10"},
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "abc", string(raw))
	})

	t.Run("read failure is 400", func(t *testing.T) {
		t.Parallel()

		mux := router.New()
		mux.Post("/", noop)

		r := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(failingReader{}))
		r.Header.Set("Content-Length", "10")
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, r)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestMux_Faults(t *testing.T) {
	t.Parallel()

	t.Run("panic is recovered with partial state", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		var handled error
		mux := router.New(
			router.WithLogger(logger.New(logger.WithJSONFormatter(), logger.WithOutput(&buf))),
			router.WithErrorHandler(func(ctx *router.Context, err error) { handled = err }),
		)
		mux.Get("/boom", func(ctx *router.Context) error {
			ctx.SetStatus(http.StatusAccepted)
			ctx.Append("partial")
			panic("kaboom")
		})
		mux.Get("/ok", func(ctx *router.Context) error {
			ctx.SetStatus(http.StatusOK)
			return nil
		})

		rec := serve(t, mux, request{method: http.MethodGet, target: "/boom"})

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, "partial", rec.Body.String())

		var pe router.PanicError
		require.ErrorAs(t, handled, &pe)
		assert.Equal(t, "kaboom", pe.Value())
		assert.NotEmpty(t, pe.Stack())
		assert.Contains(t, buf.String(), "handler panicked")
		assert.Contains(t, buf.String(), `"stack"`)

		rec = serve(t, mux, request{method: http.MethodGet, target: "/ok"})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("panic with nothing set is 500", func(t *testing.T) {
		t.Parallel()

		mux := router.New()
		mux.Get("/", func(*router.Context) error { panic(errors.New("bad")) })

		rec := serve(t, mux, request{method: http.MethodGet, target: "/"})
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("panicked error unwraps", func(t *testing.T) {
		t.Parallel()

		sentinel := errors.New("sentinel")
		var handled error
		mux := router.New(router.WithErrorHandler(func(_ *router.Context, err error) { handled = err }))
		mux.Get("/", func(*router.Context) error { panic(sentinel) })

		serve(t, mux, request{method: http.MethodGet, target: "/"})
		assert.ErrorIs(t, handled, sentinel)
	})

	t.Run("returned error reaches error handler", func(t *testing.T) {
		t.Parallel()

		sentinel := errors.New("sentinel")
		mux := router.New(router.WithErrorHandler(func(ctx *router.Context, err error) {
			if errors.Is(err, sentinel) {
				ctx.SetStatus(http.StatusTeapot)
			}
		}))
		mux.Get("/", func(*router.Context) error { return sentinel })

		rec := serve(t, mux, request{method: http.MethodGet, target: "/"})
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})
}

func TestMux_RequestLog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	mux := router.New(router.WithLogger(logger.New(logger.WithJSONFormatter(), logger.WithOutput(&buf))))
	mux.Get("/", func(ctx *router.Context) error {
		assert.Equal(t, "req-42", ctx.RequestID())
		ctx.SetStatus(http.StatusOK)
		ctx.Append("abc")
		return nil
	})

	serve(t, mux, request{method: http.MethodGet, target: "/", headers: map[string]string{"X-Request-ID": "req-42"}})

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "request", record["msg"])
	assert.Equal(t, "req-42", record["request_id"])
	assert.Equal(t, float64(200), record["status_code"])
	assert.Equal(t, float64(3), record["bytes_out"])
}

func TestMux_GeneratedRequestID(t *testing.T) {
	t.Parallel()

	var id string
	mux := router.New()
	mux.Get("/", func(ctx *router.Context) error {
		id = ctx.RequestID()
		return nil
	})

	serve(t, mux, request{method: http.MethodGet, target: "/"})
	assert.Len(t, id, 36)
}

func TestMux_ConcurrentRequests(t *testing.T) {
	t.Parallel()

	mux := router.New()
	mux.Get("/echo", func(ctx *router.Context) error {
		ctx.SetStatus(http.StatusOK)
		ctx.Append(ctx.Param("n"))
		return nil
	})

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := range workers {
		go func() {
			defer wg.Done()
			n := strconv.Itoa(i)
			rec := serve(t, mux, request{method: http.MethodGet, target: "/echo?n=" + n})
			assert.Equal(t, n, rec.Body.String())
		}()
	}
	wg.Wait()
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	mux := router.NewFromConfig(router.Config{MaxBodyBytes: 2, RequestIDHeader: "X-Trace"})

	var id string
	mux.Post("/", func(ctx *router.Context) error {
		id = ctx.RequestID()
		ctx.SetStatus(http.StatusOK)
		return nil
	})

	rec := serve(t, mux, request{method: http.MethodPost, target: "/", body: "abc", headers: map[string]string{"Content-Length": "3"}})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = serve(t, mux, request{method: http.MethodPost, target: "/", body: "ab", headers: map[string]string{"Content-Length": "2", "X-Trace": "t-1"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "t-1", id)
}
