package router

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// HandlerFunc handles a request. It writes into the response buffer bound to
// ctx; a returned error is logged and passed to the mux ErrorHandler.
type HandlerFunc func(ctx *Context) error

// Route describes one registered (method, path) pair.
type Route struct {
	Method string
	Path   string
}

// Table maps a method and an exact path to a handler.
// It is safe for concurrent registration and lookup.
type Table struct {
	mu     sync.RWMutex
	routes map[string]map[string]HandlerFunc
}

// NewTable creates an empty route table.
func NewTable() *Table {
	return &Table{routes: make(map[string]map[string]HandlerFunc)}
}

// Register maps method and path to h, replacing an earlier registration.
// It panics on an empty method, a path not starting with '/' or a nil handler.
func (t *Table) Register(method, path string, h HandlerFunc) {
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		panic(ErrInvalidMethod)
	}
	if !strings.HasPrefix(path, "/") {
		panic(fmt.Errorf("%w: %q must begin with '/'", ErrInvalidPattern, path))
	}
	if h == nil {
		panic(fmt.Errorf("%w: %s %s", ErrNilHandler, method, path))
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	paths, ok := t.routes[method]
	if !ok {
		paths = make(map[string]HandlerFunc)
		t.routes[method] = paths
	}
	paths[path] = h
}

// Resolve looks up the handler for an exact method and path.
// It returns ErrMethodNotAllowed when no route uses the method and ErrNotFound
// when the method has routes but none for path.
func (t *Table) Resolve(method, path string) (HandlerFunc, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	paths, ok := t.routes[method]
	if !ok {
		return nil, ErrMethodNotAllowed
	}
	h, ok := paths[path]
	if !ok {
		return nil, ErrNotFound
	}
	return h, nil
}

// Allowed returns the sorted methods registered for path.
func (t *Table) Allowed(path string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var methods []string
	for method, paths := range t.routes {
		if _, ok := paths[path]; ok {
			methods = append(methods, method)
		}
	}
	slices.Sort(methods)
	return methods
}

// Routes lists every registration ordered by path, then method.
func (t *Table) Routes() []Route {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var routes []Route
	for method, paths := range t.routes {
		for path := range paths {
			routes = append(routes, Route{Method: method, Path: path})
		}
	}
	slices.SortFunc(routes, func(a, b Route) int {
		if c := strings.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		return strings.Compare(a.Method, b.Method)
	})
	return routes
}
