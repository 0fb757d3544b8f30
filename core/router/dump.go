package router

import (
	"fmt"
	"net/http"
	"strings"
)

// Info is the request summary written by DumpInfo.
type Info struct {
	RequestLine string            `json:"request_line"`
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Fragment    string            `json:"fragment"`
	Protocol    string            `json:"protocol"`
	Headers     map[string]string `json:"headers"`
	Cookies     map[string]any    `json:"cookies"`
	Payload     *string           `json:"payload"`
	Params      map[string]any    `json:"params"`
}

// NewInfo summarises the request in ctx.
func NewInfo(ctx *Context) Info {
	r := ctx.Request()

	headers := make(map[string]string, len(r.Header))
	for k, v := range r.Header {
		headers[k] = strings.Join(v, ", ")
	}

	var payload *string
	if ctx.Body() != nil {
		s := string(ctx.Body())
		payload = &s
	}

	return Info{
		RequestLine: fmt.Sprintf("%s %s %s", r.Method, r.URL.RequestURI(), r.Proto),
		Method:      r.Method,
		Path:        ctx.Path(),
		Fragment:    ctx.Fragment(),
		Protocol:    r.Proto,
		Headers:     headers,
		Cookies:     ctx.Cookies().Values(),
		Payload:     payload,
		Params:      ctx.Params(),
	}
}

// DumpInfo writes a JSON summary of the request with status 501.
// NewDefault registers it for unimplemented roots.
func DumpInfo(ctx *Context) error {
	ctx.SetStatus(http.StatusNotImplemented)
	ctx.AddHeader("Content-Type", "application/json")
	ctx.Append(NewInfo(ctx))
	return nil
}
