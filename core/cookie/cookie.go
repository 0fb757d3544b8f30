package cookie

import (
	"strings"

	"github.com/dmitrymomot/simplehttp/core/params"
)

// Cookies holds the cookies sent with a request.
// A nil value marks a cookie segment that carried a name but no '=' separator.
type Cookies map[string]*string

// Parse decodes every Cookie header line into a Cookies map.
//
// Each line is split on ';', segments are trimmed and split on the first '='.
// Names and values are percent-decoded. Segments with an empty name are dropped
// and a later occurrence of a name replaces an earlier one.
func Parse(headers []string) Cookies {
	cookies := make(Cookies)
	for _, line := range headers {
		for _, segment := range strings.Split(line, ";") {
			segment = strings.TrimSpace(segment)
			if segment == "" {
				continue
			}

			name, value, hasValue := strings.Cut(segment, "=")
			if name == "" {
				continue
			}

			if !hasValue {
				cookies[params.Unquote(name)] = nil
				continue
			}

			v := params.Unquote(value)
			cookies[params.Unquote(name)] = &v
		}
	}
	return cookies
}

// Get returns the cookie value. ok is false when the cookie is absent or has no value.
func (c Cookies) Get(name string) (value string, ok bool) {
	v, exists := c[name]
	if !exists || v == nil {
		return "", false
	}
	return *v, true
}

// Has reports whether the cookie name was sent, with or without a value.
func (c Cookies) Has(name string) bool {
	_, ok := c[name]
	return ok
}

// Values flattens the cookies into a plain map; valueless cookies map to nil.
func (c Cookies) Values() map[string]any {
	out := make(map[string]any, len(c))
	for k, v := range c {
		if v == nil {
			out[k] = nil
			continue
		}
		out[k] = *v
	}
	return out
}
