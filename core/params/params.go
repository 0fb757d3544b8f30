package params

import (
	"fmt"
	"strings"
)

// Params holds request parameters. Query and form values are strings,
// JSON bodies may contribute any JSON-compatible value.
type Params map[string]any

// String returns the parameter formatted as a string, or "" when absent.
func (p Params) String(key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Has reports whether key is present.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Merge copies every entry of src into p, overwriting matching keys.
func (p Params) Merge(src map[string]any) {
	for k, v := range src {
		p[k] = v
	}
}

// ParseQuery decodes an application/x-www-form-urlencoded string.
//
// Pairs are separated by '&', key and value by the first '='. '+' decodes to a
// space and percent escapes are resolved; malformed escapes are kept as written.
// Pairs with a blank or missing value are skipped. A later key replaces an earlier one.
func ParseQuery(raw string) Params {
	out := make(Params)
	for raw != "" {
		var pair string
		pair, raw, _ = strings.Cut(raw, "&")
		if pair == "" {
			continue
		}

		key, value, _ := strings.Cut(pair, "=")
		if value == "" {
			continue
		}
		out[UnquotePlus(key)] = UnquotePlus(value)
	}
	return out
}
