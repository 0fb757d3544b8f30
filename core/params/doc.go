// Package params decodes query strings and request bodies into a flat parameter map.
//
//	p := params.ParseQuery("x=1&y=2&x=3") // {"x": "3", "y": "2"}
//
//	body, err := params.DecodeBody(r.Header.Get("Content-Type"), payload)
//	if err == nil {
//		p.Merge(body) // body keys win
//	}
//
// Only the exact media types application/json and application/x-www-form-urlencoded
// are decoded. JSON bodies must be objects; numbers are kept as json.Number.
package params
