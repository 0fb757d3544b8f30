package params

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	// ContentTypeJSON is the only media type decoded as a JSON object.
	ContentTypeJSON = "application/json"
	// ContentTypeForm is the only media type decoded as form pairs.
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// DecodeBody parses a request payload according to its Content-Type.
//
// The content type must match exactly, parameters such as charset are not
// stripped. It returns ErrUnsupportedMediaType for any other type and
// ErrFailedToParseJSON when a JSON body is malformed or not an object.
func DecodeBody(contentType string, body []byte) (Params, error) {
	switch contentType {
	case ContentTypeJSON:
		return decodeJSON(body)
	case ContentTypeForm:
		return ParseQuery(string(body)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMediaType, contentType)
	}
}

func decodeJSON(body []byte) (Params, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToParseJSON, err)
	}
	if out == nil {
		return nil, fmt.Errorf("%w: body is not an object", ErrFailedToParseJSON)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after object", ErrFailedToParseJSON)
	}
	return Params(out), nil
}
