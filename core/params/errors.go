package params

import "errors"

var (
	// ErrUnsupportedMediaType is returned for bodies whose type is neither JSON nor form encoded.
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	// ErrFailedToParseJSON is returned for malformed or non-object JSON bodies.
	ErrFailedToParseJSON = errors.New("failed to parse JSON body")
)
