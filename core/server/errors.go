package server

import "errors"

var (
	ErrMissingAddress       = errors.New("server address is required")
	ErrInvalidPort          = errors.New("server port must be between 0 and 65535")
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrListen               = errors.New("failed to listen")
)
