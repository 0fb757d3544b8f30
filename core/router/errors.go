package router

import (
	"errors"
	"fmt"
)

var (
	// Routing errors
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrNotFound         = errors.New("not found")
	ErrInvalidPattern   = errors.New("invalid route path pattern")
	ErrInvalidMethod    = errors.New("invalid http method")
	ErrNilHandler       = errors.New("nil handler")

	// Request framing errors
	ErrLengthRequired = errors.New("length required")
	ErrBodyTooLarge   = errors.New("request body too large")
	ErrBodyRead       = errors.New("failed to read request body")
)

// PanicError lets error handlers detect a recovered handler panic.
type PanicError interface {
	error
	// Value returns the original panic value.
	Value() any
	// Stack returns the stack trace captured at the panic point.
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (e *panicError) Value() any {
	return e.value
}

func (e *panicError) Stack() []byte {
	return e.stack
}

// Unwrap allows errors.Is/As to see a panicked error value.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
