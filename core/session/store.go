package session

import "context"

// Store owns sessions for one server process.
type Store interface {
	// Create registers a fresh empty session and returns its identifier.
	Create(ctx context.Context) (string, error)
	// Get returns the session for id. It returns ErrInvalidID for a malformed
	// identifier and ErrNotFound when no session exists.
	Get(ctx context.Context, id string) (*Session, error)
}

// Saver is implemented by stores whose sessions are copies of persisted state.
// The dispatcher calls Save after a handler that touched the session returns.
type Saver interface {
	Save(ctx context.Context, s *Session) error
}
