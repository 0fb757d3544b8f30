package session

import "errors"

var (
	// ErrNotFound is returned when a store has no session for the identifier.
	ErrNotFound = errors.New("session not found")
	// ErrInvalidID is returned by Store.Get when an identifier contains characters outside the alphabet.
	ErrInvalidID = errors.New("invalid session identifier")
	// ErrIDGeneration is returned when the random source fails.
	ErrIDGeneration = errors.New("failed to generate session identifier")
	// ErrNilSession is returned when a nil session is passed to a store.
	ErrNilSession = errors.New("session is nil")
	// ErrSaveSession is returned when persisting a session fails.
	ErrSaveSession = errors.New("failed to save session")
	// ErrLoadSession is returned when reading a session from a backend fails.
	ErrLoadSession = errors.New("failed to load session")
	// ErrStoreStarted is returned by Start when the cleanup loop is already running.
	ErrStoreStarted = errors.New("session store already started")
	// ErrStoreNotStarted is returned by Stop when the cleanup loop is not running.
	ErrStoreNotStarted = errors.New("session store not started")
)
