package session

import (
	"encoding/json"
	"maps"
	"sync"
)

// Session is a mutable key-value bag bound to an identifier.
// All methods are safe for concurrent use; sequences of calls are not atomic.
type Session struct {
	id string

	mu     sync.RWMutex
	values map[string]any
}

// New creates an empty session with the given identifier.
func New(id string) *Session {
	return &Session{id: id, values: make(map[string]any)}
}

// NewWithValues creates a session holding a copy of values.
func NewWithValues(id string, values map[string]any) *Session {
	s := New(id)
	maps.Copy(s.values, values)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Get returns the value stored under key.
func (s *Session) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key.
func (s *Session) Set(key string, value any) {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
}

// Delete removes key from the bag.
func (s *Session) Delete(key string) {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
}

// Update copies every entry of values into the bag, overwriting existing keys.
func (s *Session) Update(values map[string]any) {
	s.mu.Lock()
	maps.Copy(s.values, values)
	s.mu.Unlock()
}

// Clear removes every key.
func (s *Session) Clear() {
	s.mu.Lock()
	clear(s.values)
	s.mu.Unlock()
}

// Values returns a shallow copy of the bag.
func (s *Session) Values() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values)
}

// Len returns the number of keys.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// MarshalJSON encodes the bag as a JSON object.
func (s *Session) MarshalJSON() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return json.Marshal(s.values)
}

// Decode builds a session from a JSON object produced by MarshalJSON.
func Decode(id string, data []byte) (*Session, error) {
	values := make(map[string]any)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, err
		}
	}
	if values == nil {
		values = make(map[string]any)
	}
	return &Session{id: id, values: values}, nil
}
