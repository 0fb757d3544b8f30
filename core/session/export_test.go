package session

import "time"

// SetClock replaces the time source used for TTL checks.
func (ms *MemoryStore) SetClock(now func() time.Time) {
	ms.mu.Lock()
	ms.now = now
	ms.mu.Unlock()
}
