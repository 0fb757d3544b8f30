package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/simplehttp/core/logger"
)

type memoryEntry struct {
	session    *Session
	lastAccess time.Time
}

// MemoryStore keeps sessions in process memory. Sessions returned by Get are
// live references, so handler mutations need no explicit save.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memoryEntry

	// Configuration
	idLength        int
	ttl             time.Duration
	cleanupInterval time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger
	now             func() time.Time

	// State management
	ctx     context.Context
	cancel  context.CancelFunc
	running atomic.Bool
	wg      sync.WaitGroup

	// Observability metrics
	created atomic.Int64
	evicted atomic.Int64
}

// MemoryStoreStats reports counters for monitoring.
type MemoryStoreStats struct {
	Created   int64 // Total sessions created
	Evicted   int64 // Total sessions removed by TTL eviction
	Active    int   // Sessions currently held
	IsRunning bool  // Whether the cleanup loop is running
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithTTL sets the idle time after which a session is treated as absent.
// Zero keeps sessions for the life of the process.
func WithTTL(ttl time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if ttl >= 0 {
			ms.ttl = ttl
		}
	}
}

// WithCleanupInterval sets how often Start sweeps expired sessions.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		ms.cleanupInterval = interval
	}
}

// WithIDLength sets the length of generated identifiers.
func WithIDLength(length int) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if length > 0 {
			ms.idLength = length
		}
	}
}

// WithShutdownTimeout sets how long Stop waits for an in-flight sweep.
func WithShutdownTimeout(timeout time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if timeout > 0 {
			ms.shutdownTimeout = timeout
		}
	}
}

// WithLogger sets the logger for internal operations.
func WithLogger(l *slog.Logger) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if l != nil {
			ms.logger = l
		}
	}
}

// NewMemoryStore creates an empty in-memory store.
// Call Start to evict expired sessions in the background.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		sessions:        make(map[string]*memoryEntry),
		idLength:        DefaultIDLength,
		cleanupInterval: 5 * time.Minute,
		shutdownTimeout: 30 * time.Second,
		logger:          logger.Discard(),
		now:             time.Now,
	}

	for _, opt := range opts {
		opt(ms)
	}

	return ms
}

// Create registers a fresh empty session. Identifier collisions are not checked.
func (ms *MemoryStore) Create(ctx context.Context) (string, error) {
	id, err := NewID(ms.idLength)
	if err != nil {
		return "", err
	}

	ms.mu.Lock()
	ms.sessions[id] = &memoryEntry{session: New(id), lastAccess: ms.now()}
	ms.mu.Unlock()

	ms.created.Add(1)
	ms.logger.DebugContext(ctx, "session created", logger.SessionID(id))

	return id, nil
}

// Get returns the live session for id and refreshes its access time.
func (ms *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	if !ValidID(id) {
		return nil, ErrInvalidID
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	e, ok := ms.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}

	now := ms.now()
	if ms.expired(e, now) {
		delete(ms.sessions, id)
		ms.evicted.Add(1)
		return nil, ErrNotFound
	}

	e.lastAccess = now
	return e.session, nil
}

// Delete removes the session for id. Missing identifiers are ignored.
func (ms *MemoryStore) Delete(ctx context.Context, id string) error {
	ms.mu.Lock()
	delete(ms.sessions, id)
	ms.mu.Unlock()
	return nil
}

// Len returns the number of sessions held, expired or not.
func (ms *MemoryStore) Len() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.sessions)
}

// DeleteExpired removes every session idle for longer than the TTL and returns the count.
// It is a no-op when no TTL is configured.
func (ms *MemoryStore) DeleteExpired() int {
	if ms.ttl <= 0 {
		return 0
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	removed := 0
	for id, e := range ms.sessions {
		if ms.expired(e, now) {
			delete(ms.sessions, id)
			removed++
		}
	}

	if removed > 0 {
		ms.evicted.Add(int64(removed))
	}
	return removed
}

func (ms *MemoryStore) expired(e *memoryEntry, now time.Time) bool {
	return ms.ttl > 0 && now.Sub(e.lastAccess) > ms.ttl
}

// Start runs the eviction loop until ctx is cancelled. It blocks; use Run
// with errgroup or call it in a goroutine.
func (ms *MemoryStore) Start(ctx context.Context) error {
	ms.mu.Lock()
	if ms.cancel != nil {
		ms.mu.Unlock()
		return ErrStoreStarted
	}

	if ms.cleanupInterval <= 0 {
		ms.mu.Unlock()
		return fmt.Errorf("cleanup interval must be > 0, got %v", ms.cleanupInterval)
	}

	ms.ctx, ms.cancel = context.WithCancel(ctx)
	loopCtx := ms.ctx
	ms.mu.Unlock()

	ms.running.Store(true)
	defer ms.running.Store(false)

	// A parent cancellation ends the loop without Stop; release the slot so Start can run again.
	defer func() {
		ms.mu.Lock()
		if ms.ctx == loopCtx && ms.cancel != nil {
			ms.cancel()
			ms.cancel = nil
		}
		ms.mu.Unlock()
	}()

	ms.logger.InfoContext(loopCtx, "session store cleanup started",
		slog.Duration("cleanup_interval", ms.cleanupInterval),
		slog.Duration("ttl", ms.ttl))

	ticker := time.NewTicker(ms.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-loopCtx.Done():
			ms.logger.InfoContext(context.Background(), "session store cleanup stopping")
			return loopCtx.Err()
		case <-ticker.C:
			ms.sweep(loopCtx)
		}
	}
}

// Stop cancels the eviction loop and waits for an in-flight sweep.
func (ms *MemoryStore) Stop() error {
	ms.mu.Lock()
	if ms.cancel == nil {
		ms.mu.Unlock()
		return ErrStoreNotStarted
	}

	cancel := ms.cancel
	ms.cancel = nil
	ms.mu.Unlock()

	cancel()

	ctx, ctxCancel := context.WithTimeout(context.Background(), ms.shutdownTimeout)
	defer ctxCancel()

	done := make(chan struct{})
	go func() {
		ms.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		ms.logger.InfoContext(context.Background(), "session store stopped")
		return nil
	case <-ctx.Done():
		ms.logger.WarnContext(context.Background(), "session store shutdown timeout exceeded",
			slog.Duration("timeout", ms.shutdownTimeout))
		return fmt.Errorf("shutdown timeout exceeded after %s", ms.shutdownTimeout)
	}
}

// Run returns a function for errgroup that runs the eviction loop and stops it
// when ctx is cancelled.
func (ms *MemoryStore) Run(ctx context.Context) func() error {
	return func() error {
		errCh := make(chan error, 1)
		go func() {
			errCh <- ms.Start(ctx)
		}()

		select {
		case <-ctx.Done():
			_ = ms.Stop()
			<-errCh
			return nil
		case err := <-errCh:
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}

func (ms *MemoryStore) sweep(ctx context.Context) {
	ms.mu.RLock()
	if ms.cancel == nil {
		ms.mu.RUnlock()
		return
	}
	ms.wg.Add(1)
	ms.mu.RUnlock()

	defer ms.wg.Done()

	if removed := ms.DeleteExpired(); removed > 0 {
		ms.logger.DebugContext(ctx, "expired sessions evicted", logger.Count("removed", removed))
	}
}

// Stats returns a snapshot of the store counters.
func (ms *MemoryStore) Stats() MemoryStoreStats {
	ms.mu.RLock()
	isRunning := ms.cancel != nil
	active := len(ms.sessions)
	ms.mu.RUnlock()

	return MemoryStoreStats{
		Created:   ms.created.Load(),
		Evicted:   ms.evicted.Load(),
		Active:    active,
		IsRunning: isRunning,
	}
}
