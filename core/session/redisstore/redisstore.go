package redisstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/simplehttp/core/logger"
	"github.com/dmitrymomot/simplehttp/core/session"
)

// DefaultPrefix namespaces session keys.
const DefaultPrefix = "session:"

var (
	_ session.Store = (*Store)(nil)
	_ session.Saver = (*Store)(nil)
)

// Store keeps each session as a JSON object under <prefix><id>.
// Sessions returned by Get are copies; call Save to persist changes.
type Store struct {
	client   redis.UniversalClient
	prefix   string
	ttl      time.Duration
	idLength int
	logger   *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithTTL sets the key expiry, refreshed on every save. Zero keeps keys forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl >= 0 {
			s.ttl = ttl
		}
	}
}

// WithIDLength sets the length of generated identifiers.
func WithIDLength(length int) Option {
	return func(s *Store) {
		if length > 0 {
			s.idLength = length
		}
	}
}

// WithLogger sets the logger for internal operations.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Store on top of an existing client.
func New(client redis.UniversalClient, opts ...Option) *Store {
	s := &Store{
		client:   client,
		prefix:   DefaultPrefix,
		idLength: session.DefaultIDLength,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromConfig creates a Store from session configuration.
func NewFromConfig(client redis.UniversalClient, cfg session.Config, opts ...Option) *Store {
	configOpts := []Option{
		WithPrefix(cfg.KeyPrefix),
		WithTTL(cfg.TTL),
		WithIDLength(cfg.IDLength),
	}
	return New(client, append(configOpts, opts...)...)
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

// Create writes an empty JSON object under a fresh identifier.
func (s *Store) Create(ctx context.Context) (string, error) {
	id, err := session.NewID(s.idLength)
	if err != nil {
		return "", err
	}

	if err := s.client.Set(ctx, s.key(id), "{}", s.ttl).Err(); err != nil {
		return "", fmt.Errorf("%w: %w", session.ErrSaveSession, err)
	}

	s.logger.DebugContext(ctx, "session created", logger.SessionID(id))
	return id, nil
}

// Get loads and decodes the session for id.
func (s *Store) Get(ctx context.Context, id string) (*session.Session, error) {
	if !session.ValidID(id) {
		return nil, session.ErrInvalidID
	}

	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", session.ErrLoadSession, err)
	}

	sess, err := session.Decode(id, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", session.ErrLoadSession, err)
	}
	return sess, nil
}

// Save writes the session bag back and refreshes the TTL.
func (s *Store) Save(ctx context.Context, sess *session.Session) error {
	if sess == nil {
		return session.ErrNilSession
	}

	data, err := sess.MarshalJSON()
	if err != nil {
		return fmt.Errorf("%w: %w", session.ErrSaveSession, err)
	}

	if err := s.client.Set(ctx, s.key(sess.ID()), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", session.ErrSaveSession, err)
	}
	return nil
}

// Delete removes the session key.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}
