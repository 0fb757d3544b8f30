package pgstore

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/simplehttp/core/logger"
	"github.com/dmitrymomot/simplehttp/core/session"
	"github.com/dmitrymomot/simplehttp/integration/database/pg"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrations returns the goose migrations that create the sessions table.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

var (
	_ session.Store = (*Store)(nil)
	_ session.Saver = (*Store)(nil)
)

// Store keeps sessions as JSONB rows in the sessions table.
// Queries join a transaction carried in the context via pg.WithTx.
type Store struct {
	pool     *pgxpool.Pool
	ttl      time.Duration
	idLength int
	logger   *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithTTL treats rows not updated within ttl as absent. Zero disables expiry.
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

// New creates a Store on top of an existing pool.
func New(pool *pgxpool.Pool, opts ...Option) *Store {
	s := &Store{
		pool:     pool,
		idLength: session.DefaultIDLength,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromConfig creates a Store from session configuration.
func NewFromConfig(pool *pgxpool.Pool, cfg session.Config, opts ...Option) *Store {
	configOpts := []Option{WithTTL(cfg.TTL), WithIDLength(cfg.IDLength)}
	return New(pool, append(configOpts, opts...)...)
}

const (
	insertSession = `INSERT INTO sessions (id, data) VALUES ($1, '{}'::jsonb)`
	selectSession = `SELECT data, updated_at FROM sessions WHERE id = $1`
	upsertSession = `INSERT INTO sessions (id, data) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`
	deleteSession = `DELETE FROM sessions WHERE id = $1`
	deleteExpired = `DELETE FROM sessions WHERE updated_at < $1`
)

// Create inserts an empty row under a fresh identifier.
func (s *Store) Create(ctx context.Context) (string, error) {
	id, err := session.NewID(s.idLength)
	if err != nil {
		return "", err
	}

	if _, err := pg.QuerierFromContext(ctx, s.pool).Exec(ctx, insertSession, id); err != nil {
		return "", fmt.Errorf("%w: %w", session.ErrSaveSession, err)
	}

	s.logger.DebugContext(ctx, "session created", logger.SessionID(id))
	return id, nil
}

// Get loads the row for id.
func (s *Store) Get(ctx context.Context, id string) (*session.Session, error) {
	if !session.ValidID(id) {
		return nil, session.ErrInvalidID
	}

	var (
		data      []byte
		updatedAt time.Time
	)
	err := pg.QuerierFromContext(ctx, s.pool).QueryRow(ctx, selectSession, id).Scan(&data, &updatedAt)
	if pg.IsNotFoundError(err) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", session.ErrLoadSession, err)
	}

	if s.ttl > 0 && time.Since(updatedAt) > s.ttl {
		return nil, session.ErrNotFound
	}

	sess, err := session.Decode(id, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", session.ErrLoadSession, err)
	}
	return sess, nil
}

// Save upserts the session bag and bumps updated_at.
func (s *Store) Save(ctx context.Context, sess *session.Session) error {
	if sess == nil {
		return session.ErrNilSession
	}

	data, err := sess.MarshalJSON()
	if err != nil {
		return fmt.Errorf("%w: %w", session.ErrSaveSession, err)
	}

	if _, err := pg.QuerierFromContext(ctx, s.pool).Exec(ctx, upsertSession, sess.ID(), data); err != nil {
		return fmt.Errorf("%w: %w", session.ErrSaveSession, err)
	}
	return nil
}

// Delete removes the row for id.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := pg.QuerierFromContext(ctx, s.pool).Exec(ctx, deleteSession, id)
	return err
}

// DeleteExpired removes rows idle for longer than the TTL.
func (s *Store) DeleteExpired(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	tag, err := pg.QuerierFromContext(ctx, s.pool).Exec(ctx, deleteExpired, time.Now().Add(-s.ttl))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
