package pgstore_test

import (
	"context"
	"io/fs"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/simplehttp/core/session"
	"github.com/dmitrymomot/simplehttp/core/session/pgstore"
	"github.com/dmitrymomot/simplehttp/integration/database/pg"
)

func TestMigrations(t *testing.T) {
	t.Parallel()

	files, err := fs.Glob(pgstore.Migrations(), "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	data, err := fs.ReadFile(pgstore.Migrations(), files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "-- +goose Up")
	assert.Contains(t, string(data), "CREATE TABLE IF NOT EXISTS sessions")
}

func TestStore_Postgres(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := pg.DefaultConfig()
	cfg.ConnectionString = dsn
	cfg.RetryAttempts = 1

	pool, err := pg.Connect(ctx, cfg)
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, pg.Migrate(ctx, pool, cfg, nil, pgstore.Migrations()))

	store := pgstore.New(pool)

	id, err := store.Create(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Delete(context.Background(), id) })

	sess, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, sess.Len())

	sess.Set("count", 2)
	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.Get(ctx, id)
	require.NoError(t, err)
	v, ok := loaded.Get("count")
	require.True(t, ok)
	assert.Equal(t, float64(2), v)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, session.ErrNotFound)

	_, err = store.Get(ctx, "bad'id")
	assert.ErrorIs(t, err, session.ErrInvalidID)

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	txCtx := pg.WithTx(ctx, tx)
	txID, err := store.Create(txCtx)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(ctx))

	_, err = store.Get(ctx, txID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}
