package pg_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"testing/fstest"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/simplehttp/integration/database/pg"
)

func TestConnect_Validation(t *testing.T) {
	t.Parallel()

	t.Run("empty connection string", func(t *testing.T) {
		t.Parallel()

		_, err := pg.Connect(context.Background(), pg.Config{})
		assert.ErrorIs(t, err, pg.ErrEmptyConnectionString)
	})

	t.Run("malformed connection string", func(t *testing.T) {
		t.Parallel()

		_, err := pg.Connect(context.Background(), pg.Config{ConnectionString: "postgres://%zz"})
		assert.ErrorIs(t, err, pg.ErrFailedToParseDBConfig)
	})
}

func TestMigrate_MissingDir(t *testing.T) {
	t.Parallel()

	err := pg.Migrate(context.Background(), nil, pg.Config{}, nil, nil)
	assert.ErrorIs(t, err, pg.ErrMigrationsDirNotFound)

	err = pg.Migrate(context.Background(), nil, pg.Config{MigrationsPath: "does/not/exist"}, nil, nil)
	assert.ErrorIs(t, err, pg.ErrMigrationsDirNotFound)
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	assert.True(t, pg.IsNotFoundError(pgx.ErrNoRows))
	assert.True(t, pg.IsNotFoundError(errors.Join(errors.New("query"), pgx.ErrNoRows)))
	assert.False(t, pg.IsNotFoundError(errors.New("other")))
}

func TestTxFromContext_Empty(t *testing.T) {
	t.Parallel()

	ctx := pg.WithTx(context.Background(), nil)
	_, ok := pg.TxFromContext(ctx)
	assert.False(t, ok)
}

func TestLive(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := pg.DefaultConfig()
	cfg.ConnectionString = dsn
	cfg.RetryAttempts = 1
	cfg.MigrationsTable = "simplehttp_pg_test_migrations"

	pool, err := pg.Connect(ctx, cfg)
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, pg.Healthcheck(pool)(ctx))

	fsys := fstest.MapFS{
		"00001_probe.sql": &fstest.MapFile{Data: []byte(
			"-- +goose Up\nCREATE TABLE IF NOT EXISTS simplehttp_pg_probe (id int);\n" +
				"-- +goose Down\nDROP TABLE IF EXISTS simplehttp_pg_probe;\n",
		)},
	}
	require.NoError(t, pg.Migrate(ctx, pool, cfg, nil, fsys))

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()

	txCtx := pg.WithTx(ctx, tx)
	got, ok := pg.TxFromContext(txCtx)
	require.True(t, ok)
	assert.Equal(t, tx, got)

	var n int
	require.NoError(t, pg.QuerierFromContext(txCtx, pool).QueryRow(txCtx, "SELECT 1").Scan(&n))
	assert.Equal(t, 1, n)
}
