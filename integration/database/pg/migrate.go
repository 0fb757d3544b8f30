package pg

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrymomot/simplehttp/core/logger"
)

// goose keeps dialect, table name and base FS in package globals.
var gooseMu sync.Mutex

// Migrate applies pending goose migrations from fsys, or from cfg.MigrationsPath
// when fsys is nil.
func Migrate(ctx context.Context, pool *pgxpool.Pool, cfg Config, log *slog.Logger, fsys fs.FS) error {
	if fsys == nil {
		if cfg.MigrationsPath == "" {
			return ErrMigrationsDirNotFound
		}
		if _, err := os.Stat(cfg.MigrationsPath); err != nil {
			return errors.Join(ErrMigrationsDirNotFound, err)
		}
		fsys = os.DirFS(cfg.MigrationsPath)
	}
	if log == nil {
		log = logger.Discard()
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(gooseLogger{log: log})
	if cfg.MigrationsTable != "" {
		goose.SetTableName(cfg.MigrationsTable)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	return nil
}

type gooseLogger struct {
	log *slog.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.log.Info(fmt.Sprintf(format, v...), logger.Component("migrations"))
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.log.Error(fmt.Sprintf(format, v...), logger.Component("migrations"))
}
