// Package pgstore implements session.Store and session.Saver on PostgreSQL.
//
// The sessions table is created by the embedded goose migrations:
//
//	if err := pg.Migrate(ctx, pool, pgCfg, log, pgstore.Migrations()); err != nil {
//		return err
//	}
//	store := pgstore.New(pool, pgstore.WithTTL(24*time.Hour))
package pgstore
