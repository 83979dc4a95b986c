// Package pg connects to Postgres with pgx and keeps the schema current with
// goose.
//
//	pool, err := pg.Connect(ctx, cfg.Postgres)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, migrations.FS, ".", cfg.Postgres, log); err != nil {
//	    return err
//	}
//
// Healthcheck turns the pool into a readiness probe.
package pg
