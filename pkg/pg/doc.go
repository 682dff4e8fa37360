// Package pg wires PostgreSQL into the service through pgx/v5.
//
// Connect opens a *pgxpool.Pool from Config and retries until the database
// answers a ping. Migrate applies goose migrations read from an fs.FS, which
// lets each service embed its own SQL files. Healthcheck adapts a pool into a
// readiness check, and the error helpers classify driver errors:
//
//	if constraint, ok := pg.DuplicateKeyConstraint(err); ok {
//	    // map constraint back onto a field error
//	}
//
// Typical start-up:
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, account.Migrations, cfg, log); err != nil {
//	    return err
//	}
package pg
