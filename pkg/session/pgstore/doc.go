// Package pgstore implements session.Store on PostgreSQL using pgx.
//
// Records live in one table keyed by session identifier; the encoded record is
// kept in a JSONB column next to its stable record_id and timestamps. The
// schema ships as embedded goose migrations:
//
//	pool, err := pgstore.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := pgstore.Migrate(ctx, pool, cfg, logger); err != nil {
//		return err
//	}
//	store := pgstore.NewFromConfig(pool, cfg)
//
// Expired rows are filtered on read and removed by DeleteExpired, which
// session.Manager.StartCleanup calls periodically.
package pgstore
