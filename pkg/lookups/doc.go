// Package lookups answers the uniqueness and existence questions the
// validator asks while evaluating a rule set.
//
// Postgres is the source of truth. It only queries tables and columns that
// were registered in a Schema, so entity and column names coming from rule
// definitions never reach SQL unchecked. Memory is an in-process store for
// tests and local runs.
//
// Two decorators sit in front of a store:
//
//   - Cached remembers positive Exists answers in Redis for reference
//     entities (rows that are never deleted, such as desa).
//   - Breaker trips a gobreaker circuit after repeated store failures so a
//     sick database fails requests fast instead of piling them up.
//
// Every store failure surfaces as validator.ErrLookupUnavailable.
//
//	var store validator.Lookups = lookups.NewPostgres(pool, schema, lookups.WithTimeout(cfg.Timeout))
//	store = lookups.NewCached(store, redisClient, lookups.WithCacheTTL(cfg.CacheTTL), lookups.WithCachedEntities("desa"))
//	store = lookups.NewBreaker(store, cfg.BreakerSettings("lookups"))
package lookups
