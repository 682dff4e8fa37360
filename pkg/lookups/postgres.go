package lookups

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/simonta/simonta-api/pkg/validator"
)

// Querier is the part of *pgxpool.Pool the lookups need.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres runs EXISTS queries against tables registered in a Schema.
type Postgres struct {
	db      Querier
	schema  Schema
	timeout time.Duration
}

// PostgresOption configures Postgres.
type PostgresOption func(*Postgres)

// WithTimeout bounds every query. Zero disables the per-call deadline.
func WithTimeout(d time.Duration) PostgresOption {
	return func(p *Postgres) {
		p.timeout = d
	}
}

func NewPostgres(db Querier, schema Schema, opts ...PostgresOption) *Postgres {
	p := &Postgres{db: db, schema: schema, timeout: 2 * time.Second}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Exists implements validator.Lookups.
func (p *Postgres) Exists(ctx context.Context, entity, column string, value any) (bool, error) {
	t, err := p.schema.table(entity, column)
	if err != nil {
		return false, err
	}
	value, ok := t.coerce(column, value)
	if !ok {
		return false, nil
	}
	return p.exists(ctx, t.existsQuery(column, false), value)
}

// ExistsExcluding implements validator.Lookups.
func (p *Postgres) ExistsExcluding(ctx context.Context, entity, column string, value any, excludeID int64) (bool, error) {
	t, err := p.schema.table(entity, column)
	if err != nil {
		return false, err
	}
	value, ok := t.coerce(column, value)
	if !ok {
		return false, nil
	}
	return p.exists(ctx, t.existsQuery(column, true), value, excludeID)
}

func (p *Postgres) exists(ctx context.Context, query string, args ...any) (bool, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	var found bool
	if err := p.db.QueryRow(ctx, query, args...).Scan(&found); err != nil {
		return false, errors.Join(validator.ErrLookupUnavailable, err)
	}
	return found, nil
}
