package lookups_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonta/simonta-api/pkg/lookups"
	"github.com/simonta/simonta-api/pkg/validator"
)

type fakeRow struct {
	found bool
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*bool) = r.found
	return nil
}

type queryCall struct {
	sql         string
	args        []any
	hasDeadline bool
}

type fakeQuerier struct {
	found bool
	err   error
	calls []queryCall
}

func (q *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	_, ok := ctx.Deadline()
	q.calls = append(q.calls, queryCall{sql: sql, args: args, hasDeadline: ok})
	return fakeRow{found: q.found, err: q.err}
}

func testSchema() lookups.Schema {
	return lookups.Schema{
		"users": {Name: "users", Key: "id", Columns: []string{"email", "username"}},
		"desa":  {Name: "desa", Key: "id"},
	}
}

func TestPostgres_Exists(t *testing.T) {
	t.Parallel()

	q := &fakeQuerier{found: true}
	p := lookups.NewPostgres(q, testSchema(), lookups.WithTimeout(time.Second))

	found, err := p.Exists(context.Background(), "users", "email", "a@b.id")
	require.NoError(t, err)
	assert.True(t, found)

	require.Len(t, q.calls, 1)
	assert.Equal(t, `SELECT EXISTS(SELECT 1 FROM "users" WHERE "email" = $1)`, q.calls[0].sql)
	assert.Equal(t, []any{"a@b.id"}, q.calls[0].args)
	assert.True(t, q.calls[0].hasDeadline)
}

func TestPostgres_ExistsByKey(t *testing.T) {
	t.Parallel()

	q := &fakeQuerier{}
	p := lookups.NewPostgres(q, testSchema())

	found, err := p.Exists(context.Background(), "desa", "id", int64(7))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, `SELECT EXISTS(SELECT 1 FROM "desa" WHERE "id" = $1)`, q.calls[0].sql)
}

func TestPostgres_ExistsExcluding(t *testing.T) {
	t.Parallel()

	q := &fakeQuerier{}
	p := lookups.NewPostgres(q, testSchema(), lookups.WithTimeout(0))

	_, err := p.ExistsExcluding(context.Background(), "users", "username", "budi", 42)
	require.NoError(t, err)

	require.Len(t, q.calls, 1)
	assert.Equal(t, `SELECT EXISTS(SELECT 1 FROM "users" WHERE "username" = $1 AND "id" <> $2)`, q.calls[0].sql)
	assert.Equal(t, []any{"budi", int64(42)}, q.calls[0].args)
	assert.False(t, q.calls[0].hasDeadline)
}

func TestPostgres_SchemaGuards(t *testing.T) {
	t.Parallel()

	q := &fakeQuerier{}
	p := lookups.NewPostgres(q, testSchema())

	_, err := p.Exists(context.Background(), "accounts", "email", "x")
	assert.ErrorIs(t, err, lookups.ErrUnknownEntity)

	_, err = p.ExistsExcluding(context.Background(), "users", "password", "x", 1)
	assert.ErrorIs(t, err, lookups.ErrUnknownColumn)

	assert.Empty(t, q.calls)
}

func TestPostgres_StoreError(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection reset")
	p := lookups.NewPostgres(&fakeQuerier{err: boom}, testSchema())

	_, err := p.Exists(context.Background(), "users", "email", "x")
	assert.ErrorIs(t, err, validator.ErrLookupUnavailable)
	assert.ErrorIs(t, err, boom)
}

func TestPostgres_KeyColumnCoercion(t *testing.T) {
	t.Parallel()

	q := &fakeQuerier{found: true}
	p := lookups.NewPostgres(q, testSchema())
	ctx := context.Background()

	found, err := p.Exists(ctx, "desa", "id", "abc")
	require.NoError(t, err)
	assert.False(t, found, "non-integer key never matches")

	found, err = p.Exists(ctx, "desa", "id", 1.5)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, q.calls)

	found, err = p.Exists(ctx, "desa", "id", "12")
	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, q.calls, 1)
	assert.Equal(t, []any{int64(12)}, q.calls[0].args)
}
