package lookups

import (
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Table describes one entity the lookups may query.
type Table struct {
	Name    string   // SQL table name
	Key     string   // primary key column used by ExistsExcluding
	Columns []string // columns a rule may reference
}

// Schema maps rule entity names to tables.
type Schema map[string]Table

func (s Schema) table(entity, column string) (Table, error) {
	t, ok := s[entity]
	if !ok {
		return Table{}, ErrUnknownEntity
	}
	if column != t.Key && !slices.Contains(t.Columns, column) {
		return Table{}, ErrUnknownColumn
	}
	return t, nil
}

func (t Table) existsQuery(column string, excluding bool) string {
	var b strings.Builder
	b.WriteString("SELECT EXISTS(SELECT 1 FROM ")
	b.WriteString(pgx.Identifier{t.Name}.Sanitize())
	b.WriteString(" WHERE ")
	b.WriteString(pgx.Identifier{column}.Sanitize())
	b.WriteString(" = $1")
	if excluding {
		b.WriteString(" AND ")
		b.WriteString(pgx.Identifier{t.Key}.Sanitize())
		b.WriteString(" <> $2")
	}
	b.WriteString(")")
	return b.String()
}

// coerce converts values compared against the bigint key column. A value
// that is not an integer cannot match any row.
func (t Table) coerce(column string, v any) (any, bool) {
	if column != t.Key {
		return v, true
	}
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		if n == math.Trunc(n) && math.Abs(n) < 1<<63 {
			return int64(n), true
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return i, true
		}
	}
	return nil, false
}
