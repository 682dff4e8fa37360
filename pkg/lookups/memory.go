package lookups

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/simonta/simonta-api/pkg/validator"
)

// Memory is a concurrency-safe in-process Lookups. Values are compared by
// their fmt representation, so int64(3), 3 and 3.0 all match "3".
type Memory struct {
	mu   sync.RWMutex
	rows map[string]map[int64]map[string]string // entity -> id -> column -> value
}

func NewMemory() *Memory {
	return &Memory{rows: make(map[string]map[int64]map[string]string)}
}

// Put inserts or replaces the row with the given id.
func (m *Memory) Put(entity string, id int64, row map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rows[entity] == nil {
		m.rows[entity] = make(map[int64]map[string]string)
	}
	cols := make(map[string]string, len(row)+1)
	for k, v := range row {
		cols[k] = key(v)
	}
	cols["id"] = key(id)
	m.rows[entity][id] = cols
}

// Delete removes a row. Missing rows are ignored.
func (m *Memory) Delete(entity string, id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows[entity], id)
}

// Exists implements validator.Lookups.
func (m *Memory) Exists(ctx context.Context, entity, column string, value any) (bool, error) {
	return m.find(ctx, entity, column, value, nil)
}

// ExistsExcluding implements validator.Lookups.
func (m *Memory) ExistsExcluding(ctx context.Context, entity, column string, value any, excludeID int64) (bool, error) {
	return m.find(ctx, entity, column, value, &excludeID)
}

func (m *Memory) find(ctx context.Context, entity, column string, value any, exclude *int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, errors.Join(validator.ErrLookupUnavailable, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	want := key(value)
	for id, cols := range m.rows[entity] {
		if exclude != nil && id == *exclude {
			continue
		}
		if v, ok := cols[column]; ok && v == want {
			return true, nil
		}
	}
	return false, nil
}

func key(v any) string {
	return fmt.Sprint(v)
}
