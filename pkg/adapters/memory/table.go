package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/aretw0/cmdbot/pkg/domain"
)

// Table implements ports.NumberTable in memory.
// Safe for concurrent use.
type Table struct {
	name string
	mu   sync.RWMutex
	data map[string]float64
}

// NewTable creates an empty table.
func NewTable(name string) *Table {
	return &Table{
		name: name,
		data: make(map[string]float64),
	}
}

func (t *Table) Name() string { return t.name }

// SetNumber stores the value.
func (t *Table) SetNumber(ctx context.Context, key string, value float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data[key] = value
	return nil
}

// Number retrieves the value.
func (t *Table) Number(ctx context.Context, key string) (float64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.data[key]
	if !ok {
		return 0, domain.ErrEntryNotFound
	}
	return v, nil
}

// Entries returns a copy of every entry.
func (t *Table) Entries() map[string]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return maps.Clone(t.data)
}
