package content

import (
	"context"
	"sync"
)

// MemoryStorage is an in-memory Storage implementation. It backs tests
// and single-process deployments; writes copy the record so callers
// cannot mutate stored state afterwards.
type MemoryStorage struct {
	mu      sync.RWMutex
	records map[string]VectorContent
	order   []string
}

// NewMemoryStorage creates an empty in-memory content store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		records: make(map[string]VectorContent),
	}
}

// Upsert inserts or replaces the record with the same id. Repeated
// upserts of one id leave exactly one stored record with the latest data.
func (m *MemoryStorage) Upsert(ctx context.Context, record VectorContent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[record.ID]; !exists {
		m.order = append(m.order, record.ID)
	}
	m.records[record.ID] = cloneRecord(record)
	return nil
}

// Get returns the record with the given id, if present.
func (m *MemoryStorage) Get(ctx context.Context, id string) (VectorContent, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[id]
	if !ok {
		return VectorContent{}, false, nil
	}
	return cloneRecord(record), true, nil
}

// QueryFiltered returns candidates matching the filter, most recently
// inserted first.
func (m *MemoryStorage) QueryFiltered(ctx context.Context, filter Filter) ([]VectorContent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]VectorContent, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		record := m.records[m.order[i]]
		if filter.Type != "" && record.Type != filter.Type {
			continue
		}
		if filter.Cluster != "" && record.ClusterID != filter.Cluster {
			continue
		}
		out = append(out, cloneRecord(record))
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

// Count returns the number of stored records.
func (m *MemoryStorage) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records), nil
}

func cloneRecord(record VectorContent) VectorContent {
	out := record
	if record.Vector != nil {
		out.Vector = make([]float32, len(record.Vector))
		copy(out.Vector, record.Vector)
	}
	out.Metadata.Entities = cloneStrings(record.Metadata.Entities)
	out.Metadata.Keywords = cloneStrings(record.Metadata.Keywords)
	out.Metadata.SemanticContext = cloneStrings(record.Metadata.SemanticContext)
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
