package content

import (
	"context"
)

// Filter narrows a candidate query. Zero values are wildcards; Limit <= 0
// means no limit.
type Filter struct {
	Type    ContentType
	Cluster string
	Limit   int
}

// Storage is the persistence boundary for content records. Implementations
// must support concurrent reads and concurrent idempotent upserts; they do
// not rank by vector similarity, the engine computes that itself so a
// vector-native backend can be substituted later without touching callers.
type Storage interface {
	// Upsert inserts or fully replaces the record with the same id.
	Upsert(ctx context.Context, record VectorContent) error

	// Get returns the record with the given id; unknown ids return
	// (zero, false, nil), never an error.
	Get(ctx context.Context, id string) (VectorContent, bool, error)

	// QueryFiltered returns candidate records matching the filter.
	// Ordering is implementation-defined.
	QueryFiltered(ctx context.Context, filter Filter) ([]VectorContent, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)
}
