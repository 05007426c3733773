package content

import (
	"context"
	"fmt"
	"sort"
)

// Relevance analysis component scores. Each signal contributes its high
// value when present and its low value when absent; the composite is the
// plain average of the three.
const (
	relevanceEntitiesPresent = 1.0
	relevanceEntitiesAbsent  = 0.3
	relevanceClusterPresent  = 0.8
	relevanceClusterAbsent   = 0.5
	relevanceContextPresent  = 0.85
	relevanceContextAbsent   = 0.4
)

// Store answers similarity queries over a Storage backend. Similarity is
// computed client-side over the filtered candidate set, which is
// acceptable at site scale; swapping in an index-accelerated backend only
// requires a new Storage implementation.
type Store struct {
	storage Storage
}

// NewStore wraps a storage backend.
func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Upsert inserts or replaces a record by id.
func (s *Store) Upsert(ctx context.Context, record VectorContent) error {
	if record.ID == "" {
		return fmt.Errorf("content record requires an id")
	}
	return s.storage.Upsert(ctx, record)
}

// Get returns the record with the given id, if present.
func (s *Store) Get(ctx context.Context, id string) (VectorContent, bool, error) {
	return s.storage.Get(ctx, id)
}

// Query returns candidate records matching the optional filters.
func (s *Store) Query(ctx context.Context, filter Filter) ([]VectorContent, error) {
	return s.storage.QueryFiltered(ctx, filter)
}

// SearchParams configures a similarity search.
type SearchParams struct {
	Limit     int
	Threshold float64
	Type      ContentType
	Cluster   string
}

// SimilaritySearch fetches filtered candidates, scores each embedded
// candidate by cosine similarity against the query vector, discards
// results below the threshold, and returns the top hits sorted descending
// with 1-based ranks.
func (s *Store) SimilaritySearch(ctx context.Context, queryVector []float32, params SearchParams) ([]SearchResult, error) {
	candidates, err := s.storage.QueryFiltered(ctx, Filter{
		Type:    params.Type,
		Cluster: params.Cluster,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidates: %w", err)
	}

	results := make([]SearchResult, 0, len(candidates))
	for _, c := range candidates {
		if !c.Embedded() {
			continue
		}
		sim := CosineSimilarity(queryVector, c.Vector)
		if sim < params.Threshold {
			continue
		}
		results = append(results, SearchResult{Content: c, Similarity: sim})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if params.Limit > 0 && len(results) > params.Limit {
		results = results[:params.Limit]
	}
	for i := range results {
		results[i].Rank = i + 1
	}
	return results, nil
}

// FindByEntity returns records whose metadata lists the entity, ranked by
// their stored relevance score descending.
func (s *Store) FindByEntity(ctx context.Context, entityID string, limit int) ([]VectorContent, error) {
	candidates, err := s.storage.QueryFiltered(ctx, Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidates: %w", err)
	}

	matched := make([]VectorContent, 0)
	for _, c := range candidates {
		for _, e := range c.Metadata.Entities {
			if e == entityID {
				matched = append(matched, c)
				break
			}
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Metadata.Relevance > matched[j].Metadata.Relevance
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// AnalyzeRelevance scores how well-connected a record is: entity links,
// cluster membership, and semantic context each contribute. Unknown ids
// return ok=false.
func (s *Store) AnalyzeRelevance(ctx context.Context, contentID string) (float64, bool, error) {
	record, ok, err := s.storage.Get(ctx, contentID)
	if err != nil || !ok {
		return 0, ok, err
	}

	entityScore := relevanceEntitiesAbsent
	if len(record.Metadata.Entities) > 0 {
		entityScore = relevanceEntitiesPresent
	}
	clusterScore := relevanceClusterAbsent
	if record.ClusterID != "" {
		clusterScore = relevanceClusterPresent
	}
	contextScore := relevanceContextAbsent
	if len(record.Metadata.SemanticContext) > 0 {
		contextScore = relevanceContextPresent
	}

	return (entityScore + clusterScore + contextScore) / 3.0, true, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	return s.storage.Count(ctx)
}
