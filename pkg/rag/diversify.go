package rag

import (
	"sort"

	"github.com/buzzlab/relevance/internal/util"
	"github.com/buzzlab/relevance/pkg/content"
)

const (
	maxPerContentType = 3
	maxEntityContext  = 5
)

// diversify walks the ranked results in order and keeps at most three per
// content type, so a store dominated by one type cannot crowd the others
// out of the answer.
func diversify(results []content.SearchResult) []content.SearchResult {
	counts := make(map[content.ContentType]int)
	kept := make([]content.SearchResult, 0, len(results))
	for _, result := range results {
		if counts[result.Content.Type] >= maxPerContentType {
			continue
		}
		counts[result.Content.Type]++
		kept = append(kept, result)
	}
	return kept
}

// extractEntityContext collects the entities referenced by the retrieved
// results, keeps those above the importance threshold, and scores each by
// importance weighted with the best similarity of a result mentioning it.
// Entities literally named in the question are always included. The
// result is sorted by score descending and capped at five.
func (e *Engine) extractEntityContext(question string, results []content.SearchResult) []EntityContext {
	best := make(map[string]float64)
	order := make([]string, 0)

	for _, result := range results {
		for _, id := range result.Content.Metadata.Entities {
			entity, ok := e.graph.Get(id)
			if !ok || entity.Importance < e.cfg.EntityRelevanceThreshold {
				continue
			}
			score := entity.Importance * result.Similarity
			if current, seen := best[id]; !seen {
				best[id] = score
				order = append(order, id)
			} else if score > current {
				best[id] = score
			}
		}
	}

	for _, entity := range e.graph.All() {
		if !util.ContainsFold(question, entity.Name) {
			continue
		}
		if _, seen := best[entity.ID]; !seen {
			best[entity.ID] = entity.Importance
			order = append(order, entity.ID)
		}
	}

	contexts := make([]EntityContext, 0, len(order))
	for _, id := range order {
		entity, ok := e.graph.Get(id)
		if !ok {
			continue
		}
		contexts = append(contexts, EntityContext{
			ID:          entity.ID,
			Name:        entity.Name,
			Description: entity.Description,
			Score:       best[id],
		})
	}
	sort.SliceStable(contexts, func(i, j int) bool {
		return contexts[i].Score > contexts[j].Score
	})
	if len(contexts) > maxEntityContext {
		contexts = contexts[:maxEntityContext]
	}
	return contexts
}
