package knowledge

import (
	"sort"

	"github.com/buzzlab/relevance/internal/util"
)

const (
	// directRelationScore is the fixed similarity for entities that list
	// each other as related. The relation is treated as symmetric even
	// though storage is directional.
	directRelationScore = 0.8
	// topicOverlapCap keeps indirect topic-overlap similarity strictly
	// below the direct-relation score.
	topicOverlapCap = 0.7
)

// EntityGraph is a read-only store of entities keyed by id. It is built
// once from seed data and safe for concurrent reads.
type EntityGraph struct {
	entities map[string]Entity
	order    []string
}

// NewEntityGraph builds an entity graph from the given entities. Later
// duplicates of an id replace earlier ones.
func NewEntityGraph(entities []Entity) *EntityGraph {
	g := &EntityGraph{
		entities: make(map[string]Entity, len(entities)),
		order:    make([]string, 0, len(entities)),
	}
	for _, e := range entities {
		if _, exists := g.entities[e.ID]; !exists {
			g.order = append(g.order, e.ID)
		}
		g.entities[e.ID] = e
	}
	return g
}

// Get returns the entity with the given id. Unknown ids return the zero
// entity and false, never an error.
func (g *EntityGraph) Get(id string) (Entity, bool) {
	e, ok := g.entities[id]
	return e, ok
}

// All returns every entity in insertion order.
func (g *EntityGraph) All() []Entity {
	out := make([]Entity, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.entities[id])
	}
	return out
}

// Related returns the entities listed as related to id, sorted by
// importance descending. Unknown related ids are skipped.
func (g *EntityGraph) Related(id string) []Entity {
	e, ok := g.entities[id]
	if !ok {
		return nil
	}
	out := make([]Entity, 0, len(e.Related))
	for _, rid := range e.Related {
		if rel, ok := g.entities[rid]; ok {
			out = append(out, rel)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Importance > out[j].Importance
	})
	return out
}

// ByImportance returns all entities with importance >= threshold, sorted
// descending by importance.
func (g *EntityGraph) ByImportance(threshold float64) []Entity {
	out := make([]Entity, 0)
	for _, id := range g.order {
		e := g.entities[id]
		if e.Importance >= threshold {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Importance > out[j].Importance
	})
	return out
}

// Similarity scores how related two entities are, in [0,1]. A direct
// relation in either direction scores a fixed 0.8. Otherwise the score is
// the average product of relevance over shared topics, capped at 0.7 so an
// indirect match never outranks a direct one. Entities with no shared
// topics and no direct edge score 0, as do unknown ids.
func (g *EntityGraph) Similarity(aID, bID string) float64 {
	a, okA := g.entities[aID]
	b, okB := g.entities[bID]
	if !okA || !okB {
		return 0
	}

	if listsRelated(a, bID) || listsRelated(b, aID) {
		return directRelationScore
	}

	shared := 0
	sum := 0.0
	for topic, ra := range a.TopicRelevance {
		if rb, ok := b.TopicRelevance[topic]; ok {
			sum += ra * rb
			shared++
		}
	}
	if shared == 0 {
		return 0
	}

	score := sum / float64(shared)
	if score > topicOverlapCap {
		return topicOverlapCap
	}
	if score < 0 {
		return 0
	}
	return score
}

func listsRelated(e Entity, id string) bool {
	for _, rid := range e.Related {
		if rid == id {
			return true
		}
	}
	return false
}

// DetectInText returns the entities whose name occurs in the given text,
// matched case-insensitively.
func (g *EntityGraph) DetectInText(text string) []Entity {
	out := make([]Entity, 0)
	for _, id := range g.order {
		e := g.entities[id]
		if e.Name != "" && util.ContainsFold(text, e.Name) {
			out = append(out, e)
		}
	}
	return out
}
