package knowledge

import (
	"fmt"
)

// TripleStore holds subject/predicate/object facts linking entities. Like
// the entity graph it is assembled at build time and read-only afterwards.
type TripleStore struct {
	triples []Triple
}

// NewTripleStore validates and stores the given triples. Every subject
// must reference an entity known to the graph; a violation fails the
// whole build since seed data is static.
func NewTripleStore(graph *EntityGraph, triples []Triple) (*TripleStore, error) {
	for i, t := range triples {
		if _, ok := graph.Get(t.Subject); !ok {
			return nil, fmt.Errorf("triple %d: subject %q does not reference a known entity", i, t.Subject)
		}
	}
	stored := make([]Triple, len(triples))
	copy(stored, triples)
	return &TripleStore{triples: stored}, nil
}

// Find returns all triples matching the given fields. Empty subject or
// object and an empty predicate act as wildcards.
func (s *TripleStore) Find(subject string, predicate Predicate, object string) []Triple {
	out := make([]Triple, 0)
	for _, t := range s.triples {
		if subject != "" && t.Subject != subject {
			continue
		}
		if predicate != "" && t.Predicate != predicate {
			continue
		}
		if object != "" && t.Object != object {
			continue
		}
		out = append(out, t)
	}
	return out
}

// All returns every stored triple.
func (s *TripleStore) All() []Triple {
	out := make([]Triple, len(s.triples))
	copy(out, s.triples)
	return out
}

// RelationshipStrength averages the confidence of all triples connecting
// a and b in either direction. It returns 0 when no such triple exists.
func (s *TripleStore) RelationshipStrength(a, b string) float64 {
	sum := 0.0
	count := 0
	for _, t := range s.triples {
		if (t.Subject == a && t.Object == b) || (t.Subject == b && t.Object == a) {
			sum += t.Confidence
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// Centrality returns the fraction of all triples in which the entity
// appears as subject or object. An empty store yields 0.
func (s *TripleStore) Centrality(entityID string) float64 {
	if len(s.triples) == 0 {
		return 0
	}
	count := 0
	for _, t := range s.triples {
		if t.Subject == entityID || t.Object == entityID {
			count++
		}
	}
	return float64(count) / float64(len(s.triples))
}
