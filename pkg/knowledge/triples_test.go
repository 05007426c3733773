package knowledge

import (
	"math"
	"testing"
)

func testTriples(t *testing.T) *TripleStore {
	t.Helper()
	store, err := NewTripleStore(testGraph(), SeedTriples())
	if err != nil {
		t.Fatalf("failed to build triple store: %v", err)
	}
	return store
}

func TestNewTripleStoreRejectsUnknownSubject(t *testing.T) {
	_, err := NewTripleStore(testGraph(), []Triple{
		{Subject: "ghost", Predicate: PredicateOffers, Object: "buzzlab", Confidence: 1.0},
	})
	if err == nil {
		t.Fatalf("expected error for unknown subject")
	}
}

func TestFind(t *testing.T) {
	store := testTriples(t)

	tests := []struct {
		name      string
		subject   string
		predicate Predicate
		object    string
		want      int
	}{
		{name: "by subject", subject: "buzzlab", want: 6},
		{name: "by subject and predicate", subject: "buzzlab", predicate: PredicateOffers, want: 4},
		{name: "by object", object: "instagram", want: 3},
		{name: "by predicate", predicate: PredicateOperatesOn, want: 6},
		{name: "exact", subject: "buzzlab", predicate: PredicateFoundedBy, object: "keita-mori", want: 1},
		{name: "no match", subject: "tokyo", want: 0},
		{name: "wildcard all", want: 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := store.Find(tt.subject, tt.predicate, tt.object)
			if len(got) != tt.want {
				t.Fatalf("expected %d triples, got %d", tt.want, len(got))
			}
		})
	}
}

func TestRelationshipStrength(t *testing.T) {
	store := testTriples(t)

	// buzzlab->keita-mori (1.0) and keita-mori->buzzlab (1.0).
	if got := store.RelationshipStrength("buzzlab", "keita-mori"); got != 1.0 {
		t.Errorf("expected 1.0, got %v", got)
	}
	// Symmetric lookup.
	if got := store.RelationshipStrength("keita-mori", "buzzlab"); got != 1.0 {
		t.Errorf("expected 1.0 in reverse direction, got %v", got)
	}
	// Single triple with confidence 0.95.
	if got := store.RelationshipStrength("content-production", "short-form-video"); got != 0.95 {
		t.Errorf("expected 0.95, got %v", got)
	}
	// Unconnected entities.
	if got := store.RelationshipStrength("tokyo", "instagram"); got != 0 {
		t.Errorf("expected 0 for unconnected entities, got %v", got)
	}
}

func TestCentrality(t *testing.T) {
	store := testTriples(t)

	// buzzlab appears in 7 of 17 triples.
	want := 7.0 / 17.0
	if got := store.Centrality("buzzlab"); math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got := store.Centrality("unknown"); got != 0 {
		t.Errorf("expected 0 for unknown entity, got %v", got)
	}
}

func TestCentralityEmptyStore(t *testing.T) {
	store := &TripleStore{}
	if got := store.Centrality("buzzlab"); got != 0 {
		t.Fatalf("expected 0 for empty store, got %v", got)
	}
}
