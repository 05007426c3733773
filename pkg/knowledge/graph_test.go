package knowledge

import (
	"math"
	"testing"
)

func testGraph() *EntityGraph {
	return NewEntityGraph(SeedEntities())
}

func TestGetUnknownID(t *testing.T) {
	g := testGraph()

	if _, ok := g.Get("does-not-exist"); ok {
		t.Fatalf("expected unknown id to return ok=false")
	}
}

func TestRelatedSortedByImportance(t *testing.T) {
	g := testGraph()

	related := g.Related("buzzlab")
	if len(related) == 0 {
		t.Fatalf("expected related entities for buzzlab")
	}
	for i := 1; i < len(related); i++ {
		if related[i].Importance > related[i-1].Importance {
			t.Errorf("related entities not sorted: %q (%.2f) after %q (%.2f)",
				related[i].ID, related[i].Importance, related[i-1].ID, related[i-1].Importance)
		}
	}
}

func TestByImportance(t *testing.T) {
	g := testGraph()

	entities := g.ByImportance(0.85)
	if len(entities) == 0 {
		t.Fatalf("expected entities above threshold")
	}
	for i, e := range entities {
		if e.Importance < 0.85 {
			t.Errorf("entity %q below threshold: %.2f", e.ID, e.Importance)
		}
		if i > 0 && e.Importance > entities[i-1].Importance {
			t.Errorf("entities not sorted descending at index %d", i)
		}
	}
}

func TestSimilarityDirectRelation(t *testing.T) {
	g := testGraph()

	got := g.Similarity("buzzlab", "keita-mori")
	if got != 0.8 {
		t.Fatalf("expected 0.8 for directly related entities, got %v", got)
	}
}

func TestSimilarityDirectRelationOneDirection(t *testing.T) {
	// tokyo lists buzzlab but is itself listed too; engagement-rate lists
	// sns-account-management one-way only.
	g := testGraph()

	got := g.Similarity("sns-account-management", "engagement-rate")
	if got != 0.8 {
		t.Fatalf("expected 0.8 for a one-directional relation, got %v", got)
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	g := testGraph()

	entities := g.All()
	for _, a := range entities {
		for _, b := range entities {
			ab := g.Similarity(a.ID, b.ID)
			ba := g.Similarity(b.ID, a.ID)
			if math.Abs(ab-ba) > 1e-12 {
				t.Errorf("similarity(%q,%q)=%v but similarity(%q,%q)=%v", a.ID, b.ID, ab, b.ID, a.ID, ba)
			}
			if ab < 0 || ab > 1 {
				t.Errorf("similarity(%q,%q)=%v out of [0,1]", a.ID, b.ID, ab)
			}
		}
	}
}

func TestSimilarityTopicOverlap(t *testing.T) {
	g := NewEntityGraph([]Entity{
		{ID: "a", Name: "A", TopicRelevance: map[string]float64{"x": 0.9, "y": 0.8}},
		{ID: "b", Name: "B", TopicRelevance: map[string]float64{"x": 0.5, "z": 0.4}},
	})

	// One shared topic: 0.9 * 0.5 = 0.45.
	got := g.Similarity("a", "b")
	if math.Abs(got-0.45) > 1e-12 {
		t.Fatalf("expected 0.45, got %v", got)
	}
}

func TestSimilarityCappedBelowDirect(t *testing.T) {
	g := NewEntityGraph([]Entity{
		{ID: "a", Name: "A", TopicRelevance: map[string]float64{"x": 1.0}},
		{ID: "b", Name: "B", TopicRelevance: map[string]float64{"x": 1.0}},
	})

	if got := g.Similarity("a", "b"); got != 0.7 {
		t.Fatalf("expected indirect similarity capped at 0.7, got %v", got)
	}
}

func TestSimilarityNoOverlap(t *testing.T) {
	g := NewEntityGraph([]Entity{
		{ID: "a", Name: "A", TopicRelevance: map[string]float64{"x": 1.0}},
		{ID: "b", Name: "B", TopicRelevance: map[string]float64{"y": 1.0}},
	})

	if got := g.Similarity("a", "b"); got != 0 {
		t.Fatalf("expected 0 for disjoint entities, got %v", got)
	}
}

func TestSimilarityUnknownID(t *testing.T) {
	g := testGraph()

	if got := g.Similarity("buzzlab", "nope"); got != 0 {
		t.Fatalf("expected 0 for unknown id, got %v", got)
	}
}

func TestDetectInText(t *testing.T) {
	g := testGraph()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single entity",
			text: "We grow accounts on instagram every day.",
			want: []string{"instagram"},
		},
		{
			name: "multiple entities case-insensitive",
			text: "BUZZLAB was founded by Keita Mori in Tokyo.",
			want: []string{"buzzlab", "keita-mori", "tokyo"},
		},
		{
			name: "no entities",
			text: "Nothing relevant here.",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.DetectInText(tt.text)
			ids := make([]string, 0, len(got))
			for _, e := range got {
				ids = append(ids, e.ID)
			}
			if len(ids) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, ids)
			}
			for i := range ids {
				if ids[i] != tt.want[i] {
					t.Errorf("expected %v, got %v", tt.want, ids)
					break
				}
			}
		})
	}
}
