package content

import (
	"context"
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    []float32
		b    []float32
		want float64
	}{
		{name: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, want: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1},
		{name: "length mismatch", a: []float32{1, 2}, b: []float32{1, 2, 3}, want: 0},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 1}, want: 0},
		{name: "empty", a: nil, b: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func testStore() *Store {
	return NewStore(NewMemoryStorage())
}

func TestUpsertRequiresID(t *testing.T) {
	store := testStore()
	if err := store.Upsert(context.Background(), VectorContent{Title: "no id"}); err == nil {
		t.Fatalf("expected error for record without id")
	}
}

func TestUpsertReplacesByID(t *testing.T) {
	ctx := context.Background()
	store := testStore()

	if err := store.Upsert(ctx, VectorContent{ID: "a", Title: "first"}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := store.Upsert(ctx, VectorContent{ID: "a", Title: "second"}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 record, got %d", count)
	}

	record, ok, err := store.Get(ctx, "a")
	if err != nil || !ok {
		t.Fatalf("expected record, got ok=%v err=%v", ok, err)
	}
	if record.Title != "second" {
		t.Errorf("expected latest title, got %q", record.Title)
	}
}

func TestSimilaritySearch(t *testing.T) {
	ctx := context.Background()
	store := testStore()

	records := []VectorContent{
		{ID: "exact", Type: TypeService, Title: "Exact", Vector: []float32{1, 0}},
		{ID: "close", Type: TypeBlog, Title: "Close", Vector: []float32{1, 0.2}},
		{ID: "far", Type: TypeBlog, Title: "Far", Vector: []float32{0, 1}},
		{ID: "pending", Type: TypeBlog, Title: "Not embedded"},
	}
	for _, r := range records {
		if err := store.Upsert(ctx, r); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	results, err := store.SimilaritySearch(ctx, []float32{1, 0}, SearchParams{Limit: 10, Threshold: 0.5})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Content.ID != "exact" || results[1].Content.ID != "close" {
		t.Errorf("expected order [exact close], got [%s %s]", results[0].Content.ID, results[1].Content.ID)
	}
	if results[0].Rank != 1 || results[1].Rank != 2 {
		t.Errorf("expected ranks 1 and 2, got %d and %d", results[0].Rank, results[1].Rank)
	}
	if results[0].Similarity < results[1].Similarity {
		t.Errorf("expected descending similarity, got %v then %v", results[0].Similarity, results[1].Similarity)
	}
}

func TestSimilaritySearchTypeFilterAndLimit(t *testing.T) {
	ctx := context.Background()
	store := testStore()

	records := []VectorContent{
		{ID: "s1", Type: TypeService, Vector: []float32{1, 0}},
		{ID: "b1", Type: TypeBlog, Vector: []float32{1, 0}},
		{ID: "b2", Type: TypeBlog, Vector: []float32{1, 0.1}},
	}
	for _, r := range records {
		if err := store.Upsert(ctx, r); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	results, err := store.SimilaritySearch(ctx, []float32{1, 0}, SearchParams{Limit: 1, Threshold: 0, Type: TypeBlog})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Content.Type != TypeBlog {
		t.Errorf("expected blog result, got %s", results[0].Content.Type)
	}
}

func TestFindByEntity(t *testing.T) {
	ctx := context.Background()
	store := testStore()

	records := []VectorContent{
		{ID: "low", Metadata: Metadata{Entities: []string{"instagram"}, Relevance: 0.3}},
		{ID: "high", Metadata: Metadata{Entities: []string{"instagram", "buzzlab"}, Relevance: 0.9}},
		{ID: "other", Metadata: Metadata{Entities: []string{"tiktok"}, Relevance: 1.0}},
	}
	for _, r := range records {
		if err := store.Upsert(ctx, r); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	matched, err := store.FindByEntity(ctx, "instagram", 10)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(matched) != 2 {
		t.Fatalf("expected 2 records, got %d", len(matched))
	}
	if matched[0].ID != "high" || matched[1].ID != "low" {
		t.Errorf("expected relevance order [high low], got [%s %s]", matched[0].ID, matched[1].ID)
	}

	limited, err := store.FindByEntity(ctx, "instagram", 1)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected 1 record with limit, got %d", len(limited))
	}
}

func TestAnalyzeRelevance(t *testing.T) {
	ctx := context.Background()
	store := testStore()

	records := []VectorContent{
		{
			ID:        "full",
			ClusterID: "sns-marketing",
			Metadata: Metadata{
				Entities:        []string{"buzzlab"},
				SemanticContext: []string{"agency"},
			},
		},
		{ID: "bare"},
	}
	for _, r := range records {
		if err := store.Upsert(ctx, r); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	tests := []struct {
		name string
		id   string
		want float64
		ok   bool
	}{
		{name: "all signals", id: "full", want: (1.0 + 0.8 + 0.85) / 3.0, ok: true},
		{name: "no signals", id: "bare", want: (0.3 + 0.5 + 0.4) / 3.0, ok: true},
		{name: "unknown", id: "nope", want: 0, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := store.AnalyzeRelevance(ctx, tt.id)
			if err != nil {
				t.Fatalf("analyze failed: %v", err)
			}
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
