package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/buzzlab/relevance/pkg/ai"
	"github.com/buzzlab/relevance/pkg/cluster"
	"github.com/buzzlab/relevance/pkg/content"
	"github.com/buzzlab/relevance/pkg/knowledge"
)

// fakeClient drives the engine in tests. Zero value embeds everything to
// the same vector and answers with a fixed completion.
type fakeClient struct {
	embedErr      error
	completion    string
	completionErr error
}

func (f *fakeClient) GenerateEmbedding(ctx context.Context, input string) ([]float32, error) {
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	return []float32{1, 0, 0}, nil
}

func (f *fakeClient) GenerateCompletion(ctx context.Context, prompt string, opts ...ai.GenerateOption) (string, error) {
	if f.completionErr != nil {
		return "", f.completionErr
	}
	if f.completion != "" {
		return f.completion, nil
	}
	return "BuzzLab offers full SNS account management.", nil
}

func (f *fakeClient) GenerateCompletionWithFormat(ctx context.Context, name string, description string, prompt string, out any, opts ...ai.GenerateOption) error {
	return fmt.Errorf("not implemented")
}

func (f *fakeClient) ResetMetrics() {}

func (f *fakeClient) GetMetrics() ai.ModelMetrics { return ai.ModelMetrics{} }

func newTestEngine(t *testing.T, client ai.Client, memory *SessionMemory) (*Engine, *content.Store) {
	t.Helper()
	graph := knowledge.NewEntityGraph(knowledge.SeedEntities())
	triples, err := knowledge.NewTripleStore(graph, knowledge.SeedTriples())
	if err != nil {
		t.Fatalf("failed to build triple store: %v", err)
	}
	clusters, err := cluster.NewIndex(cluster.SeedClusters())
	if err != nil {
		t.Fatalf("failed to build cluster index: %v", err)
	}
	store := content.NewStore(content.NewMemoryStorage())

	engine := NewEngine(EngineParams{
		Graph:    graph,
		Triples:  triples,
		Clusters: clusters,
		Store:    store,
		Client:   client,
		Memory:   memory,
		Config:   Config{MemoryEnabled: memory != nil},
	})
	return engine, store
}

func seedContent(t *testing.T, store *content.Store) {
	t.Helper()
	records := []content.VectorContent{
		{
			ID:        "svc-account",
			Type:      content.TypeService,
			Title:     "SNS Account Management",
			Body:      "Monthly planning, posting, and reporting for brand accounts.",
			ClusterID: "sns-marketing",
			Vector:    []float32{1, 0, 0},
			Metadata: content.Metadata{
				Entities:        []string{"buzzlab", "sns-account-management"},
				SemanticContext: []string{"account growth"},
				SourceURL:       "/services/sns-marketing",
			},
		},
		{
			ID:        "blog-reels",
			Type:      content.TypeBlog,
			Title:     "Reels That Reach",
			Body:      "How we plan Reels around the discovery algorithm.",
			ClusterID: "instagram-marketing",
			Vector:    []float32{1, 0.1, 0},
			Metadata: content.Metadata{
				Entities:        []string{"instagram"},
				SemanticContext: []string{"reels"},
				SourceURL:       "/blog/reels-that-reach",
			},
		},
	}
	for _, r := range records {
		if err := store.Upsert(context.Background(), r); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}
}

func TestQueryEmptyQuestion(t *testing.T) {
	engine, _ := newTestEngine(t, &fakeClient{}, nil)

	_, err := engine.Query(context.Background(), Query{Question: "   "})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Field != "question" {
		t.Errorf("expected field question, got %q", verr.Field)
	}
}

func TestQueryEndToEnd(t *testing.T) {
	engine, store := newTestEngine(t, &fakeClient{}, nil)
	seedContent(t, store)

	response, err := engine.Query(context.Background(), Query{
		Question:        "What services does BuzzLab offer?",
		IncludeEntities: true,
	})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}

	if !strings.Contains(response.Answer, "account management") {
		t.Errorf("expected generated answer, got %q", response.Answer)
	}
	if len(response.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(response.Sources))
	}
	if response.Sources[0].Rank != 1 || response.Sources[1].Rank != 2 {
		t.Errorf("expected 1-based ranks, got %d and %d", response.Sources[0].Rank, response.Sources[1].Rank)
	}
	if response.Confidence <= 0 || response.Confidence > 1 {
		t.Errorf("expected confidence in (0,1], got %v", response.Confidence)
	}
	if len(response.FollowUps) < 3 {
		t.Errorf("expected at least 3 follow-ups, got %d", len(response.FollowUps))
	}
	if len(response.RelatedTopics) == 0 {
		t.Errorf("expected related topics")
	}

	found := false
	for _, entity := range response.Entities {
		if entity.ID == "buzzlab" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected buzzlab in entity context, got %+v", response.Entities)
	}
}

func TestQueryProviderFailureFallsBack(t *testing.T) {
	client := &fakeClient{completionErr: fmt.Errorf("provider down")}
	engine, store := newTestEngine(t, client, nil)
	seedContent(t, store)

	response, err := engine.Query(context.Background(), Query{Question: "How much do your services cost?"})
	if err != nil {
		t.Fatalf("expected degraded response, not error: %v", err)
	}
	if !strings.Contains(response.Answer, "services and pricing") {
		t.Errorf("expected service template answer, got %q", response.Answer)
	}
	if len(response.Sources) == 0 {
		t.Errorf("expected sources to survive provider failure")
	}
}

func TestQueryEmbeddingFailureDegrades(t *testing.T) {
	client := &fakeClient{embedErr: fmt.Errorf("embedding down")}
	engine, store := newTestEngine(t, client, nil)
	seedContent(t, store)

	response, err := engine.Query(context.Background(), Query{Question: "anything"})
	if err != nil {
		t.Fatalf("expected degraded response, not error: %v", err)
	}
	if response.Answer != degradedAnswer {
		t.Errorf("expected degraded answer, got %q", response.Answer)
	}
	if response.Confidence != 0 {
		t.Errorf("expected confidence 0, got %v", response.Confidence)
	}
	if len(response.FollowUps) < 3 {
		t.Errorf("expected generic follow-ups, got %v", response.FollowUps)
	}
}

func TestQueryRecordsSessionHistory(t *testing.T) {
	memory := NewSessionMemory(SessionMemoryParams{})
	defer memory.Close()
	engine, store := newTestEngine(t, &fakeClient{}, memory)
	seedContent(t, store)

	for i := 0; i < 3; i++ {
		if _, err := engine.Query(context.Background(), Query{
			Question:  fmt.Sprintf("question %d", i),
			SessionID: "s1",
		}); err != nil {
			t.Fatalf("query failed: %v", err)
		}
	}

	history := engine.GetConversationHistory("s1")
	if len(history) != 3 {
		t.Fatalf("expected 3 recorded queries, got %d", len(history))
	}
	if history[0].Question != "question 0" {
		t.Errorf("expected oldest first, got %q", history[0].Question)
	}
	if got := engine.GetConversationHistory("unknown"); len(got) != 0 {
		t.Errorf("expected empty history for unknown session, got %d", len(got))
	}
}

func TestDiversify(t *testing.T) {
	results := make([]content.SearchResult, 0, 8)
	for i := 0; i < 6; i++ {
		results = append(results, content.SearchResult{
			Content:    content.VectorContent{ID: fmt.Sprintf("blog-%d", i), Type: content.TypeBlog},
			Similarity: 1 - float64(i)*0.05,
		})
	}
	results = append(results,
		content.SearchResult{Content: content.VectorContent{ID: "svc", Type: content.TypeService}, Similarity: 0.6},
		content.SearchResult{Content: content.VectorContent{ID: "faq", Type: content.TypeFAQ}, Similarity: 0.55},
	)

	kept := diversify(results)
	if len(kept) != 5 {
		t.Fatalf("expected 5 results, got %d", len(kept))
	}
	wantOrder := []string{"blog-0", "blog-1", "blog-2", "svc", "faq"}
	for i, id := range wantOrder {
		if kept[i].Content.ID != id {
			t.Fatalf("expected order %v, got position %d = %s", wantOrder, i, kept[i].Content.ID)
		}
	}
}

func TestScoreConfidence(t *testing.T) {
	results := []content.SearchResult{
		{Similarity: 0.8},
		{Similarity: 0.6},
	}

	tests := []struct {
		name        string
		results     []content.SearchResult
		answer      string
		sourceCount int
		want        float64
	}{
		{name: "no results", results: nil, answer: "anything", sourceCount: 0, want: 0.1},
		{
			name:        "two sources",
			results:     results,
			answer:      strings.Repeat("a", 250),
			sourceCount: 2,
			// 0.6*0.7 + 0.3*0.5 + 0.1
			want: 0.67,
		},
		{
			name:        "single source no bonus",
			results:     []content.SearchResult{{Similarity: 0.5}},
			answer:      "",
			sourceCount: 1,
			want:        0.3,
		},
		{
			name:        "clipped at one",
			results:     []content.SearchResult{{Similarity: 1}, {Similarity: 1}},
			answer:      strings.Repeat("a", 2000),
			sourceCount: 5,
			want:        1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreConfidence(tt.results, tt.answer, tt.sourceCount)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFollowUps(t *testing.T) {
	results := []content.SearchResult{
		{Content: content.VectorContent{Type: content.TypeService}},
		{Content: content.VectorContent{Type: content.TypeBlog}},
	}

	suggestions := followUps(results)
	if len(suggestions) < 3 {
		t.Fatalf("expected at least 3 suggestions, got %d", len(suggestions))
	}
	if suggestions[0] != "What do your service plans cost?" {
		t.Errorf("expected service suggestion first, got %q", suggestions[0])
	}

	seen := map[string]bool{}
	for _, s := range suggestions {
		if seen[s] {
			t.Errorf("duplicate suggestion %q", s)
		}
		seen[s] = true
	}

	generic := followUps(nil)
	if len(generic) != 3 {
		t.Fatalf("expected 3 generic suggestions, got %d", len(generic))
	}
}

func TestExpandQuestion(t *testing.T) {
	engine, _ := newTestEngine(t, &fakeClient{}, nil)

	expanded := engine.expandQuestion("How should we use Instagram?", "prior turn about budgets")
	if !strings.Contains(expanded, "Instagram is a visual-first social platform") {
		t.Errorf("expected entity description appended, got %q", expanded)
	}
	if !strings.Contains(expanded, "prior turn about budgets") {
		t.Errorf("expected prior context appended, got %q", expanded)
	}

	keywordMatch := engine.expandQuestion("Looking for an sns marketing partner", "")
	if !strings.Contains(keywordMatch, "social media strategy") {
		t.Errorf("expected cluster semantic keywords appended, got %q", keywordMatch)
	}

	plain := engine.expandQuestion("completely unrelated", "")
	if plain != "completely unrelated" {
		t.Errorf("expected question unchanged, got %q", plain)
	}
}

func TestFallbackAnswerBuckets(t *testing.T) {
	results := []content.SearchResult{
		{Content: content.VectorContent{Title: "Pricing Guide", Body: "Plans start from a monthly retainer."}},
	}

	tests := []struct {
		name     string
		question string
		contains string
	}{
		{name: "service", question: "What is your pricing?", contains: "services and pricing"},
		{name: "company", question: "Who is the founder?", contains: "About the company"},
		{name: "how to", question: "How do we grow followers?", contains: "published guides"},
		{name: "generic", question: "Tell me something", contains: "most relevant material"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer := fallbackAnswer(tt.question, results)
			if !strings.Contains(answer, tt.contains) {
				t.Fatalf("expected %q in answer, got %q", tt.contains, answer)
			}
			if !strings.Contains(answer, "Pricing Guide") {
				t.Errorf("expected excerpt stitched in, got %q", answer)
			}
		})
	}

	if got := fallbackAnswer("anything", nil); got != degradedAnswer {
		t.Errorf("expected degraded answer without results, got %q", got)
	}
}

func TestSessionMemoryCapacity(t *testing.T) {
	memory := NewSessionMemory(SessionMemoryParams{})
	defer memory.Close()

	for i := 0; i < 12; i++ {
		memory.Append("s1", Query{Question: fmt.Sprintf("q-%d", i)})
	}

	history := memory.History("s1")
	if len(history) != sessionCapacity {
		t.Fatalf("expected %d entries, got %d", sessionCapacity, len(history))
	}
	if history[0].Question != "q-2" {
		t.Errorf("expected oldest entries evicted, got %q first", history[0].Question)
	}
	if history[len(history)-1].Question != "q-11" {
		t.Errorf("expected newest entry last, got %q", history[len(history)-1].Question)
	}
}

func TestSessionMemoryEvictsIdleSessions(t *testing.T) {
	memory := NewSessionMemory(SessionMemoryParams{TTL: time.Minute})
	defer memory.Close()

	memory.Append("stale", Query{Question: "old"})
	memory.evictIdle(time.Now().Add(2 * time.Minute))

	if got := memory.History("stale"); len(got) != 0 {
		t.Fatalf("expected idle session evicted, got %d entries", len(got))
	}
}
