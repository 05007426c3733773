package ingest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/buzzlab/relevance/pkg/ai"
	"github.com/buzzlab/relevance/pkg/cluster"
	"github.com/buzzlab/relevance/pkg/content"
	"github.com/buzzlab/relevance/pkg/knowledge"
)

// fakeClient embeds every input except those containing "FAIL". Completion
// methods are unused by the pipeline tests.
type fakeClient struct{}

func (fakeClient) GenerateEmbedding(ctx context.Context, input string) ([]float32, error) {
	if strings.Contains(input, "FAIL") {
		return nil, fmt.Errorf("provider rejected input")
	}
	return []float32{1, 0, 0}, nil
}

func (fakeClient) GenerateCompletion(ctx context.Context, prompt string, opts ...ai.GenerateOption) (string, error) {
	return "", fmt.Errorf("not implemented")
}

func (fakeClient) GenerateCompletionWithFormat(ctx context.Context, name string, description string, prompt string, out any, opts ...ai.GenerateOption) error {
	return fmt.Errorf("not implemented")
}

func (fakeClient) ResetMetrics() {}

func (fakeClient) GetMetrics() ai.ModelMetrics { return ai.ModelMetrics{} }

func testPipeline(t *testing.T) (*Pipeline, *content.Store) {
	t.Helper()
	graph := knowledge.NewEntityGraph(knowledge.SeedEntities())
	clusters, err := cluster.NewIndex(cluster.SeedClusters())
	if err != nil {
		t.Fatalf("failed to build cluster index: %v", err)
	}
	store := content.NewStore(content.NewMemoryStorage())
	pipeline := NewPipeline(PipelineParams{
		Classifier: NewHeuristicClassifier(graph, clusters),
		Embedder:   ai.NewBatchEmbedder(fakeClient{}, ai.BatchEmbedderParams{ChunkSize: 4, Delay: time.Millisecond}),
		Store:      store,
		BatchSize:  4,
		Pause:      time.Millisecond,
	})
	return pipeline, store
}

func TestNormalize(t *testing.T) {
	pipeline, _ := testPipeline(t)
	ctx := context.Background()

	record, err := pipeline.Normalize(ctx, SourceRecord{
		ID:       "reels-guide",
		Title:    "Reels Strategy Guide",
		Text:     "How BuzzLab plans Instagram Reels for brand accounts.",
		Category: "blog",
		Tags:     []string{" Reels ", "Instagram"},
	})
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	if record.ID != "reels-guide" {
		t.Errorf("expected source id kept, got %q", record.ID)
	}
	if record.Type != content.TypeBlog {
		t.Errorf("expected blog type, got %q", record.Type)
	}
	if record.ClusterID != "instagram-marketing" {
		t.Errorf("expected instagram-marketing cluster, got %q", record.ClusterID)
	}
	if record.Metadata.Relevance != 0.5 {
		t.Errorf("expected default relevance 0.5, got %v", record.Metadata.Relevance)
	}

	found := map[string]bool{}
	for _, id := range record.Metadata.Entities {
		found[id] = true
	}
	for _, id := range []string{"buzzlab", "instagram"} {
		if !found[id] {
			t.Errorf("expected entity %q detected, got %v", id, record.Metadata.Entities)
		}
	}

	wantContext := []string{"reels", "instagram"}
	if len(record.Metadata.SemanticContext) != len(wantContext) {
		t.Fatalf("expected semantic context %v, got %v", wantContext, record.Metadata.SemanticContext)
	}
	for i, tag := range wantContext {
		if record.Metadata.SemanticContext[i] != tag {
			t.Errorf("expected semantic context %v, got %v", wantContext, record.Metadata.SemanticContext)
			break
		}
	}
}

func TestNormalizeEmptyText(t *testing.T) {
	pipeline, _ := testPipeline(t)
	if _, err := pipeline.Normalize(context.Background(), SourceRecord{ID: "empty", Text: "   "}); err == nil {
		t.Fatalf("expected error for empty text")
	}
}

func TestNormalizeTitleFromFirstLine(t *testing.T) {
	pipeline, _ := testPipeline(t)

	record, err := pipeline.Normalize(context.Background(), SourceRecord{
		ID:   "untitled",
		Text: "Campaign review for Q3\nDetails follow in the body.",
	})
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if record.Title != "Campaign review for Q3" {
		t.Fatalf("expected title from first line, got %q", record.Title)
	}
}

func TestClusterRouting(t *testing.T) {
	pipeline, _ := testPipeline(t)
	ctx := context.Background()

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "platform mention", text: "Growing on TikTok with trend research", want: "tiktok-marketing"},
		{name: "advertising terms", text: "How we structure paid ad budgets", want: "sns-advertising"},
		{name: "generic", text: "Monthly reporting for brand accounts", want: "sns-marketing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := pipeline.Normalize(ctx, SourceRecord{ID: "r", Text: tt.text})
			if err != nil {
				t.Fatalf("normalize failed: %v", err)
			}
			if record.ClusterID != tt.want {
				t.Fatalf("expected cluster %q, got %q", tt.want, record.ClusterID)
			}
		})
	}
}

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		category string
		want     content.ContentType
	}{
		{category: "service", want: content.TypeService},
		{category: "Services", want: content.TypeService},
		{category: "blog", want: content.TypeBlog},
		{category: "article", want: content.TypeBlog},
		{category: "faq", want: content.TypeFAQ},
		{category: "company", want: content.TypeAbout},
		{category: "", want: content.TypePage},
		{category: "anything else", want: content.TypePage},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			if got := contentTypeFor(tt.category); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestExtractKeywordsTagsFirst(t *testing.T) {
	keywords := extractKeywords(
		"strategy strategy strategy reporting reporting cadence",
		[]string{"Pinned Tag"},
	)
	if len(keywords) == 0 || keywords[0] != "pinned tag" {
		t.Fatalf("expected tags first, got %v", keywords)
	}
	if keywords[1] != "strategy" {
		t.Errorf("expected most frequent token second, got %v", keywords)
	}
	if len(keywords) > maxKeywords {
		t.Errorf("expected at most %d keywords, got %d", maxKeywords, len(keywords))
	}
}

func TestIngestPartialFailure(t *testing.T) {
	pipeline, store := testPipeline(t)
	ctx := context.Background()

	sources := make([]SourceRecord, 0, 10)
	for i := 0; i < 10; i++ {
		text := fmt.Sprintf("Post %d about account growth", i)
		if i%3 == 0 && i > 0 {
			text += " FAIL"
		}
		sources = append(sources, SourceRecord{ID: fmt.Sprintf("post-%d", i), Text: text})
	}

	report, err := pipeline.Ingest(ctx, sources)
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if report.Processed != 7 {
		t.Errorf("expected 7 processed, got %d", report.Processed)
	}
	if len(report.Errors) != 3 {
		t.Errorf("expected 3 item errors, got %d", len(report.Errors))
	}
	if !report.Success {
		t.Errorf("expected success with partial failures")
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 7 {
		t.Errorf("expected 7 stored records, got %d", count)
	}
}

func TestIngestEmpty(t *testing.T) {
	pipeline, _ := testPipeline(t)

	report, err := pipeline.Ingest(context.Background(), nil)
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if report.Success {
		t.Errorf("expected success=false for empty run")
	}
	if report.Processed != 0 || len(report.Errors) != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
}

func TestIngestCollectsNormalizeErrors(t *testing.T) {
	pipeline, _ := testPipeline(t)

	report, err := pipeline.Ingest(context.Background(), []SourceRecord{
		{ID: "ok", Text: "A valid post"},
		{ID: "broken", Text: ""},
	})
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if report.Processed != 1 {
		t.Errorf("expected 1 processed, got %d", report.Processed)
	}
	if len(report.Errors) != 1 || report.Errors[0].ID != "broken" {
		t.Errorf("expected one error for %q, got %+v", "broken", report.Errors)
	}
}

func TestIngestParallelMatchesSequential(t *testing.T) {
	pipeline, store := testPipeline(t)
	ctx := context.Background()

	sources := make([]SourceRecord, 0, 12)
	for i := 0; i < 12; i++ {
		sources = append(sources, SourceRecord{ID: fmt.Sprintf("p-%d", i), Text: fmt.Sprintf("Post %d", i)})
	}

	report, err := pipeline.IngestParallel(ctx, sources, 3)
	if err != nil {
		t.Fatalf("parallel ingest failed: %v", err)
	}
	if report.Processed != 12 {
		t.Errorf("expected 12 processed, got %d", report.Processed)
	}
	if !report.Success {
		t.Errorf("expected success")
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 12 {
		t.Errorf("expected 12 stored records, got %d", count)
	}
}
