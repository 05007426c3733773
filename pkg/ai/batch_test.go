package ai

import (
	"context"
	"fmt"
	"testing"
	"time"
)

// embedFunc adapts a function to the Client interface for tests. Only the
// embedding method is exercised by the batch embedder.
type embedFunc func(ctx context.Context, input string) ([]float32, error)

func (f embedFunc) GenerateEmbedding(ctx context.Context, input string) ([]float32, error) {
	return f(ctx, input)
}

func (f embedFunc) GenerateCompletion(ctx context.Context, prompt string, opts ...GenerateOption) (string, error) {
	return "", fmt.Errorf("not implemented")
}

func (f embedFunc) GenerateCompletionWithFormat(ctx context.Context, name string, description string, prompt string, out any, opts ...GenerateOption) error {
	return fmt.Errorf("not implemented")
}

func (f embedFunc) ResetMetrics() {}

func (f embedFunc) GetMetrics() ModelMetrics { return ModelMetrics{} }

func TestEmbedBatchEmpty(t *testing.T) {
	b := NewBatchEmbedder(embedFunc(func(ctx context.Context, input string) ([]float32, error) {
		t.Fatal("client should not be called for empty input")
		return nil, nil
	}), BatchEmbedderParams{})

	vectors, err := b.EmbedBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(vectors) != 0 {
		t.Fatalf("expected no vectors, got %d", len(vectors))
	}
}

func TestEmbedBatchAllSucceed(t *testing.T) {
	calls := 0
	b := NewBatchEmbedder(embedFunc(func(ctx context.Context, input string) ([]float32, error) {
		calls++
		return []float32{float32(len(input))}, nil
	}), BatchEmbedderParams{ChunkSize: 2, Delay: time.Millisecond})

	texts := []string{"a", "bb", "ccc", "dddd", "eeeee"}
	vectors, err := b.EmbedBatch(context.Background(), texts)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if calls != len(texts) {
		t.Errorf("expected %d calls, got %d", len(texts), calls)
	}
	if len(vectors) != len(texts) {
		t.Fatalf("expected %d vectors, got %d", len(texts), len(vectors))
	}
	for i, v := range vectors {
		if len(v) != 1 || v[0] != float32(len(texts[i])) {
			t.Errorf("vector %d: expected [%d], got %v", i, len(texts[i]), v)
		}
	}
}

func TestEmbedBatchPartialFailure(t *testing.T) {
	b := NewBatchEmbedder(embedFunc(func(ctx context.Context, input string) ([]float32, error) {
		if input == "bad" {
			return nil, fmt.Errorf("provider rejected input")
		}
		return []float32{1}, nil
	}), BatchEmbedderParams{ChunkSize: 2, Delay: time.Millisecond})

	texts := []string{"ok", "bad", "ok", "bad"}
	vectors, err := b.EmbedBatch(context.Background(), texts)
	if err == nil {
		t.Fatalf("expected aggregated error, got nil")
	}
	if len(vectors) != len(texts) {
		t.Fatalf("expected one slot per input, got %d", len(vectors))
	}
	for i, text := range texts {
		if text == "bad" && vectors[i] != nil {
			t.Errorf("slot %d: expected nil for failed input, got %v", i, vectors[i])
		}
		if text == "ok" && vectors[i] == nil {
			t.Errorf("slot %d: expected vector for successful input, got nil", i)
		}
	}
}

func TestEmbedBatchCancelledBetweenChunks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	b := NewBatchEmbedder(embedFunc(func(ctx context.Context, input string) ([]float32, error) {
		calls++
		cancel()
		return []float32{1}, nil
	}), BatchEmbedderParams{ChunkSize: 1, Delay: time.Millisecond})

	vectors, err := b.EmbedBatch(ctx, []string{"a", "b", "c"})
	if err == nil {
		t.Fatalf("expected cancellation error, got nil")
	}
	if calls != 1 {
		t.Errorf("expected 1 call before cancellation, got %d", calls)
	}
	if len(vectors) != 3 {
		t.Fatalf("expected one slot per input, got %d", len(vectors))
	}
	if vectors[0] == nil {
		t.Errorf("expected first vector to be set")
	}
	if vectors[1] != nil || vectors[2] != nil {
		t.Errorf("expected remaining slots nil, got %v and %v", vectors[1], vectors[2])
	}
}
