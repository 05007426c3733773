package ai

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	defaultChunkSize  = 16
	defaultChunkDelay = 200 * time.Millisecond
)

// BatchEmbedder splits large embedding requests into fixed-size chunks and
// sends them sequentially with a short pause between chunks, respecting
// provider rate limits. A failed chunk does not abort the remaining
// chunks; the caller receives every vector that succeeded plus the joined
// chunk errors.
type BatchEmbedder struct {
	client    Client
	chunkSize int
	delay     time.Duration
}

// BatchEmbedderParams configures a BatchEmbedder. Zero values fall back to
// a chunk size of 16 and a 200ms inter-chunk delay.
type BatchEmbedderParams struct {
	ChunkSize int
	Delay     time.Duration
}

// NewBatchEmbedder wraps an AI client with chunked batch embedding.
func NewBatchEmbedder(client Client, params BatchEmbedderParams) *BatchEmbedder {
	size := params.ChunkSize
	if size <= 0 {
		size = defaultChunkSize
	}
	delay := params.Delay
	if delay <= 0 {
		delay = defaultChunkDelay
	}
	return &BatchEmbedder{client: client, chunkSize: size, delay: delay}
}

// EmbedBatch embeds every input text. The returned slice always has one
// slot per input; slots from failed chunks are nil. The error aggregates
// all chunk failures and is nil only when every chunk succeeded. Context
// cancellation stops the remaining chunks and is returned alongside the
// partial results.
func (b *BatchEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	if len(texts) == 0 {
		return out, nil
	}

	var errs []error
	for start := 0; start < len(texts); start += b.chunkSize {
		end := start + b.chunkSize
		if end > len(texts) {
			end = len(texts)
		}

		if start > 0 {
			select {
			case <-ctx.Done():
				errs = append(errs, ctx.Err())
				return out, errors.Join(errs...)
			case <-time.After(b.delay):
			}
		}

		for i := start; i < end; i++ {
			vec, err := b.client.GenerateEmbedding(ctx, texts[i])
			if err != nil {
				errs = append(errs, fmt.Errorf("embedding input %d: %w", i, err))
				if ctx.Err() != nil {
					return out, errors.Join(errs...)
				}
				continue
			}
			out[i] = vec
		}
	}
	return out, errors.Join(errs...)
}
