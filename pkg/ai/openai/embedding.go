package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/buzzlab/relevance/pkg/ai"

	"github.com/openai/openai-go/v3"
)

const defaultDimensions = 1536

func (c *OpenAIClient) embedDimensions() int {
	if c.dimensions > 0 {
		return c.dimensions
	}
	return defaultDimensions
}

// GenerateEmbedding creates a vector embedding for the given input text
// using the configured embedding model. Empty or whitespace-only input
// yields a zero vector of the configured dimension without a provider
// call.
func (c *OpenAIClient) GenerateEmbedding(ctx context.Context, input string) ([]float32, error) {
	dim := c.embedDimensions()
	if strings.TrimSpace(input) == "" {
		return make([]float32, dim), nil
	}

	rCtx, cancel := context.WithTimeout(ctx, time.Minute*time.Duration(c.timeoutMin))
	defer cancel()

	if err := c.reqLock.Acquire(rCtx, 1); err != nil {
		return nil, err
	}
	defer c.reqLock.Release(1)

	body := openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: []string{input}},
		Model: c.embeddingModel,
	}

	start := time.Now()
	response, err := c.EmbeddingClient.Embeddings.New(rCtx, body)
	if err != nil {
		return nil, err
	}

	c.modifyMetrics(ai.ModelMetrics{
		InputTokens: int(response.Usage.PromptTokens),
		TotalTokens: int(response.Usage.TotalTokens),
		DurationMs:  time.Since(start).Milliseconds(),
	})

	if len(response.Data) != 1 {
		return nil, fmt.Errorf("unexpected embedding result size: got %d want 1", len(response.Data))
	}

	vec := make([]float32, 0, dim)
	for _, v := range response.Data[0].Embedding {
		if len(vec) >= dim {
			break
		}
		vec = append(vec, float32(v))
	}
	if len(vec) < dim {
		padded := make([]float32, dim)
		copy(padded, vec)
		vec = padded
	}
	return vec, nil
}
