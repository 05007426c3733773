package openai

import (
	"sync"

	"github.com/buzzlab/relevance/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"golang.org/x/sync/semaphore"
)

// OpenAIClient implements ai.Client against OpenAI-compatible endpoints.
// Embeddings and chat may target different endpoints with different keys.
type OpenAIClient struct {
	embeddingModel string
	chatModel      string

	embeddingURL string
	chatURL      string

	dimensions int
	timeoutMin int

	reqLock *semaphore.Weighted

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	ChatClient      openai.Client
	EmbeddingClient openai.Client
}

// NewOpenAIClientParams contains configuration for creating an OpenAIClient.
type NewOpenAIClientParams struct {
	EmbeddingModel string
	ChatModel      string

	EmbeddingURL string
	EmbeddingKey string
	ChatURL      string
	ChatKey      string

	// Dimensions is the fixed embedding dimension agreed at
	// store-initialization time.
	Dimensions int

	// TimeoutMinutes bounds every provider call. Zero means 2 minutes.
	TimeoutMinutes int

	MaxConcurrentRequests int64
}

func newClient(baseURL, apiKey string) openai.Client {
	opts := []option.RequestOption{}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	return openai.NewClient(opts...)
}

// NewOpenAIClient creates an OpenAI-backed AI client.
func NewOpenAIClient(params NewOpenAIClientParams) *OpenAIClient {
	maxConcurrent := params.MaxConcurrentRequests
	if maxConcurrent <= 0 {
		maxConcurrent = 8
	}
	timeoutMin := params.TimeoutMinutes
	if timeoutMin <= 0 {
		timeoutMin = 2
	}

	return &OpenAIClient{
		embeddingModel: params.EmbeddingModel,
		chatModel:      params.ChatModel,

		embeddingURL: params.EmbeddingURL,
		chatURL:      params.ChatURL,

		dimensions: params.Dimensions,
		timeoutMin: timeoutMin,

		reqLock: semaphore.NewWeighted(maxConcurrent),

		ChatClient:      newClient(params.ChatURL, params.ChatKey),
		EmbeddingClient: newClient(params.EmbeddingURL, params.EmbeddingKey),
	}
}

func (c *OpenAIClient) modifyMetrics(delta ai.ModelMetrics) {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()
	c.metrics.InputTokens += delta.InputTokens
	c.metrics.OutputTokens += delta.OutputTokens
	c.metrics.TotalTokens += delta.TotalTokens
	c.metrics.DurationMs += delta.DurationMs
}

// ResetMetrics clears the accumulated usage metrics.
func (c *OpenAIClient) ResetMetrics() {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()
	c.metrics = ai.ModelMetrics{}
}

// GetMetrics returns the accumulated usage metrics.
func (c *OpenAIClient) GetMetrics() ai.ModelMetrics {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()
	return c.metrics
}
