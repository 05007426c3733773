package ollama

import (
	"net/http"
	"net/url"
	"sync"

	"github.com/buzzlab/relevance/pkg/ai"

	"github.com/ollama/ollama/api"
	"golang.org/x/sync/semaphore"
)

// OllamaClient implements ai.Client using a locally-hosted Ollama server.
type OllamaClient struct {
	embeddingModel string
	chatModel      string

	dimensions int
	timeoutMin int

	reqLock *semaphore.Weighted

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	Client *api.Client
}

// NewOllamaClientParams contains configuration for creating an OllamaClient.
type NewOllamaClientParams struct {
	EmbeddingModel string
	ChatModel      string

	BaseURL string
	APIKey  string

	Dimensions     int
	TimeoutMinutes int

	MaxConcurrentRequests int64
}

type headerTransport struct {
	headers map[string]string
	rt      http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	for k, v := range t.headers {
		if r.Header.Get(k) == "" {
			r.Header.Set(k, v)
		}
	}
	return t.rt.RoundTrip(r)
}

// NewOllamaClient creates an Ollama-backed AI client connecting to the
// server at BaseURL, or the default local server when empty.
func NewOllamaClient(params NewOllamaClientParams) (*OllamaClient, error) {
	var (
		u   *url.URL
		err error
	)
	if params.BaseURL != "" {
		u, err = url.Parse(params.BaseURL)
		if err != nil {
			return nil, err
		}
	}

	httpClient := &http.Client{
		Transport: &headerTransport{
			headers: map[string]string{
				"Authorization": "Bearer " + params.APIKey,
			},
			rt: http.DefaultTransport,
		},
	}

	maxConcurrent := params.MaxConcurrentRequests
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	timeoutMin := params.TimeoutMinutes
	if timeoutMin <= 0 {
		timeoutMin = 2
	}

	return &OllamaClient{
		embeddingModel: params.EmbeddingModel,
		chatModel:      params.ChatModel,
		dimensions:     params.Dimensions,
		timeoutMin:     timeoutMin,
		reqLock:        semaphore.NewWeighted(maxConcurrent),
		Client:         api.NewClient(u, httpClient),
	}, nil
}

func (c *OllamaClient) modifyMetrics(delta ai.ModelMetrics) {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()
	c.metrics.InputTokens += delta.InputTokens
	c.metrics.OutputTokens += delta.OutputTokens
	c.metrics.TotalTokens += delta.TotalTokens
	c.metrics.DurationMs += delta.DurationMs
}

// ResetMetrics clears the accumulated usage metrics.
func (c *OllamaClient) ResetMetrics() {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()
	c.metrics = ai.ModelMetrics{}
}

// GetMetrics returns the accumulated usage metrics.
func (c *OllamaClient) GetMetrics() ai.ModelMetrics {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()
	return c.metrics
}
