package ai

import (
	"context"
)

// GenerateOptions holds configuration for AI generation requests.
type GenerateOptions struct {
	Model         string   // Model identifier to use for generation
	SystemPrompts []string // System prompts prepended to the request
	Temperature   float64  // Sampling temperature (0.0-2.0)
}

// GenerateOption is a functional option for configuring AI generation requests.
type GenerateOption func(*GenerateOptions)

// WithModel returns a GenerateOption that sets the model to use for generation.
func WithModel(model string) GenerateOption {
	return func(o *GenerateOptions) {
		o.Model = model
	}
}

// WithSystemPrompts returns a GenerateOption that sets the system prompts
// to prepend to the generation request.
func WithSystemPrompts(prompts ...string) GenerateOption {
	return func(o *GenerateOptions) {
		o.SystemPrompts = prompts
	}
}

// WithTemperature returns a GenerateOption that sets the sampling temperature.
func WithTemperature(temp float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.Temperature = temp
	}
}

// ModelMetrics contains aggregate usage metrics from AI model operations.
type ModelMetrics struct {
	InputTokens  int   `json:"input_tokens"`
	OutputTokens int   `json:"output_tokens"`
	TotalTokens  int   `json:"total_tokens"`
	DurationMs   int64 `json:"duration_ms"`
}

// Client defines the provider boundary of the relevance engine: text
// embedding plus answer generation. Implementations exist for
// OpenAI-compatible endpoints and Ollama; the engine never depends on a
// concrete provider.
type Client interface {
	// GenerateEmbedding creates a fixed-dimension vector for the input
	// text. Empty input yields a zero vector of the configured dimension.
	GenerateEmbedding(ctx context.Context, input string) ([]float32, error)

	// GenerateCompletion sends a single-turn prompt to the chat model and
	// returns the generated text.
	GenerateCompletion(ctx context.Context, prompt string, opts ...GenerateOption) (string, error)

	// GenerateCompletionWithFormat requests structured output matching the
	// JSON schema derived from out, and unmarshals the response into out.
	GenerateCompletionWithFormat(ctx context.Context, name string, description string, prompt string, out any, opts ...GenerateOption) error

	ResetMetrics()
	GetMetrics() ModelMetrics
}
