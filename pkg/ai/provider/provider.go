// Package provider selects and configures a concrete AI client from
// environment variables.
package provider

import (
	"fmt"

	"github.com/buzzlab/relevance/internal/util"
	"github.com/buzzlab/relevance/pkg/ai"
	"github.com/buzzlab/relevance/pkg/ai/ollama"
	"github.com/buzzlab/relevance/pkg/ai/openai"
)

// FromEnv builds the AI client named by AI_ADAPTER. The default adapter
// targets OpenAI-compatible endpoints; "ollama" targets a local or remote
// Ollama server.
func FromEnv() (ai.Client, error) {
	adapter := util.GetEnv("AI_ADAPTER")

	switch adapter {
	case "ollama":
		client, err := ollama.NewOllamaClient(ollama.NewOllamaClientParams{
			EmbeddingModel: util.GetEnv("AI_EMBED_MODEL"),
			ChatModel:      util.GetEnv("AI_CHAT_MODEL"),

			BaseURL: util.GetEnv("AI_CHAT_URL"),
			APIKey:  util.GetEnv("AI_CHAT_KEY"),

			Dimensions:            int(util.GetEnvNumeric("AI_EMBED_DIMENSIONS", 0)),
			MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 4)),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Ollama client: %w", err)
		}
		return client, nil
	default:
		return openai.NewOpenAIClient(openai.NewOpenAIClientParams{
			EmbeddingModel: util.GetEnv("AI_EMBED_MODEL"),
			ChatModel:      util.GetEnv("AI_CHAT_MODEL"),

			EmbeddingURL: util.GetEnv("AI_EMBED_URL"),
			EmbeddingKey: util.GetEnv("AI_EMBED_KEY"),
			ChatURL:      util.GetEnv("AI_CHAT_URL"),
			ChatKey:      util.GetEnv("AI_CHAT_KEY"),

			Dimensions:            int(util.GetEnvNumeric("AI_EMBED_DIMENSIONS", 0)),
			MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 8)),
		}), nil
	}
}
