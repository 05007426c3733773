package rag

import (
	"fmt"
	"strings"

	"github.com/buzzlab/relevance/internal/util"
	"github.com/buzzlab/relevance/pkg/content"

	"github.com/pkoukk/tiktoken-go"
)

const (
	maxContextSources = 5
	excerptRunes      = 300
)

// buildContext assembles the reference material handed to the generation
// model: entity descriptions when the caller asked for them, then up to
// five retrieved results with title, excerpt, and source url. The whole
// block is truncated to the configured token budget.
func (e *Engine) buildContext(results []content.SearchResult, entities []EntityContext, includeEntities bool) string {
	var builder strings.Builder

	if includeEntities {
		for _, entity := range entities {
			builder.WriteString(fmt.Sprintf("%s: %s\n", entity.Name, entity.Description))
		}
		if len(entities) > 0 {
			builder.WriteString("\n")
		}
	}

	limit := len(results)
	if limit > maxContextSources {
		limit = maxContextSources
	}
	for _, result := range results[:limit] {
		builder.WriteString(fmt.Sprintf("## %s\n", result.Content.Title))
		builder.WriteString(util.TruncateRunes(result.Content.Body, excerptRunes))
		builder.WriteString("\n")
		if url := result.Content.Metadata.SourceURL; url != "" {
			builder.WriteString(fmt.Sprintf("Source: %s\n", url))
		}
		builder.WriteString("\n")
	}

	return truncateTokens(builder.String(), e.cfg.MaxContextTokens)
}

// truncateTokens cuts text to at most maxTokens model tokens. When the
// tokenizer cannot be loaded it falls back to a conservative rune cut of
// four characters per token.
func truncateTokens(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return text
	}

	enc, err := tiktoken.GetEncoding("o200k_base")
	if err != nil {
		return util.TruncateRunes(text, maxTokens*4)
	}

	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}
	return enc.Decode(tokens[:maxTokens])
}
