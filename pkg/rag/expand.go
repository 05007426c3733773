package rag

import (
	"strings"

	"github.com/buzzlab/relevance/internal/util"
)

// expandQuestion widens the question text with knowledge the retrieval
// step cannot infer on its own: descriptions of entities named in the
// question, semantic keywords of clusters whose target keywords appear,
// and any prior conversation context the caller supplied.
func (e *Engine) expandQuestion(question, priorContext string) string {
	var builder strings.Builder
	builder.WriteString(question)

	for _, entity := range e.graph.All() {
		if util.ContainsFold(question, entity.Name) {
			builder.WriteString("\n")
			builder.WriteString(entity.Description)
		}
	}

	for _, topic := range e.clusters.All() {
		matched := false
		for _, keyword := range topic.Pillar.TargetKeywords {
			if util.ContainsFold(question, keyword) {
				matched = true
				break
			}
		}
		if matched && len(topic.SemanticKeywords) > 0 {
			builder.WriteString("\n")
			builder.WriteString(strings.Join(topic.SemanticKeywords, " "))
		}
	}

	if priorContext != "" {
		builder.WriteString("\n")
		builder.WriteString(priorContext)
	}

	return builder.String()
}
