package rag

import (
	"github.com/buzzlab/relevance/pkg/content"
)

const (
	maxRelatedTopics = 5
	minFollowUps     = 3

	confidenceWeightSimilarity = 0.6
	confidenceWeightLength     = 0.3
	confidenceBonusMultiSource = 0.1
	confidenceFloor            = 0.1
	answerLengthSaturation     = 500.0
)

// scoreConfidence combines retrieval quality, answer substance, and
// source breadth into a single [0,1] score. No retrieved material at all
// pins the score to the floor value.
func scoreConfidence(results []content.SearchResult, answer string, sourceCount int) float64 {
	if len(results) == 0 {
		return confidenceFloor
	}

	var sum float64
	for _, result := range results {
		sum += result.Similarity
	}
	mean := sum / float64(len(results))

	lengthRatio := float64(len(answer)) / answerLengthSaturation
	if lengthRatio > 1 {
		lengthRatio = 1
	}

	confidence := confidenceWeightSimilarity*mean + confidenceWeightLength*lengthRatio
	if sourceCount > 1 {
		confidence += confidenceBonusMultiSource
	}

	if confidence > 1 {
		return 1
	}
	if confidence < 0 {
		return 0
	}
	return confidence
}

// relatedTopics unions the results' semantic context tags with the names
// of the clusters they belong to, capped at five, preserving first-seen
// order.
func (e *Engine) relatedTopics(results []content.SearchResult) []string {
	topics := make([]string, 0, maxRelatedTopics)
	seen := make(map[string]struct{})

	add := func(topic string) {
		if topic == "" || len(topics) >= maxRelatedTopics {
			return
		}
		if _, ok := seen[topic]; ok {
			return
		}
		seen[topic] = struct{}{}
		topics = append(topics, topic)
	}

	for _, result := range results {
		for _, tag := range result.Content.Metadata.SemanticContext {
			add(tag)
		}
		if result.Content.ClusterID != "" {
			if topic, ok := e.clusters.Get(result.Content.ClusterID); ok {
				add(topic.Name)
			}
		}
	}
	return topics
}

// followUpRules maps a content type in the result set to a suggested next
// question.
var followUpRules = []struct {
	trigger    content.ContentType
	suggestion string
}{
	{content.TypeService, "What do your service plans cost?"},
	{content.TypeBlog, "Do you have case studies showing results?"},
	{content.TypeFAQ, "How do I get started with your agency?"},
	{content.TypeAbout, "Who leads your team?"},
}

var genericFollowUps = []string{
	"Which social media platforms do you support?",
	"How do you measure campaign performance?",
	"Can you manage our accounts end to end?",
}

// followUps derives suggested next questions from the result set's
// content types and tops the list up with generic suggestions until at
// least three are returned, deduplicated.
func followUps(results []content.SearchResult) []string {
	suggestions := make([]string, 0, minFollowUps)
	seen := make(map[string]struct{})

	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		suggestions = append(suggestions, s)
	}

	types := make(map[content.ContentType]struct{})
	for _, result := range results {
		types[result.Content.Type] = struct{}{}
	}
	for _, rule := range followUpRules {
		if _, ok := types[rule.trigger]; ok {
			add(rule.suggestion)
		}
	}
	for _, generic := range genericFollowUps {
		if len(suggestions) >= minFollowUps {
			break
		}
		add(generic)
	}
	return suggestions
}
