package ingest

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/buzzlab/relevance/internal/util"
	"github.com/buzzlab/relevance/pkg/ai"
	"github.com/buzzlab/relevance/pkg/cluster"
	"github.com/buzzlab/relevance/pkg/content"
	"github.com/buzzlab/relevance/pkg/knowledge"
	"github.com/buzzlab/relevance/pkg/logger"
)

const (
	maxKeywords = 10

	// Topic clusters the heuristic router assigns to. Platform mentions
	// win over the generic marketing cluster.
	fallbackClusterID = "sns-marketing"
)

// Classification is the enrichment attached to a source record before
// embedding: which entities it mentions, its keywords, and where it sits
// in the topic hierarchy.
type Classification struct {
	Entities        []string            `json:"entities"`
	Keywords        []string            `json:"keywords"`
	SemanticContext []string            `json:"semantic_context"`
	ClusterID       string              `json:"cluster_id"`
	ContentType     content.ContentType `json:"content_type"`
}

// Classifier enriches a source record. Implementations may be purely
// heuristic or delegate to a language model.
type Classifier interface {
	Classify(ctx context.Context, src SourceRecord) (Classification, error)
}

// HeuristicClassifier classifies with dictionary matching against the
// entity graph and the topic cluster index. It never fails, which makes
// it the default for unattended batch runs.
type HeuristicClassifier struct {
	graph    *knowledge.EntityGraph
	clusters *cluster.Index
}

// NewHeuristicClassifier builds the dictionary-based classifier.
func NewHeuristicClassifier(graph *knowledge.EntityGraph, clusters *cluster.Index) *HeuristicClassifier {
	return &HeuristicClassifier{graph: graph, clusters: clusters}
}

// Classify detects known entities in the text, extracts keywords, maps
// the category to a content type, and routes the record to a topic
// cluster by platform mentions.
func (c *HeuristicClassifier) Classify(_ context.Context, src SourceRecord) (Classification, error) {
	text := src.Title + " " + src.Text

	entities := c.graph.DetectInText(text)
	entityIDs := make([]string, 0, len(entities))
	for _, entity := range entities {
		entityIDs = append(entityIDs, entity.ID)
	}

	return Classification{
		Entities:        entityIDs,
		Keywords:        extractKeywords(text, src.Tags),
		SemanticContext: normalizeTags(src.Tags),
		ClusterID:       c.routeCluster(text, entities),
		ContentType:     contentTypeFor(src.Category),
	}, nil
}

func (c *HeuristicClassifier) routeCluster(text string, entities []knowledge.Entity) string {
	// Platform entities carry their marketing cluster in the id scheme:
	// the "instagram" entity maps to the "instagram-marketing" cluster.
	for _, entity := range entities {
		if entity.Type != knowledge.EntityPlatform {
			continue
		}
		candidate := entity.ID + "-marketing"
		if _, ok := c.clusters.Get(candidate); ok {
			return candidate
		}
	}
	if util.ContainsFold(text, "advertis") || util.ContainsFold(text, "paid ad") {
		if _, ok := c.clusters.Get("sns-advertising"); ok {
			return "sns-advertising"
		}
	}
	if _, ok := c.clusters.Get(fallbackClusterID); ok {
		return fallbackClusterID
	}
	return ""
}

func contentTypeFor(category string) content.ContentType {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "service", "services":
		return content.TypeService
	case "blog", "article":
		return content.TypeBlog
	case "faq":
		return content.TypeFAQ
	case "about", "company":
		return content.TypeAbout
	case "entity":
		return content.TypeEntity
	case "cluster", "topic":
		return content.TypeCluster
	case "component":
		return content.TypeComponent
	default:
		return content.TypePage
	}
}

var keywordStopwords = map[string]struct{}{
	"this": {}, "that": {}, "with": {}, "from": {}, "have": {}, "will": {},
	"your": {}, "their": {}, "about": {}, "which": {}, "when": {}, "more": {},
	"into": {}, "than": {}, "also": {}, "been": {}, "were": {}, "they": {},
	"them": {}, "there": {}, "what": {}, "each": {}, "over": {}, "such": {},
}

func extractKeywords(text string, tags []string) []string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, token := range util.Tokenize(text, 4) {
		if _, stop := keywordStopwords[token]; stop {
			continue
		}
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	keywords := make([]string, 0, maxKeywords)
	seen := make(map[string]struct{})
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		keywords = append(keywords, tag)
	}
	for _, token := range order {
		if len(keywords) >= maxKeywords {
			break
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		keywords = append(keywords, token)
	}
	return keywords
}

// AIClassifier delegates classification to a language model with a
// structured output schema, falling back to the heuristic classifier when
// the provider fails.
type AIClassifier struct {
	client   ai.Client
	fallback *HeuristicClassifier
	graph    *knowledge.EntityGraph
	clusters *cluster.Index
}

// NewAIClassifier builds a model-backed classifier with a heuristic
// fallback.
func NewAIClassifier(client ai.Client, graph *knowledge.EntityGraph, clusters *cluster.Index) *AIClassifier {
	return &AIClassifier{
		client:   client,
		fallback: NewHeuristicClassifier(graph, clusters),
		graph:    graph,
		clusters: clusters,
	}
}

type aiClassification struct {
	Entities    []string `json:"entities" jsonschema_description:"IDs of the known entities mentioned in the text"`
	Keywords    []string `json:"keywords" jsonschema_description:"Up to ten keywords describing the text"`
	ClusterID   string   `json:"cluster_id" jsonschema_description:"ID of the best matching topic cluster"`
	ContentType string   `json:"content_type" jsonschema_description:"One of: page, blog, faq, service, about"`
}

// Classify asks the model for a structured classification. Unknown entity
// and cluster ids in the answer are dropped; any provider failure falls
// back to dictionary matching so ingestion keeps moving.
func (c *AIClassifier) Classify(ctx context.Context, src SourceRecord) (Classification, error) {
	entityIDs := make([]string, 0)
	for _, entity := range c.graph.All() {
		entityIDs = append(entityIDs, entity.ID)
	}
	clusterIDs := make([]string, 0)
	for _, topic := range c.clusters.All() {
		clusterIDs = append(clusterIDs, topic.ID)
	}

	prompt := fmt.Sprintf(
		"Classify the following text.\n\nKnown entity ids: %s\nKnown cluster ids: %s\n\nTitle: %s\n\n%s",
		strings.Join(entityIDs, ", "),
		strings.Join(clusterIDs, ", "),
		src.Title,
		util.TruncateRunes(src.Text, 2000),
	)

	var result aiClassification
	err := c.client.GenerateCompletionWithFormat(
		ctx,
		"content_classification",
		"Classification of marketing content against a known entity graph and topic hierarchy",
		prompt,
		&result,
		ai.WithTemperature(0.1),
	)
	if err != nil {
		logger.Warn("[Ingest] AI classification failed, using heuristic fallback", "id", src.ID, "err", err)
		return c.fallback.Classify(ctx, src)
	}

	known := make([]string, 0, len(result.Entities))
	for _, id := range result.Entities {
		if _, ok := c.graph.Get(id); ok {
			known = append(known, id)
		}
	}
	clusterID := result.ClusterID
	if _, ok := c.clusters.Get(clusterID); !ok {
		clusterID = c.fallback.routeCluster(src.Title+" "+src.Text, nil)
	}

	return Classification{
		Entities:        known,
		Keywords:        result.Keywords,
		SemanticContext: normalizeTags(src.Tags),
		ClusterID:       clusterID,
		ContentType:     contentTypeFor(result.ContentType),
	}, nil
}

func normalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			normalized = append(normalized, tag)
		}
	}
	return normalized
}
