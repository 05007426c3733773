// Package rag implements the retrieval pipeline that answers questions
// about the agency's content: query expansion against the knowledge
// graph, vector retrieval with type diversification, context assembly,
// answer generation with deterministic fallbacks, and confidence scoring.
package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/buzzlab/relevance/internal/util"
	"github.com/buzzlab/relevance/pkg/ai"
	"github.com/buzzlab/relevance/pkg/cluster"
	"github.com/buzzlab/relevance/pkg/content"
	"github.com/buzzlab/relevance/pkg/knowledge"
	"github.com/buzzlab/relevance/pkg/logger"

	"golang.org/x/sync/singleflight"
)

const (
	defaultSimilarityThreshold = 0.5
	defaultEntityThreshold     = 0.6
	defaultMinConfidence       = 0.3
	defaultMaxResults          = 5
	defaultMaxContextTokens    = 1500

	embedRetries = 2
	embedBackoff = 500 * time.Millisecond
)

// Config carries the engine's tuning knobs. The similarity threshold
// gates vector retrieval, the entity relevance threshold gates which
// entities qualify for answer context, and the minimum confidence marks
// answers the engine itself does not stand behind. These are three
// separate dials on purpose.
type Config struct {
	SimilarityThreshold      float64
	EntityRelevanceThreshold float64
	MinConfidence            float64
	MaxResults               int
	MaxContextTokens         int
	MemoryEnabled            bool
}

func (c Config) withDefaults() Config {
	if c.SimilarityThreshold <= 0 {
		c.SimilarityThreshold = defaultSimilarityThreshold
	}
	if c.EntityRelevanceThreshold <= 0 {
		c.EntityRelevanceThreshold = defaultEntityThreshold
	}
	if c.MinConfidence <= 0 {
		c.MinConfidence = defaultMinConfidence
	}
	if c.MaxResults <= 0 {
		c.MaxResults = defaultMaxResults
	}
	if c.MaxContextTokens <= 0 {
		c.MaxContextTokens = defaultMaxContextTokens
	}
	return c
}

// Engine wires the knowledge graph, triple store, cluster index, content
// store, and provider client into the query pipeline. Engines are safe
// for concurrent use.
type Engine struct {
	graph    *knowledge.EntityGraph
	triples  *knowledge.TripleStore
	clusters *cluster.Index
	store    *content.Store
	client   ai.Client
	memory   *SessionMemory
	cfg      Config

	embedGroup singleflight.Group
}

// EngineParams collects the engine's collaborators.
type EngineParams struct {
	Graph    *knowledge.EntityGraph
	Triples  *knowledge.TripleStore
	Clusters *cluster.Index
	Store    *content.Store
	Client   ai.Client
	Memory   *SessionMemory
	Config   Config
}

// NewEngine builds a query engine.
func NewEngine(params EngineParams) *Engine {
	return &Engine{
		graph:    params.Graph,
		triples:  params.Triples,
		clusters: params.Clusters,
		store:    params.Store,
		client:   params.Client,
		memory:   params.Memory,
		cfg:      params.Config.withDefaults(),
	}
}

// Query answers a question. A blank question is the only hard failure;
// every other problem, including provider outages, degrades into a valid
// low-confidence response so consumers always have something to render.
func (e *Engine) Query(ctx context.Context, query Query) (Response, error) {
	start := time.Now()

	query.Question = strings.TrimSpace(query.Question)
	if query.Question == "" {
		return Response{}, &ValidationError{Field: "question", Reason: "must not be empty"}
	}
	if query.Timestamp.IsZero() {
		query.Timestamp = start
	}
	if query.MaxResults <= 0 {
		query.MaxResults = e.cfg.MaxResults
	}

	response := e.answer(ctx, query)
	response.ProcessingMs = time.Since(start).Milliseconds()

	if e.cfg.MemoryEnabled && e.memory != nil && query.SessionID != "" {
		e.memory.Append(query.SessionID, query)
	}

	return response, nil
}

// answer runs the pipeline and absorbs every failure into a degraded
// response.
func (e *Engine) answer(ctx context.Context, query Query) (response Response) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("[RAG] Query pipeline panicked", "panic", r)
			response = degradedResponse()
		}
	}()

	expanded := e.expandQuestion(query.Question, query.Context)

	vector, err := e.embedQuestion(ctx, expanded)
	if err != nil {
		logger.Warn("[RAG] Question embedding failed", "err", err)
		return degradedResponse()
	}

	results, err := e.store.SimilaritySearch(ctx, vector, content.SearchParams{
		Limit:     query.MaxResults,
		Threshold: e.cfg.SimilarityThreshold,
	})
	if err != nil {
		logger.Warn("[RAG] Similarity search failed", "err", err)
		return degradedResponse()
	}

	results = diversify(results)
	entities := e.extractEntityContext(query.Question, results)
	contextText := e.buildContext(results, entities, query.IncludeEntities)

	answer, generated := e.generateAnswer(ctx, query.Question, contextText)
	if !generated {
		answer = fallbackAnswer(query.Question, results)
	}

	sources := toSources(results)
	confidence := scoreConfidence(results, answer, len(sources))
	if confidence < e.cfg.MinConfidence {
		answer += "\n\nThis answer is based on limited matching material; our team can give you a more complete picture directly."
	}

	return Response{
		Answer:        answer,
		Sources:       sources,
		Confidence:    confidence,
		RelatedTopics: e.relatedTopics(results),
		FollowUps:     followUps(results),
		Entities:      entities,
	}
}

// embedQuestion turns the expanded question into a vector. Identical
// concurrent questions share one provider call, and transient failures
// are retried with backoff.
func (e *Engine) embedQuestion(ctx context.Context, expanded string) ([]float32, error) {
	result, err, _ := e.embedGroup.Do(expanded, func() (any, error) {
		return util.RetryWithContext(ctx, embedRetries, embedBackoff, func(ctx context.Context) ([]float32, error) {
			return e.client.GenerateEmbedding(ctx, expanded)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}
	return result.([]float32), nil
}

func (e *Engine) generateAnswer(ctx context.Context, question, contextText string) (string, bool) {
	answer, err := e.client.GenerateCompletion(
		ctx,
		question,
		ai.WithSystemPrompts(fmt.Sprintf(ai.AnswerPrompt, contextText)),
	)
	if err != nil {
		logger.Warn("[RAG] Answer generation failed, using template fallback", "err", err)
		return "", false
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", false
	}
	return answer, true
}

// GetConversationHistory returns the recorded queries for a session,
// oldest first. Returns an empty slice when memory is disabled.
func (e *Engine) GetConversationHistory(sessionID string) []Query {
	if !e.cfg.MemoryEnabled || e.memory == nil {
		return []Query{}
	}
	return e.memory.History(sessionID)
}

// RelationshipStrength exposes the triple store's connection scoring for
// consumers that render entity detail pages.
func (e *Engine) RelationshipStrength(a, b string) float64 {
	if e.triples == nil {
		return 0
	}
	return e.triples.RelationshipStrength(a, b)
}

func toSources(results []content.SearchResult) []Source {
	sources := make([]Source, 0, len(results))
	for i, result := range results {
		sources = append(sources, Source{
			ID:         result.Content.ID,
			Title:      result.Content.Title,
			Type:       result.Content.Type,
			URL:        result.Content.Metadata.SourceURL,
			Excerpt:    util.TruncateRunes(result.Content.Body, excerptRunes),
			Similarity: result.Similarity,
			Rank:       i + 1,
		})
	}
	return sources
}

func degradedResponse() Response {
	return Response{
		Answer:        degradedAnswer,
		Sources:       []Source{},
		Confidence:    0,
		RelatedTopics: []string{},
		FollowUps:     followUps(nil),
	}
}
