package rag

import (
	"fmt"
	"time"

	"github.com/buzzlab/relevance/pkg/content"
)

// Query is one question posed to the engine, together with the caller's
// retrieval preferences. Context carries prior conversation text the
// caller wants folded into expansion.
type Query struct {
	Question        string    `json:"question"`
	Context         string    `json:"context,omitempty"`
	UserType        string    `json:"user_type,omitempty"`
	SessionID       string    `json:"session_id,omitempty"`
	MaxResults      int       `json:"max_results,omitempty"`
	IncludeEntities bool      `json:"include_entities,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// Source is one cited piece of content backing an answer.
type Source struct {
	ID         string              `json:"id"`
	Title      string              `json:"title"`
	Type       content.ContentType `json:"type"`
	URL        string              `json:"url,omitempty"`
	Excerpt    string              `json:"excerpt"`
	Similarity float64             `json:"similarity"`
	Rank       int                 `json:"rank"`
}

// EntityContext is one entity the engine judged relevant to the question,
// scored by importance weighted with retrieval similarity.
type EntityContext struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// Response is the engine's structured answer.
type Response struct {
	Answer        string          `json:"answer"`
	Sources       []Source        `json:"sources"`
	Confidence    float64         `json:"confidence"`
	RelatedTopics []string        `json:"related_topics"`
	FollowUps     []string        `json:"follow_ups"`
	Entities      []EntityContext `json:"entities,omitempty"`
	ProcessingMs  int64           `json:"processing_ms"`
}

// ValidationError reports a malformed query. It is the only error kind
// that crosses the public query boundary; provider failures degrade into
// a low-confidence response instead.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
