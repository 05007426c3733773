package content

import (
	"time"
)

// ContentType tags a stored record with the kind of source it came from.
// Downstream code switches on this field instead of probing metadata.
type ContentType string

const (
	TypeEntity    ContentType = "entity"
	TypeCluster   ContentType = "cluster"
	TypePage      ContentType = "page"
	TypeBlog      ContentType = "blog"
	TypeFAQ       ContentType = "faq"
	TypeService   ContentType = "service"
	TypeAbout     ContentType = "about"
	TypeComponent ContentType = "component"
)

// Metadata carries the retrieval signals attached to a content record.
type Metadata struct {
	Entities        []string  `json:"entities"`
	Keywords        []string  `json:"keywords"`
	SemanticContext []string  `json:"semantic_context"`
	SourceURL       string    `json:"source_url"`
	LastUpdated     time.Time `json:"last_updated"`
	Relevance       float64   `json:"relevance"`
}

// VectorContent is a normalized, embedded unit of retrievable text. The
// id is the upsert key; a record either has a vector or is still pending
// embedding, never a partially written state.
type VectorContent struct {
	ID        string      `json:"id"`
	Type      ContentType `json:"type"`
	Title     string      `json:"title"`
	Body      string      `json:"body"`
	Metadata  Metadata    `json:"metadata"`
	ClusterID string      `json:"cluster_id,omitempty"`
	Vector    []float32   `json:"vector,omitempty"`
}

// Embedded reports whether the record carries a vector.
func (v VectorContent) Embedded() bool {
	return len(v.Vector) > 0
}

// SearchResult is one ranked hit from a similarity search. Rank is
// 1-based and assigned after sorting by similarity descending.
type SearchResult struct {
	Content    VectorContent `json:"content"`
	Similarity float64       `json:"similarity"`
	Rank       int           `json:"rank"`
}
