package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/buzzlab/relevance/pkg/content"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Normalize turns a raw source record into a vector content record ready
// for embedding. The id is taken from the source when present so repeated
// runs of the same material overwrite instead of duplicating.
func (p *Pipeline) Normalize(ctx context.Context, src SourceRecord) (content.VectorContent, error) {
	title := strings.TrimSpace(src.Title)
	body := strings.TrimSpace(src.Text)
	if body == "" {
		return content.VectorContent{}, fmt.Errorf("source %q has no text", src.ID)
	}
	if title == "" {
		title = firstLine(body)
	}

	id := strings.TrimSpace(src.ID)
	if id == "" {
		generated, err := gonanoid.New()
		if err != nil {
			return content.VectorContent{}, fmt.Errorf("failed to generate content id: %w", err)
		}
		id = generated
	}

	cls, err := p.classifier.Classify(ctx, src)
	if err != nil {
		return content.VectorContent{}, fmt.Errorf("failed to classify source %q: %w", id, err)
	}

	relevance := src.Importance
	if relevance <= 0 {
		relevance = 0.5
	}

	return content.VectorContent{
		ID:        id,
		Type:      cls.ContentType,
		Title:     title,
		Body:      body,
		ClusterID: cls.ClusterID,
		Metadata: content.Metadata{
			Entities:        cls.Entities,
			Keywords:        cls.Keywords,
			SemanticContext: cls.SemanticContext,
			SourceURL:       src.SourceURL,
			LastUpdated:     time.Now().UTC(),
			Relevance:       relevance,
		},
	}, nil
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx > 0 {
		text = text[:idx]
	}
	text = strings.TrimSpace(text)
	const maxTitle = 80
	runes := []rune(text)
	if len(runes) > maxTitle {
		return string(runes[:maxTitle])
	}
	return text
}
