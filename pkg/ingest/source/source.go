// Package source provides loaders that turn external material into
// ingestible source records: inline payloads, object storage dumps, and
// live web pages.
package source

import (
	"context"

	"github.com/buzzlab/relevance/pkg/ingest"
)

// Source yields a batch of records for the ingestion pipeline.
type Source interface {
	Load(ctx context.Context) ([]ingest.SourceRecord, error)
}

// Static wraps records that arrived inline, typically from an API
// request body.
type Static struct {
	records []ingest.SourceRecord
}

// NewStatic wraps an in-memory record slice as a Source.
func NewStatic(records []ingest.SourceRecord) *Static {
	return &Static{records: records}
}

// Load returns the wrapped records unchanged.
func (s *Static) Load(_ context.Context) ([]ingest.SourceRecord, error) {
	return s.records, nil
}
