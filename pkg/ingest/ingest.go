package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/buzzlab/relevance/pkg/ai"
	"github.com/buzzlab/relevance/pkg/content"
	"github.com/buzzlab/relevance/pkg/logger"

	"golang.org/x/sync/errgroup"
)

const (
	defaultBatchSize  = 10
	defaultBatchPause = 500 * time.Millisecond
)

// SourceRecord is one unit of raw source material: marketing copy, a
// structured knowledge entry, or extracted page text. The pipeline is
// agnostic to its origin.
type SourceRecord struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Text       string   `json:"text"`
	Category   string   `json:"category,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Importance float64  `json:"importance,omitempty"`
	SourceURL  string   `json:"source_url,omitempty"`
}

// ItemError records a per-item failure inside a batch run.
type ItemError struct {
	ID  string `json:"id"`
	Err string `json:"error"`
}

// Report summarizes an ingestion run. Success means at least one item was
// processed; failed items are listed but never abort the run.
type Report struct {
	Success   bool        `json:"success"`
	Processed int         `json:"processed"`
	Errors    []ItemError `json:"errors"`
}

// Pipeline normalizes source records into vector content, batches them
// through the embedding client, and upserts them into the content store.
type Pipeline struct {
	classifier Classifier
	embedder   *ai.BatchEmbedder
	store      *content.Store

	batchSize int
	pause     time.Duration
}

// PipelineParams configures a Pipeline. Zero BatchSize and Pause default
// to 10 items and 500ms.
type PipelineParams struct {
	Classifier Classifier
	Embedder   *ai.BatchEmbedder
	Store      *content.Store
	BatchSize  int
	Pause      time.Duration
}

// NewPipeline assembles an ingestion pipeline.
func NewPipeline(params PipelineParams) *Pipeline {
	batchSize := params.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	pause := params.Pause
	if pause <= 0 {
		pause = defaultBatchPause
	}
	return &Pipeline{
		classifier: params.Classifier,
		embedder:   params.Embedder,
		store:      params.Store,
		batchSize:  batchSize,
		pause:      pause,
	}
}

// Ingest runs the full pipeline over the given sources. Batches run
// sequentially with a short pause between them to respect provider rate
// limits; per-item failures are collected and do not stop the run.
// Cancellation is honored at batch boundaries so completed batches stay
// persisted.
func (p *Pipeline) Ingest(ctx context.Context, sources []SourceRecord) (Report, error) {
	report := Report{Errors: []ItemError{}}
	if len(sources) == 0 {
		return report, nil
	}

	logger.Info("[Ingest] Starting run", "total", len(sources), "batch_size", p.batchSize)

	for start := 0; start < len(sources); start += p.batchSize {
		if err := ctx.Err(); err != nil {
			logger.Warn("[Ingest] Run cancelled at batch boundary", "processed", report.Processed)
			report.Success = report.Processed > 0
			return report, err
		}

		end := start + p.batchSize
		if end > len(sources) {
			end = len(sources)
		}

		if start > 0 {
			select {
			case <-ctx.Done():
				report.Success = report.Processed > 0
				return report, ctx.Err()
			case <-time.After(p.pause):
			}
		}

		p.ingestBatch(ctx, sources[start:end], &report)
	}

	report.Success = report.Processed > 0
	logger.Info("[Ingest] Run finished", "processed", report.Processed, "errors", len(report.Errors))
	return report, nil
}

// IngestParallel runs batches through a bounded worker pool instead of
// sequentially. The per-batch embedding calls still pace themselves, so
// provider rate limits are respected by the embedder's own chunk delays.
func (p *Pipeline) IngestParallel(ctx context.Context, sources []SourceRecord, workers int) (Report, error) {
	if workers <= 1 {
		return p.Ingest(ctx, sources)
	}

	report := Report{Errors: []ItemError{}}
	if len(sources) == 0 {
		return report, nil
	}

	batches := make([][]SourceRecord, 0)
	for start := 0; start < len(sources); start += p.batchSize {
		end := start + p.batchSize
		if end > len(sources) {
			end = len(sources)
		}
		batches = append(batches, sources[start:end])
	}

	reports := make([]Report, len(batches))
	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, batch := range batches {
		idx := i
		b := batch
		eg.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			r := Report{Errors: []ItemError{}}
			p.ingestBatch(gCtx, b, &r)
			reports[idx] = r
			return nil
		})
	}
	err := eg.Wait()

	for _, r := range reports {
		report.Processed += r.Processed
		report.Errors = append(report.Errors, r.Errors...)
	}
	report.Success = report.Processed > 0
	return report, err
}

func (p *Pipeline) ingestBatch(ctx context.Context, batch []SourceRecord, report *Report) {
	records := make([]content.VectorContent, 0, len(batch))
	texts := make([]string, 0, len(batch))

	for _, src := range batch {
		record, err := p.Normalize(ctx, src)
		if err != nil {
			report.Errors = append(report.Errors, ItemError{ID: src.ID, Err: err.Error()})
			continue
		}
		records = append(records, record)
		texts = append(texts, embeddingText(record))
	}

	vectors, embedErr := p.embedder.EmbedBatch(ctx, texts)
	if embedErr != nil {
		logger.Warn("[Ingest] Batch embedding reported failures", "err", embedErr)
	}

	for i, record := range records {
		if vectors[i] == nil {
			report.Errors = append(report.Errors, ItemError{ID: record.ID, Err: "embedding failed"})
			continue
		}
		record.Vector = vectors[i]
		if err := p.store.Upsert(ctx, record); err != nil {
			report.Errors = append(report.Errors, ItemError{ID: record.ID, Err: err.Error()})
			continue
		}
		report.Processed++
	}
}

func embeddingText(record content.VectorContent) string {
	return fmt.Sprintf("%s\n\n%s", record.Title, record.Body)
}
