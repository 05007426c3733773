package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/buzzlab/relevance/pkg/ingest"
	"github.com/buzzlab/relevance/pkg/ingest/source"
	"github.com/buzzlab/relevance/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// IngestJobMsg is the payload of an asynchronous ingestion job. Exactly
// one of Records, S3Key, or URLs should be set; when several are present,
// all of them are loaded and ingested together.
type IngestJobMsg struct {
	Records  []ingest.SourceRecord `json:"records,omitempty"`
	S3Key    string                `json:"s3_key,omitempty"`
	URLs     []string              `json:"urls,omitempty"`
	Category string                `json:"category,omitempty"`
	Workers  int                   `json:"workers,omitempty"`
}

// ProcessIngest handles one ingestion job from the work queue. A
// returned error sends the message to the retry queue; per-item
// embedding failures are reported but count as a handled job so the
// caller can retry just the failed ids.
func ProcessIngest(ctx context.Context, s3Client *s3.Client, pipeline *ingest.Pipeline, body string) error {
	var msg IngestJobMsg
	if err := json.Unmarshal([]byte(body), &msg); err != nil {
		return fmt.Errorf("failed to decode ingest job: %w", err)
	}

	records, err := collectRecords(ctx, s3Client, msg)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		logger.Warn("[Queue] Ingest job carried no records")
		return nil
	}

	var report ingest.Report
	if msg.Workers > 1 {
		report, err = pipeline.IngestParallel(ctx, records, msg.Workers)
	} else {
		report, err = pipeline.Ingest(ctx, records)
	}
	if err != nil {
		return fmt.Errorf("failed to run ingest job: %w", err)
	}

	logger.Info(
		"[Queue] Ingest job finished",
		"processed", report.Processed,
		"errors", len(report.Errors),
		"success", report.Success,
	)
	for _, itemErr := range report.Errors {
		logger.Warn("[Queue] Ingest item failed", "id", itemErr.ID, "err", itemErr.Err)
	}

	return nil
}

func collectRecords(ctx context.Context, s3Client *s3.Client, msg IngestJobMsg) ([]ingest.SourceRecord, error) {
	sources := make([]source.Source, 0, 3)
	if len(msg.Records) > 0 {
		sources = append(sources, source.NewStatic(msg.Records))
	}
	if msg.S3Key != "" {
		if s3Client == nil {
			return nil, fmt.Errorf("ingest job references S3 key %q but no S3 client is configured", msg.S3Key)
		}
		sources = append(sources, source.NewS3(s3Client, msg.S3Key))
	}
	if len(msg.URLs) > 0 {
		sources = append(sources, source.NewWeb(msg.URLs, msg.Category))
	}

	records := make([]ingest.SourceRecord, 0, len(msg.Records))
	for _, src := range sources {
		loaded, err := src.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load ingest sources: %w", err)
		}
		records = append(records, loaded...)
	}
	return records, nil
}
