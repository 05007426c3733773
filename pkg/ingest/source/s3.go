package source

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/buzzlab/relevance/internal/storage"
	"github.com/buzzlab/relevance/pkg/ingest"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 loads a JSON array of source records from an object storage key.
// Used for bulk knowledge dumps uploaded out of band.
type S3 struct {
	client *s3.Client
	key    string
}

// NewS3 builds an object storage source for the given key.
func NewS3(client *s3.Client, key string) *S3 {
	return &S3{client: client, key: key}
}

// Load downloads the object and decodes it as a record array.
func (s *S3) Load(ctx context.Context) ([]ingest.SourceRecord, error) {
	data, err := storage.GetFile(ctx, s.client, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to download source dump: %w", err)
	}

	var records []ingest.SourceRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode source dump %q: %w", s.key, err)
	}
	return records, nil
}
