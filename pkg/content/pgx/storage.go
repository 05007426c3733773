package pgx

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/buzzlab/relevance/pkg/content"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pgvector/pgvector-go"
)

type pgxIConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgx.Row
}

// PGStorage implements content.Storage on PostgreSQL with pgvector.
// Vectors are stored in a vector column but similarity ranking stays in
// the engine; the store only filters candidates.
type PGStorage struct {
	conn pgxIConn
}

// NewPGStorage creates a Postgres-backed content store using an existing
// connection or pool.
func NewPGStorage(conn pgxIConn) *PGStorage {
	return &PGStorage{conn: conn}
}

// Upsert inserts or fully replaces the record with the same id.
func (s *PGStorage) Upsert(ctx context.Context, record content.VectorContent) error {
	metadata, err := json.Marshal(record.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	var embedding any
	if record.Embedded() {
		embedding = pgvector.NewVector(record.Vector)
	}

	_, err = s.conn.Exec(ctx, `
		INSERT INTO vector_content (id, content_type, title, body, metadata, cluster_id, embedding, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (id) DO UPDATE SET
			content_type = EXCLUDED.content_type,
			title = EXCLUDED.title,
			body = EXCLUDED.body,
			metadata = EXCLUDED.metadata,
			cluster_id = EXCLUDED.cluster_id,
			embedding = EXCLUDED.embedding,
			updated_at = now()`,
		record.ID, string(record.Type), record.Title, record.Body, metadata, nullable(record.ClusterID), embedding,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert content %s: %w", record.ID, err)
	}
	return nil
}

// Get returns the record with the given id; unknown ids return ok=false.
func (s *PGStorage) Get(ctx context.Context, id string) (content.VectorContent, bool, error) {
	row := s.conn.QueryRow(ctx, `
		SELECT id, content_type, title, body, metadata, cluster_id, embedding
		FROM vector_content WHERE id = $1`, id)

	record, err := scanRecord(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return content.VectorContent{}, false, nil
		}
		return content.VectorContent{}, false, fmt.Errorf("failed to get content %s: %w", id, err)
	}
	return record, true, nil
}

// QueryFiltered returns candidates matching the filter, most recently
// updated first.
func (s *PGStorage) QueryFiltered(ctx context.Context, filter content.Filter) ([]content.VectorContent, error) {
	query := strings.Builder{}
	query.WriteString(`
		SELECT id, content_type, title, body, metadata, cluster_id, embedding
		FROM vector_content WHERE 1=1`)

	args := make([]any, 0, 3)
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		fmt.Fprintf(&query, " AND content_type = $%d", len(args))
	}
	if filter.Cluster != "" {
		args = append(args, filter.Cluster)
		fmt.Fprintf(&query, " AND cluster_id = $%d", len(args))
	}
	query.WriteString(" ORDER BY updated_at DESC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&query, " LIMIT $%d", len(args))
	}

	rows, err := s.conn.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query content: %w", err)
	}
	defer rows.Close()

	out := make([]content.VectorContent, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content row: %w", err)
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read content rows: %w", err)
	}
	return out, nil
}

// Count returns the number of stored records.
func (s *PGStorage) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.conn.QueryRow(ctx, `SELECT count(*) FROM vector_content`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count content: %w", err)
	}
	return count, nil
}

func scanRecord(row pgx.Row) (content.VectorContent, error) {
	var (
		record       content.VectorContent
		contentType  string
		metadataJSON []byte
		clusterID    *string
		embedding    *pgvector.Vector
	)
	err := row.Scan(&record.ID, &contentType, &record.Title, &record.Body, &metadataJSON, &clusterID, &embedding)
	if err != nil {
		return content.VectorContent{}, err
	}

	record.Type = content.ContentType(contentType)
	if clusterID != nil {
		record.ClusterID = *clusterID
	}
	if embedding != nil {
		record.Vector = embedding.Slice()
	}
	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &record.Metadata); err != nil {
			return content.VectorContent{}, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}
	return record, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
