package routes

import (
	"encoding/json"
	"net/http"

	"github.com/buzzlab/relevance/internal/queue"
	"github.com/buzzlab/relevance/internal/server/middleware"
	"github.com/buzzlab/relevance/pkg/ingest"

	"github.com/labstack/echo/v4"
)

type ingestRequest struct {
	Records  []ingest.SourceRecord `json:"records"`
	S3Key    string                `json:"s3_key"`
	URLs     []string              `json:"urls"`
	Category string                `json:"category"`

	// Async enqueues the job for the worker instead of running it in the
	// request. S3 and URL sources are always asynchronous.
	Async bool `json:"async"`
}

// IngestHandler accepts new source material. Inline records can run
// synchronously and return the batch report; everything else is handed to
// the worker through the ingest queue.
func IngestHandler(c echo.Context) error {
	cc := c.(*middleware.AppContext)

	var req ingestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if len(req.Records) == 0 && req.S3Key == "" && len(req.URLs) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No ingest sources supplied"})
	}

	async := req.Async || req.S3Key != "" || len(req.URLs) > 0
	if async {
		if cc.App.Queue == nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "Ingest queue is not configured"})
		}

		msg, err := json.Marshal(queue.IngestJobMsg{
			Records:  req.Records,
			S3Key:    req.S3Key,
			URLs:     req.URLs,
			Category: req.Category,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to encode ingest job"})
		}
		if err := queue.PublishFIFO(cc.App.Queue, queue.IngestQueue, msg); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to enqueue ingest job"})
		}
		return c.JSON(http.StatusAccepted, map[string]string{"status": "queued"})
	}

	report, err := cc.App.Pipeline.Ingest(c.Request().Context(), req.Records)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Ingest run was interrupted"})
	}
	return c.JSON(http.StatusOK, report)
}
