package routes

import (
	"errors"
	"net/http"

	"github.com/buzzlab/relevance/internal/server/middleware"
	"github.com/buzzlab/relevance/pkg/rag"

	"github.com/labstack/echo/v4"
)

type queryRequest struct {
	Question        string `json:"question" validate:"required"`
	Context         string `json:"context"`
	UserType        string `json:"user_type"`
	SessionID       string `json:"session_id"`
	MaxResults      int    `json:"max_results"`
	IncludeEntities bool   `json:"include_entities"`
}

// QueryHandler answers a question against the content store. Provider
// outages surface as a degraded low-confidence response, never as a 5xx.
func QueryHandler(c echo.Context) error {
	cc := c.(*middleware.AppContext)

	var req queryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Question is required"})
	}

	response, err := cc.App.Engine.Query(c.Request().Context(), rag.Query{
		Question:        req.Question,
		Context:         req.Context,
		UserType:        req.UserType,
		SessionID:       req.SessionID,
		MaxResults:      req.MaxResults,
		IncludeEntities: req.IncludeEntities,
	})
	if err != nil {
		var validationErr *rag.ValidationError
		if errors.As(err, &validationErr) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": validationErr.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to process query"})
	}

	return c.JSON(http.StatusOK, response)
}
