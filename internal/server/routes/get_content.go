package routes

import (
	"net/http"
	"strconv"

	"github.com/buzzlab/relevance/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

// GetContentHandler returns one stored content record with its composite
// relevance analysis. The vector itself is omitted from the payload.
func GetContentHandler(c echo.Context) error {
	cc := c.(*middleware.AppContext)

	id := c.Param("id")
	record, ok, err := cc.App.Store.Get(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load content"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Content not found"})
	}

	analysis, _, err := cc.App.Store.AnalyzeRelevance(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to analyze content"})
	}

	record.Vector = nil
	return c.JSON(http.StatusOK, map[string]any{
		"content":   record,
		"relevance": analysis,
	})
}

// GetEntityContentHandler lists the stored content mentioning an entity,
// ranked by stored relevance.
func GetEntityContentHandler(c echo.Context) error {
	cc := c.(*middleware.AppContext)

	id := c.Param("id")
	if _, ok := cc.App.Graph.Get(id); !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Entity not found"})
	}

	limit := 10
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid limit"})
		}
		limit = parsed
	}

	records, err := cc.App.Store.FindByEntity(c.Request().Context(), id, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load content"})
	}
	for i := range records {
		records[i].Vector = nil
	}

	return c.JSON(http.StatusOK, map[string]any{"content": records})
}
