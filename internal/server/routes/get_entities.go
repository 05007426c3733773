package routes

import (
	"net/http"

	"github.com/buzzlab/relevance/internal/server/middleware"
	"github.com/buzzlab/relevance/pkg/knowledge"

	"github.com/labstack/echo/v4"
)

// GetEntityHandler returns one entity together with its related entities,
// graph centrality, and the triples it participates in.
func GetEntityHandler(c echo.Context) error {
	cc := c.(*middleware.AppContext)

	id := c.Param("id")
	entity, ok := cc.App.Graph.Get(id)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Entity not found"})
	}

	related := cc.App.Graph.Related(id)
	facts := cc.App.Triples.Find(id, "", "")

	return c.JSON(http.StatusOK, map[string]any{
		"entity":     entity,
		"related":    related,
		"centrality": cc.App.Triples.Centrality(id),
		"facts":      facts,
	})
}

// GetEntitySimilarityHandler scores how closely two entities relate,
// combining graph similarity with triple confidence.
func GetEntitySimilarityHandler(c echo.Context) error {
	cc := c.(*middleware.AppContext)

	a := c.Param("id")
	b := c.Param("other")
	if _, ok := cc.App.Graph.Get(a); !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Entity not found"})
	}
	if _, ok := cc.App.Graph.Get(b); !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Entity not found"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"similarity": cc.App.Graph.Similarity(a, b),
		"strength":   cc.App.Triples.RelationshipStrength(a, b),
	})
}

// GetEntitiesHandler lists entities, optionally filtered by a minimum
// importance.
func GetEntitiesHandler(c echo.Context) error {
	cc := c.(*middleware.AppContext)

	var entities []knowledge.Entity
	if threshold := c.QueryParam("min_importance"); threshold != "" {
		parsed, err := parseFloatParam(threshold)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid min_importance"})
		}
		entities = cc.App.Graph.ByImportance(parsed)
	} else {
		entities = cc.App.Graph.All()
	}

	return c.JSON(http.StatusOK, map[string]any{"entities": entities})
}
