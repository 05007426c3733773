package routes

import (
	"net/http"
	"strconv"

	"github.com/buzzlab/relevance/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

// GetClusterHandler returns a topic cluster with its resolved
// relationships and SEO score.
func GetClusterHandler(c echo.Context) error {
	cc := c.(*middleware.AppContext)

	id := c.Param("id")
	topic, ok := cc.App.Clusters.Get(id)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Cluster not found"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"cluster":       topic,
		"relationships": cc.App.Clusters.Relationships(id),
		"seo_score":     cc.App.Clusters.SEOScore(id),
	})
}

// GetClusterLinksHandler returns the internal linking strategy for a
// cluster's pillar page.
func GetClusterLinksHandler(c echo.Context) error {
	cc := c.(*middleware.AppContext)

	id := c.Param("id")
	if _, ok := cc.App.Clusters.Get(id); !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Cluster not found"})
	}

	return c.JSON(http.StatusOK, cc.App.Clusters.InternalLinkStrategy(id))
}

// GetClusterGapsHandler reports under-developed and missing topic
// clusters.
func GetClusterGapsHandler(c echo.Context) error {
	cc := c.(*middleware.AppContext)
	return c.JSON(http.StatusOK, cc.App.Clusters.GapAnalysis())
}

func parseFloatParam(value string) (float64, error) {
	return strconv.ParseFloat(value, 64)
}
