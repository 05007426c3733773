package server

import (
	"github.com/buzzlab/relevance/internal/server/middleware"
	"github.com/buzzlab/relevance/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Query routes
	apiRoutes.POST("/query", routes.QueryHandler, middleware.RequirePermission("query.run"))
	apiRoutes.GET("/query/history/:session_id", routes.GetHistoryHandler, middleware.RequirePermission("query.history"))

	// Ingestion routes
	apiRoutes.POST("/ingest", routes.IngestHandler, middleware.RequirePermission("content.ingest"))

	// Knowledge graph routes
	apiRoutes.GET("/entities", routes.GetEntitiesHandler, middleware.RequirePermission("knowledge.view"))
	apiRoutes.GET("/entities/:id", routes.GetEntityHandler, middleware.RequirePermission("knowledge.view"))
	apiRoutes.GET("/entities/:id/similarity/:other", routes.GetEntitySimilarityHandler, middleware.RequirePermission("knowledge.view"))
	apiRoutes.GET("/entities/:id/content", routes.GetEntityContentHandler, middleware.RequirePermission("knowledge.view"))

	// Topic cluster routes
	apiRoutes.GET("/clusters/gaps", routes.GetClusterGapsHandler, middleware.RequirePermission("knowledge.view"))
	apiRoutes.GET("/clusters/:id", routes.GetClusterHandler, middleware.RequirePermission("knowledge.view"))
	apiRoutes.GET("/clusters/:id/links", routes.GetClusterLinksHandler, middleware.RequirePermission("knowledge.view"))

	// Content routes
	apiRoutes.GET("/content/:id", routes.GetContentHandler, middleware.RequirePermission("knowledge.view"))
}
