package middleware

import (
	"github.com/MicahParks/keyfunc/v3"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/labstack/echo/v4"
	"github.com/rabbitmq/amqp091-go"

	"github.com/buzzlab/relevance/pkg/cluster"
	"github.com/buzzlab/relevance/pkg/content"
	"github.com/buzzlab/relevance/pkg/ingest"
	"github.com/buzzlab/relevance/pkg/knowledge"
	"github.com/buzzlab/relevance/pkg/rag"
)

// AppUser is the authenticated caller attached by the auth middleware.
type AppUser struct {
	UserID      int64
	Role        string
	Permissions []string
}

// App bundles the services a request handler may need.
type App struct {
	Engine   *rag.Engine
	Pipeline *ingest.Pipeline
	Graph    *knowledge.EntityGraph
	Triples  *knowledge.TripleStore
	Clusters *cluster.Index
	Store    *content.Store

	Queue *amqp091.Channel
	Key   *keyfunc.Keyfunc
	S3    *s3.Client

	MasterAPIKey string
}

// AppContext wraps the echo context with the application services and the
// authenticated user.
type AppContext struct {
	echo.Context
	App  *App
	User *AppUser
}

// AppContextMiddleware attaches the shared App to every request.
func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app, nil}
			return next(cc)
		}
	}
}
