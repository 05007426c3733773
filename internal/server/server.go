package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/buzzlab/relevance/internal/queue"
	mid "github.com/buzzlab/relevance/internal/server/middleware"
	"github.com/buzzlab/relevance/internal/storage"
	"github.com/buzzlab/relevance/internal/util"
	"github.com/buzzlab/relevance/pkg/ai"
	"github.com/buzzlab/relevance/pkg/ai/provider"
	"github.com/buzzlab/relevance/pkg/cluster"
	"github.com/buzzlab/relevance/pkg/content"
	contentpgx "github.com/buzzlab/relevance/pkg/content/pgx"
	"github.com/buzzlab/relevance/pkg/ingest"
	"github.com/buzzlab/relevance/pkg/knowledge"
	"github.com/buzzlab/relevance/pkg/logger"
	"github.com/buzzlab/relevance/pkg/rag"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/go-playground/validator"
	"github.com/golang-migrate/migrate/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	pgxvec "github.com/pgvector/pgvector-go/pgx"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

// Init wires the services together and runs the HTTP server until a
// shutdown signal arrives.
func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// JWT validation is optional: without AUTH_URL only the master API
	// key grants access.
	var key *keyfunc.Keyfunc
	if authURL := util.GetEnv("AUTH_URL"); authURL != "" {
		k, err := keyfunc.NewDefault([]string{authURL + "/jwks"})
		if err != nil {
			logger.Fatal("Failed to load jwks keys", "err", err)
		}
		key = &k
	}

	// Content storage: Postgres with pgvector when DATABASE_URL is set,
	// otherwise in-memory.
	var backend content.Storage
	if databaseURL := util.GetEnv("DATABASE_URL"); databaseURL != "" {
		runMigrations(databaseURL)

		cfg, err := pgxpool.ParseConfig(databaseURL)
		if err != nil {
			logger.Fatal("Invalid database url", "err", err)
		}
		cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			return pgxvec.RegisterTypes(ctx, conn)
		}
		pool, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			logger.Fatal("Failed to connect to database", "err", err)
		}
		defer pool.Close()
		backend = contentpgx.NewPGStorage(pool)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory content storage")
		backend = content.NewMemoryStorage()
	}
	store := content.NewStore(backend)

	graph := knowledge.NewEntityGraph(knowledge.SeedEntities())
	triples, err := knowledge.NewTripleStore(graph, knowledge.SeedTriples())
	if err != nil {
		logger.Fatal("Failed to build triple store", "err", err)
	}
	clusters, err := cluster.NewIndex(cluster.SeedClusters())
	if err != nil {
		logger.Fatal("Failed to build cluster index", "err", err)
	}

	aiClient, err := provider.FromEnv()
	if err != nil {
		logger.Fatal("Failed to create AI client", "err", err)
	}

	var classifier ingest.Classifier = ingest.NewHeuristicClassifier(graph, clusters)
	if util.GetEnvBool("INGEST_AI_CLASSIFIER", false) {
		classifier = ingest.NewAIClassifier(aiClient, graph, clusters)
	}
	pipeline := ingest.NewPipeline(ingest.PipelineParams{
		Classifier: classifier,
		Embedder:   ai.NewBatchEmbedder(aiClient, ai.BatchEmbedderParams{}),
		Store:      store,
	})

	memory := rag.NewSessionMemory(rag.SessionMemoryParams{
		TTL: time.Duration(util.GetEnvNumeric("RAG_SESSION_TTL_MIN", 30)) * time.Minute,
	})
	defer memory.Close()

	engine := rag.NewEngine(rag.EngineParams{
		Graph:    graph,
		Triples:  triples,
		Clusters: clusters,
		Store:    store,
		Client:   aiClient,
		Memory:   memory,
		Config: rag.Config{
			SimilarityThreshold:      util.GetEnvNumeric("RAG_SIMILARITY_THRESHOLD", 0.5),
			EntityRelevanceThreshold: util.GetEnvNumeric("RAG_ENTITY_RELEVANCE_THRESHOLD", 0.6),
			MinConfidence:            util.GetEnvNumeric("RAG_MIN_CONFIDENCE", 0.3),
			MaxResults:               int(util.GetEnvNumeric("RAG_MAX_RESULTS", 5)),
			MaxContextTokens:         int(util.GetEnvNumeric("RAG_MAX_CONTEXT_TOKENS", 1500)),
			MemoryEnabled:            util.GetEnvBool("RAG_MEMORY_ENABLED", true),
		},
	})

	app := &mid.App{
		Engine:       engine,
		Pipeline:     pipeline,
		Graph:        graph,
		Triples:      triples,
		Clusters:     clusters,
		Store:        store,
		Key:          key,
		MasterAPIKey: util.GetEnv("MASTER_API_KEY"),
	}

	// Async ingestion needs the queue; without RabbitMQ the ingest route
	// still works synchronously.
	if util.GetEnv("RABBITMQ_HOST") != "" {
		que := queue.Init()
		defer que.Close()
		ch, err := que.Channel()
		if err != nil {
			logger.Fatal("Failed to open channel", "err", err)
		}
		if err := queue.SetupQueues(ch, queue.Queues); err != nil {
			logger.Fatal("Failed to setup queues", "err", err)
		}
		app.Queue = ch
	}

	if util.GetEnv("AWS_ENDPOINT") != "" {
		s3Client, err := storage.NewS3Client(ctx)
		if err != nil {
			logger.Fatal("Failed to create S3 client", "err", err)
		}
		app.S3 = s3Client
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("16M"))

	RegisterRoutes(e)

	go func() {
		port := util.GetEnv("PORT")
		if port == "" {
			port = "8080"
		}
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}

func runMigrations(databaseURL string) {
	m, err := migrate.New("file://migrations", databaseURL)
	if err != nil {
		logger.Fatal("Failed to initialize migrations", "err", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal("Failed to run migrations", "err", err)
	}
}
