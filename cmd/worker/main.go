package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/buzzlab/relevance/internal/queue"
	"github.com/buzzlab/relevance/internal/storage"
	"github.com/buzzlab/relevance/internal/util"
	"github.com/buzzlab/relevance/pkg/ai"
	"github.com/buzzlab/relevance/pkg/ai/provider"
	"github.com/buzzlab/relevance/pkg/cluster"
	"github.com/buzzlab/relevance/pkg/content"
	contentpgx "github.com/buzzlab/relevance/pkg/content/pgx"
	"github.com/buzzlab/relevance/pkg/ingest"
	"github.com/buzzlab/relevance/pkg/knowledge"
	"github.com/buzzlab/relevance/pkg/leaselock"
	"github.com/buzzlab/relevance/pkg/logger"
	"github.com/buzzlab/relevance/pkg/logger/console"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxvec "github.com/pgvector/pgvector-go/pgx"
)

func main() {
	util.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// logger
	debug := util.GetEnvBool("DEBUG", false)
	consoleBackend := console.NewConsoleBackend(console.ConsoleBackendParams{
		Debug: debug,
	})
	logger.Init(consoleBackend)

	// Content storage
	var backend content.Storage
	var leases *leaselock.Client
	if databaseURL := util.GetEnv("DATABASE_URL"); databaseURL != "" {
		cfg, err := pgxpool.ParseConfig(databaseURL)
		if err != nil {
			logger.Fatal("Invalid database url", "err", err)
		}
		cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			return pgxvec.RegisterTypes(ctx, conn)
		}
		pool, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			logger.Fatal("Unable to connect to database", "err", err)
		}
		defer pool.Close()
		backend = contentpgx.NewPGStorage(pool)
		leases = leaselock.New(pool)
	} else {
		logger.Warn("DATABASE_URL not set, ingested content will not survive restarts")
		backend = content.NewMemoryStorage()
	}
	store := content.NewStore(backend)

	graph := knowledge.NewEntityGraph(knowledge.SeedEntities())
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

	var s3Client *s3.Client
	if util.GetEnv("AWS_ENDPOINT") != "" {
		s3Client, err = storage.NewS3Client(ctx)
		if err != nil {
			logger.Fatal("Failed to create S3 client", "err", err)
		}
	}

	// Init rabbitmq
	conn := queue.Init()
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}
	defer ch.Close()

	if err := queue.SetupQueues(ch, queue.Queues); err != nil {
		logger.Fatal("Failed to setup queues", "err", err)
	}

	logger.Info("Listening for messages")

	// Single consumer channel with prefetch=1 so only one job is
	// processed at a time across all queues.
	consumerCh, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open consumer channel", "err", err)
	}
	defer consumerCh.Close()

	err = consumerCh.Qos(1, 0, true)
	if err != nil {
		logger.Fatal("Failed to set QoS", "err", err)
	}

	type queuedMessage struct {
		msg       amqp.Delivery
		queueName string
	}

	messageChan := make(chan queuedMessage)

	for _, queueName := range queue.Queues {
		go func(qName string) {
			msgs, err := consumerCh.Consume(
				qName,
				qName+"_consumer",
				false, // autoAck
				false, // exclusive
				false, // noLocal
				false, // noWait
				nil,   // args
			)
			if err != nil {
				logger.Fatal("Failed to start consuming", "queue", qName, "err", err)
			}

			for {
				select {
				case <-ctx.Done():
					logger.Info("Stopping consumer", "queue", qName)
					return
				case msg, ok := <-msgs:
					if !ok {
						logger.Info("Message channel closed", "queue", qName)
						return
					}
					messageChan <- queuedMessage{msg: msg, queueName: qName}
				}
			}
		}(queueName)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				logger.Info("Stopping message processor")
				return
			case qm := <-messageChan:
				startTime := time.Now()
				logger.Info("Received message", "queue", qm.queueName)

				var processingErr error
				switch qm.queueName {
				case queue.IngestQueue:
					run := func(ctx context.Context) error {
						return queue.ProcessIngest(ctx, s3Client, pipeline, string(qm.msg.Body))
					}
					if leases != nil {
						// One ingest run at a time across all workers, so
						// provider rate limits hold with multiple replicas.
						processingErr = leases.WithLease(ctx, "ingest_pipeline", leaselock.Options{TTL: 10 * time.Minute}, run)
					} else {
						processingErr = run(ctx)
					}
				}

				if processingErr != nil {
					logger.Error("Error processing message", "queue", qm.queueName, "err", processingErr)
					handleProcessingError(consumerCh, qm.msg, qm.queueName)
				} else {
					if err := qm.msg.Ack(false); err != nil {
						logger.Error("Failed to ack message", "err", err)
					}
					logger.Info("Message processed successfully", "queue", qm.queueName)
				}

				metrics := aiClient.GetMetrics()
				logger.Info(
					"AI Metrics",
					"input_tokens", metrics.InputTokens,
					"output_tokens", metrics.OutputTokens,
					"total_tokens", metrics.TotalTokens,
					"duration_ms", metrics.DurationMs,
				)
				logger.Info("Processing time", "duration", time.Since(startTime).Round(time.Second).String())
				aiClient.ResetMetrics()
			}
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received, exiting...")
}

const maxDeliveryRetries = 10

// handleProcessingError routes a failed message to the retry queue, or
// to the dead-letter queue once it has exceeded the retry budget.
func handleProcessingError(ch *amqp.Channel, msg amqp.Delivery, queueName string) {
	retries := 0
	if val, ok := msg.Headers["x-retries"]; ok {
		if v, ok := val.(int32); ok {
			retries = int(v)
		}
	}

	if retries >= maxDeliveryRetries {
		dlqName := queueName + "_dlq"
		logger.Info("Sending message to DLQ", "dlq", dlqName)
		pubErr := ch.Publish(
			"",
			dlqName,
			false,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				Body:        msg.Body,
				Headers:     msg.Headers,
			},
		)
		if pubErr != nil {
			logger.Error("Failed to publish to DLQ", "dlq", dlqName, "err", pubErr)
			msg.Nack(false, true)
			return
		}
		msg.Ack(false)
		return
	}

	retryName := queueName + "_retry"
	headers := msg.Headers
	if headers == nil {
		headers = amqp.Table{}
	}
	headers["x-retries"] = int32(retries + 1)

	pubErr := ch.Publish(
		"",
		retryName,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        msg.Body,
			Headers:     headers,
		},
	)
	if pubErr != nil {
		logger.Error("Failed to publish to retry queue", "retry_queue", retryName, "err", pubErr)
		msg.Nack(false, true)
		return
	}
	msg.Ack(false)
}
