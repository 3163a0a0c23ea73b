package main

import (
	"context"
	"flag"
	"log"

	"chapchap-be/internal/config"
	"chapchap-be/internal/repository/implementation"
	"chapchap-be/internal/service"
	"chapchap-be/pkg/database"
	"chapchap-be/pkg/embedding"
	"chapchap-be/pkg/events"
	pktNats "chapchap-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/fatih/color"
)

// Backfills sentence embeddings and centroid vectors for every active
// posting. With -publish it only emits JOB_SENTENCES_UPDATED events and lets
// the running server's worker do the embedding.
func main() {
	publish := flag.Bool("publish", false, "emit NATS events instead of embedding directly")
	flag.Parse()

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	jobRepo := implementation.NewJobRepository(db)

	ctx := context.Background()
	jobIds, err := jobRepo.FindActiveJobIds(ctx)
	if err != nil {
		log.Fatalf("Failed to list active jobs: %v", err)
	}

	color.Cyan("🚀 Embedding backfill for %d active postings\n", len(jobIds))

	if *publish {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		defer pub.Close()

		for _, jobId := range jobIds {
			if err := pub.Publish(ctx, events.NewJobSentencesUpdated(jobId)); err != nil {
				color.Red("job %d: %v", jobId, err)
				continue
			}
			color.Green("job %d: event published", jobId)
		}
		return
	}

	embeddingProvider, err := embedding.NewEmbeddingProvider(
		cfg.Ai.EmbeddingProvider,
		cfg.Ai.EmbeddingModel,
		cfg.Ai.EmbeddingDim,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("Failed to initialize embedding provider: %v", err)
	}

	// The consumer service owns the embed logic; reuse it without a queue.
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	consumer := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedJobTopic,
		jobRepo,
		implementation.NewJobEmbeddingRepository(db),
		embeddingProvider,
	)

	done, failed := 0, 0
	for _, jobId := range jobIds {
		if err := consumer.EmbedJob(ctx, jobId); err != nil {
			color.Red("job %d: %v", jobId, err)
			failed++
			continue
		}
		color.Green("job %d: embedded", jobId)
		done++
	}

	color.Cyan("\nDone: %d embedded, %d failed", done, failed)
}
