package bootstrap

import (
	"context"
	"log"
	"time"

	"chapchap-be/internal/config"
	"chapchap-be/internal/controller"
	"chapchap-be/internal/pkg/logger"
	"chapchap-be/internal/repository/implementation"
	"chapchap-be/internal/repository/memory"
	"chapchap-be/internal/service"
	"chapchap-be/pkg/embedding"
	"chapchap-be/pkg/llm"
	"chapchap-be/pkg/llm/factory"
	"chapchap-be/pkg/match"
	"chapchap-be/pkg/store"

	pktNats "chapchap-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	MatchController controller.IMatchController
	JobController   controller.IJobController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	JobEventService service.IJobEventService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	embeddingProvider, err := embedding.NewEmbeddingProvider(
		cfg.Ai.EmbeddingProvider,
		cfg.Ai.EmbeddingModel,
		cfg.Ai.EmbeddingDim,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Embedding Provider: %v", err)
	}
	log.Printf("[INFO] Using Embedding Provider: %s (%s)", cfg.Ai.EmbeddingProvider, cfg.Ai.EmbeddingModel)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// 5. Session Store (selected by config, same contract everywhere)
	sessionStore := newSessionStore(cfg, db)

	// 6. Repositories
	companyRepo := implementation.NewCachedCompanyRepository(
		implementation.NewCompanyRepository(db),
		10*time.Minute,
	)
	jobRepo := implementation.NewJobRepository(db)
	jobEmbeddingRepo := implementation.NewJobEmbeddingRepository(db)

	// 7. Pipeline + Services
	pipeline := match.NewPipeline(
		sessionStore,
		jobRepo,
		jobEmbeddingRepo,
		companyRepo,
		llmProvider,
		embeddingProvider,
		sysLogger,
		cfg.Match.RetrievalCount,
		cfg.Match.RerankCount,
		llm.WithTemperature(cfg.Ai.LLMTemperature),
	)

	matchService := service.NewMatchService(pipeline)
	jobService := service.NewJobService(jobRepo)

	publisherService := service.NewPublisherService(cfg.Keys.EmbedJobTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedJobTopic,
		jobRepo,
		jobEmbeddingRepo,
		embeddingProvider,
	)

	var jobEventService service.IJobEventService
	if natsSub != nil {
		jobEventService = service.NewJobEventService(natsSub, publisherService, cfg.Keys.JobUpdatedEvent)
	}

	return &Container{
		MatchController: controller.NewMatchController(matchService),
		JobController:   controller.NewJobController(jobService),

		ConsumerService: consumerService,
		JobEventService: jobEventService,
	}
}

// newSessionStore picks the checkpoint backend. Postgres is the durable
// default; redis trades durability for latency; memory is for tests and
// local development only.
func newSessionStore(cfg *config.Config, db *gorm.DB) store.SessionStore {
	switch cfg.Session.Backend {
	case "redis":
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		log.Println("[INFO] Using Session Store: REDIS")
		return store.NewRedisSessionStore(rdb)

	case "memory":
		log.Println("[INFO] Using Session Store: MEMORY (non-durable)")
		return memory.NewSessionStore()

	default:
		log.Println("[INFO] Using Session Store: POSTGRES")
		return implementation.NewMatchSessionStore(db)
	}
}
