package bootstrap

import (
	"context"
	"fmt"
	"time"

	"lessoncraft-be/internal/config"
	"lessoncraft-be/internal/controller"
	"lessoncraft-be/internal/pkg/logger"
	"lessoncraft-be/internal/pkg/secret"
	"lessoncraft-be/internal/pkg/serverutils"
	"lessoncraft-be/internal/repository/memory"
	"lessoncraft-be/internal/repository/unitofwork"
	"lessoncraft-be/internal/service"
	"lessoncraft-be/pkg/database"
	"lessoncraft-be/pkg/embedding"
	embeddingfactory "lessoncraft-be/pkg/embedding/factory"
	"lessoncraft-be/pkg/extractor"
	"lessoncraft-be/pkg/filestore"
	llmfactory "lessoncraft-be/pkg/llm/factory"

	pktNats "lessoncraft-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

const (
	bootstrapModule  = "bootstrap"
	providerCacheTTL = 30 * time.Minute
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	AuthController       controller.IAuthController
	OAuthController      controller.IOAuthController
	UserController       controller.IUserController
	LessonPlanController controller.ILessonPlanController
	ChatController       controller.IChatController
	FileController       controller.IFileController
	MediaController      controller.IMediaController

	// Background services, started by main.go
	ConsumerService   service.IConsumerService
	EventAuditService service.IEventAuditService

	closers []func()
}

func NewContainer(cfg *config.Config) (*Container, error) {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	auditLogger := logger.NewIsolatedLogger(cfg.App.EventLogFilePath)

	uowFactory, err := newRepositoryFactory(cfg, sysLogger)
	if err != nil {
		return nil, err
	}

	// 2. Event bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)

	// 3. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
	if err != nil {
		sysLogger.Warn(bootstrapModule, "Failed to connect to NATS publisher", map[string]interface{}{"error": err.Error()})
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL, sysLogger)
	if err != nil {
		sysLogger.Warn(bootstrapModule, "Failed to connect to NATS subscriber", map[string]interface{}{"error": err.Error()})
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		sysLogger.Warn(bootstrapModule, "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		sysLogger.Warn(bootstrapModule, "Failed to connect to Redis, embeddings will not be cached", map[string]interface{}{"error": err.Error()})
	}

	// 4. AI providers
	embedder, err := newEmbedder(cfg, rdb, sysLogger)
	if err != nil {
		return nil, err
	}

	sealingSecret := cfg.App.KeySealingSecret
	if sealingSecret == "" {
		sysLogger.Warn(bootstrapModule, "KEY_SEALING_SECRET not set, deriving key sealing from JWT_SECRET", nil)
		sealingSecret = cfg.App.JwtSecret
	}
	sealer, err := secret.NewSealer(sealingSecret)
	if err != nil {
		return nil, fmt.Errorf("create key sealer: %w", err)
	}

	models := service.NewModelResolver(
		uowFactory,
		sealer,
		memory.NewProviderCache(providerCacheTTL),
		sysLogger,
		service.ModelResolverConfig{
			GeminiModel: cfg.Ai.GeminiChatModel,
			Server: llmfactory.Config{
				Provider:       cfg.Ai.LLMProvider,
				Model:          cfg.Ai.LLMModel,
				BaseURL:        cfg.Ai.OllamaBaseURL,
				APIKey:         cfg.Ai.GeminiAPIKey,
				VertexProject:  cfg.Ai.VertexProject,
				VertexLocation: cfg.Ai.VertexLocation,
			},
		},
	)

	// 5. Services
	var eventPublisher service.EventPublisher
	if natsPub != nil {
		eventPublisher = natsPub
	}

	store := filestore.NewLocalStore(cfg.App.UploadDir)
	assistantService := service.NewAssistantService(
		uowFactory,
		extractor.New(extractor.PlaceholderOCR{}, sysLogger),
		embedder,
		models,
		eventPublisher,
		sysLogger,
		service.AssistantConfig{
			ChunkSize:         cfg.RAG.ChunkSize,
			ChunkOverlap:      cfg.RAG.ChunkOverlap,
			TopK:              cfg.RAG.TopK,
			DetailConcurrency: cfg.RAG.DetailConcurrency,
		},
	)

	publisherService := service.NewPublisherService(cfg.App.IngestTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.IngestTopic, assistantService, sysLogger, cfg.RAG.IngestConcurrency)

	userService := service.NewUserService(uowFactory, sealer, sysLogger)
	oauthService := service.NewOAuthService(uowFactory, service.OAuthConfig{
		ClientID:     cfg.OAuth.GoogleClientID,
		ClientSecret: cfg.OAuth.GoogleClientSecret,
		RedirectURL:  cfg.OAuth.GoogleRedirectURL,
		JwtSecret:    cfg.App.JwtSecret,
	}, sysLogger)
	lessonPlanService := service.NewLessonPlanService(uowFactory, store, sysLogger)
	chatService := service.NewChatService(uowFactory, assistantService, sysLogger)
	fileService := service.NewFileService(uowFactory, store, publisherService, sysLogger)
	mediaService := service.NewMediaService()

	var auditService service.IEventAuditService
	if natsSub != nil {
		auditService = service.NewEventAuditService(natsSub, auditLogger)
	}

	// 6. Controllers
	auth := serverutils.NewJwtMiddleware(cfg.App.JwtSecret)

	c := &Container{
		Logger: sysLogger,

		AuthController:       controller.NewAuthController(userService, auth),
		OAuthController:      controller.NewOAuthController(oauthService, cfg.App.ClientURL),
		UserController:       controller.NewUserController(userService, auth),
		LessonPlanController: controller.NewLessonPlanController(lessonPlanService, auth),
		ChatController:       controller.NewChatController(chatService, auth),
		FileController:       controller.NewFileController(fileService, auth),
		MediaController:      controller.NewMediaController(mediaService, auth),

		ConsumerService:   consumerService,
		EventAuditService: auditService,
	}
	c.closers = append(c.closers, func() { pubSub.Close() }, func() { rdb.Close() })
	if natsPub != nil {
		c.closers = append(c.closers, natsPub.Close)
	}
	if natsSub != nil {
		c.closers = append(c.closers, natsSub.Close)
	}
	c.closers = append(c.closers, func() {
		sysLogger.Sync()
		auditLogger.Sync()
	})
	return c, nil
}

// Close releases connections in the order they were opened.
func (c *Container) Close() {
	for _, closeFn := range c.closers {
		closeFn()
	}
}

func newRepositoryFactory(cfg *config.Config, log logger.ILogger) (unitofwork.RepositoryFactory, error) {
	switch cfg.Database.Driver {
	case "memory":
		log.Warn(bootstrapModule, "Using in-memory store, data is lost on restart", nil)
		return unitofwork.NewMemoryRepositoryFactory(memory.NewStore()), nil
	case "postgres", "":
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		return unitofwork.NewRepositoryFactory(db), nil
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER: %s", cfg.Database.Driver)
	}
}

// newEmbedder returns a nil Embedder when no provider is configured so the
// assistant skips ingestion and retrieval instead of failing.
func newEmbedder(cfg *config.Config, rdb redis.Cmdable, log logger.ILogger) (embedding.Embedder, error) {
	apiKey := cfg.Ai.GeminiAPIKey
	if cfg.Ai.EmbeddingProvider == "jina" {
		apiKey = cfg.Ai.JinaAPIKey
	}
	provider, err := embeddingfactory.NewEmbeddingProvider(context.Background(), embeddingfactory.Config{
		Provider:       cfg.Ai.EmbeddingProvider,
		Model:          cfg.Ai.EmbeddingModel,
		Dimension:      cfg.Ai.EmbeddingDimension,
		BaseURL:        cfg.Ai.OllamaBaseURL,
		APIKey:         apiKey,
		VertexProject:  cfg.Ai.VertexProject,
		VertexLocation: cfg.Ai.VertexLocation,
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding provider: %w", err)
	}
	if provider == nil {
		log.Warn(bootstrapModule, "No embedding provider configured, file ingestion is disabled", map[string]interface{}{
			"provider": cfg.Ai.EmbeddingProvider,
		})
		return nil, nil
	}

	log.Info(bootstrapModule, "Using embedding provider", map[string]interface{}{
		"provider":  cfg.Ai.EmbeddingProvider,
		"model":     cfg.Ai.EmbeddingModel,
		"dimension": cfg.Ai.EmbeddingDimension,
	})
	namespace := cfg.Ai.EmbeddingProvider + ":" + cfg.Ai.EmbeddingModel
	cached := embedding.NewCachedProvider(provider, rdb, namespace, cfg.Ai.EmbeddingCacheTTL)
	return embedding.NewEmbedder(cached, cfg.Ai.EmbeddingDimension, log), nil
}
