package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"lessoncraft-be/internal/entity"
	"lessoncraft-be/internal/pkg/logger"
	"lessoncraft-be/internal/pkg/secret"
	"lessoncraft-be/internal/repository/memory"
	"lessoncraft-be/internal/repository/unitofwork"
	"lessoncraft-be/pkg/llm"
	"lessoncraft-be/pkg/llm/factory"

	"github.com/google/uuid"
)

const resolverModule = "model_resolver"

// IModelResolver picks the language model for a user. A nil result means no
// model is configured and the workflow uses its fallbacks.
type IModelResolver interface {
	Resolve(ctx context.Context, userId uuid.UUID) llm.LLMProvider
}

type ModelResolverConfig struct {
	GeminiModel string
	OpenAIModel string
	Server      factory.Config
}

type modelResolver struct {
	uowFactory unitofwork.RepositoryFactory
	sealer     *secret.Sealer
	cache      *memory.ProviderCache
	logger     logger.ILogger
	cfg        ModelResolverConfig

	serverOnce  sync.Once
	serverModel llm.LLMProvider
}

func NewModelResolver(
	uowFactory unitofwork.RepositoryFactory,
	sealer *secret.Sealer,
	cache *memory.ProviderCache,
	log logger.ILogger,
	cfg ModelResolverConfig,
) IModelResolver {
	return &modelResolver{
		uowFactory: uowFactory,
		sealer:     sealer,
		cache:      cache,
		logger:     log,
		cfg:        cfg,
	}
}

// Resolve prefers the user's own Gemini key, then their OpenAI key, then the
// server-wide provider.
func (r *modelResolver) Resolve(ctx context.Context, userId uuid.UUID) llm.LLMProvider {
	user, err := r.uowFactory.NewUnitOfWork(ctx).UserRepository().FindById(ctx, userId)
	if err != nil {
		r.logger.Warn(resolverModule, "Failed to load user, using server model", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
	}
	if user != nil && len(user.ApiKeys) > 0 && r.sealer != nil {
		if model := r.userModel(ctx, user); model != nil {
			return model
		}
	}
	return r.server(ctx)
}

func (r *modelResolver) userModel(ctx context.Context, user *entity.User) llm.LLMProvider {
	key := cacheKey(user)
	if r.cache != nil {
		if model, ok := r.cache.Get(key); ok {
			return model
		}
	}

	keys := r.sealer.OpenMap(user.ApiKeys)
	var cfg factory.Config
	switch {
	case keys[entity.ApiKeyGemini] != "":
		cfg = factory.Config{Provider: "gemini", APIKey: keys[entity.ApiKeyGemini], Model: r.cfg.GeminiModel}
	case keys[entity.ApiKeyOpenAI] != "":
		cfg = factory.Config{Provider: "openai", APIKey: keys[entity.ApiKeyOpenAI], Model: r.cfg.OpenAIModel}
	default:
		return nil
	}

	model, err := factory.NewLLMProvider(ctx, cfg)
	if err != nil || model == nil {
		return nil
	}
	if r.cache != nil {
		r.cache.Save(key, model)
	}
	return model
}

func (r *modelResolver) server(ctx context.Context) llm.LLMProvider {
	r.serverOnce.Do(func() {
		model, err := factory.NewLLMProvider(context.WithoutCancel(ctx), r.cfg.Server)
		if err != nil {
			r.logger.Error(resolverModule, "Failed to build server model", map[string]interface{}{
				"provider": r.cfg.Server.Provider,
				"error":    err.Error(),
			})
			return
		}
		r.serverModel = model
	})
	return r.serverModel
}

// cacheKey changes whenever the sealed keys change, so updated keys miss.
func cacheKey(user *entity.User) string {
	h := sha256.New()
	h.Write([]byte(user.ApiKeys[entity.ApiKeyGemini]))
	h.Write([]byte{0})
	h.Write([]byte(user.ApiKeys[entity.ApiKeyOpenAI]))
	return user.Id.String() + ":" + hex.EncodeToString(h.Sum(nil))[:16]
}
