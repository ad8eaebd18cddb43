package factory

import (
	"context"
	"fmt"

	"lessoncraft-be/pkg/embedding"
	"lessoncraft-be/pkg/embedding/jina"
	"lessoncraft-be/pkg/embedding/vertex"

	"github.com/m-mizutani/gollem/llm/gemini"
)

type Config struct {
	Provider       string // "ollama", "gemini", "jina", "vertex" or "none"
	Model          string
	Dimension      int
	BaseURL        string
	APIKey         string
	VertexProject  string
	VertexLocation string
}

// NewEmbeddingProvider returns nil, nil when embeddings are not configured, so callers
// can treat a missing provider as "no retrieval" rather than an error.
func NewEmbeddingProvider(ctx context.Context, cfg Config) (embedding.EmbeddingProvider, error) {
	switch cfg.Provider {
	case "", "none":
		return nil, nil
	case "ollama":
		return embedding.NewOllamaProvider(cfg.BaseURL, cfg.Model), nil
	case "gemini":
		if cfg.APIKey == "" {
			return nil, nil
		}
		return embedding.NewGeminiProvider(cfg.APIKey, cfg.Model), nil
	case "jina":
		if cfg.APIKey == "" {
			return nil, nil
		}
		return jina.NewJinaProvider(cfg.APIKey, cfg.Model), nil
	case "vertex":
		if cfg.VertexProject == "" {
			return nil, nil
		}
		client, err := gemini.New(ctx, cfg.VertexProject, cfg.VertexLocation)
		if err != nil {
			return nil, fmt.Errorf("create vertex client: %w", err)
		}
		return vertex.NewProvider(client, cfg.Dimension), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}
