package factory

import (
	"context"
	"fmt"

	"lessoncraft-be/pkg/llm"
	"lessoncraft-be/pkg/llm/gemini"
	"lessoncraft-be/pkg/llm/ollama"
	"lessoncraft-be/pkg/llm/openai"
	"lessoncraft-be/pkg/llm/vertex"

	gollemgemini "github.com/m-mizutani/gollem/llm/gemini"
)

type Config struct {
	Provider       string // "ollama", "gemini", "openai", "vertex" or "none"
	Model          string
	BaseURL        string
	APIKey         string
	VertexProject  string
	VertexLocation string
}

// NewLLMProvider returns nil, nil for "none" or an unusable configuration;
// callers then fall back to deterministic responses.
func NewLLMProvider(ctx context.Context, cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "", "none":
		return nil, nil
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model), nil
	case "gemini":
		if cfg.APIKey == "" {
			return nil, nil
		}
		p := gemini.NewProvider(cfg.APIKey, cfg.Model)
		if cfg.BaseURL != "" {
			p.BaseURL = cfg.BaseURL
		}
		return p, nil
	case "openai":
		if cfg.APIKey == "" {
			return nil, nil
		}
		return openai.NewProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case "vertex":
		if cfg.VertexProject == "" {
			return nil, nil
		}
		client, err := gollemgemini.New(ctx, cfg.VertexProject, cfg.VertexLocation)
		if err != nil {
			return nil, fmt.Errorf("create vertex client: %w", err)
		}
		return vertex.NewProvider(client), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
