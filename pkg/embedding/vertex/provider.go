package vertex

import (
	"context"

	"lessoncraft-be/pkg/embedding"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

// Embedder is the part of gollem.LLMClient this provider needs.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error)
}

// Provider embeds through a gollem client (Gemini on Vertex AI).
type Provider struct {
	client    Embedder
	dimension int
}

var (
	_ embedding.EmbeddingProvider = (*Provider)(nil)
	_ embedding.BatchProvider     = (*Provider)(nil)
	_ Embedder                    = (gollem.LLMClient)(nil)
)

func NewProvider(client Embedder, dimension int) *Provider {
	return &Provider{client: client, dimension: dimension}
}

func (p *Provider) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	res, err := p.GenerateBatch(ctx, []string{text}, taskType)
	if err != nil {
		return nil, err
	}
	return res[0], nil
}

func (p *Provider) GenerateBatch(ctx context.Context, texts []string, _ string) ([]*embedding.EmbeddingResponse, error) {
	vectors, err := p.client.GenerateEmbedding(ctx, p.dimension, texts)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate embedding", goerr.V("count", len(texts)))
	}
	if len(vectors) != len(texts) {
		return nil, goerr.New("unexpected embedding count", goerr.V("want", len(texts)), goerr.V("got", len(vectors)))
	}

	out := make([]*embedding.EmbeddingResponse, len(vectors))
	for i, vec := range vectors {
		values := make([]float32, len(vec))
		for j, v := range vec {
			values[j] = float32(v)
		}
		out[i] = &embedding.EmbeddingResponse{
			Embedding: embedding.EmbeddingResponseEmbedding{Values: values},
		}
	}
	return out, nil
}
