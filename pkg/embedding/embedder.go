package embedding

import (
	"context"

	"lessoncraft-be/internal/pkg/logger"
)

const logModule = "embedding"

// Embedder produces vectors of a fixed dimension and never fails: any item the
// backend could not embed comes back as a zero vector of that dimension.
type Embedder interface {
	// Embed embeds a retrieval query.
	Embed(ctx context.Context, text string) []float32
	// EmbedBatch embeds documents, one vector per input in the same order.
	EmbedBatch(ctx context.Context, texts []string) [][]float32
	Dimension() int
}

type embedder struct {
	provider  EmbeddingProvider
	dimension int
	logger    logger.ILogger
}

func NewEmbedder(provider EmbeddingProvider, dimension int, log logger.ILogger) Embedder {
	return &embedder{
		provider:  provider,
		dimension: dimension,
		logger:    log,
	}
}

func (e *embedder) Dimension() int {
	return e.dimension
}

func (e *embedder) Embed(ctx context.Context, text string) []float32 {
	res, err := e.provider.Generate(ctx, text, TaskRetrievalQuery)
	if err != nil {
		e.logger.Warn(logModule, "Query embedding failed, using zero vector", map[string]interface{}{"error": err.Error()})
		return ZeroVector(e.dimension)
	}
	return e.checked(res, 0)
}

func (e *embedder) EmbedBatch(ctx context.Context, texts []string) [][]float32 {
	vectors := make([][]float32, len(texts))
	if len(texts) == 0 {
		return vectors
	}

	if bp, ok := e.provider.(BatchProvider); ok {
		responses, err := bp.GenerateBatch(ctx, texts, TaskRetrievalDocument)
		if err != nil || len(responses) != len(texts) {
			details := map[string]interface{}{"count": len(texts), "returned": len(responses)}
			if err != nil {
				details["error"] = err.Error()
			}
			e.logger.Warn(logModule, "Batch embedding failed, using zero vectors", details)
			for i := range vectors {
				vectors[i] = ZeroVector(e.dimension)
			}
			return vectors
		}
		for i, res := range responses {
			vectors[i] = e.checked(res, i)
		}
		return vectors
	}

	for i, text := range texts {
		res, err := e.provider.Generate(ctx, text, TaskRetrievalDocument)
		if err != nil {
			e.logger.Warn(logModule, "Embedding failed, using zero vector", map[string]interface{}{
				"index": i,
				"error": err.Error(),
			})
			vectors[i] = ZeroVector(e.dimension)
			continue
		}
		vectors[i] = e.checked(res, i)
	}
	return vectors
}

// checked enforces the configured dimension on a backend response.
func (e *embedder) checked(res *EmbeddingResponse, index int) []float32 {
	if res == nil || len(res.Embedding.Values) != e.dimension {
		got := 0
		if res != nil {
			got = len(res.Embedding.Values)
		}
		e.logger.Warn(logModule, "Embedding has unexpected dimension, using zero vector", map[string]interface{}{
			"index":    index,
			"expected": e.dimension,
			"got":      got,
		})
		return ZeroVector(e.dimension)
	}
	return res.Embedding.Values
}

func ZeroVector(dimension int) []float32 {
	return make([]float32, dimension)
}
