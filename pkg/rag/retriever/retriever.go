package retriever

import (
	"context"
	"math"
	"sort"

	"lessoncraft-be/internal/entity"
	"lessoncraft-be/internal/pkg/logger"
	"lessoncraft-be/pkg/embedding"

	"github.com/google/uuid"
)

const (
	logModule   = "retriever"
	DefaultTopK = 5
)

// ChunkSource returns the chunks stored for one lesson plan.
type ChunkSource interface {
	FindByLessonPlanId(ctx context.Context, lessonPlanId uuid.UUID) ([]*entity.DocumentChunk, error)
}

type Scored struct {
	Chunk *entity.DocumentChunk
	Score float64
}

// Retriever ranks the chunks of a single scope against a query by cosine
// similarity. It never searches across scopes.
type Retriever struct {
	embedder embedding.Embedder
	chunks   ChunkSource
	logger   logger.ILogger
}

// New accepts a nil embedder; Retrieve then always returns no context.
func New(embedder embedding.Embedder, chunks ChunkSource, log logger.ILogger) *Retriever {
	return &Retriever{
		embedder: embedder,
		chunks:   chunks,
		logger:   log,
	}
}

// Retrieve returns up to topK chunk texts, most relevant first. Missing
// configuration, an empty scope and store errors all yield an empty result.
func (r *Retriever) Retrieve(ctx context.Context, scopeID uuid.UUID, query string, topK int) []string {
	if r.embedder == nil || scopeID == uuid.Nil {
		return []string{}
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	chunks, err := r.chunks.FindByLessonPlanId(ctx, scopeID)
	if err != nil {
		r.logger.Error(logModule, "Failed to load chunks", map[string]interface{}{
			"lesson_plan_id": scopeID.String(),
			"error":          err.Error(),
		})
		return []string{}
	}
	if len(chunks) == 0 {
		return []string{}
	}

	queryVector := r.embedder.Embed(ctx, query)
	ranked := r.Rank(queryVector, chunks)

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	out := make([]string, len(ranked))
	for i, s := range ranked {
		out[i] = s.Chunk.ChunkText
	}
	return out
}

// Rank scores chunks against query and sorts them by descending similarity.
// Ties keep the input order. Chunks produced with a different dimension than
// the query are skipped.
func (r *Retriever) Rank(query []float32, chunks []*entity.DocumentChunk) []Scored {
	scored := make([]Scored, 0, len(chunks))
	skipped := 0
	for _, c := range chunks {
		if len(c.Embedding) != len(query) || (c.Dimension != 0 && c.Dimension != len(query)) {
			skipped++
			continue
		}
		scored = append(scored, Scored{Chunk: c, Score: CosineSimilarity(query, c.Embedding)})
	}
	if skipped > 0 {
		r.logger.Warn(logModule, "Skipped chunks with mismatched dimension", map[string]interface{}{
			"skipped":   skipped,
			"dimension": len(query),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// CosineSimilarity is 0 when either vector has zero norm or the lengths differ.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if math.IsNaN(sim) {
		return 0
	}
	return sim
}
