package memory

import (
	"context"
	"time"

	"lessoncraft-be/internal/entity"
	"lessoncraft-be/internal/repository/contract"

	"github.com/google/uuid"
)

type DocumentChunkRepository struct {
	store *Store
}

func NewDocumentChunkRepository(store *Store) contract.DocumentChunkRepository {
	return &DocumentChunkRepository{store: store}
}

func (r *DocumentChunkRepository) CreateBatch(ctx context.Context, chunks []*entity.DocumentChunk) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	for _, c := range chunks {
		if c.Id == uuid.Nil {
			c.Id = uuid.New()
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		cp := *c
		cp.Embedding = append([]float32(nil), c.Embedding...)
		r.store.chunks = append(r.store.chunks, cp)
	}
	return nil
}

// FindByLessonPlanId returns chunks in insertion order.
func (r *DocumentChunkRepository) FindByLessonPlanId(ctx context.Context, lessonPlanId uuid.UUID) ([]*entity.DocumentChunk, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*entity.DocumentChunk
	for _, c := range r.store.chunks {
		if c.LessonPlanId == nil || *c.LessonPlanId != lessonPlanId {
			continue
		}
		cp := c
		cp.Embedding = append([]float32(nil), c.Embedding...)
		out = append(out, &cp)
	}
	return out, nil
}

func (r *DocumentChunkRepository) deleteWhere(match func(c entity.DocumentChunk) bool) int64 {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	kept := r.store.chunks[:0]
	var deleted int64
	for _, c := range r.store.chunks {
		if match(c) {
			deleted++
			continue
		}
		kept = append(kept, c)
	}
	r.store.chunks = kept
	return deleted
}

func (r *DocumentChunkRepository) DeleteByFileId(ctx context.Context, fileId uuid.UUID) (int64, error) {
	return r.deleteWhere(func(c entity.DocumentChunk) bool { return c.FileId == fileId }), nil
}

func (r *DocumentChunkRepository) DeleteByLessonPlanId(ctx context.Context, lessonPlanId uuid.UUID) (int64, error) {
	return r.deleteWhere(func(c entity.DocumentChunk) bool {
		return c.LessonPlanId != nil && *c.LessonPlanId == lessonPlanId
	}), nil
}
