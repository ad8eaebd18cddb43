package contract

import (
	"context"

	"lessoncraft-be/internal/entity"

	"github.com/google/uuid"
)

type DocumentChunkRepository interface {
	CreateBatch(ctx context.Context, chunks []*entity.DocumentChunk) error
	FindByLessonPlanId(ctx context.Context, lessonPlanId uuid.UUID) ([]*entity.DocumentChunk, error)
	DeleteByFileId(ctx context.Context, fileId uuid.UUID) (int64, error)
	DeleteByLessonPlanId(ctx context.Context, lessonPlanId uuid.UUID) (int64, error)
}
