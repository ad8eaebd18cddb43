package contract

import (
	"context"

	"lessoncraft-be/internal/entity"

	"github.com/google/uuid"
)

type FileRepository interface {
	Create(ctx context.Context, file *entity.File) error
	Update(ctx context.Context, file *entity.File) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.File, error)
	// FindByUser lists newest first; a nil lessonPlanId lists every file of the user.
	FindByUser(ctx context.Context, userId uuid.UUID, lessonPlanId *uuid.UUID) ([]*entity.File, error)
	FindByLessonPlanId(ctx context.Context, lessonPlanId uuid.UUID) ([]*entity.File, error)
	MarkProcessed(ctx context.Context, id uuid.UUID, chunkCount int) error
}
