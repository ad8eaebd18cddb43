package contract

import (
	"context"

	"lessoncraft-be/internal/entity"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	// FindByLessonPlanId returns messages ordered by timestamp ascending.
	FindByLessonPlanId(ctx context.Context, lessonPlanId uuid.UUID) ([]*entity.Message, error)
	DeleteByLessonPlanId(ctx context.Context, lessonPlanId uuid.UUID) (int64, error)
}
