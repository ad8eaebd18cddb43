package contract

import (
	"context"

	"lessoncraft-be/internal/entity"

	"github.com/google/uuid"
)

// LessonPlanFilter narrows a user's lesson plan listing. Subject is matched
// case-insensitively as a substring.
type LessonPlanFilter struct {
	Status  *entity.LessonPlanStatus
	Subject string
	Limit   int
	Skip    int
}

type LessonPlanRepository interface {
	Create(ctx context.Context, plan *entity.LessonPlan) error
	Update(ctx context.Context, plan *entity.LessonPlan) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.LessonPlan, error)
	FindByUser(ctx context.Context, userId uuid.UUID, filter LessonPlanFilter) ([]*entity.LessonPlan, error)
}
