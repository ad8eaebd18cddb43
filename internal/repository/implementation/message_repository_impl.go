package implementation

import (
	"context"

	"lessoncraft-be/internal/entity"
	"lessoncraft-be/internal/mapper"
	"lessoncraft-be/internal/model"
	"lessoncraft-be/internal/repository/contract"
	"lessoncraft-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MessageMapper
}

func NewMessageRepository(db *gorm.DB) contract.MessageRepository {
	return &MessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewMessageMapper(),
	}
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, message *entity.Message) error {
	m := r.mapper.ToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.ToEntity(m)
	return nil
}

func (r *MessageRepositoryImpl) FindByLessonPlanId(ctx context.Context, lessonPlanId uuid.UUID) ([]*entity.Message, error) {
	var models []*model.Message
	query := applySpecifications(r.db.WithContext(ctx),
		specification.ByLessonPlanID{LessonPlanID: lessonPlanId},
		specification.OrderBy{Field: "timestamp"},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MessageRepositoryImpl) DeleteByLessonPlanId(ctx context.Context, lessonPlanId uuid.UUID) (int64, error) {
	res := applySpecifications(r.db.WithContext(ctx), specification.ByLessonPlanID{LessonPlanID: lessonPlanId}).Delete(&model.Message{})
	return res.RowsAffected, res.Error
}
