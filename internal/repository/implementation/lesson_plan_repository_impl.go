package implementation

import (
	"context"
	"errors"

	"lessoncraft-be/internal/entity"
	"lessoncraft-be/internal/mapper"
	"lessoncraft-be/internal/model"
	"lessoncraft-be/internal/repository/contract"
	"lessoncraft-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LessonPlanRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LessonPlanMapper
}

func NewLessonPlanRepository(db *gorm.DB) contract.LessonPlanRepository {
	return &LessonPlanRepositoryImpl{
		db:     db,
		mapper: mapper.NewLessonPlanMapper(),
	}
}

func (r *LessonPlanRepositoryImpl) Create(ctx context.Context, plan *entity.LessonPlan) error {
	m := r.mapper.ToModel(plan)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*plan = *r.mapper.ToEntity(m)
	return nil
}

func (r *LessonPlanRepositoryImpl) Update(ctx context.Context, plan *entity.LessonPlan) error {
	m := r.mapper.ToModel(plan)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*plan = *r.mapper.ToEntity(m)
	return nil
}

func (r *LessonPlanRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.LessonPlan{}, id).Error
}

func (r *LessonPlanRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.LessonPlan, error) {
	var m model.LessonPlan
	query := applySpecifications(r.db.WithContext(ctx), specification.ByID{ID: id})
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *LessonPlanRepositoryImpl) FindByUser(ctx context.Context, userId uuid.UUID, filter contract.LessonPlanFilter) ([]*entity.LessonPlan, error) {
	specs := []specification.Specification{specification.ByUserID{UserID: userId}}
	if filter.Status != nil {
		specs = append(specs, specification.ByStatus{Status: string(*filter.Status)})
	}
	if filter.Subject != "" {
		specs = append(specs, specification.SubjectContains{Subject: filter.Subject})
	}
	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: filter.Limit, Offset: filter.Skip},
	)

	var models []*model.LessonPlan
	if err := applySpecifications(r.db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
