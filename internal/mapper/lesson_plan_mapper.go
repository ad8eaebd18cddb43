package mapper

import (
	"lessoncraft-be/internal/entity"
	"lessoncraft-be/internal/model"

	"gorm.io/datatypes"
)

type LessonPlanMapper struct{}

func NewLessonPlanMapper() *LessonPlanMapper {
	return &LessonPlanMapper{}
}

func (m *LessonPlanMapper) ToEntity(lp *model.LessonPlan) *entity.LessonPlan {
	if lp == nil {
		return nil
	}

	return &entity.LessonPlan{
		Id:          lp.Id,
		UserId:      lp.UserId,
		Title:       lp.Title,
		Subject:     lp.Subject,
		AgeGroup:    lp.AgeGroup,
		Description: lp.Description,
		Status:      entity.LessonPlanStatus(lp.Status),
		Outline:     []string(lp.Outline),
		Details:     []entity.SectionDetail(lp.Details),
		CreatedAt:   lp.CreatedAt,
		UpdatedAt:   lp.UpdatedAt,
	}
}

func (m *LessonPlanMapper) ToModel(lp *entity.LessonPlan) *model.LessonPlan {
	if lp == nil {
		return nil
	}

	return &model.LessonPlan{
		Id:          lp.Id,
		UserId:      lp.UserId,
		Title:       lp.Title,
		Subject:     lp.Subject,
		AgeGroup:    lp.AgeGroup,
		Description: lp.Description,
		Status:      string(lp.Status),
		Outline:     datatypes.JSONSlice[string](lp.Outline),
		Details:     datatypes.JSONSlice[entity.SectionDetail](lp.Details),
		CreatedAt:   lp.CreatedAt,
		UpdatedAt:   lp.UpdatedAt,
	}
}

func (m *LessonPlanMapper) ToEntities(plans []*model.LessonPlan) []*entity.LessonPlan {
	entities := make([]*entity.LessonPlan, len(plans))
	for i, lp := range plans {
		entities[i] = m.ToEntity(lp)
	}
	return entities
}
