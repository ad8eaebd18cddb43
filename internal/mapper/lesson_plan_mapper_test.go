package mapper

import (
	"testing"
	"time"

	"lessoncraft-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLessonPlanMapper_PreservesDetailOrder(t *testing.T) {
	m := NewLessonPlanMapper()
	plan := &entity.LessonPlan{
		Id:      uuid.New(),
		UserId:  uuid.New(),
		Title:   "Fractions",
		Status:  entity.LessonPlanStatusDetailed,
		Outline: []string{"Warm-up", "Practice"},
		Details: []entity.SectionDetail{
			{Section: "Warm-up", Content: "a"},
			{Section: "Practice", Content: "b"},
		},
		CreatedAt: time.Now(),
	}

	back := m.ToEntity(m.ToModel(plan))

	assert.Equal(t, plan.Outline, back.Outline)
	assert.Equal(t, plan.Details, back.Details)
	assert.Equal(t, entity.LessonPlanStatusDetailed, back.Status)
}

func TestNilMapping(t *testing.T) {
	assert.Nil(t, NewLessonPlanMapper().ToEntity(nil))
	assert.Nil(t, NewDocumentChunkMapper().ToModel(nil))
	assert.Nil(t, NewMessageMapper().ToEntity(nil))
	assert.Nil(t, NewFileMapper().ToModel(nil))
	assert.Nil(t, NewUserMapper().ToEntity(nil))
}
