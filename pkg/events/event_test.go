package events

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewFileProcessed(t *testing.T) {
	fileId := uuid.New()

	unscoped := NewFileProcessed(fileId, nil, 3)
	assert.Equal(t, FileProcessed, unscoped.EventType())
	assert.Equal(t, 3, unscoped.Payload()["chunk_count"])
	assert.NotContains(t, unscoped.Payload(), "lesson_plan_id")

	plan := uuid.New()
	scoped := NewFileProcessed(fileId, &plan, 0)
	assert.Equal(t, plan.String(), scoped.Payload()["lesson_plan_id"])
	assert.False(t, scoped.Timestamp().IsZero())
}

func TestNewLessonPlanStatusChanged(t *testing.T) {
	evt := NewLessonPlanStatusChanged(uuid.New(), uuid.New(), "draft", "outline")

	assert.Equal(t, LessonPlanStatusChanged, evt.EventType())
	assert.Equal(t, "draft", evt.Payload()["old_status"])
	assert.Equal(t, "outline", evt.Payload()["new_status"])
}
