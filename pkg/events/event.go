package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	LessonPlanStatusChanged = "LESSON_PLAN_STATUS_CHANGED"
	FileProcessed           = "FILE_PROCESSED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "FILE_PROCESSED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

func NewLessonPlanStatusChanged(lessonPlanId, userId uuid.UUID, oldStatus, newStatus string) BaseEvent {
	return BaseEvent{
		Type: LessonPlanStatusChanged,
		Data: map[string]interface{}{
			"lesson_plan_id": lessonPlanId.String(),
			"user_id":        userId.String(),
			"old_status":     oldStatus,
			"new_status":     newStatus,
		},
		OccurredAt: time.Now(),
	}
}

func NewFileProcessed(fileId uuid.UUID, lessonPlanId *uuid.UUID, chunkCount int) BaseEvent {
	data := map[string]interface{}{
		"file_id":     fileId.String(),
		"chunk_count": chunkCount,
	}
	if lessonPlanId != nil {
		data["lesson_plan_id"] = lessonPlanId.String()
	}
	return BaseEvent{
		Type:       FileProcessed,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
