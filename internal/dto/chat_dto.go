package dto

import "github.com/google/uuid"

type ChatMessageRequest struct {
	LessonPlanId uuid.UUID `json:"lesson_plan_id" validate:"required"`
	Message      string    `json:"message" validate:"required"`
	Attachments  []string  `json:"attachments"`
}

type ChatMessageResponse struct {
	Message           string  `json:"message"`
	LessonPlanUpdated bool    `json:"lesson_plan_updated"`
	StatusChanged     bool    `json:"status_changed"`
	NewStatus         *string `json:"new_status"`
}

type DeleteMessagesResponse struct {
	Deleted int64 `json:"deleted"`
}
