package dto

import (
	"time"

	"github.com/google/uuid"
)

type SectionDetailDTO struct {
	Section string `json:"section" validate:"required"`
	Content string `json:"content"`
}

type CreateLessonPlanRequest struct {
	Title       string `json:"title" validate:"required"`
	Subject     string `json:"subject" validate:"required"`
	AgeGroup    string `json:"age_group" validate:"required"`
	Description string `json:"description"`
}

// UpdateLessonPlanRequest is a partial update: nil fields are left untouched.
type UpdateLessonPlanRequest struct {
	Id          uuid.UUID           `json:"-"`
	Title       *string             `json:"title"`
	Subject     *string             `json:"subject"`
	AgeGroup    *string             `json:"age_group"`
	Description *string             `json:"description"`
	Status      *string             `json:"status" validate:"omitempty,oneof=draft outline detailed completed"`
	Outline     *[]string           `json:"outline"`
	Details     *[]SectionDetailDTO `json:"details" validate:"omitempty,unique=Section,dive"`
}

type ListLessonPlansRequest struct {
	Status  string `query:"status" validate:"omitempty,oneof=draft outline detailed completed"`
	Subject string `query:"subject"`
	Limit   int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Skip    int    `query:"skip" validate:"omitempty,min=0"`
}

type LessonPlanResponse struct {
	Id          uuid.UUID          `json:"id"`
	UserId      uuid.UUID          `json:"user_id"`
	Title       string             `json:"title"`
	Subject     string             `json:"subject"`
	AgeGroup    string             `json:"age_group"`
	Description string             `json:"description"`
	Status      string             `json:"status"`
	Outline     []string           `json:"outline"`
	Details     []SectionDetailDTO `json:"details"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type MessageResponse struct {
	Id           uuid.UUID `json:"id"`
	LessonPlanId uuid.UUID `json:"lesson_plan_id"`
	Content      string    `json:"content"`
	Sender       string    `json:"sender"`
	Attachments  []string  `json:"attachments"`
	Timestamp    time.Time `json:"timestamp"`
}
