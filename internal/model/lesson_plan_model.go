package model

import (
	"time"

	"lessoncraft-be/internal/entity"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type LessonPlan struct {
	Id          uuid.UUID                                 `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID                                 `gorm:"type:uuid;not null;index"`
	Title       string                                    `gorm:"type:varchar(255);not null"`
	Subject     string                                    `gorm:"type:varchar(255);not null;index"`
	AgeGroup    string                                    `gorm:"type:varchar(100);not null"`
	Description string                                    `gorm:"type:text"`
	Status      string                                    `gorm:"type:varchar(20);not null;default:'draft';index"`
	Outline     datatypes.JSONSlice[string]               `gorm:"type:jsonb"`
	Details     datatypes.JSONSlice[entity.SectionDetail] `gorm:"type:jsonb"`
	CreatedAt   time.Time                                 `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time                                 `gorm:"autoUpdateTime"`
}

func (LessonPlan) TableName() string {
	return "lesson_plans"
}
