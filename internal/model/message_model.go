package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Message struct {
	Id           uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LessonPlanId uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Content      string                      `gorm:"type:text;not null"`
	Sender       string                      `gorm:"type:varchar(10);not null"`
	Attachments  datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Timestamp    time.Time                   `gorm:"not null;index"`
}

func (Message) TableName() string {
	return "messages"
}
