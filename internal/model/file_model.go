package model

import (
	"time"

	"github.com/google/uuid"
)

type File struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID  `gorm:"type:uuid;not null;index"`
	LessonPlanId *uuid.UUID `gorm:"type:uuid;index"`
	OriginalName string     `gorm:"type:varchar(255);not null"`
	StoredName   string     `gorm:"type:varchar(255);not null"`
	Path         string     `gorm:"type:text;not null"`
	ContentType  string     `gorm:"type:varchar(100);not null"`
	Size         int64
	Processed    bool      `gorm:"default:false"`
	ChunkCount   int       `gorm:"default:0"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (File) TableName() string {
	return "files"
}
