package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type DocumentChunk struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FileId       uuid.UUID  `gorm:"type:uuid;not null;index"`
	LessonPlanId *uuid.UUID `gorm:"type:uuid;index"`
	ChunkText    string     `gorm:"type:text;not null"`
	// Untyped vector column; Dimension records which provider produced it.
	Embedding   pgvector.Vector `gorm:"type:vector"`
	Dimension   int             `gorm:"not null;index"`
	ChunkIndex  int             `gorm:"default:0"`
	SourcePath  string          `gorm:"type:text"`
	ContentType string          `gorm:"type:varchar(100)"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
