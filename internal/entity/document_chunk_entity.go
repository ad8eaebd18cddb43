package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentChunk struct {
	Id           uuid.UUID
	FileId       uuid.UUID
	LessonPlanId *uuid.UUID
	ChunkText    string
	Embedding    []float32
	Dimension    int
	ChunkIndex   int
	SourcePath   string
	ContentType  string
	CreatedAt    time.Time
}
