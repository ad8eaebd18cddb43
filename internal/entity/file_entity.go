package entity

import (
	"time"

	"github.com/google/uuid"
)

type File struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	LessonPlanId *uuid.UUID
	OriginalName string
	StoredName   string
	Path         string
	ContentType  string
	Size         int64
	Processed    bool
	ChunkCount   int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
