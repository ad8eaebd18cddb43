package dto

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// UploadFileRequest is assembled by the controller from the multipart form.
type UploadFileRequest struct {
	LessonPlanId *uuid.UUID
	OriginalName string
	ContentType  string
	Size         int64
	Body         io.Reader
}

type FileResponse struct {
	Id           uuid.UUID  `json:"id"`
	LessonPlanId *uuid.UUID `json:"lesson_plan_id"`
	OriginalName string     `json:"original_name"`
	ContentType  string     `json:"content_type"`
	Size         int64      `json:"size"`
	Processed    bool       `json:"processed"`
	ChunkCount   int        `json:"chunk_count"`
	CreatedAt    time.Time  `json:"created_at"`
}

// IngestFileMessage is the payload published on the ingestion topic.
type IngestFileMessage struct {
	FileId       uuid.UUID  `json:"file_id"`
	Path         string     `json:"path"`
	ContentType  string     `json:"content_type"`
	LessonPlanId *uuid.UUID `json:"lesson_plan_id"`
}
