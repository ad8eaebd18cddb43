package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"lessoncraft-be/internal/dto"
	"lessoncraft-be/internal/entity"
	"lessoncraft-be/internal/pkg/logger"
	"lessoncraft-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const fileModule = "file"

// allowedUploads maps each accepted extension to its content type. An upload
// must carry an allowed extension and an allowed content type.
var allowedUploads = map[string]string{
	"pdf":  "application/pdf",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"txt":  "text/plain",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
}

// FileStore persists uploaded bytes and returns a path the extractor can read.
type FileStore interface {
	Save(name string, r io.Reader) (string, error)
	Delete(path string) error
}

type IFileService interface {
	Upload(ctx context.Context, userId uuid.UUID, req *dto.UploadFileRequest) (*dto.FileResponse, error)
	List(ctx context.Context, userId uuid.UUID, lessonPlanId *uuid.UUID) ([]dto.FileResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type fileService struct {
	uowFactory unitofwork.RepositoryFactory
	store      FileStore
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewFileService(
	uowFactory unitofwork.RepositoryFactory,
	store FileStore,
	publisher IPublisherService,
	log logger.ILogger,
) IFileService {
	return &fileService{
		uowFactory: uowFactory,
		store:      store,
		publisher:  publisher,
		logger:     log,
	}
}

// IsAllowedUpload reports whether the filename extension and the declared
// content type are both on the allow-list.
func IsAllowedUpload(filename, contentType string) (string, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if _, ok := allowedUploads[ext]; !ok {
		return "", false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", false
	}
	for _, allowed := range allowedUploads {
		if mediaType == allowed {
			return ext, true
		}
	}
	return "", false
}

func (s *fileService) Upload(ctx context.Context, userId uuid.UUID, req *dto.UploadFileRequest) (*dto.FileResponse, error) {
	ext, ok := IsAllowedUpload(req.OriginalName, req.ContentType)
	if !ok {
		return nil, ErrFileTypeNotAllowed
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if req.LessonPlanId != nil {
		plan, err := uow.LessonPlanRepository().FindById(ctx, *req.LessonPlanId)
		if err != nil {
			return nil, err
		}
		if plan == nil || plan.UserId != userId {
			return nil, ErrLessonPlanNotFound
		}
	}

	id := uuid.New()
	storedName := fmt.Sprintf("%s.%s", id.String(), ext)
	path, err := s.store.Save(storedName, req.Body)
	if err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	contentType, _, _ := mime.ParseMediaType(req.ContentType)
	now := time.Now()
	file := &entity.File{
		Id:           id,
		UserId:       userId,
		LessonPlanId: req.LessonPlanId,
		OriginalName: req.OriginalName,
		StoredName:   storedName,
		Path:         path,
		ContentType:  contentType,
		Size:         req.Size,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uow.FileRepository().Create(ctx, file); err != nil {
		s.store.Delete(path)
		return nil, err
	}

	payload, err := json.Marshal(dto.IngestFileMessage{
		FileId:       file.Id,
		Path:         file.Path,
		ContentType:  file.ContentType,
		LessonPlanId: file.LessonPlanId,
	})
	if err != nil {
		return nil, err
	}
	// The file stays unprocessed if publishing fails; it can be re-ingested later.
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.logger.Error(fileModule, "Failed to queue file for ingestion", map[string]interface{}{
			"file_id": file.Id.String(),
			"error":   err.Error(),
		})
	}

	res := toFileResponse(file)
	return &res, nil
}

func (s *fileService) List(ctx context.Context, userId uuid.UUID, lessonPlanId *uuid.UUID) ([]dto.FileResponse, error) {
	files, err := s.uowFactory.NewUnitOfWork(ctx).FileRepository().FindByUser(ctx, userId, lessonPlanId)
	if err != nil {
		return nil, err
	}
	res := make([]dto.FileResponse, 0, len(files))
	for _, f := range files {
		res = append(res, toFileResponse(f))
	}
	return res, nil
}

func (s *fileService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	file, err := uow.FileRepository().FindById(ctx, id)
	if err != nil {
		return err
	}
	if file == nil || file.UserId != userId {
		return ErrFileNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if _, err := uow.DocumentChunkRepository().DeleteByFileId(ctx, id); err != nil {
		return err
	}
	if err := uow.FileRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if err := s.store.Delete(file.Path); err != nil {
		s.logger.Warn(fileModule, "Failed to remove stored file", map[string]interface{}{
			"file_id": id.String(),
			"error":   err.Error(),
		})
	}
	return nil
}

func toFileResponse(f *entity.File) dto.FileResponse {
	return dto.FileResponse{
		Id:           f.Id,
		LessonPlanId: f.LessonPlanId,
		OriginalName: f.OriginalName,
		ContentType:  f.ContentType,
		Size:         f.Size,
		Processed:    f.Processed,
		ChunkCount:   f.ChunkCount,
		CreatedAt:    f.CreatedAt,
	}
}
