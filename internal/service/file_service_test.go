package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"

	"lessoncraft-be/internal/dto"
	"lessoncraft-be/internal/entity"
	"lessoncraft-be/pkg/filestore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
	err      error
}

func (c *capturePublisher) Publish(ctx context.Context, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payloads = append(c.payloads, payload)
	return c.err
}

func TestIsAllowedUpload(t *testing.T) {
	tests := []struct {
		filename    string
		contentType string
		wantExt     string
		wantOK      bool
	}{
		{filename: "notes.PDF", contentType: "application/pdf", wantExt: "pdf", wantOK: true},
		{filename: "notes.txt", contentType: "text/plain; charset=utf-8", wantExt: "txt", wantOK: true},
		{filename: "photo.jpeg", contentType: "image/jpeg", wantExt: "jpeg", wantOK: true},
		{filename: "report.docx", contentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", wantExt: "docx", wantOK: true},
		{filename: "script.exe", contentType: "application/pdf"},
		{filename: "notes.pdf", contentType: "application/octet-stream"},
		{filename: "noextension", contentType: "text/plain"},
		{filename: "notes.txt", contentType: ""},
	}
	for _, tt := range tests {
		t.Run(tt.filename+" "+tt.contentType, func(t *testing.T) {
			ext, ok := IsAllowedUpload(tt.filename, tt.contentType)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestFileService_UploadQueuesIngestion(t *testing.T) {
	ctx := context.Background()
	f := newAssistantFixture()
	pub := &capturePublisher{}
	svc := NewFileService(f.factory, filestore.NewLocalStore(t.TempDir()), pub, f.log)
	plan := f.plan(t, entity.LessonPlanStatusDraft, nil)

	res, err := svc.Upload(ctx, plan.UserId, &dto.UploadFileRequest{
		LessonPlanId: &plan.Id,
		OriginalName: "notes.txt",
		ContentType:  "text/plain",
		Size:         5,
		Body:         strings.NewReader("hello"),
	})
	require.NoError(t, err)
	assert.False(t, res.Processed)
	assert.Equal(t, "text/plain", res.ContentType)

	require.Len(t, pub.payloads, 1)
	var msg dto.IngestFileMessage
	require.NoError(t, json.Unmarshal(pub.payloads[0], &msg))
	assert.Equal(t, res.Id, msg.FileId)
	assert.Equal(t, plan.Id, *msg.LessonPlanId)
	assert.True(t, strings.HasSuffix(msg.Path, res.Id.String()+".txt"))

	data, err := os.ReadFile(msg.Path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestFileService_UploadRejections(t *testing.T) {
	ctx := context.Background()
	f := newAssistantFixture()
	pub := &capturePublisher{}
	svc := NewFileService(f.factory, filestore.NewLocalStore(t.TempDir()), pub, f.log)
	plan := f.plan(t, entity.LessonPlanStatusDraft, nil)
	stranger := uuid.New()

	_, err := svc.Upload(ctx, plan.UserId, &dto.UploadFileRequest{
		OriginalName: "virus.exe", ContentType: "application/x-msdownload", Body: strings.NewReader("x"),
	})
	assert.ErrorIs(t, err, ErrFileTypeNotAllowed)

	_, err = svc.Upload(ctx, stranger, &dto.UploadFileRequest{
		LessonPlanId: &plan.Id, OriginalName: "a.txt", ContentType: "text/plain", Body: strings.NewReader("x"),
	})
	assert.ErrorIs(t, err, ErrLessonPlanNotFound)
	assert.Empty(t, pub.payloads)
}

func TestFileService_PublishFailureKeepsFile(t *testing.T) {
	ctx := context.Background()
	f := newAssistantFixture()
	pub := &capturePublisher{err: errors.New("closed")}
	svc := NewFileService(f.factory, filestore.NewLocalStore(t.TempDir()), pub, f.log)
	userId := uuid.New()

	res, err := svc.Upload(ctx, userId, &dto.UploadFileRequest{
		OriginalName: "a.txt", ContentType: "text/plain", Body: strings.NewReader("x"),
	})
	require.NoError(t, err)

	files, err := svc.List(ctx, userId, nil)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, res.Id, files[0].Id)
}

func TestFileService_DeleteRemovesChunksAndBytes(t *testing.T) {
	ctx := context.Background()
	f := newAssistantFixture()
	svc := NewFileService(f.factory, filestore.NewLocalStore(t.TempDir()), &capturePublisher{}, f.log)
	assistant := f.service(true, nil)
	plan := f.plan(t, entity.LessonPlanStatusDraft, nil)
	file := f.file(t, plan, "Quarters are four equal parts.")
	require.Equal(t, 1, assistant.Ingest(ctx, file.Id, file.Path, file.ContentType, &plan.Id))

	assert.ErrorIs(t, svc.Delete(ctx, uuid.New(), file.Id), ErrFileNotFound)
	require.NoError(t, svc.Delete(ctx, plan.UserId, file.Id))

	assert.NoFileExists(t, file.Path)
	assert.Empty(t, assistant.Retrieve(ctx, plan.Id, "quarters", 5))
	assert.ErrorIs(t, svc.Delete(ctx, plan.UserId, file.Id), ErrFileNotFound)
}
