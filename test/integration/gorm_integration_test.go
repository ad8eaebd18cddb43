package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"lessoncraft-be/internal/entity"
	"lessoncraft-be/internal/model"
	"lessoncraft-be/internal/repository/contract"
	"lessoncraft-be/internal/repository/unitofwork"
	"lessoncraft-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run against a real postgres with pgvector and are skipped
// unless DB_CONNECTION_STRING is set.
func TestGormRepositories(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)
	require.NoError(t, gormDB.Exec(`CREATE EXTENSION IF NOT EXISTS vector;`).Error)
	require.NoError(t, gormDB.AutoMigrate(
		&model.User{}, &model.LessonPlan{}, &model.Message{}, &model.File{}, &model.DocumentChunk{},
	))

	ctx := context.Background()
	factory := unitofwork.NewRepositoryFactory(gormDB)

	user := &entity.User{
		Id:        uuid.New(),
		Email:     "integration-" + uuid.NewString() + "@example.com",
		FullName:  "Integration Teacher",
		Provider:  "google",
		ApiKeys:   map[string]string{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, factory.NewUnitOfWork(ctx).UserRepository().Create(ctx, user))

	plan := &entity.LessonPlan{
		Id:        uuid.New(),
		UserId:    user.Id,
		Title:     "Photosynthesis",
		Subject:   "Biology",
		AgeGroup:  "12-14",
		Status:    entity.LessonPlanStatusDraft,
		Outline:   []string{},
		Details:   []entity.SectionDetail{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, factory.NewUnitOfWork(ctx).LessonPlanRepository().Create(ctx, plan))

	t.Run("lesson plan round trip keeps outline and detail order", func(t *testing.T) {
		uow := factory.NewUnitOfWork(ctx)
		plan.Outline = []string{"Introduction", "Light reactions", "Calvin cycle"}
		plan.Details = []entity.SectionDetail{
			{Section: "Introduction", Content: "intro"},
			{Section: "Light reactions", Content: "light"},
		}
		plan.Status = entity.LessonPlanStatusOutline
		require.NoError(t, uow.LessonPlanRepository().Update(ctx, plan))

		got, err := uow.LessonPlanRepository().FindById(ctx, plan.Id)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, plan.Outline, got.Outline)
		assert.Equal(t, plan.Details, got.Details)
		assert.Equal(t, entity.LessonPlanStatusOutline, got.Status)

		status := entity.LessonPlanStatusOutline
		listed, err := uow.LessonPlanRepository().FindByUser(ctx, user.Id, contract.LessonPlanFilter{
			Status: &status, Subject: "bio", Limit: 10,
		})
		require.NoError(t, err)
		assert.Len(t, listed, 1)
	})

	t.Run("chunks are stored with their dimension", func(t *testing.T) {
		file := &entity.File{
			Id:           uuid.New(),
			UserId:       user.Id,
			LessonPlanId: &plan.Id,
			OriginalName: "notes.txt",
			StoredName:   "notes.txt",
			Path:         "/tmp/notes.txt",
			ContentType:  "text/plain",
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		uow := factory.NewUnitOfWork(ctx)
		require.NoError(t, uow.FileRepository().Create(ctx, file))

		require.NoError(t, uow.Begin(ctx))
		chunks := []*entity.DocumentChunk{
			{Id: uuid.New(), FileId: file.Id, LessonPlanId: &plan.Id, ChunkText: "a", Embedding: []float32{1, 0, 0}, Dimension: 3, ChunkIndex: 0, CreatedAt: time.Now()},
			{Id: uuid.New(), FileId: file.Id, LessonPlanId: &plan.Id, ChunkText: "b", Embedding: []float32{0, 1, 0}, Dimension: 3, ChunkIndex: 1, CreatedAt: time.Now()},
		}
		require.NoError(t, uow.DocumentChunkRepository().CreateBatch(ctx, chunks))
		require.NoError(t, uow.FileRepository().MarkProcessed(ctx, file.Id, len(chunks)))
		require.NoError(t, uow.Commit())

		got, err := factory.NewUnitOfWork(ctx).DocumentChunkRepository().FindByLessonPlanId(ctx, plan.Id)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].ChunkText)
		assert.Equal(t, []float32{1, 0, 0}, got[0].Embedding)
		assert.Equal(t, 3, got[0].Dimension)

		stored, err := factory.NewUnitOfWork(ctx).FileRepository().FindById(ctx, file.Id)
		require.NoError(t, err)
		assert.True(t, stored.Processed)
		assert.Equal(t, 2, stored.ChunkCount)
	})

	t.Run("rollback discards messages", func(t *testing.T) {
		uow := factory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.MessageRepository().Create(ctx, &entity.Message{
			Id:           uuid.New(),
			LessonPlanId: plan.Id,
			Content:      "hello",
			Sender:       entity.MessageSenderUser,
			Timestamp:    time.Now(),
		}))
		require.NoError(t, uow.Rollback())

		messages, err := factory.NewUnitOfWork(ctx).MessageRepository().FindByLessonPlanId(ctx, plan.Id)
		require.NoError(t, err)
		assert.Empty(t, messages)
	})

	t.Cleanup(func() {
		uow := factory.NewUnitOfWork(ctx)
		uow.DocumentChunkRepository().DeleteByLessonPlanId(ctx, plan.Id)
		uow.MessageRepository().DeleteByLessonPlanId(ctx, plan.Id)
		gormDB.Where("lesson_plan_id = ?", plan.Id).Delete(&model.File{})
		uow.LessonPlanRepository().Delete(ctx, plan.Id)
		gormDB.Where("id = ?", user.Id).Delete(&model.User{})
	})
}
