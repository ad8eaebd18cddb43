package service

import (
	"context"
	"fmt"
	"time"

	"lessoncraft-be/internal/entity"
	"lessoncraft-be/internal/pkg/logger"
	"lessoncraft-be/internal/repository/unitofwork"
	"lessoncraft-be/pkg/embedding"
	"lessoncraft-be/pkg/events"
	"lessoncraft-be/pkg/llm"
	"lessoncraft-be/pkg/rag/retriever"
	"lessoncraft-be/pkg/rag/workflow"
	"lessoncraft-be/pkg/utils"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const assistantModule = "assistant"

// TextExtractor turns a stored file into plain text. Unsupported or
// unreadable files yield "".
type TextExtractor interface {
	Extract(ctx context.Context, filePath string, contentType string) string
}

// EventPublisher is satisfied by the NATS publisher. Publishing is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Reply is what a chat turn produces for the caller.
type Reply struct {
	Message           string
	LessonPlanUpdated bool
	StatusChanged     bool
	NewStatus         *entity.LessonPlanStatus
}

type IAssistantService interface {
	Ingest(ctx context.Context, fileId uuid.UUID, filePath string, contentType string, scopeId *uuid.UUID) int
	HandleMessage(ctx context.Context, scopeId uuid.UUID, utterance string, attachments []string) (*Reply, error)
	Retrieve(ctx context.Context, scopeId uuid.UUID, query string, topK int) []string
}

type AssistantConfig struct {
	ChunkSize         int
	ChunkOverlap      int
	TopK              int
	DetailConcurrency int
}

type assistantService struct {
	uowFactory unitofwork.RepositoryFactory
	extractor  TextExtractor
	embedder   embedding.Embedder
	retriever  *retriever.Retriever
	models     IModelResolver
	publisher  EventPublisher
	logger     logger.ILogger
	cfg        AssistantConfig
	now        func() time.Time
}

// NewAssistantService wires the ingestion and generation pipeline. embedder,
// models and publisher may be nil; the pipeline then degrades to its
// documented fallbacks.
func NewAssistantService(
	uowFactory unitofwork.RepositoryFactory,
	extractor TextExtractor,
	embedder embedding.Embedder,
	models IModelResolver,
	publisher EventPublisher,
	log logger.ILogger,
	cfg AssistantConfig,
) IAssistantService {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = utils.DefaultChunkSize
	}
	if cfg.ChunkOverlap < 0 {
		cfg.ChunkOverlap = utils.DefaultChunkOverlap
	}
	if cfg.TopK <= 0 {
		cfg.TopK = retriever.DefaultTopK
	}
	return &assistantService{
		uowFactory: uowFactory,
		extractor:  extractor,
		embedder:   embedder,
		retriever:  retriever.New(embedder, chunkSource{uowFactory: uowFactory}, log),
		models:     models,
		publisher:  publisher,
		logger:     log,
		cfg:        cfg,
		now:        time.Now,
	}
}

// chunkSource opens a fresh unit of work per lookup so retrieval never shares
// a transaction with the caller.
type chunkSource struct {
	uowFactory unitofwork.RepositoryFactory
}

func (c chunkSource) FindByLessonPlanId(ctx context.Context, lessonPlanId uuid.UUID) ([]*entity.DocumentChunk, error) {
	return c.uowFactory.NewUnitOfWork(ctx).DocumentChunkRepository().FindByLessonPlanId(ctx, lessonPlanId)
}

func (s *assistantService) Ingest(ctx context.Context, fileId uuid.UUID, filePath string, contentType string, scopeId *uuid.UUID) int {
	ctx, span := otel.Tracer(assistantModule).Start(ctx, "assistant.ingest")
	defer span.End()
	span.SetAttributes(
		attribute.String("file.id", fileId.String()),
		attribute.String("file.content_type", contentType),
	)

	details := map[string]interface{}{"file_id": fileId.String(), "path": filePath}

	if s.embedder == nil {
		s.logger.Warn(assistantModule, "Skipping ingestion, no embedding provider configured", details)
		return 0
	}

	text := s.extractor.Extract(ctx, filePath, contentType)
	pieces := utils.ChunkText(text, s.cfg.ChunkSize, s.cfg.ChunkOverlap)
	if len(pieces) == 0 {
		s.logger.Info(assistantModule, "Extracted text is empty, nothing to ingest", details)
		if err := s.markProcessed(ctx, fileId, 0); err != nil {
			s.logger.Error(assistantModule, "Failed to mark empty file processed", withError(details, err))
		}
		return 0
	}

	vectors := s.embedder.EmbedBatch(ctx, pieces)
	if len(vectors) != len(pieces) {
		s.logger.Error(assistantModule, "Embedding batch returned wrong count", withError(details,
			fmt.Errorf("got %d vectors for %d chunks", len(vectors), len(pieces))))
		span.SetStatus(codes.Error, "embedding count mismatch")
		return 0
	}

	createdAt := s.now()
	chunks := make([]*entity.DocumentChunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = &entity.DocumentChunk{
			Id:           uuid.New(),
			FileId:       fileId,
			LessonPlanId: scopeId,
			ChunkText:    piece,
			Embedding:    vectors[i],
			Dimension:    s.embedder.Dimension(),
			ChunkIndex:   i,
			SourcePath:   filePath,
			ContentType:  contentType,
			CreatedAt:    createdAt,
		}
	}

	if err := s.storeChunks(ctx, fileId, chunks); err != nil {
		s.logger.Error(assistantModule, "Failed to persist chunks", withError(details, err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist chunks")
		return 0
	}

	span.SetAttributes(attribute.Int("chunks.count", len(chunks)))
	s.logger.Info(assistantModule, "File ingested", map[string]interface{}{
		"file_id": fileId.String(),
		"chunks":  len(chunks),
	})
	s.publish(ctx, events.NewFileProcessed(fileId, scopeId, len(chunks)))

	return len(chunks)
}

func (s *assistantService) storeChunks(ctx context.Context, fileId uuid.UUID, chunks []*entity.DocumentChunk) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.DocumentChunkRepository().CreateBatch(ctx, chunks); err != nil {
		return err
	}
	if err := uow.FileRepository().MarkProcessed(ctx, fileId, len(chunks)); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *assistantService) markProcessed(ctx context.Context, fileId uuid.UUID, chunkCount int) error {
	return s.uowFactory.NewUnitOfWork(ctx).FileRepository().MarkProcessed(ctx, fileId, chunkCount)
}

func (s *assistantService) Retrieve(ctx context.Context, scopeId uuid.UUID, query string, topK int) []string {
	if topK <= 0 {
		topK = s.cfg.TopK
	}
	return s.retriever.Retrieve(ctx, scopeId, query, topK)
}

func (s *assistantService) HandleMessage(ctx context.Context, scopeId uuid.UUID, utterance string, attachments []string) (*Reply, error) {
	ctx, span := otel.Tracer(assistantModule).Start(ctx, "assistant.handle_message")
	defer span.End()
	span.SetAttributes(attribute.String("lesson_plan.id", scopeId.String()))

	plan, err := s.uowFactory.NewUnitOfWork(ctx).LessonPlanRepository().FindById(ctx, scopeId)
	if err != nil {
		return nil, fmt.Errorf("load lesson plan: %w", err)
	}
	if plan == nil {
		return nil, ErrLessonPlanNotFound
	}

	contextChunks := s.Retrieve(ctx, scopeId, utterance, s.cfg.TopK)

	var model llm.LLMProvider
	if s.models != nil {
		model = s.models.Resolve(ctx, plan.UserId)
	}

	result := workflow.New(model, s.logger, workflow.WithDetailConcurrency(s.cfg.DetailConcurrency)).
		Run(ctx, *plan, contextChunks, utterance)
	span.SetAttributes(
		attribute.String("workflow.route", string(result.Route)),
		attribute.Bool("workflow.mutated", result.Mutated),
		attribute.Int("context.count", len(contextChunks)),
	)

	oldStatus := plan.Status
	if err := s.persistTurn(ctx, plan, result, utterance, attachments); err != nil {
		s.logger.Error(assistantModule, "Failed to persist chat turn", map[string]interface{}{
			"lesson_plan_id": scopeId.String(),
			"route":          string(result.Route),
			"error":          err.Error(),
		})
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist turn")
		return &Reply{Message: workflow.ChatErrorResponse}, nil
	}

	reply := &Reply{
		Message:           result.Response,
		LessonPlanUpdated: result.Mutated,
	}
	if result.Mutated && result.NewStatus != nil {
		reply.NewStatus = result.NewStatus
		reply.StatusChanged = *result.NewStatus != oldStatus
		if reply.StatusChanged {
			s.publish(ctx, events.NewLessonPlanStatusChanged(plan.Id, plan.UserId, string(oldStatus), string(*result.NewStatus)))
		}
	}
	return reply, nil
}

// persistTurn writes the plan mutation and both messages in one transaction.
// The AI message is stamped strictly after the user message so ordering by
// timestamp is stable.
func (s *assistantService) persistTurn(ctx context.Context, plan *entity.LessonPlan, result *workflow.Result, utterance string, attachments []string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	userAt := s.now()
	aiAt := s.now()
	if !aiAt.After(userAt) {
		aiAt = userAt.Add(time.Microsecond)
	}

	if result.Mutated {
		updated := *plan
		if result.NewStatus != nil {
			updated.Status = *result.NewStatus
		}
		switch result.Route {
		case workflow.RouteGenerateOutline:
			updated.Outline = result.Outline
		case workflow.RouteGenerateDetails:
			updated.Details = result.Details
		}
		updated.UpdatedAt = aiAt
		if err := uow.LessonPlanRepository().Update(ctx, &updated); err != nil {
			return fmt.Errorf("update lesson plan: %w", err)
		}
	}

	if err := uow.MessageRepository().Create(ctx, &entity.Message{
		Id:           uuid.New(),
		LessonPlanId: plan.Id,
		Content:      utterance,
		Sender:       entity.MessageSenderUser,
		Attachments:  attachments,
		Timestamp:    userAt,
	}); err != nil {
		return fmt.Errorf("create user message: %w", err)
	}

	if err := uow.MessageRepository().Create(ctx, &entity.Message{
		Id:           uuid.New(),
		LessonPlanId: plan.Id,
		Content:      result.Response,
		Sender:       entity.MessageSenderAI,
		Timestamp:    aiAt,
	}); err != nil {
		return fmt.Errorf("create ai message: %w", err)
	}

	return uow.Commit()
}

func (s *assistantService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn(assistantModule, "Failed to publish event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}

func withError(details map[string]interface{}, err error) map[string]interface{} {
	out := make(map[string]interface{}, len(details)+1)
	for k, v := range details {
		out[k] = v
	}
	out["error"] = err.Error()
	return out
}
