package service

import (
	"context"

	"lessoncraft-be/internal/dto"
	"lessoncraft-be/internal/pkg/logger"
	"lessoncraft-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const chatModule = "chat"

type IChatService interface {
	SendMessage(ctx context.Context, userId uuid.UUID, req *dto.ChatMessageRequest) (*dto.ChatMessageResponse, error)
	ListMessages(ctx context.Context, userId uuid.UUID, lessonPlanId uuid.UUID) ([]dto.MessageResponse, error)
	DeleteMessages(ctx context.Context, userId uuid.UUID, lessonPlanId uuid.UUID) (*dto.DeleteMessagesResponse, error)
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	assistant  IAssistantService
	logger     logger.ILogger
}

func NewChatService(uowFactory unitofwork.RepositoryFactory, assistant IAssistantService, log logger.ILogger) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		assistant:  assistant,
		logger:     log,
	}
}

func (s *chatService) SendMessage(ctx context.Context, userId uuid.UUID, req *dto.ChatMessageRequest) (*dto.ChatMessageResponse, error) {
	if err := s.checkOwner(ctx, userId, req.LessonPlanId); err != nil {
		return nil, err
	}

	reply, err := s.assistant.HandleMessage(ctx, req.LessonPlanId, req.Message, req.Attachments)
	if err != nil {
		return nil, err
	}

	res := &dto.ChatMessageResponse{
		Message:           reply.Message,
		LessonPlanUpdated: reply.LessonPlanUpdated,
		StatusChanged:     reply.StatusChanged,
	}
	if reply.NewStatus != nil {
		status := string(*reply.NewStatus)
		res.NewStatus = &status
	}
	return res, nil
}

func (s *chatService) ListMessages(ctx context.Context, userId uuid.UUID, lessonPlanId uuid.UUID) ([]dto.MessageResponse, error) {
	if err := s.checkOwner(ctx, userId, lessonPlanId); err != nil {
		return nil, err
	}

	messages, err := s.uowFactory.NewUnitOfWork(ctx).MessageRepository().FindByLessonPlanId(ctx, lessonPlanId)
	if err != nil {
		return nil, err
	}
	res := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		res = append(res, toMessageResponse(m))
	}
	return res, nil
}

func (s *chatService) DeleteMessages(ctx context.Context, userId uuid.UUID, lessonPlanId uuid.UUID) (*dto.DeleteMessagesResponse, error) {
	if err := s.checkOwner(ctx, userId, lessonPlanId); err != nil {
		return nil, err
	}

	deleted, err := s.uowFactory.NewUnitOfWork(ctx).MessageRepository().DeleteByLessonPlanId(ctx, lessonPlanId)
	if err != nil {
		return nil, err
	}
	s.logger.Info(chatModule, "Chat history cleared", map[string]interface{}{
		"lesson_plan_id": lessonPlanId.String(),
		"deleted":        deleted,
	})
	return &dto.DeleteMessagesResponse{Deleted: deleted}, nil
}

func (s *chatService) checkOwner(ctx context.Context, userId uuid.UUID, lessonPlanId uuid.UUID) error {
	plan, err := s.uowFactory.NewUnitOfWork(ctx).LessonPlanRepository().FindById(ctx, lessonPlanId)
	if err != nil {
		return err
	}
	if plan == nil || plan.UserId != userId {
		return ErrLessonPlanNotFound
	}
	return nil
}
