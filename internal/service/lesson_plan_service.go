package service

import (
	"context"
	"time"

	"lessoncraft-be/internal/dto"
	"lessoncraft-be/internal/entity"
	"lessoncraft-be/internal/pkg/logger"
	"lessoncraft-be/internal/repository/contract"
	"lessoncraft-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const (
	lessonPlanModule      = "lesson_plan"
	defaultLessonPlanPage = 50
	maxLessonPlanPage     = 100
)

// FileRemover deletes stored bytes. Deleting a missing file is not an error.
type FileRemover interface {
	Delete(path string) error
}

type ILessonPlanService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateLessonPlanRequest) (*dto.LessonPlanResponse, error)
	List(ctx context.Context, userId uuid.UUID, req *dto.ListLessonPlansRequest) ([]dto.LessonPlanResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.LessonPlanResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateLessonPlanRequest) (*dto.LessonPlanResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Messages(ctx context.Context, userId uuid.UUID, id uuid.UUID) ([]dto.MessageResponse, error)
}

type lessonPlanService struct {
	uowFactory unitofwork.RepositoryFactory
	files      FileRemover
	logger     logger.ILogger
}

func NewLessonPlanService(uowFactory unitofwork.RepositoryFactory, files FileRemover, log logger.ILogger) ILessonPlanService {
	return &lessonPlanService{
		uowFactory: uowFactory,
		files:      files,
		logger:     log,
	}
}

func (s *lessonPlanService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateLessonPlanRequest) (*dto.LessonPlanResponse, error) {
	now := time.Now()
	plan := &entity.LessonPlan{
		Id:          uuid.New(),
		UserId:      userId,
		Title:       req.Title,
		Subject:     req.Subject,
		AgeGroup:    req.AgeGroup,
		Description: req.Description,
		Status:      entity.LessonPlanStatusDraft,
		Outline:     []string{},
		Details:     []entity.SectionDetail{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.uowFactory.NewUnitOfWork(ctx).LessonPlanRepository().Create(ctx, plan); err != nil {
		return nil, err
	}
	return toLessonPlanResponse(plan), nil
}

func (s *lessonPlanService) List(ctx context.Context, userId uuid.UUID, req *dto.ListLessonPlansRequest) ([]dto.LessonPlanResponse, error) {
	filter := contract.LessonPlanFilter{
		Subject: req.Subject,
		Limit:   req.Limit,
		Skip:    req.Skip,
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultLessonPlanPage
	}
	if filter.Limit > maxLessonPlanPage {
		filter.Limit = maxLessonPlanPage
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	if req.Status != "" {
		status := entity.LessonPlanStatus(req.Status)
		filter.Status = &status
	}

	plans, err := s.uowFactory.NewUnitOfWork(ctx).LessonPlanRepository().FindByUser(ctx, userId, filter)
	if err != nil {
		return nil, err
	}

	res := make([]dto.LessonPlanResponse, 0, len(plans))
	for _, plan := range plans {
		res = append(res, *toLessonPlanResponse(plan))
	}
	return res, nil
}

func (s *lessonPlanService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.LessonPlanResponse, error) {
	plan, err := s.owned(ctx, s.uowFactory.NewUnitOfWork(ctx), userId, id)
	if err != nil {
		return nil, err
	}
	return toLessonPlanResponse(plan), nil
}

func (s *lessonPlanService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateLessonPlanRequest) (*dto.LessonPlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	plan, err := s.owned(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		plan.Title = *req.Title
	}
	if req.Subject != nil {
		plan.Subject = *req.Subject
	}
	if req.AgeGroup != nil {
		plan.AgeGroup = *req.AgeGroup
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.Status != nil {
		plan.Status = entity.LessonPlanStatus(*req.Status)
	}
	if req.Outline != nil {
		plan.Outline = *req.Outline
	}
	if req.Details != nil {
		// Sections key the details, so each may appear once.
		seen := make(map[string]struct{}, len(*req.Details))
		details := make([]entity.SectionDetail, len(*req.Details))
		for i, d := range *req.Details {
			if _, dup := seen[d.Section]; dup {
				return nil, ErrDuplicateSection
			}
			seen[d.Section] = struct{}{}
			details[i] = entity.SectionDetail{Section: d.Section, Content: d.Content}
		}
		plan.Details = details
	}
	plan.UpdatedAt = time.Now()

	if err := uow.LessonPlanRepository().Update(ctx, plan); err != nil {
		return nil, err
	}
	return toLessonPlanResponse(plan), nil
}

// Delete removes the plan together with its messages, files and chunks.
// Stored bytes are removed after the transaction commits.
func (s *lessonPlanService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.owned(ctx, uow, userId, id); err != nil {
		return err
	}

	files, err := uow.FileRepository().FindByLessonPlanId(ctx, id)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if _, err := uow.MessageRepository().DeleteByLessonPlanId(ctx, id); err != nil {
		return err
	}
	if _, err := uow.DocumentChunkRepository().DeleteByLessonPlanId(ctx, id); err != nil {
		return err
	}
	for _, f := range files {
		if _, err := uow.DocumentChunkRepository().DeleteByFileId(ctx, f.Id); err != nil {
			return err
		}
		if err := uow.FileRepository().Delete(ctx, f.Id); err != nil {
			return err
		}
	}
	if err := uow.LessonPlanRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	for _, f := range files {
		if err := s.files.Delete(f.Path); err != nil {
			s.logger.Warn(lessonPlanModule, "Failed to remove stored file", map[string]interface{}{
				"file_id": f.Id.String(),
				"error":   err.Error(),
			})
		}
	}
	s.logger.Info(lessonPlanModule, "Lesson plan deleted", map[string]interface{}{
		"lesson_plan_id": id.String(),
		"files":          len(files),
	})
	return nil
}

func (s *lessonPlanService) Messages(ctx context.Context, userId uuid.UUID, id uuid.UUID) ([]dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.owned(ctx, uow, userId, id); err != nil {
		return nil, err
	}

	messages, err := uow.MessageRepository().FindByLessonPlanId(ctx, id)
	if err != nil {
		return nil, err
	}

	res := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		res = append(res, toMessageResponse(m))
	}
	return res, nil
}

// owned loads a plan and hides plans of other users behind not found.
func (s *lessonPlanService) owned(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, id uuid.UUID) (*entity.LessonPlan, error) {
	plan, err := uow.LessonPlanRepository().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil || plan.UserId != userId {
		return nil, ErrLessonPlanNotFound
	}
	return plan, nil
}

func toLessonPlanResponse(plan *entity.LessonPlan) *dto.LessonPlanResponse {
	outline := plan.Outline
	if outline == nil {
		outline = []string{}
	}
	details := make([]dto.SectionDetailDTO, len(plan.Details))
	for i, d := range plan.Details {
		details[i] = dto.SectionDetailDTO{Section: d.Section, Content: d.Content}
	}
	return &dto.LessonPlanResponse{
		Id:          plan.Id,
		UserId:      plan.UserId,
		Title:       plan.Title,
		Subject:     plan.Subject,
		AgeGroup:    plan.AgeGroup,
		Description: plan.Description,
		Status:      string(plan.Status),
		Outline:     outline,
		Details:     details,
		CreatedAt:   plan.CreatedAt,
		UpdatedAt:   plan.UpdatedAt,
	}
}

func toMessageResponse(m *entity.Message) dto.MessageResponse {
	attachments := m.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	return dto.MessageResponse{
		Id:           m.Id,
		LessonPlanId: m.LessonPlanId,
		Content:      m.Content,
		Sender:       string(m.Sender),
		Attachments:  attachments,
		Timestamp:    m.Timestamp,
	}
}
