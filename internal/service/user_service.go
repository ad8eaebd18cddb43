package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lessoncraft-be/internal/dto"
	"lessoncraft-be/internal/entity"
	"lessoncraft-be/internal/pkg/logger"
	"lessoncraft-be/internal/pkg/secret"
	"lessoncraft-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const (
	userModule        = "user"
	maskVisiblePrefix = 8
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserDTO, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserDTO, error)
	UpdateApiKeys(ctx context.Context, userId uuid.UUID, req *dto.UpdateApiKeysRequest) error
	GetApiKeys(ctx context.Context, userId uuid.UUID) (*dto.ApiKeysResponse, error)
	CheckApiKeysConfigured(ctx context.Context, userId uuid.UUID) (*dto.ApiKeysConfiguredResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	sealer     *secret.Sealer
	logger     logger.ILogger
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, sealer *secret.Sealer, log logger.ILogger) IUserService {
	return &userService{
		uowFactory: uowFactory,
		sealer:     sealer,
		logger:     log,
	}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserDTO, error) {
	user, err := s.find(ctx, s.uowFactory.NewUnitOfWork(ctx), userId)
	if err != nil {
		return nil, err
	}
	res := toUserDTO(user)
	return &res, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := s.find(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}
	user.UpdatedAt = time.Now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}
	res := toUserDTO(user)
	return &res, nil
}

// UpdateApiKeys replaces the stored key set. Values are sealed before they
// reach the repository.
func (s *userService) UpdateApiKeys(ctx context.Context, userId uuid.UUID, req *dto.UpdateApiKeysRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := s.find(ctx, uow, userId)
	if err != nil {
		return err
	}

	sealed, err := s.sealer.SealMap(req.ApiKeys)
	if err != nil {
		return fmt.Errorf("seal api keys: %w", err)
	}
	user.ApiKeys = sealed
	user.UpdatedAt = time.Now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return err
	}
	s.logger.Info(userModule, "API keys updated", map[string]interface{}{
		"user_id": userId.String(),
		"count":   len(sealed),
	})
	return nil
}

func (s *userService) GetApiKeys(ctx context.Context, userId uuid.UUID) (*dto.ApiKeysResponse, error) {
	user, err := s.find(ctx, s.uowFactory.NewUnitOfWork(ctx), userId)
	if err != nil {
		return nil, err
	}

	masked := make(map[string]string, len(user.ApiKeys))
	for name, value := range s.sealer.OpenMap(user.ApiKeys) {
		masked[name] = MaskApiKey(value)
	}
	return &dto.ApiKeysResponse{ApiKeys: masked}, nil
}

func (s *userService) CheckApiKeysConfigured(ctx context.Context, userId uuid.UUID) (*dto.ApiKeysConfiguredResponse, error) {
	user, err := s.find(ctx, s.uowFactory.NewUnitOfWork(ctx), userId)
	if err != nil {
		return nil, err
	}

	missing := []string{}
	for _, name := range entity.RequiredApiKeys {
		if user.ApiKeys[name] == "" {
			missing = append(missing, name)
		}
	}
	return &dto.ApiKeysConfiguredResponse{
		Configured: len(missing) == 0,
		Missing:    missing,
	}, nil
}

func (s *userService) find(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.User, error) {
	user, err := uow.UserRepository().FindById(ctx, userId)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// MaskApiKey keeps the first eight characters and stars out the rest.
func MaskApiKey(value string) string {
	if value == "" {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= maskVisiblePrefix {
		return value
	}
	return string(runes[:maskVisiblePrefix]) + strings.Repeat("*", len(runes)-maskVisiblePrefix)
}

func toUserDTO(user *entity.User) dto.UserDTO {
	return dto.UserDTO{
		Id:        user.Id,
		Email:     user.Email,
		FullName:  user.FullName,
		AvatarURL: user.AvatarURL,
	}
}
