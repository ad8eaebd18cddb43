package unitofwork

import (
	"context"

	"lessoncraft-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	LessonPlanRepository() contract.LessonPlanRepository
	MessageRepository() contract.MessageRepository
	FileRepository() contract.FileRepository
	DocumentChunkRepository() contract.DocumentChunkRepository
}
