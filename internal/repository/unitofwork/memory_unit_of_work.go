package unitofwork

import (
	"context"
	"fmt"

	"lessoncraft-be/internal/repository/contract"
	"lessoncraft-be/internal/repository/memory"
)

// MemoryUnitOfWork serves repositories over a shared memory.Store. Writes are
// applied immediately; Rollback does not undo them.
type MemoryUnitOfWork struct {
	store  *memory.Store
	active bool
}

func NewMemoryUnitOfWork(store *memory.Store) UnitOfWork {
	return &MemoryUnitOfWork{store: store}
}

func (u *MemoryUnitOfWork) Begin(ctx context.Context) error {
	if u.active {
		return fmt.Errorf("transaction already started")
	}
	u.active = true
	return nil
}

func (u *MemoryUnitOfWork) Commit() error {
	if !u.active {
		return fmt.Errorf("no transaction to commit")
	}
	u.active = false
	return nil
}

func (u *MemoryUnitOfWork) Rollback() error {
	if !u.active {
		return fmt.Errorf("no transaction to rollback")
	}
	u.active = false
	return nil
}

func (u *MemoryUnitOfWork) UserRepository() contract.UserRepository {
	return memory.NewUserRepository(u.store)
}

func (u *MemoryUnitOfWork) LessonPlanRepository() contract.LessonPlanRepository {
	return memory.NewLessonPlanRepository(u.store)
}

func (u *MemoryUnitOfWork) MessageRepository() contract.MessageRepository {
	return memory.NewMessageRepository(u.store)
}

func (u *MemoryUnitOfWork) FileRepository() contract.FileRepository {
	return memory.NewFileRepository(u.store)
}

func (u *MemoryUnitOfWork) DocumentChunkRepository() contract.DocumentChunkRepository {
	return memory.NewDocumentChunkRepository(u.store)
}
