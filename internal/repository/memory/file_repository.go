package memory

import (
	"context"
	"slices"
	"time"

	"lessoncraft-be/internal/entity"
	"lessoncraft-be/internal/repository/contract"

	"github.com/google/uuid"
)

type FileRepository struct {
	store *Store
}

func NewFileRepository(store *Store) contract.FileRepository {
	return &FileRepository{store: store}
}

func (r *FileRepository) Create(ctx context.Context, file *entity.File) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if file.Id == uuid.Nil {
		file.Id = uuid.New()
	}
	now := time.Now()
	if file.CreatedAt.IsZero() {
		file.CreatedAt = now
	}
	file.UpdatedAt = now
	r.store.files[file.Id] = *file
	return nil
}

func (r *FileRepository) Update(ctx context.Context, file *entity.File) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	file.UpdatedAt = time.Now()
	r.store.files[file.Id] = *file
	return nil
}

func (r *FileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.files, id)
	return nil
}

func (r *FileRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.File, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	f, ok := r.store.files[id]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

func (r *FileRepository) filter(match func(f entity.File) bool) []*entity.File {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*entity.File
	for _, f := range r.store.files {
		if match(f) {
			cp := f
			out = append(out, &cp)
		}
	}
	slices.SortFunc(out, func(a, b *entity.File) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

func (r *FileRepository) FindByUser(ctx context.Context, userId uuid.UUID, lessonPlanId *uuid.UUID) ([]*entity.File, error) {
	return r.filter(func(f entity.File) bool {
		if f.UserId != userId {
			return false
		}
		if lessonPlanId == nil {
			return true
		}
		return f.LessonPlanId != nil && *f.LessonPlanId == *lessonPlanId
	}), nil
}

func (r *FileRepository) FindByLessonPlanId(ctx context.Context, lessonPlanId uuid.UUID) ([]*entity.File, error) {
	return r.filter(func(f entity.File) bool {
		return f.LessonPlanId != nil && *f.LessonPlanId == lessonPlanId
	}), nil
}

func (r *FileRepository) MarkProcessed(ctx context.Context, id uuid.UUID, chunkCount int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	f, ok := r.store.files[id]
	if !ok {
		return nil
	}
	f.Processed = true
	f.ChunkCount = chunkCount
	f.UpdatedAt = time.Now()
	r.store.files[id] = f
	return nil
}
