package implementation

import (
	"context"

	"lessoncraft-be/internal/entity"
	"lessoncraft-be/internal/mapper"
	"lessoncraft-be/internal/model"
	"lessoncraft-be/internal/repository/contract"
	"lessoncraft-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentChunkMapper
}

func NewDocumentChunkRepository(db *gorm.DB) contract.DocumentChunkRepository {
	return &DocumentChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentChunkMapper(),
	}
}

func (r *DocumentChunkRepositoryImpl) CreateBatch(ctx context.Context, chunks []*entity.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := r.mapper.ToModels(chunks)
	if err := r.db.WithContext(ctx).CreateInBatches(models, 100).Error; err != nil {
		return err
	}
	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *DocumentChunkRepositoryImpl) FindByLessonPlanId(ctx context.Context, lessonPlanId uuid.UUID) ([]*entity.DocumentChunk, error) {
	var models []*model.DocumentChunk
	query := applySpecifications(r.db.WithContext(ctx),
		specification.ByLessonPlanID{LessonPlanID: lessonPlanId},
		specification.OrderBy{Field: "created_at"},
		specification.OrderBy{Field: "chunk_index"},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DocumentChunkRepositoryImpl) DeleteByFileId(ctx context.Context, fileId uuid.UUID) (int64, error) {
	res := applySpecifications(r.db.WithContext(ctx), specification.ByFileID{FileID: fileId}).Delete(&model.DocumentChunk{})
	return res.RowsAffected, res.Error
}

func (r *DocumentChunkRepositoryImpl) DeleteByLessonPlanId(ctx context.Context, lessonPlanId uuid.UUID) (int64, error) {
	res := applySpecifications(r.db.WithContext(ctx), specification.ByLessonPlanID{LessonPlanID: lessonPlanId}).Delete(&model.DocumentChunk{})
	return res.RowsAffected, res.Error
}
