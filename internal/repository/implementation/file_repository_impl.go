package implementation

import (
	"context"
	"errors"

	"lessoncraft-be/internal/entity"
	"lessoncraft-be/internal/mapper"
	"lessoncraft-be/internal/model"
	"lessoncraft-be/internal/repository/contract"
	"lessoncraft-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FileMapper
}

func NewFileRepository(db *gorm.DB) contract.FileRepository {
	return &FileRepositoryImpl{
		db:     db,
		mapper: mapper.NewFileMapper(),
	}
}

func (r *FileRepositoryImpl) Create(ctx context.Context, file *entity.File) error {
	m := r.mapper.ToModel(file)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*file = *r.mapper.ToEntity(m)
	return nil
}

func (r *FileRepositoryImpl) Update(ctx context.Context, file *entity.File) error {
	m := r.mapper.ToModel(file)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*file = *r.mapper.ToEntity(m)
	return nil
}

func (r *FileRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.File{}, id).Error
}

func (r *FileRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.File, error) {
	var m model.File
	if err := applySpecifications(r.db.WithContext(ctx), specification.ByID{ID: id}).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FileRepositoryImpl) FindByUser(ctx context.Context, userId uuid.UUID, lessonPlanId *uuid.UUID) ([]*entity.File, error) {
	specs := []specification.Specification{specification.ByUserID{UserID: userId}}
	if lessonPlanId != nil {
		specs = append(specs, specification.ByLessonPlanID{LessonPlanID: *lessonPlanId})
	}
	specs = append(specs, specification.OrderBy{Field: "created_at", Desc: true})

	var models []*model.File
	if err := applySpecifications(r.db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *FileRepositoryImpl) FindByLessonPlanId(ctx context.Context, lessonPlanId uuid.UUID) ([]*entity.File, error) {
	var models []*model.File
	query := applySpecifications(r.db.WithContext(ctx), specification.ByLessonPlanID{LessonPlanID: lessonPlanId})
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *FileRepositoryImpl) MarkProcessed(ctx context.Context, id uuid.UUID, chunkCount int) error {
	return applySpecifications(r.db.WithContext(ctx).Model(&model.File{}), specification.ByID{ID: id}).
		Updates(map[string]interface{}{"processed": true, "chunk_count": chunkCount}).Error
}
