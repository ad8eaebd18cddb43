package mapper

import (
	"lessoncraft-be/internal/entity"
	"lessoncraft-be/internal/model"
)

type FileMapper struct{}

func NewFileMapper() *FileMapper {
	return &FileMapper{}
}

func (m *FileMapper) ToEntity(f *model.File) *entity.File {
	if f == nil {
		return nil
	}

	return &entity.File{
		Id:           f.Id,
		UserId:       f.UserId,
		LessonPlanId: f.LessonPlanId,
		OriginalName: f.OriginalName,
		StoredName:   f.StoredName,
		Path:         f.Path,
		ContentType:  f.ContentType,
		Size:         f.Size,
		Processed:    f.Processed,
		ChunkCount:   f.ChunkCount,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

func (m *FileMapper) ToModel(f *entity.File) *model.File {
	if f == nil {
		return nil
	}

	return &model.File{
		Id:           f.Id,
		UserId:       f.UserId,
		LessonPlanId: f.LessonPlanId,
		OriginalName: f.OriginalName,
		StoredName:   f.StoredName,
		Path:         f.Path,
		ContentType:  f.ContentType,
		Size:         f.Size,
		Processed:    f.Processed,
		ChunkCount:   f.ChunkCount,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

func (m *FileMapper) ToEntities(files []*model.File) []*entity.File {
	entities := make([]*entity.File, len(files))
	for i, f := range files {
		entities[i] = m.ToEntity(f)
	}
	return entities
}
